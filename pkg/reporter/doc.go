// Package reporter manages metric reporter plugins: exporters that read a
// named registry and publish its contents elsewhere.
//
// Reporters are described by plugin descriptors (PluginInfo) and instantiated
// through a factory registry keyed by plugin type. The Manager owns running
// reporters, keyed by registry name and an opaque caller tag, so several
// cores can publish from the same registry without closing each other's
// reporters.
//
// Built-in plugin types:
//
//   - "prometheus": serves the registry over HTTP for Prometheus scraping
//   - "redis": periodically publishes a flattened snapshot to a Redis key
//   - "log": periodically dumps a flattened snapshot to the structured log
//
// # Basic Usage
//
//	store := metrics.NewManager()
//	manager := reporter.NewManager(store, logging.NewLogger("reporter"))
//
//	plugins := []reporter.PluginInfo{
//		{Name: "scrape", Type: "prometheus", Args: map[string]string{"addr": ":9090"}},
//	}
//	manager.LoadReporters(plugins, loader, tag, metrics.GroupCore, registryName)
//	defer manager.CloseReporters(registryName, tag)
//
// A reporter that fails to start is logged and skipped; it never prevents
// the remaining plugins from loading.
package reporter
