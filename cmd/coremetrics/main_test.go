package main

import (
	"os"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Sternrassler/core-metrics/pkg/coordinator"
	"github.com/Sternrassler/core-metrics/pkg/metrics"
	"github.com/Sternrassler/core-metrics/pkg/reporter"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("COREMETRICS_TEST_KEY", "set")
	if got := getEnv("COREMETRICS_TEST_KEY", "default"); got != "set" {
		t.Errorf("getEnv = %q, want %q", got, "set")
	}
	if got := getEnv("COREMETRICS_TEST_MISSING", "default"); got != "default" {
		t.Errorf("getEnv = %q, want %q", got, "default")
	}
}

func TestLoadPlugins_Default(t *testing.T) {
	os.Unsetenv("REPORTER_CONFIG")
	t.Setenv("METRICS_ADDR", ":9999")

	plugins := loadPlugins(zerolog.Nop())
	if len(plugins) != 1 {
		t.Fatalf("got %d plugins, want 1", len(plugins))
	}
	if plugins[0].Type != "prometheus" || plugins[0].Args["addr"] != ":9999" {
		t.Errorf("default plugin = %+v", plugins[0])
	}
}

// TestDemoWiring runs a full core lifecycle against the real reporter
// manager with a log reporter: load, rename, close.
func TestDemoWiring(t *testing.T) {
	container := &demoContainer{
		store:  metrics.NewManager(),
		loader: reporter.DirResourceLoader{Dir: t.TempDir()},
		plugins: []reporter.PluginInfo{
			{Name: "dump", Type: "log", Args: map[string]string{"interval": "1h"}},
		},
	}
	container.reporters = reporter.NewManager(container.store, zerolog.Nop())

	core := &demoCore{name: "core_a", container: container}
	coord := coordinator.New(core)
	coord.LoadReporters()

	if keys := container.reporters.ReporterNames("solr.core.core_a"); len(keys) != 1 {
		t.Fatalf("reporters after load = %v, want one", keys)
	}

	coord.Registry().Counter("ping.requests").Add(2)

	core.setName("core_b")
	coord.AfterRename()

	if keys := container.reporters.ReporterNames("solr.core.core_a"); len(keys) != 0 {
		t.Errorf("old registry still has reporters: %v", keys)
	}
	if keys := container.reporters.ReporterNames("solr.core.core_b"); len(keys) != 1 {
		t.Errorf("new registry reporters = %v, want one", keys)
	}

	snap, err := coord.Registry().Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if snap["ping_requests"] != 2 {
		t.Errorf("ping_requests after rename = %v, want 2", snap["ping_requests"])
	}

	if err := coord.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	container.reporters.CloseAll()
	if keys := container.reporters.ReporterNames("solr.core.core_b"); len(keys) != 0 {
		t.Errorf("reporters remain after close: %v", keys)
	}
}
