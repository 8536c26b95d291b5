// Command coremetrics runs a demo core with a metrics registry coordinator:
// it wires the registry store, the reporter manager and one core, loads the
// configured reporters and serves until interrupted. Rename the core at
// runtime via the /rename endpoint to watch the reporter lifecycle.
package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/Sternrassler/core-metrics/pkg/coordinator"
	"github.com/Sternrassler/core-metrics/pkg/logging"
	"github.com/Sternrassler/core-metrics/pkg/metrics"
	"github.com/Sternrassler/core-metrics/pkg/reporter"
)

// demoContainer wires the process-wide collaborators.
type demoContainer struct {
	store     *metrics.Manager
	reporters *reporter.Manager
	plugins   []reporter.PluginInfo
	loader    reporter.ResourceLoader
}

func (c *demoContainer) MetricStore() *metrics.Manager {
	return c.store
}

func (c *demoContainer) ReporterManager() coordinator.ReporterManager {
	return c.reporters
}

func (c *demoContainer) ReporterPlugins() []reporter.PluginInfo {
	return c.plugins
}

func (c *demoContainer) ResourceLoader() reporter.ResourceLoader {
	return c.loader
}

// demoCore is a renameable core backed by the demo container.
type demoCore struct {
	mu        sync.Mutex
	name      string
	container *demoContainer
	provider  coordinator.DescriptorProvider
}

func (c *demoCore) Name() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

func (c *demoCore) setName(name string) {
	c.mu.Lock()
	c.name = name
	c.mu.Unlock()
}

func (c *demoCore) Container() coordinator.Container {
	return c.container
}

func (c *demoCore) DescriptorProvider() coordinator.DescriptorProvider {
	return c.provider
}

func main() {
	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Pretty: getEnv("LOG_PRETTY", "") != "",
		Output: os.Stderr,
	})

	coreName := getEnv("CORE_NAME", "collection1")
	port := getEnv("PORT", "8080")

	container := &demoContainer{
		store:   metrics.NewManager(),
		loader:  reporter.DirResourceLoader{Dir: getEnv("RESOURCE_DIR", ".")},
		plugins: loadPlugins(logger),
	}
	container.reporters = reporter.NewManager(container.store, logging.NewLogger("reporter"))

	core := &demoCore{name: coreName, container: container}
	if collection := os.Getenv("COLLECTION"); collection != "" {
		core.provider = coordinator.StaticProvider{Desc: coordinator.Descriptor{
			Collection: collection,
			Shard:      getEnv("SHARD", "shard1"),
			Replica:    getEnv("REPLICA", "replica1"),
		}}
	}

	coord := coordinator.New(core)
	logger.Info().
		Str("core", core.Name()).
		Str("registry", coord.RegistryName()).
		Str("leader_registry", coord.LeaderRegistryName()).
		Msg("Coordinator ready")

	coord.LoadReporters()

	// Demo producer: a counter incremented per /ping request.
	pings := coord.Registry().Counter("ping.requests")

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		pings.Inc()
		fmt.Fprint(w, "pong")
	})
	mux.HandleFunc("/rename", func(w http.ResponseWriter, r *http.Request) {
		newName := r.URL.Query().Get("name")
		if newName == "" {
			http.Error(w, "name query parameter is required", http.StatusBadRequest)
			return
		}
		core.setName(newName)
		coord.AfterRename()
		fmt.Fprintf(w, "registry: %s\n", coord.RegistryName())
	})

	server := &http.Server{Addr: ":" + port, Handler: mux}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("Demo server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("Shutting down")
	server.Close()
	coord.Close()
	container.reporters.CloseAll()
}

// loadPlugins reads the reporter descriptors from REPORTER_CONFIG, falling
// back to a single Prometheus exposer on METRICS_ADDR.
func loadPlugins(logger zerolog.Logger) []reporter.PluginInfo {
	if path := os.Getenv("REPORTER_CONFIG"); path != "" {
		plugins, err := reporter.LoadConfig(path)
		if err != nil {
			logger.Fatal().Err(err).Str("path", path).Msg("Failed to load reporter config")
		}
		return plugins
	}
	return []reporter.PluginInfo{
		{
			Name: "scrape",
			Type: "prometheus",
			Args: map[string]string{"addr": getEnv("METRICS_ADDR", ":9090")},
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
