package reporter

import (
	"fmt"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func init() {
	RegisterFactory("prometheus", newPrometheusReporter)
}

// prometheusReporter serves the registry over HTTP for Prometheus scraping.
//
// Args:
//   - addr (required): listen address, e.g. ":9090"
//   - path: handler path, default "/metrics"
type prometheusReporter struct {
	name   string
	addr   string
	server *http.Server
	logger zerolog.Logger
}

func newPrometheusReporter(cfg FactoryConfig) (Reporter, error) {
	addr := cfg.Args["addr"]
	if addr == "" {
		return nil, fmt.Errorf("prometheus reporter %q: addr is required", cfg.PluginName)
	}
	path := cfg.Args["path"]
	if path == "" {
		path = "/metrics"
	}

	// Listen synchronously so a bind failure is reported as a load failure
	// instead of surfacing later in a goroutine.
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("prometheus reporter %q: listen on %s: %w", cfg.PluginName, addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(cfg.Registry.Gatherer(), promhttp.HandlerOpts{}))

	r := &prometheusReporter{
		name:   cfg.PluginName,
		addr:   ln.Addr().String(),
		server: &http.Server{Handler: mux},
		logger: cfg.Logger,
	}

	go func() {
		if err := r.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			r.logger.Error().Err(err).Msg("Prometheus reporter server failed")
		}
	}()

	r.logger.Info().Str("addr", r.addr).Str("path", path).Msg("Prometheus reporter listening")
	return r, nil
}

func (r *prometheusReporter) Name() string {
	return r.name
}

func (r *prometheusReporter) Close() error {
	return r.server.Close()
}
