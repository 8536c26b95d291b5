package reporter

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sternrassler/core-metrics/pkg/metrics"
)

func init() {
	RegisterFactory("log", newLogReporter)
}

// logReporter periodically dumps a flattened registry snapshot to the
// structured log. Useful as a zero-dependency reporter in development and
// as a last-resort operational fallback.
//
// Args:
//   - interval: dump interval as a Go duration, default "60s"
type logReporter struct {
	name     string
	interval time.Duration
	registry *metrics.Registry
	logger   zerolog.Logger

	done chan struct{}
	wg   sync.WaitGroup
}

func newLogReporter(cfg FactoryConfig) (Reporter, error) {
	interval := defaultPublishInterval
	if s := cfg.Args["interval"]; s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("log reporter %q: parse interval: %w", cfg.PluginName, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("log reporter %q: interval must be positive", cfg.PluginName)
		}
		interval = d
	}

	r := &logReporter{
		name:     cfg.PluginName,
		interval: interval,
		registry: cfg.Registry,
		logger:   cfg.Logger,
		done:     make(chan struct{}),
	}

	r.wg.Add(1)
	go r.run()

	return r, nil
}

func (r *logReporter) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.dump()
		case <-r.done:
			return
		}
	}
}

func (r *logReporter) dump() {
	snapshot, err := r.registry.Snapshot()
	if err != nil {
		r.logger.Warn().Err(err).Msg("Snapshot failed, skipping dump")
		return
	}

	fields := make(map[string]interface{}, len(snapshot))
	for name, value := range snapshot {
		fields[name] = value
	}
	r.logger.Info().Fields(fields).Msg("Metrics snapshot")
}

func (r *logReporter) Name() string {
	return r.name
}

func (r *logReporter) Close() error {
	close(r.done)
	r.wg.Wait()
	return nil
}
