package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/core-metrics/pkg/metrics"
)

func init() {
	RegisterFactory("redis", newRedisReporter)
}

const (
	defaultPublishInterval = 60 * time.Second
	publishTimeout         = 5 * time.Second
)

// redisReporter periodically publishes a flattened registry snapshot as a
// JSON document under "metrics:<registryName>". The key expires after three
// missed intervals so stale registries disappear from Redis on their own.
//
// Args:
//   - addr (required): Redis address, e.g. "localhost:6379"
//   - interval: publish interval as a Go duration, default "60s"
//   - db: Redis database number, default 0
//   - password: Redis password
//   - password_file: resource name holding the password, read via the
//     resource loader; takes precedence over password
type redisReporter struct {
	name     string
	key      string
	interval time.Duration
	registry *metrics.Registry
	client   *redis.Client
	logger   zerolog.Logger

	done chan struct{}
	wg   sync.WaitGroup
}

func newRedisReporter(cfg FactoryConfig) (Reporter, error) {
	addr := cfg.Args["addr"]
	if addr == "" {
		return nil, fmt.Errorf("redis reporter %q: addr is required", cfg.PluginName)
	}

	interval := defaultPublishInterval
	if s := cfg.Args["interval"]; s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("redis reporter %q: parse interval: %w", cfg.PluginName, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("redis reporter %q: interval must be positive", cfg.PluginName)
		}
		interval = d
	}

	db := 0
	if s := cfg.Args["db"]; s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("redis reporter %q: parse db: %w", cfg.PluginName, err)
		}
		db = n
	}

	password := cfg.Args["password"]
	if file := cfg.Args["password_file"]; file != "" {
		if cfg.Loader == nil {
			return nil, fmt.Errorf("redis reporter %q: password_file set but no resource loader", cfg.PluginName)
		}
		rc, err := cfg.Loader.Open(file)
		if err != nil {
			return nil, fmt.Errorf("redis reporter %q: open password file: %w", cfg.PluginName, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("redis reporter %q: read password file: %w", cfg.PluginName, err)
		}
		password = strings.TrimSpace(string(data))
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis reporter %q: connect to %s: %w", cfg.PluginName, addr, err)
	}

	r := &redisReporter{
		name:     cfg.PluginName,
		key:      "metrics:" + cfg.RegistryName,
		interval: interval,
		registry: cfg.Registry,
		client:   client,
		logger:   cfg.Logger,
		done:     make(chan struct{}),
	}

	r.wg.Add(1)
	go r.run()

	r.logger.Info().Str("addr", addr).Str("key", r.key).Dur("interval", interval).Msg("Redis reporter started")
	return r, nil
}

func (r *redisReporter) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.publish()
		case <-r.done:
			return
		}
	}
}

func (r *redisReporter) publish() {
	snapshot, err := r.registry.Snapshot()
	if err != nil {
		r.logger.Warn().Err(err).Msg("Snapshot failed, skipping publish")
		return
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		r.logger.Warn().Err(err).Msg("Marshal snapshot failed, skipping publish")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := r.client.Set(ctx, r.key, data, 3*r.interval).Err(); err != nil {
		r.logger.Warn().Err(err).Msg("Publish to Redis failed")
		return
	}

	r.logger.Debug().Int("instruments", len(snapshot)).Msg("Snapshot published")
}

func (r *redisReporter) Name() string {
	return r.name
}

func (r *redisReporter) Close() error {
	close(r.done)
	r.wg.Wait()
	return r.client.Close()
}
