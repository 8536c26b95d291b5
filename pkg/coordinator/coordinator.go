package coordinator

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/core-metrics/pkg/logging"
	"github.com/Sternrassler/core-metrics/pkg/metrics"
	"github.com/Sternrassler/core-metrics/pkg/reporter"
)

// Argument-validation errors returned by RegisterMetricProducer.
var (
	// ErrEmptyScope is returned for a nil or empty scope.
	ErrEmptyScope = errors.New("scope cannot be empty")

	// ErrNilProducer is returned for a nil producer.
	ErrNilProducer = errors.New("metric producer cannot be nil")
)

// Coordinator derives a core's registry names and owns the reporters loaded
// for them. One coordinator exists per core, created with the core and
// closed when the core is torn down.
type Coordinator struct {
	core      Core
	tag       string
	store     *metrics.Manager
	reporters ReporterManager
	parser    ReplicaNameParser
	logger    zerolog.Logger
	names     names
}

// New creates a coordinator for the core using the default replica name
// parser. The core and its container must already exist. No reporters are
// loaded yet; the owning core calls LoadReporters once it is ready to
// publish.
func New(core Core) *Coordinator {
	return NewWithParser(core, ParseReplicaName)
}

// NewWithParser creates a coordinator with a deployment-specific replica
// name parser.
func NewWithParser(core Core, parser ReplicaNameParser) *Coordinator {
	if core == nil {
		panic("core cannot be nil")
	}
	if parser == nil {
		parser = ParseReplicaName
	}
	c := &Coordinator{
		core: core,
		// The tag scopes reporter ownership across concurrently-live
		// coordinators; it must not derive from the mutable core name.
		tag:       uuid.NewString(),
		store:     core.Container().MetricStore(),
		reporters: core.Container().ReporterManager(),
		parser:    parser,
		logger:    logging.NewLogger("metrics.coordinator"),
	}
	c.names = resolveNames(core, parser)
	c.logger.Debug().
		Str("core", core.Name()).
		Str("registry", c.names.registry).
		Str("leader_registry", c.names.leaderRegistry).
		Bool("cloud", c.names.cloud).
		Msg("Coordinator created")
	return c
}

// LoadReporters instantiates and starts all configured reporter plugins
// against the core's registry, tagged with this coordinator's tag. In cloud
// mode it additionally loads the shard-scoped reporters against the leader
// registry. Individual reporter failures are logged by the reporter manager
// and never fail the call.
//
// Callers reloading must close first; loading twice under the same names
// without a close risks duplicate reporters. AfterRename sequences this
// correctly.
func (c *Coordinator) LoadReporters() {
	container := c.core.Container()
	plugins := container.ReporterPlugins()
	c.reporters.LoadReporters(plugins, container.ResourceLoader(), c.tag, metrics.GroupCore, c.names.registry)
	if c.names.cloud {
		c.reporters.LoadShardReporters(plugins, c)
	}
}

// AfterRename re-derives the naming snapshot from the core's new name and
// the freshest descriptor read. When the registry name is unchanged this is
// a no-op. Otherwise the registries are swapped in the store so collected
// metrics carry over, the reporters owned by this coordinator are closed
// under the old names, and reporters are reloaded under the new names.
func (c *Coordinator) AfterRename() {
	old := c.names
	c.names = resolveNames(c.core, c.parser)
	if old.registry == c.names.registry {
		return
	}

	c.logger.Info().
		Str("core", c.core.Name()).
		Str("old_registry", old.registry).
		Str("registry", c.names.registry).
		Msg("Registry name changed, reloading reporters")

	c.store.Swap(old.registry, c.names.registry)

	c.reporters.CloseReporters(old.registry, c.tag)
	if old.leaderRegistry != "" {
		c.reporters.CloseReporters(old.leaderRegistry, c.tag)
	}
	c.LoadReporters()
}

// RegisterMetricProducer attaches the producer's instruments to the core's
// registry under the given scope. Scope and producer are required; nothing
// is registered when either is missing.
func (c *Coordinator) RegisterMetricProducer(scope string, producer metrics.Producer) error {
	if scope == "" {
		return ErrEmptyScope
	}
	if producer == nil {
		return ErrNilProducer
	}
	producer.InitializeMetrics(c.store, c.names.registry, scope)
	return nil
}

// Registry returns the core's registry from the store, creating it on first
// use, or nil if no registry name is set.
func (c *Coordinator) Registry() *metrics.Registry {
	if c.names.registry == "" {
		return nil
	}
	return c.store.Registry(c.names.registry)
}

// Close closes the reporters this coordinator owns under its current
// registry names. An empty or never-populated reporter set is not an error.
// Call exactly once during core teardown.
func (c *Coordinator) Close() error {
	c.reporters.CloseReporters(c.names.registry, c.tag)
	if c.names.leaderRegistry != "" {
		c.reporters.CloseReporters(c.names.leaderRegistry, c.tag)
	}
	return nil
}

// Core returns the owning core.
func (c *Coordinator) Core() Core {
	return c.core
}

// RegistryName returns the current registry name of the core.
func (c *Coordinator) RegistryName() string {
	return c.names.registry
}

// LeaderRegistryName returns the shard-leader registry name, or "" when not
// in cloud mode. Together with Tag it satisfies reporter.ShardCore.
func (c *Coordinator) LeaderRegistryName() string {
	return c.names.leaderRegistry
}

// Tag returns the opaque token reporters owned by this coordinator are
// registered under.
func (c *Coordinator) Tag() string {
	return c.tag
}

// ResourceLoader returns the container's resource loader, for shard
// reporter loading.
func (c *Coordinator) ResourceLoader() reporter.ResourceLoader {
	return c.core.Container().ResourceLoader()
}
