package coordinator

import (
	"github.com/Sternrassler/core-metrics/pkg/metrics"
	"github.com/Sternrassler/core-metrics/pkg/reporter"
)

// Core is the runtime unit whose metrics a coordinator manages. The core
// must outlive its coordinator and already be attached to its container
// when the coordinator is constructed.
type Core interface {
	// Name returns the core's current externally-visible name. It may
	// change over the core's lifetime; the coordinator re-reads it on
	// rename.
	Name() string

	// Container grants access to the process-wide collaborators.
	Container() Container

	// DescriptorProvider resolves the core's position in a distributed
	// deployment. A nil provider means standalone mode.
	DescriptorProvider() DescriptorProvider
}

// Container exposes the shared collaborators a coordinator needs: the
// registry store, the reporter manager and the reporter plugin
// configuration.
type Container interface {
	MetricStore() *metrics.Manager
	ReporterManager() ReporterManager
	ReporterPlugins() []reporter.PluginInfo
	ResourceLoader() reporter.ResourceLoader
}

// ReporterManager is the coordinator's view of the reporter manager.
// *reporter.Manager satisfies it; tests substitute a recorder to assert
// exact load/close sequences.
type ReporterManager interface {
	LoadReporters(plugins []reporter.PluginInfo, loader reporter.ResourceLoader, tag string, group metrics.ScopeGroup, registryName string)
	LoadShardReporters(plugins []reporter.PluginInfo, core reporter.ShardCore)
	CloseReporters(registryName, tag string) int
}

// Descriptor identifies a core's position in a distributed deployment.
type Descriptor struct {
	Collection string
	Shard      string
	Replica    string
}

// DescriptorProvider reports whether a core belongs to a distributed
// deployment and, if so, its identity within it.
type DescriptorProvider interface {
	Descriptor(core Core) (Descriptor, bool)
}

// StaticProvider always returns a fixed descriptor, for deployments where
// the coordination layer hands placement down at core creation.
type StaticProvider struct {
	Desc Descriptor
}

// Descriptor returns the fixed descriptor.
func (p StaticProvider) Descriptor(Core) (Descriptor, bool) {
	return p.Desc, true
}

// NoopProvider reports standalone mode for every core.
type NoopProvider struct{}

// Descriptor reports no distributed deployment.
func (NoopProvider) Descriptor(Core) (Descriptor, bool) {
	return Descriptor{}, false
}
