// Package testutil provides testing fakes for the core-metrics packages.
package testutil

import (
	"sync"

	"github.com/Sternrassler/core-metrics/pkg/metrics"
	"github.com/Sternrassler/core-metrics/pkg/reporter"
)

// ReporterEvent is one recorded reporter manager call.
type ReporterEvent struct {
	// Op is "load", "loadShard" or "close".
	Op string

	// Registry is the registry name the call targeted.
	Registry string

	// Tag is the caller tag.
	Tag string

	// Plugins is the number of descriptors passed to a load call.
	Plugins int
}

// RecordingReporterManager records reporter manager calls in order instead
// of starting real reporters, so tests can assert exact open/close
// sequences. It satisfies the coordinator's ReporterManager interface.
type RecordingReporterManager struct {
	mu     sync.Mutex
	events []ReporterEvent
}

// NewRecordingReporterManager creates an empty recorder.
func NewRecordingReporterManager() *RecordingReporterManager {
	return &RecordingReporterManager{}
}

// LoadReporters records a "load" event.
func (r *RecordingReporterManager) LoadReporters(plugins []reporter.PluginInfo, _ reporter.ResourceLoader, tag string, _ metrics.ScopeGroup, registryName string) {
	r.record(ReporterEvent{Op: "load", Registry: registryName, Tag: tag, Plugins: len(plugins)})
}

// LoadShardReporters records a "loadShard" event against the core's leader
// registry, or nothing for a core without one.
func (r *RecordingReporterManager) LoadShardReporters(plugins []reporter.PluginInfo, core reporter.ShardCore) {
	if core.LeaderRegistryName() == "" {
		return
	}
	r.record(ReporterEvent{Op: "loadShard", Registry: core.LeaderRegistryName(), Tag: core.Tag(), Plugins: len(plugins)})
}

// CloseReporters records a "close" event.
func (r *RecordingReporterManager) CloseReporters(registryName, tag string) int {
	r.record(ReporterEvent{Op: "close", Registry: registryName, Tag: tag})
	return 0
}

func (r *RecordingReporterManager) record(ev ReporterEvent) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

// Events returns a copy of all recorded events in call order.
func (r *RecordingReporterManager) Events() []ReporterEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ReporterEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Reset discards all recorded events.
func (r *RecordingReporterManager) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
