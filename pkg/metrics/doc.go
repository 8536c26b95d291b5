// Package metrics provides the process-wide metric registry store.
//
// Registries are keyed by a hierarchical, dot-separated name derived from a
// scope group and logical identity parts (collection, shard, replica or the
// plain core name). Aggregation tooling groups registries of the same logical
// collection by name prefix, independent of physical core naming.
//
// # Basic Usage
//
//	// Create the shared store (one per process)
//	store := metrics.NewManager()
//
//	// Resolve a registry name and attach instruments
//	name := metrics.RegistryName(metrics.GroupCore, "techs", "shard1", "replica1")
//	reg := store.Registry(name)
//	reg.Counter("queries.total").Inc()
//	reg.Gauge("index.size.bytes").Set(1024)
//
//	// Export
//	snapshot := reg.Snapshot()
//
// Instrument names may contain dots; they are sanitized to valid Prometheus
// metric names on registration.
package metrics
