// Package coordinator binds a core's metric producers to a stable,
// hierarchical registry and manages the lifecycle of that core's reporters
// across rename and shutdown.
//
// Each core owns exactly one Coordinator. On construction the coordinator
// queries the core's deployment descriptor to decide between cloud naming
// (solr.core.<collection>.<shard>.<replica>) and standalone naming
// (solr.core.<coreName>), and derives the shard-leader registry name when
// in cloud mode. On a rename it recomputes both names and, only when the
// registry name actually changed, closes the reporters it owns under the
// old names and reloads them under the new ones.
//
// Reporters are tagged with an opaque per-coordinator token, so two
// coordinators that briefly share a registry name (during a rename overlap)
// never close each other's reporters.
//
// A Coordinator is not safe for concurrent use: the owning core serializes
// LoadReporters, AfterRename and Close behind its own state-transition lock,
// since rename and shutdown are mutually exclusive core-level operations.
package coordinator
