package coordinator

import (
	"strings"

	"github.com/Sternrassler/core-metrics/pkg/metrics"
)

// ReplicaNameParser extracts a replica name from a composite core name,
// given the collection the core belongs to. It returns "" when the core
// name does not follow the convention the parser understands; the caller
// then falls back to the descriptor's replica identity.
//
// Core naming conventions are deployment-specific, so the parser is
// pluggable per coordinator.
type ReplicaNameParser func(collection, coreName string) string

// ParseReplicaName is the default parser. For a core named
// "<collection>_<shard>_replicaN" it returns "replicaN": the suffix after
// the last "_replica" marker, with the separating underscore dropped.
func ParseReplicaName(collection, coreName string) string {
	if collection == "" || !strings.HasPrefix(coreName, collection) {
		return ""
	}
	if len(coreName) <= len(collection)+1 {
		return ""
	}
	rest := coreName[len(collection)+1:]
	pos := strings.LastIndex(rest, "_replica")
	if pos == -1 {
		return ""
	}
	return rest[pos+1:]
}

// names is one immutable naming snapshot. A fresh value is built on
// construction and on every rename; comparing old and new registry names is
// then a plain value comparison with no partially-updated state in between.
type names struct {
	cloud          bool
	collection     string
	shard          string
	replica        string
	registry       string
	leaderRegistry string
}

// resolveNames derives a naming snapshot from the core's current name and
// the freshest descriptor read.
func resolveNames(core Core, parser ReplicaNameParser) names {
	var n names
	if provider := core.DescriptorProvider(); provider != nil {
		if desc, ok := provider.Descriptor(core); ok {
			n.cloud = true
			n.collection = desc.Collection
			n.shard = desc.Shard
			n.replica = parser(desc.Collection, core.Name())
			if n.replica == "" {
				n.replica = desc.Replica
			}
		}
	}
	n.registry = ComputeRegistryName(n.cloud, n.collection, n.shard, n.replica, core.Name())
	n.leaderRegistry = ComputeLeaderRegistryName(n.cloud, n.collection, n.shard)
	return n
}

// ComputeRegistryName derives a core's registry name without a live
// coordinator, e.g. for a rename orchestrator that needs the future name
// before committing. Cloud cores are named by logical identity,
// "solr.core.<collection>.<shard>.<replica>", independent of the physical
// core name; standalone cores are "solr.core.<coreName>".
func ComputeRegistryName(cloud bool, collection, shard, replica, coreName string) string {
	if cloud {
		return metrics.RegistryName(metrics.GroupCore, collection, shard, replica)
	}
	return metrics.RegistryName(metrics.GroupCore, coreName)
}

// ComputeLeaderRegistryName derives the shard-leader registry name,
// "solr.collection.<collection>.<shard>.leader", or "" when not in cloud
// mode.
func ComputeLeaderRegistryName(cloud bool, collection, shard string) string {
	if !cloud {
		return ""
	}
	return metrics.RegistryName(metrics.GroupCollection, collection, shard, "leader")
}

// ComputeRegistryNameForRename derives the registry name an existing core
// would have after being renamed to newName, re-reading the core's current
// descriptor and re-parsing the replica from the proposed name.
func ComputeRegistryNameForRename(core Core, newName string) string {
	return computeRegistryNameForRename(core, newName, ParseReplicaName)
}

func computeRegistryNameForRename(core Core, newName string, parser ReplicaNameParser) string {
	if provider := core.DescriptorProvider(); provider != nil {
		if desc, ok := provider.Descriptor(core); ok {
			replica := parser(desc.Collection, newName)
			if replica == "" {
				replica = desc.Replica
			}
			return ComputeRegistryName(true, desc.Collection, desc.Shard, replica, newName)
		}
	}
	return ComputeRegistryName(false, "", "", "", newName)
}
