package metrics

import "strings"

// registryPrefix is the fixed prefix of every registry name. External
// aggregation tooling matches on it; changing it breaks interop.
const registryPrefix = "solr"

// ScopeGroup identifies the top-level grouping a registry belongs to.
type ScopeGroup string

const (
	// GroupCore scopes registries owned by individual cores.
	GroupCore ScopeGroup = "core"

	// GroupCollection scopes registries aggregated per collection,
	// e.g. shard-leader registries.
	GroupCollection ScopeGroup = "collection"

	// GroupShard scopes reporter plugins that publish to the shard leader.
	GroupShard ScopeGroup = "shard"

	// GroupNode scopes node-level registries shared by all cores.
	GroupNode ScopeGroup = "node"
)

// RegistryName builds a hierarchical registry name from a scope group and
// identity parts: "solr.<group>.<part>.<part>...". Empty parts are skipped.
// A single part that already carries the full prefix is returned unchanged,
// so resolved names can be passed through naming helpers safely.
func RegistryName(group ScopeGroup, parts ...string) string {
	fullPrefix := registryPrefix + "." + string(group)
	if len(parts) == 1 && strings.HasPrefix(parts[0], fullPrefix+".") {
		return parts[0]
	}
	elems := make([]string, 0, len(parts)+1)
	elems = append(elems, fullPrefix)
	for _, p := range parts {
		if p != "" {
			elems = append(elems, p)
		}
	}
	return strings.Join(elems, ".")
}

// SanitizeName converts a dotted instrument name into a valid Prometheus
// metric name. Dots and other unsupported characters become underscores.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == ':':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
