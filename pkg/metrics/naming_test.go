package metrics

import "testing"

func TestRegistryName(t *testing.T) {
	tests := []struct {
		name  string
		group ScopeGroup
		parts []string
		want  string
	}{
		{
			name:  "core with logical identity",
			group: GroupCore,
			parts: []string{"techs", "shard1", "replica1"},
			want:  "solr.core.techs.shard1.replica1",
		},
		{
			name:  "core with plain name",
			group: GroupCore,
			parts: []string{"collection1"},
			want:  "solr.core.collection1",
		},
		{
			name:  "collection leader",
			group: GroupCollection,
			parts: []string{"techs", "shard2", "leader"},
			want:  "solr.collection.techs.shard2.leader",
		},
		{
			name:  "empty parts skipped",
			group: GroupCore,
			parts: []string{"techs", "", "replica1"},
			want:  "solr.core.techs.replica1",
		},
		{
			name:  "already prefixed name passes through",
			group: GroupCore,
			parts: []string{"solr.core.techs.shard1.replica1"},
			want:  "solr.core.techs.shard1.replica1",
		},
		{
			name:  "no parts",
			group: GroupNode,
			parts: nil,
			want:  "solr.node",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RegistryName(tt.group, tt.parts...)
			if got != tt.want {
				t.Errorf("RegistryName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"queries.total", "queries_total"},
		{"QUERY./select.requests", "QUERY__select_requests"},
		{"index size", "index_size"},
		{"already_valid:name", "already_valid:name"},
		{"1starts.with.digit", "_1starts_with_digit"},
	}

	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
