package coordinator

import "testing"

func TestComputeRegistryName(t *testing.T) {
	tests := []struct {
		name       string
		cloud      bool
		collection string
		shard      string
		replica    string
		coreName   string
		want       string
	}{
		{
			name:     "standalone uses core name",
			cloud:    false,
			coreName: "collection1",
			want:     "solr.core.collection1",
		},
		{
			name:       "standalone ignores identity fields",
			cloud:      false,
			collection: "techs",
			shard:      "shard1",
			replica:    "replica1",
			coreName:   "core_a",
			want:       "solr.core.core_a",
		},
		{
			name:       "cloud uses logical identity",
			cloud:      true,
			collection: "techs",
			shard:      "shard1",
			replica:    "replica1",
			coreName:   "ignored_physical_name",
			want:       "solr.core.techs.shard1.replica1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeRegistryName(tt.cloud, tt.collection, tt.shard, tt.replica, tt.coreName)
			if got != tt.want {
				t.Errorf("ComputeRegistryName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComputeLeaderRegistryName(t *testing.T) {
	got := ComputeLeaderRegistryName(true, "techs", "shard2")
	want := "solr.collection.techs.shard2.leader"
	if got != want {
		t.Errorf("ComputeLeaderRegistryName(cloud) = %q, want %q", got, want)
	}

	if got := ComputeLeaderRegistryName(false, "techs", "shard2"); got != "" {
		t.Errorf("ComputeLeaderRegistryName(standalone) = %q, want empty", got)
	}
}

func TestParseReplicaName(t *testing.T) {
	tests := []struct {
		name       string
		collection string
		coreName   string
		want       string
	}{
		{
			name:       "simple convention",
			collection: "techs",
			coreName:   "techs_shard1_replica1",
			want:       "replica1",
		},
		{
			name:       "split shard keeps last replica marker",
			collection: "my_collection",
			coreName:   "my_collection_shard1_1_replica2",
			want:       "replica2",
		},
		{
			name:       "typed replica suffix",
			collection: "techs",
			coreName:   "techs_shard1_replica_n3",
			want:       "replica_n3",
		},
		{
			name:       "wrong collection prefix",
			collection: "techs",
			coreName:   "other_shard1_replica1",
			want:       "",
		},
		{
			name:       "no replica marker",
			collection: "techs",
			coreName:   "techs_shard1",
			want:       "",
		},
		{
			name:       "core name equals collection",
			collection: "techs",
			coreName:   "techs",
			want:       "",
		},
		{
			name:       "empty collection",
			collection: "",
			coreName:   "techs_shard1_replica1",
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseReplicaName(tt.collection, tt.coreName)
			if got != tt.want {
				t.Errorf("ParseReplicaName(%q, %q) = %q, want %q", tt.collection, tt.coreName, got, tt.want)
			}
		})
	}
}
