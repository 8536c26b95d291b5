package reporter

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Sternrassler/core-metrics/pkg/metrics"
)

// PluginInfo describes one configured reporter plugin. A descriptor with
// neither Group nor Registry set is global and applies to every load; a
// Group restricts it to loads for that scope group; a Registry restricts it
// to one registry name.
type PluginInfo struct {
	// Name identifies the loaded reporter. Defaults to Type when empty.
	Name string `json:"name,omitempty"`

	// Type selects the factory: "prometheus", "redis", "log" or a
	// registered external type.
	Type string `json:"type"`

	// Group restricts the plugin to loads for one scope group,
	// e.g. "core" or "shard".
	Group string `json:"group,omitempty"`

	// Registry restricts the plugin to one registry name.
	Registry string `json:"registry,omitempty"`

	// Args are plugin-specific arguments.
	Args map[string]string `json:"args,omitempty"`
}

// EffectiveName returns Name, or Type when Name is empty.
func (p PluginInfo) EffectiveName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Type
}

// appliesTo reports whether the plugin participates in a load for the given
// scope group and registry name.
func (p PluginInfo) appliesTo(group metrics.ScopeGroup, registryName string) bool {
	if p.Group == "" && p.Registry == "" {
		return true
	}
	if p.Group != "" && p.Group == string(group) {
		return true
	}
	if p.Registry != "" && p.Registry == registryName {
		return true
	}
	return false
}

// LoadConfig reads reporter plugin descriptors from a JSON file. The file
// holds either a bare array of descriptors or an object with a "reporters"
// array.
func LoadConfig(path string) ([]PluginInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reporter config: %w", err)
	}

	var plugins []PluginInfo
	if err := json.Unmarshal(data, &plugins); err == nil {
		return validatePlugins(plugins)
	}

	var wrapped struct {
		Reporters []PluginInfo `json:"reporters"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parse reporter config %s: %w", path, err)
	}
	return validatePlugins(wrapped.Reporters)
}

func validatePlugins(plugins []PluginInfo) ([]PluginInfo, error) {
	for i, p := range plugins {
		if p.Type == "" {
			return nil, fmt.Errorf("reporter descriptor %d (%q): type is required", i, p.Name)
		}
	}
	return plugins, nil
}
