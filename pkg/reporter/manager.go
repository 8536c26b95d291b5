package reporter

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Sternrassler/core-metrics/pkg/metrics"
)

// ShardCore is the view of a core that shard-scoped reporter loading needs.
// A core without a leader registry (standalone mode) reports an empty
// LeaderRegistryName and is skipped.
type ShardCore interface {
	LeaderRegistryName() string
	Tag() string
	ResourceLoader() ResourceLoader
}

// Manager owns running reporters. Reporters are stored per registry name
// under a "pluginName@tag" key, so CloseReporters with a tag only touches
// reporters loaded under that tag even when several cores share a registry
// name.
type Manager struct {
	store  *metrics.Manager
	logger zerolog.Logger

	mu        sync.Mutex
	reporters map[string]map[string]Reporter
}

// NewManager creates a reporter manager over the given registry store.
func NewManager(store *metrics.Manager, logger zerolog.Logger) *Manager {
	if store == nil {
		panic("registry store cannot be nil")
	}
	return &Manager{
		store:     store,
		logger:    logger,
		reporters: make(map[string]map[string]Reporter),
	}
}

// LoadReporters instantiates and starts every applicable plugin against the
// named registry, tagged with tag. A plugin applies when it is global, its
// group matches, or its registry attribute matches registryName. Failures
// are per-plugin: a reporter that cannot start is logged and skipped.
//
// Loading a plugin whose name/tag pair is already present closes the old
// reporter before starting the new one, so a load never duplicates.
func (m *Manager) LoadReporters(plugins []PluginInfo, loader ResourceLoader, tag string, group metrics.ScopeGroup, registryName string) {
	for _, plugin := range plugins {
		if !plugin.appliesTo(group, registryName) {
			continue
		}
		m.loadReporter(plugin, loader, tag, registryName)
	}
}

// LoadShardReporters loads the shard-group plugins against the core's
// leader registry. Standalone cores have no leader registry and are a no-op.
func (m *Manager) LoadShardReporters(plugins []PluginInfo, core ShardCore) {
	leaderRegistry := core.LeaderRegistryName()
	if leaderRegistry == "" {
		return
	}
	for _, plugin := range plugins {
		if plugin.Group != string(metrics.GroupShard) {
			continue
		}
		m.loadReporter(plugin, core.ResourceLoader(), core.Tag(), leaderRegistry)
	}
}

func (m *Manager) loadReporter(plugin PluginInfo, loader ResourceLoader, tag, registryName string) {
	name := plugin.EffectiveName()
	logger := m.logger.With().
		Str("plugin", name).
		Str("type", plugin.Type).
		Str("registry", registryName).
		Logger()

	factory, ok := lookupFactory(plugin.Type)
	if !ok {
		logger.Error().Msg("Unknown reporter plugin type")
		reporterLoadFailuresTotal.WithLabelValues(plugin.Type).Inc()
		return
	}

	rep, err := factory(FactoryConfig{
		PluginName:   name,
		RegistryName: registryName,
		Registry:     m.store.Registry(registryName),
		Loader:       loader,
		Logger:       logger,
		Args:         plugin.Args,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load reporter")
		reporterLoadFailuresTotal.WithLabelValues(plugin.Type).Inc()
		return
	}

	key := name + "@" + tag

	m.mu.Lock()
	byKey := m.reporters[registryName]
	if byKey == nil {
		byKey = make(map[string]Reporter)
		m.reporters[registryName] = byKey
	}
	old := byKey[key]
	byKey[key] = rep
	m.mu.Unlock()

	if old != nil {
		m.closeOne(registryName, old)
	}

	reporterLoadsTotal.WithLabelValues(plugin.Type).Inc()
	reportersActive.Inc()
	logger.Debug().Str("tag", tag).Msg("Reporter loaded")
}

// CloseReporters closes and removes all reporters loaded under the given
// registry name and tag, leaving reporters loaded under other tags running.
// It returns the number of reporters closed; an unknown registry name or an
// empty reporter set closes nothing and is not an error.
func (m *Manager) CloseReporters(registryName, tag string) int {
	suffix := "@" + tag

	m.mu.Lock()
	byKey := m.reporters[registryName]
	var closing []Reporter
	for key, rep := range byKey {
		if strings.HasSuffix(key, suffix) {
			closing = append(closing, rep)
			delete(byKey, key)
		}
	}
	if len(byKey) == 0 {
		delete(m.reporters, registryName)
	}
	m.mu.Unlock()

	for _, rep := range closing {
		m.closeOne(registryName, rep)
	}
	return len(closing)
}

// CloseAll closes every reporter the manager owns, for process shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	var closing []Reporter
	var registries []string
	for registryName, byKey := range m.reporters {
		for _, rep := range byKey {
			closing = append(closing, rep)
			registries = append(registries, registryName)
		}
	}
	m.reporters = make(map[string]map[string]Reporter)
	m.mu.Unlock()

	for i, rep := range closing {
		m.closeOne(registries[i], rep)
	}
}

// ReporterNames returns the storage keys ("pluginName@tag") of the reporters
// currently loaded for a registry name.
func (m *Manager) ReporterNames(registryName string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	byKey := m.reporters[registryName]
	names := make([]string, 0, len(byKey))
	for key := range byKey {
		names = append(names, key)
	}
	return names
}

func (m *Manager) closeOne(registryName string, rep Reporter) {
	if err := rep.Close(); err != nil {
		m.logger.Warn().Err(err).
			Str("plugin", rep.Name()).
			Str("registry", registryName).
			Msg("Reporter close failed")
		reporterCloseFailuresTotal.Inc()
	}
	reporterClosesTotal.Inc()
	reportersActive.Dec()
}
