package reporter

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Sternrassler/core-metrics/pkg/metrics"
)

// Reporter is a running metric exporter bound to one registry. Close stops
// publishing and releases any connections or listeners the reporter holds.
type Reporter interface {
	// Name returns the plugin name the reporter was loaded under.
	Name() string

	// Close stops the reporter. It is called exactly once by the Manager.
	Close() error
}

// ResourceLoader opens named configuration resources for reporters that need
// them, e.g. credential files referenced from plugin args.
type ResourceLoader interface {
	Open(name string) (io.ReadCloser, error)
}

// DirResourceLoader resolves resource names relative to a directory.
type DirResourceLoader struct {
	Dir string
}

// Open opens the named resource below the loader's directory.
func (l DirResourceLoader) Open(name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(l.Dir, name))
}

// FactoryConfig carries everything a factory needs to build and start a
// reporter.
type FactoryConfig struct {
	// PluginName is the descriptor name the reporter is loaded under.
	PluginName string

	// RegistryName is the resolved registry name at load time. Reporters
	// key their output on it; it does not change for a running reporter
	// even if the registry is later swapped under a new name.
	RegistryName string

	// Registry is the registry the reporter reads from.
	Registry *metrics.Registry

	// Loader resolves resources referenced from Args.
	Loader ResourceLoader

	// Logger is pre-tagged with the plugin name and registry.
	Logger zerolog.Logger

	// Args are the plugin-specific arguments from the descriptor.
	Args map[string]string
}

// Factory builds and starts a reporter. A returned error marks the plugin
// as failed; the reporter must not be left half-started.
type Factory func(cfg FactoryConfig) (Reporter, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]Factory)
)

// RegisterFactory registers a factory under a plugin type. Built-in types
// register themselves; external reporter implementations register before
// any plugins of their type are loaded. Re-registering a type replaces the
// previous factory.
func RegisterFactory(pluginType string, f Factory) {
	factoriesMu.Lock()
	factories[pluginType] = f
	factoriesMu.Unlock()
}

func lookupFactory(pluginType string) (Factory, bool) {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	f, ok := factories[pluginType]
	return f, ok
}
