package metrics

import (
	"sync"
)

// Manager is the process-wide registry store. It maps hierarchical registry
// names to registries and is shared by all cores in the process; callers
// scope their own reporters by tag, not by exclusive registry ownership.
type Manager struct {
	mu         sync.Mutex
	registries map[string]*Registry
}

// NewManager creates an empty registry store.
func NewManager() *Manager {
	return &Manager{
		registries: make(map[string]*Registry),
	}
}

// Registry returns the registry stored under name, creating it on first use.
func (m *Manager) Registry(name string) *Registry {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.registries[name]; ok {
		return r
	}
	r := newRegistry(name)
	m.registries[name] = r
	return r
}

// Lookup returns the registry stored under name, or nil if absent.
func (m *Manager) Lookup(name string) *Registry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registries[name]
}

// Remove deletes the registry stored under name. Removing an absent name is
// a no-op.
func (m *Manager) Remove(name string) {
	m.mu.Lock()
	delete(m.registries, name)
	m.mu.Unlock()
}

// Names returns the names of all stored registries.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.registries))
	for name := range m.registries {
		names = append(names, name)
	}
	return names
}

// Swap exchanges the registries stored under the two names, so metrics
// already collected under oldName carry over to newName across a core
// rename. Either side may be absent.
func (m *Manager) Swap(oldName, newName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	oldReg, hasOld := m.registries[oldName]
	newReg, hasNew := m.registries[newName]
	if hasOld {
		oldReg.setName(newName)
		m.registries[newName] = oldReg
	} else {
		delete(m.registries, newName)
	}
	if hasNew {
		newReg.setName(oldName)
		m.registries[oldName] = newReg
	} else {
		delete(m.registries, oldName)
	}
}
