package metrics

// Producer is implemented by components that attach instruments to a
// registry. InitializeMetrics is called once per registration with the
// shared store, the resolved registry name and the producer's scope (a
// logical subsystem path such as "/select" or "cache/query").
type Producer interface {
	InitializeMetrics(m *Manager, registryName, scope string)
}
