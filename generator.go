package edgeentry

// Generator interface for custom code generation
// Implementations can emit route tables, manifest scaffolding, or any other
// artifacts derived from the synthesizer configuration
type Generator interface {
	// Generate is called during engine initialization (dev mode only)
	Generate(config *Config) error
}
