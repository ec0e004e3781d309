//go:build prod

package edgeentry

// HotReload is a stub for production builds
type HotReload struct{}

// newHotReload returns nil in production (hot reload disabled)
func newHotReload(engine *Engine) *HotReload {
	return nil
}

// Start is a no-op in production
func (hr *HotReload) Start() {}

// Stop is a no-op in production
func (hr *HotReload) Stop() {}

// Watch is a no-op in production
func (hr *HotReload) Watch(paths []string) {}
