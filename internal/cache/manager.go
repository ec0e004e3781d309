package cache

import (
	"sync"
)

// LocalCache is an in-memory cache implementation
// It implements the Cache interface
type LocalCache struct {
	entries          *entries
	pageModules      *pageModules
	pageDependencies *pageDependencies
	pageFingerprints *pageFingerprints
}

// NewLocalCache creates a new in-memory cache
func NewLocalCache() *LocalCache {
	return &LocalCache{
		entries: &entries{
			sources: make(map[string]string),
			lock:    sync.RWMutex{},
		},
		pageModules: &pageModules{
			modules: make(map[string]string),
			lock:    sync.RWMutex{},
		},
		pageDependencies: &pageDependencies{
			dependencies: make(map[string][]string),
			lock:         sync.RWMutex{},
		},
		pageFingerprints: &pageFingerprints{
			fingerprints: make(map[string]string),
			lock:         sync.RWMutex{},
		},
	}
}

type entries struct {
	sources map[string]string
	lock    sync.RWMutex
}

func (cm *LocalCache) GetEntry(fingerprint string) (string, bool) {
	cm.entries.lock.RLock()
	defer cm.entries.lock.RUnlock()
	source, ok := cm.entries.sources[fingerprint]
	return source, ok
}

func (cm *LocalCache) SetEntry(fingerprint, source string) {
	cm.entries.lock.Lock()
	defer cm.entries.lock.Unlock()
	cm.entries.sources[fingerprint] = source
}

func (cm *LocalCache) RemoveEntry(fingerprint string) {
	cm.entries.lock.Lock()
	defer cm.entries.lock.Unlock()
	if _, ok := cm.entries.sources[fingerprint]; !ok {
		return
	}
	delete(cm.entries.sources, fingerprint)
}

type pageModules struct {
	modules map[string]string
	lock    sync.RWMutex
}

func (cm *LocalCache) SetPageModule(page, modulePath string) {
	cm.pageModules.lock.Lock()
	defer cm.pageModules.lock.Unlock()
	cm.pageModules.modules[page] = modulePath
}

func (cm *LocalCache) getPagesForModule(modulePath string) []string {
	cm.pageModules.lock.RLock()
	defer cm.pageModules.lock.RUnlock()
	var pages []string
	for page, module := range cm.pageModules.modules {
		if module == modulePath {
			pages = append(pages, page)
		}
	}
	return pages
}

func (cm *LocalCache) GetAllPages() []string {
	cm.pageModules.lock.RLock()
	defer cm.pageModules.lock.RUnlock()
	pages := make([]string, 0, len(cm.pageModules.modules))
	for page := range cm.pageModules.modules {
		pages = append(pages, page)
	}
	return pages
}

// GetAllModulePaths returns every module path referenced by a synthesized
// page, primary modules and wrapper dependencies alike. The hot reload
// watcher uses it to know which files to watch.
func (cm *LocalCache) GetAllModulePaths() []string {
	seen := make(map[string]bool)
	var paths []string

	cm.pageModules.lock.RLock()
	for _, module := range cm.pageModules.modules {
		if !seen[module] {
			seen[module] = true
			paths = append(paths, module)
		}
	}
	cm.pageModules.lock.RUnlock()

	cm.pageDependencies.lock.RLock()
	for _, dependencies := range cm.pageDependencies.dependencies {
		for _, dependency := range dependencies {
			if !seen[dependency] {
				seen[dependency] = true
				paths = append(paths, dependency)
			}
		}
	}
	cm.pageDependencies.lock.RUnlock()

	return paths
}

// GetPagesWithModule returns the pages whose primary module or wrapper
// dependencies reference the given path.
func (cm *LocalCache) GetPagesWithModule(modulePath string) []string {
	pages := cm.getPagesForModule(modulePath)

	cm.pageDependencies.lock.RLock()
	defer cm.pageDependencies.lock.RUnlock()
	for page, dependencies := range cm.pageDependencies.dependencies {
		for _, dependency := range dependencies {
			if dependency == modulePath {
				pages = append(pages, page)
				break
			}
		}
	}
	return pages
}

type pageDependencies struct {
	dependencies map[string][]string
	lock         sync.RWMutex
}

func (cm *LocalCache) SetPageDependencies(page string, dependencies []string) {
	cm.pageDependencies.lock.Lock()
	defer cm.pageDependencies.lock.Unlock()
	cm.pageDependencies.dependencies[page] = dependencies
}

type pageFingerprints struct {
	fingerprints map[string]string
	lock         sync.RWMutex
}

func (cm *LocalCache) SetPageFingerprint(page, fingerprint string) {
	cm.pageFingerprints.lock.Lock()
	defer cm.pageFingerprints.lock.Unlock()
	cm.pageFingerprints.fingerprints[page] = fingerprint
}

func (cm *LocalCache) GetPageFingerprint(page string) (string, bool) {
	cm.pageFingerprints.lock.RLock()
	defer cm.pageFingerprints.lock.RUnlock()
	fingerprint, ok := cm.pageFingerprints.fingerprints[page]
	return fingerprint, ok
}

// Clear removes all cached data
func (cm *LocalCache) Clear() {
	cm.entries.lock.Lock()
	cm.entries.sources = make(map[string]string)
	cm.entries.lock.Unlock()

	cm.pageModules.lock.Lock()
	cm.pageModules.modules = make(map[string]string)
	cm.pageModules.lock.Unlock()

	cm.pageDependencies.lock.Lock()
	cm.pageDependencies.dependencies = make(map[string][]string)
	cm.pageDependencies.lock.Unlock()

	cm.pageFingerprints.lock.Lock()
	cm.pageFingerprints.fingerprints = make(map[string]string)
	cm.pageFingerprints.lock.Unlock()
}
