//go:build !prod

package edgeentry

import (
	"net/http"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
)

// HotReload watches the module files of synthesized routes and tells
// websocket subscribers which pages need re-synthesis when a file changes.
// The corresponding cache entries are dropped before the broadcast so the
// next Synthesize call regenerates.
type HotReload struct {
	engine   *Engine
	watcher  *fsnotify.Watcher
	server   *http.Server
	upgrader websocket.Upgrader

	mu          sync.Mutex
	connections map[*websocket.Conn]bool
	watched     map[string]bool
}

// invalidationMessage is the payload pushed to subscribers.
type invalidationMessage struct {
	Event string   `json:"event"`
	Pages []string `json:"pages"`
}

func newHotReload(engine *Engine) *HotReload {
	return &HotReload{
		engine:      engine,
		upgrader:    websocket.Upgrader{},
		connections: make(map[*websocket.Conn]bool),
		watched:     make(map[string]bool),
	}
}

// Start launches the websocket server and the file watcher.
func (hr *HotReload) Start() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		hr.engine.Logger.Error("Failed to create file watcher", "error", err)
		return
	}
	hr.watcher = watcher

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hr.handleSubscriber)
	hr.server = &http.Server{Addr: hr.engine.Config.HotReloadAddr, Handler: mux}

	go func() {
		hr.engine.Logger.Debug("Hot reload websocket listening", "addr", hr.engine.Config.HotReloadAddr)
		if err := hr.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			hr.engine.Logger.Error("Hot reload websocket server failed", "error", err)
		}
	}()

	go hr.watchForChanges()
}

// Stop closes the watcher, the server and all subscriber connections.
func (hr *HotReload) Stop() {
	if hr.watcher != nil {
		hr.watcher.Close()
	}
	if hr.server != nil {
		hr.server.Close()
	}

	hr.mu.Lock()
	defer hr.mu.Unlock()
	for conn := range hr.connections {
		conn.Close()
	}
	hr.connections = make(map[*websocket.Conn]bool)
}

// Watch adds module files to the watch set. Paths already watched or empty
// are skipped.
func (hr *HotReload) Watch(paths []string) {
	if hr.watcher == nil {
		return
	}

	hr.mu.Lock()
	defer hr.mu.Unlock()
	for _, path := range paths {
		if path == "" || hr.watched[path] {
			continue
		}
		if err := hr.watcher.Add(path); err != nil {
			hr.engine.Logger.Debug("Failed to watch module file", "path", path, "error", err)
			continue
		}
		hr.watched[path] = true
	}
}

func (hr *HotReload) handleSubscriber(w http.ResponseWriter, r *http.Request) {
	conn, err := hr.upgrader.Upgrade(w, r, nil)
	if err != nil {
		hr.engine.Logger.Error("Failed to upgrade hot reload subscriber", "error", err)
		return
	}

	hr.mu.Lock()
	hr.connections[conn] = true
	hr.mu.Unlock()
	hr.engine.Logger.Debug("Hot reload subscriber connected", "remote", conn.RemoteAddr().String())
}

func (hr *HotReload) watchForChanges() {
	for {
		select {
		case event, ok := <-hr.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				hr.invalidate(event.Name)
			}
		case err, ok := <-hr.watcher.Errors:
			if !ok {
				return
			}
			hr.engine.Logger.Error("File watcher error", "error", err)
		}
	}
}

// invalidate drops the cached entries of every page referencing the changed
// file and notifies subscribers.
func (hr *HotReload) invalidate(modulePath string) {
	pages := hr.engine.Cache.GetPagesWithModule(modulePath)
	if len(pages) == 0 {
		return
	}

	for _, page := range pages {
		if fingerprint, ok := hr.engine.Cache.GetPageFingerprint(page); ok {
			hr.engine.Cache.RemoveEntry(fingerprint)
		}
	}

	hr.engine.Logger.Debug("Invalidated synthesized entries", "module", modulePath, "pages", pages)
	hr.broadcast(invalidationMessage{Event: "invalidate", Pages: pages})
}

func (hr *HotReload) broadcast(msg invalidationMessage) {
	hr.mu.Lock()
	defer hr.mu.Unlock()
	for conn := range hr.connections {
		if err := conn.WriteJSON(msg); err != nil {
			conn.Close()
			delete(hr.connections, conn)
		}
	}
}
