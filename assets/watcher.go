// Package assets watches a directory of exported scene files and re-runs
// physics metadata validation whenever one changes, so a broken export shows
// up while the artist still has the source file open.
package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/anima-physics/core"
	"github.com/spaghettifunk/anima-physics/material"
	"github.com/spaghettifunk/anima-physics/scene"
)

// SceneInfo is the last validation result for one scene file.
type SceneInfo struct {
	Path        string
	LastChecked time.Time
	Nodes       int
	Physical    int
	Broken      int
}

// Editors write exported files in bursts; a revalidation inside this window
// of the last one is skipped.
const revalidateWindow = 500 * time.Millisecond

// SceneWatcher revalidates exported .gltf/.glb files as they are written.
type SceneWatcher struct {
	scenes  map[string]SceneInfo
	library *material.Library // may be nil: no material checking

	mutex sync.RWMutex

	done      chan struct{}
	fsnotify  *fsnotify.Watcher
	isClosed  bool
	isRunning bool
}

func NewSceneWatcher(lib *material.Library) (*SceneWatcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &SceneWatcher{
		scenes:   make(map[string]SceneInfo),
		library:  lib,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}, nil
}

// Initialize validates everything already under scenesDir and starts
// watching it recursively.
func (sw *SceneWatcher) Initialize(scenesDir string) error {
	sw.mutex.Lock()
	if sw.isClosed {
		sw.mutex.Unlock()
		return errors.New("scene watcher already closed")
	}
	sw.isRunning = true
	sw.mutex.Unlock()

	go sw.start()

	if err := sw.addRecursive(scenesDir); err != nil {
		return err
	}
	return nil
}

// Close stops the watch loop. When the loop was never started the fsnotify
// watcher is closed here, so an initialized-then-closed and a never-
// initialized watcher both release their file descriptor.
func (sw *SceneWatcher) Close() {
	sw.mutex.Lock()
	defer sw.mutex.Unlock()
	if sw.isClosed {
		return
	}
	sw.isClosed = true
	close(sw.done)
	if !sw.isRunning {
		sw.fsnotify.Close()
	}
}

// Scenes returns a snapshot of the validation results, keyed by path.
func (sw *SceneWatcher) Scenes() map[string]SceneInfo {
	sw.mutex.RLock()
	defer sw.mutex.RUnlock()
	out := make(map[string]SceneInfo, len(sw.scenes))
	for k, v := range sw.scenes {
		out[k] = v
	}
	return out
}

func (sw *SceneWatcher) addRecursive(name string) error {
	sw.mutex.RLock()
	closed := sw.isClosed
	sw.mutex.RUnlock()
	if closed {
		return errors.New("scene watcher already closed")
	}
	return sw.watchRecursive(name, false)
}

func (sw *SceneWatcher) start() {
	for {
		select {

		case e := <-sw.fsnotify.Events:
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					sw.watchRecursive(e.Name, false)
				}
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				sw.handleFileEvent(e.Name)
			}
			if e.Op&fsnotify.Remove != 0 {
				sw.removeScene(e.Name)
				sw.fsnotify.Remove(e.Name)
			}

		case e := <-sw.fsnotify.Errors:
			core.LogError(e.Error())

		case <-sw.done:
			sw.fsnotify.Close()
			return
		}
	}
}

// watchRecursive adds all directories under the given one to the watch list
// and validates every scene file it passes on the way.
func (sw *SceneWatcher) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				if err = sw.fsnotify.Remove(walkPath); err != nil {
					return err
				}
			} else {
				if err = sw.fsnotify.Add(walkPath); err != nil {
					return err
				}
			}
		} else {
			sw.handleFileEvent(walkPath)
		}
		return nil
	})
}

func isSceneFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return true
	}
	return false
}

// handleFileEvent revalidates a created or modified scene file, unless it
// was validated a moment ago: exporters fire several write events per save.
func (sw *SceneWatcher) handleFileEvent(path string) {
	if !isSceneFile(path) {
		return
	}

	sw.mutex.RLock()
	prev, seen := sw.scenes[path]
	sw.mutex.RUnlock()
	if seen && time.Since(prev.LastChecked) < revalidateWindow {
		return
	}

	info := sw.validate(path)

	sw.mutex.Lock()
	sw.scenes[path] = info
	sw.mutex.Unlock()
}

func (sw *SceneWatcher) removeScene(path string) {
	sw.mutex.Lock()
	defer sw.mutex.Unlock()
	delete(sw.scenes, path)
}

func (sw *SceneWatcher) validate(path string) SceneInfo {
	info := SceneInfo{Path: path, LastChecked: time.Now()}

	_, nodes, err := scene.Load(path)
	if err != nil {
		core.LogError("%s: %v", path, err)
		info.Broken = 1
		return info
	}

	info.Nodes = len(nodes)
	for _, n := range nodes {
		if n.Err != nil {
			core.LogWarn("%s: %v", path, n.Err)
			info.Broken++
			continue
		}
		if !n.Participates() {
			continue
		}
		info.Physical++
		if sw.library != nil {
			if err := sw.library.Check(n.Extras.Material); err != nil {
				core.LogWarn("%s: node %d (%q): %v", path, n.Index, n.Name, err)
				info.Broken++
			}
		}
	}

	core.LogInfo("%s: %d nodes, %d with physics, %d broken", path, info.Nodes, info.Physical, info.Broken)
	return info
}
