package assets

import (
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/spaghettifunk/anima-physics/material"
	"github.com/spaghettifunk/anima-physics/scene"
)

func writeScene(t *testing.T, path string) {
	t.Helper()
	doc := &gltf.Document{
		Asset: gltf.Asset{Version: "2.0"},
		Nodes: []*gltf.Node{
			{Name: "floor", Extras: map[string]any{
				"physics_body":       "static",
				"physics_shape":      "mesh",
				"physics_is_trigger": false,
				"physics_layer":      float64(1),
				"physics_mask":       float64(1),
				"physics_material":   "concrete",
			}},
			{Name: "prop"},
			{Name: "broken", Extras: map[string]any{"physics_shape": "torus"}},
		},
	}
	if err := scene.Save(doc, path); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func TestIsSceneFile(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"level.gltf", true},
		{"level.GLB", true},
		{"level.blend", false},
		{"notes.txt", false},
	}
	for _, c := range cases {
		if got := isSceneFile(c.path); got != c.want {
			t.Fatalf("isSceneFile(%q) = %v, expected %v", c.path, got, c.want)
		}
	}
}

func TestHandleFileEventValidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "level.gltf")
	writeScene(t, path)

	sw, err := NewSceneWatcher(nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer sw.Close()

	sw.handleFileEvent(path)
	sw.handleFileEvent(filepath.Join(dir, "ignored.txt"))

	scenes := sw.Scenes()
	if len(scenes) != 1 {
		t.Fatalf("expected 1 validated scene, got %d", len(scenes))
	}
	info := scenes[path]
	if info.Nodes != 3 || info.Physical != 1 || info.Broken != 1 {
		t.Fatalf("unexpected result %+v", info)
	}

	sw.removeScene(path)
	if len(sw.Scenes()) != 0 {
		t.Fatalf("removed scene must drop out of the results")
	}
}

func TestHandleFileEventDebounces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "level.gltf")
	writeScene(t, path)

	sw, err := NewSceneWatcher(nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer sw.Close()

	// A save fires several write events in quick succession; only the
	// first one within the window does any work.
	sw.handleFileEvent(path)
	first := sw.Scenes()[path]
	sw.handleFileEvent(path)
	second := sw.Scenes()[path]
	if !second.LastChecked.Equal(first.LastChecked) {
		t.Fatalf("back-to-back events must validate once, got %v then %v",
			first.LastChecked, second.LastChecked)
	}

	// Once the entry is stale the next event revalidates.
	sw.mutex.Lock()
	stale := sw.scenes[path]
	stale.LastChecked = stale.LastChecked.Add(-2 * revalidateWindow)
	sw.scenes[path] = stale
	sw.mutex.Unlock()

	sw.handleFileEvent(path)
	third := sw.Scenes()[path]
	if !third.LastChecked.After(stale.LastChecked) {
		t.Fatalf("stale scene must revalidate")
	}
}

func TestCloseWithoutInitialize(t *testing.T) {
	sw, err := NewSceneWatcher(nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}

	sw.Close()
	sw.Close() // second close is a no-op

	// The fsnotify descriptor must be released even though the watch loop
	// never ran.
	if err := sw.fsnotify.Add(t.TempDir()); err == nil {
		t.Fatalf("fsnotify watcher must be closed")
	}
	if err := sw.addRecursive(t.TempDir()); err == nil {
		t.Fatalf("addRecursive after close must fail")
	}
	if err := sw.Initialize(t.TempDir()); err == nil {
		t.Fatalf("initialize after close must fail")
	}
}

func TestValidateChecksMaterials(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "level.gltf")
	writeScene(t, path)

	lib, err := material.ParseLibrary([]byte("[materials.wood]\nfriction = 0.4\nrestitution = 0.2\n"))
	if err != nil {
		t.Fatalf("library: %v", err)
	}

	sw, err := NewSceneWatcher(lib)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer sw.Close()

	// "concrete" is not in the library, so the floor counts as broken too.
	info := sw.validate(path)
	if info.Broken != 2 {
		t.Fatalf("expected 2 broken (bad enum + unknown material), got %+v", info)
	}
}

func TestValidateMissingFile(t *testing.T) {
	sw, err := NewSceneWatcher(nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer sw.Close()

	info := sw.validate(filepath.Join(t.TempDir(), "gone.gltf"))
	if info.Broken == 0 {
		t.Fatalf("unreadable file must count as broken")
	}
}
