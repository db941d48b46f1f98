package main

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/spaghettifunk/anima-physics/material"
	"github.com/spaghettifunk/anima-physics/physics"
	"github.com/spaghettifunk/anima-physics/scene"
)

func writeTestScene(t *testing.T, dir string, broken bool) string {
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
				"physics_material":   "wood",
			}},
		},
	}
	if broken {
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:   "typo",
			Extras: map[string]any{"physics_body": "dynamc"},
		})
	}
	path := filepath.Join(dir, "level.gltf")
	if err := scene.Save(doc, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	return path
}

func TestValidateLenientCountsBrokenNodes(t *testing.T) {
	path := writeTestScene(t, t.TempDir(), true)

	broken, err := validate(path, false, nil)
	if err != nil {
		t.Fatalf("lenient validate must not fail: %v", err)
	}
	if broken != 1 {
		t.Fatalf("expected 1 broken node, got %d", broken)
	}
}

func TestValidateStrictFailsOnFirstBrokenNode(t *testing.T) {
	path := writeTestScene(t, t.TempDir(), true)

	if _, err := validate(path, true, nil); err == nil {
		t.Fatalf("strict validate must fail")
	} else if !errors.Is(err, physics.ErrUnknownEnum) {
		t.Fatalf("expected ErrUnknownEnum, got %v", err)
	}

	// A clean scene passes strict mode.
	clean := writeTestScene(t, t.TempDir(), false)
	broken, err := validate(clean, true, nil)
	if err != nil || broken != 0 {
		t.Fatalf("clean scene must pass strict validate, got broken=%d err=%v", broken, err)
	}
}

func TestValidateChecksMaterialLibrary(t *testing.T) {
	path := writeTestScene(t, t.TempDir(), false)

	lib, err := material.ParseLibrary([]byte("[materials.ice]\nfriction = 0.02\nrestitution = 0.0\n"))
	if err != nil {
		t.Fatalf("library: %v", err)
	}

	// "wood" is not in the library, so the floor counts as broken.
	broken, err := validate(path, false, lib)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if broken != 1 {
		t.Fatalf("expected 1 broken node for the unknown material, got %d", broken)
	}
}
