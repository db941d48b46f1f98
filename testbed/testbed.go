/*
Package testbed drives the whole pipeline end to end: it authors physics
metadata on a small scene, exports it to a glTF file and reads it back the
way the engine loader would. Useful to eyeball the contract and as a smoke
test for the tooling.
*/
package testbed

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/qmuntal/gltf"

	"github.com/spaghettifunk/anima-physics/authoring"
	"github.com/spaghettifunk/anima-physics/core"
	"github.com/spaghettifunk/anima-physics/physics"
	"github.com/spaghettifunk/anima-physics/scene"
)

// Run authors a demo scene, writes it to dir and decodes it back.
func Run(dir string) error {
	doc := &gltf.Document{
		Asset: gltf.Asset{Version: "2.0", Generator: "anima-physics testbed"},
		Nodes: []*gltf.Node{
			{Name: "floor"},
			{Name: "crate"},
			{Name: "checkpoint"},
			{Name: "camera_rig"},
		},
	}

	session := authoring.NewSession()
	index := make(map[uuid.UUID]int, len(doc.Nodes))

	// Persist every bag into the document as it is edited, the way the
	// editor panel mirrors edits into the node's custom properties.
	session.OnSync(func(id uuid.UUID, bag physics.PropertyBag) {
		if i, ok := index[id]; ok {
			if e, ok := session.Extras(id); ok {
				if err := scene.Apply(doc, i, e); err != nil {
					core.LogError("apply: %v", err)
				}
			}
		}
	})

	floor := session.Attach("floor")
	index[floor] = 0
	crate := session.Attach("crate")
	index[crate] = 1
	checkpoint := session.Attach("checkpoint")
	index[checkpoint] = 2
	// camera_rig gets no record at all: it must come back non-participating.

	if err := author(session, floor, crate, checkpoint); err != nil {
		return err
	}

	path := filepath.Join(dir, "testbed.gltf")
	if err := scene.Save(doc, path); err != nil {
		return err
	}
	core.LogInfo("exported %s", path)

	_, nodes, err := scene.Load(path)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		if n.Err != nil {
			return fmt.Errorf("testbed: %w", n.Err)
		}
		if !n.Participates() {
			core.LogInfo("node %d (%s): no physics", n.Index, n.Name)
			continue
		}
		core.LogInfo("node %d (%s): body=%s shape=%s trigger=%v layer=%d mask=%d material=%q",
			n.Index, n.Name, n.Extras.Body, n.Extras.Shape,
			n.Extras.IsTrigger, n.Extras.Layer, n.Extras.Mask, n.Extras.Material)
		if n.Extras.Dynamic() {
			core.LogInfo("node %d (%s): mass=%.3f gravity=%.2f damping=%.2f/%.2f",
				n.Index, n.Name, n.Extras.Mass, n.Extras.GravityScale,
				n.Extras.LinearDamping, n.Extras.AngularDamping)
		}
	}
	return nil
}

func author(s *authoring.Session, floor, crate, checkpoint uuid.UUID) error {
	steps := []error{
		s.SetBody(floor, physics.BodyStatic),
		s.SetShape(floor, physics.ShapeMesh),
		s.SetMaterial(floor, "concrete"),

		s.SetBody(crate, physics.BodyDynamic),
		s.SetShape(crate, physics.ShapeBox),
		s.SetMass(crate, 2.5),
		s.SetLinearDamping(crate, 0.1),
		s.SetMaterial(crate, "wood"),

		s.SetShape(checkpoint, physics.ShapeBox),
		s.SetTrigger(checkpoint, true),
		s.SetLayer(checkpoint, 2),
		s.SetMask(checkpoint, 1),
	}
	for _, err := range steps {
		if err != nil {
			return err
		}
	}
	return nil
}
