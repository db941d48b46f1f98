// Package scene reads and writes the physics extras bags embedded in glTF
// scene files. It is the bridge between the portable codec in the physics
// package and the on-disk format the exporter produces.
package scene

import (
	"encoding/json"
	"fmt"

	"github.com/qmuntal/gltf"

	"github.com/spaghettifunk/anima-physics/physics"
)

// NodePhysics is one node's decoded physics metadata, paired with whatever
// went wrong while decoding it. A node with a decode error carries the
// default record.
type NodePhysics struct {
	Index  int
	Name   string
	Extras physics.Extras
	Err    error
}

// Participates reports whether the engine should create anything for the node.
func (n NodePhysics) Participates() bool {
	return n.Err == nil && n.Extras.Participates()
}

// ScanDocument decodes the physics extras of every node in the document,
// in node order. Nodes without a bag come back as the default record; nodes
// with a broken bag come back with Err set. Each node is independent, so one
// bad bag never hides the rest of the scene.
func ScanDocument(doc *gltf.Document) []NodePhysics {
	out := make([]NodePhysics, 0, len(doc.Nodes))
	for i, node := range doc.Nodes {
		np := NodePhysics{Index: i, Name: node.Name}
		bag, err := bagOf(node.Extras)
		if err == nil {
			np.Extras, err = physics.Decode(bag)
		}
		if err != nil {
			np.Extras = physics.DefaultExtras()
			np.Err = fmt.Errorf("node %d (%q): %w", i, node.Name, err)
		}
		out = append(out, np)
	}
	return out
}

// Load opens a scene file and scans it leniently: per-node errors are
// reported in the result, not returned.
func Load(path string) (*gltf.Document, []NodePhysics, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("scene: open %s: %w", path, err)
	}
	return doc, ScanDocument(doc), nil
}

// LoadStrict opens a scene file and fails on the first node whose bag does
// not decode. This is the loader policy for pipelines that would rather stop
// an export than ship a scene with broken metadata.
func LoadStrict(path string) (*gltf.Document, []NodePhysics, error) {
	doc, nodes, err := Load(path)
	if err != nil {
		return nil, nil, err
	}
	for _, n := range nodes {
		if n.Err != nil {
			return nil, nil, fmt.Errorf("scene: %s: %w", path, n.Err)
		}
	}
	return doc, nodes, nil
}

// Apply encodes the record onto the node's extras, replacing whatever
// physics keys were there before and leaving foreign extras keys alone.
func Apply(doc *gltf.Document, nodeIndex int, e physics.Extras) error {
	if nodeIndex < 0 || nodeIndex >= len(doc.Nodes) {
		return fmt.Errorf("scene: node index %d out of range (%d nodes)", nodeIndex, len(doc.Nodes))
	}
	node := doc.Nodes[nodeIndex]
	bag, err := bagOf(node.Extras)
	if err != nil {
		return fmt.Errorf("scene: node %d (%q): %w", nodeIndex, node.Name, err)
	}
	if bag == nil {
		bag = make(physics.PropertyBag)
	}
	physics.SyncBag(e, bag)
	if len(bag) == 0 {
		node.Extras = nil
		return nil
	}
	node.Extras = map[string]any(bag)
	return nil
}

// Save writes the document back to disk.
func Save(doc *gltf.Document, path string) error {
	if err := gltf.Save(doc, path); err != nil {
		return fmt.Errorf("scene: save %s: %w", path, err)
	}
	return nil
}

// bagOf normalizes the shapes a node's extras value can take. A freshly
// parsed document holds a map[string]any; a document still carrying raw JSON
// is unmarshalled; a non-object extras value (arrays, plain strings) simply
// has no physics keys in it.
func bagOf(extras any) (physics.PropertyBag, error) {
	switch v := extras.(type) {
	case nil:
		return nil, nil
	case physics.PropertyBag:
		return v, nil
	case map[string]any:
		return physics.PropertyBag(v), nil
	case json.RawMessage:
		return bagFromJSON(v)
	case []byte:
		return bagFromJSON(v)
	default:
		return nil, nil
	}
}

func bagFromJSON(raw []byte) (physics.PropertyBag, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("extras is not a JSON object: %w", err)
	}
	return physics.PropertyBag(m), nil
}
