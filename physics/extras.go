package physics

import "fmt"

// Body is the rigid body participation of a scene node.
type Body int

const (
	// The node takes no part in the simulation.
	BodyNone Body = iota
	// Fixed geometry (walls, floors). Never moves.
	BodyStatic
	// Simulated body with mass, moved by forces.
	BodyDynamic
	// Moved by code or animation, pushes dynamic bodies around.
	BodyKinematic
)

// Shape is the collision volume assigned to a scene node.
type Shape int

const (
	// No collider.
	ShapeNone Shape = iota
	// Cuboid.
	ShapeBox
	// Sphere.
	ShapeSphere
	// Capsule.
	ShapeCapsule
	// Convex hull wrapped around the mesh.
	ShapeConvex
	// Exact triangle mesh. Static geometry only.
	ShapeMesh
)

// Wire spellings of the two enums. BodyNone/ShapeNone deliberately have no
// entry: "no physics" is spelled by leaving the key out of the bag entirely,
// so "none" on the wire is just as unknown as any other stray string.
var bodyNames = map[Body]string{
	BodyStatic:    "static",
	BodyDynamic:   "dynamic",
	BodyKinematic: "kinematic",
}

var shapeNames = map[Shape]string{
	ShapeBox:     "box",
	ShapeSphere:  "sphere",
	ShapeCapsule: "capsule",
	ShapeConvex:  "convex",
	ShapeMesh:    "mesh",
}

var bodyValues = reverse(bodyNames)
var shapeValues = reverse(shapeNames)

func reverse[K comparable, V comparable](in map[K]V) map[V]K {
	out := make(map[V]K, len(in))
	for k, v := range in {
		out[v] = k
	}
	return out
}

func (b Body) String() string {
	if s, ok := bodyNames[b]; ok {
		return s
	}
	return "none"
}

func (s Shape) String() string {
	if n, ok := shapeNames[s]; ok {
		return n
	}
	return "none"
}

// ParseBody maps a wire string back onto a Body. The set is closed; anything
// outside it is ErrUnknownEnum so that a typo in an exported file is reported
// instead of silently degrading to "no physics".
func ParseBody(s string) (Body, error) {
	if b, ok := bodyValues[s]; ok {
		return b, nil
	}
	return BodyNone, fmt.Errorf("body %q: %w", s, ErrUnknownEnum)
}

// ParseShape maps a wire string back onto a Shape.
func ParseShape(s string) (Shape, error) {
	if sh, ok := shapeValues[s]; ok {
		return sh, nil
	}
	return ShapeNone, fmt.Errorf("shape %q: %w", s, ErrUnknownEnum)
}

// Extras is the physics metadata record carried per scene node. It is
// working state on the authoring side; the property bag produced by Encode
// is the interchange artifact. Fields use float32 because that is the width
// the engine decodes.
type Extras struct {
	Body  Body
	Shape Shape

	// Dynamic bodies only.
	Mass           float32
	GravityScale   float32
	LinearDamping  float32
	AngularDamping float32

	// Anything with a body or a shape.
	IsTrigger bool
	Layer     uint32
	Mask      uint32
	Material  string
}

// DefaultExtras returns the record every field decodes to when its key is
// absent from the bag.
func DefaultExtras() Extras {
	return Extras{
		Mass:         1.0,
		GravityScale: 1.0,
		Layer:        1,
		Mask:         1,
	}
}

// Participates reports whether the node takes part in physics at all.
// Both enums at None means the consuming engine creates nothing for the node.
func (e Extras) Participates() bool {
	return e.Body != BodyNone || e.Shape != ShapeNone
}

// Dynamic reports whether the mass/damping/gravity group is meaningful.
func (e Extras) Dynamic() bool {
	return e.Body == BodyDynamic
}
