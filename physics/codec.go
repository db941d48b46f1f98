package physics

import "math"

// PropertyBag is the sparse key->scalar extras map attached to a scene node
// on export. Values are floats, integers, booleans or strings; a key is
// present exactly when the matching Extras field is meaningful.
type PropertyBag map[string]any

// The closed key set of the interchange contract.
const (
	KeyBody           = "physics_body"
	KeyShape          = "physics_shape"
	KeyMass           = "physics_mass"
	KeyGravityScale   = "physics_gravity_scale"
	KeyLinearDamping  = "physics_linear_damping"
	KeyAngularDamping = "physics_angular_damping"
	KeyIsTrigger      = "physics_is_trigger"
	KeyLayer          = "physics_layer"
	KeyMask           = "physics_mask"
	KeyMaterial       = "physics_material"
)

// Keys lists every physics key, in the order decode inspects them.
var Keys = []string{
	KeyBody,
	KeyShape,
	KeyMass,
	KeyGravityScale,
	KeyLinearDamping,
	KeyAngularDamping,
	KeyIsTrigger,
	KeyLayer,
	KeyMask,
	KeyMaterial,
}

// Encode derives a fresh bag from the record. Each key is guarded
// independently on the input record; anything whose guard is false is absent.
// Pure: same record, same bag.
func Encode(e Extras) PropertyBag {
	bag := make(PropertyBag)
	SyncBag(e, bag)
	return bag
}

// SyncBag is the update-in-place form of Encode: it writes every key whose
// guard holds and deletes every physics key whose guard does not, so stale
// values from a previous record can never survive. Keys outside the physics
// set are left alone, since the node's extras map is shared with other
// exporters.
func SyncBag(e Extras, bag PropertyBag) {
	hasBody := e.Body != BodyNone
	hasShape := e.Shape != ShapeNone
	hasPhysics := hasBody || hasShape
	isDynamic := e.Body == BodyDynamic

	syncKey(bag, KeyBody, e.Body.String(), hasBody)
	syncKey(bag, KeyShape, e.Shape.String(), hasShape)

	syncKey(bag, KeyMass, e.Mass, isDynamic)
	syncKey(bag, KeyGravityScale, e.GravityScale, isDynamic)
	syncKey(bag, KeyLinearDamping, e.LinearDamping, isDynamic)
	syncKey(bag, KeyAngularDamping, e.AngularDamping, isDynamic)

	syncKey(bag, KeyIsTrigger, e.IsTrigger, hasPhysics)
	syncKey(bag, KeyLayer, e.Layer, hasPhysics)
	syncKey(bag, KeyMask, e.Mask, hasPhysics)

	syncKey(bag, KeyMaterial, e.Material, hasPhysics && e.Material != "")
}

func syncKey(bag PropertyBag, key string, value any, present bool) {
	if present {
		bag[key] = value
	} else {
		delete(bag, key)
	}
}

// Decode reads a bag back into a record. Absent keys yield the documented
// defaults, so the empty bag decodes to DefaultExtras with both enums at
// None. Keys outside the physics set are ignored. Cross-field consistency is
// not checked (a mass with no body decodes fine), and ranges are not
// re-validated: the producing tool clamps, the decoder passes values through.
// The only failures are a wrong scalar kind or an unknown enum string, both
// reported as a *BagError naming the key; on error the returned record is
// the defaults and must not be used. Keys are inspected in the fixed order
// of Keys, so the reported key is deterministic.
func Decode(bag PropertyBag) (Extras, error) {
	e := DefaultExtras()

	if v, ok := bag[KeyBody]; ok {
		s, ok := v.(string)
		if !ok {
			return DefaultExtras(), &BagError{Key: KeyBody, Value: v, Err: ErrMalformedBag}
		}
		b, err := ParseBody(s)
		if err != nil {
			return DefaultExtras(), &BagError{Key: KeyBody, Value: s, Err: ErrUnknownEnum}
		}
		e.Body = b
	}
	if v, ok := bag[KeyShape]; ok {
		s, ok := v.(string)
		if !ok {
			return DefaultExtras(), &BagError{Key: KeyShape, Value: v, Err: ErrMalformedBag}
		}
		sh, err := ParseShape(s)
		if err != nil {
			return DefaultExtras(), &BagError{Key: KeyShape, Value: s, Err: ErrUnknownEnum}
		}
		e.Shape = sh
	}

	floats := []struct {
		key string
		dst *float32
	}{
		{KeyMass, &e.Mass},
		{KeyGravityScale, &e.GravityScale},
		{KeyLinearDamping, &e.LinearDamping},
		{KeyAngularDamping, &e.AngularDamping},
	}
	for _, f := range floats {
		if v, ok := bag[f.key]; ok {
			fv, ok := asFloat32(v)
			if !ok {
				return DefaultExtras(), &BagError{Key: f.key, Value: v, Err: ErrMalformedBag}
			}
			*f.dst = fv
		}
	}

	if v, ok := bag[KeyIsTrigger]; ok {
		b, ok := v.(bool)
		if !ok {
			return DefaultExtras(), &BagError{Key: KeyIsTrigger, Value: v, Err: ErrMalformedBag}
		}
		e.IsTrigger = b
	}

	uints := []struct {
		key string
		dst *uint32
	}{
		{KeyLayer, &e.Layer},
		{KeyMask, &e.Mask},
	}
	for _, u := range uints {
		if v, ok := bag[u.key]; ok {
			uv, ok := asUint32(v)
			if !ok {
				return DefaultExtras(), &BagError{Key: u.key, Value: v, Err: ErrMalformedBag}
			}
			*u.dst = uv
		}
	}

	if v, ok := bag[KeyMaterial]; ok {
		s, ok := v.(string)
		if !ok {
			return DefaultExtras(), &BagError{Key: KeyMaterial, Value: v, Err: ErrMalformedBag}
		}
		e.Material = s
	}

	return e, nil
}

// JSON carries a single number kind, so a float field may arrive as float64
// and an integer field as a whole float. Both directions are normalized here;
// every other kind is left to fail as malformed.
func asFloat32(v any) (float32, bool) {
	switch n := v.(type) {
	case float32:
		return n, true
	case float64:
		return float32(n), true
	case int:
		return float32(n), true
	case int64:
		return float32(n), true
	case uint32:
		return float32(n), true
	}
	return 0, false
}

func asUint32(v any) (uint32, bool) {
	switch n := v.(type) {
	case uint32:
		return n, true
	case int:
		if n < 0 || int64(n) > math.MaxUint32 {
			return 0, false
		}
		return uint32(n), true
	case int64:
		if n < 0 || n > math.MaxUint32 {
			return 0, false
		}
		return uint32(n), true
	case uint64:
		if n > math.MaxUint32 {
			return 0, false
		}
		return uint32(n), true
	case float64:
		if n < 0 || n > math.MaxUint32 || n != float64(uint32(n)) {
			return 0, false
		}
		return uint32(n), true
	case float32:
		if n < 0 || float64(n) > math.MaxUint32 || n != float32(uint32(n)) {
			return 0, false
		}
		return uint32(n), true
	}
	return 0, false
}
