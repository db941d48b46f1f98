// Package material resolves the physics_material names carried in node
// extras against a library of surface definitions. The codec treats the
// name as an opaque string; the library is what gives it meaning on the
// engine side (friction and restitution of the collider).
package material

import (
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// Material is one named surface definition.
type Material struct {
	Friction    float32 `toml:"friction"`
	Restitution float32 `toml:"restitution"`
}

type libraryFile struct {
	Materials map[string]Material `toml:"materials"`
}

// Library is an immutable set of named materials loaded from a TOML file.
type Library struct {
	materials map[string]Material
}

// LoadLibrary reads a material library, for example:
//
//	[materials.wood]
//	friction = 0.4
//	restitution = 0.2
func LoadLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("material: read %s: %w", path, err)
	}
	lib, err := ParseLibrary(data)
	if err != nil {
		return nil, fmt.Errorf("material: parse %s: %w", path, err)
	}
	return lib, nil
}

// ParseLibrary decodes a library from TOML bytes.
func ParseLibrary(data []byte) (*Library, error) {
	var f libraryFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	for name, m := range f.Materials {
		if m.Friction < 0 {
			return nil, fmt.Errorf("material %q: negative friction %v", name, m.Friction)
		}
		if m.Restitution < 0 {
			return nil, fmt.Errorf("material %q: negative restitution %v", name, m.Restitution)
		}
	}
	if f.Materials == nil {
		f.Materials = make(map[string]Material)
	}
	return &Library{materials: f.Materials}, nil
}

// Resolve looks a material up by its extras name.
func (l *Library) Resolve(name string) (Material, bool) {
	m, ok := l.materials[name]
	return m, ok
}

// Names lists the library's material names, sorted.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.materials))
	for n := range l.materials {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Check reports an error when a node references a material the library
// does not define. Empty names are fine: the material key is optional.
func (l *Library) Check(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := l.materials[name]; !ok {
		return fmt.Errorf("material: %q is not in the library (have %v)", name, l.Names())
	}
	return nil
}
