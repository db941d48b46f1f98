package material

import (
	"strings"
	"testing"
)

const sample = `
[materials.wood]
friction = 0.4
restitution = 0.2

[materials.ice]
friction = 0.02
restitution = 0.0

[materials.rubber]
friction = 0.9
restitution = 0.8
`

func TestParseLibrary(t *testing.T) {
	lib, err := ParseLibrary([]byte(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	wood, ok := lib.Resolve("wood")
	if !ok {
		t.Fatalf("wood must resolve")
	}
	if wood.Friction != 0.4 || wood.Restitution != 0.2 {
		t.Fatalf("wood decoded wrong: %+v", wood)
	}

	if _, ok := lib.Resolve("lava"); ok {
		t.Fatalf("lava must not resolve")
	}

	names := lib.Names()
	want := []string{"ice", "rubber", "wood"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestParseLibraryRejectsNegativeValues(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"negative_friction", "[materials.bad]\nfriction = -0.1\nrestitution = 0.0\n"},
		{"negative_restitution", "[materials.bad]\nfriction = 0.1\nrestitution = -1.0\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := ParseLibrary([]byte(c.body)); err == nil {
				t.Fatalf("expected an error")
			} else if !strings.Contains(err.Error(), "bad") {
				t.Fatalf("error must name the material, got %v", err)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	lib, err := ParseLibrary([]byte(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := lib.Check(""); err != nil {
		t.Fatalf("empty name must pass: %v", err)
	}
	if err := lib.Check("wood"); err != nil {
		t.Fatalf("known name must pass: %v", err)
	}
	if err := lib.Check("cheese"); err == nil {
		t.Fatalf("unknown name must fail")
	}
}

func TestParseEmptyLibrary(t *testing.T) {
	lib, err := ParseLibrary([]byte(""))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(lib.Names()) != 0 {
		t.Fatalf("expected no materials, got %v", lib.Names())
	}
	if err := lib.Check("anything"); err == nil {
		t.Fatalf("any name must fail against an empty library")
	}
}
