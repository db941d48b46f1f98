package physics

import "testing"

func TestEnumTables(t *testing.T) {
	bodies := []Body{BodyStatic, BodyDynamic, BodyKinematic}
	for _, b := range bodies {
		got, err := ParseBody(b.String())
		if err != nil {
			t.Fatalf("ParseBody(%q): %v", b.String(), err)
		}
		if got != b {
			t.Fatalf("ParseBody(%q) = %v, expected %v", b.String(), got, b)
		}
	}

	shapes := []Shape{ShapeBox, ShapeSphere, ShapeCapsule, ShapeConvex, ShapeMesh}
	for _, s := range shapes {
		got, err := ParseShape(s.String())
		if err != nil {
			t.Fatalf("ParseShape(%q): %v", s.String(), err)
		}
		if got != s {
			t.Fatalf("ParseShape(%q) = %v, expected %v", s.String(), got, s)
		}
	}

	// None is spelled by absence, never by string.
	if _, err := ParseBody("none"); err == nil {
		t.Fatalf("ParseBody(\"none\") must fail")
	}
	if _, err := ParseShape("none"); err == nil {
		t.Fatalf("ParseShape(\"none\") must fail")
	}
}

func TestParticipation(t *testing.T) {
	cases := []struct {
		name         string
		record       Extras
		participates bool
		dynamic      bool
	}{
		{"empty", Extras{}, false, false},
		{"body_only", Extras{Body: BodyStatic}, true, false},
		{"shape_only", Extras{Shape: ShapeSphere}, true, false},
		{"dynamic", Extras{Body: BodyDynamic}, true, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.record.Participates(); got != c.participates {
				t.Fatalf("Participates() = %v, expected %v", got, c.participates)
			}
			if got := c.record.Dynamic(); got != c.dynamic {
				t.Fatalf("Dynamic() = %v, expected %v", got, c.dynamic)
			}
		})
	}
}
