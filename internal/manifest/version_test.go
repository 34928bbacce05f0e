package manifest

import (
	"testing"
)

func TestNormalizeConstraint(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"^1.2.3", ">=1.2.3.0, <2.0"},
		{"^1.2", ">=1.2.0, <2.0"},
		{"^3.12", ">=3.12.0, <4.0"},
		{"~2.0", ">=2.0, <3.0"},
		{">=3.0.*", ">=3.0, <4.0"},
		{"^2.31.0.post1", ">=2.31.0, <3.0"},
		{"1.2", "1.2.0"},
		{"1.2.0", "1.2.0"},
		{"==8.1.0", "==8.1.0"},
	}
	for _, c := range cases {
		got, err := NormalizeConstraint(c.in)
		if err != nil {
			t.Errorf("NormalizeConstraint(%q) returned error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("NormalizeConstraint(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeConstraintIdempotent(t *testing.T) {
	for _, in := range []string{"^1.2.3", "~2.0", ">=3.0.*", "^3.12"} {
		first, err := NormalizeConstraint(in)
		if err != nil {
			t.Fatalf("NormalizeConstraint(%q): %v", in, err)
		}
		second, err := NormalizeConstraint(first)
		if err != nil {
			t.Fatalf("re-normalizing %q: %v", first, err)
		}
		if second != first {
			t.Errorf("normalization not idempotent: %q -> %q -> %q", in, first, second)
		}
	}
}

func TestNormalizeConstraintInvalid(t *testing.T) {
	for _, in := range []string{">=bad", "^x.1", "~abc"} {
		if got, err := NormalizeConstraint(in); err == nil {
			t.Errorf("NormalizeConstraint(%q) = %q, expected error", in, got)
		}
	}
}

func TestDependencyName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"requests >=2.0.0, <3.0", "requests"},
		{"uvicorn[standard] >=0.23.0, <1.0", "uvicorn"},
		{"attrs", "attrs"},
	}
	for _, c := range cases {
		if got := DependencyName(c.in); got != c.want {
			t.Errorf("DependencyName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSplitNameConstraint(t *testing.T) {
	name, constraint := SplitNameConstraint("requests >=2.0.0, <3.0")
	if name != "requests" || constraint != ">=2.0.0, <3.0" {
		t.Errorf("unexpected split: %q / %q", name, constraint)
	}

	name, constraint = SplitNameConstraint("attrs")
	if name != "attrs" || constraint != "" {
		t.Errorf("unexpected split: %q / %q", name, constraint)
	}
}
