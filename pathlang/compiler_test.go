package pathlang

import (
	"testing"

	"github.com/gov-dx-sandbox/identity-authz-core/resourcepath"
)

func TestCompileMultiFieldRendersExpectedRoots(t *testing.T) {
	ps, err := ParseAndCompile("foo::{bar, baz}")
	if err != nil {
		t.Fatalf("ParseAndCompile() error = %v", err)
	}
	roots := resourcepath.RenderRoots(ps)
	if len(roots) != 1 || roots[0] != "foo::{bar, baz}" {
		t.Fatalf("RenderRoots() = %v", roots)
	}
}

func TestCompileCannotAppendToAny(t *testing.T) {
	_, err := ParseAndCompile("foo::{*, bar}")
	if err == nil {
		t.Fatal("expected a compile error: bar cannot be a sibling constructed under *")
	}
}

func TestRoundTripThroughRenderAndParse(t *testing.T) {
	originals := []string{
		"apiVersion",
		"foo::{bar, baz}",
		`account(id: *)::{id, email}`,
		`authenticate(email: "x@y", password: "p")::accessToken`,
		"foo(k: BAR)",
	}
	for _, text := range originals {
		ps, err := ParseAndCompile(text)
		if err != nil {
			t.Fatalf("ParseAndCompile(%q) error = %v", text, err)
		}
		rendered := resourcepath.RenderRoots(ps)
		if len(rendered) != 1 {
			t.Fatalf("expected exactly one root for %q, got %v", text, rendered)
		}
		reparsed, err := ParseAndCompile(rendered[0])
		if err != nil {
			t.Fatalf("re-parsing rendered form %q: %v", rendered[0], err)
		}
		if got := resourcepath.RenderRoots(reparsed); len(got) != 1 || got[0] != rendered[0] {
			t.Fatalf("round trip mismatch: %q -> %v", rendered[0], got)
		}
	}
}
