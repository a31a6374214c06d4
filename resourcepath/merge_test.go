package resourcepath

import "testing"

func TestPathSetExtendCreatesIntermediateNodes(t *testing.T) {
	ps := NewPathSet()
	if err := ps.Extend([]Segment{NewNamed("foo"), NewNamed("bar"), NewNamed("baz")}); err != nil {
		t.Fatalf("Extend() error = %v", err)
	}
	if got := RenderRoots(ps); len(got) != 1 || got[0] != "foo::bar::baz" {
		t.Fatalf("RenderRoots() = %v", got)
	}
}

func TestPathSetExtendCannotAppendToAny(t *testing.T) {
	ps := NewPathSet()
	if err := ps.Extend([]Segment{NewNamed("foo"), NewAny()}); err != nil {
		t.Fatalf("first extend: %v", err)
	}
	err := ps.Extend([]Segment{NewNamed("foo"), NewAny(), NewNamed("bar")})
	if err != ErrCannotAppendToAny {
		t.Fatalf("Extend() error = %v, want ErrCannotAppendToAny", err)
	}
}

func TestAppendAnyClearsExistingSiblings(t *testing.T) {
	root := NewPathNode(NewNamed("foo"))
	_, _ = root.Append(NewNamed("a"))
	_, _ = root.Append(NewNamed("b"))
	if len(root.Fields) != 2 {
		t.Fatalf("expected 2 siblings before Any, got %d", len(root.Fields))
	}
	if _, err := root.Append(NewAny()); err != nil {
		t.Fatalf("Append(Any) error = %v", err)
	}
	if len(root.Fields) != 1 || !hasAny(root.Fields) {
		t.Fatalf("Any should have erased its siblings, fields = %v", root.Fields)
	}
}

func TestMergeDisjointRootsBothSurvive(t *testing.T) {
	a := NewPathSet()
	_ = a.Extend([]Segment{NewNamed("foo")})
	b := NewPathSet()
	_ = b.Extend([]Segment{NewNamed("bar")})

	a.Merge(b)
	got := RenderRoots(a)
	if len(got) != 2 || got[0] != "bar" || got[1] != "foo" {
		t.Fatalf("RenderRoots() = %v", got)
	}
}

func TestMergeCommonRootUnionsChildren(t *testing.T) {
	a := NewPathSet()
	_ = a.Extend([]Segment{NewNamed("foo"), NewNamed("a")})
	b := NewPathSet()
	_ = b.Extend([]Segment{NewNamed("foo"), NewNamed("b")})

	a.Merge(b)
	got := RenderRoots(a)
	if len(got) != 1 || got[0] != "foo::{a, b}" {
		t.Fatalf("RenderRoots() = %v", got)
	}
}

func TestMergeAnyAbsorbsExistingChildren(t *testing.T) {
	a := NewPathSet()
	_ = a.Extend([]Segment{NewNamed("foo"), NewNamed("a")})
	_ = a.Extend([]Segment{NewNamed("foo"), NewNamed("b")})
	b := NewPathSet()
	_ = b.Extend([]Segment{NewNamed("foo"), NewAny()})

	a.Merge(b)
	root := a.Roots[NewNamed("foo").key()]
	if len(root.Fields) != 1 || !hasAny(root.Fields) {
		t.Fatalf("expected a single Any field after merge, got %v", root.Fields)
	}
}

func TestMergeIntoEmptyFieldsAbsorbsWholesale(t *testing.T) {
	a := NewPathSet()
	_ = a.Extend([]Segment{NewNamed("foo")})
	b := NewPathSet()
	_ = b.Extend([]Segment{NewNamed("foo"), NewNamed("bar")})

	a.Merge(b)
	got := RenderRoots(a)
	if len(got) != 1 || got[0] != "foo::bar" {
		t.Fatalf("RenderRoots() = %v", got)
	}
}

func TestMergeIdempotence(t *testing.T) {
	build := func() *PathSet {
		ps := NewPathSet()
		_ = ps.Extend([]Segment{NewNamed("foo"), NewNamed("a")})
		_ = ps.Extend([]Segment{NewNamed("foo"), NewNamed("b")})
		_ = ps.Extend([]Segment{NewNamed("apiVersion")})
		return ps
	}
	s := build()
	before := RenderRoots(s)
	s.Merge(build())
	after := RenderRoots(s)
	if len(before) != len(after) {
		t.Fatalf("merge(S, S) changed root count: %v -> %v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("merge(S, S) changed rendering: %v -> %v", before, after)
		}
	}
}
