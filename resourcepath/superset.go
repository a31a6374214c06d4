package resourcepath

import "fmt"

// IsSupersetOf reports whether v covers other: Wildcard covers any value,
// otherwise the two must be equal.
func (v ArgumentValue) IsSupersetOf(other ArgumentValue) bool {
	if v.Kind == Wildcard {
		return true
	}
	return v.Equal(other)
}

// IsSupersetOf reports whether a covers other. The two arguments must
// share a name; passing mismatched names is a programmer error (as in the
// original algebra) and panics rather than silently returning false.
func (a Argument) IsSupersetOf(other Argument) bool {
	if a.Name != other.Name {
		panic(fmt.Sprintf("resourcepath: Argument.IsSupersetOf called with mismatched names %q, %q", a.Name, other.Name))
	}
	return a.Value.IsSupersetOf(other.Value)
}

// IsSupersetOf reports whether s covers other: Any covers everything;
// a Named segment covers another Named segment of the same name only when
// their argument shapes are comparable (both unconstrained, or both
// constrained) and every argument s carries is a superset of the
// same-named argument in other.
func (s Segment) IsSupersetOf(other Segment) bool {
	if s.Kind == AnySegment {
		return true
	}
	if other.Kind == AnySegment {
		return false
	}
	if s.Name != other.Name {
		return false
	}
	if (s.Args == nil) != (other.Args == nil) {
		return false
	}
	if s.Args == nil {
		return true
	}
	for name, arg := range s.Args {
		otherArg, ok := other.Args[name]
		if !ok {
			return false
		}
		if !arg.IsSupersetOf(otherArg) {
			return false
		}
	}
	return true
}

// findCoveringChild looks for a child of fields sharing other's segment
// name (or Any-ness) that is a superset of other. Matching is by name, not
// full structural key equality, so that a wildcard-argument child can
// cover a literal-argument child of the same field.
func findCoveringChild(fields map[string]*PathNode, other *PathNode) bool {
	for _, candidate := range fields {
		if candidate.Segment.Kind != other.Segment.Kind {
			continue
		}
		if candidate.Segment.Kind == NamedSegment && candidate.Segment.Name != other.Segment.Name {
			continue
		}
		if candidate.IsSupersetOf(other) {
			return true
		}
	}
	return false
}

// IsSupersetOf reports whether n covers other. If n already has an Any
// child, it covers everything below. If other has an Any child but n does
// not, n cannot cover it. Otherwise n's own segment must cover other's,
// and every child of other must be covered by some matching child of n.
func (n *PathNode) IsSupersetOf(other *PathNode) bool {
	if hasAny(n.Fields) {
		return true
	}
	if hasAny(other.Fields) {
		return false
	}
	if !n.Segment.IsSupersetOf(other.Segment) {
		return false
	}
	for _, otherChild := range other.Fields {
		if !findCoveringChild(n.Fields, otherChild) {
			return false
		}
	}
	return true
}

// IsSupersetOf reports whether ps covers other: every root of other must
// be covered by a same-named root of ps. ps may carry additional roots
// that other does not use.
func (ps *PathSet) IsSupersetOf(other *PathSet) bool {
	for _, otherRoot := range other.Roots {
		if !findCoveringChild(ps.Roots, otherRoot) {
			return false
		}
	}
	return true
}
