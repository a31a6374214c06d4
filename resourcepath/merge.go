package resourcepath

import "errors"

// ErrCannotAppendToAny is returned when a path attempts to descend below an
// Any node (invariant 2).
var ErrCannotAppendToAny = errors.New("resourcepath: cannot append below an Any segment")

// Append inserts seg as a child of n, returning the (possibly pre-existing)
// child node. If seg is Any and n already has other children, those
// siblings are cleared first (invariant 1). Appending below a node whose
// own segment is Any, or a Named child beside an existing Any child, is
// rejected.
func (n *PathNode) Append(seg Segment) (*PathNode, error) {
	if n.Segment.Kind == AnySegment {
		return nil, ErrCannotAppendToAny
	}
	if seg.Kind != AnySegment && hasAny(n.Fields) {
		return nil, ErrCannotAppendToAny
	}
	if seg.Kind == AnySegment && len(n.Fields) > 0 {
		n.Fields = map[string]*PathNode{}
	}
	key := seg.key()
	if existing, ok := n.Fields[key]; ok {
		return existing, nil
	}
	child := NewPathNode(seg)
	n.Fields[key] = child
	return child, nil
}

// Extend appends a linear sequence of segments to the set, creating
// intermediate nodes as needed. An empty path is a no-op.
func (ps *PathSet) Extend(path []Segment) error {
	if len(path) == 0 {
		return nil
	}
	rootKey := path[0].key()
	parent, ok := ps.Roots[rootKey]
	if !ok {
		parent = NewPathNode(path[0])
		ps.Roots[rootKey] = parent
	}
	for _, seg := range path[1:] {
		next, err := parent.Append(seg)
		if err != nil {
			return err
		}
		parent = next
	}
	return nil
}

// Merge combines other's fields into n's, consuming other's subtree rules
// in the order specified by spec.md §4.1:
//  1. n already has an Any child: no-op, n is already maximally permissive.
//  2. other has an Any child and n's fields are non-empty: n's fields are
//     replaced wholesale by other's.
//  3. n's fields are empty: absorb other's fields directly.
//  4. otherwise, recursively merge matching children, then move over any
//     children of other that had no counterpart in n.
func (n *PathNode) Merge(other *PathNode) {
	if hasAny(n.Fields) {
		return
	}
	if hasAny(other.Fields) && len(n.Fields) > 0 {
		n.Fields = other.Fields
		return
	}
	if len(n.Fields) == 0 {
		n.Fields = other.Fields
		return
	}
	for key, child := range n.Fields {
		if otherChild, ok := other.Fields[key]; ok {
			child.Merge(otherChild)
			delete(other.Fields, key)
		}
	}
	for key, otherChild := range other.Fields {
		n.Fields[key] = otherChild
	}
}

// AttachChild inserts a fully-built child subtree under n, honoring the
// same Any-clears-siblings and cannot-append-to-Any rules as Append; unlike
// Append, if a child with the same key already exists the two subtrees are
// merged rather than one replacing the other.
func (n *PathNode) AttachChild(child *PathNode) error {
	if n.Segment.Kind == AnySegment {
		return ErrCannotAppendToAny
	}
	if child.Segment.Kind != AnySegment && hasAny(n.Fields) {
		return ErrCannotAppendToAny
	}
	if child.Segment.Kind == AnySegment && len(n.Fields) > 0 {
		n.Fields = map[string]*PathNode{}
	}
	key := child.Segment.key()
	if existing, ok := n.Fields[key]; ok {
		existing.Merge(child)
		return nil
	}
	n.Fields[key] = child
	return nil
}

// MergeNode merges a root-level PathNode into the set: if no root shares
// its segment key, it is moved in directly; otherwise the two are merged.
func (ps *PathSet) MergeNode(other *PathNode) {
	key := other.Segment.key()
	if existing, ok := ps.Roots[key]; ok {
		existing.Merge(other)
		return
	}
	ps.Roots[key] = other
}

// Merge combines every root of other into ps.
func (ps *PathSet) Merge(other *PathSet) {
	for _, root := range other.Roots {
		ps.MergeNode(root)
	}
}
