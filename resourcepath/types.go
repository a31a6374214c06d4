// Package resourcepath implements the resource-path algebra: segments,
// arguments, path nodes and path sets, together with merge, extend and the
// superset relation used to decide whether one set of selections covers
// another.
package resourcepath

import (
	"fmt"
	"regexp"
)

// AccessKind distinguishes read (Query) from write (Mutation) operations.
// Subscriptions are not modeled; see graphqlcompile for the rejection.
type AccessKind int

const (
	Query AccessKind = iota
	Mutation
)

func (k AccessKind) String() string {
	switch k {
	case Query:
		return "Query"
	case Mutation:
		return "Mutation"
	default:
		return fmt.Sprintf("AccessKind(%d)", int(k))
	}
}

// ParseAccessKind converts the wire/storage representation back to an
// AccessKind, rejecting anything but the two supported kinds.
func ParseAccessKind(s string) (AccessKind, error) {
	switch s {
	case "Query":
		return Query, nil
	case "Mutation":
		return Mutation, nil
	default:
		return 0, fmt.Errorf("resourcepath: unknown access kind %q", s)
	}
}

// ArgumentValueKind discriminates the variants an ArgumentValue may hold.
type ArgumentValueKind int

const (
	StringLiteral ArgumentValueKind = iota
	IntegerLiteral
	BoolLiteral
	EnumLiteral
	Wildcard
)

// ArgumentValue is one of string/int64/bool/enum literal, or the wildcard.
// Only the field matching Kind is meaningful.
type ArgumentValue struct {
	Kind ArgumentValueKind
	Str  string // StringLiteral, EnumLiteral
	Int  int64  // IntegerLiteral
	Bool bool   // BoolLiteral
}

func NewStringLiteral(s string) ArgumentValue { return ArgumentValue{Kind: StringLiteral, Str: s} }
func NewIntegerLiteral(n int64) ArgumentValue { return ArgumentValue{Kind: IntegerLiteral, Int: n} }
func NewBoolLiteral(b bool) ArgumentValue     { return ArgumentValue{Kind: BoolLiteral, Bool: b} }
func NewEnumLiteral(name string) ArgumentValue {
	return ArgumentValue{Kind: EnumLiteral, Str: name}
}
func NewWildcard() ArgumentValue { return ArgumentValue{Kind: Wildcard} }

// Equal reports structural equality between two argument values of
// (possibly) different kinds; Wildcard is only equal to Wildcard.
func (v ArgumentValue) Equal(other ArgumentValue) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case StringLiteral, EnumLiteral:
		return v.Str == other.Str
	case IntegerLiteral:
		return v.Int == other.Int
	case BoolLiteral:
		return v.Bool == other.Bool
	case Wildcard:
		return true
	default:
		return false
	}
}

// Argument pairs a non-empty identifier name with its value.
type Argument struct {
	Name  string
	Value ArgumentValue
}

// SegmentKind discriminates Any from Named segments.
type SegmentKind int

const (
	AnySegment SegmentKind = iota
	NamedSegment
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether s matches [A-Za-z_][A-Za-z0-9_]*.
func ValidIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// Segment is either the Any wildcard or a Named segment carrying an
// optional argument mapping. Args == nil means "argument shape not
// constrained"; a non-nil (possibly empty) Args constrains the arguments it
// lists: IsSupersetOf requires each of them to cover the same-named
// argument of the other segment and does not check arguments the other
// segment carries beyond those. A nil and a non-nil Args never cover each
// other.
type Segment struct {
	Kind SegmentKind
	Name string
	Args map[string]Argument
}

// NewAny builds the Any segment.
func NewAny() Segment { return Segment{Kind: AnySegment} }

// NewNamed builds a Named segment with an unconstrained argument shape.
func NewNamed(name string) Segment {
	return Segment{Kind: NamedSegment, Name: name}
}

// NewNamedWithArgs builds a Named segment with an explicit (possibly empty)
// argument shape. Pass an empty, non-nil map for "no arguments accepted".
func NewNamedWithArgs(name string, args map[string]Argument) Segment {
	if args == nil {
		args = map[string]Argument{}
	}
	return Segment{Kind: NamedSegment, Name: name, Args: args}
}

// key is the canonical textual rendering of the segment alone (no
// children); it is used both as the map key for storage (so that equal
// segments always collide into the same node) and, per DESIGN.md, is
// distinct from the name-based matching used during superset comparison.
func (s Segment) key() string {
	return RenderSegment(s)
}

// PathNode is one step of a resource path: a segment plus its children,
// keyed by each child's canonical segment key.
type PathNode struct {
	Segment Segment
	Fields  map[string]*PathNode
}

// NewPathNode builds a leaf node (no children) for the given segment.
func NewPathNode(segment Segment) *PathNode {
	return &PathNode{Segment: segment, Fields: map[string]*PathNode{}}
}

// PathSet is a forest of PathNodes keyed by each root's canonical segment
// key. Extend, MergeNode and the pathlang compiler do not reject an Any
// root: compiling "*" yields a set whose single root is keyed by Any.
type PathSet struct {
	Roots map[string]*PathNode
}

// NewPathSet builds an empty path set.
func NewPathSet() *PathSet {
	return &PathSet{Roots: map[string]*PathNode{}}
}

// AccessRequest is an AccessKind paired with the roots of the resource
// paths a caller's GraphQL operation selects.
type AccessRequest struct {
	Kind  AccessKind
	Paths []*PathNode
}

// ToPathSet merges every root of the request into a single PathSet, the
// "desired" set compared against the allow-set during authorization.
func (r AccessRequest) ToPathSet() *PathSet {
	ps := NewPathSet()
	for _, root := range r.Paths {
		ps.MergeNode(root)
	}
	return ps
}

const anyKey = "*"

func hasAny(fields map[string]*PathNode) bool {
	_, ok := fields[anyKey]
	return ok
}
