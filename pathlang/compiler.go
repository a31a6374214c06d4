package pathlang

import (
	"errors"
	"fmt"

	"github.com/gov-dx-sandbox/identity-authz-core/resourcepath"
)

// CompileError distinguishes the one compile failure the algebra itself can
// raise (descending below an Any node) from anything else, per spec.md
// §4.2 ("compile errors distinguish CannotAppendToAny").
type CompileError struct {
	Err error
}

func (e *CompileError) Error() string { return fmt.Sprintf("pathlang: compile error: %v", e.Err) }
func (e *CompileError) Unwrap() error { return e.Err }

// IsCannotAppendToAny reports whether err is (or wraps) the
// cannot-append-below-Any compile failure.
func IsCannotAppendToAny(err error) bool {
	return errors.Is(err, resourcepath.ErrCannotAppendToAny)
}

// Compile walks set's selection tree, producing one root PathNode per
// top-level Singular and merging them into a fresh PathSet.
func Compile(set *SelectionSet) (*resourcepath.PathSet, error) {
	ps := resourcepath.NewPathSet()
	for i := range *set {
		node, err := compileSingular(&(*set)[i])
		if err != nil {
			return nil, err
		}
		ps.MergeNode(node)
	}
	return ps, nil
}

// ParseAndCompile parses text and compiles the resulting AST into a
// PathSet in one step; this is the entry point most callers want.
func ParseAndCompile(text string) (*resourcepath.PathSet, error) {
	set, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return Compile(set)
}

func compileSingular(s *Singular) (*resourcepath.PathNode, error) {
	if s.Any {
		return resourcepath.NewPathNode(resourcepath.NewAny()), nil
	}
	seg, err := compileFieldSegment(s.Field)
	if err != nil {
		return nil, err
	}
	node := resourcepath.NewPathNode(seg)
	if s.Field.Sub != nil {
		for i := range *s.Field.Sub {
			child, err := compileSingular(&(*s.Field.Sub)[i])
			if err != nil {
				return nil, err
			}
			if err := node.AttachChild(child); err != nil {
				return nil, &CompileError{Err: err}
			}
		}
	}
	return node, nil
}

func compileFieldSegment(f *Field) (resourcepath.Segment, error) {
	if f.Args == nil {
		return resourcepath.NewNamed(f.Name), nil
	}
	args := make(map[string]resourcepath.Argument, len(f.Args))
	for _, a := range f.Args {
		v, err := compileArgValue(a.Value)
		if err != nil {
			return resourcepath.Segment{}, err
		}
		args[a.Name] = resourcepath.Argument{Name: a.Name, Value: v}
	}
	return resourcepath.NewNamedWithArgs(f.Name, args), nil
}

func compileArgValue(v ArgValue) (resourcepath.ArgumentValue, error) {
	switch v.Kind {
	case ArgWildcard:
		return resourcepath.NewWildcard(), nil
	case ArgString:
		return resourcepath.NewStringLiteral(v.Str), nil
	case ArgInteger:
		return resourcepath.NewIntegerLiteral(v.Int), nil
	case ArgBool:
		return resourcepath.NewBoolLiteral(v.Bool), nil
	case ArgIdentifier:
		return resourcepath.NewEnumLiteral(v.Str), nil
	default:
		return resourcepath.ArgumentValue{}, fmt.Errorf("pathlang: unrecognized argument value kind %d", v.Kind)
	}
}
