// Package graphqlcompile implements the GraphQL compiler (C3): it turns a
// parsed executable GraphQL document and a resolved variables map into a
// resourcepath.AccessRequest, preserving the selection structure.
package graphqlcompile

import (
	"fmt"
	"strconv"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/gov-dx-sandbox/identity-authz-core/resourcepath"
)

// Compile converts doc (which must contain exactly one Query or Mutation
// operation) plus its resolved variables into an AccessRequest.
func Compile(doc *ast.QueryDocument, variables map[string]interface{}) (resourcepath.AccessRequest, error) {
	if len(doc.Operations) != 1 {
		return resourcepath.AccessRequest{}, ErrMultiOperationsNotSupported
	}
	op := doc.Operations[0]

	var kind resourcepath.AccessKind
	switch op.Operation {
	case ast.Query:
		kind = resourcepath.Query
	case ast.Mutation:
		kind = resourcepath.Mutation
	default:
		return resourcepath.AccessRequest{}, &UnsupportedOperationError{Operation: string(op.Operation)}
	}

	roots := make([]*resourcepath.PathNode, 0, len(op.SelectionSet))
	for _, sel := range op.SelectionSet {
		node, err := compileSelection(sel, variables)
		if err != nil {
			return resourcepath.AccessRequest{}, err
		}
		roots = append(roots, node)
	}
	return resourcepath.AccessRequest{Kind: kind, Paths: roots}, nil
}

func compileSelection(sel ast.Selection, vars map[string]interface{}) (*resourcepath.PathNode, error) {
	field, ok := sel.(*ast.Field)
	if !ok {
		return nil, &UnsupportedSelectionKindError{Kind: selectionKindName(sel)}
	}
	seg, err := compileFieldSegment(field, vars)
	if err != nil {
		return nil, err
	}
	node := resourcepath.NewPathNode(seg)
	for _, child := range field.SelectionSet {
		childNode, err := compileSelection(child, vars)
		if err != nil {
			return nil, err
		}
		if err := node.AttachChild(childNode); err != nil {
			return nil, fmt.Errorf("graphqlcompile: field %q: %w", field.Name, err)
		}
	}
	return node, nil
}

func selectionKindName(sel ast.Selection) string {
	switch sel.(type) {
	case *ast.FragmentSpread:
		return "FragmentSpread"
	case *ast.InlineFragment:
		return "InlineFragment"
	default:
		return fmt.Sprintf("%T", sel)
	}
}

// compileFieldSegment builds the Segment for field. An absent argument
// list (no parentheses in the source) maps to an unconstrained Named
// segment; GraphQL's own grammar never produces a present-but-empty
// argument list, so the None-vs-Some(empty) distinction from the path
// algebra's textual form does not arise here.
func compileFieldSegment(field *ast.Field, vars map[string]interface{}) (resourcepath.Segment, error) {
	if len(field.Arguments) == 0 {
		return resourcepath.NewNamed(field.Name), nil
	}
	args := make(map[string]resourcepath.Argument, len(field.Arguments))
	for _, arg := range field.Arguments {
		val, err := compileArgumentValue(arg, vars)
		if err != nil {
			return resourcepath.Segment{}, err
		}
		args[arg.Name] = resourcepath.Argument{Name: arg.Name, Value: val}
	}
	return resourcepath.NewNamedWithArgs(field.Name, args), nil
}

func compileArgumentValue(arg *ast.Argument, vars map[string]interface{}) (resourcepath.ArgumentValue, error) {
	v := arg.Value
	switch v.Kind {
	case ast.StringValue, ast.BlockValue:
		return resourcepath.NewStringLiteral(v.Raw), nil
	case ast.IntValue:
		n, err := strconv.ParseInt(v.Raw, 10, 64)
		if err != nil {
			return resourcepath.ArgumentValue{}, &UnsupportedArgumentError{Name: arg.Name, Repr: v.Raw}
		}
		return resourcepath.NewIntegerLiteral(n), nil
	case ast.BooleanValue:
		return resourcepath.NewBoolLiteral(v.Raw == "true"), nil
	case ast.EnumValue:
		return resourcepath.NewEnumLiteral(v.Raw), nil
	case ast.Variable:
		resolved, ok := vars[v.Raw]
		if !ok {
			return resourcepath.ArgumentValue{}, &UnknownVariableError{Variable: v.Raw, Arg: arg.Name}
		}
		av, ok := argumentValueFromDynamic(resolved)
		if !ok {
			return resourcepath.ArgumentValue{}, &UnsupportedArgumentError{Name: arg.Name, Repr: fmt.Sprintf("%v", resolved)}
		}
		return av, nil
	default:
		return resourcepath.ArgumentValue{}, &UnsupportedArgumentError{Name: arg.Name, Repr: v.Raw}
	}
}

// argumentValueFromDynamic resolves a variable's decoded JSON value:
// scalars recurse through the same literal mapping the static argument
// table uses, and any composite or null value becomes a Wildcard.
func argumentValueFromDynamic(val interface{}) (resourcepath.ArgumentValue, bool) {
	switch v := val.(type) {
	case nil:
		return resourcepath.NewWildcard(), true
	case string:
		return resourcepath.NewStringLiteral(v), true
	case bool:
		return resourcepath.NewBoolLiteral(v), true
	case int:
		return resourcepath.NewIntegerLiteral(int64(v)), true
	case int64:
		return resourcepath.NewIntegerLiteral(v), true
	case float64:
		if v == float64(int64(v)) {
			return resourcepath.NewIntegerLiteral(int64(v)), true
		}
		return resourcepath.ArgumentValue{}, false
	case map[string]interface{}, []interface{}:
		return resourcepath.NewWildcard(), true
	default:
		return resourcepath.ArgumentValue{}, false
	}
}
