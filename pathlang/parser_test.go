package pathlang

import "testing"

func TestParseSimpleField(t *testing.T) {
	set, err := Parse("apiVersion")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(*set) != 1 || (*set)[0].Any || (*set)[0].Field.Name != "apiVersion" {
		t.Fatalf("unexpected AST: %+v", set)
	}
}

func TestParseWildcard(t *testing.T) {
	set, err := Parse("*")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(*set) != 1 || !(*set)[0].Any {
		t.Fatalf("unexpected AST: %+v", set)
	}
}

func TestParseNestedSelection(t *testing.T) {
	set, err := Parse("foo::{a(id: *), b}")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	f := (*set)[0].Field
	if f.Name != "foo" || f.Sub == nil || len(*f.Sub) != 2 {
		t.Fatalf("unexpected AST: %+v", f)
	}
	a := (*f.Sub)[0].Field
	if a.Name != "a" || a.Args == nil || len(a.Args) != 1 || a.Args[0].Value.Kind != ArgWildcard {
		t.Fatalf("unexpected child a: %+v", a)
	}
}

func TestParseArgumentLiterals(t *testing.T) {
	set, err := Parse(`authenticate(email: "x@y", password: "p", attempts: -3, admin: true)`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	args := (*set)[0].Field.Args
	want := map[string]ArgValue{
		"email":    {Kind: ArgString, Str: "x@y"},
		"password": {Kind: ArgString, Str: "p"},
		"attempts": {Kind: ArgInteger, Int: -3},
		"admin":    {Kind: ArgBool, Bool: true},
	}
	if len(args) != len(want) {
		t.Fatalf("got %d args, want %d", len(args), len(want))
	}
	for _, a := range args {
		w, ok := want[a.Name]
		if !ok || w != a.Value {
			t.Fatalf("arg %s = %+v, want %+v", a.Name, a.Value, w)
		}
	}
}

func TestParseEnumArgument(t *testing.T) {
	set, err := Parse("foo(k: BAR)")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	v := (*set)[0].Field.Args[0].Value
	if v.Kind != ArgIdentifier || v.Str != "BAR" {
		t.Fatalf("unexpected value: %+v", v)
	}
}

func TestParseInvalidTrailingColon(t *testing.T) {
	if _, err := Parse("foo::"); err == nil {
		t.Fatal("expected a parse error for a dangling '::'")
	}
}

func TestParseEmptyArgsIsDistinctFromUnconstrained(t *testing.T) {
	withParens, err := Parse("foo()")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if withParens == nil || (*withParens)[0].Field.Args == nil {
		t.Fatal("foo() should parse with a non-nil, empty argument list")
	}

	bare, err := Parse("foo")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if (*bare)[0].Field.Args != nil {
		t.Fatal("foo should parse with a nil argument list")
	}
}
