package pathlang

import (
	"strconv"
	"strings"
)

// parser holds scanning state over the input string; all grammar
// productions are methods so failures can report the offset they occurred
// at without threading an explicit position through every call.
type parser struct {
	input string
	pos   int
}

// Parse parses the full canonical textual form (expression := selection_set
// , EOF) and returns its AST, or a *ParseError.
func Parse(input string) (*SelectionSet, error) {
	p := &parser{input: input}
	p.skipSpace()
	set, err := p.parseSelectionSet()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, newParseError(p.pos, "trailing input after expression")
	}
	return set, nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *parser) consumeByte(b byte) bool {
	if c, ok := p.peek(); ok && c == b {
		p.pos++
		return true
	}
	return false
}

// parseSelectionSet implements selection_set := singular | multi.
func (p *parser) parseSelectionSet() (*SelectionSet, error) {
	p.skipSpace()
	if c, ok := p.peek(); ok && c == '{' {
		return p.parseMulti()
	}
	s, err := p.parseSingular()
	if err != nil {
		return nil, err
	}
	set := SelectionSet{*s}
	return &set, nil
}

// parseMulti implements multi := "{" , singular , {"," , singular} , "}".
func (p *parser) parseMulti() (*SelectionSet, error) {
	if !p.consumeByte('{') {
		return nil, newParseError(p.pos, "expected '{'")
	}
	var items []Singular
	for {
		p.skipSpace()
		s, err := p.parseSingular()
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
		p.skipSpace()
		if p.consumeByte(',') {
			continue
		}
		break
	}
	p.skipSpace()
	if !p.consumeByte('}') {
		return nil, newParseError(p.pos, "expected '}'")
	}
	set := SelectionSet(items)
	return &set, nil
}

// parseSingular implements singular := "*" | field , ["::" , selection_set].
func (p *parser) parseSingular() (*Singular, error) {
	p.skipSpace()
	if c, ok := p.peek(); ok && c == '*' {
		p.pos++
		return &Singular{Any: true}, nil
	}
	field, err := p.parseField()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.consumeByte(':') {
		if !p.consumeByte(':') {
			return nil, newParseError(p.pos, "expected '::'")
		}
		sub, err := p.parseSelectionSet()
		if err != nil {
			return nil, err
		}
		field.Sub = sub
	}
	return &Singular{Field: field}, nil
}

// parseField implements field := identifier , ["(" , args , ")"].
func (p *parser) parseField() (*Field, error) {
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	f := &Field{Name: name}
	p.skipSpace()
	if c, ok := p.peek(); ok && c == '(' {
		p.pos++
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.consumeByte(')') {
			return nil, newParseError(p.pos, "expected ')'")
		}
		f.Args = args
	}
	return f, nil
}

// parseArgs implements args := arg , {"," , arg} (zero-length when the
// caller immediately sees ')').
func (p *parser) parseArgs() ([]Arg, error) {
	args := []Arg{}
	p.skipSpace()
	if c, ok := p.peek(); ok && c == ')' {
		return args, nil
	}
	for {
		p.skipSpace()
		a, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		args = append(args, *a)
		p.skipSpace()
		if p.consumeByte(',') {
			continue
		}
		break
	}
	return args, nil
}

// parseArg implements arg := identifier , ":" , arg_value.
func (p *parser) parseArg() (*Arg, error) {
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.consumeByte(':') {
		return nil, newParseError(p.pos, "expected ':'")
	}
	p.skipSpace()
	v, err := p.parseArgValue()
	if err != nil {
		return nil, err
	}
	return &Arg{Name: name, Value: v}, nil
}

// parseArgValue implements arg_value := bool | integer | string_literal |
// identifier | "*". An integer literal may start with an optional sign, so
// it is attempted before falling back to a bare identifier.
func (p *parser) parseArgValue() (ArgValue, error) {
	c, ok := p.peek()
	if !ok {
		return ArgValue{}, newParseError(p.pos, "expected argument value")
	}
	switch {
	case c == '*':
		p.pos++
		return ArgValue{Kind: ArgWildcard}, nil
	case c == '"':
		s, err := p.parseStringLiteral()
		if err != nil {
			return ArgValue{}, err
		}
		return ArgValue{Kind: ArgString, Str: s}, nil
	case c == '+' || c == '-' || isDigit(c):
		start := p.pos
		if ok := p.tryParseInteger(); ok {
			n, err := strconv.ParseInt(p.input[start:p.pos], 10, 64)
			if err != nil {
				return ArgValue{}, newParseError(start, "integer literal out of range")
			}
			return ArgValue{Kind: ArgInteger, Int: n}, nil
		}
		p.pos = start
		return ArgValue{}, newParseError(p.pos, "expected integer")
	default:
		ident, err := p.parseIdentifier()
		if err != nil {
			return ArgValue{}, err
		}
		switch ident {
		case "true":
			return ArgValue{Kind: ArgBool, Bool: true}, nil
		case "false":
			return ArgValue{Kind: ArgBool, Bool: false}, nil
		default:
			return ArgValue{Kind: ArgIdentifier, Str: ident}, nil
		}
	}
}

func (p *parser) tryParseInteger() bool {
	start := p.pos
	if c, ok := p.peek(); ok && (c == '+' || c == '-') {
		p.pos++
	}
	digitsStart := p.pos
	for {
		c, ok := p.peek()
		if !ok || !isDigit(c) {
			break
		}
		p.pos++
	}
	if p.pos == digitsStart {
		p.pos = start
		return false
	}
	return true
}

func (p *parser) parseIdentifier() (string, error) {
	start := p.pos
	c, ok := p.peek()
	if !ok || !isIdentStart(c) {
		return "", newParseError(p.pos, "expected identifier")
	}
	p.pos++
	for {
		c, ok := p.peek()
		if !ok || !isIdentCont(c) {
			break
		}
		p.pos++
	}
	return p.input[start:p.pos], nil
}

func (p *parser) parseStringLiteral() (string, error) {
	start := p.pos
	if !p.consumeByte('"') {
		return "", newParseError(p.pos, "expected '\"'")
	}
	var b strings.Builder
	for {
		c, ok := p.peek()
		if !ok {
			return "", newParseError(start, "unterminated string literal")
		}
		if c == '"' {
			p.pos++
			return b.String(), nil
		}
		if c == '\\' {
			p.pos++
			esc, ok := p.peek()
			if !ok {
				return "", newParseError(p.pos, "unterminated escape sequence")
			}
			p.pos++
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			case '\\':
				b.WriteByte('\\')
			case '/':
				b.WriteByte('/')
			case '"':
				b.WriteByte('"')
			default:
				return "", newParseError(p.pos-1, "unsupported escape sequence")
			}
			continue
		}
		b.WriteByte(c)
		p.pos++
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
func isIdentCont(c byte) bool { return isIdentStart(c) || isDigit(c) }
