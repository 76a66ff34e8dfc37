package literal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SyntaxError is returned by Parse for malformed input.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("literal: syntax error at offset %d: %s", e.Offset, e.Msg)
}

// Parse reads a single literal expression. Only None, True, False, numbers,
// strings, tuples, lists, dicts and sets are accepted; identifiers, calls and
// operators other than a leading sign on numbers are rejected. The only call
// form recognized is the empty set, set().
//
// Integers parse to int64 (uint64 when they exceed the int64 range), floats to
// float64, lists to []any, tuples to Tuple, sets to Set, and dicts to
// map[string]any when every key is a string or map[any]any otherwise.
func Parse(src string) (any, error) {
	ps := &parser{src: src}
	ps.skipSpace()
	v, err := ps.value()
	if err != nil {
		return nil, err
	}
	ps.skipSpace()
	if ps.pos != len(ps.src) {
		return nil, ps.errorf("unexpected %q after value", ps.peek())
	}
	return v, nil
}

// parser maintains the mutable state of parsing. src is assumed to be valid
// UTF-8; invalid bytes decode as utf8.RuneError and are rejected.
type parser struct {
	src   string
	pos   int
	depth int
}

const (
	eof      rune = -1
	maxDepth      = 1000
)

func (ps *parser) peek() rune {
	if ps.pos >= len(ps.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(ps.src[ps.pos:])
	return r
}

func (ps *parser) next() rune {
	if ps.pos >= len(ps.src) {
		return eof
	}
	r, s := utf8.DecodeRuneInString(ps.src[ps.pos:])
	ps.pos += s
	return r
}

func (ps *parser) hasPrefix(prefix string) bool {
	return strings.HasPrefix(ps.src[ps.pos:], prefix)
}

func (ps *parser) skipSpace() {
	for {
		switch ps.peek() {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			ps.pos++
		default:
			return
		}
	}
}

func (ps *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Offset: ps.pos, Msg: fmt.Sprintf(format, args...)}
}

func (ps *parser) value() (any, error) {
	ps.depth++
	defer func() { ps.depth-- }()
	if ps.depth > maxDepth {
		return nil, ps.errorf("nesting too deep")
	}

	r := ps.peek()
	switch {
	case r == eof:
		return nil, ps.errorf("unexpected end of input")
	case r == '(':
		return ps.tuple()
	case r == '[':
		return ps.list()
	case r == '{':
		return ps.braced()
	case r == '\'' || r == '"':
		return ps.strings()
	case r == '+' || r == '-' || r == '.' || isDigit(r):
		return ps.number()
	case isIdentStart(r):
		return ps.name()
	}
	return nil, ps.errorf("unexpected %q", r)
}

func (ps *parser) name() (any, error) {
	start := ps.pos
	for isIdentPart(ps.peek()) {
		ps.next()
	}
	id := ps.src[start:ps.pos]
	switch id {
	case "None":
		return nil, nil
	case "True":
		return true, nil
	case "False":
		return false, nil
	case "set":
		ps.skipSpace()
		if ps.hasPrefix("(") {
			ps.next()
			ps.skipSpace()
			if ps.next() == ')' {
				return Set{}, nil
			}
		}
		ps.pos = start
		return nil, ps.errorf("only the empty set() call is a literal")
	case "r", "R", "u", "U":
		if q := ps.peek(); q == '\'' || q == '"' {
			ps.pos = start
			return ps.strings()
		}
	}
	ps.pos = start
	return nil, ps.errorf("name %q is not a literal", id)
}

// sequence parses comma separated values up to close and reports whether a
// trailing comma was present.
func (ps *parser) sequence(close rune) ([]any, bool, error) {
	var out []any
	trailing := false
	for {
		ps.skipSpace()
		if ps.peek() == close {
			ps.next()
			return out, trailing, nil
		}
		v, err := ps.value()
		if err != nil {
			return nil, false, err
		}
		out = append(out, v)
		ps.skipSpace()
		switch ps.peek() {
		case ',':
			ps.next()
			trailing = true
		case close:
			trailing = false
		default:
			return nil, false, ps.errorf("expected ',' or %q", close)
		}
	}
}

func (ps *parser) tuple() (any, error) {
	ps.next()
	elems, trailing, err := ps.sequence(')')
	if err != nil {
		return nil, err
	}
	// (x) is a parenthesized value, (x,) a one-element tuple.
	if len(elems) == 1 && !trailing {
		return elems[0], nil
	}
	if elems == nil {
		elems = []any{}
	}
	return Tuple(elems), nil
}

func (ps *parser) list() (any, error) {
	ps.next()
	elems, _, err := ps.sequence(']')
	if err != nil {
		return nil, err
	}
	if elems == nil {
		elems = []any{}
	}
	return elems, nil
}

// braced parses either a dict or a non-empty set; {} is an empty dict.
func (ps *parser) braced() (any, error) {
	ps.next()
	ps.skipSpace()
	if ps.peek() == '}' {
		ps.next()
		return map[string]any{}, nil
	}
	first, err := ps.value()
	if err != nil {
		return nil, err
	}
	ps.skipSpace()
	if ps.peek() == ':' {
		return ps.dictRest(first)
	}
	elems := []any{first}
	switch ps.next() {
	case '}':
	case ',':
		rest, _, err := ps.sequence('}')
		if err != nil {
			return nil, err
		}
		elems = append(elems, rest...)
	default:
		return nil, ps.errorf("expected ',' or '}'")
	}
	set := make(Set, 0, len(elems))
	for _, e := range elems {
		if !hashable(e) {
			return nil, ps.errorf("unhashable set element %T", e)
		}
		if !containsEqual(set, e, 0) {
			set = append(set, e)
		}
	}
	return set, nil
}

type dictPair struct{ k, v any }

func (ps *parser) dictRest(firstKey any) (any, error) {
	var pairs []dictPair
	key := firstKey
	for {
		if !scalarKey(key) {
			return nil, ps.errorf("unhashable dict key %T", key)
		}
		ps.skipSpace()
		if ps.next() != ':' {
			return nil, ps.errorf("expected ':'")
		}
		ps.skipSpace()
		val, err := ps.value()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, dictPair{key, val})
		ps.skipSpace()
		switch ps.next() {
		case '}':
			return buildDict(pairs), nil
		case ',':
			ps.skipSpace()
			if ps.peek() == '}' {
				ps.next()
				return buildDict(pairs), nil
			}
			key, err = ps.value()
			if err != nil {
				return nil, err
			}
		default:
			return nil, ps.errorf("expected ',' or '}'")
		}
	}
}

// buildDict returns map[string]any when all keys are strings. Later keys
// override earlier ones.
func buildDict(pairs []dictPair) any {
	allStrings := true
	for _, p := range pairs {
		if _, ok := p.k.(string); !ok {
			allStrings = false
			break
		}
	}
	if allStrings {
		m := make(map[string]any, len(pairs))
		for _, p := range pairs {
			m[p.k.(string)] = p.v
		}
		return m
	}
	m := make(map[any]any, len(pairs))
	for _, p := range pairs {
		m[normalizeKey(p.k)] = p.v
	}
	return m
}

// scalarKey reports whether k can be a Go map key. Tuples are hashable in the
// literal language but are slices in Go, so they are rejected as dict keys.
func scalarKey(k any) bool {
	switch k.(type) {
	case nil, bool, int64, uint64, float64, string:
		return true
	}
	return false
}

// normalizeKey folds integral floats onto int64 so that {1: a, 1.0: b}
// collapses to a single key, as equal keys do in the literal language.
func normalizeKey(k any) any {
	if f, ok := k.(float64); ok && f == math.Trunc(f) && math.Abs(f) < 1<<63 {
		return int64(f)
	}
	return k
}

func (ps *parser) strings() (any, error) {
	b := &strings.Builder{}
	for {
		if err := ps.stringLit(b); err != nil {
			return nil, err
		}
		// Adjacent literals concatenate.
		save := ps.pos
		ps.skipSpace()
		r := ps.peek()
		if r == '\'' || r == '"' {
			continue
		}
		if (r == 'r' || r == 'R' || r == 'u' || r == 'U') && ps.pos+1 < len(ps.src) {
			if q := ps.src[ps.pos+1]; q == '\'' || q == '"' {
				continue
			}
		}
		ps.pos = save
		return b.String(), nil
	}
}

func (ps *parser) stringLit(b *strings.Builder) error {
	raw := false
	switch ps.peek() {
	case 'r', 'R':
		raw = true
		ps.next()
	case 'u', 'U':
		ps.next()
	}
	q := ps.next()
	triple := false
	if ps.hasPrefix(string([]rune{q, q})) {
		ps.pos += 2
		triple = true
	}
	for {
		r := ps.next()
		switch {
		case r == eof:
			return ps.errorf("unterminated string")
		case r == utf8.RuneError:
			return ps.errorf("invalid UTF-8 in string")
		case r == q:
			if !triple {
				return nil
			}
			if ps.hasPrefix(string([]rune{q, q})) {
				ps.pos += 2
				return nil
			}
			b.WriteRune(r)
		case r == '\n' && !triple:
			return ps.errorf("newline in string")
		case r == '\\':
			if raw {
				b.WriteRune(r)
				if n := ps.peek(); n == q || n == '\\' {
					b.WriteRune(ps.next())
				}
				continue
			}
			if err := ps.escape(b); err != nil {
				return err
			}
		default:
			b.WriteRune(r)
		}
	}
}

func (ps *parser) escape(b *strings.Builder) error {
	r := ps.next()
	switch r {
	case '\n':
	case '\\', '\'', '"':
		b.WriteRune(r)
	case 'a':
		b.WriteByte('\a')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case 'v':
		b.WriteByte('\v')
	case 'x':
		return ps.hexEscape(b, 2)
	case 'u':
		return ps.hexEscape(b, 4)
	case 'U':
		return ps.hexEscape(b, 8)
	case '0', '1', '2', '3', '4', '5', '6', '7':
		n := int(r - '0')
		for i := 0; i < 2; i++ {
			d := ps.peek()
			if d < '0' || d > '7' {
				break
			}
			ps.next()
			n = n*8 + int(d-'0')
		}
		b.WriteRune(rune(n))
	case eof:
		return ps.errorf("unterminated escape")
	default:
		// Unknown escapes are kept verbatim.
		b.WriteByte('\\')
		b.WriteRune(r)
	}
	return nil
}

func (ps *parser) hexEscape(b *strings.Builder, n int) error {
	if ps.pos+n > len(ps.src) {
		return ps.errorf("truncated \\x, \\u or \\U escape")
	}
	v, err := strconv.ParseUint(ps.src[ps.pos:ps.pos+n], 16, 32)
	if err != nil {
		return ps.errorf("invalid hex escape %q", ps.src[ps.pos:ps.pos+n])
	}
	if v > unicode.MaxRune {
		return ps.errorf("escape out of range")
	}
	ps.pos += n
	b.WriteRune(rune(v))
	return nil
}

func (ps *parser) number() (any, error) {
	start := ps.pos
	neg := false
	switch ps.peek() {
	case '+':
		ps.next()
		ps.skipSpace()
	case '-':
		neg = true
		ps.next()
		ps.skipSpace()
	}
	if r := ps.peek(); r == '+' || r == '-' {
		// Repeated signs (e.g. --1) are folded.
		v, err := ps.number()
		if err != nil {
			return nil, err
		}
		if neg {
			return negate(v), nil
		}
		return v, nil
	}
	body := ps.pos
	if ps.hasPrefix("0x") || ps.hasPrefix("0X") || ps.hasPrefix("0o") || ps.hasPrefix("0O") || ps.hasPrefix("0b") || ps.hasPrefix("0B") {
		ps.pos += 2
		for isAlnum(ps.peek()) || ps.peek() == '_' {
			ps.next()
		}
		lit := ps.src[body:ps.pos]
		u, err := strconv.ParseUint(lit, 0, 64)
		if err != nil {
			return nil, &SyntaxError{Offset: start, Msg: fmt.Sprintf("invalid integer %q", lit)}
		}
		return signedInt(u, neg, start)
	}

	isFloat := false
digits:
	for {
		r := ps.peek()
		switch {
		case isDigit(r) || r == '_':
			ps.next()
		case r == '.':
			isFloat = true
			ps.next()
		case r == 'e' || r == 'E':
			isFloat = true
			ps.next()
			if s := ps.peek(); s == '+' || s == '-' {
				ps.next()
			}
		default:
			break digits
		}
	}
	lit := strings.ReplaceAll(ps.src[body:ps.pos], "_", "")
	if lit == "" || lit == "." {
		return nil, &SyntaxError{Offset: start, Msg: "expected number"}
	}
	if isIdentStart(ps.peek()) {
		return nil, ps.errorf("unexpected %q after number", ps.peek())
	}
	if isFloat {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil || math.IsInf(f, 0) {
			return nil, &SyntaxError{Offset: start, Msg: fmt.Sprintf("invalid float %q", lit)}
		}
		if neg {
			f = -f
		}
		return f, nil
	}
	if len(lit) > 1 && lit[0] == '0' && strings.Trim(lit, "0") != "" {
		return nil, &SyntaxError{Offset: start, Msg: "leading zeros in integer"}
	}
	u, err := strconv.ParseUint(lit, 10, 64)
	if err != nil {
		return nil, &SyntaxError{Offset: start, Msg: fmt.Sprintf("integer %q out of range", lit)}
	}
	return signedInt(u, neg, start)
}

func signedInt(u uint64, neg bool, offset int) (any, error) {
	if neg {
		if u > 1<<63 {
			return nil, &SyntaxError{Offset: offset, Msg: "integer out of range"}
		}
		return int64(-u), nil
	}
	if u > math.MaxInt64 {
		return u, nil
	}
	return int64(u), nil
}

func negate(v any) any {
	switch n := v.(type) {
	case int64:
		return -n
	case float64:
		return -n
	}
	return v
}

func isDigit(r rune) bool      { return r >= '0' && r <= '9' }
func isAlnum(r rune) bool      { return isDigit(r) || unicode.IsLetter(r) }
func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }
func isIdentPart(r rune) bool  { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }
