// Package literal implements a small literal-expression language used to
// decide whether free-form values are admissible: a value is formatted to its
// canonical text, parsed back with a literal-only parser, and compared with
// the original.
//
// The language covers None, True, False, integers, floats, strings, tuples,
// lists, dicts and sets:
//
//	None  True  -3  1.5  'text'  (1, 'x')  [1, [2]]  {'k': 1}  {1, 2}  set()
//
// Parsing never evaluates code.
package literal
