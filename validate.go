package formskema

import (
	"fmt"

	"github.com/reoring/formskema/i18n"
)

// Result is the outcome of ValidateObject. Keys is set for ResultMissingKeys
// and ResultUnknownKeys; Key, Value and Type are set for ResultInvalidValue.
type Result struct {
	Kind  ResultKind
	Keys  []string
	Key   string
	Value any
	Type  ValueType

	schema *Schema
}

// OK reports whether the object was valid.
func (r Result) OK() bool { return r.Kind == ResultValid }

func (r Result) String() string {
	switch r.Kind {
	case ResultMissingKeys, ResultUnknownKeys:
		return fmt.Sprintf("%s %v", r.Kind, r.Keys)
	case ResultInvalidValue:
		return fmt.Sprintf("%s %s=%s", r.Kind, r.Key, describe(r.Value))
	}
	return r.Kind.String()
}

// Err returns nil for a valid result and otherwise the matching typed error:
// *MissingKeysError, *UnknownKeysError or *InvalidValueError.
func (r Result) Err() error {
	switch r.Kind {
	case ResultMissingKeys:
		return &MissingKeysError{Keys: r.Keys}
	case ResultUnknownKeys:
		return &UnknownKeysError{Keys: r.Keys}
	case ResultInvalidValue:
		var kind Kind
		if r.Type != nil {
			kind = r.Type.Kind()
		}
		return &InvalidValueError{Key: r.Key, Value: r.Value, Kind: kind}
	}
	return nil
}

// Issues renders a non-valid result as diagnostics with localized messages.
// Unknown keys close to a declared key carry a suggestion in Hint.
func (r Result) Issues() Issues {
	var iss Issues
	switch r.Kind {
	case ResultMissingKeys:
		for _, k := range r.Keys {
			iss = AppendIssues(iss, IssueAt(k, CodeRequired, i18n.T(CodeRequired, map[string]string{"key": k}), map[string]any{"key": k}))
		}
	case ResultUnknownKeys:
		for _, k := range r.Keys {
			it := IssueAt(k, CodeUnknownKey, i18n.T(CodeUnknownKey, map[string]string{"key": k}), map[string]any{"key": k})
			if r.schema != nil {
				if s, ok := SuggestKey(r.schema, k); ok {
					it.Hint = i18n.T("hint_did_you_mean", map[string]string{"key": s})
				}
			}
			iss = AppendIssues(iss, it)
		}
	case ResultInvalidValue:
		kind := ""
		if r.Type != nil {
			kind = string(r.Type.Kind())
		}
		iss = AppendIssues(iss, Issue{
			Path:    pointer(r.Key),
			Code:    CodeInvalidValue,
			Message: i18n.T(CodeInvalidValue, map[string]string{"key": r.Key, "kind": kind}),
			Cause:   r.Err(),
			Params:  map[string]any{"key": r.Key, "kind": kind, "value": r.Value},
		})
	}
	return iss
}

// ValidateObject checks obj against s. Checks run in order (missing keys,
// unknown keys, then each field in schema order) and stop at the first
// failure. Fields absent from obj are skipped when IgnoreMissing is set.
func ValidateObject(s *Schema, obj Object, opts ValidateOpt) Result {
	if !opts.IgnoreMissing {
		if keys := MissingKeys(s, obj); len(keys) > 0 {
			return Result{Kind: ResultMissingKeys, Keys: keys, schema: s}
		}
	}
	if !opts.IgnoreUnknown {
		if keys := UnknownKeys(s, obj); len(keys) > 0 {
			return Result{Kind: ResultUnknownKeys, Keys: keys, schema: s}
		}
	}
	for _, k := range s.keys {
		v, ok := obj[k]
		if !ok {
			continue
		}
		t := s.types[k]
		if !t.Validate(v) {
			return Result{Kind: ResultInvalidValue, Key: k, Value: v, Type: t, schema: s}
		}
	}
	return Result{Kind: ResultValid, schema: s}
}

// Validate is a convenience wrapper returning ValidateObject(...).Err().
func Validate(s *Schema, obj Object, opts ValidateOpt) error {
	return ValidateObject(s, obj, opts).Err()
}
