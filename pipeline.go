package formskema

// ApplyNormalize calls Normalizer if t implements it.
func ApplyNormalize(t ValueType, v any) any {
	if n, ok := t.(Normalizer); ok {
		return n.Normalize(v)
	}
	return v
}

// NormalizeObject replaces each present, valid field value with its canonical
// stored form. Invalid values and unknown keys are left as they are. The copy
// flag behaves as in FillMissing.
func NormalizeObject(s *Schema, obj Object, copy bool) Object {
	out := target(obj, copy)
	for _, k := range s.keys {
		v, ok := out[k]
		if !ok {
			continue
		}
		t := s.types[k]
		if t.Validate(v) {
			out[k] = ApplyNormalize(t, v)
		}
	}
	return out
}

// Prepare runs the entry pipeline used by collections and sessions: strip
// unknown keys, fill missing keys, then normalize, each step gated by opts.
// The input is never modified.
func Prepare(s *Schema, obj Object, opts PrepareOpt) Object {
	out := obj.Clone()
	if out == nil {
		out = Object{}
	}
	if opts.RemoveUnknown {
		out = RemoveUnknown(s, out, false)
	}
	if opts.FillMissing {
		out = FillMissing(s, out, false)
	}
	if opts.Normalize {
		out = NormalizeObject(s, out, false)
	}
	return out
}
