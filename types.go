package formskema

// ValidateOpt relaxes object validation.
type ValidateOpt struct {
	IgnoreMissing bool // Skip the missing-keys check.
	IgnoreUnknown bool // Skip the unknown-keys check.
}

// PrepareOpt selects the steps of the entry pipeline run by Prepare.
type PrepareOpt struct {
	RemoveUnknown bool // Drop keys the schema does not declare.
	FillMissing   bool // Set absent keys to their defaults.
	Normalize     bool // Replace valid values with their canonical form.
}

// ResultKind tags the outcome of ValidateObject.
type ResultKind int

const (
	ResultValid ResultKind = iota
	ResultMissingKeys
	ResultUnknownKeys
	ResultInvalidValue
)

func (k ResultKind) String() string {
	switch k {
	case ResultValid:
		return "valid"
	case ResultMissingKeys:
		return "missing_keys"
	case ResultUnknownKeys:
		return "unknown_keys"
	case ResultInvalidValue:
		return "invalid_value"
	}
	return "unknown"
}
