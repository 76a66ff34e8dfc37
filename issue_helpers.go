package formskema

import "strings"

// IssueAt creates an Issue for the given object key with provided code, message and params map.
// This is a convenience helper to improve readability at call sites with many parameters.
func IssueAt(key, code, msg string, params map[string]any) Issue {
	return Issue{Path: pointer(key), Code: code, Message: msg, Params: params}
}

// pointer renders key as a single-segment JSON Pointer.
func pointer(key string) string {
	if key == "" {
		return "/"
	}
	r := strings.NewReplacer("~", "~0", "/", "~1")
	return "/" + r.Replace(key)
}
