package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("invalid_type", nil); msg == "invalid_type" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("invalid_type", nil); msg == "invalid type" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_Placeholders(t *testing.T) {
	if got := T("required", map[string]string{"key": "name"}); got != "required field name is missing" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := T(PromptConfirmClear, nil); got != "Remove all items?" {
		t.Fatalf("unexpected prompt %q", got)
	}
}

func TestTranslator_UnknownCodeAndCustom(t *testing.T) {
	if got := T("no_such_code", nil); got != "no_such_code" {
		t.Fatalf("unknown codes should echo, got %q", got)
	}
	SetTranslator(constTranslator("x"))
	defer SetTranslator(nil)
	if got := T("required", nil); got != "x" {
		t.Fatalf("custom translator not used, got %q", got)
	}
}

type constTranslator string

func (c constTranslator) Message(string, map[string]string) string { return string(c) }
