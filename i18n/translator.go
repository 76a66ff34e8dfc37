package i18n

import "strings"

// Translator retrieves localized messages for issue codes and prompt ids.
// data provides optional values embedded in the message (for example "key"
// or "kind"); placeholders are written as {name}.
type Translator interface {
	Message(code string, data map[string]string) string
}

// Prompt ids used by editor sessions.
const (
	PromptNoSelection       = "no_selection"
	PromptMultipleSelection = "multiple_selection"
	PromptEmpty             = "empty"
	PromptConfirmRemove     = "confirm_remove"
	PromptConfirmClear      = "confirm_clear"
	PromptInvalidObject     = "invalid_object"
	PromptDiscardChanges    = "discard_changes"
	PromptNotContiguous     = "not_contiguous"
)

// Menu labels used by terminal editors. Button labels are "button_" followed
// by the button name.
const (
	LabelAction    = "menu_action"
	LabelEditField = "menu_edit_field"
	LabelSelect    = "menu_select"
	LabelAccept    = "menu_accept"
	LabelCancel    = "menu_cancel"
	LabelReadOnly  = "menu_read_only"
)

var dicts = map[string]map[string]string{
	"en": {
		"invalid_type":       "invalid type",
		"required":           "required field {key} is missing",
		"unknown_key":        "unknown key {key}",
		"duplicate_key":      "duplicate key {key}",
		"invalid_value":      "invalid value for {key} ({kind})",
		"invalid_default":    "default value does not validate",
		"out_of_range":       "index out of range",
		"hint_did_you_mean":  "did you mean {key}?",
		"no_selection":       "Select an item first.",
		"multiple_selection": "Select a single item.",
		"empty":              "There are no items.",
		"confirm_remove":     "Remove the selected item?",
		"confirm_clear":      "Remove all items?",
		"invalid_object":     "The entry is not valid: {detail}",
		"discard_changes":    "Discard changes?",
		"not_contiguous":     "Select adjacent items only.",
		"menu_action":        "Choose an action",
		"menu_edit_field":    "Choose a field to edit",
		"menu_select":        "Select items",
		"menu_accept":        "Done",
		"menu_cancel":        "Cancel",
		"menu_read_only":     "(read-only)",
		"button_add":         "Add",
		"button_edit":        "Edit",
		"button_remove":      "Remove",
		"button_clear":       "Clear",
		"button_move_up":     "Move up",
		"button_move_down":   "Move down",
	},
	"ja": {
		"invalid_type":       "型が不正です",
		"required":           "必須項目 {key} がありません",
		"unknown_key":        "未知のキー {key} です",
		"duplicate_key":      "キー {key} が重複しています",
		"invalid_value":      "{key} の値が不正です ({kind})",
		"invalid_default":    "既定値が検証を通りません",
		"out_of_range":       "インデックスが範囲外です",
		"hint_did_you_mean":  "{key} のことですか?",
		"no_selection":       "項目を選択してください。",
		"multiple_selection": "項目を一つだけ選択してください。",
		"empty":              "項目がありません。",
		"confirm_remove":     "選択した項目を削除しますか?",
		"confirm_clear":      "すべての項目を削除しますか?",
		"invalid_object":     "入力が不正です: {detail}",
		"discard_changes":    "変更を破棄しますか?",
		"not_contiguous":     "隣り合う項目だけを選択してください。",
		"menu_action":        "操作を選んでください",
		"menu_edit_field":    "編集する項目を選んでください",
		"menu_select":        "項目を選択",
		"menu_accept":        "完了",
		"menu_cancel":        "キャンセル",
		"menu_read_only":     "(読み取り専用)",
		"button_add":         "追加",
		"button_edit":        "編集",
		"button_remove":      "削除",
		"button_clear":       "全削除",
		"button_move_up":     "上へ",
		"button_move_down":   "下へ",
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dicts[t.lang][code]
	if !ok {
		return code
	}
	return expand(msg, data)
}

func expand(msg string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
