package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	formskema "github.com/reoring/formskema"
	"github.com/reoring/formskema/collection"
	"github.com/reoring/formskema/literal"
)

const (
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorYellow   lipgloss.Color = "#f9e2af"
)

// Styles controls how tables and messages are drawn.
type Styles struct {
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Warning  lipgloss.Style
}

// DefaultStyles returns the colored styles used by NewSurveyDriver callers.
func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Foreground(colorBlue).Bold(true),
		Cell:     lipgloss.NewStyle().Foreground(colorText),
		Selected: lipgloss.NewStyle().Foreground(colorText).Background(colorSurface1).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(colorOverlay1),
		Warning:  lipgloss.NewStyle().Foreground(colorYellow),
	}
}

// PlainStyles returns styles that add no escape codes.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{Header: s, Cell: s, Selected: s, Muted: s, Warning: s}
}

// FormatValue renders v the way an editor shows it for t.
func FormatValue(t formskema.ValueType, v any) string {
	if tc, ok := t.(formskema.TextCodec); ok {
		return tc.FormatText(v)
	}
	if s, err := literal.Format(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}

// columns returns the keys of the fields a table shows.
func columns(s *formskema.Schema) []string {
	var keys []string
	for _, f := range s.Fields() {
		if !f.Type.Hidden() {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

func label(s *formskema.Schema, key string) string {
	if t, ok := s.Type(key); ok && t.DisplayName() != "" {
		return t.DisplayName()
	}
	return key
}

// RenderTable draws the objects of m as a table of their visible fields with
// selected rows highlighted.
func RenderTable(m *collection.Manager, st Styles) string {
	s := m.Schema()
	keys := columns(s)
	objs := m.Objects()
	rows := make([][]string, 0, len(objs)+1)
	head := []string{"#"}
	for _, k := range keys {
		head = append(head, label(s, k))
	}
	rows = append(rows, head)
	for i, o := range objs {
		row := []string{fmt.Sprint(i + 1)}
		for _, k := range keys {
			t, _ := s.Type(k)
			row = append(row, truncate(FormatValue(t, o[k]), 32))
		}
		rows = append(rows, row)
	}
	widths := make([]int, len(head))
	for _, row := range rows {
		for c, cell := range row {
			if w := lipgloss.Width(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	selected := map[int]bool{}
	for _, i := range m.Selection() {
		selected[i] = true
	}
	var b strings.Builder
	for r, row := range rows {
		cells := make([]string, len(row))
		for c, cell := range row {
			cells[c] = padLine(cell, widths[c])
		}
		line := strings.Join(cells, "  ")
		switch {
		case r == 0:
			line = st.Header.Render(line)
		case selected[r-1]:
			line = st.Selected.Render(line)
		default:
			line = st.Cell.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if len(objs) == 0 {
		b.WriteString(st.Muted.Render("(no items)"))
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// summary is the one-line form of an object used in item pickers.
func summary(s *formskema.Schema, obj formskema.Object) string {
	var parts []string
	for _, k := range columns(s) {
		t, _ := s.Type(k)
		parts = append(parts, k+"="+truncate(FormatValue(t, obj[k]), 20))
	}
	return strings.Join(parts, ", ")
}

func padLine(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func truncate(s string, n int) string {
	r := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}

// Prompts adapts a PromptDriver to session.Prompts. Driver errors count as a
// declined confirmation.
type Prompts struct {
	Driver PromptDriver
	Styles Styles
}

func (p Prompts) Warn(ctx context.Context, text string) {
	_ = p.Driver.Info(ctx, p.Styles.Warning.Render(text))
}

func (p Prompts) Confirm(ctx context.Context, text string) bool {
	ok, err := p.Driver.Confirm(ctx, ConfirmConfig{Message: text})
	return err == nil && ok
}
