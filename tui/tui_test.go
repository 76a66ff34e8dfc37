package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/go-cmp/cmp"

	formskema "github.com/reoring/formskema"
	"github.com/reoring/formskema/collection"
	g "github.com/reoring/formskema/dsl"
	"github.com/reoring/formskema/i18n"
	"github.com/reoring/formskema/session"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	textAreas    []string
	passwords    []string
	infoMessages []string
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	textPos      int
	passPos      int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, session.ErrAborted
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, _ SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func TestCollectionDriver_AddItem(t *testing.T) {
	schema := g.Object().
		FieldOf("name", g.String()).
		FieldOf("active", g.Bool()).
		FieldOf("team", g.Choice("red", "green")).
		MustBuild()
	m := collection.New(schema, collection.Options{ValidateAddedObject: true})
	driver := &stubDriver{
		// add; name, active, team (choice 1), accept item; accept collection
		selectIdx: []int{1, 0, 1, 2, 1, 3, 7},
		inputs:    []string{"Ann"},
		confirm:   []bool{true},
	}
	d := NewCollectionDriver(driver, PlainStyles())
	objs, ok, err := session.RunCollectionSession(context.Background(), m, session.CollectionHooks{}, Prompts{Driver: driver, Styles: PlainStyles()}, d)
	if err != nil || !ok {
		t.Fatalf("expected accepted session, got %v %v", ok, err)
	}
	want := []formskema.Object{{"name": "Ann", "active": true, "team": "green"}}
	if diff := cmp.Diff(want, objs); diff != "" {
		t.Fatalf("objects mismatch (-want +got):\n%s", diff)
	}
	if driver.selectPos != 7 || driver.inputPos != 1 || driver.confirmPos != 1 {
		t.Fatalf("prompts not consumed as expected")
	}
}

func TestCollectionDriver_SelectAndRemove(t *testing.T) {
	schema := g.Object().FieldOf("name", g.String()).MustBuild()
	m := collection.New(schema, collection.Options{})
	for _, n := range []string{"A", "B", "C"} {
		_ = m.Add(formskema.Object{"name": n})
	}
	driver := &stubDriver{
		selectIdx: []int{0, 3, 7},
		multiIdx:  [][]int{{0, 2}, {1}},
		confirm:   []bool{true},
	}
	d := NewCollectionDriver(driver, PlainStyles())
	objs, ok, err := session.RunCollectionSession(context.Background(), m, session.CollectionHooks{}, Prompts{Driver: driver, Styles: PlainStyles()}, d)
	if err != nil || !ok {
		t.Fatalf("expected accepted session, got %v %v", ok, err)
	}
	if diff := cmp.Diff([]formskema.Object{{"name": "A"}, {"name": "C"}}, objs); diff != "" {
		t.Fatalf("objects mismatch (-want +got):\n%s", diff)
	}
	found := false
	for _, msg := range driver.infoMessages {
		if strings.Contains(msg, i18n.T(i18n.PromptNotContiguous, nil)) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a contiguity warning, got %v", driver.infoMessages)
	}
}

func TestCollectionDriver_InterruptRestores(t *testing.T) {
	schema := g.Object().FieldOf("name", g.String()).MustBuild()
	m := collection.New(schema, collection.Options{})
	_ = m.Add(formskema.Object{"name": "A"})
	// clear, confirmed; then the script runs out, which reads as an interrupt
	driver := &stubDriver{selectIdx: []int{4}, confirm: []bool{true}}
	objs, ok, err := session.RunCollectionSession(context.Background(), m, session.CollectionHooks{}, Prompts{Driver: driver}, NewCollectionDriver(driver, PlainStyles()))
	if err != nil || ok || len(objs) != 1 {
		t.Fatalf("interrupt should restore, got %v %v %v", objs, ok, err)
	}
}

func TestEditor_FieldErrorsAndDiscard(t *testing.T) {
	schema := g.Object().
		FieldOf("n", g.Int()).
		FieldOf("id", g.String().Default("x").ReadOnly()).
		FieldOf("pw", g.String().Echo(g.EchoPassword)).
		FieldOf("notes", g.List().Lines(3)).
		MustBuild()
	driver := &stubDriver{
		// n (bad text), id (read-only), pw, notes, cancel (keep), cancel (discard)
		selectIdx: []int{0, 1, 2, 3, 5, 5},
		inputs:    []string{"abc"},
		passwords: []string{"s3cret"},
		textAreas: []string{"[1, 2]"},
		confirm:   []bool{false, true},
	}
	e := &Editor{Driver: driver, Styles: PlainStyles()}
	initial := formskema.Object{"n": 1}
	got, ok, err := session.RunObjectSession(context.Background(), schema, initial, session.ObjectHooks{}, Prompts{Driver: driver}, e)
	if err != nil || ok {
		t.Fatalf("expected rejected session, got %v %v", ok, err)
	}
	if diff := cmp.Diff(initial, got); diff != "" {
		t.Fatalf("reject should return the initial object:\n%s", diff)
	}
	if len(driver.infoMessages) != 2 {
		t.Fatalf("expected two field warnings, got %v", driver.infoMessages)
	}
	if !strings.Contains(driver.infoMessages[1], "read-only") {
		t.Fatalf("expected read-only warning, got %q", driver.infoMessages[1])
	}
	if driver.passPos != 1 || driver.textPos != 1 || driver.confirmPos != 2 {
		t.Fatalf("prompts not consumed as expected")
	}
}

func TestRenderTable(t *testing.T) {
	schema := g.Object().
		FieldOf("name", g.String().Label("Name")).
		FieldOf("n", g.Int()).
		FieldOf("secret", g.String().Hidden()).
		MustBuild()
	m := collection.New(schema, collection.Options{})
	_ = m.Add(formskema.Object{"name": "ab", "n": 1, "secret": "zz"})
	_ = m.Add(formskema.Object{"name": "c", "n": 22, "secret": "zz"})
	_ = m.Select(1)
	out := RenderTable(m, PlainStyles())
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got %q", out)
	}
	for _, want := range []string{"Name", "22", "ab"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table should contain %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "secret") || strings.Contains(out, "zz") {
		t.Fatalf("hidden fields must not be shown:\n%s", out)
	}
	empty := RenderTable(collection.New(schema, collection.Options{}), PlainStyles())
	if !strings.Contains(empty, "(no items)") {
		t.Fatalf("empty table should say so:\n%s", empty)
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	if err := translateSurveyErr(fmt.Errorf("ask: %w", terminal.InterruptErr)); !errors.Is(err, session.ErrAborted) {
		t.Fatalf("interrupt should map to ErrAborted, got %v", err)
	}
	other := errors.New("boom")
	if err := translateSurveyErr(other); err != other {
		t.Fatalf("other errors pass through, got %v", err)
	}
}

func TestSurveyDriver_Stdio(t *testing.T) {
	d, ok := NewSurveyDriver(nil, nil).(*surveyDriver)
	if !ok || d.in != os.Stdin || d.out != os.Stderr {
		t.Fatalf("prompts must default to stdin and stderr, got %+v", d)
	}

	out, err := os.CreateTemp(t.TempDir(), "prompts")
	if err != nil {
		t.Fatalf("temp: %v", err)
	}
	defer out.Close()
	d = NewSurveyDriver(os.Stdin, out).(*surveyDriver)
	if err := d.Info(context.Background(), "hello"); err != nil {
		t.Fatalf("info: %v", err)
	}
	got, err := os.ReadFile(out.Name())
	if err != nil || string(got) != "hello\n" {
		t.Fatalf("info must go to the prompt writer, got %q %v", got, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := d.Select(ctx, SelectConfig{Options: []string{"a"}}); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled context must stop before prompting, got %v", err)
	}
}
