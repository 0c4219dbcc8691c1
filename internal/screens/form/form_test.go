package form

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/formwiz/internal/catalog"
	"github.com/abhisek/formwiz/internal/forms"
	"github.com/abhisek/formwiz/internal/progression"
)

type recorder struct {
	routes  []string
	notices []progression.Notice
}

func newStore(t *testing.T, rec *recorder) *progression.Store {
	t.Helper()
	st, err := progression.New(context.Background(), progression.Options{
		Catalog:  catalog.Default(),
		Router:   progression.RouterFunc(func(r string) { rec.routes = append(rec.routes, r) }),
		Notifier: progression.NotifierFunc(func(n progression.Notice) { rec.notices = append(rec.notices, n) }),
	})
	if err != nil {
		t.Fatalf("progression.New: %v", err)
	}
	return st
}

func newScreen(t *testing.T, formID string, rec *recorder) (*FormScreen, *progression.Store) {
	t.Helper()
	st := newStore(t, rec)
	def, ok := forms.Lookup(formID)
	if !ok {
		t.Fatalf("no definition for %s", formID)
	}
	s := New(context.Background(), st, def)
	s.Init()
	return s, st
}

func typeText(s *FormScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func press(s *FormScreen, code rune, mod tea.KeyMod) {
	s.Update(tea.KeyPressMsg{Code: code, Mod: mod})
}

func TestFormScreen_TitleAndRoute(t *testing.T) {
	s, _ := newScreen(t, "form1_1", &recorder{})
	if got, want := s.Title(), "Personal Information › Basic Details"; got != want {
		t.Errorf("Title() = %q, want %q", got, want)
	}
	if got, want := s.Route(), "/forms/category1/form1"; got != want {
		t.Errorf("Route() = %q, want %q", got, want)
	}
}

func TestFormScreen_SaveInvalid(t *testing.T) {
	rec := &recorder{}
	s, st := newScreen(t, "form1_1", rec)

	press(s, 's', tea.ModCtrl)

	errs := s.Errors()
	for _, key := range []string{"name", "email", "gender"} {
		if _, ok := errs[key]; !ok {
			t.Errorf("expected an error for %s, got %v", key, errs)
		}
	}
	if len(rec.routes) != 0 {
		t.Errorf("invalid save navigated to %v", rec.routes)
	}
	if st.OverallProgress() != 0 {
		t.Error("invalid save should not complete the form")
	}
}

func TestFormScreen_SaveValid(t *testing.T) {
	rec := &recorder{}
	s, st := newScreen(t, "form1_1", rec)

	typeText(s, "Ada Lovelace")
	press(s, tea.KeyTab, 0)
	typeText(s, "ada@example.com")
	press(s, tea.KeyTab, 0)
	press(s, tea.KeyRight, 0)
	press(s, tea.KeySpace, 0)

	press(s, 's', tea.ModCtrl)

	if len(s.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", s.Errors())
	}
	if len(rec.routes) != 1 || rec.routes[0] != "/forms/category1/form2" {
		t.Errorf("routes = %v, want [/forms/category1/form2]", rec.routes)
	}
	if len(rec.notices) != 1 || rec.notices[0].Title != "Form Saved" {
		t.Errorf("notices = %v", rec.notices)
	}

	data := st.Data()
	if v, _ := data["name"].AsText(); v != "Ada Lovelace" {
		t.Errorf("name = %q", v)
	}
	if v, _ := data["gender"].AsText(); v != "female" {
		t.Errorf("gender = %q, want female", v)
	}
	if !catalogCompleted(st, "form1_1") {
		t.Error("form1_1 should be completed")
	}
}

func TestFormScreen_EnterOnSubmitSaves(t *testing.T) {
	rec := &recorder{}
	s, st := newScreen(t, "form1_3", rec)
	st.MarkFormCompleted(context.Background(), "category1", "form1_1")
	st.MarkFormCompleted(context.Background(), "category1", "form1_2")

	typeText(s, "Engineer")
	press(s, tea.KeyEnter, 0)
	press(s, tea.KeyEnter, 0)

	if len(rec.routes) != 1 || rec.routes[0] != "/forms/category2/form1" {
		t.Errorf("routes = %v, want [/forms/category2/form1]", rec.routes)
	}
}

func TestFormScreen_NumericFieldRejectsLetters(t *testing.T) {
	s, _ := newScreen(t, "form1_2", &recorder{})
	typeText(s, "4x2")
	if v, _ := s.Values()["age"].AsText(); v != "42" {
		t.Errorf("age input = %q, want 42", v)
	}
}

func TestFormScreen_Prefill(t *testing.T) {
	rec := &recorder{}
	st := newStore(t, rec)
	st.UpdateData(context.Background(), catalog.FieldMap{
		"newsletter": catalog.Bool(true),
		"interests":  catalog.List("Science", "Sports"),
	})
	def, _ := forms.Lookup("form3_2")
	s := New(context.Background(), st, def)

	vals := s.Values()
	if on, _ := vals["newsletter"].AsBool(); !on {
		t.Error("newsletter should be prefilled")
	}
	items, _ := vals["interests"].AsList()
	if len(items) != 2 || items[0] != "Sports" || items[1] != "Science" {
		t.Errorf("interests = %v, want [Sports Science]", items)
	}
}

func TestFormScreen_PreviousNavigates(t *testing.T) {
	rec := &recorder{}
	s, st := newScreen(t, "form1_2", rec)
	st.SetCurrentCategory("category1")
	st.SetCurrentForm("form1_2")

	press(s, 'p', tea.ModCtrl)

	if len(rec.routes) != 1 || rec.routes[0] != "/forms/category1/form1" {
		t.Errorf("routes = %v, want [/forms/category1/form1]", rec.routes)
	}
}

func TestFormScreen_NextRequiresSave(t *testing.T) {
	rec := &recorder{}
	s, st := newScreen(t, "form1_1", rec)
	if err := st.OpenForm(context.Background(), "category1", "form1_1"); err != nil {
		t.Fatalf("OpenForm: %v", err)
	}
	rec.routes = nil

	press(s, 'n', tea.ModCtrl)

	if len(rec.routes) != 0 {
		t.Errorf("next on an empty form navigated to %v", rec.routes)
	}
	if got := st.Cursor().FormID; got != "form1_1" {
		t.Errorf("cursor = %q, want form1_1", got)
	}
	if st.IsFormAccessible("form1_2") {
		t.Error("form1_2 should stay locked")
	}
	if len(s.Errors()) == 0 {
		t.Error("expected validation errors")
	}

	typeText(s, "Ada Lovelace")
	press(s, tea.KeyTab, 0)
	typeText(s, "ada@example.com")
	press(s, tea.KeyTab, 0)
	press(s, tea.KeySpace, 0)
	press(s, 'n', tea.ModCtrl)

	if len(rec.routes) != 1 || rec.routes[0] != "/forms/category1/form2" {
		t.Errorf("routes = %v, want [/forms/category1/form2]", rec.routes)
	}
	if !catalogCompleted(st, "form1_1") {
		t.Error("form1_1 should be completed before moving on")
	}
}

func TestFormScreen_View(t *testing.T) {
	s, _ := newScreen(t, "form3_2", &recorder{})
	if s.View(80, 30) == "" {
		t.Error("expected a non-empty view")
	}
}

func catalogCompleted(st *progression.Store, formID string) bool {
	f, _ := st.Form(formID)
	return f.Completed
}
