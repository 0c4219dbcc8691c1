// Package forms defines the input fields of every wizard form and validates
// what the user typed before it reaches the progression store.
package forms

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/abhisek/formwiz/internal/catalog"
)

// Kind is the input widget a field uses.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindSelect
	KindCheckbox
	KindMultiSelect
)

// Option is one choice of a select or multiselect field.
type Option struct {
	Value string
	Label string
}

// Field describes a single input and its validation rules.
type Field struct {
	Key         string
	Label       string
	Placeholder string
	Help        string
	Kind        Kind
	Options     []Option

	Required        bool
	RequiredMessage string

	Pattern        *regexp.Regexp
	PatternMessage string

	// Min and Max bound KindNumber fields when HasRange is set.
	HasRange   bool
	Min, Max   float64
	MinMessage string
	MaxMessage string
}

// OptionLabel returns the display label for value, or value itself.
func (f Field) OptionLabel(value string) string {
	for _, o := range f.Options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// FieldErrors maps field keys to their validation messages.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e[k])
	}
	return "invalid form input: " + strings.Join(parts, "; ")
}

// validate checks one raw input value and returns the normalized value to
// store. ok is false when the field should be omitted from the payload.
func (f Field) validate(raw catalog.FieldValue) (val catalog.FieldValue, ok bool, msg string) {
	switch f.Kind {
	case KindCheckbox:
		b, _ := raw.AsBool()
		if f.Required && !b {
			return val, false, f.RequiredMessage
		}
		return catalog.Bool(b), true, ""

	case KindMultiSelect:
		items, _ := raw.AsList()
		if f.Required && len(items) == 0 {
			return val, false, f.RequiredMessage
		}
		kept := make([]string, 0, len(items))
		for _, o := range f.Options {
			if slices.Contains(items, o.Value) {
				kept = append(kept, o.Value)
			}
		}
		return catalog.List(kept...), true, ""
	}

	s, _ := raw.AsText()
	s = strings.TrimSpace(s)
	if s == "" {
		if f.Required {
			return val, false, f.RequiredMessage
		}
		return val, false, ""
	}

	switch f.Kind {
	case KindNumber:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return val, false, fmt.Sprintf("%s must be a number", f.Label)
		}
		if f.HasRange && n < f.Min {
			return val, false, f.MinMessage
		}
		if f.HasRange && n > f.Max {
			return val, false, f.MaxMessage
		}
		return catalog.Number(n), true, ""

	case KindSelect:
		for _, o := range f.Options {
			if o.Value == s {
				return catalog.Text(s), true, ""
			}
		}
		return val, false, fmt.Sprintf("%s is not a valid choice", s)
	}

	if f.Pattern != nil && !f.Pattern.MatchString(s) {
		return val, false, f.PatternMessage
	}
	return catalog.Text(s), true, ""
}

// Display renders a stored value for people: choices by label, lists
// comma-joined, booleans as Yes/No.
func (f Field) Display(v catalog.FieldValue) string {
	switch f.Kind {
	case KindSelect:
		if s, ok := v.AsText(); ok {
			return f.OptionLabel(s)
		}
	case KindMultiSelect:
		if items, ok := v.AsList(); ok {
			labels := make([]string, len(items))
			for i, it := range items {
				labels[i] = f.OptionLabel(it)
			}
			return strings.Join(labels, ", ")
		}
	}
	return v.String()
}
