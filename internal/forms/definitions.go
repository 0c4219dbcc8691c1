package forms

import (
	"regexp"
	"slices"

	"github.com/abhisek/formwiz/internal/catalog"
)

// Definition is the field layout and copy of one wizard form.
type Definition struct {
	FormID       string
	CategoryID   string
	Title        string
	Description  string
	SavedMessage string
	Fields       []Field
}

var (
	emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[0-9+\-\s]+$`)
	zipPattern   = regexp.MustCompile(`^[0-9-]+$`)
)

var definitions = []Definition{
	{
		FormID:       "form1_1",
		CategoryID:   "category1",
		Title:        "Basic Personal Details",
		Description:  "Please provide your basic information",
		SavedMessage: "Your personal details have been saved.",
		Fields: []Field{
			{Key: "name", Label: "Full Name", Placeholder: "Enter your full name", Required: true, RequiredMessage: "Name is required"},
			{
				Key: "email", Label: "Email Address", Placeholder: "Enter your email address",
				Required: true, RequiredMessage: "Email is required",
				Pattern: emailPattern, PatternMessage: "Invalid email address",
			},
			{
				Key: "gender", Label: "Gender", Placeholder: "Select your gender", Kind: KindSelect,
				Required: true, RequiredMessage: "Gender is required",
				Options: []Option{
					{Value: "male", Label: "Male"},
					{Value: "female", Label: "Female"},
					{Value: "other", Label: "Other"},
					{Value: "prefer-not-to-say", Label: "Prefer not to say"},
				},
			},
		},
	},
	{
		FormID:       "form1_2",
		CategoryID:   "category1",
		Title:        "Additional Personal Details",
		Description:  "Please provide additional information",
		SavedMessage: "Your additional details have been saved.",
		Fields: []Field{
			{
				Key: "age", Label: "Age", Placeholder: "Enter your age", Kind: KindNumber,
				Required: true, RequiredMessage: "Age is required",
				HasRange: true, Min: 1, Max: 120,
				MinMessage: "Age must be at least 1", MaxMessage: "Age must be at most 120",
			},
		},
	},
	{
		FormID:       "form1_3",
		CategoryID:   "category1",
		Title:        "Professional Details",
		Description:  "Please provide your professional information",
		SavedMessage: "Your professional details have been saved.",
		Fields: []Field{
			{Key: "occupation", Label: "Occupation", Placeholder: "Enter your occupation", Required: true, RequiredMessage: "Occupation is required"},
		},
	},
	{
		FormID:       "form2_1",
		CategoryID:   "category2",
		Title:        "Phone & Address",
		Description:  "Please provide your contact information",
		SavedMessage: "Your contact information has been saved.",
		Fields: []Field{
			{
				Key: "phoneNumber", Label: "Phone Number", Placeholder: "Enter your phone number",
				Required: true, RequiredMessage: "Phone number is required",
				Pattern: phonePattern, PatternMessage: "Invalid phone number format",
			},
			{Key: "address", Label: "Address", Placeholder: "Enter your address", Required: true, RequiredMessage: "Address is required"},
		},
	},
	{
		FormID:       "form2_2",
		CategoryID:   "category2",
		Title:        "Location Details",
		Description:  "Please provide your city and zip code",
		SavedMessage: "Your location details have been saved.",
		Fields: []Field{
			{Key: "city", Label: "City", Placeholder: "Enter your city", Required: true, RequiredMessage: "City is required"},
			{
				Key: "zipCode", Label: "Zip Code", Placeholder: "Enter your zip code",
				Required: true, RequiredMessage: "Zip code is required",
				Pattern: zipPattern, PatternMessage: "Invalid zip code format",
			},
		},
	},
	{
		FormID:       "form3_1",
		CategoryID:   "category3",
		Title:        "Communication Preferences",
		Description:  "How would you prefer to be contacted?",
		SavedMessage: "Your communication preferences have been saved.",
		Fields: []Field{
			{
				Key: "preferredContact", Label: "Preferred Contact Method", Kind: KindSelect,
				Required: true, RequiredMessage: "Please select a preferred contact method",
				Options: []Option{
					{Value: "email", Label: "Email"},
					{Value: "phone", Label: "Phone"},
					{Value: "post", Label: "Post"},
					{Value: "none", Label: "Do not contact me"},
				},
			},
		},
	},
	{
		FormID:       "form3_2",
		CategoryID:   "category3",
		Title:        "Terms & Interests",
		Description:  "Please review and accept our terms",
		SavedMessage: "Your preferences have been saved.",
		Fields: []Field{
			{
				Key: "newsletter", Label: "Subscribe to newsletter", Kind: KindCheckbox,
				Help: "Receive updates about our products and services.",
			},
			{
				Key: "interests", Label: "Interests (Optional)", Kind: KindMultiSelect,
				Options: []Option{
					{Value: "Technology", Label: "Technology"},
					{Value: "Sports", Label: "Sports"},
					{Value: "Entertainment", Label: "Entertainment"},
					{Value: "Business", Label: "Business"},
					{Value: "Science", Label: "Science"},
				},
			},
			{
				Key: "termsAccepted", Label: "I accept the terms and conditions", Kind: KindCheckbox,
				Help:     "By checking this, you agree to our Terms of Service and Privacy Policy.",
				Required: true, RequiredMessage: "You must accept the terms and conditions",
			},
		},
	},
}

// Lookup returns the definition of the form with the given id.
func Lookup(formID string) (Definition, bool) {
	for _, d := range definitions {
		if d.FormID == formID {
			return d, true
		}
	}
	return Definition{}, false
}

// All returns every form definition in catalog order.
func All() []Definition {
	return slices.Clone(definitions)
}

// SavedMessage returns the "Form Saved" description of a form, or "".
func SavedMessage(formID string) string {
	d, _ := Lookup(formID)
	return d.SavedMessage
}

// Keys returns the union of all field keys in definition order.
func Keys() []string {
	var keys []string
	for _, d := range definitions {
		for _, f := range d.Fields {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// FieldByKey returns the field definition for a FieldMap key.
func FieldByKey(key string) (Field, bool) {
	for _, d := range definitions {
		for _, f := range d.Fields {
			if f.Key == key {
				return f, true
			}
		}
	}
	return Field{}, false
}

// Validate checks raw input for every field of d and returns the payload to
// submit. On failure the error is a FieldErrors.
func (d Definition) Validate(raw catalog.FieldMap) (catalog.FieldMap, error) {
	out := catalog.FieldMap{}
	errs := FieldErrors{}
	for _, f := range d.Fields {
		val, ok, msg := f.validate(raw[f.Key])
		if msg != "" {
			errs[f.Key] = msg
			continue
		}
		if ok {
			out[f.Key] = val
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

// Prefill returns the raw input for d seeded from previously collected data,
// so a completed form can be edited. Numbers come back as text.
func (d Definition) Prefill(data catalog.FieldMap) catalog.FieldMap {
	out := catalog.FieldMap{}
	for _, f := range d.Fields {
		v, ok := data[f.Key]
		if !ok {
			continue
		}
		if f.Kind == KindNumber && v.Kind() == catalog.KindNumber {
			v = catalog.Text(v.String())
		}
		out[f.Key] = v
	}
	return out
}

// CheckCatalog reports whether every form of c has a definition and every
// definition belongs to a form of c.
func CheckCatalog(c catalog.Catalog) error {
	errs := FieldErrors{}
	for _, f := range c.Forms() {
		d, ok := Lookup(f.ID)
		if !ok {
			errs[f.ID] = "no field definition"
		} else if d.CategoryID != f.CategoryID {
			errs[f.ID] = "definition lists category " + d.CategoryID
		}
	}
	for _, d := range definitions {
		if _, ok := c.Form(d.FormID); !ok {
			errs[d.FormID] = "definition for unknown form"
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Answer is one collected value ready for display.
type Answer struct {
	CategoryID string
	FormID     string
	FormTitle  string
	Key        string
	Label      string
	Value      string
}

// Answers lists the values in data in form and field order. Keys that no
// form defines are skipped.
func Answers(data catalog.FieldMap) []Answer {
	var out []Answer
	for _, d := range definitions {
		for _, f := range d.Fields {
			v, ok := data[f.Key]
			if !ok {
				continue
			}
			out = append(out, Answer{
				CategoryID: d.CategoryID,
				FormID:     d.FormID,
				FormTitle:  d.Title,
				Key:        f.Key,
				Label:      f.Label,
				Value:      f.Display(v),
			})
		}
	}
	return out
}
