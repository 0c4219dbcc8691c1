package catalog

// Route tokens outside the per-form routes.
const (
	RouteDashboard  = "/"
	RouteCompletion = "/completion"
)

var defaultCatalog = Catalog{
	{
		ID:          "category1",
		Name:        "Personal Information",
		Description: "Basic personal details",
		Forms: []FormInfo{
			{ID: "form1_1", CategoryID: "category1", Name: "Basic Details", Route: "/forms/category1/form1"},
			{ID: "form1_2", CategoryID: "category1", Name: "Additional Details", Route: "/forms/category1/form2"},
			{ID: "form1_3", CategoryID: "category1", Name: "Professional Details", Route: "/forms/category1/form3"},
		},
	},
	{
		ID:          "category2",
		Name:        "Contact Information",
		Description: "Your contact details",
		Forms: []FormInfo{
			{ID: "form2_1", CategoryID: "category2", Name: "Phone & Address", Route: "/forms/category2/form1"},
			{ID: "form2_2", CategoryID: "category2", Name: "Additional Contacts", Route: "/forms/category2/form2"},
		},
	},
	{
		ID:          "category3",
		Name:        "Preferences",
		Description: "Your preferences and settings",
		Forms: []FormInfo{
			{ID: "form3_1", CategoryID: "category3", Name: "Communication Preferences", Route: "/forms/category3/form1"},
			{ID: "form3_2", CategoryID: "category3", Name: "Terms & Interests", Route: "/forms/category3/form2"},
		},
	},
}

func init() {
	if err := defaultCatalog.Validate(); err != nil {
		panic(err)
	}
}

// Default returns a fresh copy of the built-in wizard definition with every
// form pending.
func Default() Catalog {
	return defaultCatalog.Clone()
}
