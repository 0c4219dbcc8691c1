package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/formwiz/internal/catalog"
	"github.com/abhisek/formwiz/internal/forms"
)

var formsCmd = &cobra.Command{
	Use:   "forms",
	Short: "Browse the wizard's categories and forms",
}

var formsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every form (optionally one category) with its fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		fields, _ := cmd.Flags().GetBool("fields")

		c := catalog.Default()
		if category != "" {
			cat, ok := c.Category(category)
			if !ok {
				return fmt.Errorf("no category %q", category)
			}
			c = catalog.Catalog{cat}
		}

		fmt.Printf("%-10s  %-10s  %-28s  %-32s  %s\n", "Category", "Form", "Name", "Route", "Fields")
		fmt.Println(strings.Repeat("─", 92))

		n := 0
		for _, cat := range c {
			for _, f := range cat.Forms {
				def, _ := forms.Lookup(f.ID)
				fmt.Printf("%-10s  %-10s  %-28s  %-32s  %d\n",
					cat.ID, f.ID, truncate(f.Name, 28), f.Route, len(def.Fields))
				n++
				if !fields {
					continue
				}
				for _, fd := range def.Fields {
					req := ""
					if fd.Required {
						req = " *"
					}
					fmt.Printf("%12s  %-20s  %-12s  %s%s\n", "", fd.Key, kindName(fd.Kind), fd.Label, req)
				}
			}
		}

		fmt.Printf("\n%d forms in %d categories\n", n, len(c))
		return nil
	},
}

func kindName(k forms.Kind) string {
	switch k {
	case forms.KindNumber:
		return "number"
	case forms.KindSelect:
		return "select"
	case forms.KindCheckbox:
		return "checkbox"
	case forms.KindMultiSelect:
		return "multiselect"
	}
	return "text"
}

func init() {
	formsListCmd.Flags().String("category", "", "Only list forms of this category (e.g. category2)")
	formsListCmd.Flags().BoolP("fields", "f", false, "Show each form's fields")

	formsCmd.AddCommand(formsListCmd)
}
