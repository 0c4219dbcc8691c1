package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/formwiz/internal/catalog"
)

// exportDoc is the document written by the export command.
type exportDoc struct {
	SessionID string             `json:"session_id" yaml:"session_id"`
	Progress  float64            `json:"progress" yaml:"progress"`
	Completed []string           `json:"completed_forms" yaml:"completed_forms"`
	Data      map[string]any     `json:"data" yaml:"data"`
	Catalog   []exportedCategory `json:"categories" yaml:"categories"`
}

type exportedCategory struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Progress  float64 `json:"progress" yaml:"progress"`
	Completed int     `json:"completed" yaml:"completed"`
	Total     int     `json:"total" yaml:"total"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export collected answers as JSON or YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		if format != "json" && format != "yaml" {
			return fmt.Errorf("unsupported format %q (want json or yaml)", format)
		}

		db, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		st, err := openProgress(cmd.Context(), db)
		if err != nil {
			return fmt.Errorf("restore progress: %w", err)
		}

		doc := buildExport(st.SessionID(), st.Catalog(), st.Data())

		var w io.Writer = os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}
		return writeExport(w, format, doc)
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "Output format: json or yaml")
	exportCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
}

func buildExport(session string, c catalog.Catalog, data catalog.FieldMap) exportDoc {
	doc := exportDoc{
		SessionID: session,
		Progress:  c.OverallProgress(),
		Completed: []string{},
		Data:      make(map[string]any, len(data)),
	}
	for _, cat := range c {
		doc.Catalog = append(doc.Catalog, exportedCategory{
			ID:        cat.ID,
			Name:      cat.Name,
			Progress:  c.CategoryProgress(cat.ID),
			Completed: cat.CompletedCount(),
			Total:     len(cat.Forms),
		})
		for _, f := range cat.Forms {
			if f.Completed {
				doc.Completed = append(doc.Completed, f.ID)
			}
		}
	}
	for k, v := range data {
		doc.Data[k] = plain(v)
	}
	return doc
}

// plain converts a FieldValue into a value both encoders understand.
func plain(v catalog.FieldValue) any {
	switch v.Kind() {
	case catalog.KindString:
		s, _ := v.AsText()
		return s
	case catalog.KindNumber:
		n, _ := v.AsNumber()
		return n
	case catalog.KindBool:
		b, _ := v.AsBool()
		return b
	case catalog.KindList:
		l, _ := v.AsList()
		return l
	}
	return nil
}

func writeExport(w io.Writer, format string, doc exportDoc) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
