// Package report renders wizard progress and collected answers as plain
// text for the CLI.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"charm.land/lipgloss/v2/tree"

	"github.com/abhisek/formwiz/internal/catalog"
	"github.com/abhisek/formwiz/internal/forms"
	"github.com/abhisek/formwiz/internal/progression"
)

// Input is everything a report shows.
type Input struct {
	Overall    float64
	Categories []progression.CategoryEntry
	Answers    []forms.Answer
}

// FromStore snapshots s for rendering.
func FromStore(s *progression.Store) Input {
	return Build(s.Catalog(), s.Data())
}

// Build derives an Input from a catalog and its collected data.
func Build(c catalog.Catalog, data catalog.FieldMap) Input {
	return Input{
		Overall:    c.OverallProgress(),
		Categories: progression.OverviewOf(c),
		Answers:    forms.Answers(data),
	}
}

// Options selects report sections.
type Options struct {
	Answers bool
}

// Percent rounds a progress value the way the dashboard shows it.
func Percent(p float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(p)))
}

// Render writes the report to w.
func Render(w io.Writer, in Input, opts Options) error {
	done, total := 0, 0
	for _, c := range in.Categories {
		for _, f := range c.Forms {
			total++
			if f.Form.Completed {
				done++
			}
		}
	}

	sections := []string{fmt.Sprintf("Overall progress: %s (%d of %d forms)", Percent(in.Overall), done, total)}
	for _, c := range in.Categories {
		sections = append(sections, categoryTree(c).String())
	}
	if opts.Answers {
		sections = append(sections, answersSection(in.Answers))
	}

	_, err := io.WriteString(w, strings.Join(sections, "\n\n")+"\n")
	return err
}

func categoryTree(c progression.CategoryEntry) *tree.Tree {
	header := c.Name + " " + Percent(c.Progress)
	if !c.Accessible {
		header += " (locked)"
	}
	t := tree.Root(header)
	for _, f := range c.Forms {
		t.Child(marker(f) + " " + f.Form.Name)
	}
	return t
}

func marker(f progression.FormEntry) string {
	switch {
	case f.Form.Completed:
		return "[x]"
	case !f.Accessible():
		return "[-]"
	}
	return "[ ]"
}

func answersSection(answers []forms.Answer) string {
	if len(answers) == 0 {
		return "Answers\n(none collected yet)"
	}
	t := tree.Root("Answers")
	for start := 0; start < len(answers); {
		end := start
		form := tree.Root(answers[start].FormTitle)
		for end < len(answers) && answers[end].FormID == answers[start].FormID {
			form.Child(answers[end].Label + ": " + answers[end].Value)
			end++
		}
		t.Child(form)
		start = end
	}
	return t.String()
}
