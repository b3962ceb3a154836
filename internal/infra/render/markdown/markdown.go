// Package markdown renders report models as Markdown documents.
package markdown

import (
	"bufio"
	"fmt"
	"io"

	"channel-report/internal/domain/entity"
)

// Renderer writes a report as Markdown.
type Renderer struct{}

// NewRenderer creates a Markdown renderer.
func NewRenderer() Renderer { return Renderer{} }

// Extension returns "md".
func (Renderer) Extension() string { return "md" }

// Render writes the report. Sections become level-two headings in
// configured order, entries become linked titles with the post timestamp
// and body underneath.
func (Renderer) Render(model entity.ReportModel, w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# Report %s\n", model.Window.Label())

	for _, section := range model.Sections {
		fmt.Fprintf(bw, "\n## %s\n", section.Name)

		if len(section.Entries) == 0 {
			fmt.Fprint(bw, "\n_No matching posts._\n")
			continue
		}

		for _, entry := range section.Entries {
			fmt.Fprintf(bw, "\n### [%s](%s)\n", entry.Title, entry.SourceURL)
			fmt.Fprintf(bw, "\n*%s*\n", entry.Date)
			if entry.Body != "" {
				fmt.Fprintf(bw, "\n%s\n", entry.Body)
			}
		}
	}

	return bw.Flush()
}
