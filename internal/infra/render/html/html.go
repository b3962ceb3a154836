// Package html renders report models as standalone HTML documents.
package html

import (
	"html/template"
	"io"

	"channel-report/internal/domain/entity"
)

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Report {{.Window.Label}}</title>
<style>
body { font-family: "Times New Roman", serif; font-size: 14pt; margin: 2em auto; max-width: 50em; }
h2 { text-align: center; }
p.body { text-align: justify; }
p.date { font-style: italic; color: #555; }
p.empty { color: #777; }
</style>
</head>
<body>
<h1>Report {{.Window.Label}}</h1>
{{- range .Sections}}
<h2>{{.Name}}</h2>
{{- if .Entries}}
{{- range .Entries}}
<h3><a href="{{.SourceURL}}">{{.Title}}</a></h3>
<p class="date">{{.Date}}</p>
{{- if .Body}}
<p class="body">{{.Body}}</p>
{{- end}}
{{- end}}
{{- else}}
<p class="empty">No matching posts.</p>
{{- end}}
{{- end}}
</body>
</html>
`

var tmpl = template.Must(template.New("report").Parse(reportTemplate))

// Renderer writes a report as a single HTML page.
type Renderer struct{}

// NewRenderer creates an HTML renderer.
func NewRenderer() Renderer { return Renderer{} }

// Extension returns "html".
func (Renderer) Extension() string { return "html" }

// Render writes the report page to w.
func (Renderer) Render(model entity.ReportModel, w io.Writer) error {
	return tmpl.Execute(w, model)
}
