// Package render writes report models out as documents. Each output format
// lives in its own subpackage behind the common Renderer interface.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"channel-report/internal/domain/entity"
	"channel-report/internal/infra/render/docx"
	"channel-report/internal/infra/render/html"
	"channel-report/internal/infra/render/markdown"
	"channel-report/internal/observability/metrics"
)

// Renderer serializes a report model into one output format.
type Renderer interface {
	// Render writes the document for the model to w.
	Render(model entity.ReportModel, w io.Writer) error

	// Extension returns the file extension of the format, without the dot.
	Extension() string
}

// RenderError wraps a failure to produce or write a report document.
// Rendering is side-effect free with respect to the scan, so a failed
// render can always be attempted again.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render report to %q: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Retryable marks render failures as safe to retry.
func (e *RenderError) Retryable() bool { return true }

// ForFormat returns the renderer for a format name. An empty format
// selects docx.
func ForFormat(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", "docx":
		return docx.NewRenderer(), nil
	case "html":
		return html.NewRenderer(), nil
	case "md", "markdown":
		return markdown.NewRenderer(), nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

// WriteFile renders the model to a file and returns the path written. An
// empty path derives the file name from the report window and the
// renderer's extension.
func WriteFile(r Renderer, model entity.ReportModel, path string) (string, error) {
	if path == "" {
		path = model.DefaultFileName(r.Extension())
	}

	start := time.Now()
	err := writeFile(r, model, path)
	metrics.RecordReportRendered(r.Extension(), err == nil, time.Since(start))
	if err != nil {
		return "", &RenderError{Path: path, Err: err}
	}
	return path, nil
}

func writeFile(r Renderer, model entity.ReportModel, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := r.Render(model, f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
