package entity

import "strings"

// ReportEntry is one entry block of the rendered report. SourceURL is the
// canonical reference to the original message, built from the channel
// identifier and message ID.
type ReportEntry struct {
	SourceURL string
	Title     string
	Body      string
	Date      string
}

// Section is one report section: a group name with its entries in scan order.
type Section struct {
	Name    string
	Entries []ReportEntry
}

// ReportModel is the logical, renderer-agnostic structure of the final
// document. It is built once from grouped scan results and consumed once
// by a renderer.
type ReportModel struct {
	Window   Window
	Sections []Section
}

// DefaultFileName derives the advisory output name from the report window:
// report_<start> for a single-day window, report_<start>-<end> otherwise.
// The extension is supplied by the caller and may omit the leading dot.
func (m *ReportModel) DefaultFileName(ext string) string {
	name := "report_" + m.Window.Label()
	if ext == "" {
		return name
	}
	return name + "." + strings.TrimPrefix(ext, ".")
}
