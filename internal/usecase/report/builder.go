// Package report turns grouped scan results into a render-ready report
// model. The model is plain data so every renderer works from the same
// structure.
package report

import (
	"fmt"
	"strings"

	"channel-report/internal/domain/entity"
)

// DefaultLinkBase is the public base URL used to link report entries back
// to their source message.
const DefaultLinkBase = "https://t.me"

// Builder assembles a ReportModel from grouped scan results.
type Builder struct {
	linkBase string
}

// NewBuilder creates a Builder. An empty linkBase falls back to
// DefaultLinkBase.
func NewBuilder(linkBase string) Builder {
	if linkBase == "" {
		linkBase = DefaultLinkBase
	}
	return Builder{linkBase: strings.TrimRight(linkBase, "/")}
}

// Build produces a report model for the window. Every group becomes a
// section in configured order, including groups without a single match.
func (b Builder) Build(results *entity.GroupedResults, window entity.Window) entity.ReportModel {
	model := entity.ReportModel{
		Window:   window,
		Sections: make([]entity.Section, 0, len(results.Groups())),
	}

	for _, group := range results.Groups() {
		matched := results.Entries(group)
		section := entity.Section{
			Name:    group,
			Entries: make([]entity.ReportEntry, 0, len(matched)),
		}
		for _, e := range matched {
			section.Entries = append(section.Entries, entity.ReportEntry{
				SourceURL: b.sourceURL(e),
				Title:     e.Title,
				Body:      e.Content,
				Date:      e.Date,
			})
		}
		model.Sections = append(model.Sections, section)
	}

	return model
}

func (b Builder) sourceURL(e entity.MatchedEntry) string {
	return fmt.Sprintf("%s/%s/%d", b.linkBase, e.Channel, e.MessageID)
}
