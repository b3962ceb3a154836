package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReportModel_DefaultFileName(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		ext      string
		expected string
	}{
		{
			name:     "single date form",
			start:    day(2025, 4, 2),
			end:      day(2025, 4, 2),
			ext:      "docx",
			expected: "report_02.04.2025.docx",
		},
		{
			name:     "range form",
			start:    day(2025, 1, 1),
			end:      day(2025, 1, 2),
			ext:      "html",
			expected: "report_01.01.2025-02.01.2025.html",
		},
		{
			name:     "leading dot in extension is tolerated",
			start:    day(2025, 4, 2),
			end:      day(2025, 4, 2),
			ext:      ".md",
			expected: "report_02.04.2025.md",
		},
		{
			name:     "empty extension",
			start:    day(2025, 4, 2),
			end:      day(2025, 4, 2),
			ext:      "",
			expected: "report_02.04.2025",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &ReportModel{Window: NewWindow(tt.start, tt.end)}
			assert.Equal(t, tt.expected, m.DefaultFileName(tt.ext))
		})
	}
}
