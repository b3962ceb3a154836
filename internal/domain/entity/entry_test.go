package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewMatchedEntry(t *testing.T) {
	postedAt := time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name        string
		text        string
		wantTitle   string
		wantContent string
	}{
		{
			name:        "title and body",
			text:        "New release out\nDetails inside.\nSee changelog.",
			wantTitle:   "New release out",
			wantContent: "Details inside.\nSee changelog.",
		},
		{
			name:        "single line has no content",
			text:        "New release out",
			wantTitle:   "New release out",
			wantContent: "",
		},
		{
			name:        "CRLF bodies are normalized",
			text:        "Title\r\nline one\r\nline two",
			wantTitle:   "Title",
			wantContent: "line one\nline two",
		},
		{
			name:        "leading blank line yields empty title",
			text:        "\nbody only",
			wantTitle:   "",
			wantContent: "body only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := NewMatchedEntry(Message{
				Channel:  "chX",
				ID:       42,
				PostedAt: postedAt,
				Text:     tt.text,
			})

			assert.Equal(t, "chX", entry.Channel)
			assert.Equal(t, int64(42), entry.MessageID)
			assert.Equal(t, tt.wantTitle, entry.Title)
			assert.Equal(t, tt.wantContent, entry.Content)
			assert.Equal(t, "01.01.2025 09:30", entry.Date)
		})
	}
}
