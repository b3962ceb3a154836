package entity

import "strings"

// MatchedEntry is a message that passed both the date-window and keyword
// filters. It is created exactly once per selected message and never
// mutated afterwards.
type MatchedEntry struct {
	Channel   string
	MessageID int64
	Title     string
	Content   string
	Date      string
}

// NewMatchedEntry derives an entry from a selected message: the first line
// of the body becomes the title, the remaining lines (rejoined with
// newlines) become the content. A single-line body yields empty content.
func NewMatchedEntry(msg Message) MatchedEntry {
	lines := splitLines(msg.Text)

	var title, content string
	if len(lines) > 0 {
		title = lines[0]
	}
	if len(lines) > 1 {
		content = strings.Join(lines[1:], "\n")
	}

	return MatchedEntry{
		Channel:   msg.Channel,
		MessageID: msg.ID,
		Title:     title,
		Content:   content,
		Date:      msg.PostedAt.Format(EntryDateLayout),
	}
}

// splitLines splits a message body on newlines, tolerating CRLF endings.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(normalized, "\n")
}
