// Package entity defines the core domain entities of the channel report
// pipeline: raw channel messages, the date window, matched entries, grouped
// scan results, and the renderable report model.
package entity

import "time"

// DateLayout is the calendar-day format used by configuration dates and
// report labels (day.month.year).
const DateLayout = "02.01.2006"

// EntryDateLayout is the format used for the date attached to a matched entry.
const EntryDateLayout = "02.01.2006 15:04"

// Message represents a single raw message from a channel's history.
// IDs are unique within a channel and increase with time.
type Message struct {
	Channel  string
	ID       int64
	PostedAt time.Time
	Text     string
}

// HasText reports whether the message carries a text body.
// Messages without text are unconditionally excluded from reports.
func (m Message) HasText() bool {
	return m.Text != ""
}

// Day returns the message timestamp truncated to its UTC calendar day.
// All date-window comparisons operate on this value, so a message posted
// at 23:59 on the end date is still inside the window.
func (m Message) Day() time.Time {
	t := m.PostedAt.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Window is an inclusive calendar-day range. Start and End are UTC
// midnights of the first and last day covered by a report.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds a window from two UTC midnight days.
func NewWindow(start, end time.Time) Window {
	return Window{Start: start, End: end}
}

// Contains reports whether the given calendar day falls inside the window.
func (w Window) Contains(day time.Time) bool {
	return !day.Before(w.Start) && !day.After(w.End)
}

// SingleDay reports whether the window covers exactly one calendar day.
func (w Window) SingleDay() bool {
	return w.Start.Equal(w.End)
}

// Label returns the window formatted for report names: a single date when
// start and end coincide, otherwise a start-end range.
func (w Window) Label() string {
	if w.SingleDay() {
		return w.Start.Format(DateLayout)
	}
	return w.Start.Format(DateLayout) + "-" + w.End.Format(DateLayout)
}
