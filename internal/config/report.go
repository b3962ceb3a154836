// Package config loads and validates the report configuration file.
// The file describes the channel grouping, the date window, the keyword
// patterns, and the message source backing the scan.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"channel-report/internal/domain/entity"
)

// Group maps a report section name to an ordered list of channel
// identifiers. Channels are scanned in the order they are listed.
type Group struct {
	Name     string   `yaml:"name"`
	Channels []string `yaml:"channels"`
}

// SourceConfig selects the message source backing the scan.
//
// Type "feed" treats each channel as an RSS/Atom feed; Feeds maps channel
// identifiers to feed URLs. Type "archive" reads channels from the message
// archive database (connection settings come from the environment, see
// internal/infra/db).
type SourceConfig struct {
	Type  string            `yaml:"type"`
	Feeds map[string]string `yaml:"feeds,omitempty"`
}

// ReportConfig is the parsed report configuration. Dates are inclusive
// calendar days in day.month.year form; keywords are case-insensitive
// regular expressions.
type ReportConfig struct {
	Groups    []Group      `yaml:"groups"`
	StartDate string       `yaml:"start_date"`
	EndDate   string       `yaml:"end_date"`
	Keywords  []string     `yaml:"keywords"`
	Source    SourceConfig `yaml:"source"`

	window   entity.Window
	patterns []*regexp.Regexp
}

// ParseError is a fatal configuration error. No scan can proceed without a
// valid date window and compilable keyword patterns, so callers abort on it.
type ParseError struct {
	Field string
	Value string
	Err   error
}

// Error returns a formatted error message including the offending field.
func (e *ParseError) Error() string {
	return fmt.Sprintf("config: invalid %s %q: %v", e.Field, e.Value, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads and parses the configuration file at path.
func Load(path string) (*ReportConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration data and validates it. The date window
// is parsed once and the keyword patterns are compiled once, before any
// scanning starts; any failure here is fatal for the whole run.
func Parse(data []byte) (*ReportConfig, error) {
	var cfg ReportConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *ReportConfig) validate() error {
	start, err := parseDay(c.StartDate)
	if err != nil {
		return &ParseError{Field: "start_date", Value: c.StartDate, Err: err}
	}
	end, err := parseDay(c.EndDate)
	if err != nil {
		return &ParseError{Field: "end_date", Value: c.EndDate, Err: err}
	}
	if end.Before(start) {
		return &ParseError{
			Field: "end_date",
			Value: c.EndDate,
			Err:   fmt.Errorf("end date is before start date %s", c.StartDate),
		}
	}
	c.window = entity.NewWindow(start, end)

	for i, g := range c.Groups {
		if g.Name == "" {
			return &ParseError{
				Field: "groups",
				Value: fmt.Sprintf("index %d", i),
				Err:   fmt.Errorf("group name must not be empty"),
			}
		}
	}

	c.patterns = make([]*regexp.Regexp, 0, len(c.Keywords))
	for _, kw := range c.Keywords {
		// Keyword matching is case-insensitive anywhere within the body.
		re, err := regexp.Compile("(?i)" + kw)
		if err != nil {
			return &ParseError{Field: "keywords", Value: kw, Err: err}
		}
		c.patterns = append(c.patterns, re)
	}

	switch c.Source.Type {
	case "", "feed", "archive":
	default:
		return &ParseError{
			Field: "source.type",
			Value: c.Source.Type,
			Err:   fmt.Errorf("must be feed or archive"),
		}
	}

	return nil
}

// Window returns the parsed inclusive date window.
func (c *ReportConfig) Window() entity.Window {
	return c.window
}

// Patterns returns the compiled case-insensitive keyword patterns, in
// configured order.
func (c *ReportConfig) Patterns() []*regexp.Regexp {
	return c.patterns
}

// GroupNames returns the configured group names in order.
func (c *ReportConfig) GroupNames() []string {
	names := make([]string, 0, len(c.Groups))
	for _, g := range c.Groups {
		names = append(names, g.Name)
	}
	return names
}

func parseDay(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("date must not be empty")
	}
	return time.ParseInLocation(entity.DateLayout, value, time.UTC)
}
