package html

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"channel-report/internal/domain/entity"
)

func TestRenderer_Render(t *testing.T) {
	model := entity.ReportModel{
		Window: entity.NewWindow(
			time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		),
		Sections: []entity.Section{
			{
				Name: "Tech",
				Entries: []entity.ReportEntry{
					{
						SourceURL: "https://t.me/chX/42",
						Title:     "Benchmarks: <fast> & furious",
						Body:      "Numbers inside.",
						Date:      "02.04.2025 10:30",
					},
				},
			},
			{Name: "Silence"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewRenderer().Render(model, &buf))
	out := buf.String()

	assert.Contains(t, out, "<title>Report 02.04.2025</title>")
	assert.Contains(t, out, `<a href="https://t.me/chX/42">`)
	assert.Contains(t, out, "Benchmarks: &lt;fast&gt; &amp; furious",
		"entry text is HTML-escaped")
	assert.Contains(t, out, "02.04.2025 10:30")
	assert.Contains(t, out, "No matching posts.")
	assert.NotContains(t, out, "<fast>")
}

func TestRenderer_Extension(t *testing.T) {
	assert.Equal(t, "html", NewRenderer().Extension())
}
