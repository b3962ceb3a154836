package render

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"channel-report/internal/domain/entity"
	"channel-report/internal/resilience/retry"
)

func sampleModel() entity.ReportModel {
	return entity.ReportModel{
		Window: entity.NewWindow(
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		),
		Sections: []entity.Section{{Name: "Tech"}},
	}
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		format    string
		extension string
		wantErr   bool
	}{
		{"docx", "docx", false},
		{"", "docx", false},
		{"DOCX", "docx", false},
		{"html", "html", false},
		{"markdown", "md", false},
		{"md", "md", false},
		{"pdf", "", true},
	}

	for _, tt := range tests {
		t.Run("format "+tt.format, func(t *testing.T) {
			r, err := ForFormat(tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.extension, r.Extension())
		})
	}
}

func TestWriteFile_ExplicitPath(t *testing.T) {
	r, err := ForFormat("markdown")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.md")
	written, err := WriteFile(r, sampleModel(), path)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Report 01.01.2025-02.01.2025")
}

func TestWriteFile_DefaultFileName(t *testing.T) {
	r, err := ForFormat("markdown")
	require.NoError(t, err)

	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	written, err := WriteFile(r, sampleModel(), "")
	require.NoError(t, err)
	assert.Equal(t, "report_01.01.2025-02.01.2025.md", written)
	assert.FileExists(t, filepath.Join(dir, written))
}

type failingRenderer struct{}

func (failingRenderer) Render(entity.ReportModel, io.Writer) error {
	return errors.New("serialization failed")
}

func (failingRenderer) Extension() string { return "bin" }

func TestWriteFile_FailureCleansUpAndIsRetryable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")

	_, err := WriteFile(failingRenderer{}, sampleModel(), path)
	require.Error(t, err)

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, path, renderErr.Path)
	assert.True(t, retry.IsRetryable(err), "render failures are worth retrying")
	assert.NoFileExists(t, path, "partial output is removed")
}
