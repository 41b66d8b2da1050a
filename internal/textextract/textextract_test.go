package textextract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/maxaizer/job-tracker/internal/apperr"
	"github.com/maxaizer/job-tracker/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, content []byte) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestExtract_PDF(t *testing.T) {
	path := writeFile(t, "resume.pdf", testutil.BuildPDF("Python backend developer", "", "Docker Kubernetes"))

	text, err := Extract(path)

	require.NoError(t, err)
	assert.Contains(t, text, "Python backend developer")
	assert.Contains(t, text, "Docker Kubernetes")
}

func TestExtract_DOCX(t *testing.T) {
	path := writeFile(t, "resume.DOCX", testutil.BuildDOCX("Senior Go engineer", "PostgreSQL & Redis"))

	text, err := Extract(path)

	require.NoError(t, err)
	assert.Equal(t, "Senior Go engineer PostgreSQL & Redis", text)
}

func TestExtract_DOCXNestedParagraph_KeepsOuterText(t *testing.T) {
	textBox := "<w:r><w:pict><w:txbxContent>" + testutil.DOCXParagraph("Kubernetes") + "</w:txbxContent></w:pict></w:r>"
	body := "<w:p>" + testutil.DOCXRun("Senior Go engineer") + textBox + testutil.DOCXRun("PostgreSQL") + "</w:p>" +
		testutil.DOCXParagraph("Redis")
	path := writeFile(t, "resume.docx", testutil.BuildDOCXBody(body))

	text, err := Extract(path)

	require.NoError(t, err)
	assert.Equal(t, "Kubernetes Senior Go engineer PostgreSQL Redis", text)
}

func TestExtract_DOCXWithoutDocumentPart(t *testing.T) {
	path := writeFile(t, "resume.docx", testutil.BuildPDF("not a zip"))

	_, err := Extract(path)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperr.ErrUnsupportedFormat)
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	path := writeFile(t, "resume.txt", []byte("plain text"))

	_, err := Extract(path)

	assert.ErrorIs(t, err, apperr.ErrUnsupportedFormat)
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "missing.pdf"))

	assert.Error(t, err)
}
