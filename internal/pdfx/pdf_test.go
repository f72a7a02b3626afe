package pdfx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"docuquery/internal/common"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestValidateUpload_AcceptsPDF(t *testing.T) {
	path := writeFile(t, "doc.pdf", []byte("%PDF-1.7 some content"))

	size, err := ValidateUpload(path)
	require.NoError(t, err)
	require.Equal(t, int64(21), size)
}

func TestValidateUpload_RejectsNonPDFContent(t *testing.T) {
	path := writeFile(t, "doc.pdf", []byte("just text pretending"))

	_, err := ValidateUpload(path)
	require.ErrorIs(t, err, common.ErrNotPDF)
}

func TestValidateUpload_RejectsEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.pdf", nil)

	_, err := ValidateUpload(path)
	require.ErrorIs(t, err, common.ErrNotPDF)
}

func TestValidateUpload_RejectsOversizedFile(t *testing.T) {
	content := make([]byte, MaxUploadSize+1)
	copy(content, "%PDF-")
	path := writeFile(t, "big.pdf", content)

	_, err := ValidateUpload(path)
	require.ErrorIs(t, err, common.ErrFileTooLarge)
}

func TestValidateUpload_MissingFile(t *testing.T) {
	_, err := ValidateUpload(filepath.Join(t.TempDir(), "nope.pdf"))
	require.Error(t, err)
}

func TestPageCount_FallsBackToOne(t *testing.T) {
	// Not a parseable PDF: page count defaults to 1 rather than failing.
	path := writeFile(t, "broken.pdf", []byte("%PDF-1.7 truncated"))
	require.Equal(t, 1, PageCount(path))

	require.Equal(t, 1, PageCount(filepath.Join(t.TempDir(), "missing.pdf")))
}
