// Package pdfx validates files before upload and inspects PDFs locally,
// so bad uploads are rejected without a network call.
package pdfx

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ledongthuc/pdf"

	"docuquery/internal/common"
)

// MaxUploadSize is the upload size ceiling (10 MiB), matching the backend's
// limit so oversized files are refused client-side.
const MaxUploadSize = 10 << 20

var pdfMagic = []byte("%PDF-")

// ValidateUpload checks that the file at path is an uploadable PDF: it must
// exist, start with the PDF magic bytes, and not exceed MaxUploadSize.
// Returns the file size. Failures are common.ErrNotPDF or
// common.ErrFileTooLarge wrapped with the offending path.
func ValidateUpload(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("%s: %w", path, common.ErrNotPDF)
	}
	if info.Size() > MaxUploadSize {
		return 0, fmt.Errorf("%s (%d bytes): %w", path, info.Size(), common.ErrFileTooLarge)
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	magic := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(f, magic); err != nil || !bytes.Equal(magic, pdfMagic) {
		return 0, fmt.Errorf("%s: %w", path, common.ErrNotPDF)
	}

	return info.Size(), nil
}

// PageCount returns the number of pages of the PDF at path, best effort.
// Any parse failure yields 1, never an error: the count is display metadata
// only and must not block an upload.
func PageCount(path string) int {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return 1
	}
	defer f.Close()

	n := reader.NumPage()
	if n < 1 {
		return 1
	}
	return n
}
