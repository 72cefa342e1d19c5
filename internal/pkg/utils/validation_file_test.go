package utils

import (
	"sleepclinic-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
)

func TestValidateConsentDocument(t *testing.T) {
	t.Run("Accepts PDF", func(t *testing.T) {
		contentType, err := ValidateConsentDocument("consent.PDF", pdfBytes, 1)
		require.NoError(t, err)
		assert.Equal(t, constvars.MIMEApplicationPDF, contentType)
	})

	t.Run("Accepts PNG", func(t *testing.T) {
		contentType, err := ValidateConsentDocument("scan.png", pngBytes, 1)
		require.NoError(t, err)
		assert.Equal(t, constvars.MIMEImagePNG, contentType)
	})

	t.Run("Extension must match the sniffed format", func(t *testing.T) {
		_, err := ValidateConsentDocument("consent.png", pdfBytes, 1)
		assert.Error(t, err, "a pdf named .png must be rejected")
	})

	t.Run("Rejects unsupported formats", func(t *testing.T) {
		_, err := ValidateConsentDocument("notes.txt", []byte("just some plain text"), 1)
		assert.Error(t, err)
	})

	t.Run("Rejects empty and oversized files", func(t *testing.T) {
		_, err := ValidateConsentDocument("consent.pdf", nil, 1)
		assert.Error(t, err)

		oversized := make([]byte, 1024*1024+1)
		copy(oversized, pdfBytes)
		_, err = ValidateConsentDocument("consent.pdf", oversized, 1)
		assert.Error(t, err)
	})
}
