package utils

import (
	"errors"
	"fmt"
	"path/filepath"
	"sleepclinic-service/internal/pkg/constvars"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var consentDocumentFormats = map[string][]string{
	constvars.MIMEApplicationPDF: {".pdf"},
	constvars.MIMEImagePNG:       {".png"},
	constvars.MIMEImageJPEG:      {".jpg", ".jpeg"},
}

// ValidateConsentDocument checks the size and sniffed format of an uploaded
// consent document and returns its detected content type.
func ValidateConsentDocument(fileName string, data []byte, maxSizeInMegabytes int64) (string, error) {
	if len(data) == 0 {
		return "", errors.New("file is empty")
	}
	if int64(len(data)) > maxSizeInMegabytes*1024*1024 {
		return "", fmt.Errorf("file exceeds maximum allowed size of %dMB", maxSizeInMegabytes)
	}

	contentType := mimetype.Detect(data).String()
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}

	extensions, ok := consentDocumentFormats[contentType]
	if !ok {
		return "", fmt.Errorf("invalid file format %s", contentType)
	}

	extension := strings.ToLower(filepath.Ext(fileName))
	for _, allowed := range extensions {
		if extension == allowed {
			return contentType, nil
		}
	}
	return "", fmt.Errorf("file extension %q does not match %s", extension, contentType)
}
