package cvs

import (
	"path/filepath"
	"strings"
)

const maxFileBytes = 10 << 20 // 10 MiB

var allowedMimeTypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
}

// ValidateFile checks a candidate upload before any side effects. The
// extension check is an OR-fallback for browsers that misreport mime types.
// Content bytes are not inspected here.
func ValidateFile(fileName, mimeType string, sizeBytes int64) error {
	mime := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	_, mimeOK := allowedMimeTypes[mime]

	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(fileName)))
	_, extOK := allowedExtensions[ext]

	if !mimeOK && !extOK {
		return &ValidationError{
			Code:    CodeUnsupportedType,
			Message: "only PDF and Word documents are supported",
		}
	}
	if sizeBytes > maxFileBytes {
		return &ValidationError{
			Code:    CodeTooLarge,
			Message: "file exceeds the 10 MiB limit",
		}
	}
	return nil
}
