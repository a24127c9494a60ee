package folio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxPhotoBytes bounds accepted photo uploads.
const MaxPhotoBytes int64 = 5 * 1024 * 1024

var photoContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
}

var photoExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// ValidatePhoto rejects uploads by extension, declared content type and
// size before anything is written.
func ValidatePhoto(filename, contentType string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := photoExtensions[ext]; !ok {
		return NewError(KindFileType, fmt.Sprintf("unsupported photo extension: %s", ext), nil)
	}

	declared := contentType
	if idx := strings.Index(declared, ";"); idx >= 0 {
		declared = declared[:idx]
	}
	declared = strings.ToLower(strings.TrimSpace(declared))
	if _, ok := photoContentTypes[declared]; !ok {
		return NewError(KindFileType, fmt.Sprintf("unsupported photo content type: %s", contentType), nil)
	}

	if size > MaxPhotoBytes {
		return NewError(KindFileTooLarge, "photo exceeds 5MB limit", nil)
	}
	return nil
}

// PhotoKey returns a collision-resistant storage name preserving the
// original extension.
func PhotoKey(filename string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(filename))
}
