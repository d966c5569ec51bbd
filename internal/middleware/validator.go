package middleware

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// Input validation for uploaded media

// allowed upload extensions, same set the original backend accepted
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".mp4":  true,
	".avi":  true,
	".mov":  true,
}

// ValidateUploadName checks the filename carries an allowed extension
func ValidateUploadName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("No file selected")
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" || !allowedExtensions[ext] {
		return fmt.Errorf("Unsupported file type")
	}
	return nil
}

// ValidateUploadContent sniffs magic bytes; the extension is advisory, the
// content decides. Unknown containers pass (some video formats are not in
// the magic table), but content that is clearly neither image nor video is
// refused.
func ValidateUploadContent(head []byte) error {
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return nil
	}
	mime := kind.MIME.Value
	if strings.HasPrefix(mime, "image/") || strings.HasPrefix(mime, "video/") {
		return nil
	}
	return fmt.Errorf("Unsupported file type")
}

// SanitizeFilename strips any path components from an uploaded name
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.TrimSpace(name)
}
