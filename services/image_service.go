package services

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SaveBase64File decodes a (possibly data-URL prefixed) base64 payload and
// writes it under uploads/<subdir>. Returns the path relative to uploads/
// for storage in the DB.
func SaveBase64File(b64 string, subdir string, ext string) (string, error) {
	if idx := strings.Index(b64, "base64,"); idx >= 0 {
		// keep a hint from the data URL when the caller didn't pick one
		if ext == "" && strings.Contains(b64[:idx], "image/png") {
			ext = "png"
		}
		b64 = b64[idx+7:]
	}
	if ext == "" {
		ext = "jpg"
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}

	dir := filepath.Join("uploads", subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("mkdir uploads dir: %w", err)
	}

	filename := fmt.Sprintf("%d.%s", time.Now().UnixNano(), ext)
	fullpath := filepath.Join(dir, filename)

	if err := os.WriteFile(fullpath, data, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return filepath.ToSlash(filepath.Join(subdir, filename)), nil
}
