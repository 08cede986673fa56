package utils

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	ErrUploadTooLarge = errors.New("uploaded file is too large")
	ErrUploadType     = errors.New("uploaded file type is not allowed")
)

var allowedUploadExt = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".txt":  true,
	".doc":  true,
	".docx": true,
}

// SaveUpload stores the optional file posted under field in dir and returns
// its stored name. No file posted returns "" and no error.
func SaveUpload(c *gin.Context, field, dir string, maxBytes int64) (string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", ErrUploadTooLarge
		}
		return "", fmt.Errorf("read upload: %w", err)
	}
	if header.Size == 0 {
		return "", nil
	}
	if maxBytes > 0 && header.Size > maxBytes {
		return "", ErrUploadTooLarge
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedUploadExt[ext] {
		return "", ErrUploadType
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + ext
	if err := c.SaveUploadedFile(header, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return name, nil
}

// UploadPath resolves a stored upload name to an existing file in dir.
func UploadPath(dir, name string) (string, bool) {
	if name == "" {
		return "", false
	}
	full := filepath.Join(dir, filepath.Base(name))
	info, err := os.Stat(full)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return full, true
}

// RemoveUpload deletes a stored upload. A missing file is not an error.
func RemoveUpload(dir, name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(dir, filepath.Base(name)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
