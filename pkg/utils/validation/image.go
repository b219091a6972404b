package validation

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var (
	ErrFileSize     = errors.New("file size exceeds limit")
	ErrFileType     = errors.New("invalid file type. Allowed types: JPG, PNG, WEBP, GIF")
	ErrFileRequired = errors.New("no file provided")
)

const DefaultMaxImageSize = 5 * 1024 * 1024 // 5MB

var AllowedImageTypes = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// ValidateImage logo/avatar yüklemeleri için boyut ve uzantı kontrolü yapar.
// maxSize 0 ise varsayılan limit uygulanır.
func ValidateImage(file *multipart.FileHeader, maxSize int64) error {
	if file == nil {
		return ErrFileRequired
	}

	if maxSize <= 0 {
		maxSize = DefaultMaxImageSize
	}

	// Boyut kontrolü
	if file.Size > maxSize {
		return ErrFileSize
	}

	// Tip kontrolü
	ext := filepath.Ext(strings.ToLower(file.Filename))
	if !AllowedImageTypes[ext] {
		return ErrFileType
	}

	return nil
}
