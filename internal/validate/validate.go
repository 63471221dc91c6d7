// Package validate checks uploaded document metadata before any bytes are
// stored. It is pure: no I/O, no clock, no store access.
package validate

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"supportapi/internal/model"
)

var (
	// ErrMissingField is returned when a required input field is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrUnsupportedType is returned when the declared document type is not
	// recognized.
	ErrUnsupportedType = errors.New("unsupported document type")

	// ErrUnsupportedFormat is returned when the file extension is not
	// allowed for the declared type.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrFileTooLarge is returned when the file exceeds the size limit.
	ErrFileTooLarge = errors.New("file too large")
)

// DefaultMaxDocumentSize is the upload size limit applied when no limit is
// configured (200 MB).
const DefaultMaxDocumentSize int64 = 200 * 1024 * 1024

// Document validates an upload request and returns the descriptor to attach.
// Checks run in a fixed order so a file that is wrong in several ways always
// reports the same error: declared type first, then extension, then size.
func Document(filename, declaredType string, size, maxSize int64) (*model.Document, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, fmt.Errorf("filename: %w", ErrMissingField)
	}
	if strings.TrimSpace(declaredType) == "" {
		return nil, fmt.Errorf("declared_type: %w", ErrMissingField)
	}

	dt := model.DocumentType(declaredType)
	if !dt.Valid() {
		return nil, fmt.Errorf("declared type %q: %w", declaredType, ErrUnsupportedType)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !extensionAllowed(dt, ext) {
		return nil, fmt.Errorf("extension %q for type %q: %w", ext, declaredType, ErrUnsupportedFormat)
	}

	if maxSize <= 0 {
		maxSize = DefaultMaxDocumentSize
	}
	if size > maxSize {
		return nil, fmt.Errorf("size %d exceeds limit %d: %w", size, maxSize, ErrFileTooLarge)
	}

	return &model.Document{
		DeclaredType: dt,
		Filename:     filename,
		SizeBytes:    size,
	}, nil
}

func extensionAllowed(dt model.DocumentType, ext string) bool {
	for _, allowed := range model.AllowedExtensions[dt] {
		if ext == allowed {
			return true
		}
	}
	return false
}
