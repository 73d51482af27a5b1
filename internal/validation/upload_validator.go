// Package validation rejects unsupported or oversized upload files before
// any parsing is attempted.
package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Rejection taxonomy. The orchestrator catches these per file; they never
// abort a batch.
var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file exceeds size limit")
)

// allowedExtensions are the accepted upload extensions, compared
// case-insensitively.
var allowedExtensions = map[string]bool{
	".xls":  true,
	".xlsx": true,
	".csv":  true,
	".ods":  true,
}

// allowedContentTypes are the accepted declared MIME types for uploads that
// arrive without a recognizable extension.
var allowedContentTypes = map[string]bool{
	"text/csv":        true,
	"application/csv": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/vnd.oasis.opendocument.spreadsheet":                    true,
}

// UploadValidator validates upload files against the accepted type set and
// a size ceiling.
type UploadValidator struct {
	logger  *slog.Logger
	maxSize int64
}

// NewUploadValidator creates a validator with the given size ceiling in
// bytes. A non-positive ceiling falls back to 50 MB.
func NewUploadValidator(logger *slog.Logger, maxSize int64) *UploadValidator {
	if logger == nil {
		logger = slog.Default()
	}
	if maxSize <= 0 {
		maxSize = 50 << 20
	}
	return &UploadValidator{
		logger:  logger.With(slog.String("component", "upload_validator")),
		maxSize: maxSize,
	}
}

// Validate rejects a file before parsing. Either the extension or the
// declared MIME type must identify a spreadsheet or CSV, and the file must
// fit under the size ceiling.
func (v *UploadValidator) Validate(name, declaredType string, size int64) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] && !allowedContentTypes[strings.ToLower(strings.TrimSpace(declaredType))] {
		v.logger.Error("rejected upload: unsupported type",
			slog.String("file", name),
			slog.String("extension", ext),
			slog.String("declared_type", declaredType))
		return fmt.Errorf("%w: %s (type %q)", ErrUnsupportedType, name, declaredType)
	}
	if size > v.maxSize {
		v.logger.Error("rejected upload: too large",
			slog.String("file", name),
			slog.Int64("size", size),
			slog.Int64("max_size", v.maxSize))
		return fmt.Errorf("%w: %s (%d bytes)", ErrFileTooLarge, name, size)
	}
	return nil
}

// IsDelimited reports whether a file should be parsed as delimited text
// rather than as a workbook.
func IsDelimited(name, declaredType string) bool {
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		return true
	}
	t := strings.ToLower(strings.TrimSpace(declaredType))
	return t == "text/csv" || t == "application/csv"
}

// ValidateFile checks that a file on disk exists, is a regular readable
// file and is not a spreadsheet lock file. Used by the batch ingest CLI
// before reading bytes.
func (v *UploadValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file %s does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	if strings.HasPrefix(filepath.Base(path), "~$") {
		return fmt.Errorf("file %s is a spreadsheet lock file", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	f.Close()

	v.logger.Debug("file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}
