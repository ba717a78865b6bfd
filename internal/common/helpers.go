package common

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// utf8BOM is prepended to container files for proper display in Windows
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FileExistsError is an error when file already exists and is not empty
type FileExistsError struct {
	Message string
}

func (e *FileExistsError) Error() string {
	return e.Message
}

// IsFileExistsError checks if error is FileExistsError
func IsFileExistsError(err error) bool {
	var fe *FileExistsError
	return errors.As(err, &fe)
}

// EnsureWritable fails with FileExistsError when filePath exists and is not empty.
func EnsureWritable(filePath string) error {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if fileInfo.Size() > 0 {
		return &FileExistsError{Message: "file is not empty"}
	}
	return nil
}

// WithBOM returns data prefixed with a UTF-8 BOM.
func WithBOM(data []byte) []byte {
	out := make([]byte, 0, len(utf8BOM)+len(data))
	out = append(out, utf8BOM...)
	return append(out, data...)
}

// StripBOM skips a UTF-8 BOM if present.
func StripBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

// ResolveInside joins name onto dir and rejects results that escape dir.
// Absolute names are accepted only when they already lie inside dir.
func ResolveInside(dir, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.New("path is empty")
	}

	base, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve export dir: %w", err)
	}

	target := name
	if !filepath.IsAbs(target) {
		target = filepath.Join(base, target)
	}
	target = filepath.Clean(target)

	rel, err := filepath.Rel(base, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q is outside the export directory", name)
	}
	return target, nil
}
