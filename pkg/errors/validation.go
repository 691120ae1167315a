package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateOutputPath validates a file path the CLI is about to write.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory: %q", path)
	}

	return nil
}

// ValidateCanvas checks that a canvas has a finite, positive size.
func ValidateCanvas(width, height float64) error {
	if !finitePositive(width) || !finitePositive(height) {
		return New(ErrCodeInvalidCanvas, "canvas must be positive, got %gx%g", width, height)
	}
	return nil
}

// ValidatePadding checks that a padding value is finite and non-negative.
func ValidatePadding(name string, p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return New(ErrCodeInvalidCanvas, "%s padding must be a non-negative number, got %g", name, p)
	}
	return nil
}

// ValidateSelector performs a cheap sanity check on a JSONPath selector before it
// is handed to the parser.
func ValidateSelector(expr string) error {
	if expr == "" {
		return nil
	}
	if !strings.HasPrefix(expr, "$") {
		return New(ErrCodeInvalidSelector, "selector must start with '$': %q", expr)
	}
	if len(expr) > 1024 {
		return New(ErrCodeInvalidSelector, "selector too long (max 1024 characters)")
	}
	return nil
}

func finitePositive(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}
