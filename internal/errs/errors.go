package errs

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

var (
	// ErrNotFound marks a missing file, directory, extension, or folder label.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists marks a duplicate extension or label registration.
	ErrAlreadyExists = errors.New("already exists")
	// ErrIO marks permission, collision, cross-device, and other filesystem failures.
	ErrIO = errors.New("permission or io error")
	// ErrSelfContainment marks a folder move whose target lies inside the folder.
	ErrSelfContainment = errors.New("self containment violation")
	// ErrValidation marks malformed user input such as an empty extension.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks unusable configuration values.
	ErrConfiguration = errors.New("configuration error")
	// ErrPersistence marks a mutation that applied in memory but could not be saved.
	ErrPersistence = errors.New("persistence warning")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker. The marker should be one of the exported
// sentinels above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FromFS wraps a filesystem error, choosing ErrNotFound for missing paths and
// ErrIO for everything else.
func FromFS(component, operation, message string, err error) error {
	if err == nil {
		return nil
	}
	marker := ErrIO
	if errors.Is(err, fs.ErrNotExist) {
		marker = ErrNotFound
	}
	return Wrap(marker, component, operation, message, err)
}

// Kind returns the short taxonomy name for err, or "unknown" when no marker matches.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSelfContainment):
		return "self_containment"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrPersistence):
		return "persistence"
	case errors.Is(err, ErrIO):
		return "io"
	default:
		return "unknown"
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "operation failed"
	}
	return strings.Join(parts, ": ")
}
