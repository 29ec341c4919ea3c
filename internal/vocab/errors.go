package vocab

import (
	"fmt"
	"strings"
)

// LoadError represents a failure to read or decode a vocabulary override file
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vocabulary load failed for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("vocabulary load failed for %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ValidationError represents an override file that failed schema validation
type ValidationError struct {
	Path   string
	Errors []string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "vocabulary override %s failed validation:\n", e.Path)
	for i, msg := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, msg)
	}
	return sb.String()
}
