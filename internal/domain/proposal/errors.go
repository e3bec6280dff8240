package proposal

import (
	"errors"
	"fmt"
)

// Domain errors for proposal generation and section editing.
var (
	// ErrGenerationFailed indicates the model returned nothing usable where
	// a document was required.
	ErrGenerationFailed = errors.New("proposal generation failed")

	// ErrEmptyContent indicates the model returned an empty string for a
	// section that must be non-empty.
	ErrEmptyContent = errors.New("empty section content")

	// ErrParseFailed indicates cleaned model output is not well-formed for
	// its section's shape.
	ErrParseFailed = errors.New("section content is not well-formed")

	// ErrUnknownSection indicates a section key outside the closed set.
	ErrUnknownSection = errors.New("unknown section key")
)

// snippetLen bounds the diagnostic snippet attached to parse failures.
const snippetLen = 100

// Snippet returns the first ~100 characters of s for diagnostics.
func Snippet(s string) string {
	if len(s) <= snippetLen {
		return s
	}
	return s[:snippetLen]
}

// GenerationError is raised when the model produced no parseable document.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("proposal generation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("proposal generation failed: %s", e.Reason)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Is allows errors.Is(err, ErrGenerationFailed).
func (e *GenerationError) Is(target error) bool { return target == ErrGenerationFailed }

// EmptyContentError is raised when a section edit produced an empty string.
type EmptyContentError struct {
	Section SectionKey
}

func (e *EmptyContentError) Error() string {
	return fmt.Sprintf("model returned empty content for section %q", e.Section)
}

func (e *EmptyContentError) Is(target error) bool { return target == ErrEmptyContent }

// ParseError is raised when cleaned section output does not parse. It carries
// a short diagnostic snippet of the offending output.
type ParseError struct {
	Section SectionKey
	Snippet string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("section %q did not parse: %v (output starts with: %q)", e.Section, e.Err, e.Snippet)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParseFailed }
