package cli

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/proposer/internal/domain/proposal"
)

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known domain errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var emptyErr *proposal.EmptyContentError
	if errors.As(err, &emptyErr) {
		return NewCLIError(
			emptyErr.Error(),
			"The model returned nothing usable. Retry, or try a more capable model via 'proposer config'",
			err,
		)
	}

	var parseErr *proposal.ParseError
	if errors.As(err, &parseErr) {
		return NewCLIError(
			parseErr.Error(),
			"The model output was not valid JSON. Retry with a clearer instruction",
			err,
		)
	}

	switch {
	case errors.Is(err, proposal.ErrUnknownSection):
		return NewCLIError("unknown proposal section", "Valid sections: executiveSummary, requirementsAnalysis, featureBreakdown, projectTimeline, teamAndResources", err)
	case errors.Is(err, proposal.ErrGenerationFailed):
		return NewCLIError("proposal generation failed", "Check the AI provider with 'proposer config' and that the model is reachable", err)
	}

	return err
}
