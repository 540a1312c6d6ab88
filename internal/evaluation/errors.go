package evaluation

import (
	"errors"
	"fmt"
)

// ErrProviderUnavailable means the configured provider is unreachable or not
// configured at all (missing API key, local server down). Callers should
// disable evaluation rather than crash.
var ErrProviderUnavailable = errors.New("evaluation provider unavailable")

// EvaluationError is returned when the provider responded at the transport
// level but the output could not be parsed, normalized, or validated into the
// canonical schema. It keeps the raw provider response for diagnosis so the
// caller can distinguish "model produced garbage" from "model was unreachable."
type EvaluationError struct {
	Reason  string
	Raw     string // raw provider response, may be empty
	Wrapped error
}

func (e *EvaluationError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("evaluation failed: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("evaluation failed: %s", e.Reason)
}

func (e *EvaluationError) Unwrap() error {
	return e.Wrapped
}
