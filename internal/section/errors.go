package section

import "fmt"

// InputValidationError reports that the pages argument failed the
// structural sample check. It aborts the whole extraction; per-entry and
// per-page failures are recovered instead and never surface as errors.
type InputValidationError struct {
	Reason string
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("invalid input pages: %s", e.Reason)
}
