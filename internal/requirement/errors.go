package requirement

import "errors"

// InputError marks caller input that cannot be turned into a valid
// requirement: unparseable text, an invalid date or an unknown experience
// level. Input errors are reported to the caller and never retried.
type InputError struct {
	Reason string
	Err    error
}

func NewInputError(reason string, err error) *InputError {
	return &InputError{Reason: reason, Err: err}
}

func (e *InputError) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	return e.Reason + ": " + e.Err.Error()
}

func (e *InputError) Unwrap() error { return e.Err }

// IsInputError reports whether err is, or wraps, an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
