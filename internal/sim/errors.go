package sim

import "errors"

var (
	ErrUnknownEvent = errors.New("sim: unknown event type")
	ErrInvalidStep  = errors.New("sim: dt must be positive")
	ErrInvalidSpan  = errors.New("sim: duration must be positive")
)

// StepError wraps an error with the replay step it happened at.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return e.Wrapped.Error()
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
