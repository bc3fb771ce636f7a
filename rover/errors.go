package rover

import "fmt"

// InvalidCommandError reports a steering or throttle command outside the
// [-1; 1] contract. Commands are rejected, never clamped, so the caller can
// detect the programming error upstream.
type InvalidCommandError struct {
	Command string
	Value   float64
}

func (e *InvalidCommandError) Error() string {
	return fmt.Sprintf("Illegal %v command %v (must be -1..1)", e.Command, e.Value)
}

func validateCommand(command string, value float64) error {
	if value < -1 || value > 1 {
		return &InvalidCommandError{Command: command, Value: value}
	}
	return nil
}
