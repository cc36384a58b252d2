package cli

import "fmt"

// usageError is a bad invocation: unknown flags, invalid configuration,
// missing required flag combinations. Exits 1 with a help hint.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// connectError is a failure to open the management session. Exits 1 with
// the target in the diagnostic.
type connectError struct {
	target string
	err    error
}

func (e *connectError) Error() string {
	return fmt.Sprintf("failed to connect to '%s': %v", e.target, e.err)
}

func (e *connectError) Unwrap() error { return e.err }
