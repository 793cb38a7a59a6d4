package models

import (
	"errors"
	"fmt"
)

// ConnectionSetupError covers every way establishing a connection can
// fail: malformed target, unreachable host, space not running. Callers
// can't act differently on these, so they are folded into one kind.
type ConnectionSetupError struct {
	Target string
	Err    error
}

func (e *ConnectionSetupError) Error() string {
	return fmt.Sprintf("failed to setup connection towards '%v': %v", e.Target, e.Err)
}

func (e *ConnectionSetupError) Unwrap() error { return e.Err }

// TransportError is a network failure during an otherwise valid call.
// The call may legitimately be retried after re-establishing a
// connection.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure during remote call: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// PredictionError means the remote procedure executed but failed at
// the application level. Retrying without changing the query or the
// target is unlikely to help.
type PredictionError struct {
	Err error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("prediction failed: %v", e.Err)
}

func (e *PredictionError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is worth retrying as-is. Only
// transport failures qualify.
func IsRetryable(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
