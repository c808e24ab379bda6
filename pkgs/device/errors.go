package device

import "fmt"

// RecvError wraps a transport failure encountered mid-drain, carrying the
// count of frames already dispatched before the failure occurred.
type RecvError struct {
	Dispatched int
	Err        error
}

func (e *RecvError) Error() string {
	return fmt.Sprintf("device: recv failed after dispatching %d frame(s): %s", e.Dispatched, e.Err)
}

func (e *RecvError) Unwrap() error {
	return e.Err
}
