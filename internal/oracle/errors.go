package oracle

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrFault matches every *Fault via errors.Is.
var ErrFault = errors.New("scoring oracle fault")

// Operation names used in faults.
const (
	OpHandValue = "hand_value"
	OpShanten   = "shanten"
)

// Fault is an operational oracle failure: timeout, transport error,
// malformed call or response. It never means "not a winning hand".
type Fault struct {
	Op  string
	Err error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("oracle %s: %v", f.Op, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }

// Is makes errors.Is(err, ErrFault) true for any fault.
func (f *Fault) Is(target error) bool { return target == ErrFault }

// Timeout reports whether the call ran out of time.
func (f *Fault) Timeout() bool {
	if errors.Is(f.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(f.Err, &ne) && ne.Timeout()
}

// AsFault wraps err as a fault for op, leaving existing faults alone.
func AsFault(op string, err error) error {
	if err == nil {
		return nil
	}
	var f *Fault
	if errors.As(err, &f) {
		return err
	}
	return &Fault{Op: op, Err: err}
}

// IsFault reports whether err is an oracle fault.
func IsFault(err error) bool {
	return errors.Is(err, ErrFault)
}
