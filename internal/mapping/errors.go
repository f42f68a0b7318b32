package mapping

import (
	"errors"
	"fmt"
)

// ErrIO matches every *IOError.
var ErrIO = errors.New("mapping file I/O failed")

// IOError reports a mapping file that could not be read or written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s mapping file %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrIO) hold for any *IOError.
func (e *IOError) Is(target error) bool { return target == ErrIO }
