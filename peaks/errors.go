package peaks

import (
	"fmt"

	"github.com/cwbudde/algo-spike/errs"
)

// Errors returned by engine constructors and Detect.
var (
	ErrUnknownSign     = fmt.Errorf("%w: peaks: unknown peak sign", errs.ErrInvalidArgument)
	ErrUnknownEngine   = fmt.Errorf("%w: peaks: unknown engine", errs.ErrInvalidArgument)
	ErrNegativeWindow  = fmt.Errorf("%w: peaks: exclusion window must be >= 0", errs.ErrInvalidArgument)
	ErrWindowTooLarge  = fmt.Errorf("%w: peaks: exclusion window exceeds MaxWindow", errs.ErrInvalidArgument)
	ErrNilGraph        = fmt.Errorf("%w: peaks: neighbor graph is nil", errs.ErrInvalidArgument)
	ErrChannelMismatch = fmt.Errorf("%w: peaks: signal channel count does not match graph", errs.ErrInvalidArgument)
)
