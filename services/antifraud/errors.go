package antifraud

import "errors"

// Failure causes of a fail-closed deny. Every one of them still yields a verdict.
var (
	ErrUnparsableTimestamp  = errors.New("unparsable transaction timestamp")
	ErrInvalidTransaction   = errors.New("invalid transaction")
	ErrStoreUnavailable     = errors.New("store unavailable")
	ErrTimeout              = errors.New("store operation timed out")
	ErrDuplicateTransaction = errors.New("duplicate transaction id")
	ErrLockUnavailable      = errors.New("user lock unavailable")
)
