package sigs

import "github.com/iov-one/paysplit/errors"

// ErrInvalidSequence is returned when a signature sequence does not match
// the expected value of the signer account.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")
