package coin

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/iov-one/paysplit/errors"
)

// Amount is a quantity of either native value or tokens, expressed in the
// smallest indivisible unit.
type Amount uint64

// MaxAmount is the largest representable amount.
const MaxAmount = Amount(math.MaxUint64)

// ParseAmount decodes a decimal representation of an amount.
func ParseAmount(s string) (Amount, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrAmount, "cannot parse %q", s)
	}
	return Amount(v), nil
}

// IsZero returns true if the amount is zero.
func (a Amount) IsZero() bool {
	return a == 0
}

// Add returns the sum of both amounts. ErrOverflow is returned if the
// result cannot be represented.
func (a Amount) Add(b Amount) (Amount, error) {
	sum := a + b
	if sum < a {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, b)
	}
	return sum, nil
}

// Sub returns the difference of both amounts. ErrInsufficientAmount is
// returned if b is greater than a.
func (a Amount) Sub(b Amount) (Amount, error) {
	if b > a {
		return 0, errors.Wrapf(errors.ErrInsufficientAmount, "%d - %d", a, b)
	}
	return a - b, nil
}

// Split divides the amount into given number of equal pieces and returns a
// single piece together with the leftover that could not be divided.
//   11 = 5 x 2 + 1
func (a Amount) Split(pieces int) (share, rest Amount, err error) {
	if pieces <= 0 {
		return 0, a, errors.Wrap(errors.ErrInput, "pieces must be greater than zero")
	}
	n := Amount(pieces)
	return a / n, a % n, nil
}

// Mul returns the product of the amount and n. ErrOverflow is returned if
// the result cannot be represented.
func (a Amount) Mul(n int) (Amount, error) {
	if n < 0 {
		return 0, errors.Wrap(errors.ErrInput, "negative multiplier")
	}
	if n == 0 || a == 0 {
		return 0, nil
	}
	res := a * Amount(n)
	if res/Amount(n) != a {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d * %d", a, n)
	}
	return res, nil
}

func (a Amount) String() string {
	return strconv.FormatUint(uint64(a), 10)
}

// Bytes returns the big endian binary representation.
func (a Amount) Bytes() []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(a))
	return raw
}

// AmountFromBytes decodes a value produced by Bytes. A nil value is zero.
func AmountFromBytes(raw []byte) (Amount, error) {
	switch len(raw) {
	case 0:
		return 0, nil
	case 8:
		return Amount(binary.BigEndian.Uint64(raw)), nil
	default:
		return 0, errors.Wrapf(errors.ErrDatabase, "invalid amount encoding of %d bytes", len(raw))
	}
}
