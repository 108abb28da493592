package value

import (
	"errors"
	"math"
	"strings"
	"unicode"
)

var (
	ErrNotANumber       = errors.New("not a number")
	ErrQuantityTooLarge = errors.New("quantity out of range")
	ErrQuantityTooSmall = errors.New("quantity must be greater than zero")
)

// Quantity is a number of units a shopper asks for. Valid values are > 0.
type Quantity int64

func (q Quantity) Int64() int64 {
	return int64(q)
}

// ParseQuantity coerces free text into a Quantity. Anything that is not a
// number, or is zero or negative, is rejected.
func ParseQuantity(s string) (Quantity, error) {
	n, err := ParseLeadingInt(s)
	if err != nil {
		return 0, err
	}

	if n <= 0 {
		return 0, ErrQuantityTooSmall
	}

	return Quantity(n), nil
}

// ParseLeadingInt reads the integer at the start of s and ignores whatever
// follows it: leading white space is skipped, an optional sign is accepted, a
// 0x or 0X prefix switches to base 16, and digits are consumed up to the first
// character that is not a digit. "12 boxes" is 12, "3.9" is 3, "abc" and ""
// are ErrNotANumber.
func ParseLeadingInt(s string) (int64, error) {
	s = strings.TrimLeftFunc(s, isLeadingSpace)

	negative := false

	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	base := uint64(10)

	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	const limit = uint64(1 << 63)

	var (
		n      uint64
		digits int
	)

	for _, r := range s {
		d, ok := digitValue(r, base)
		if !ok {
			break
		}

		if n > (limit-d)/base {
			return 0, ErrQuantityTooLarge
		}

		n = n*base + d
		digits++
	}

	if digits == 0 {
		return 0, ErrNotANumber
	}

	if negative {
		if n == limit {
			return math.MinInt64, nil
		}

		return -int64(n), nil //nolint:gosec // n < 1<<63
	}

	if n == limit {
		return 0, ErrQuantityTooLarge
	}

	return int64(n), nil //nolint:gosec // n < 1<<63
}

func digitValue(r rune, base uint64) (uint64, bool) {
	var d uint64

	switch {
	case r >= '0' && r <= '9':
		d = uint64(r - '0')
	case r >= 'a' && r <= 'f':
		d = uint64(r-'a') + 10
	case r >= 'A' && r <= 'F':
		d = uint64(r-'A') + 10
	default:
		return 0, false
	}

	return d, d < base
}

// isLeadingSpace reports the white space and line terminators parseInt
// skips. Unlike unicode.IsSpace it leaves U+0085 in place.
func isLeadingSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\uFEFF':
		return true
	}

	return unicode.Is(unicode.Zs, r)
}
