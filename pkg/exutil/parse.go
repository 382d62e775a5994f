package exutil

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
)

// Unsigned is the set of unsigned integer types the parsers accept.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

var (
	// ErrSyntax indicates empty input or a character outside the base's digit set.
	ErrSyntax = errors.New("invalid syntax")

	// ErrRange indicates a value larger than the target width allows.
	ErrRange = errors.New("value out of range")

	// ErrInvalidBase indicates a base other than 0 or 2 through 36.
	ErrInvalidBase = errors.New("invalid base")
)

// ParseError describes a failed parse.
type ParseError struct {
	Input   string
	Base    int
	BitSize int
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse u%d %q (base %d): %v", e.BitSize, e.Input, e.Base, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseUint parses s in the given base into T.
//
// Base 0 selects the base from the prefix ("0x" hex, "0o" or "0" octal,
// "0b" binary, otherwise decimal) and allows underscores between digits.
// With base 16 an optional "0x" or "0X" prefix is accepted. Signs and
// whitespace are rejected.
func ParseUint[T Unsigned](s string, base int) (T, error) {
	bitSize := bits.Len64(uint64(^T(0)))

	if base != 0 && (base < 2 || base > 36) {
		return 0, &ParseError{Input: s, Base: base, BitSize: bitSize, Err: ErrInvalidBase}
	}

	digits := s
	if base == 16 && len(digits) > 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		digits = digits[2:]
	}

	n, err := strconv.ParseUint(digits, base, bitSize)
	if err != nil {
		cause := ErrSyntax
		if errors.Is(err, strconv.ErrRange) {
			cause = ErrRange
		}
		return 0, &ParseError{Input: s, Base: base, BitSize: bitSize, Err: cause}
	}
	return T(n), nil
}

// parseInto stores the parsed value in out only on success.
func parseInto[T Unsigned](s string, out *T, base int) error {
	v, err := ParseUint[T](s, base)
	if err != nil {
		return err
	}
	if out != nil {
		*out = v
	}
	return nil
}

// ParseU64 parses a 64-bit unsigned integer into out.
// On failure out is left untouched.
func ParseU64(s string, out *uint64, base int) error {
	return parseInto(s, out, base)
}

// ParseU32 parses a 32-bit unsigned integer into out.
// On failure out is left untouched.
func ParseU32(s string, out *uint32, base int) error {
	return parseInto(s, out, base)
}

// ParseU16 parses a 16-bit unsigned integer into out.
// On failure out is left untouched.
func ParseU16(s string, out *uint16, base int) error {
	return parseInto(s, out, base)
}
