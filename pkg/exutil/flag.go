package exutil

import (
	"flag"
	"strconv"
)

// UintValue is a flag.Value that parses with base 0, so both "4096" and
// "0x1000" are accepted.
type UintValue[T Unsigned] struct {
	p *T
}

// Uint16Value, Uint32Value and Uint64Value match the ParseU16/U32/U64 widths.
type (
	Uint16Value = UintValue[uint16]
	Uint32Value = UintValue[uint32]
	Uint64Value = UintValue[uint64]
)

// NewUintValue stores def in p and returns a flag.Value writing to p.
func NewUintValue[T Unsigned](p *T, def T) *UintValue[T] {
	*p = def
	return &UintValue[T]{p: p}
}

// Set implements flag.Value.
func (v *UintValue[T]) Set(s string) error {
	return parseInto(s, v.p, 0)
}

// String implements flag.Value.
func (v *UintValue[T]) String() string {
	if v == nil || v.p == nil {
		return "0"
	}
	return strconv.FormatUint(uint64(*v.p), 10)
}

// Get implements flag.Getter.
func (v *UintValue[T]) Get() any {
	return *v.p
}

// UintVar defines an unsigned flag on fs parsed through ParseUint.
func UintVar[T Unsigned](fs *flag.FlagSet, p *T, name string, def T, usage string) {
	fs.Var(NewUintValue(p, def), name, usage)
}

var _ flag.Getter = (*Uint64Value)(nil)
