// Package exutil provides the helpers shared by the NVM Express example
// programs: request identifiers, unsigned integer parsing and the
// controller-information report.
//
// # Parsing
//
// ParseU16, ParseU32 and ParseU64 parse text in a given base into a
// caller-owned slot. The slot is written only on success:
//
//	var blocks uint32 = 1
//	if err := exutil.ParseU32(arg, &blocks, 10); err != nil {
//	    // blocks is still 1
//	}
//
// Failures are *ParseError values wrapping ErrSyntax, ErrRange or
// ErrInvalidBase.
//
// # Identifiers
//
// RandomID returns a 16-bit tag for distinguishing concurrent requests.
// Values are not unique; they only make collisions between nearby
// requests unlikely.
package exutil
