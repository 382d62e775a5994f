package commands

import (
	"fmt"

	"github.com/nvm-examples/nvm-go/pkg/exutil"
	"github.com/nvm-examples/nvm-go/pkg/log"
)

// ParseKindFlag parses the -kind flag value.
func ParseKindFlag(s string) (log.Kind, error) {
	return log.ParseKind(s)
}

// ParseTagFlag parses the -tag flag value (decimal, 0x hex, 0 octal).
func ParseTagFlag(s string) (uint16, error) {
	var tag uint16
	if err := exutil.ParseU16(s, &tag, 0); err != nil {
		return 0, fmt.Errorf("invalid tag %q: %w", s, err)
	}
	return tag, nil
}
