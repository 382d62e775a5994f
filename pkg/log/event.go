package log

import (
	"fmt"
	"strings"
	"time"

	"github.com/nvm-examples/nvm-go/pkg/nvm"
)

// Event is one captured action of an example program.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies one program run (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Tag is the request identifier the action was performed under.
	Tag uint16 `cbor:"3,keyasint"`

	// Program is the name of the example program.
	Program string `cbor:"4,keyasint,omitempty"`

	// Kind classifies the event.
	Kind Kind `cbor:"5,keyasint"`

	// Type-specific payload (one of these will be set).
	Controller *ControllerEvent `cbor:"10,keyasint,omitempty"`
	Parse      *ParseEvent      `cbor:"11,keyasint,omitempty"`
	Print      *PrintEvent      `cbor:"12,keyasint,omitempty"`
	Error      *ErrorEventData  `cbor:"13,keyasint,omitempty"`
}

// Kind classifies events.
type Kind uint8

const (
	// KindIdentify records a controller-information record being obtained.
	KindIdentify Kind = 0
	// KindParse records a numeric argument being parsed.
	KindParse Kind = 1
	// KindPrint records a controller report being written.
	KindPrint Kind = 2
	// KindError records a failure.
	KindError Kind = 3
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindIdentify:
		return "IDENTIFY"
	case KindParse:
		return "PARSE"
	case KindPrint:
		return "PRINT"
	case KindError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseKind parses a kind name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "identify":
		return KindIdentify, nil
	case "parse":
		return KindParse, nil
	case "print":
		return KindPrint, nil
	case "error":
		return KindError, nil
	default:
		return 0, fmt.Errorf("invalid kind %q (must be identify, parse, print, or error)", s)
	}
}

// ControllerEvent records where a controller record came from.
type ControllerEvent struct {
	// Source is the snapshot path or a description such as "decode".
	Source string `cbor:"1,keyasint"`

	// Info is the record obtained.
	Info *nvm.ControllerInfo `cbor:"2,keyasint,omitempty"`
}

// ParseEvent records one numeric parse.
type ParseEvent struct {
	Input   string `cbor:"1,keyasint"`
	Base    int    `cbor:"2,keyasint"`
	BitSize int    `cbor:"3,keyasint"`

	// Value is the parsed value; meaningless when Err is set.
	Value uint64 `cbor:"4,keyasint,omitempty"`

	// Err is the failure message, empty on success.
	Err string `cbor:"5,keyasint,omitempty"`
}

// PrintEvent records a report being written.
type PrintEvent struct {
	// Bytes is the size of the report.
	Bytes int `cbor:"1,keyasint"`

	// HumanReadable is set when unit conversions were included.
	HumanReadable bool `cbor:"2,keyasint,omitempty"`
}

// ErrorEventData records a failure.
type ErrorEventData struct {
	// Message is the error text.
	Message string `cbor:"1,keyasint"`

	// Context describes what was being attempted.
	Context string `cbor:"2,keyasint,omitempty"`
}
