package nvm

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is the packed NVM Express version as found in the VS register:
// major in bits 31:16, minor in bits 15:8, tertiary in bits 7:0.
//
// Version implements encoding.TextMarshaler so YAML and JSON snapshots
// carry it as "major.minor.tertiary". CBOR keeps the packed integer.
type Version uint32

// NewVersion packs the version components.
func NewVersion(major uint16, minor, tertiary uint8) Version {
	return Version(uint32(major)<<16 | uint32(minor)<<8 | uint32(tertiary))
}

// Major returns the major version.
func (v Version) Major() uint16 { return uint16(v >> 16) }

// Minor returns the minor version.
func (v Version) Minor() uint8 { return uint8(v >> 8) }

// Tertiary returns the tertiary version.
func (v Version) Tertiary() uint8 { return uint8(v) }

// String returns the version as "major.minor.tertiary".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Tertiary())
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts
// "major.minor", "major.minor.tertiary" or the packed value as a number.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVersion parses a dotted version string or a packed numeric value.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) == 1 {
		n, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid NVMe version %q", s)
		}
		return Version(n), nil
	}
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid NVMe version %q", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid NVMe major version in %q", s)
	}
	minor, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid NVMe minor version in %q", s)
	}
	var tertiary uint64
	if len(parts) == 3 {
		tertiary, err = strconv.ParseUint(parts[2], 10, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid NVMe tertiary version in %q", s)
		}
	}
	return NewVersion(uint16(major), uint8(minor), uint8(tertiary)), nil
}
