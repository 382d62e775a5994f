package nvm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// IdentifyDataSize is the size of the Identify Controller data structure.
const IdentifyDataSize = 4096

// ErrShortIdentify is returned when the Identify data is truncated.
var ErrShortIdentify = errors.New("identify controller data too short")

// Offsets into the Identify Controller data structure.
const (
	offVendorID          = 0
	offSubsystemVendorID = 2
	offSerialNumber      = 4
	offModelNumber       = 24
	offFirmware          = 64
	offMDTS              = 77
	offSQES              = 512
	offCQES              = 513
	offMaxCmd            = 514
	offNumNamespaces     = 516
)

// readyTimeoutUnit is the granularity of CAP.TO.
const readyTimeoutUnit = 500 * time.Millisecond

// Registers is a snapshot of the controller registers Decode needs.
type Registers struct {
	// CAP is the 64-bit Controller Capabilities register.
	CAP uint64 `yaml:"cap" json:"cap"`

	// VS is the 32-bit Version register.
	VS uint32 `yaml:"vs" json:"vs"`
}

// MaxQueueEntries returns CAP.MQES converted to an entry count.
func (r Registers) MaxQueueEntries() uint32 {
	return uint32(r.CAP&0xffff) + 1
}

// ContiguousQueuesRequired reports CAP.CQR.
func (r Registers) ContiguousQueuesRequired() bool {
	return r.CAP&(1<<16) != 0
}

// ReadyTimeout returns CAP.TO as a duration.
func (r Registers) ReadyTimeout() time.Duration {
	return time.Duration((r.CAP>>24)&0xff) * readyTimeoutUnit
}

// DoorbellStride returns CAP.DSTRD in bytes.
func (r Registers) DoorbellStride() uint64 {
	return 4 << ((r.CAP >> 32) & 0xf)
}

// MinPageSize returns CAP.MPSMIN in bytes.
func (r Registers) MinPageSize() uint64 {
	return 1 << (12 + (r.CAP>>48)&0xf)
}

// Decode builds a ControllerInfo from a register snapshot and a captured
// Identify Controller data structure. Only the first IdentifyDataSize bytes
// of identify are examined.
func Decode(regs Registers, identify []byte) (*ControllerInfo, error) {
	if len(identify) < IdentifyDataSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrShortIdentify, len(identify), IdentifyDataSize)
	}

	info := &ControllerInfo{
		Version:        Version(regs.VS),
		PageSize:       regs.MinPageSize(),
		DoorbellStride: regs.DoorbellStride(),
		Timeout:        regs.ReadyTimeout(),
		Contiguous:     regs.ContiguousQueuesRequired(),
		MaxEntries:     regs.MaxQueueEntries(),
	}

	copy(info.PCIVendor[0:2], identify[offVendorID:offVendorID+2])
	copy(info.PCIVendor[2:4], identify[offSubsystemVendorID:offSubsystemVendorID+2])

	info.SerialNumber = asciiField(identify[offSerialNumber : offSerialNumber+SerialNumberLen])
	info.ModelNumber = asciiField(identify[offModelNumber : offModelNumber+ModelNumberLen])
	info.Firmware = asciiField(identify[offFirmware : offFirmware+FirmwareLen])

	// MDTS is a power of two in units of the minimum page size; zero means no limit.
	if mdts := identify[offMDTS]; mdts != 0 && mdts < 64 {
		info.MaxDataPages = 1 << mdts
		info.MaxDataSize = info.MaxDataPages * info.PageSize
	}

	info.SQEntrySize = 1 << (identify[offSQES] & 0x0f)
	info.CQEntrySize = 1 << (identify[offCQES] & 0x0f)
	info.MaxOutCommands = uint64(binary.LittleEndian.Uint16(identify[offMaxCmd:]))
	info.MaxNamespaces = uint64(binary.LittleEndian.Uint32(identify[offNumNamespaces:]))

	return info, nil
}

// asciiField converts a space- or NUL-padded ASCII field to a string.
func asciiField(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(bytes.TrimRight(b, " "))
}
