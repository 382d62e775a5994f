package nvm

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Field widths of the ASCII strings in the Identify Controller data.
const (
	SerialNumberLen = 20
	ModelNumberLen  = 40
	FirmwareLen     = 8
)

// ControllerInfo describes an NVM Express controller as reported by the driver.
// The zero value is a valid, empty record.
type ControllerInfo struct {
	// Version is the NVM Express version the controller implements.
	Version Version `yaml:"version" json:"version" cbor:"1,keyasint"`

	// PageSize is the controller memory page size in bytes.
	PageSize uint64 `yaml:"page_size" json:"page_size" cbor:"2,keyasint"`

	// DoorbellStride is the distance in bytes between doorbell registers.
	DoorbellStride uint64 `yaml:"doorbell_stride" json:"doorbell_stride" cbor:"3,keyasint"`

	// Timeout is the worst-case time to wait for the controller to become ready.
	Timeout time.Duration `yaml:"timeout" json:"timeout" cbor:"4,keyasint"`

	// Contiguous is set when queues must be physically contiguous.
	Contiguous bool `yaml:"contiguous" json:"contiguous" cbor:"5,keyasint"`

	// MaxEntries is the maximum number of entries per queue.
	MaxEntries uint32 `yaml:"max_entries" json:"max_entries" cbor:"6,keyasint"`

	// PCIVendor holds the PCI vendor ID (bytes 0-1) and the PCI subsystem
	// vendor ID (bytes 2-3), both little-endian as in the Identify data.
	PCIVendor [4]byte `yaml:"pci_vendor,flow" json:"pci_vendor" cbor:"7,keyasint"`

	SerialNumber string `yaml:"serial_number" json:"serial_number" cbor:"8,keyasint"`
	ModelNumber  string `yaml:"model_number" json:"model_number" cbor:"9,keyasint"`
	Firmware     string `yaml:"firmware" json:"firmware" cbor:"10,keyasint"`

	// MaxDataSize is the maximum data transfer size in bytes. Zero means
	// the controller reports no limit.
	MaxDataSize uint64 `yaml:"max_data_size" json:"max_data_size" cbor:"11,keyasint"`

	// MaxDataPages is MaxDataSize expressed in controller pages.
	MaxDataPages uint64 `yaml:"max_data_pages" json:"max_data_pages" cbor:"12,keyasint"`

	SQEntrySize uint64 `yaml:"sq_entry_size" json:"sq_entry_size" cbor:"13,keyasint"`
	CQEntrySize uint64 `yaml:"cq_entry_size" json:"cq_entry_size" cbor:"14,keyasint"`

	// MaxOutCommands is the maximum number of outstanding commands.
	MaxOutCommands uint64 `yaml:"max_out_commands" json:"max_out_commands" cbor:"15,keyasint"`

	// MaxNamespaces is the number of namespaces the controller supports.
	MaxNamespaces uint64 `yaml:"max_namespaces" json:"max_namespaces" cbor:"16,keyasint"`
}

// VendorID returns the PCI vendor ID.
func (c *ControllerInfo) VendorID() uint16 {
	return binary.LittleEndian.Uint16(c.PCIVendor[0:2])
}

// SubsystemVendorID returns the PCI subsystem vendor ID.
func (c *ControllerInfo) SubsystemVendorID() uint16 {
	return binary.LittleEndian.Uint16(c.PCIVendor[2:4])
}

// SetVendor stores both vendor IDs in PCIVendor.
func (c *ControllerInfo) SetVendor(vendor, subsystem uint16) {
	binary.LittleEndian.PutUint16(c.PCIVendor[0:2], vendor)
	binary.LittleEndian.PutUint16(c.PCIVendor[2:4], subsystem)
}

// String returns a one-line summary, e.g. "INTEL SSDPEKKW256G7 (1.2.0, fw PSF121C)".
func (c *ControllerInfo) String() string {
	model := c.ModelNumber
	if model == "" {
		model = "unknown controller"
	}
	return fmt.Sprintf("%s (%s, fw %s)", model, c.Version, c.Firmware)
}
