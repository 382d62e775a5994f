package exutil

import (
	"io"
	"strings"

	"github.com/nvm-examples/nvm-go/pkg/inspect"
	"github.com/nvm-examples/nvm-go/pkg/nvm"
)

// reportWidth is the width of the report's top and bottom rules.
const reportWidth = 50

// PrintControllerInfo writes a controller-information report to w.
// A nil info prints an empty record. Write errors are left to w.
func PrintControllerInfo(w io.Writer, info *nvm.ControllerInfo) {
	FprintControllerInfo(w, info, nil)
}

// FprintControllerInfo is PrintControllerInfo with a custom formatter.
func FprintControllerInfo(w io.Writer, info *nvm.ControllerInfo, f *inspect.Formatter) {
	_, _ = io.WriteString(w, FormatControllerInfo(info, f))
}

// FormatControllerInfo returns the report PrintControllerInfo writes.
// A nil formatter uses inspect.NewFormatter.
func FormatControllerInfo(info *nvm.ControllerInfo, f *inspect.Formatter) string {
	if info == nil {
		info = &nvm.ControllerInfo{}
	}
	if f == nil {
		f = inspect.NewFormatter()
	}

	var sb strings.Builder
	sb.WriteString(inspect.Banner("Controller information", reportWidth))
	sb.WriteString("\n")

	v := info.PCIVendor
	sb.WriteString(f.Line("PCI Vendor ID", f.FormatVendor(v[0], v[1])))
	sb.WriteString(f.Line("PCI Subsystem Vendor ID", f.FormatVendor(v[2], v[3])))
	sb.WriteString(f.Line("NVM Express version", f.FormatVersion(info.Version)))
	sb.WriteString(f.Line("Controller page size", f.FormatSize(info.PageSize)))
	sb.WriteString(f.Line("Doorbell stride", f.FormatSize(info.DoorbellStride)))
	sb.WriteString(f.Line("Ready timeout", f.FormatDuration(info.Timeout)))
	sb.WriteString(f.Line("Contiguous queues", f.FormatBool(info.Contiguous)))
	sb.WriteString(f.Line("Max queue entries", f.FormatCount(uint64(info.MaxEntries))))
	sb.WriteString(f.Line("Serial Number", info.SerialNumber))
	sb.WriteString(f.Line("Model Number", info.ModelNumber))
	sb.WriteString(f.Line("Firmware revision", info.Firmware))
	sb.WriteString(f.Line("Max data transfer size", f.FormatTransferSize(info.MaxDataSize)))
	sb.WriteString(f.Line("Max data pages", f.FormatCount(info.MaxDataPages)))
	sb.WriteString(f.Line("SQ entry size", f.FormatSize(info.SQEntrySize)))
	sb.WriteString(f.Line("CQ entry size", f.FormatSize(info.CQEntrySize)))
	sb.WriteString(f.Line("Max outstanding commands", f.FormatCount(info.MaxOutCommands)))
	sb.WriteString(f.Line("Max number of namespaces", f.FormatCount(info.MaxNamespaces)))

	sb.WriteString(inspect.Banner("", reportWidth))
	sb.WriteString("\n")
	return sb.String()
}
