package inspect

import (
	"fmt"
	"strings"
	"time"

	"github.com/nvm-examples/nvm-go/pkg/nvm"
)

// DefaultLabelWidth fits the longest controller report label.
const DefaultLabelWidth = 24

// Formatter formats controller report fields.
type Formatter struct {
	// HumanReadable appends unit conversions and hex IDs to raw values.
	HumanReadable bool

	// LabelWidth is the column labels are padded to.
	LabelWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		HumanReadable: false,
		LabelWidth:    DefaultLabelWidth,
	}
}

// Line returns "label: value\n" with the label padded to LabelWidth.
func (f *Formatter) Line(label, value string) string {
	width := f.LabelWidth
	if width == 0 {
		width = DefaultLabelWidth
	}
	return fmt.Sprintf("%-*s: %s\n", width, label, value)
}

// Banner returns a title centered in a dashed rule of the given width.
func Banner(title string, width int) string {
	if title == "" {
		return strings.Repeat("-", width)
	}
	title = " " + title + " "
	pad := width - len(title)
	if pad < 2 {
		return "-" + title + "-"
	}
	left := pad / 2
	return strings.Repeat("-", left) + title + strings.Repeat("-", pad-left)
}

// FormatVendor formats a little-endian PCI vendor ID pair as stored in
// the Identify data, e.g. "86 80".
func (f *Formatter) FormatVendor(lo, hi byte) string {
	raw := fmt.Sprintf("%02x %02x", lo, hi)
	if !f.HumanReadable {
		return raw
	}
	return fmt.Sprintf("%s (0x%04x)", raw, uint16(hi)<<8|uint16(lo))
}

// FormatVersion formats an NVM Express version.
func (f *Formatter) FormatVersion(v nvm.Version) string {
	if !f.HumanReadable {
		return v.String()
	}
	return fmt.Sprintf("%s (0x%08x)", v, uint32(v))
}

// FormatSize formats a byte count, adding a binary-unit conversion when
// HumanReadable is set.
func (f *Formatter) FormatSize(n uint64) string {
	if !f.HumanReadable || n < 1024 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%d (%s)", n, FormatBytesHumanReadable(n))
}

// FormatTransferSize formats a maximum transfer size where zero means no limit.
func (f *Formatter) FormatTransferSize(n uint64) string {
	if n == 0 && f.HumanReadable {
		return "0 (unlimited)"
	}
	return f.FormatSize(n)
}

// FormatCount formats a plain count.
func (f *Formatter) FormatCount(n uint64) string {
	return fmt.Sprintf("%d", n)
}

// FormatDuration formats a timeout.
func (f *Formatter) FormatDuration(d time.Duration) string {
	if !f.HumanReadable {
		return fmt.Sprintf("%d ms", d.Milliseconds())
	}
	return fmt.Sprintf("%d ms (%s)", d.Milliseconds(), d)
}

// FormatBool formats a flag as yes/no.
func (f *Formatter) FormatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// FormatBytesHumanReadable formats a byte count with binary units.
func FormatBytesHumanReadable(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	units := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	v := float64(n) / unit
	i := 0
	for v >= unit && i < len(units)-1 {
		v /= unit
		i++
	}
	if v == float64(uint64(v)) {
		return fmt.Sprintf("%d %s", uint64(v), units[i])
	}
	return fmt.Sprintf("%.1f %s", v, units[i])
}
