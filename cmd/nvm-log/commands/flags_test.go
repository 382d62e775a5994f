package commands

import (
	"testing"

	"github.com/nvm-examples/nvm-go/pkg/log"
)

func TestParseKindFlag(t *testing.T) {
	tests := []struct {
		input   string
		want    log.Kind
		wantErr bool
	}{
		{"identify", log.KindIdentify, false},
		{"PARSE", log.KindParse, false},
		{"print", log.KindPrint, false},
		{"error", log.KindError, false},
		{"frame", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKindFlag(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKindFlag(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseKindFlag(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTagFlag(t *testing.T) {
	tests := []struct {
		input   string
		want    uint16
		wantErr bool
	}{
		{"42", 42, false},
		{"0x1a2b", 0x1a2b, false},
		{"0XFFFF", 0xffff, false},
		{"65536", 0, true},
		{"tag", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTagFlag(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTagFlag(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTagFlag(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
