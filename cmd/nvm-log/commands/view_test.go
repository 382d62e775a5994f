package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nvm-examples/nvm-go/pkg/log"
	"github.com/nvm-examples/nvm-go/pkg/nvm"
)

const testSession = "3f2a9c1d-5b6e-4f70-8a91-b2c3d4e5f607"

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.nlog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func TestFormatIdentifyEvent(t *testing.T) {
	info := &nvm.ControllerInfo{
		Version:      nvm.NewVersion(1, 3, 0),
		ModelNumber:  "Samsung SSD 970 EVO 500GB",
		SerialNumber: "S466NX0K123456",
		Firmware:     "2B2QEXE7",
	}
	event := log.Event{
		Timestamp:  time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC),
		SessionID:  testSession,
		Tag:        0x1a2b,
		Program:    "nvm-identify",
		Kind:       log.KindIdentify,
		Controller: &log.ControllerEvent{Source: "snap.yaml", Info: info},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	for _, want := range []string{
		"2026-01-28T10:15:32.123456Z",
		"[session:3f2a9c1d]",
		"0x1a2b",
		"IDENTIFY",
		"nvm-identify",
		"Source: snap.yaml",
		"Controller: Samsung SSD 970 EVO 500GB (1.3.0, fw 2B2QEXE7)",
		"Serial: S466NX0K123456",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestFormatParseEvent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var buf bytes.Buffer
		formatEvent(&buf, log.Event{
			SessionID: testSession,
			Kind:      log.KindParse,
			Parse:     &log.ParseEvent{Input: "0x10", Base: 0, BitSize: 16, Value: 16},
		})
		output := buf.String()

		if !strings.Contains(output, `Input: "0x10" (u16, base auto)`) {
			t.Errorf("expected input line, got:\n%s", output)
		}
		if !strings.Contains(output, "Value: 16 (0x10)") {
			t.Errorf("expected value line, got:\n%s", output)
		}
	})

	t.Run("failure", func(t *testing.T) {
		var buf bytes.Buffer
		formatEvent(&buf, log.Event{
			SessionID: testSession,
			Kind:      log.KindParse,
			Parse:     &log.ParseEvent{Input: "70000", Base: 10, BitSize: 16, Err: "value out of range"},
		})
		output := buf.String()

		if !strings.Contains(output, "base 10") {
			t.Errorf("expected base in output, got:\n%s", output)
		}
		if !strings.Contains(output, "Error: value out of range") {
			t.Errorf("expected error line, got:\n%s", output)
		}
		if strings.Contains(output, "Value:") {
			t.Errorf("failed parse should not print a value:\n%s", output)
		}
	})
}

func TestFormatPrintAndErrorEvents(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, log.Event{
		SessionID: "short",
		Kind:      log.KindPrint,
		Print:     &log.PrintEvent{Bytes: 1234, HumanReadable: true},
	})
	formatEvent(&buf, log.Event{
		SessionID: testSession,
		Kind:      log.KindError,
		Error:     &log.ErrorEventData{Message: "file not found", Context: "load"},
	})
	output := buf.String()

	for _, want := range []string{
		"[session:short]",
		"Report: 1234 bytes (human-readable)",
		"ERROR",
		"Context: load",
		"Error: file not found",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestRunViewFiltersByKindAndTag(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	events := []log.Event{
		{Timestamp: ts, SessionID: testSession, Tag: 1, Kind: log.KindParse, Parse: &log.ParseEvent{Input: "first", BitSize: 16}},
		{Timestamp: ts, SessionID: testSession, Tag: 2, Kind: log.KindParse, Parse: &log.ParseEvent{Input: "second", BitSize: 16}},
		{Timestamp: ts, SessionID: testSession, Tag: 2, Kind: log.KindPrint, Print: &log.PrintEvent{Bytes: 10}},
	}
	path := createTestLogFile(t, events)

	kind := log.KindParse
	tag := uint16(2)

	var buf bytes.Buffer
	if err := RunView(path, ViewFilter{Kind: &kind, Tag: &tag}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}
	output := buf.String()

	if !strings.Contains(output, `"second"`) {
		t.Errorf("expected matching parse event, got:\n%s", output)
	}
	if strings.Contains(output, `"first"`) {
		t.Errorf("tag filter not applied:\n%s", output)
	}
	if strings.Contains(output, "Report:") {
		t.Errorf("kind filter not applied:\n%s", output)
	}
}

func TestRunViewMissingFile(t *testing.T) {
	var buf bytes.Buffer
	err := RunView(filepath.Join(t.TempDir(), "missing.nlog"), ViewFilter{}, &buf)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
