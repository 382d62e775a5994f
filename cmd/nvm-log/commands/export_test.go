package commands

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/nvm-examples/nvm-go/pkg/log"
	"github.com/nvm-examples/nvm-go/pkg/nvm"
)

func exportEvents() []log.Event {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	return []log.Event{
		{
			Timestamp: ts,
			SessionID: testSession,
			Program:   "nvm-identify",
			Tag:       0x00ff,
			Kind:      log.KindIdentify,
			Controller: &log.ControllerEvent{
				Source: "snap.yaml",
				Info:   &nvm.ControllerInfo{ModelNumber: "QEMU NVMe Ctrl", Version: nvm.NewVersion(1, 4, 0), Firmware: "8.2.0"},
			},
		},
		{
			Timestamp: ts,
			SessionID: testSession,
			Program:   "nvm-shell",
			Tag:       7,
			Kind:      log.KindParse,
			Parse:     &log.ParseEvent{Input: "4096", Base: 10, BitSize: 32, Value: 4096},
		},
	}
}

func TestExportToJSONL(t *testing.T) {
	path := createTestLogFile(t, exportEvents())

	var buf bytes.Buffer
	if err := RunExport(path, "jsonl", &buf); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	var decoded log.Event
	if err := json.Unmarshal([]byte(lines[0]), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Controller == nil || decoded.Controller.Info == nil {
		t.Fatal("expected controller payload")
	}
	if decoded.Controller.Info.Version != nvm.NewVersion(1, 4, 0) {
		t.Errorf("version = %v, want 1.4.0", decoded.Controller.Info.Version)
	}
	if !strings.Contains(lines[0], `"1.4.0"`) {
		t.Errorf("version should be exported as text: %s", lines[0])
	}
}

func TestExportToCSV(t *testing.T) {
	path := createTestLogFile(t, exportEvents())

	var buf bytes.Buffer
	if err := RunExport(path, "csv", &buf); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[0][0] != "timestamp" {
		t.Errorf("unexpected header: %v", records[0])
	}

	first := records[1]
	if first[3] != "0x00ff" || first[4] != "IDENTIFY" {
		t.Errorf("unexpected row: %v", first)
	}
	if first[5] != "snap.yaml: QEMU NVMe Ctrl (1.4.0, fw 8.2.0)" {
		t.Errorf("detail = %q", first[5])
	}
	if records[2][5] != "4096" {
		t.Errorf("parse detail = %q, want 4096", records[2][5])
	}
}

func TestExportUnknownFormat(t *testing.T) {
	path := createTestLogFile(t, nil)

	var buf bytes.Buffer
	if err := RunExport(path, "xml", &buf); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
