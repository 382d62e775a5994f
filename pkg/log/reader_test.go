package log

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.nlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func readAll(t *testing.T, path string, filter Filter) []Event {
	t.Helper()

	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	var events []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return events
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		events = append(events, event)
	}
}

func testEvents(base time.Time) []Event {
	return []Event{
		{Timestamp: base, SessionID: "aaaaaaaa-1111", Program: "nvm-identify", Tag: 1, Kind: KindIdentify},
		{Timestamp: base.Add(time.Second), SessionID: "aaaaaaaa-1111", Program: "nvm-identify", Tag: 1, Kind: KindPrint},
		{Timestamp: base.Add(2 * time.Second), SessionID: "bbbbbbbb-2222", Program: "nvm-shell", Tag: 2, Kind: KindParse},
		{Timestamp: base.Add(3 * time.Second), SessionID: "bbbbbbbb-2222", Program: "nvm-shell", Tag: 3, Kind: KindError},
	}
}

func TestReaderIteratesEvents(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	events := readAll(t, createTestLogFile(t, testEvents(base)), Filter{})

	if len(events) != 4 {
		t.Fatalf("got %d events, want 4", len(events))
	}
	if events[0].Kind != KindIdentify || events[3].Kind != KindError {
		t.Errorf("events out of order: first %s, last %s", events[0].Kind, events[3].Kind)
	}
}

func TestReaderFilters(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	path := createTestLogFile(t, testEvents(base))

	parse := KindParse
	tag := uint16(1)
	start := base.Add(time.Second)
	end := base.Add(3 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 4},
		{"full session", Filter{SessionID: "aaaaaaaa-1111"}, 2},
		{"short session", Filter{SessionID: "bbbbbbbb"}, 2},
		{"program", Filter{Program: "nvm-shell"}, 2},
		{"kind", Filter{Kind: &parse}, 1},
		{"tag", Filter{Tag: &tag}, 2},
		{"time range", Filter{TimeStart: &start, TimeEnd: &end}, 2},
		{"no match", Filter{Program: "other"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(readAll(t, path, tt.filter)); got != tt.want {
				t.Errorf("got %d events, want %d", got, tt.want)
			}
		})
	}
}

func TestReaderHandlesEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)
	if events := readAll(t, path, Filter{}); len(events) != 0 {
		t.Errorf("got %d events from empty file", len(events))
	}
}

func TestReaderCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.nlog")
	if err := os.WriteFile(path, []byte{0xff, 0xff, 0x00}, 0644); err != nil {
		t.Fatal(err)
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	if _, err := reader.Next(); err == nil || err == io.EOF {
		t.Errorf("Next() = %v, want decode error", err)
	}
}

func TestNewReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "nope.nlog")); err == nil {
		t.Error("expected error for missing file")
	}
}
