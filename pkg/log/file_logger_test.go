package log

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nvm-examples/nvm-go/pkg/nvm"
)

func TestFileLoggerCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.nlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("log file was not created")
	}
}

func TestFileLoggerWritesCBOR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.nlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	ts := time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC)
	logger.Log(Event{
		Timestamp: ts,
		SessionID: "2f1c9a3e-0000-4000-8000-000000000000",
		Tag:       0xbeef,
		Program:   "nvm-identify",
		Kind:      KindIdentify,
		Controller: &ControllerEvent{
			Source: "ctrl.yaml",
			Info:   &nvm.ControllerInfo{ModelNumber: "INTEL SSDPEKKW256G7", Version: nvm.NewVersion(1, 2, 0)},
		},
	})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	event, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}
	if !event.Timestamp.Equal(ts) {
		t.Errorf("Timestamp = %v, want %v (nanosecond precision)", event.Timestamp, ts)
	}
	if event.Tag != 0xbeef {
		t.Errorf("Tag = %#x, want 0xbeef", event.Tag)
	}
	if event.Controller == nil || event.Controller.Info == nil {
		t.Fatal("controller payload lost")
	}
	if event.Controller.Info.Version != nvm.NewVersion(1, 2, 0) {
		t.Errorf("Version = %s, want 1.2.0", event.Controller.Info.Version)
	}
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.nlog")

	for i := 0; i < 2; i++ {
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger failed: %v", err)
		}
		logger.Log(Event{Timestamp: time.Now(), Tag: uint16(i)})
		logger.Close()
	}

	events := readAll(t, path, Filter{})
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
}

func TestFileLoggerConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.nlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				logger.Log(Event{Timestamp: time.Now(), Tag: uint16(g*100 + i), Kind: KindParse})
			}
		}(g)
	}
	wg.Wait()
	logger.Close()

	if got := len(readAll(t, path, Filter{})); got != 200 {
		t.Errorf("got %d events, want 200", got)
	}
	if logger.Dropped() != 0 {
		t.Errorf("Dropped() = %d, want 0", logger.Dropped())
	}
}

func TestFileLoggerIgnoresLogAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.nlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Close()
	logger.Log(Event{Timestamp: time.Now()})

	if err := logger.Close(); err != nil {
		t.Errorf("second Close returned %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 0 {
		t.Errorf("file size = %d, want 0", info.Size())
	}
}

func TestNewFileLoggerBadPath(t *testing.T) {
	if _, err := NewFileLogger(filepath.Join(t.TempDir(), "missing", "x.nlog")); err == nil {
		t.Error("expected error for missing directory")
	}
}
