package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/nvm-examples/nvm-go/pkg/log"
)

// RunExport writes the events of path to w as jsonl or csv.
func RunExport(path, format string, w io.Writer) error {
	if format != "jsonl" && format != "csv" {
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}

	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	if format == "csv" {
		return exportCSV(reader, w)
	}
	return exportJSONL(reader, w)
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
}

var csvHeader = []string{"timestamp", "session_id", "program", "tag", "kind", "detail"}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			event.SessionID,
			event.Program,
			fmt.Sprintf("0x%04x", event.Tag),
			event.Kind.String(),
			eventDetail(event),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// eventDetail summarizes the payload in one field.
func eventDetail(event log.Event) string {
	switch {
	case event.Controller != nil:
		if event.Controller.Info != nil {
			return event.Controller.Source + ": " + event.Controller.Info.String()
		}
		return event.Controller.Source
	case event.Parse != nil:
		if event.Parse.Err != "" {
			return event.Parse.Err
		}
		return strconv.FormatUint(event.Parse.Value, 10)
	case event.Print != nil:
		return strconv.Itoa(event.Print.Bytes) + " bytes"
	case event.Error != nil:
		return event.Error.Message
	}
	return ""
}
