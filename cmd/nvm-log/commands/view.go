// Package commands implements the nvm-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nvm-examples/nvm-go/pkg/log"
)

// ViewFilter specifies criteria for the view command.
type ViewFilter struct {
	Session string
	Program string
	Kind    *log.Kind
	Tag     *uint16
}

// RunView writes every matching event in path to w.
func RunView(path string, filter ViewFilter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, log.Filter{
		SessionID: filter.Session,
		Program:   filter.Program,
		Kind:      filter.Kind,
		Tag:       filter.Tag,
	})
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [session:id] tag KIND program
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [session:%s] 0x%04x %-8s %s\n",
		ts, shortenSessionID(event.SessionID), event.Tag, event.Kind, event.Program)

	switch {
	case event.Controller != nil:
		formatControllerDetails(w, event.Controller)
	case event.Parse != nil:
		formatParseDetails(w, event.Parse)
	case event.Print != nil:
		fmt.Fprintf(w, "  Report: %d bytes", event.Print.Bytes)
		if event.Print.HumanReadable {
			fmt.Fprint(w, " (human-readable)")
		}
		fmt.Fprintln(w)
	case event.Error != nil:
		if event.Error.Context != "" {
			fmt.Fprintf(w, "  Context: %s\n", event.Error.Context)
		}
		fmt.Fprintf(w, "  Error: %s\n", event.Error.Message)
	}

	fmt.Fprintln(w)
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatControllerDetails(w io.Writer, c *log.ControllerEvent) {
	fmt.Fprintf(w, "  Source: %s\n", c.Source)
	if c.Info == nil {
		return
	}
	fmt.Fprintf(w, "  Controller: %s\n", c.Info)
	if c.Info.SerialNumber != "" {
		fmt.Fprintf(w, "  Serial: %s\n", c.Info.SerialNumber)
	}
}

func formatParseDetails(w io.Writer, p *log.ParseEvent) {
	base := strconv.Itoa(p.Base)
	if p.Base == 0 {
		base = "auto"
	}
	fmt.Fprintf(w, "  Input: %q (u%d, base %s)\n", p.Input, p.BitSize, base)
	if p.Err != "" {
		fmt.Fprintf(w, "  Error: %s\n", p.Err)
		return
	}
	fmt.Fprintf(w, "  Value: %d (0x%x)\n", p.Value, p.Value)
}
