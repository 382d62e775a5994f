package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/nvm-examples/nvm-go/pkg/log"
)

// Stats holds aggregate statistics about a capture file.
type Stats struct {
	TotalEvents  int
	EventsByKind map[log.Kind]int
	Sessions     map[string]*SessionStats
	ParseErrors  int
	Errors       int
	Controllers  map[string]int
	TimeRange    struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single program run.
type SessionStats struct {
	Program   string
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Tags      map[uint16]bool
}

// CollectStats reads the capture file and aggregates its events.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByKind: make(map[log.Kind]int),
		Sessions:     make(map[string]*SessionStats),
		Controllers:  make(map[string]int),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByKind[event.Kind]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		sess, ok := stats.Sessions[event.SessionID]
		if !ok {
			sess = &SessionStats{
				Program:   event.Program,
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
				Tags:      make(map[uint16]bool),
			}
			stats.Sessions[event.SessionID] = sess
		}
		sess.Events++
		sess.Tags[event.Tag] = true
		if event.Timestamp.After(sess.LastSeen) {
			sess.LastSeen = event.Timestamp
		}

		if event.Controller != nil && event.Controller.Info != nil {
			stats.Controllers[event.Controller.Info.ModelNumber]++
		}
		if event.Parse != nil && event.Parse.Err != "" {
			stats.ParseErrors++
		}
		if event.Error != nil {
			stats.Errors++
		}
	}

	return stats, nil
}

// RunStats analyzes the capture file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== NVM Capture Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Kind:")
	for _, kind := range []log.Kind{log.KindIdentify, log.KindParse, log.KindPrint, log.KindError} {
		if count := stats.EventsByKind[kind]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", kind.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.Controllers) > 0 {
		models := make([]string, 0, len(stats.Controllers))
		for m := range stats.Controllers {
			models = append(models, m)
		}
		sort.Strings(models)

		fmt.Fprintln(w, "Controllers:")
		for _, m := range models {
			name := m
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Fprintf(w, "  %s: %d\n", name, stats.Controllers[m])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	if len(stats.Sessions) > 0 {
		type sessionInfo struct {
			id    string
			stats *SessionStats
		}
		sessions := make([]sessionInfo, 0, len(stats.Sessions))
		for id, ss := range stats.Sessions {
			sessions = append(sessions, sessionInfo{id, ss})
		}
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].stats.FirstSeen.Before(sessions[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, s := range sessions {
			duration := s.stats.LastSeen.Sub(s.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %s: %d events, %d tags, duration %s\n",
				shortenSessionID(s.id), s.stats.Program, s.stats.Events, len(s.stats.Tags), duration)
		}
	}

	if stats.ParseErrors > 0 || stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Parse failures: %d\n", stats.ParseErrors)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
