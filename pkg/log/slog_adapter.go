package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes capture events to an slog.Logger at debug level.
// Useful for watching a capture on the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", shortID(event.SessionID)),
		slog.String("tag", formatTag(event.Tag)),
		slog.String("kind", event.Kind.String()),
	}
	if event.Program != "" {
		attrs = append(attrs, slog.String("program", event.Program))
	}

	switch {
	case event.Controller != nil:
		attrs = append(attrs, slog.String("source", event.Controller.Source))
		if info := event.Controller.Info; info != nil {
			attrs = append(attrs,
				slog.String("model", info.ModelNumber),
				slog.String("serial", info.SerialNumber),
				slog.String("version", info.Version.String()),
			)
		}
	case event.Parse != nil:
		attrs = append(attrs,
			slog.String("input", event.Parse.Input),
			slog.Int("base", event.Parse.Base),
			slog.Int("bits", event.Parse.BitSize),
		)
		if event.Parse.Err != "" {
			attrs = append(attrs, slog.String("parse_error", event.Parse.Err))
		} else {
			attrs = append(attrs, slog.Uint64("value", event.Parse.Value))
		}
	case event.Print != nil:
		attrs = append(attrs,
			slog.Int("bytes", event.Print.Bytes),
			slog.Bool("human", event.Print.HumanReadable),
		)
	case event.Error != nil:
		attrs = append(attrs, slog.String("error_msg", event.Error.Message))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "capture", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
