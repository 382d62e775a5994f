package log

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nvm-examples/nvm-go/pkg/nvm"
)

// Session stamps events from one program run with a shared session ID.
type Session struct {
	id      string
	program string
	logger  Logger
	now     func() time.Time
}

// NewSession starts a session with a fresh UUID. A nil logger discards events.
func NewSession(program string, logger Logger) *Session {
	if logger == nil {
		logger = NoopLogger{}
	}
	return &Session{
		id:      uuid.New().String(),
		program: program,
		logger:  logger,
		now:     time.Now,
	}
}

// ID returns the session ID.
func (s *Session) ID() string {
	return s.id
}

// Program returns the program name events are stamped with.
func (s *Session) Program() string {
	return s.program
}

func (s *Session) log(tag uint16, event Event) {
	event.Timestamp = s.now()
	event.SessionID = s.id
	event.Program = s.program
	event.Tag = tag
	s.logger.Log(event)
}

// LogIdentify records a controller record obtained from source.
func (s *Session) LogIdentify(tag uint16, source string, info *nvm.ControllerInfo) {
	s.log(tag, Event{
		Kind:       KindIdentify,
		Controller: &ControllerEvent{Source: source, Info: info},
	})
}

// LogParse records a parse of input; err is the parse failure, if any.
func (s *Session) LogParse(tag uint16, input string, base, bitSize int, value uint64, err error) {
	p := &ParseEvent{Input: input, Base: base, BitSize: bitSize}
	if err != nil {
		p.Err = err.Error()
	} else {
		p.Value = value
	}
	s.log(tag, Event{Kind: KindParse, Parse: p})
}

// LogPrint records a report of n bytes being written.
func (s *Session) LogPrint(tag uint16, n int, humanReadable bool) {
	s.log(tag, Event{
		Kind:  KindPrint,
		Print: &PrintEvent{Bytes: n, HumanReadable: humanReadable},
	})
}

// LogError records err while doing context.
func (s *Session) LogError(tag uint16, context string, err error) {
	s.log(tag, Event{
		Kind:  KindError,
		Error: &ErrorEventData{Message: err.Error(), Context: context},
	})
}

// shortID returns the first 8 characters of a session ID.
func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatTag formats a request tag as 0x-prefixed hex.
func formatTag(tag uint16) string {
	return fmt.Sprintf("0x%04x", tag)
}
