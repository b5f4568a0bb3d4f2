package audit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/mashwaniT/banking-system/pkg/crypto"
)

// Sink receives the informational and error events that make up the
// process audit log. It is injected into components rather than accessed
// globally so tests can assert on emitted events.
type Sink interface {
	Event(level slog.Level, msg string, attrs ...slog.Attr)
}

// LogSink writes audit events as JSON lines through slog. When a signer
// is configured each event carries an HMAC signature over its message and
// timestamp.
type LogSink struct {
	logger *slog.Logger
	signer *crypto.Signer
}

func NewLogSink(w io.Writer, signer *crypto.Signer) *LogSink {
	if w == nil {
		w = os.Stdout
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	return &LogSink{
		logger: slog.New(handler),
		signer: signer,
	}
}

// Open creates a LogSink appending to the file at path. The caller closes
// the returned file when the process shuts down.
func Open(path string, signer *crypto.Signer) (*LogSink, *os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open audit log: %w", err)
	}
	return NewLogSink(f, signer), f, nil
}

func (s *LogSink) Event(level slog.Level, msg string, attrs ...slog.Attr) {
	if s.signer != nil {
		ts := time.Now().Unix()
		attrs = append(attrs,
			slog.Int64("signed_at", ts),
			slog.String("signature", s.signer.SignEvent(msg, ts)))
	}
	s.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// Event is a recorded audit entry, kept by Capture for assertions.
type Event struct {
	Level   slog.Level
	Message string
	Attrs   map[string]string
}

// Capture is an in-memory Sink for tests.
type Capture struct {
	mu     sync.Mutex
	events []Event
}

func NewCapture() *Capture {
	return &Capture{}
}

func (c *Capture) Event(level slog.Level, msg string, attrs ...slog.Attr) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ev := Event{
		Level:   level,
		Message: msg,
		Attrs:   make(map[string]string, len(attrs)),
	}
	for _, a := range attrs {
		ev.Attrs[a.Key] = a.Value.String()
	}
	c.events = append(c.events, ev)
}

func (c *Capture) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

func (c *Capture) Last() (Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.events) == 0 {
		return Event{}, false
	}
	return c.events[len(c.events)-1], true
}

// Nop discards every event.
type Nop struct{}

func (Nop) Event(level slog.Level, msg string, attrs ...slog.Attr) {}

var (
	_ Sink = (*LogSink)(nil)
	_ Sink = (*Capture)(nil)
	_ Sink = Nop{}
)
