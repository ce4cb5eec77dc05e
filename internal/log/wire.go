package log

import (
	"fmt"
	"io"
	"sync"
	"time"
	"unicode/utf8"
)

// WireLogger records raw API traffic.
type WireLogger interface {
	// Log records one chunk. in=true means client->server.
	Log(in bool, data []byte)
}

type wireLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewWire returns a WireLogger writing to w. A nil writer yields a no-op logger.
func NewWire(w io.Writer) WireLogger {
	return &wireLogger{w: w}
}

// Log writes one line per chunk. Valid UTF-8 is quoted so layout text stays
// readable; anything else is hex dumped.
func (l *wireLogger) Log(in bool, data []byte) {
	if l.w == nil || len(data) == 0 {
		return
	}
	dir := "S->C"
	if in {
		dir = "C->S"
	}
	var body string
	if utf8.Valid(data) {
		body = fmt.Sprintf("text: %q", data)
	} else {
		body = fmt.Sprintf("hex: % x", data)
	}
	line := fmt.Sprintf("%s %s %d bytes, %s\n", time.Now().Format("2006/01/02 15:04:05"), dir, len(data), body)

	l.mu.Lock()
	_, _ = io.WriteString(l.w, line)
	l.mu.Unlock()
}
