package apiclient

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/Alia5/keyswap/apitypes"
)

// ConvertStream keeps one connection open and converts text line by line.
type ConvertStream struct {
	conn   net.Conn
	r      *bufio.Reader
	Layout string

	mu     sync.Mutex
	closed bool
}

// OpenConvertStream opens a streaming conversion into layout. An unknown
// layout fails here rather than on the first line.
func (c *Client) OpenConvertStream(ctx context.Context, layout string) (*ConvertStream, error) {
	if c.transport.mock != nil {
		return nil, fmt.Errorf("stream connections not supported with mock transport")
	}
	line, err := requestLine(fillPath("convert/{layout}/stream", map[string]string{"layout": layout}), nil)
	if err != nil {
		return nil, err
	}
	conn, err := c.transport.dial(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Write(line); err != nil {
		conn.Close()
		return nil, fmt.Errorf("write stream path: %w", err)
	}

	s := &ConvertStream{conn: conn, r: bufio.NewReader(conn)}
	if c.transport.cfg.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(c.transport.cfg.ReadTimeout))
	}
	header, err := s.r.ReadString('\n')
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("read stream header: %w", err)
	}
	resp, err := parse[apitypes.ConvertResponse](strings.TrimSuffix(header, "\n"))
	if err != nil {
		conn.Close()
		return nil, err
	}
	// streams are long-lived; per-line deadlines are up to the caller
	_ = conn.SetDeadline(time.Time{})
	s.Layout = resp.Layout
	return s, nil
}

// Convert sends one line of text and returns its conversion. text must not
// contain line breaks.
func (s *ConvertStream) Convert(text string) (string, error) {
	if strings.ContainsAny(text, "\r\n") {
		return "", errors.New("stream text must be a single line")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", fmt.Errorf("stream closed")
	}
	if _, err := fmt.Fprintf(s.conn, "%s\n", text); err != nil {
		return "", err
	}
	out, err := s.r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(out, "\n"), nil
}

// Close ends the stream.
func (s *ConvertStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}
