// Package testing holds helpers shared by the API and CLI tests.
package testing

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"

	"github.com/Alia5/keyswap/inspector"
	"github.com/Alia5/keyswap/internal/log"
	"github.com/Alia5/keyswap/internal/server/api"
	"github.com/Alia5/keyswap/keymap"
)

// DefaultInspector returns an inspector over the default en, ru, he layouts.
func DefaultInspector(t *testing.T) *inspector.Inspector {
	t.Helper()
	insp, err := inspector.New(keymap.Defaults())
	if err != nil {
		t.Fatalf("inspector: %v", err)
	}
	return insp
}

// StartAPIServer starts an API server on a free loopback port answering from
// the default inspector. register lets the test add the routes it needs.
func StartAPIServer(t *testing.T, register func(r *api.Router, s *api.Server)) (addr string, done func()) {
	t.Helper()
	return StartAPIServerWithConfig(t, api.StaticSource(DefaultInspector(t)), api.ServerConfig{}, register)
}

// StartAPIServerWithConfig is StartAPIServer with an explicit source and config.
// cfg.Addr is ignored.
func StartAPIServerWithConfig(t *testing.T, src api.Source, cfg api.ServerConfig, register func(r *api.Router, s *api.Server)) (addr string, done func()) {
	t.Helper()
	cfg.Addr = "127.0.0.1:0"
	apiSrv := api.New(src, cfg.Addr, cfg, slog.Default(), log.NewWire(nil))
	if register != nil {
		register(apiSrv.Router(), apiSrv)
	}
	if err := apiSrv.Start(); err != nil {
		t.Fatalf("api start failed: %v", err)
	}
	return apiSrv.Addr(), apiSrv.Close
}

// ExecCmd dials the API server, sends cmd with the null terminator and returns
// the response line without its trailing newline.
func ExecCmd(t *testing.T, addr string, cmd string) string {
	t.Helper()
	c, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer c.Close()

	if _, err := fmt.Fprintf(c, "%s\x00", cmd); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	line, err := bufio.NewReader(c).ReadString('\n')
	if err != nil && err != io.EOF {
		t.Fatalf("read failed: %v", err)
	}
	return strings.TrimSuffix(line, "\n")
}
