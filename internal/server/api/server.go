package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/Alia5/keyswap/inspector"
	"github.com/Alia5/keyswap/internal/log"
	"github.com/Alia5/keyswap/internal/server/api/auth"
)

// Source hands out the inspector that is current when a request arrives.
// Implementations may swap it at any time.
type Source interface {
	Inspector() *inspector.Inspector
}

type staticSource struct{ insp *inspector.Inspector }

func (s staticSource) Inspector() *inspector.Inspector { return s.insp }

// StaticSource wraps a fixed inspector.
func StaticSource(insp *inspector.Inspector) Source { return staticSource{insp: insp} }

var errRequestTooLarge = errors.New("request too large")

var pathSplit = regexp.MustCompile(`\s`)

// Server implements the small TCP API used to query layouts remotely.
type Server struct {
	source Source
	addr   string
	ln     net.Listener
	logger *slog.Logger
	wire   log.WireLogger
	router *Router
	config ServerConfig
	key    []byte
	conns  sync.WaitGroup
}

// New creates a new API server answering from source.
func New(source Source, addr string, config ServerConfig, logger *slog.Logger, wire log.WireLogger) *Server {
	if wire == nil {
		wire = log.NewWire(nil)
	}
	return &Server{
		source: source,
		addr:   addr,
		logger: logger,
		wire:   wire,
		config: config,
		router: NewRouter(),
	}
}

// Router returns the router used by the API server so callers can register handlers.
func (a *Server) Router() *Router { return a.router }

// Source returns the inspector source requests are answered from.
func (a *Server) Source() Source { return a.source }

// Config returns the server configuration.
func (a *Server) Config() ServerConfig { return a.config }

// Addr returns the bound listen address once Start succeeded.
func (a *Server) Addr() string {
	if a.ln != nil {
		return a.ln.Addr().String()
	}
	return a.addr
}

// Start listens on the configured address and serves incoming API commands.
func (a *Server) Start() error {
	if a.config.Password != "" {
		key, err := auth.DeriveKey(a.config.Password)
		if err != nil {
			return fmt.Errorf("derive api key: %w", err)
		}
		a.key = key
	}
	ln, err := net.Listen("tcp", a.addr)
	if err != nil {
		return err
	}
	a.ln = ln
	a.logger.Info("API listening", "addr", ln.Addr().String(), "auth", a.key != nil)
	go a.serve()
	return nil
}

// Close stops accepting connections and waits for in-flight requests.
func (a *Server) Close() {
	if a.ln != nil {
		_ = a.ln.Close()
	}
	a.conns.Wait()
}

func (a *Server) serve() {
	for {
		c, err := a.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				a.logger.Info("API server stopped")
				return
			}
			a.logger.Warn("API accept error", "error", err)
			return
		}
		a.conns.Add(1)
		go func() {
			defer a.conns.Done()
			a.handleConn(c)
		}()
	}
}

func (a *Server) writeError(w io.Writer, err error) {
	problemJSON, _ := json.Marshal(WrapError(err))
	a.write(w, string(problemJSON))
}

func (a *Server) write(w io.Writer, line string) {
	out := []byte(line + "\n")
	a.wire.Log(false, out)
	_, _ = w.Write(out)
}

func isLoopback(addr net.Addr) bool {
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return false
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// authenticate runs the optional handshake and returns the connection and
// reader the request must be read from.
func (a *Server) authenticate(conn net.Conn, r *bufio.Reader, logger *slog.Logger) (net.Conn, *bufio.Reader, error) {
	isAuth, err := auth.IsAuthHandshake(r)
	if err != nil {
		return nil, nil, err
	}
	if !isAuth {
		if a.key != nil && (a.config.RequireLocalhostAuth || !isLoopback(conn.RemoteAddr())) {
			_, _ = readRequest(r, a.config.MaxPayloadBytes)
			return nil, nil, ErrUnauthorized("authentication required")
		}
		return conn, r, nil
	}
	if a.key == nil {
		_, _ = r.Discard(auth.ClientHelloSize)
		return nil, nil, ErrBadRequest("authentication is not enabled on this server")
	}
	clientNonce, serverNonce, err := auth.ServerHandshake(r, conn, a.key)
	if err != nil {
		return nil, nil, err
	}
	secure, err := auth.WrapConn(conn, auth.DeriveSessionKey(a.key, serverNonce, clientNonce), auth.RoleServer)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("api client authenticated")
	return secure, bufio.NewReader(secure), nil
}

func readRequest(r *bufio.Reader, limit int) (string, error) {
	var buf []byte
	for {
		chunk, err := r.ReadSlice('\x00')
		buf = append(buf, chunk...)
		if limit > 0 && len(buf) > limit+1 {
			return "", errRequestTooLarge
		}
		if err == nil {
			return string(buf[:len(buf)-1]), nil
		}
		if !errors.Is(err, bufio.ErrBufferFull) {
			return "", err
		}
	}
}

// bufferedConn hands a stream handler whatever the request reader already
// pulled off the socket before falling back to the connection itself.
type bufferedConn struct {
	net.Conn
	r *bufio.Reader
}

func (c bufferedConn) Read(p []byte) (int, error) { return c.r.Read(p) }

func (a *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	connCtx, connCancel := context.WithCancel(context.Background())
	defer connCancel()

	connLogger := a.logger.With("remote", conn.RemoteAddr().String())
	if a.config.ConnectionTimeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(a.config.ConnectionTimeout))
	}

	rc, r, err := a.authenticate(conn, bufio.NewReader(conn), connLogger)
	if err != nil {
		if errors.Is(err, io.EOF) {
			connLogger.Debug("api client closed before request")
			return
		}
		connLogger.Warn("api auth failed", "error", err)
		a.writeError(conn, err)
		return
	}
	w := rc

	reqData, err := readRequest(r, a.config.MaxPayloadBytes)
	if err != nil {
		switch {
		case errors.Is(err, errRequestTooLarge):
			connLogger.Warn("api request too large", "limit", a.config.MaxPayloadBytes)
			a.writeError(w, ErrPayloadTooLarge(fmt.Sprintf("request exceeds %d bytes", a.config.MaxPayloadBytes)))
		case errors.Is(err, io.EOF):
			connLogger.Error("api incomplete request (no null terminator)")
		default:
			connLogger.Error("read api data", "error", err)
		}
		return
	}
	a.wire.Log(true, []byte(reqData))

	if reqData == "" {
		connLogger.Error("api empty command")
		a.writeError(w, ErrBadRequest("empty request"))
		return
	}

	var path, payload string
	if loc := pathSplit.FindStringIndex(reqData); loc != nil {
		path = reqData[:loc[0]]
		payload = reqData[loc[1]:]
	} else {
		path = reqData
	}
	if path == "" {
		connLogger.Error("api empty path")
		a.writeError(w, ErrBadRequest("empty path"))
		return
	}

	path = strings.ToLower(path)
	connLogger.Info("api cmd", "path", path)

	if h, params := a.router.Match(path); h != nil {
		req := &Request{Ctx: connCtx, Params: params, Payload: payload}
		res := &Response{}
		if err := h(req, res, connLogger); err != nil {
			connLogger.Error("api handler error", "path", path, "error", err)
			a.writeError(w, err)
			return
		}
		connLogger.Debug("api handler success", "path", path)
		a.write(w, res.JSON)
		return
	}

	if sh, params := a.router.MatchStream(path); sh != nil {
		connLogger.Info("api stream begin", "path", path)
		_ = conn.SetDeadline(time.Time{})
		req := &Request{Ctx: connCtx, Params: params, Payload: payload}
		if err := sh(bufferedConn{Conn: rc, r: r}, req, connLogger); err != nil {
			connLogger.Error("api stream handler error", "path", path, "error", err)
		}
		connLogger.Info("api stream end", "path", path)
		return
	}

	connLogger.Error("api unknown path", "path", path)
	a.writeError(w, ErrNotFound(fmt.Sprintf("unknown path: %s", path)))
}
