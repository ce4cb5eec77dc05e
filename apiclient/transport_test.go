package apiclient_test

import (
	"bufio"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Alia5/keyswap/apiclient"
	"github.com/Alia5/keyswap/apitypes"
	"github.com/Alia5/keyswap/internal/server/api/auth"
)

func startTestServer(t *testing.T, response string) (addr string, gotReqLine *string, closeFn func()) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)
	got := new(string)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		line, _ := bufio.NewReader(conn).ReadString('\x00')
		*got = line
		if response != "" {
			_, _ = conn.Write([]byte(response))
		}
	}()
	return ln.Addr().String(), got, func() { _ = ln.Close() }
}

func TestTransportPayloadEncoding(t *testing.T) {
	type S struct {
		A int    `json:"a"`
		B string `json:"b"`
	}
	cases := []struct {
		name         string
		path         string
		params       map[string]string
		payload      any
		expectedLine string
	}{
		{name: "nil payload", path: "layouts", expectedLine: "layouts\x00"},
		{name: "empty string payload", path: "layouts", payload: "", expectedLine: "layouts\x00"},
		{name: "bytes payload", path: "inspect", payload: []byte("q"), expectedLine: "inspect q\x00"},
		{name: "leading space kept", path: "inspect", payload: " ", expectedLine: "inspect  \x00"},
		{name: "multi-line text", path: "variants", payload: "ghbdtn\nvbh", expectedLine: "variants ghbdtn\nvbh\x00"},
		{
			name:         "path params are escaped and lowercased",
			path:         "convert/{layout}",
			params:       map[string]string{"layout": "RU/x"},
			payload:      "Ghbdtn",
			expectedLine: "convert/ru%2fx Ghbdtn\x00",
		},
		{name: "struct payload", path: "echo", payload: S{A: 7, B: "zzz"}, expectedLine: `echo {"a":7,"b":"zzz"}` + "\x00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			addr, got, closeFn := startTestServer(t, "ok\n")
			defer closeFn()
			out, err := apiclient.NewTransport(addr).Do(tc.path, tc.payload, tc.params)
			assert.NoError(t, err)
			assert.Equal(t, "ok", out)
			assert.Equal(t, tc.expectedLine, *got)
		})
	}
}

func TestTransportRejectsNul(t *testing.T) {
	_, err := apiclient.NewTransport("127.0.0.1:9").Do("convert/{layout}", "a\x00b", map[string]string{"layout": "ru"})
	assert.ErrorIs(t, err, apiclient.ErrNulInPayload)
}

func TestTransportMultiLineResponse(t *testing.T) {
	addr, _, closeFn := startTestServer(t, "{\n  \"a\": 1\n}\n")
	defer closeFn()
	out, err := apiclient.NewTransport(addr).Do("echo", nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", out)
}

func TestEncryptedTransport(t *testing.T) {
	echoHandler := func(t *testing.T, conn net.Conn) {
		defer conn.Close()
		r := bufio.NewReader(conn)

		key, err := auth.DeriveKey("test123")
		assert.NoError(t, err)

		clientNonce, serverNonce, err := auth.ServerHandshake(r, conn, key)
		if err != nil {
			var apiErr apitypes.ApiError
			if errors.As(err, &apiErr) {
				b, _ := json.Marshal(apiErr)
				_, _ = conn.Write(append(b, '\n'))
			}
			return
		}

		secureConn, err := auth.WrapConn(conn, auth.DeriveSessionKey(key, serverNonce, clientNonce), auth.RoleServer)
		assert.NoError(t, err)

		line, err := bufio.NewReader(secureConn).ReadString('\x00')
		if err != nil {
			return
		}
		_, err = secureConn.Write([]byte(line))
		assert.NoError(t, err)
	}

	cases := []struct {
		name          string
		password      string
		serverHandler func(t *testing.T, conn net.Conn)
		line          string
		wantErr       bool
		expectedErr   string
	}{
		{name: "success", password: "test123", serverHandler: echoHandler, line: "convert/ru ghbdtn"},
		{name: "wrong password", password: "wrongpass", serverHandler: echoHandler, wantErr: true, expectedErr: "401 Unauthorized: invalid password"},
		{
			name:     "bad handshake response",
			password: "test123",
			serverHandler: func(t *testing.T, conn net.Conn) {
				defer conn.Close()
				_, _ = conn.Write([]byte("NO\x00" + strings.Repeat("x", 32)))
			},
			wantErr:     true,
			expectedErr: "invalid handshake response",
		},
		{
			name:          "server closes early",
			password:      "test123",
			serverHandler: func(t *testing.T, conn net.Conn) { _ = conn.Close() },
			wantErr:       true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ln, err := net.Listen("tcp", "127.0.0.1:0")
			assert.NoError(t, err)
			defer ln.Close()

			go func() {
				conn, err := ln.Accept()
				if err != nil {
					return
				}
				tc.serverHandler(t, conn)
			}()

			client := apiclient.NewTransportWithPassword(ln.Addr().String(), tc.password)
			path, payload, _ := strings.Cut(tc.line, " ")
			out, err := client.Do(path, payload, nil)
			if tc.wantErr {
				assert.Error(t, err)
				if tc.expectedErr != "" {
					assert.ErrorContains(t, err, tc.expectedErr)
				}
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.line, strings.TrimSuffix(out, "\x00"))
		})
	}
}
