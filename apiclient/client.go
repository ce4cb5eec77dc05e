package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/Alia5/keyswap/apitypes"
)

// Client provides a high-level interface to the keyswap API, handling request
// formatting, response parsing, and error handling.
type Client struct{ transport *Transport }

// New constructs a client for the server at addr (host:port).
func New(addr string) *Client { return &Client{transport: NewTransport(addr)} }

// NewWithPassword constructs a client that authenticates with the given password.
func NewWithPassword(addr, password string) *Client {
	return &Client{transport: NewTransportWithPassword(addr, password)}
}

// NewWithConfig constructs a client with custom transport timeouts.
func NewWithConfig(addr string, cfg *Config) *Client {
	return &Client{transport: NewTransportWithConfig(addr, cfg)}
}

// WithTransport constructs a Client using a custom Transport, mostly for tests.
func WithTransport(t *Transport) *Client { return &Client{transport: t} }

// Ping returns the identity and version of the server.
func (c *Client) Ping() (*apitypes.PingResponse, error) {
	return c.PingCtx(context.Background())
}

// PingCtx is the context-aware version of Ping.
func (c *Client) PingCtx(ctx context.Context) (*apitypes.PingResponse, error) {
	return call[apitypes.PingResponse](ctx, c, "ping", nil, nil)
}

// Layouts lists the layouts the server converts between, in first-match order.
func (c *Client) Layouts() (*apitypes.LayoutsResponse, error) {
	return c.LayoutsCtx(context.Background())
}

func (c *Client) LayoutsCtx(ctx context.Context) (*apitypes.LayoutsResponse, error) {
	return call[apitypes.LayoutsResponse](ctx, c, "layouts", nil, nil)
}

// Inspect asks which physical key types r and what it types in every layout.
// A character no layout defines yields a 404 *apitypes.ApiError.
func (c *Client) Inspect(r rune) (*apitypes.InspectResponse, error) {
	return c.InspectCtx(context.Background(), r)
}

func (c *Client) InspectCtx(ctx context.Context, r rune) (*apitypes.InspectResponse, error) {
	return call[apitypes.InspectResponse](ctx, c, "inspect", string(r), nil)
}

// InspectCode inspects the physical key with the given code name, e.g. "KeyQ".
func (c *Client) InspectCode(code string) (*apitypes.InspectResponse, error) {
	return c.InspectCodeCtx(context.Background(), code)
}

func (c *Client) InspectCodeCtx(ctx context.Context, code string) (*apitypes.InspectResponse, error) {
	return call[apitypes.InspectResponse](ctx, c, "inspect/code", code, nil)
}

// InspectKeyCode inspects the physical key with the given legacy key code.
func (c *Client) InspectKeyCode(keyCode int) (*apitypes.InspectResponse, error) {
	return c.InspectKeyCodeCtx(context.Background(), keyCode)
}

func (c *Client) InspectKeyCodeCtx(ctx context.Context, keyCode int) (*apitypes.InspectResponse, error) {
	return call[apitypes.InspectResponse](ctx, c, "inspect/keycode", strconv.Itoa(keyCode), nil)
}

// InspectHID inspects the physical key with the given USB HID usage id.
func (c *Client) InspectHID(usage uint8) (*apitypes.InspectResponse, error) {
	return c.InspectHIDCtx(context.Background(), usage)
}

func (c *Client) InspectHIDCtx(ctx context.Context, usage uint8) (*apitypes.InspectResponse, error) {
	return call[apitypes.InspectResponse](ctx, c, "inspect/hid", fmt.Sprintf("0x%02x", usage), nil)
}

// Convert retypes text as if it had been typed under layout.
func (c *Client) Convert(layout, text string) (*apitypes.ConvertResponse, error) {
	return c.ConvertCtx(context.Background(), layout, text)
}

func (c *Client) ConvertCtx(ctx context.Context, layout, text string) (*apitypes.ConvertResponse, error) {
	return call[apitypes.ConvertResponse](ctx, c, "convert/{layout}", text, map[string]string{"layout": layout})
}

// Variants returns every layout reading of text that changes it.
func (c *Client) Variants(text string) (*apitypes.VariantsResponse, error) {
	return c.VariantsCtx(context.Background(), text)
}

func (c *Client) VariantsCtx(ctx context.Context, text string) (*apitypes.VariantsResponse, error) {
	return call[apitypes.VariantsResponse](ctx, c, "variants", text, nil)
}

// Analyze reports how convertible text is. limit <= 0 uses the server default.
func (c *Client) Analyze(text string, limit int) (*apitypes.AnalyzeResponse, error) {
	return c.AnalyzeCtx(context.Background(), text, limit)
}

func (c *Client) AnalyzeCtx(ctx context.Context, text string, limit int) (*apitypes.AnalyzeResponse, error) {
	if limit <= 0 {
		return call[apitypes.AnalyzeResponse](ctx, c, "analyze", text, nil)
	}
	return call[apitypes.AnalyzeResponse](ctx, c, "analyze/{limit}", text, map[string]string{"limit": strconv.Itoa(limit)})
}

func call[T any](ctx context.Context, c *Client, path string, payload any, params map[string]string) (*T, error) {
	raw, err := c.transport.DoCtx(ctx, path, payload, params)
	if err != nil {
		return nil, err
	}
	return parse[T](raw)
}

func parse[T any](data string) (*T, error) {
	if data == "" {
		return nil, errors.New("empty response")
	}
	var problem apitypes.ApiError
	if err := json.Unmarshal([]byte(data), &problem); err == nil && (problem.Status != 0 || problem.Title != "") {
		return nil, &problem
	}
	var out T
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &out, nil
}
