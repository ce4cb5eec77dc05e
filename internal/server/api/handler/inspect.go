package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/Alia5/keyswap/apitypes"
	"github.com/Alia5/keyswap/inspector"
	"github.com/Alia5/keyswap/internal/server/api"
	"github.com/Alia5/keyswap/keymap"
)

func writeInspection(res *api.Response, r inspector.Result) error {
	b, err := json.Marshal(apitypes.FromResult(r))
	if err != nil {
		return err
	}
	res.JSON = string(b)
	return nil
}

// Inspect looks up the single character sent as payload.
func Inspect(src api.Source) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		if req.Payload == "" {
			return api.ErrBadRequest("missing character")
		}
		r, size := utf8.DecodeRuneInString(req.Payload)
		if r == utf8.RuneError && size <= 1 {
			return api.ErrBadRequest("payload is not valid UTF-8")
		}
		if size != len(req.Payload) {
			return api.ErrBadRequest("expected exactly one character")
		}
		result, ok := src.Inspector().Inspect(r)
		if !ok {
			return api.ErrNotFound(fmt.Sprintf("no layout defines %q", r))
		}
		return writeInspection(res, result)
	}
}

// InspectCode looks up a physical key by its code name, e.g. "KeyQ".
func InspectCode(src api.Source) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		code, ok := keymap.ParseCode(req.Payload)
		if !ok {
			return api.ErrBadRequest(fmt.Sprintf("unknown key code %q", req.Payload))
		}
		result, ok := src.Inspector().InspectByCode(code)
		if !ok {
			return api.ErrNotFound(fmt.Sprintf("no layout maps %s", code))
		}
		return writeInspection(res, result)
	}
}

// InspectKeyCode looks up a physical key by its legacy numeric key code.
func InspectKeyCode(src api.Source) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		n, err := apitypes.ParseNumber(req.Payload, 16)
		if err != nil {
			return api.ErrBadRequest(err.Error())
		}
		result, ok := src.Inspector().InspectByKeyCode(int(n))
		if !ok {
			return api.ErrNotFound(fmt.Sprintf("no layout maps key code %d", n))
		}
		return writeInspection(res, result)
	}
}

// InspectHID looks up a physical key by its USB HID usage id.
func InspectHID(src api.Source) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		n, err := apitypes.ParseNumber(req.Payload, 8)
		if err != nil {
			return api.ErrBadRequest(err.Error())
		}
		result, ok := src.Inspector().InspectByHID(uint8(n))
		if !ok {
			return api.ErrNotFound(fmt.Sprintf("no layout maps HID usage 0x%02x", n))
		}
		return writeInspection(res, result)
	}
}
