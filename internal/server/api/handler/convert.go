package handler

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/Alia5/keyswap/apitypes"
	"github.com/Alia5/keyswap/inspector"
	"github.com/Alia5/keyswap/internal/server/api"
)

// Convert retypes the payload as if it had been typed under {layout}.
func Convert(src api.Source) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		layout := req.Params["layout"]
		text, err := src.Inspector().ConvertString(req.Payload, layout)
		if err != nil {
			return err
		}
		logger.Debug("converted", "layout", layout, "chars", len([]rune(req.Payload)))
		b, err := json.Marshal(apitypes.ConvertResponse{Layout: layout, Text: text})
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}

// Variants returns every layout reading of the payload that changes it, plus
// the one that changes it most.
func Variants(src api.Source) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		insp := src.Inspector()
		variants := insp.ConvertToAllLayouts(req.Payload)
		var out apitypes.VariantsResponse
		if best, ok := inspector.BestOf(req.Payload, variants); ok {
			out = apitypes.FromVariants(variants, &best)
		} else {
			out = apitypes.FromVariants(variants, nil)
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}

// Analyze reports how much of the payload the configured layouts know. An
// optional {limit} caps the per-character details.
func Analyze(src api.Source) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		limit := 0
		if s, ok := req.Params["limit"]; ok {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				return api.ErrBadRequest(fmt.Sprintf("invalid limit %q", s))
			}
			limit = n
		}
		b, err := json.Marshal(apitypes.FromAnalysis(src.Inspector().Analyze(req.Payload, limit)))
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}

// ConvertStream converts newline separated text until the client closes the
// connection. The first line sent back is a header: a ConvertResponse naming
// the layout, or a problem line for an unknown layout after which the stream
// ends. After that each input line yields exactly one output line.
func ConvertStream(src api.Source) api.StreamHandlerFunc {
	return func(conn net.Conn, req *api.Request, logger *slog.Logger) error {
		layout := req.Params["layout"]
		var header any = apitypes.ConvertResponse{Layout: layout}
		if !src.Inspector().Has(layout) {
			header = api.WrapError(fmt.Errorf("%w: %q", inspector.ErrUnknownLayout, layout))
		}
		b, err := json.Marshal(header)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(conn, "%s\n", b); err != nil {
			return err
		}
		if _, failed := header.(*apitypes.ApiError); failed {
			return nil
		}

		sc := bufio.NewScanner(conn)
		sc.Buffer(make([]byte, 0, 4096), 1<<20)
		w := bufio.NewWriter(conn)
		lines := 0
		for sc.Scan() {
			// layouts may be reloaded mid-stream
			text, err := src.Inspector().ConvertString(sc.Text(), layout)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w, text); err != nil {
				return err
			}
			if err := w.Flush(); err != nil {
				return err
			}
			lines++
		}
		logger.Debug("stream closed", "layout", layout, "lines", lines)
		return sc.Err()
	}
}
