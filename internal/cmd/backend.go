package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Alia5/keyswap/apiclient"
	"github.com/Alia5/keyswap/apitypes"
	"github.com/Alia5/keyswap/inspector"
	"github.com/Alia5/keyswap/internal/log"
	"github.com/Alia5/keyswap/keymap"
)

const traceLevel = log.LevelTrace

var errNotFound = errors.New("not found")

// backend answers queries either from a local inspector or a remote server.
// Both speak the wire types so commands print one way.
type backend interface {
	Layouts(ctx context.Context) (*apitypes.LayoutsResponse, error)
	Convert(ctx context.Context, layout, text string) (*apitypes.ConvertResponse, error)
	Variants(ctx context.Context, text string) (*apitypes.VariantsResponse, error)
	Inspect(ctx context.Context, r rune) (*apitypes.InspectResponse, error)
	InspectCode(ctx context.Context, code string) (*apitypes.InspectResponse, error)
	InspectKeyCode(ctx context.Context, keyCode int) (*apitypes.InspectResponse, error)
	Analyze(ctx context.Context, text string, limit int) (*apitypes.AnalyzeResponse, error)
}

func traceLookups(logger *slog.Logger) func(rune, bool) {
	return func(r rune, found bool) {
		logger.Log(context.Background(), traceLevel, "lookup", "char", string(r), "found", found)
	}
}

type localBackend struct{ insp *inspector.Inspector }

func (b localBackend) Layouts(context.Context) (*apitypes.LayoutsResponse, error) {
	out := apitypes.FromInspector(b.insp)
	return &out, nil
}

func (b localBackend) Convert(_ context.Context, layout, text string) (*apitypes.ConvertResponse, error) {
	out, err := b.insp.ConvertString(text, layout)
	if err != nil {
		return nil, err
	}
	return &apitypes.ConvertResponse{Layout: layout, Text: out}, nil
}

func (b localBackend) Variants(_ context.Context, text string) (*apitypes.VariantsResponse, error) {
	variants := b.insp.ConvertToAllLayouts(text)
	var out apitypes.VariantsResponse
	if best, ok := inspector.BestOf(text, variants); ok {
		out = apitypes.FromVariants(variants, &best)
	} else {
		out = apitypes.FromVariants(variants, nil)
	}
	return &out, nil
}

func (b localBackend) inspection(res inspector.Result, ok bool, what string) (*apitypes.InspectResponse, error) {
	if !ok {
		return nil, fmt.Errorf("%s: %w", what, errNotFound)
	}
	out := apitypes.FromResult(res)
	return &out, nil
}

func (b localBackend) Inspect(_ context.Context, r rune) (*apitypes.InspectResponse, error) {
	res, ok := b.insp.Inspect(r)
	return b.inspection(res, ok, fmt.Sprintf("%q", r))
}

func (b localBackend) InspectCode(_ context.Context, code string) (*apitypes.InspectResponse, error) {
	c, ok := keymap.ParseCode(code)
	if !ok {
		return nil, fmt.Errorf("unknown key code %q", code)
	}
	res, ok := b.insp.InspectByCode(c)
	return b.inspection(res, ok, string(c))
}

func (b localBackend) InspectKeyCode(_ context.Context, keyCode int) (*apitypes.InspectResponse, error) {
	res, ok := b.insp.InspectByKeyCode(keyCode)
	return b.inspection(res, ok, fmt.Sprintf("key code %d", keyCode))
}

func (b localBackend) Analyze(_ context.Context, text string, limit int) (*apitypes.AnalyzeResponse, error) {
	out := apitypes.FromAnalysis(b.insp.Analyze(text, limit))
	return &out, nil
}

type remoteBackend struct{ c *apiclient.Client }

// notFound folds the server's 404 for lookups into errNotFound.
func notFound(res *apitypes.InspectResponse, err error) (*apitypes.InspectResponse, error) {
	var ae *apitypes.ApiError
	if errors.As(err, &ae) && ae.Status == 404 {
		return nil, fmt.Errorf("%s: %w", ae.Detail, errNotFound)
	}
	return res, err
}

func (b remoteBackend) Layouts(ctx context.Context) (*apitypes.LayoutsResponse, error) {
	return b.c.LayoutsCtx(ctx)
}

func (b remoteBackend) Convert(ctx context.Context, layout, text string) (*apitypes.ConvertResponse, error) {
	return b.c.ConvertCtx(ctx, layout, text)
}

func (b remoteBackend) Variants(ctx context.Context, text string) (*apitypes.VariantsResponse, error) {
	return b.c.VariantsCtx(ctx, text)
}

func (b remoteBackend) Inspect(ctx context.Context, r rune) (*apitypes.InspectResponse, error) {
	return notFound(b.c.InspectCtx(ctx, r))
}

func (b remoteBackend) InspectCode(ctx context.Context, code string) (*apitypes.InspectResponse, error) {
	return notFound(b.c.InspectCodeCtx(ctx, code))
}

func (b remoteBackend) InspectKeyCode(ctx context.Context, keyCode int) (*apitypes.InspectResponse, error) {
	return notFound(b.c.InspectKeyCodeCtx(ctx, keyCode))
}

func (b remoteBackend) Analyze(ctx context.Context, text string, limit int) (*apitypes.AnalyzeResponse, error) {
	return b.c.AnalyzeCtx(ctx, text, limit)
}
