package apitypes

import (
	"github.com/Alia5/keyswap/inspector"
	"github.com/Alia5/keyswap/keymap"
)

func FromKeyDefinition(d keymap.KeyDefinition) KeyDefinition {
	return KeyDefinition{Key: string(d.Key), Code: string(d.Code), KeyCode: d.KeyCode, ShiftKey: d.ShiftKey}
}

// FromResult converts an inspection. Layouts without a character at the
// position get a null char.
func FromResult(r inspector.Result) InspectResponse {
	out := InspectResponse{
		Char:          string(r.Char),
		Layout:        r.Layout,
		KeyDefinition: FromKeyDefinition(r.Definition),
		Layouts:       make([]LayoutChar, 0, len(r.Positions)),
	}
	for _, p := range r.Positions {
		lc := LayoutChar{Layout: p.Layout}
		if p.Found {
			s := string(p.Char)
			lc.Char = &s
		}
		out.Layouts = append(out.Layouts, lc)
	}
	return out
}

func FromVariants(variants []inspector.Variant, best *inspector.Variant) VariantsResponse {
	out := VariantsResponse{Variants: make([]Variant, 0, len(variants))}
	for _, v := range variants {
		out.Variants = append(out.Variants, Variant{Layout: v.Layout, Text: v.Text})
	}
	if best != nil {
		out.Best = &Variant{Layout: best.Layout, Text: best.Text}
	}
	return out
}

func FromAnalysis(a inspector.Analysis) AnalyzeResponse {
	out := AnalyzeResponse{
		Length:      a.Length,
		Convertible: a.Convertible,
		Omitted:     a.Omitted,
		Characters:  make([]CharDetail, 0, len(a.Details)),
	}
	for _, d := range a.Details {
		cd := CharDetail{Index: d.Index, Char: string(d.Char)}
		if d.Found {
			res := FromResult(d.Result)
			cd.Inspection = &res
		}
		out.Characters = append(out.Characters, cd)
	}
	return out
}

func FromInspector(insp *inspector.Inspector) LayoutsResponse {
	names := insp.Layouts()
	out := LayoutsResponse{Layouts: make([]Layout, 0, len(names))}
	for _, n := range names {
		out.Layouts = append(out.Layouts, Layout{Name: n, DisplayName: insp.DisplayName(n), Keys: insp.Size(n)})
	}
	return out
}
