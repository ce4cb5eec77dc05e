package handler

import "github.com/Alia5/keyswap/internal/server/api"

// RegisterAll wires every keyswap route into r.
func RegisterAll(r *api.Router, src api.Source, version string) {
	r.Register("ping", Ping(version))
	r.Register("layouts", Layouts(src))
	r.Register("inspect", Inspect(src))
	r.Register("inspect/code", InspectCode(src))
	r.Register("inspect/keycode", InspectKeyCode(src))
	r.Register("inspect/hid", InspectHID(src))
	r.Register("convert/{layout}", Convert(src))
	r.Register("variants", Variants(src))
	r.Register("analyze", Analyze(src))
	r.Register("analyze/{limit}", Analyze(src))
	r.RegisterStream("convert/{layout}/stream", ConvertStream(src))
}
