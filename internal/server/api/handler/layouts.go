package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/Alia5/keyswap/apitypes"
	"github.com/Alia5/keyswap/internal/server/api"
)

// Layouts lists the configured layouts in first-match order.
func Layouts(src api.Source) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		b, err := json.Marshal(apitypes.FromInspector(src.Inspector()))
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}
