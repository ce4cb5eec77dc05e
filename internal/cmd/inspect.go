package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Alia5/keyswap/apitypes"
)

// Inspect shows which physical key produces a character and what every
// layout types there.
type Inspect struct {
	Query   `embed:""`
	Chars   []string `arg:"" optional:"" help:"Characters to inspect; read from stdin when omitted"`
	Code    string   `help:"Inspect the key with this code instead, e.g. KeyQ" xor:"by"`
	KeyCode int      `help:"Inspect the key with this legacy key code instead" xor:"by"`
	JSON    bool     `help:"Print one JSON object per character"`
}

func (c *Inspect) Run(logger *slog.Logger, stdio *IO) error {
	b, err := c.backend(logger)
	if err != nil {
		return err
	}
	ctx := context.Background()

	var results []*apitypes.InspectResponse
	var missing []string
	switch {
	case c.Code != "":
		res, err := b.InspectCode(ctx, c.Code)
		if err != nil {
			return err
		}
		results = append(results, res)
	case c.KeyCode != 0:
		res, err := b.InspectKeyCode(ctx, c.KeyCode)
		if err != nil {
			return err
		}
		results = append(results, res)
	default:
		text, _, err := c.input(c.Chars, stdio)
		if err != nil {
			return err
		}
		seen := map[rune]bool{}
		for _, r := range text {
			if seen[r] || strings.ContainsRune(" \t\r\n", r) {
				continue
			}
			seen[r] = true
			res, err := b.Inspect(ctx, r)
			if errors.Is(err, errNotFound) {
				missing = append(missing, string(r))
				continue
			}
			if err != nil {
				return err
			}
			results = append(results, res)
		}
	}

	if c.JSON {
		for _, res := range results {
			if err := writeJSON(stdio.Out, res); err != nil {
				return err
			}
		}
	} else if len(results) > 0 {
		if err := writeInspections(stdio, results); err != nil {
			return err
		}
	}
	if len(missing) > 0 {
		logger.Warn("characters not found in any layout", "chars", strings.Join(missing, ""))
	}
	if len(results) == 0 {
		return fmt.Errorf("nothing to show: %w", errNotFound)
	}
	return nil
}

func writeInspections(stdio *IO, results []*apitypes.InspectResponse) error {
	header := []string{"CHAR", "LAYOUT", "KEY"}
	for _, lc := range results[0].Layouts {
		header = append(header, strings.ToUpper(lc.Layout))
	}
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		key := res.KeyDefinition.Code
		if res.KeyDefinition.ShiftKey {
			key = "Shift+" + key
		}
		row := []string{printable(res.Char), res.Layout, key}
		for _, lc := range res.Layouts {
			cell := ""
			if lc.Char != nil {
				cell = *lc.Char
			}
			row = append(row, printable(cell))
		}
		rows = append(rows, row)
	}
	return writeTable(stdio.Out, header, rows)
}
