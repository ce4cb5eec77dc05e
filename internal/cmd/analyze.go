package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/Alia5/keyswap/inspector"
)

// Analyze reports how much of a text the configured layouts can convert.
type Analyze struct {
	Query `embed:""`
	Text  []string `arg:"" optional:"" help:"Text to analyze; read from stdin when omitted"`
	Limit int      `help:"Maximum number of characters to detail" default:"20"`
	JSON  bool     `help:"Print the raw JSON response"`
}

func (c *Analyze) Run(logger *slog.Logger, stdio *IO) error {
	if c.Limit <= 0 {
		c.Limit = inspector.DefaultAnalyzeLimit
	}
	text, _, err := c.input(c.Text, stdio)
	if err != nil {
		return err
	}
	b, err := c.backend(logger)
	if err != nil {
		return err
	}
	res, err := b.Analyze(context.Background(), text, c.Limit)
	if err != nil {
		return err
	}
	if c.JSON {
		return writeJSON(stdio.Out, res)
	}

	if _, err := fmt.Fprintf(stdio.Out, "%d of %d characters convertible\n", res.Convertible, res.Length); err != nil {
		return err
	}
	rows := make([][]string, 0, len(res.Characters))
	for _, d := range res.Characters {
		layout, key := "-", "-"
		if d.Inspection != nil {
			layout, key = d.Inspection.Layout, d.Inspection.KeyDefinition.Code
		}
		rows = append(rows, []string{strconv.Itoa(d.Index), printable(d.Char), layout, key})
	}
	if len(rows) > 0 {
		if err := writeTable(stdio.Out, []string{"#", "CHAR", "LAYOUT", "KEY"}, rows); err != nil {
			return err
		}
	}
	if res.Omitted > 0 {
		_, err = fmt.Fprintf(stdio.Out, "... %d more\n", res.Omitted)
	}
	return err
}
