package cmd

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/Alia5/keyswap/keymap"
)

// Layouts lists the configured layouts, or every built-in one.
type Layouts struct {
	Query    `embed:""`
	Builtins bool `help:"List every built-in layout instead of the configured set"`
	JSON     bool `help:"Print the raw JSON response"`
}

func (c *Layouts) Run(logger *slog.Logger, stdio *IO) error {
	if c.Builtins {
		c.Remote = ""
		c.Layouts = keymap.BuiltinNames()
		c.LayoutFiles = nil
	}
	b, err := c.backend(logger)
	if err != nil {
		return err
	}
	res, err := b.Layouts(context.Background())
	if err != nil {
		return err
	}
	if c.JSON {
		return writeJSON(stdio.Out, res)
	}
	rows := make([][]string, 0, len(res.Layouts))
	for _, l := range res.Layouts {
		rows = append(rows, []string{l.Name, l.DisplayName, strconv.Itoa(l.Keys)})
	}
	return writeTable(stdio.Out, []string{"NAME", "DISPLAY NAME", "KEYS"}, rows)
}
