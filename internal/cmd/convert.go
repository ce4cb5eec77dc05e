package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Convert retypes text as if it had been typed with another layout active.
type Convert struct {
	Query  `embed:""`
	Layout string   `arg:"" help:"Target layout, e.g. ru"`
	Text   []string `arg:"" optional:"" help:"Text to convert; read from stdin when omitted"`
}

func (c *Convert) Run(logger *slog.Logger, stdio *IO) error {
	text, piped, err := c.input(c.Text, stdio)
	if err != nil {
		return err
	}
	b, err := c.backend(logger)
	if err != nil {
		return err
	}
	res, err := b.Convert(context.Background(), strings.ToLower(c.Layout), text)
	if err != nil {
		return err
	}
	logger.Debug("converted", "layout", res.Layout, "chars", len([]rune(text)))
	if piped {
		_, err = fmt.Fprint(stdio.Out, res.Text)
	} else {
		_, err = fmt.Fprintln(stdio.Out, res.Text)
	}
	return err
}

// Variants prints the text as every configured layout would read it.
type Variants struct {
	Query `embed:""`
	Text  []string `arg:"" optional:"" help:"Text to convert; read from stdin when omitted"`
	Best  bool     `help:"Only print the variant that differs most from the input"`
	JSON  bool     `help:"Print the raw JSON response"`
}

func (c *Variants) Run(logger *slog.Logger, stdio *IO) error {
	text, _, err := c.input(c.Text, stdio)
	if err != nil {
		return err
	}
	b, err := c.backend(logger)
	if err != nil {
		return err
	}
	res, err := b.Variants(context.Background(), text)
	if err != nil {
		return err
	}
	switch {
	case c.JSON:
		return writeJSON(stdio.Out, res)
	case c.Best:
		if res.Best == nil {
			return fmt.Errorf("no layout changes %q", text)
		}
		_, err = fmt.Fprintln(stdio.Out, res.Best.Text)
		return err
	}
	rows := make([][]string, 0, len(res.Variants))
	for _, v := range res.Variants {
		mark := ""
		if res.Best != nil && res.Best.Layout == v.Layout {
			mark = "*"
		}
		rows = append(rows, []string{mark, v.Layout, v.Text})
	}
	return writeTable(stdio.Out, []string{"", "LAYOUT", "TEXT"}, rows)
}
