package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
	"golang.org/x/text/unicode/norm"

	"github.com/Alia5/keyswap/apiclient"
	"github.com/Alia5/keyswap/inspector"
	"github.com/Alia5/keyswap/internal/layoutfile"
)

// Version is stamped at build time with -ldflags "-X".
var Version = "dev"

var errNoInput = errors.New("no text given: pass it as arguments or pipe it on stdin")

// IO carries the streams commands read from and print to.
type IO struct {
	In  io.Reader
	Out io.Writer
	// Terminal is true when In is an interactive terminal, in which case
	// commands never block waiting for it.
	Terminal bool
}

// StdIO wires commands to the process streams.
func StdIO() *IO {
	return &IO{In: os.Stdin, Out: os.Stdout, Terminal: term.IsTerminal(int(os.Stdin.Fd()))}
}

// LayoutSet selects which layouts are loaded and in which first-match order.
type LayoutSet struct {
	Layouts     []string `help:"Layouts in first-match order" default:"en,ru,he" sep:"," env:"KEYSWAP_LAYOUTS"`
	LayoutFiles []string `name:"layout-file" help:"Extra layout definition file (json, yaml or toml); repeatable" type:"existingfile" env:"KEYSWAP_LAYOUT_FILES"`
}

// Inspector builds an inspector from the selected layouts.
func (l LayoutSet) Inspector(opts ...inspector.Option) (*inspector.Inspector, error) {
	layouts, err := layoutfile.Resolve(l.Layouts, l.LayoutFiles)
	if err != nil {
		return nil, err
	}
	return inspector.New(layouts, opts...)
}

// Query holds the options shared by the commands that look text up.
type Query struct {
	LayoutSet `embed:""`
	Remote    string `help:"Query the keyswap server at this address instead of converting locally" env:"KEYSWAP_REMOTE"`
	Password  string `help:"Password for the remote server" env:"KEYSWAP_PASSWORD"`
	Normalize bool   `help:"Apply Unicode NFC normalization to input" default:"true" negatable:""`
}

func (q *Query) backend(logger *slog.Logger) (backend, error) {
	if q.Remote != "" {
		logger.Debug("using remote server", "addr", q.Remote)
		if q.Password != "" {
			return remoteBackend{c: apiclient.NewWithPassword(q.Remote, q.Password)}, nil
		}
		return remoteBackend{c: apiclient.New(q.Remote)}, nil
	}
	var opts []inspector.Option
	if logger.Enabled(context.Background(), traceLevel) {
		opts = append(opts, inspector.WithLookupHook(traceLookups(logger)))
	}
	insp, err := q.Inspector(opts...)
	if err != nil {
		return nil, err
	}
	return localBackend{insp: insp}, nil
}

// input returns the text to work on: the joined arguments, or all of stdin
// when there are none. piped reports the latter.
func (q *Query) input(args []string, stdio *IO) (text string, piped bool, err error) {
	if len(args) > 0 {
		text = strings.Join(args, " ")
	} else {
		if stdio.Terminal || stdio.In == nil {
			return "", false, errNoInput
		}
		b, err := io.ReadAll(stdio.In)
		if err != nil {
			return "", false, err
		}
		text, piped = string(b), true
	}
	if q.Normalize {
		text = norm.NFC.String(text)
	}
	return text, piped, nil
}
