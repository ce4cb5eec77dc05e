package layoutfile

import (
	"fmt"

	"github.com/Alia5/keyswap/keymap"
)

// Resolve builds the ordered layout set. Each name resolves to the layout
// file of that name if one was given, otherwise to the built-in table. File
// layouts that no name refers to are appended in file order.
func Resolve(names, files []string) ([]keymap.Named, error) {
	loaded := make(map[string]keymap.Named, len(files))
	var fileOrder []string
	for _, path := range files {
		n, err := Load(path)
		if err != nil {
			return nil, err
		}
		if _, dup := loaded[n.Name]; dup {
			return nil, fmt.Errorf("%s: layout %q is defined by more than one file", path, n.Name)
		}
		loaded[n.Name] = n
		fileOrder = append(fileOrder, n.Name)
	}

	out := make([]keymap.Named, 0, len(names)+len(files))
	used := make(map[string]bool, len(names))
	for _, name := range names {
		if n, ok := loaded[name]; ok {
			out = append(out, n)
			used[name] = true
			continue
		}
		n, ok := keymap.Builtin(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", keymap.ErrUnknownLayout, name)
		}
		out = append(out, n)
	}
	for _, name := range fileOrder {
		if !used[name] {
			out = append(out, loaded[name])
		}
	}
	return out, nil
}
