// Package key provides CLI helpers to display the key bindings.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/comicview/pkg/keymap"
)

// Key prints the viewer's key legend.
type Key struct {
	Bindings []keymap.Binding
	Out      io.Writer
}

// Do renders the key legend.
func (k *Key) Do(ctx context.Context) error {
	w := k.Out
	if w == nil {
		w = color.Output
	}
	bindings := k.Bindings
	if bindings == nil {
		bindings = keymap.Default()
	}

	_, _ = fmt.Fprintln(w, "")
	k.Key(ctx, w, bindings)
	_, _ = fmt.Fprintln(w, "")
	return nil
}

// Key renders a bindings table.
func (k *Key) Key(_ context.Context, w io.Writer, bindings []keymap.Binding) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Keys"), bold.Sprint("Action"))
	for _, b := range bindings {
		tbl.AddRow(b.Display(), b.Help)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(w, tbl)
}
