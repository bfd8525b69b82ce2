// Package pick provides the interactive comic picker.
package pick

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"tableflip.dev/comicview/pkg/app"
	"tableflip.dev/comicview/pkg/comic"
	"tableflip.dev/comicview/pkg/printers"
	"tableflip.dev/comicview/pkg/viewer"
)

// Pick lets the user search the dataset and jumps to the chosen comic.
type Pick struct {
	Service *app.Service
	// Allowed offers only comics the current filter allows.
	Allowed bool
	In      io.Reader
	Out     io.Writer
}

// Item is one row of the picker.
type Item struct {
	Index    int
	Label    string
	Category comic.Category
}

func (n *Pick) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("can not pick, no service")
	}
	v, err := n.Service.Viewer(nil)
	if err != nil {
		return err
	}

	items := Items(v.Dataset(), v.Filter(), n.Allowed, n.Service.Config.ListFormat)
	if len(items) == 0 {
		return errors.New("pick: nothing to choose from")
	}
	start := 0
	for i, it := range items {
		if it.Index == v.Index() {
			start = i
		}
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Label | bold }} {{ .Category | faint }}",
		Inactive: "   {{ .Label }} {{ .Category | faint }}",
		Selected: "{{ .Label | bold }}",
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Comic",
		Items:     items,
		Templates: templates,
		Size:      12,
		Searcher:  Searcher(items),
		CursorPos: start,
	}
	if n.In != nil {
		prompt.Stdin = io.NopCloser(n.In)
	}
	if n.Out != nil {
		prompt.Stdout = nopCloser{n.Out}
	}

	i, _, err := prompt.Run()
	if err != nil {
		return fmt.Errorf("pick: %w", err)
	}

	v.SetRenderer(&printers.PrettyPrint{
		Out:         n.out(),
		TitleFormat: n.Service.Config.TitleFormat,
	})
	v.Do(viewer.GoTo(items[i].Index))
	return nil
}

func (n *Pick) out() io.Writer {
	if n.Out == nil {
		return color.Output
	}
	return n.Out
}

// Items builds picker rows labelled with format.
func Items(ds *comic.Dataset, f viewer.Filter, allowedOnly bool, format string) []Item {
	items := make([]Item, 0, ds.Len())
	for _, e := range ds.Entries() {
		if allowedOnly && !f.Allows(e) {
			continue
		}
		items = append(items, Item{
			Index:    e.Index,
			Label:    fmt.Sprintf("#%d %s", e.Index, strings.TrimSpace(comic.Format(format, e))),
			Category: e.Category,
		})
	}
	return items
}

// Searcher matches the query against labels, ignoring case and spaces.
func Searcher(items []Item) func(input string, index int) bool {
	return func(input string, index int) bool {
		label := strings.Replace(strings.ToLower(items[index].Label), " ", "", -1)
		input = strings.Replace(strings.ToLower(input), " ", "", -1)
		return strings.Contains(label, input)
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
