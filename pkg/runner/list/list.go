// Package list provides the runner that prints the dataset.
package list

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/comicview/pkg/app"
	"tableflip.dev/comicview/pkg/comic"
	"tableflip.dev/comicview/pkg/printers"
)

// List prints every comic, or only those the saved filter allows.
type List struct {
	Service *app.Service
	// Allowed hides comics the current filter excludes.
	Allowed bool
	// Category limits output to one category when set.
	Category comic.Category
	JSON     bool
	Out      io.Writer
}

// Item is the JSON form of one listed comic.
type Item struct {
	comic.Entry
	Allowed bool `json:"allowed"`
	Current bool `json:"current"`
}

func (n *List) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("can not list, no service")
	}
	v, err := n.Service.Viewer(nil)
	if err != nil {
		return err
	}
	f := v.Filter()

	all := n.filtered(v.Dataset().Entries(), func(e comic.Entry) bool { return f.Allows(e) })

	if n.JSON {
		items := make([]Item, 0, len(all))
		for _, e := range all {
			items = append(items, Item{Entry: e, Allowed: f.Allows(e), Current: e.Index == v.Index()})
		}
		return printers.JSON(n.Out, items)
	}

	pp := printers.PrettyPrint{Out: n.Out, ListFormat: n.Service.Config.ListFormat}
	pp.NewLine()
	pp.TitleWithCount(n.Service.Config.Name, len(all))
	pp.List(all, v.Index(), f)
	return nil
}

func (n *List) filtered(all []comic.Entry, allows func(comic.Entry) bool) []comic.Entry {
	c := make([]comic.Entry, 0, len(all))
	for _, e := range all {
		if n.Category != "" && e.Category != n.Category {
			continue
		}
		if n.Allowed && !allows(e) {
			continue
		}
		c = append(c, e)
	}
	return c
}
