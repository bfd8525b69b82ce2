// Package filter provides the runner that updates the category toggles.
package filter

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/comicview/pkg/app"
	"tableflip.dev/comicview/pkg/comic"
	"tableflip.dev/comicview/pkg/printers"
	"tableflip.dev/comicview/pkg/viewer"
)

// Filter sets the toggles that are non-nil and reports the result.
type Filter struct {
	Service   *app.Service
	Storyline *bool
	Extras    *bool
	JSON      bool
	Out       io.Writer
}

// Result is the JSON form of the filter state.
type Result struct {
	Storyline bool `json:"storyline"`
	Extras    bool `json:"extras"`
	Eligible  int  `json:"eligible"`
	Total     int  `json:"total"`
}

func (n *Filter) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("can not filter, no service")
	}
	v, err := n.Service.Viewer(nil)
	if err != nil {
		return err
	}
	if n.Storyline != nil {
		v.SetIncludeStoryline(*n.Storyline)
	}
	if n.Extras != nil {
		v.SetIncludeExtras(*n.Extras)
	}

	f := v.Filter()
	ds := v.Dataset()
	res := Result{
		Storyline: f.IncludeStoryline(),
		Extras:    f.IncludeExtras(),
		Eligible:  viewer.Eligible(ds, f),
		Total:     ds.Len(),
	}
	if n.JSON {
		return printers.JSON(n.Out, res)
	}

	w := n.Out
	if w == nil {
		w = color.Output
	}
	on := color.New(color.FgGreen)
	off := color.New(color.Faint)
	state := func(b bool) string {
		if b {
			return on.Sprint("on")
		}
		return off.Sprint("off")
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(color.New(color.Bold).Sprint("Category"), color.New(color.Bold).Sprint("Shown"), color.New(color.Bold).Sprint("Comics"))
	tbl.AddRow(string(comic.Storyline), state(res.Storyline), ds.Count(comic.Storyline))
	tbl.AddRow(string(comic.Extra), state(res.Extras), ds.Count(comic.Extra))

	_, _ = fmt.Fprintln(w, tbl)
	_, _ = fmt.Fprintf(w, "\n%d of %d comics shown\n", res.Eligible, res.Total)
	return nil
}
