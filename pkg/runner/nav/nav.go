// Package nav provides the runner for single navigation steps.
package nav

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/comicview/pkg/app"
	"tableflip.dev/comicview/pkg/comic"
	"tableflip.dev/comicview/pkg/printers"
	"tableflip.dev/comicview/pkg/viewer"
)

// Nav applies one action to the saved session and prints where it landed.
type Nav struct {
	Service *app.Service
	Action  viewer.Action
	JSON    bool
	Out     io.Writer
}

// Result is the JSON form of a navigation step.
type Result struct {
	Action  string      `json:"action"`
	Moved   bool        `json:"moved"`
	Filter  string      `json:"filter"`
	IsFirst bool        `json:"isFirst"`
	IsLast  bool        `json:"isLast"`
	Entry   comic.Entry `json:"entry"`
}

// Do executes the action and prints the current comic.
func (n *Nav) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("can not navigate, no service")
	}
	v, err := n.Service.Viewer(nil)
	if err != nil {
		return err
	}
	moved := v.Do(n.Action)

	if n.JSON {
		return printers.JSON(n.Out, Result{
			Action:  n.Action.String(),
			Moved:   moved,
			Filter:  v.Filter().String(),
			IsFirst: v.IsFirst(),
			IsLast:  v.IsLast(),
			Entry:   v.Current(),
		})
	}

	pp := printers.PrettyPrint{
		Out:         n.Out,
		TitleFormat: n.Service.Config.TitleFormat,
		Filter:      v.Filter,
	}
	pp.NewLine()
	if !moved {
		w := n.Out
		if w == nil {
			w = color.Output
		}
		_, _ = color.New(color.Faint, color.Italic).Fprintf(w, "no %s comic, staying on #%d\n\n", n.Action, v.Index())
	}
	pp.Render(v.Current(), v.IsFirst(), v.IsLast())
	return nil
}

// ParseAction reads an action name, and for goto an index argument.
func ParseAction(args []string) (viewer.Action, error) {
	if len(args) == 0 {
		return viewer.Action{}, errors.New("nav: missing action")
	}
	k, err := viewer.ParseKind(args[0])
	if err != nil {
		return viewer.Action{}, err
	}
	if k != viewer.Direct {
		if len(args) > 1 {
			return viewer.Action{}, fmt.Errorf("nav: %s takes no arguments", k)
		}
		return viewer.Go(k), nil
	}
	if len(args) != 2 {
		return viewer.Action{}, errors.New("nav: goto needs an index")
	}
	i, ok := parseIndex(args[1])
	if !ok {
		return viewer.Action{}, fmt.Errorf("nav: invalid index %q", args[1])
	}
	return viewer.GoTo(i), nil
}

// parseIndex accepts any integer, optionally prefixed with '#'. Range
// checking is left to the viewer, which clamps.
func parseIndex(raw string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(raw), "#"))
	return i, err == nil
}
