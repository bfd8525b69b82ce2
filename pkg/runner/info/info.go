package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/comicview/pkg/app"
	"tableflip.dev/comicview/pkg/comic"
	"tableflip.dev/comicview/pkg/printers"
	"tableflip.dev/comicview/pkg/store"
	"tableflip.dev/comicview/pkg/viewer"
)

type Info struct {
	Service *app.Service
	JSON    bool
	Out     io.Writer
}

// Summary is the JSON form of Info.
type Summary struct {
	ConfigFile string `json:"configFile,omitempty"`
	Name       string `json:"name"`
	Dataset    string `json:"dataset"`
	Comics     int    `json:"comics"`
	Storyline  int    `json:"storyline"`
	Extras     int    `json:"extras"`
	Store      string `json:"store"`
	StorePath  string `json:"storePath"`
	Persisting bool   `json:"persisting"`
	Location   string `json:"location"`
	MediaRoot  string `json:"mediaRoot"`
	Last       string `json:"last,omitempty"`
}

func (n *Info) Do(_ context.Context) error {
	if n.Service == nil {
		return fmt.Errorf("failed to create service")
	}
	cfg := n.Service.Config
	ds := n.Service.Dataset
	_, unavailable := n.Service.KV.(store.Unavailable)

	s := Summary{
		ConfigFile: cfg.File,
		Name:       cfg.Name,
		Dataset:    cfg.Dataset,
		Comics:     ds.Len(),
		Storyline:  ds.Count(comic.Storyline),
		Extras:     ds.Count(comic.Extra),
		Store:      cfg.StoreBackend,
		StorePath:  cfg.StorePath,
		Persisting: !unavailable,
		Location:   n.Service.Location.Path(),
		MediaRoot:  cfg.MediaRoot,
	}
	if last, ok := n.Service.KV.Get(viewer.KeysFor(cfg.Name).Last); ok {
		s.Last = last
	}
	if n.JSON {
		return printers.JSON(n.Out, s)
	}

	w := n.Out
	if w == nil {
		w = color.Output
	}
	if override := os.Getenv("COMICVIEW_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(w, "COMICVIEW_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(w, "COMICVIEW_CONFIG_PATH env var not set")
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	row := func(k string, v interface{}) { tbl.AddRow(bold.Sprint(k), v) }
	if s.ConfigFile != "" {
		row("Config file", s.ConfigFile)
	}
	row("Name", s.Name)
	row("Dataset", s.Dataset)
	row("Comics", fmt.Sprintf("%d (%d storyline, %d extras)", s.Comics, s.Storyline, s.Extras))
	if s.Persisting {
		row("Store", fmt.Sprintf("%s at %s", s.Store, s.StorePath))
	} else {
		row("Store", color.New(color.FgRed).Sprint("unavailable"))
	}
	row("Location", s.Location)
	row("Media root", s.MediaRoot)
	if s.Last != "" {
		row("Last viewed", "#"+s.Last)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(w, tbl)
	return nil
}
