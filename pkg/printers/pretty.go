package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/comicview/pkg/comic"
	"tableflip.dev/comicview/pkg/viewer"
)

type PrettyPrint struct {
	Out         io.Writer
	TitleFormat string
	ListFormat  string
	// Filter, when set, is shown under each rendered entry.
	Filter func() viewer.Filter
}

var (
	spacing = strings.Repeat(" ", len("#00000  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " comic")
	default:
		_, _ = c.Fprintln(pp.out(), " comics")
	}
}

// Render prints one entry in detail. It satisfies viewer.Renderer.
func (pp *PrettyPrint) Render(e comic.Entry, isFirst, isLast bool) {
	w := pp.out()
	faint := color.New(color.Faint)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	label := color.New(color.FgCyan)

	_, _ = y.Fprintf(w, "#%d", e.Index)
	_, _ = y.Fprint(w, strings.Repeat(" ", max(1, len(spacing)-len(fmt.Sprintf("#%d", e.Index)))))
	pp.Title(comic.Format(pp.titleFormat(), e))

	marks := []string{string(e.Category)}
	if isFirst {
		marks = append(marks, "first")
	}
	if isLast {
		marks = append(marks, "last")
	}
	_, _ = faint.Fprintf(w, "%s%s\n", spacing, strings.Join(marks, ", "))

	if !e.HasMedia {
		_, _ = faint.Fprintf(w, "%s(no media)\n", spacing)
	}
	for i, ref := range e.MediaRefs {
		m, err := comic.ParseMedia(ref)
		if err != nil {
			_, _ = fmt.Fprintf(w, "%s%s\n", spacing, ref)
			continue
		}
		_, _ = label.Fprintf(w, "%s%s", spacing, m.Name)
		if m.Flash {
			_, _ = faint.Fprintf(w, " [flash %dx%d]", m.Width, m.Height)
		}
		_, _ = fmt.Fprintln(w, "")
		if hover := e.HoverFor(i); hover != "" {
			_, _ = faint.Fprintf(w, "%s  %q\n", spacing, hover)
		}
		if alt := e.AlternateFor(i); alt != "" {
			_, _ = faint.Fprintf(w, "%s  alt: %s\n", spacing, alt)
		}
	}

	if blog := comic.PlainText(e.Meta.BlogText); blog != "" {
		pp.NewLine()
		for _, line := range strings.Split(blog, "\n") {
			_, _ = fmt.Fprintf(w, "%s%s\n", spacing, line)
		}
	}
	if e.Meta.URL != "" {
		_, _ = label.Fprintf(w, "%s%s\n", spacing, e.Meta.URL)
	}
	if pp.Filter != nil {
		_, _ = faint.Fprintf(w, "%sshowing: %s\n", spacing, pp.Filter())
	}
	pp.NewLine()
}

// List prints a one-line-per-comic table. The row at current is marked and
// rows f excludes are dimmed.
func (pp *PrettyPrint) List(entries []comic.Entry, current int, f viewer.Filter) {
	if len(entries) == 0 {
		n := color.New(color.Faint, color.Italic)
		_, _ = n.Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	faint := color.New(color.Faint)
	plain := color.New()

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, e := range entries {
		mark := " "
		if e.Index == current {
			mark = "›"
		}
		cat := "●"
		if !e.IsStoryline() {
			cat = "○"
		}
		row := plain
		if !f.Allows(e) {
			row = faint
		}
		media := ""
		if !e.HasMedia {
			media = faint.Sprint("no media")
		}
		tbl.AddRow(mark, y.Sprintf("#%d", e.Index), cat, row.Sprint(comic.Format(pp.listFormat(), e)), media)
	}
	tbl.RightAlign(1)

	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func (pp *PrettyPrint) titleFormat() string {
	if pp.TitleFormat == "" {
		return "%date% - %title%"
	}
	return pp.TitleFormat
}

func (pp *PrettyPrint) listFormat() string {
	if pp.ListFormat == "" {
		return "%episode% %title%"
	}
	return pp.ListFormat
}
