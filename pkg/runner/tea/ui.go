package teaui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/comicview/pkg/app"
	"tableflip.dev/comicview/pkg/comic"
	"tableflip.dev/comicview/pkg/keymap"
	"tableflip.dev/comicview/pkg/viewer"
)

// screen is the viewer's renderer. It lives behind a pointer so renders
// survive the value copies bubbletea makes of Model.
type screen struct {
	entry   comic.Entry
	isFirst bool
	isLast  bool
	renders int
}

func (s *screen) Render(e comic.Entry, isFirst, isLast bool) {
	s.entry = e
	s.isFirst = isFirst
	s.isLast = isLast
	s.renders++
}

// messages
type locationMsg string

// Model contains UI state
type Model struct {
	v   *viewer.Viewer
	scr *screen

	keys        *keymap.Map
	titleFormat string
	locations   <-chan string

	blog   viewport.Model
	synced int

	status string

	termWidth  int
	termHeight int
}

// New creates a UI model backed by the Service.
func New(svc *app.Service) (Model, error) {
	m, err := newModel(svc.Viewer)
	if err != nil {
		return m, err
	}
	m.titleFormat = svc.Config.TitleFormat
	return m, nil
}

func newModel(build func(viewer.Renderer, ...viewer.Option) (*viewer.Viewer, error)) (Model, error) {
	scr := &screen{}
	v, err := build(scr)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		v:           v,
		scr:         scr,
		keys:        keymap.New(keymap.Default()),
		titleFormat: "%date% - %title%",
		blog: viewport.New(
			viewport.WithWidth(80),
			viewport.WithHeight(10),
		),
		termWidth:  80,
		termHeight: 24,
	}
	m.sync()
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return m.waitLocation()
}

func (m Model) waitLocation() tea.Cmd {
	if m.locations == nil {
		return nil
	}
	ch := m.locations
	return func() tea.Msg {
		v, ok := <-ch
		if !ok {
			return nil
		}
		return locationMsg(v)
	}
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case locationMsg:
		if m.v.LocationChanged(string(msg)) {
			m.status = ""
		}
		cmds = append(cmds, m.waitLocation())
	case tea.KeyPressMsg:
		switch c := m.keys.Lookup(msg.String()); c {
		case keymap.Quit:
			return m, tea.Quit
		case keymap.ToggleStoryline:
			m.v.SetIncludeStoryline(!m.v.Filter().IncludeStoryline())
			m.status = "showing " + m.v.Filter().String()
		case keymap.ToggleExtras:
			m.v.SetIncludeExtras(!m.v.Filter().IncludeExtras())
			m.status = "showing " + m.v.Filter().String()
		case keymap.None:
			var cmd tea.Cmd
			m.blog, cmd = m.blog.Update(msg)
			cmds = append(cmds, cmd)
		default:
			act, _ := c.Action()
			if m.v.Do(act) {
				m.status = ""
			} else {
				m.status = fmt.Sprintf("no %s comic", act)
			}
		}
	}

	m.sync()
	return m, tea.Batch(cmds...)
}

// sync refreshes the blog pane after the viewer rendered a new entry.
func (m *Model) sync() {
	if m.scr.renders == m.synced {
		return
	}
	m.synced = m.scr.renders
	m.setBlog()
}

func (m *Model) setBlog() {
	text := comic.PlainText(m.scr.entry.Meta.BlogText)
	m.blog.SetContent(wordwrap.String(text, max(m.blog.Width(), 10)))
	m.blog.GotoTop()
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	mediaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	hoverStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
	navOn       = lipgloss.NewStyle().Bold(true)
	navOff      = lipgloss.NewStyle().Faint(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("218"))
	blogFrame   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// View renders the current comic, the nav bar and the status line.
func (m Model) View() string {
	e := m.scr.entry
	lines := []string{
		titleStyle.Render(comic.Format(m.titleFormat, e)),
		faintStyle.Render(fmt.Sprintf("#%d of %d  %s", e.Index, m.v.Dataset().Len()-1, e.Category)),
		"",
	}

	if !e.HasMedia {
		lines = append(lines, faintStyle.Render("(no media)"))
	}
	for i, ref := range e.MediaRefs {
		line := ref
		if md, err := comic.ParseMedia(ref); err == nil {
			line = mediaStyle.Render(md.Name)
			if md.Flash {
				line += faintStyle.Render(fmt.Sprintf(" [flash %dx%d]", md.Width, md.Height))
			}
		}
		lines = append(lines, line)
		if hover := e.HoverFor(i); hover != "" {
			lines = append(lines, "  "+hoverStyle.Render(hover))
		}
	}
	if e.Meta.URL != "" {
		lines = append(lines, faintStyle.Render(e.Meta.URL))
	}

	body := strings.Join(lines, "\n")
	if e.Meta.BlogText != "" {
		body += "\n\n" + blogFrame.Render(m.blog.View())
	}

	return body + "\n\n" + m.navBar() + "\n" + m.statusLine()
}

func (m Model) navBar() string {
	item := func(label string, enabled bool) string {
		if enabled {
			return navOn.Render(label)
		}
		return navOff.Render(label)
	}
	back := !m.scr.isFirst
	fwd := !m.scr.isLast
	return strings.Join([]string{
		item("« first", back),
		item("‹ prev", back),
		item("random", true),
		item("next ›", fwd),
		item("last »", fwd),
	}, "  ")
}

func (m Model) statusLine() string {
	s := "[" + m.v.Filter().String() + "]"
	if m.status != "" {
		s += " " + m.status
	}
	return statusStyle.Render(s) + faintStyle.Render("  s/e toggle, q quit")
}

// applySizes recalculates the blog pane based on current terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	w := max(m.termWidth-blogFrame.GetHorizontalFrameSize(), 20)
	// Leave room for header, media lines, nav and status.
	h := max(m.termHeight-12, 3)
	m.blog.SetWidth(w)
	m.blog.SetHeight(h)
	m.setBlog()
}
