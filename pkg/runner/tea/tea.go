package teaui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/comicview/pkg/app"
	"tableflip.dev/comicview/pkg/logging"
)

// Run launches the terminal viewer and blocks until the user quits.
func Run(ctx context.Context, svc *app.Service) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m, err := New(svc)
	if err != nil {
		return err
	}
	if ch, err := svc.Watch(ctx); err != nil {
		logging.Log.WithError(err).Warn("not watching the location file")
	} else {
		m.locations = ch
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
