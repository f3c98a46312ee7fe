package stories

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"hnterm/cache"
	"hnterm/infra/browser"
	"hnterm/infra/logging"
)

// loadPage turns a fetch closure into a command. A nil closure means the
// cache answered and nothing needs to run.
func loadPage(fetch cache.PageFetch) tea.Cmd {
	if fetch == nil {
		return nil
	}
	return func() tea.Msg {
		return fetch(context.Background())
	}
}

// openLink launches the browser off the update loop.
func openLink(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			logging.Log.WithError(err).Warn("could not open browser")
		}
		return nil
	}
}
