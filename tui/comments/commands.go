package comments

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"hnterm/cache"
	"hnterm/infra/browser"
	"hnterm/infra/logging"
)

func loadItem(fetch cache.ItemFetch) tea.Cmd {
	if fetch == nil {
		return nil
	}
	return func() tea.Msg {
		return fetch(context.Background())
	}
}

func openLink(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			logging.Log.WithError(err).Warn("could not open browser")
		}
		return nil
	}
}
