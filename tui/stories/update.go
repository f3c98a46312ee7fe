package stories

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"hnterm/cache"
	"hnterm/domain"
)

// Update handles list keys and page completions. The root model routes
// view switching; everything else about the list lives here.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case cache.PageResult:
		return m.updatePageResult(msg)
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.scroll()
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.entry.Value.Stories)-1 {
			m.cursor++
			m.scroll()
		}

	case key.Matches(msg, m.keys.First):
		m.cursor = 0
		m.scroll()

	case key.Matches(msg, m.keys.Last):
		if n := len(m.entry.Value.Stories); n > 0 {
			m.cursor = n - 1
			m.scroll()
		}

	case key.Matches(msg, m.keys.NextPage):
		if m.entry.HasValue && m.page < m.entry.Value.LastPage(m.pageSize) {
			m.page++
			return m.turned()
		}

	case key.Matches(msg, m.keys.PrevPage):
		if m.page > 0 {
			m.page--
			return m.turned()
		}

	case key.Matches(msg, m.keys.Top):
		return m.switchCategory(domain.StoryTypeTop)

	case key.Matches(msg, m.keys.New):
		return m.switchCategory(domain.StoryTypeNew)

	case key.Matches(msg, m.keys.Best):
		return m.switchCategory(domain.StoryTypeBest)

	case key.Matches(msg, m.keys.Refresh):
		return m, m.request(true)

	case key.Matches(msg, m.keys.Open):
		if story, ok := m.Selected(); ok {
			return m, openLink(story.Link())
		}
	}
	return m, nil
}

// turned resets the cursor after a page change and re-requests. Advancing
// the generation marks any fetch for the old page as superseded.
func (m Model) turned() (Model, tea.Cmd) {
	m.cursor = 0
	m.start = 0
	m.store.Advance()
	return m, m.request(false)
}

func (m Model) switchCategory(t domain.StoryType) (Model, tea.Cmd) {
	if t == m.storyType {
		return m, nil
	}
	m.storyType = t
	m.page = 0
	return m.turned()
}

// updatePageResult absorbs a completion. The key match is the relevance
// test for this view: navigating away and back can coalesce the current
// view onto a fetch started under an older generation, so a completion for
// the page on screen must update it even when its generation went stale.
// Completions for other keys only feed the cache.
func (m Model) updatePageResult(r cache.PageResult) (Model, tea.Cmd) {
	m.store.ApplyPage(r)
	if r.Key != m.Key() {
		return m, nil
	}
	m.entry = m.store.PeekPage(m.Key())
	m.clamp()
	return m, nil
}
