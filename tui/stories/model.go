package stories

import (
	tea "github.com/charmbracelet/bubbletea"

	"hnterm/cache"
	"hnterm/domain"
	"hnterm/tui/common"
)

// Model is the story list: one page of one category, with a cursor.
type Model struct {
	store *cache.Store
	keys  common.KeyMap

	storyType domain.StoryType
	page      int
	pageSize  int

	cursor int
	start  int

	entry cache.Entry[cache.Page]

	width  int
	height int
}

// New creates the list positioned on the first page of the given category.
func New(store *cache.Store, keys common.KeyMap, t domain.StoryType, pageSize int) Model {
	return Model{
		store:     store,
		keys:      keys,
		storyType: t,
		pageSize:  pageSize,
	}
}

// Init requests the initial page. The snapshot stays missing until the
// first completion arrives, which renders as the initial loading screen.
func (m Model) Init() tea.Cmd {
	_, fetch := m.store.Page(m.Key())
	return loadPage(fetch)
}

// Key returns the cache key for the page currently on screen.
func (m Model) Key() cache.PageKey {
	return cache.PageKey{Type: m.storyType, Page: m.page, Size: m.pageSize}
}

// Selected returns the story under the cursor.
func (m Model) Selected() (domain.Story, bool) {
	stories := m.entry.Value.Stories
	if !m.entry.HasValue || m.cursor >= len(stories) {
		return domain.Story{}, false
	}
	return stories[m.cursor], true
}

// SetSize updates the layout bounds.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.scroll()
}

// Reload re-reads the cache for the current page, fetching if it went
// stale. Used when the list comes back into view.
func (m *Model) Reload() tea.Cmd {
	return m.request(false)
}

func (m *Model) request(force bool) tea.Cmd {
	var fetch cache.PageFetch
	if force {
		m.entry, fetch = m.store.RefreshPage(m.Key())
	} else {
		m.entry, fetch = m.store.Page(m.Key())
	}
	m.clamp()
	return loadPage(fetch)
}

func (m *Model) clamp() {
	n := len(m.entry.Value.Stories)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scroll()
}

// scroll keeps the cursor inside the visible window.
func (m *Model) scroll() {
	rows := m.visibleRows()
	if rows < 1 {
		rows = 1
	}
	if m.cursor < m.start {
		m.start = m.cursor
	}
	if m.cursor >= m.start+rows {
		m.start = m.cursor - rows + 1
	}
	if m.start < 0 {
		m.start = 0
	}
}

// visibleRows is how many stories fit on screen; each takes two lines and
// the chrome (tabs, blank, status, help) takes four.
func (m Model) visibleRows() int {
	return (m.height - 4) / 2
}
