package comments

import (
	tea "github.com/charmbracelet/bubbletea"

	"hnterm/cache"
	"hnterm/domain"
	"hnterm/thread"
	"hnterm/tui/common"
)

// Model is the discussion view for one story. The forest outlives the
// model: it is owned by the root so expansion state and loaded comments
// survive leaving and re-entering the view.
type Model struct {
	store *cache.Store
	keys  common.KeyMap

	story  domain.Story
	forest *thread.Forest

	cursor int
	start  int

	width  int
	height int
}

// New creates the view over an existing forest.
func New(store *cache.Store, keys common.KeyMap, story domain.Story, forest *thread.Forest, width, height int) Model {
	return Model{
		store:  store,
		keys:   keys,
		story:  story,
		forest: forest,
		width:  width,
		height: height,
	}
}

// StoryID identifies which discussion this view shows.
func (m Model) StoryID() int64 {
	return m.story.ID
}

// Init requests every visible comment still unfetched, which covers both a
// fresh discussion's roots and placeholders left behind when the view was
// abandoned mid-load. Thanks to coalescing re-entering the view is free
// when everything is cached.
func (m Model) Init() tea.Cmd {
	return m.FetchComments(m.forest.PendingVisible())
}

// FetchComments resolves the given comment ids: cached ones are applied to
// the forest immediately (recursing into their already-cached children),
// the rest become fetch commands.
func (m Model) FetchComments(ids []int64) tea.Cmd {
	var cmds []tea.Cmd
	for _, id := range ids {
		entry, fetch := m.store.Item(m.story.ID, id)
		if fetch != nil {
			cmds = append(cmds, loadItem(fetch))
			continue
		}
		if entry.HasValue {
			more := m.forest.Apply(id, entry.Value, nil)
			if cmd := m.FetchComments(more); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// ClampCursor keeps the cursor valid after the forest changed shape under
// it, such as when a refreshed comment lost replies.
func (m *Model) ClampCursor() {
	m.clamp()
}

// SetSize updates the layout bounds.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.scroll()
}

func (m *Model) clamp() {
	n := len(m.forest.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scroll()
}

func (m *Model) scroll() {
	rows := m.visibleNodes()
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

// visibleNodes approximates how many comment blocks fit on screen. Blocks
// vary in height, so this errs small rather than exact.
func (m Model) visibleNodes() int {
	n := (m.height - 5) / 4
	if n < 1 {
		n = 1
	}
	return n
}
