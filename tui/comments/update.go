package comments

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles navigation and expansion keys. Fetch completions are
// routed by the root model, which owns the forest map.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	visible := m.forest.Visible()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.scroll()
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
			m.scroll()
		}

	case key.Matches(msg, m.keys.First):
		m.cursor = 0
		m.scroll()

	case key.Matches(msg, m.keys.Last):
		if len(visible) > 0 {
			m.cursor = len(visible) - 1
			m.scroll()
		}

	case key.Matches(msg, m.keys.Expand):
		if m.cursor >= len(visible) {
			break
		}
		id := visible[m.cursor]
		if n := m.forest.Node(id); n != nil && n.Failed() {
			return m, m.FetchComments(m.forest.Retry(id))
		}
		return m, m.FetchComments(m.forest.Toggle(id))

	case key.Matches(msg, m.keys.CollapseThread):
		if m.cursor >= len(visible) {
			break
		}
		collapsed := m.forest.CollapseThread(visible[m.cursor])
		m.moveCursorTo(collapsed)

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh(visible)

	case key.Matches(msg, m.keys.Open):
		return m, openLink(m.story.Link())
	}
	return m, nil
}

// moveCursorTo places the cursor on the given node after a collapse
// changed the visible list.
func (m *Model) moveCursorTo(id int64) {
	for i, v := range m.forest.Visible() {
		if v == id {
			m.cursor = i
			break
		}
	}
	m.clamp()
}

// refresh force-refetches every visible comment. Loaded nodes keep their
// content on screen until the new data lands.
func (m Model) refresh(visible []int64) tea.Cmd {
	var cmds []tea.Cmd
	for _, id := range visible {
		_, fetch := m.store.RefreshItem(m.story.ID, id)
		if cmd := loadItem(fetch); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}
