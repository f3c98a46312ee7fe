package stories

import (
	"fmt"
	"strings"

	"hnterm/cache"
	"hnterm/domain"
	"hnterm/tui/common"
)

// View renders the tab bar, the story rows and a status line. While a
// refresh runs the old rows stay on screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewTabs())
	b.WriteString("\n\n")

	switch {
	case !m.entry.HasValue && m.entry.Status == cache.StatusLoading,
		!m.entry.HasValue && m.entry.Status == cache.StatusMissing:
		b.WriteString(common.DimStyle.Render("  Loading stories…"))
		b.WriteString("\n")

	case !m.entry.HasValue && m.entry.Status == cache.StatusFailed:
		b.WriteString(common.ErrorStyle.Render("  Could not load stories."))
		b.WriteString("\n")
		b.WriteString(common.DimStyle.Render("  Press r to retry."))
		b.WriteString("\n")

	case len(m.entry.Value.Stories) == 0:
		b.WriteString(common.DimStyle.Render("  No stories on this page."))
		b.WriteString("\n")

	default:
		b.WriteString(m.viewRows())
	}

	b.WriteString("\n")
	b.WriteString(m.viewStatus())
	return b.String()
}

func (m Model) viewTabs() string {
	var tabs []string
	for _, t := range []domain.StoryType{domain.StoryTypeTop, domain.StoryTypeNew, domain.StoryTypeBest} {
		style := common.TabInactiveStyle
		if t == m.storyType {
			style = common.TabActiveStyle
		}
		tabs = append(tabs, style.Render(t.String()))
	}
	return common.HeaderStyle.Render("Hacker News") + " " + strings.Join(tabs, " ")
}

func (m Model) viewRows() string {
	var b strings.Builder
	stories := m.entry.Value.Stories
	rows := m.visibleRows()
	if rows < 1 {
		rows = len(stories)
	}
	end := m.start + rows
	if end > len(stories) {
		end = len(stories)
	}

	for i := m.start; i < end; i++ {
		s := stories[i]
		rank := m.page*m.pageSize + i + 1

		title := common.Truncate(fmt.Sprintf("%3d. %s", rank, s.Title), m.width-2)
		if i == m.cursor {
			b.WriteString(common.SelectedStyle.Render(title))
		} else {
			b.WriteString(common.TitleStyle.Render(title))
		}
		b.WriteString("\n")

		meta := fmt.Sprintf("     %d points by %s %s | %d comments",
			s.Score, s.Author, common.TimeAgo(s.SubmittedAt), s.Descendants)
		b.WriteString(common.MetaStyle.Render(common.Truncate(meta, m.width-2)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewStatus() string {
	last := 0
	if m.entry.HasValue {
		last = m.entry.Value.LastPage(m.pageSize)
	}
	parts := []string{fmt.Sprintf("page %d/%d", m.page+1, last+1)}

	switch m.entry.Status {
	case cache.StatusLoading:
		if m.entry.HasValue {
			parts = append(parts, "refreshing…")
		}
	case cache.StatusStale:
		parts = append(parts, "stale")
	case cache.StatusFailed:
		if m.entry.HasValue {
			parts = append(parts, common.ErrorStyle.Render("refresh failed, showing cached"))
		}
	}

	parts = append(parts, "? help")
	return common.StatusStyle.Render(strings.Join(parts, "  ·  "))
}
