package comments

import (
	"fmt"
	"strings"

	"hnterm/thread"
	"hnterm/tui/common"
)

const (
	maxIndentLevels = 12
	maxTextLines    = 8
)

// View renders the story header followed by the visible slice of the
// discussion tree.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(common.HeaderStyle.Render(common.Truncate(m.story.Title, m.width-2)))
	b.WriteString("\n")
	meta := fmt.Sprintf("%d points by %s %s | %d comments | %s",
		m.story.Score, m.story.Author, common.TimeAgo(m.story.SubmittedAt),
		m.story.Descendants, m.story.Link())
	b.WriteString(common.MetaStyle.Render(common.Truncate(meta, m.width-2)))
	b.WriteString("\n\n")

	visible := m.forest.Visible()
	if len(visible) == 0 {
		b.WriteString(common.DimStyle.Render("  No comments."))
		b.WriteString("\n")
		return b.String()
	}

	end := m.start + m.visibleNodes()
	if end > len(visible) {
		end = len(visible)
	}
	for i := m.start; i < end; i++ {
		b.WriteString(m.viewNode(m.forest.Node(visible[i]), i == m.cursor))
	}

	b.WriteString("\n")
	b.WriteString(common.StatusStyle.Render(fmt.Sprintf("%d/%d  ·  ? help", m.cursor+1, len(visible))))
	return b.String()
}

func (m Model) viewNode(n *thread.Node, selected bool) string {
	if n == nil {
		return ""
	}

	depth := n.Depth
	if depth > maxIndentLevels {
		depth = maxIndentLevels
	}
	indent := strings.Repeat("  ", depth)
	width := m.width - len(indent) - 2
	if width < 10 {
		width = 10
	}

	var b strings.Builder
	switch {
	case n.Pending():
		line := indent + "…"
		if selected {
			line = common.SelectedStyle.Render(line)
		} else {
			line = common.PlaceholderStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")

	case n.Failed():
		line := indent + "failed to load (enter retries)"
		if selected {
			line = common.SelectedStyle.Render(line)
		} else {
			line = common.ErrorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")

	default:
		b.WriteString(m.viewLoadedNode(n, indent, width, selected))
	}
	return b.String()
}

func (m Model) viewLoadedNode(n *thread.Node, indent string, width int, selected bool) string {
	c := n.Comment

	author := c.Author
	switch {
	case c.Deleted:
		author = "[deleted]"
	case c.Dead:
		author = "[dead]"
	}
	head := fmt.Sprintf("%s%s %s", indent, author, common.TimeAgo(c.SubmittedAt))
	if c.HasChildren() && !n.Expanded {
		head += fmt.Sprintf(" [+%d]", len(c.Kids))
	}

	var b strings.Builder
	if selected {
		b.WriteString(common.SelectedStyle.Render(common.Truncate(head, m.width-2)))
	} else {
		b.WriteString(common.MetaStyle.Render(common.Truncate(head, m.width-2)))
	}
	b.WriteString("\n")

	if c.Text != "" {
		lines := strings.Split(common.Wrap(c.Text, width), "\n")
		truncated := false
		if len(lines) > maxTextLines {
			lines = lines[:maxTextLines]
			truncated = true
		}
		for _, line := range lines {
			b.WriteString(indent)
			b.WriteString(common.TitleStyle.Render(line))
			b.WriteString("\n")
		}
		if truncated {
			b.WriteString(indent)
			b.WriteString(common.DimStyle.Render("…"))
			b.WriteString("\n")
		}
	}
	return b.String()
}
