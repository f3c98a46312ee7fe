package comments

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"hnterm/cache"
	"hnterm/domain"
	"hnterm/thread"
	"hnterm/tui/common"
)

type stubGateway struct {
	comments map[int64]domain.Comment
}

func (g *stubGateway) CategoryIDs(ctx context.Context, t domain.StoryType) ([]int64, error) {
	return nil, nil
}

func (g *stubGateway) Story(ctx context.Context, id int64) (domain.Story, error) {
	return domain.Story{}, domain.ErrNotFound
}

func (g *stubGateway) Comment(ctx context.Context, id int64) (domain.Comment, error) {
	c, ok := g.comments[id]
	if !ok {
		return domain.Comment{}, domain.ErrNotFound
	}
	return c, nil
}

func comment(id int64, kids ...int64) domain.Comment {
	return domain.Comment{ID: id, Author: "user", Text: "text", Kids: kids}
}

// testModel builds a view over a story whose top-level comments are loaded.
func testModel(t *testing.T, gw *stubGateway, story domain.Story) (Model, *thread.Forest) {
	t.Helper()
	store := cache.NewStore(gw, cache.Options{})
	f := thread.NewForest(story)
	for _, id := range story.Kids {
		if c, ok := gw.comments[id]; ok {
			f.Apply(id, c, nil)
		}
	}
	m := New(store, common.DefaultKeyMap(), story, f, 80, 24)
	return m, f
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// runCmd executes a command tree and returns the flattened messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}
