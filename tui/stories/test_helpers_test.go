package stories

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"hnterm/cache"
	"hnterm/domain"
	"hnterm/tui/common"
)

var errTest = errors.New("network down")

type stubGateway struct {
	ids     []int64
	stories map[int64]domain.Story
	err     error
}

func (g *stubGateway) CategoryIDs(ctx context.Context, t domain.StoryType) ([]int64, error) {
	return g.ids, g.err
}

func (g *stubGateway) Story(ctx context.Context, id int64) (domain.Story, error) {
	if g.err != nil {
		return domain.Story{}, g.err
	}
	s, ok := g.stories[id]
	if !ok {
		return domain.Story{}, domain.ErrNotFound
	}
	return s, nil
}

func (g *stubGateway) Comment(ctx context.Context, id int64) (domain.Comment, error) {
	return domain.Comment{}, domain.ErrNotFound
}

func newStubGateway(n int) *stubGateway {
	g := &stubGateway{stories: map[int64]domain.Story{}}
	for i := 1; i <= n; i++ {
		id := int64(i)
		g.ids = append(g.ids, id)
		g.stories[id] = domain.Story{ID: id, Title: fmt.Sprintf("story %d", id)}
	}
	return g
}

// loadedModel builds a model with its first page applied.
func loadedModel(t *testing.T, n int) (Model, *cache.Store) {
	t.Helper()
	store := cache.NewStore(newStubGateway(n), cache.Options{})
	m := New(store, common.DefaultKeyMap(), domain.StoryTypeBest, 10)
	m.SetSize(80, 24)

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init returned no fetch command")
	}
	m, _ = m.Update(cmd())
	return m, store
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}
