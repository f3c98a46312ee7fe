package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"hnterm/cache"
	"hnterm/domain"
	"hnterm/thread"
	"hnterm/tui/comments"
	"hnterm/tui/common"
	"hnterm/tui/stories"
)

type activeView int

const (
	viewStories activeView = iota
	viewComments
)

// App is the root model. It owns the view switch, the help overlay and the
// per-story forests, and routes messages to the active sub-model. Forests
// live here so expansion state survives leaving a discussion.
type App struct {
	store *cache.Store
	keys  common.KeyMap

	active   activeView
	stories  stories.Model
	comments comments.Model
	forests  map[int64]*thread.Forest

	showHelp bool
	width    int
	height   int
}

// NewApp builds the application starting on the given category.
func NewApp(store *cache.Store, t domain.StoryType, pageSize int) App {
	keys := common.DefaultKeyMap()
	return App{
		store:   store,
		keys:    keys,
		stories: stories.New(store, keys, t, pageSize),
		forests: make(map[int64]*thread.Forest),
	}
}

func (a App) Init() tea.Cmd {
	return a.stories.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.stories.SetSize(msg.Width, msg.Height)
		a.comments.SetSize(msg.Width, msg.Height)
		return a, nil

	case cache.PageResult:
		var cmd tea.Cmd
		a.stories, cmd = a.stories.Update(msg)
		return a, cmd

	case cache.ItemResult:
		return a.updateItemResult(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if key.Matches(msg, a.keys.Help) {
		a.showHelp = true
		return a, nil
	}

	switch a.active {
	case viewStories:
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		if key.Matches(msg, a.keys.Comments) {
			return a.openComments()
		}
		var cmd tea.Cmd
		a.stories, cmd = a.stories.Update(msg)
		return a, cmd

	default:
		// q leaves the discussion rather than the program.
		if key.Matches(msg, a.keys.Back) || msg.String() == "q" {
			return a.closeComments()
		}
		var cmd tea.Cmd
		a.comments, cmd = a.comments.Update(msg)
		return a, cmd
	}
}

func (a App) openComments() (tea.Model, tea.Cmd) {
	story, ok := a.stories.Selected()
	if !ok {
		return a, nil
	}
	f := a.forests[story.ID]
	if f == nil {
		f = thread.NewForest(story)
		a.forests[story.ID] = f
	}
	a.store.Advance()
	a.comments = comments.New(a.store, a.keys, story, f, a.width, a.height)
	a.active = viewComments
	return a, a.comments.Init()
}

func (a App) closeComments() (tea.Model, tea.Cmd) {
	a.active = viewStories
	a.store.Advance()
	return a, a.stories.Reload()
}

// updateItemResult absorbs a comment completion. The matching forest gets
// the data even when the user has moved on; only follow-up fetches and
// error display are gated on the result still being current.
func (a App) updateItemResult(r cache.ItemResult) (tea.Model, tea.Cmd) {
	outcome := a.store.ApplyItem(r)
	f := a.forests[r.StoryID]
	if f == nil {
		return a, nil
	}

	if r.Err != nil {
		if outcome != cache.OutcomeSuperseded {
			f.Apply(r.ID, domain.Comment{}, r.Err)
		}
		return a, nil
	}

	more := f.Apply(r.ID, r.Comment, nil)
	if a.active == viewComments && a.comments.StoryID() == r.StoryID {
		// A reloaded node can shrink its kid list and contract the
		// visible traversal under the cursor.
		a.comments.ClampCursor()
		if outcome != cache.OutcomeSuperseded && len(more) > 0 {
			return a, a.comments.FetchComments(more)
		}
	}
	return a, nil
}

func (a App) View() string {
	if a.showHelp {
		return a.viewHelp()
	}
	if a.active == viewComments {
		return a.comments.View()
	}
	return a.stories.View()
}
