package thread

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hnterm/domain"
)

func comment(id int64, kids ...int64) domain.Comment {
	return domain.Comment{ID: id, Author: "u", Text: "t", Kids: kids}
}

// loadedForest builds a forest with all top-level comments applied.
func loadedForest(t *testing.T, story domain.Story, comments ...domain.Comment) *Forest {
	t.Helper()
	f := NewForest(story)
	for _, c := range comments {
		f.Apply(c.ID, c, nil)
	}
	return f
}

func TestNewForestCreatesPlaceholders(t *testing.T) {
	f := NewForest(domain.Story{ID: 1, Kids: []int64{10, 11, 12}})

	assert.Equal(t, []int64{10, 11, 12}, f.Roots())
	assert.Equal(t, []int64{10, 11, 12}, f.PendingVisible())
	assert.Equal(t, []int64{10, 11, 12}, f.Visible())

	n := f.Node(10)
	require.NotNil(t, n)
	assert.True(t, n.Pending())
	assert.Equal(t, 0, n.Depth)
}

func TestApplyLoadsNode(t *testing.T) {
	f := NewForest(domain.Story{ID: 1, Kids: []int64{10}})

	toFetch := f.Apply(10, comment(10, 20, 21), nil)
	assert.Empty(t, toFetch, "children are not fetched before expansion")

	n := f.Node(10)
	assert.True(t, n.Loaded)
	assert.False(t, n.Expanded)
	assert.Nil(t, f.Node(20), "children stay unmaterialized until expand")
	assert.Empty(t, f.PendingVisible())
}

func TestPendingVisibleIncludesOrphanedPlaceholders(t *testing.T) {
	// A placeholder materialized under an expanded parent whose fetch was
	// never issued must be reported so the view can pick it up later.
	f := loadedForest(t, domain.Story{ID: 1, Kids: []int64{10}}, comment(10, 20))
	f.Expand(10)

	assert.Equal(t, []int64{20}, f.PendingVisible())

	// Collapsed subtrees are not refetched until shown again.
	f.Collapse(10)
	assert.Empty(t, f.PendingVisible())
}

func TestExpandMaterializesChildren(t *testing.T) {
	f := loadedForest(t, domain.Story{ID: 1, Kids: []int64{10}}, comment(10, 20, 21))

	toFetch := f.Expand(10)
	assert.Equal(t, []int64{20, 21}, toFetch)

	child := f.Node(20)
	require.NotNil(t, child)
	assert.Equal(t, int64(10), child.Parent)
	assert.Equal(t, 1, child.Depth)
	assert.True(t, child.Pending())

	// Visible shows placeholders under the expanded parent.
	assert.Equal(t, []int64{10, 20, 21}, f.Visible())
}

func TestExpandLeafYieldsNothing(t *testing.T) {
	f := loadedForest(t, domain.Story{ID: 1, Kids: []int64{10}}, comment(10))

	assert.Empty(t, f.Expand(10))
	assert.True(t, f.Node(10).Expanded)
	assert.Equal(t, []int64{10}, f.Visible())
}

func TestExpandUnloadedNodeIsNoop(t *testing.T) {
	f := NewForest(domain.Story{ID: 1, Kids: []int64{10}})

	assert.Empty(t, f.Expand(10))
	assert.False(t, f.Node(10).Expanded)
}

func TestCollapsePreservesDescendants(t *testing.T) {
	f := loadedForest(t, domain.Story{ID: 1, Kids: []int64{10}}, comment(10, 20))
	f.Expand(10)
	f.Apply(20, comment(20), nil)

	f.Collapse(10)
	assert.Equal(t, []int64{10}, f.Visible())

	// Re-expanding needs no refetch; the child is still loaded.
	assert.Empty(t, f.Expand(10))
	assert.Equal(t, []int64{10, 20}, f.Visible())
	assert.True(t, f.Node(20).Loaded)
}

func TestToggle(t *testing.T) {
	f := loadedForest(t, domain.Story{ID: 1, Kids: []int64{10}}, comment(10, 20))

	toFetch := f.Toggle(10)
	assert.Equal(t, []int64{20}, toFetch)
	assert.True(t, f.Node(10).Expanded)

	assert.Empty(t, f.Toggle(10))
	assert.False(t, f.Node(10).Expanded)
}

func TestApplyWhileExpandedRequestsChildren(t *testing.T) {
	// A refresh can reload an already expanded node; new children must be
	// materialized and queued.
	f := loadedForest(t, domain.Story{ID: 1, Kids: []int64{10}}, comment(10, 20))
	f.Expand(10)
	f.Apply(20, comment(20), nil)

	toFetch := f.Apply(10, comment(10, 20, 21), nil)
	assert.Equal(t, []int64{21}, toFetch, "only the new child needs a fetch")
	assert.Equal(t, []int64{10, 20, 21}, f.Visible())
}

func TestApplyFailureKeepsLoadedContent(t *testing.T) {
	f := loadedForest(t, domain.Story{ID: 1, Kids: []int64{10}}, comment(10))

	f.Apply(10, domain.Comment{}, errors.New("boom"))
	n := f.Node(10)
	assert.True(t, n.Loaded, "a refresh failure must not blank a loaded node")
	assert.False(t, n.Failed())
	assert.Equal(t, "t", n.Comment.Text)
}

func TestPartialFailureAndRetry(t *testing.T) {
	f := loadedForest(t, domain.Story{ID: 1, Kids: []int64{10}}, comment(10, 20, 21))
	f.Expand(10)

	f.Apply(20, comment(20), nil)
	f.Apply(21, domain.Comment{}, errors.New("boom"))

	assert.True(t, f.Node(21).Failed())
	assert.Equal(t, []int64{10, 20, 21}, f.Visible(), "failed slot stays visible")

	// Retrying the failed slot clears the error and requeues only it.
	assert.Equal(t, []int64{21}, f.Retry(21))
	assert.True(t, f.Node(21).Pending())

	f.Apply(21, comment(21), nil)
	assert.True(t, f.Node(21).Loaded)
}

func TestCollapseThenExpandRetriesFailedChildren(t *testing.T) {
	f := loadedForest(t, domain.Story{ID: 1, Kids: []int64{10}}, comment(10, 20))
	f.Expand(10)
	f.Apply(20, domain.Comment{}, errors.New("boom"))

	f.Collapse(10)
	toFetch := f.Expand(10)
	assert.Equal(t, []int64{20}, toFetch, "failed children are refetched on expand")
	assert.True(t, f.Node(20).Pending())
}

func TestCollapseThread(t *testing.T) {
	f := loadedForest(t, domain.Story{ID: 1, Kids: []int64{10}}, comment(10, 20))
	f.Expand(10)
	f.Apply(20, comment(20, 30), nil)
	f.Expand(20)
	f.Apply(30, comment(30), nil)

	// From a collapsed depth-2 leaf the gesture folds its parent subtree.
	collapsed := f.CollapseThread(30)
	assert.Equal(t, int64(20), collapsed)
	assert.False(t, f.Node(20).Expanded)
	assert.Equal(t, []int64{10, 20}, f.Visible())

	// On a top-level node it folds that node itself.
	collapsed = f.CollapseThread(10)
	assert.Equal(t, int64(10), collapsed)
	assert.Equal(t, []int64{10}, f.Visible())
}

func TestCollapseThreadOnExpandedNodeFoldsItself(t *testing.T) {
	f := loadedForest(t, domain.Story{ID: 1, Kids: []int64{10}}, comment(10, 20))
	f.Expand(10)
	f.Apply(20, comment(20, 30), nil)
	f.Expand(20)
	f.Apply(30, comment(30), nil)

	// The cursor node is itself expanded, so it is the nearest expanded
	// node on its path and folds without touching its parent.
	collapsed := f.CollapseThread(20)
	assert.Equal(t, int64(20), collapsed)
	assert.False(t, f.Node(20).Expanded)
	assert.True(t, f.Node(10).Expanded)
	assert.Equal(t, []int64{10, 20}, f.Visible())
}

func TestDeletedCommentRemainsNavigable(t *testing.T) {
	deleted := domain.Comment{ID: 10, Deleted: true, Kids: []int64{20}}
	f := loadedForest(t, domain.Story{ID: 1, Kids: []int64{10}}, deleted)

	toFetch := f.Expand(10)
	assert.Equal(t, []int64{20}, toFetch, "a deleted comment's children stay reachable")
}

func TestDeepNesting(t *testing.T) {
	f := NewForest(domain.Story{ID: 1, Kids: []int64{10}})
	f.Apply(10, comment(10, 11), nil)

	id := int64(10)
	for next := int64(11); next < 60; next++ {
		f.Expand(id)
		f.Apply(next, comment(next, next+1), nil)
		id = next
	}

	visible := f.Visible()
	assert.Equal(t, 50, len(visible))
	last := f.Node(visible[len(visible)-1])
	assert.Equal(t, len(visible)-1, last.Depth)
}
