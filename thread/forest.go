package thread

import (
	"hnterm/domain"
)

// Node is one slot in a discussion tree. A node exists as soon as its parent
// names it as a child; its Comment is filled in when the fetch lands.
// Expanded is a pure view preference and survives reloads of the content.
type Node struct {
	ID     int64
	Parent int64 // 0 for top-level comments
	Depth  int

	Comment domain.Comment
	Loaded  bool
	Err     error

	Expanded bool
}

// Failed reports whether the node's last fetch errored.
func (n *Node) Failed() bool {
	return !n.Loaded && n.Err != nil
}

// Pending reports whether the node is still waiting for its first
// successful fetch.
func (n *Node) Pending() bool {
	return !n.Loaded && n.Err == nil
}

// Forest holds the lazily materialized comment tree of one story. Nodes are
// kept in a flat arena keyed by id; child order follows the order the
// remote source reports.
type Forest struct {
	StoryID int64

	roots []int64
	nodes map[int64]*Node
}

// NewForest creates the skeleton for a story's discussion: one placeholder
// root per top-level comment id, nothing fetched yet.
func NewForest(story domain.Story) *Forest {
	f := &Forest{
		StoryID: story.ID,
		nodes:   make(map[int64]*Node, len(story.Kids)),
	}
	for _, id := range story.Kids {
		f.roots = append(f.roots, id)
		f.nodes[id] = &Node{ID: id}
	}
	return f
}

// Node returns the node for id, or nil if the forest has never seen it.
func (f *Forest) Node(id int64) *Node {
	return f.nodes[id]
}

// Roots returns the top-level comment ids in display order.
func (f *Forest) Roots() []int64 {
	return f.roots
}

// PendingVisible returns the visible node ids that still need a fetch:
// unloaded roots plus placeholders under expanded parents whose follow-up
// fetch never ran, such as one abandoned when the view was left.
func (f *Forest) PendingVisible() []int64 {
	var ids []int64
	for _, id := range f.Visible() {
		if n := f.nodes[id]; n != nil && !n.Loaded {
			ids = append(ids, id)
		}
	}
	return ids
}

// Apply records the result of fetching one comment. On success the node
// becomes loaded and, if it was already expanded, placeholders for its
// children are materialized and returned for fetching. On failure the node
// keeps any previously loaded content.
func (f *Forest) Apply(id int64, c domain.Comment, err error) []int64 {
	n := f.nodes[id]
	if n == nil {
		return nil
	}
	if err != nil {
		if !n.Loaded {
			n.Err = err
		}
		return nil
	}
	n.Comment = c
	n.Loaded = true
	n.Err = nil
	if n.Expanded {
		return f.ensureChildren(n)
	}
	return nil
}

// Expand marks the node expanded and returns the child ids that need a
// fetch. Children that failed before are included so expanding retries
// them. Expanding a loaded node with no children succeeds with an empty
// list; expanding an unloaded node is a no-op.
func (f *Forest) Expand(id int64) []int64 {
	n := f.nodes[id]
	if n == nil || !n.Loaded {
		return nil
	}
	n.Expanded = true
	return f.ensureChildren(n)
}

// Collapse hides the node's subtree. Loaded descendants stay in the arena
// and reappear unchanged on the next Expand.
func (f *Forest) Collapse(id int64) {
	if n := f.nodes[id]; n != nil {
		n.Expanded = false
	}
}

// Toggle expands a collapsed node or collapses an expanded one, returning
// any child ids that need a fetch.
func (f *Forest) Toggle(id int64) []int64 {
	n := f.nodes[id]
	if n == nil || !n.Loaded {
		return nil
	}
	if n.Expanded {
		n.Expanded = false
		return nil
	}
	return f.Expand(id)
}

// CollapseThread collapses the nearest expanded node on the path from id
// to its root, starting with id itself, and returns the id that was
// collapsed. This is the "fold the whole subthread" gesture: on an
// expanded node it folds that node, on a leaf it folds the parent.
func (f *Forest) CollapseThread(id int64) int64 {
	n := f.nodes[id]
	if n == nil {
		return 0
	}
	for !n.Expanded && n.Parent != 0 {
		parent := f.nodes[n.Parent]
		if parent == nil {
			break
		}
		n = parent
	}
	n.Expanded = false
	return n.ID
}

// Retry returns the ids to refetch for a failed node: the node itself.
func (f *Forest) Retry(id int64) []int64 {
	n := f.nodes[id]
	if n == nil || n.Loaded {
		return nil
	}
	n.Err = nil
	return []int64{id}
}

// Visible returns the node ids in display order: depth-first, children
// directly after their parent, skipping the subtrees of collapsed nodes.
func (f *Forest) Visible() []int64 {
	var out []int64
	var walk func(ids []int64)
	walk = func(ids []int64) {
		for _, id := range ids {
			n := f.nodes[id]
			if n == nil {
				continue
			}
			out = append(out, id)
			if n.Expanded && n.Loaded {
				walk(n.Comment.Kids)
			}
		}
	}
	walk(f.roots)
	return out
}

// ensureChildren materializes placeholder nodes for n's children and
// returns the ids that still need a fetch.
func (f *Forest) ensureChildren(n *Node) []int64 {
	var toFetch []int64
	for _, kid := range n.Comment.Kids {
		child := f.nodes[kid]
		if child == nil {
			child = &Node{ID: kid, Parent: n.ID, Depth: n.Depth + 1}
			f.nodes[kid] = child
		}
		if !child.Loaded {
			child.Err = nil
			toFetch = append(toFetch, kid)
		}
	}
	return toFetch
}
