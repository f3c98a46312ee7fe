package domain

import (
	"fmt"
	"time"
)

// ItemPageURL is the base for discussion links shown to the user when a
// submission has no external URL of its own.
const ItemPageURL = "https://news.ycombinator.com"

// StoryType selects which Hacker News ranking to browse.
type StoryType int

const (
	StoryTypeTop StoryType = iota
	StoryTypeNew
	StoryTypeBest
)

// Slug returns the API path fragment for the category ("top", "new", "best").
func (t StoryType) Slug() string {
	switch t {
	case StoryTypeTop:
		return "top"
	case StoryTypeNew:
		return "new"
	default:
		return "best"
	}
}

// String returns the display name for the category.
func (t StoryType) String() string {
	switch t {
	case StoryTypeTop:
		return "Top"
	case StoryTypeNew:
		return "New"
	default:
		return "Best"
	}
}

// ParseStoryType converts a CLI/config value into a StoryType.
func ParseStoryType(s string) (StoryType, error) {
	switch s {
	case "top":
		return StoryTypeTop, nil
	case "new":
		return StoryTypeNew, nil
	case "best":
		return StoryTypeBest, nil
	default:
		return 0, fmt.Errorf("invalid story type %q: must be top, new or best", s)
	}
}

// Story is an immutable snapshot of a single submission. A newer fetch of
// the same id produces a replacement value, never a mutation.
type Story struct {
	ID          int64
	Title       string
	URL         string // empty for text posts
	Score       int
	Author      string
	SubmittedAt time.Time
	Kids        []int64 // ordered top-level comment ids
	Descendants int     // total comment count
}

// Link returns the story's external URL, or its discussion page when the
// submission has none.
func (s Story) Link() string {
	if s.URL != "" {
		return s.URL
	}
	return fmt.Sprintf("%s/item?id=%d", ItemPageURL, s.ID)
}

// Comment is a single node of a story's discussion tree. Author and Text
// are empty when the comment was deleted or killed; its Kids, if any,
// remain navigable.
type Comment struct {
	ID          int64
	Author      string
	Text        string // plain text, HTML stripped
	SubmittedAt time.Time
	Kids        []int64 // ordered child comment ids
	Deleted     bool
	Dead        bool
}

// HasChildren reports whether the comment has replies.
func (c Comment) HasChildren() bool {
	return len(c.Kids) > 0
}
