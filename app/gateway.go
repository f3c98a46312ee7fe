package app

import (
	"context"

	"hnterm/domain"
)

// Gateway fetches raw entities from the remote source. Implementations make
// a single attempt per call: no caching, no retries. Retry policy belongs to
// the caller so that retries can be checked against the caller's own
// relevance test.
type Gateway interface {
	// CategoryIDs returns the ranked item ids for a story category.
	CategoryIDs(ctx context.Context, t domain.StoryType) ([]int64, error)

	// Story fetches a single story by id.
	Story(ctx context.Context, id int64) (domain.Story, error)

	// Comment fetches a single comment by id.
	Comment(ctx context.Context, id int64) (domain.Comment, error)
}
