package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"hnterm/app"
	"hnterm/domain"
	"hnterm/infra/logging"
)

// PageKey identifies one page of one story category at one page size.
type PageKey struct {
	Type domain.StoryType
	Page int
	Size int
}

// Page is the cached value for a PageKey. TotalIDs is the length of the
// category's full id list at fetch time, used to clamp forward paging.
type Page struct {
	Stories  []domain.Story
	TotalIDs int
}

// LastPage returns the highest reachable page index for the given size.
func (p Page) LastPage(size int) int {
	if p.TotalIDs <= 0 || size <= 0 {
		return 0
	}
	return (p.TotalIDs - 1) / size
}

// PageResult is the completion message for a page fetch. It re-enters the
// update loop as a bubbletea message.
type PageResult struct {
	Key        PageKey
	Page       Page
	Generation uint64
	Err        error
}

// ItemResult is the completion message for a single comment fetch.
type ItemResult struct {
	StoryID    int64
	ID         int64
	Comment    domain.Comment
	Generation uint64
	Err        error
}

// Outcome classifies an applied completion for the view layer.
type Outcome int

const (
	// OutcomeUpdated means the result is current and the view should
	// re-render from it.
	OutcomeUpdated Outcome = iota

	// OutcomeFailed means the fetch errored while its view is still
	// current; the view should surface the error.
	OutcomeFailed

	// OutcomeSuperseded means the view moved on while the fetch ran. The
	// data has been absorbed into the cache but no view update is owed.
	OutcomeSuperseded
)

// Options tunes a Store. Zero fields fall back to defaults.
type Options struct {
	PageTTL    time.Duration
	ItemTTL    time.Duration
	PageCap    int
	ItemCap    int
	FetchLimit int
}

func (o Options) withDefaults() Options {
	if o.PageTTL <= 0 {
		o.PageTTL = 10 * time.Second
	}
	if o.ItemTTL <= 0 {
		o.ItemTTL = 5 * time.Minute
	}
	if o.PageCap < 1 {
		o.PageCap = 64
	}
	if o.ItemCap < 1 {
		o.ItemCap = 256
	}
	if o.FetchLimit < 1 {
		o.FetchLimit = 8
	}
	return o
}

// Store is the caching layer between the gateway and the UI. It serves
// snapshots synchronously and hands back fetch closures for the UI to run as
// commands; completions come back through ApplyPage and ApplyItem.
//
// Results are stamped with the store generation current when the fetch
// started. The UI advances the generation whenever its context changes, so a
// completion from an abandoned context is absorbed into the cache without
// triggering a render. Fetches are never cancelled.
type Store struct {
	gw    app.Gateway
	pages *table[PageKey, Page]
	items *table[int64, domain.Comment]

	mu         sync.Mutex
	generation uint64

	fetchLimit int
	sem        chan struct{}
}

// NewStore creates a Store over the given gateway.
func NewStore(gw app.Gateway, opts Options) *Store {
	opts = opts.withDefaults()
	return &Store{
		gw:         gw,
		pages:      newTable[PageKey, Page](opts.PageTTL, opts.PageCap),
		items:      newTable[int64, domain.Comment](opts.ItemTTL, opts.ItemCap),
		fetchLimit: opts.FetchLimit,
		sem:        make(chan struct{}, opts.FetchLimit),
	}
}

// Generation returns the current view generation.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Advance bumps the view generation. In-flight fetches keep their old stamp
// and will be reported as superseded when they complete.
func (s *Store) Advance() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// PageFetch runs a page fetch and produces its completion message.
type PageFetch func(ctx context.Context) PageResult

// ItemFetch runs a comment fetch and produces its completion message.
type ItemFetch func(ctx context.Context) ItemResult

// Page returns the cached snapshot for key and, when the slot is missing or
// expired, a fetch closure the caller must run. A nil closure means the
// cache already has fresh data or another fetch for the key is in flight.
func (s *Store) Page(key PageKey) (Entry[Page], PageFetch) {
	return s.page(key, false)
}

// RefreshPage is Page with the TTL check bypassed.
func (s *Store) RefreshPage(key PageKey) (Entry[Page], PageFetch) {
	return s.page(key, true)
}

func (s *Store) page(key PageKey, force bool) (Entry[Page], PageFetch) {
	entry, start := s.pages.acquire(key, force)
	if !start {
		return entry, nil
	}
	gen := s.Generation()
	return entry, func(ctx context.Context) PageResult {
		page, err := s.fetchPage(ctx, key)
		return PageResult{Key: key, Page: page, Generation: gen, Err: err}
	}
}

// Item returns the cached snapshot for a comment id and, when needed, a
// fetch closure. storyID tags the completion so the UI can tell which
// discussion it belongs to.
func (s *Store) Item(storyID, id int64) (Entry[domain.Comment], ItemFetch) {
	return s.item(storyID, id, false)
}

// RefreshItem is Item with the TTL check bypassed.
func (s *Store) RefreshItem(storyID, id int64) (Entry[domain.Comment], ItemFetch) {
	return s.item(storyID, id, true)
}

func (s *Store) item(storyID, id int64, force bool) (Entry[domain.Comment], ItemFetch) {
	entry, start := s.items.acquire(id, force)
	if !start {
		return entry, nil
	}
	gen := s.Generation()
	return entry, func(ctx context.Context) ItemResult {
		select {
		case s.sem <- struct{}{}:
		case <-ctx.Done():
			return ItemResult{StoryID: storyID, ID: id, Generation: gen, Err: ctx.Err()}
		}
		defer func() { <-s.sem }()

		c, err := s.gw.Comment(ctx, id)
		return ItemResult{StoryID: storyID, ID: id, Comment: c, Generation: gen, Err: err}
	}
}

// ApplyPage absorbs a page completion into the cache and classifies it for
// the view. Data is absorbed even when the result is superseded.
func (s *Store) ApplyPage(r PageResult) Outcome {
	s.pages.complete(r.Key, r.Page, r.Err)
	return s.classify(r.Generation, r.Err)
}

// ApplyItem absorbs a comment completion into the cache and classifies it.
func (s *Store) ApplyItem(r ItemResult) Outcome {
	s.items.complete(r.ID, r.Comment, r.Err)
	return s.classify(r.Generation, r.Err)
}

// PeekPage returns the cached snapshot for a page without starting a
// fetch.
func (s *Store) PeekPage(key PageKey) Entry[Page] {
	return s.pages.peek(key)
}

// PeekItem returns the cached snapshot for a comment without starting a
// fetch.
func (s *Store) PeekItem(id int64) Entry[domain.Comment] {
	return s.items.peek(id)
}

func (s *Store) classify(gen uint64, err error) Outcome {
	if gen != s.Generation() {
		return OutcomeSuperseded
	}
	if err != nil {
		return OutcomeFailed
	}
	return OutcomeUpdated
}

// fetchPage resolves the category's id list, windows it to the requested
// page and fetches the stories concurrently. Ids that no longer resolve are
// skipped; any other story failure fails the page.
func (s *Store) fetchPage(ctx context.Context, key PageKey) (Page, error) {
	ids, err := s.gw.CategoryIDs(ctx, key.Type)
	if err != nil {
		return Page{}, err
	}

	start := key.Page * key.Size
	if start > len(ids) {
		start = len(ids)
	}
	end := start + key.Size
	if end > len(ids) {
		end = len(ids)
	}
	window := ids[start:end]

	stories := make([]*domain.Story, len(window))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fetchLimit)
	for i, id := range window {
		g.Go(func() error {
			st, err := s.gw.Story(gctx, id)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					logging.Log.WithField("id", id).Debug("story id no longer resolves")
					return nil
				}
				return err
			}
			stories[i] = &st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Page{}, err
	}

	page := Page{Stories: make([]domain.Story, 0, len(window)), TotalIDs: len(ids)}
	for _, st := range stories {
		if st != nil {
			page.Stories = append(page.Stories, *st)
		}
	}
	return page, nil
}
