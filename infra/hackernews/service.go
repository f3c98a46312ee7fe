package hackernews

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"hnterm/app"
	"hnterm/domain"
)

type gateway struct {
	client *Client
}

// NewGateway returns an app.Gateway backed by the Hacker News API.
func NewGateway(c *Client) app.Gateway {
	return &gateway{client: c}
}

func (g *gateway) CategoryIDs(ctx context.Context, t domain.StoryType) ([]int64, error) {
	data, err := g.client.Get(ctx, fmt.Sprintf("/%sstories.json", t.Slug()))
	if err != nil {
		return nil, err
	}

	probe := gjson.ParseBytes(data)
	if !probe.IsArray() {
		return nil, fmt.Errorf("%w: id list is not an array", domain.ErrMalformed)
	}

	raw := probe.Array()
	ids := make([]int64, 0, len(raw))
	for _, r := range raw {
		if r.Type != gjson.Number {
			return nil, fmt.Errorf("%w: non-numeric id in list", domain.ErrMalformed)
		}
		ids = append(ids, r.Int())
	}
	return ids, nil
}

func (g *gateway) Story(ctx context.Context, id int64) (domain.Story, error) {
	it, err := g.item(ctx, id)
	if err != nil {
		return domain.Story{}, err
	}
	// Rankings mix job and poll items in with stories; deleted items can
	// come back with no type at all.
	switch it.Type {
	case "story", "job", "poll", "":
		return toStory(it), nil
	default:
		return domain.Story{}, fmt.Errorf("item %d: %w: type %q is not a story", id, domain.ErrMalformed, it.Type)
	}
}

func (g *gateway) Comment(ctx context.Context, id int64) (domain.Comment, error) {
	it, err := g.item(ctx, id)
	if err != nil {
		return domain.Comment{}, err
	}
	if it.Type != "comment" && it.Type != "" {
		return domain.Comment{}, fmt.Errorf("item %d: %w: type %q is not a comment", id, domain.ErrMalformed, it.Type)
	}
	return toComment(it), nil
}

func (g *gateway) item(ctx context.Context, id int64) (item, error) {
	data, err := g.client.Get(ctx, fmt.Sprintf("/item/%d.json", id))
	if err != nil {
		return item{}, err
	}
	it, err := decodeItem(data)
	if err != nil {
		return item{}, fmt.Errorf("item %d: %w", id, err)
	}
	return it, nil
}
