package hackernews

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"hnterm/domain"
)

// item is the wire shape of /v0/item/{id}.json. Stories and comments share
// one schema; Type distinguishes them.
type item struct {
	ID          int64   `json:"id"`
	Type        string  `json:"type"`
	By          string  `json:"by"`
	Time        int64   `json:"time"`
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Score       int     `json:"score"`
	Descendants int     `json:"descendants"`
	Text        string  `json:"text"`
	Kids        []int64 `json:"kids"`
	Deleted     bool    `json:"deleted"`
	Dead        bool    `json:"dead"`
}

// decodeItem parses an item response. The API answers "null" for ids that do
// not exist, which maps to domain.ErrNotFound; any other non-object body is
// domain.ErrMalformed.
func decodeItem(data []byte) (item, error) {
	body := strings.TrimSpace(string(data))
	if body == "" || body == "null" {
		return item{}, domain.ErrNotFound
	}

	probe := gjson.ParseBytes(data)
	if !probe.IsObject() || !probe.Get("id").Exists() {
		return item{}, fmt.Errorf("%w: item body is not an object", domain.ErrMalformed)
	}

	var it item
	if err := json.Unmarshal(data, &it); err != nil {
		return item{}, fmt.Errorf("%w: %v", domain.ErrMalformed, err)
	}
	return it, nil
}

func toStory(it item) domain.Story {
	return domain.Story{
		ID:          it.ID,
		Title:       it.Title,
		URL:         it.URL,
		Score:       it.Score,
		Author:      it.By,
		SubmittedAt: time.Unix(it.Time, 0),
		Kids:        it.Kids,
		Descendants: it.Descendants,
	}
}

func toComment(it item) domain.Comment {
	return domain.Comment{
		ID:          it.ID,
		Author:      it.By,
		Text:        stripHTML(it.Text),
		SubmittedAt: time.Unix(it.Time, 0),
		Kids:        it.Kids,
		Deleted:     it.Deleted,
		Dead:        it.Dead,
	}
}

var (
	lineBreakRe = regexp.MustCompile(`(?i)<p[^>]*>|<br\s*/?>`)
	htmlTagRe   = regexp.MustCompile(`<[^>]*>`)
)

// stripHTML converts comment markup to plain text: paragraph and break tags
// become newlines, all other tags are removed, entities are unescaped.
func stripHTML(s string) string {
	s = lineBreakRe.ReplaceAllString(s, "\n")
	s = htmlTagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(s))
}
