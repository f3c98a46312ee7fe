package domain

import "testing"

func TestStoryTypeSlug(t *testing.T) {
	cases := []struct {
		st   StoryType
		slug string
		name string
	}{
		{StoryTypeTop, "top", "Top"},
		{StoryTypeNew, "new", "New"},
		{StoryTypeBest, "best", "Best"},
	}
	for _, c := range cases {
		if got := c.st.Slug(); got != c.slug {
			t.Errorf("Slug() = %q, want %q", got, c.slug)
		}
		if got := c.st.String(); got != c.name {
			t.Errorf("String() = %q, want %q", got, c.name)
		}
	}
}

func TestParseStoryType(t *testing.T) {
	for _, slug := range []string{"top", "new", "best"} {
		st, err := ParseStoryType(slug)
		if err != nil {
			t.Fatalf("ParseStoryType(%q): %v", slug, err)
		}
		if st.Slug() != slug {
			t.Errorf("round trip %q -> %q", slug, st.Slug())
		}
	}
	if _, err := ParseStoryType("hot"); err == nil {
		t.Fatal("expected error for unknown story type")
	}
}

func TestStoryLink(t *testing.T) {
	s := Story{ID: 42, URL: "https://example.com/post"}
	if got := s.Link(); got != "https://example.com/post" {
		t.Errorf("Link() = %q", got)
	}
	s.URL = ""
	if got := s.Link(); got != "https://news.ycombinator.com/item?id=42" {
		t.Errorf("Link() without URL = %q", got)
	}
}
