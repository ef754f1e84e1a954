package balldontlie

import (
	"strconv"

	"PropScope/internal/model"
)

// PageToken a continuation position. Exactly one idiom is in use per sequence: a page
// number or an opaque cursor. The zero token requests the first page.
type PageToken struct {
	Page   int
	Cursor string
}

// IsFirst reports whether the token requests the first page
func (t PageToken) IsFirst() bool {
	return t.Page <= 1 && t.Cursor == ""
}

func (t PageToken) String() string {
	if t.Cursor != "" {
		return "cursor:" + t.Cursor
	}
	if t.Page <= 0 {
		return "page:1"
	}
	return "page:" + strconv.Itoa(t.Page)
}

// NextToken computes the token after prev from a response's meta. false is the "no next"
// sentinel. Cursor meta wins when present; page meta is used otherwise.
func NextToken(prev PageToken, meta model.BDLMeta) (PageToken, bool) {
	if next := string(meta.NextCursor); next != "" {
		if next == prev.Cursor {
			return PageToken{}, false
		}
		return PageToken{Cursor: next}, true
	}
	if prev.Cursor != "" {
		return PageToken{}, false
	}

	current := meta.CurrentPage
	if current <= 0 {
		current = prev.Page
	}
	if current <= 0 {
		current = 1
	}
	if meta.NextPage > current {
		return PageToken{Page: meta.NextPage}, true
	}
	if meta.TotalPages > current {
		return PageToken{Page: current + 1}, true
	}
	return PageToken{}, false
}
