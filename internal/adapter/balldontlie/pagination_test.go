package balldontlie

import (
	"testing"

	"PropScope/internal/model"
)

func TestNextToken(t *testing.T) {
	tests := []struct {
		name   string
		prev   PageToken
		meta   model.BDLMeta
		want   PageToken
		wantOK bool
	}{
		{"page style first", PageToken{}, model.BDLMeta{CurrentPage: 1, TotalPages: 3}, PageToken{Page: 2}, true},
		{"page style middle", PageToken{Page: 2}, model.BDLMeta{CurrentPage: 2, TotalPages: 3}, PageToken{Page: 3}, true},
		{"page style last", PageToken{Page: 3}, model.BDLMeta{CurrentPage: 3, TotalPages: 3}, PageToken{}, false},
		{"next_page field", PageToken{}, model.BDLMeta{CurrentPage: 1, NextPage: 2}, PageToken{Page: 2}, true},
		{"missing current page", PageToken{Page: 2}, model.BDLMeta{TotalPages: 3}, PageToken{Page: 3}, true},
		{"single page", PageToken{}, model.BDLMeta{}, PageToken{}, false},
		{"cursor first", PageToken{}, model.BDLMeta{NextCursor: "25"}, PageToken{Cursor: "25"}, true},
		{"cursor continues", PageToken{Cursor: "25"}, model.BDLMeta{NextCursor: "50"}, PageToken{Cursor: "50"}, true},
		{"cursor ends", PageToken{Cursor: "50"}, model.BDLMeta{}, PageToken{}, false},
		{"cursor ignores page counts", PageToken{Cursor: "50"}, model.BDLMeta{TotalPages: 9}, PageToken{}, false},
		{"repeated cursor stops", PageToken{Cursor: "50"}, model.BDLMeta{NextCursor: "50"}, PageToken{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextToken(tt.prev, tt.meta)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("NextToken = %+v %v, want %+v %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
