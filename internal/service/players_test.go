package service

import (
	"context"
	"testing"

	"PropScope/internal/model"
)

func TestNormalizeName(t *testing.T) {
	tests := map[string]string{
		"Nikola Jokić":            "nikola jokic",
		"  Luka   Dončić ":        "luka doncic",
		"Shai Gilgeous-Alexander": "shai gilgeous-alexander",
		"P.J. Washington Jr.":     "p.j. washington jr.",
		"D'Angelo Russell":        "d angelo russell",
	}
	for in, want := range tests {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestScoreNameRanking(t *testing.T) {
	exact := ScoreName("LeBron James", "lebron james")
	prefix := ScoreName("LeBron James", "leb")
	other := ScoreName("Bronny James", "lebron james")
	if !(exact > other) {
		t.Errorf("exact %v should beat other %v", exact, other)
	}
	if prefix <= 0 {
		t.Errorf("prefix score = %v", prefix)
	}
	if ScoreName("", "x") != 0 {
		t.Error("empty candidate should score 0")
	}
}

func TestSearchRanksBestFirst(t *testing.T) {
	p := newFakeProvider()
	p.players = []model.BDLPlayer{
		{ID: 1, FirstName: "Jaylen", LastName: "Brown"},
		{ID: 2, FirstName: "Jalen", LastName: "Brunson", Team: &model.BDLTeam{Abbreviation: "NYK"}},
		{ID: 3, FirstName: "Jalen", LastName: "Green", TeamID: 11},
	}
	svc := NewPlayerService(p, quietLogger())

	hits, err := svc.Search(context.Background(), "jalen brunson")
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 3 || hits[0].ID != 2 || hits[0].TeamTri != "NYK" {
		t.Errorf("hits = %+v", hits)
	}
	if hits[2].ID != 1 {
		t.Errorf("Jaylen Brown should rank last, got %+v", hits)
	}

	hits, err = svc.Search(context.Background(), "   ")
	if err != nil || len(hits) != 0 {
		t.Errorf("blank query = %v %v", hits, err)
	}
}
