package analytics

import (
	"math"
	"testing"
	"time"

	"PropScope/internal/model"
)

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		t.Fatalf("bad day %q: %v", s, err)
	}
	return d
}

// game builds a record for day with the given points and 30 minutes played
func game(t *testing.T, id int64, day string, pts int) model.GameRecord {
	t.Helper()
	d := mustDay(t, day)
	return model.GameRecord{
		PlayerID: 237,
		GameID:   id,
		Date:     d,
		Day:      day,
		Season:   2024,
		TeamID:   14,
		Minutes:  30,
		Points:   pts,
		HomeAway: model.Home,
	}
}

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
