package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseSeason accepts a bare start year ("2024") or a label ("2024-25", "2024-2025")
// and returns the start year
func ParseSeason(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	start := raw
	if i := strings.IndexAny(raw, "-/"); i > 0 {
		start = raw[:i]
		end := raw[i+1:]
		if _, err := strconv.Atoi(end); err != nil {
			return 0, false
		}
	}
	year, err := strconv.Atoi(start)
	if err != nil || year < 1946 || year > 2100 {
		return 0, false
	}
	return year, true
}

// SeasonLabel formats a start year as "2024-25"
func SeasonLabel(year int) string {
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

// CurrentSeason NBA seasons start in October
func CurrentSeason(now time.Time) int {
	if now.Month() >= time.October {
		return now.Year()
	}
	return now.Year() - 1
}
