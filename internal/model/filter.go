package model

import "time"

// RestBucket scheduling rest categories. The value is the number of full off days.
type RestBucket string

const (
	RestB2B       RestBucket = "0"  // second night of a back-to-back, gap == 1
	RestOneDay    RestBucket = "1"  // gap == 2
	RestTwoDays   RestBucket = "2"  // gap == 3
	RestThreePlus RestBucket = "3+" // gap >= 4
)

// ParseRestBucket accepts the bucket values plus a few readable aliases
func ParseRestBucket(s string) (RestBucket, bool) {
	switch s {
	case "0", "b2b", "B2B":
		return RestB2B, true
	case "1":
		return RestOneDay, true
	case "2":
		return RestTwoDays, true
	case "3+", "3", "3plus":
		return RestThreePlus, true
	}
	return "", false
}

// Matches reports whether a day gap falls in the bucket
func (b RestBucket) Matches(gap int) bool {
	switch b {
	case RestB2B:
		return gap == 1
	case RestOneDay:
		return gap == 2
	case RestTwoDays:
		return gap == 3
	case RestThreePlus:
		return gap >= 4
	}
	return false
}

// BucketForGap classifies a day gap; false for gaps below one day
func BucketForGap(gap int) (RestBucket, bool) {
	for _, b := range []RestBucket{RestB2B, RestOneDay, RestTwoDays, RestThreePlus} {
		if b.Matches(gap) {
			return b, true
		}
	}
	return "", false
}

// DateRange inclusive calendar-day range; a zero bound is open
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether day lies inside the range
func (r DateRange) Contains(day time.Time) bool {
	if !r.Start.IsZero() && day.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && day.After(r.End) {
		return false
	}
	return true
}

// TeammateOutSpec restricts the sample to games the teammate sat (minutes <= MaxMinutes)
type TeammateOutSpec struct {
	TeammateID int     `json:"teammate_id"`
	MaxMinutes float64 `json:"max_minutes"`
}

// FilterSpec one query's filter configuration. Passed by value.
type FilterSpec struct {
	LastN       Optional[int]             `json:"last_n"`
	MinMinutes  Optional[float64]         `json:"min_minutes"`
	HomeAway    Optional[HomeAway]        `json:"home_away"`
	Opponent    Optional[string]          `json:"opponent"`
	Rest        Optional[RestBucket]      `json:"rest"`
	DateRange   Optional[DateRange]       `json:"date_range"`
	TeammateOut Optional[TeammateOutSpec] `json:"teammate_out"`
}

// Merge fills every absent field of f from base
func (f FilterSpec) Merge(base FilterSpec) FilterSpec {
	if !f.LastN.IsPresent() {
		f.LastN = base.LastN
	}
	if !f.MinMinutes.IsPresent() {
		f.MinMinutes = base.MinMinutes
	}
	if !f.HomeAway.IsPresent() {
		f.HomeAway = base.HomeAway
	}
	if !f.Opponent.IsPresent() {
		f.Opponent = base.Opponent
	}
	if !f.Rest.IsPresent() {
		f.Rest = base.Rest
	}
	if !f.DateRange.IsPresent() {
		f.DateRange = base.DateRange
	}
	if !f.TeammateOut.IsPresent() {
		f.TeammateOut = base.TeammateOut
	}
	return f
}

// EdgeInputs the bettor's line and price; both must be present for edge output
type EdgeInputs struct {
	PropLine     Optional[float64] `json:"prop_line"`
	AmericanOdds Optional[int]     `json:"american_odds"`
}
