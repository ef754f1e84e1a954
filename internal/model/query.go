package model

// StatsQuery parameters for the upstream per-game stats endpoint. Empty slices are omitted.
type StatsQuery struct {
	PlayerIDs  []int
	Seasons    []int
	GameIDs    []int64
	Postseason *bool
}

// StatsResult every stat line for a query, across all pages
type StatsResult struct {
	Stats []BDLStat
	Pages int
	// Truncated the page guard stopped pagination before the provider said "no more"
	Truncated bool
}
