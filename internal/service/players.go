package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"PropScope/internal/interfaces"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// PlayerService player picker search
type PlayerService struct {
	provider interfaces.StatsProvider
	logger   *logrus.Logger
}

// NewPlayerService creates PlayerService
func NewPlayerService(provider interfaces.StatsProvider, logger *logrus.Logger) *PlayerService {
	return &PlayerService{provider: provider, logger: logger}
}

// PlayerHit one search result
type PlayerHit struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	TeamTri string  `json:"team_tri"`
	Score   float64 `json:"score"`
}

// Search queries the provider and ranks matches, best first
func (s *PlayerService) Search(ctx context.Context, query string) ([]PlayerHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []PlayerHit{}, nil
	}
	players, err := s.provider.SearchPlayers(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search players: %w", err)
	}

	hits := make([]PlayerHit, 0, len(players))
	for _, p := range players {
		name := p.FullName()
		hits = append(hits, PlayerHit{
			ID:      p.ID,
			Name:    name,
			TeamTri: p.TeamAbbrev(),
			Score:   ScoreName(name, query),
		})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	return hits, nil
}

// NormalizeName lowercases, strips diacritics and collapses everything except letters,
// dots and hyphens to single spaces
func NormalizeName(s string) string {
	// transformers carry state, so one chain per call
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	folded = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || r == '.' || r == '-' {
			return r
		}
		return ' '
	}, folded)
	return strings.Join(strings.Fields(folded), " ")
}

// ScoreName token matching plus a Levenshtein similarity tiebreaker. An exact match earns
// 3, each query token 1 for a whole-word hit and 1 for a word prefix.
func ScoreName(candidate, query string) float64 {
	c, q := NormalizeName(candidate), NormalizeName(query)
	if c == "" || q == "" {
		return 0
	}
	var score float64
	if c == q {
		score += 3
	}
	words := strings.Fields(c)
	for _, qt := range strings.Fields(q) {
		for _, w := range words {
			if w == qt {
				score++
				break
			}
		}
		for _, w := range words {
			if strings.HasPrefix(w, qt) {
				score++
				break
			}
		}
	}

	distance := fuzzy.LevenshteinDistance(q, c)
	similarity := 1 - float64(distance)/float64(max(len(q), len(c)))
	if similarity > 0 {
		score += similarity
	}
	return score
}
