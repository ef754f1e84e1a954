package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"PropScope/internal/analytics"
	"PropScope/internal/config"
	"PropScope/internal/interfaces"
	"PropScope/internal/model"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// maxLookupChunk upstream limit on game ids per request
const maxLookupChunk = 100

// TeammateService resolves the games a teammate sat out
type TeammateService struct {
	provider interfaces.StatsProvider
	cfg      *config.UpstreamConfig
	logger   *logrus.Logger
}

// NewTeammateService creates TeammateService
func NewTeammateService(provider interfaces.StatsProvider, cfg *config.UpstreamConfig, logger *logrus.Logger) *TeammateService {
	return &TeammateService{provider: provider, cfg: cfg, logger: logger}
}

// TeammateOutRequest one cross-reference lookup
type TeammateOutRequest struct {
	PlayerID   int     `json:"player_id"`
	TeammateID int     `json:"teammate_id"`
	Season     int     `json:"season"`
	MaxMinutes float64 `json:"max_minutes"`
}

// TeammateOutResult qualifying games, as ids (join key) and the primary player's dates
// for them (fallback join key)
type TeammateOutResult struct {
	GameIDs []int64  `json:"out_game_ids"`
	Dates   []string `json:"out_dates"`
	// DatesComplete false when a date lookup chunk failed; ids are still complete
	DatesComplete bool `json:"dates_complete"`
}

// OutGames the result as a filter input
func (r *TeammateOutResult) OutGames() *analytics.OutGames {
	return analytics.NewOutGames(r.GameIDs, r.Dates)
}

// Resolve fetches the teammate's season, keeps games at or under MaxMinutes and maps them
// to the primary player's dates with chunked lookups issued concurrently
func (s *TeammateService) Resolve(ctx context.Context, req TeammateOutRequest) (*TeammateOutResult, error) {
	switch {
	case req.PlayerID <= 0:
		return nil, &model.MissingInputError{Field: "player_id"}
	case req.TeammateID <= 0:
		return nil, &model.MissingInputError{Field: "teammate_id"}
	case req.Season <= 0:
		return nil, &model.MissingInputError{Field: "season"}
	}
	if req.MaxMinutes < 0 {
		req.MaxMinutes = 0
	}

	res, err := s.provider.FetchAllStats(ctx, model.StatsQuery{
		PlayerIDs: []int{req.TeammateID},
		Seasons:   []int{req.Season},
	})
	if err != nil {
		return nil, fmt.Errorf("fetch teammate stats: %w", err)
	}

	seen := make(map[int64]struct{})
	var ids []int64
	for _, st := range res.Stats {
		if st.Game.ID == 0 {
			continue
		}
		if analytics.ParseMinutes(string(st.Min)) > req.MaxMinutes {
			continue
		}
		if _, dup := seen[st.Game.ID]; dup {
			continue
		}
		seen[st.Game.ID] = struct{}{}
		ids = append(ids, st.Game.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := &TeammateOutResult{GameIDs: ids, Dates: []string{}, DatesComplete: true}
	if len(ids) == 0 {
		return out, nil
	}
	out.Dates, out.DatesComplete = s.lookupDates(ctx, req.PlayerID, ids)

	s.logger.WithFields(logrus.Fields{
		"player_id":   req.PlayerID,
		"teammate_id": req.TeammateID,
		"season":      req.Season,
		"max_minutes": req.MaxMinutes,
		"out_games":   len(out.GameIDs),
		"out_dates":   len(out.Dates),
	}).Info("teammate-out resolved")
	return out, nil
}

// lookupDates maps game ids to the primary player's game dates. A failed chunk is logged
// and skipped.
func (s *TeammateService) lookupDates(ctx context.Context, playerID int, ids []int64) ([]string, bool) {
	chunks := ChunkIDs(ids, s.chunkSize())

	var (
		mu       sync.Mutex
		dates    = make(map[string]struct{})
		complete = true
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency())
	for _, chunk := range chunks {
		g.Go(func() error {
			res, err := s.provider.FetchAllStats(gctx, model.StatsQuery{
				PlayerIDs: []int{playerID},
				GameIDs:   chunk,
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				complete = false
				s.logger.WithError(err).WithField("chunk_size", len(chunk)).Warn("teammate-out date lookup failed")
				return nil
			}
			for _, st := range res.Stats {
				if d, ok := analytics.ParseGameDate(st.Game.Date); ok {
					dates[d.Format(model.DateLayout)] = struct{}{}
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	list := make([]string, 0, len(dates))
	for d := range dates {
		list = append(list, d)
	}
	sort.Strings(list)
	return list, complete
}

func (s *TeammateService) chunkSize() int {
	n := s.cfg.LookupChunk
	if n <= 0 || n > maxLookupChunk {
		return 90
	}
	return n
}

func (s *TeammateService) concurrency() int {
	if s.cfg.LookupConcurrency <= 0 {
		return 1
	}
	return s.cfg.LookupConcurrency
}

// ChunkIDs splits ids into consecutive slices of at most size elements
func ChunkIDs(ids []int64, size int) [][]int64 {
	if size <= 0 {
		size = len(ids)
	}
	var chunks [][]int64
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
