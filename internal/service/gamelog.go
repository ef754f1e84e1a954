package service

import (
	"context"
	"errors"
	"fmt"

	"PropScope/internal/analytics"
	"PropScope/internal/config"
	"PropScope/internal/interfaces"
	"PropScope/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// GameLogService runs one game-log query end to end: ingestion, enrichment, teammate-out
// resolution, filtering, aggregation and the edge calculator
type GameLogService struct {
	provider  interfaces.StatsProvider
	teammates *TeammateService
	views     *ViewService
	cfg       *config.AnalyticsConfig
	logger    *logrus.Logger
}

// NewGameLogService creates GameLogService. views may be nil when no store is configured.
func NewGameLogService(provider interfaces.StatsProvider, teammates *TeammateService, views *ViewService, cfg *config.AnalyticsConfig, logger *logrus.Logger) *GameLogService {
	return &GameLogService{
		provider:  provider,
		teammates: teammates,
		views:     views,
		cfg:       cfg,
		logger:    logger,
	}
}

// Query one request. Zero PlayerID/Season and absent optionals mean "not given".
type Query struct {
	PlayerID   int
	Season     int
	Stat       model.StatKey
	Postseason *bool
	Filters    model.FilterSpec
	Edge       model.EdgeInputs
	// IncludeZeroMinutes overrides the configured DNP handling when set
	IncludeZeroMinutes model.Optional[bool]
	// ViewID seeds absent parameters from one of User's saved views
	ViewID string
	User   string
}

// QueryResult everything the UI renders for one query
type QueryResult struct {
	RequestID    string                  `json:"request_id"`
	PlayerID     int                     `json:"player_id"`
	Season       int                     `json:"season"`
	SeasonLabel  string                  `json:"season_label"`
	Stat         model.StatKey           `json:"stat"`
	Filters      model.FilterSpec        `json:"filters"`
	Edge         model.EdgeInputs        `json:"edge_inputs"`
	SeasonGames  int                     `json:"season_games"`
	Pages        int                     `json:"pages"`
	Rows         []model.EnrichedGame    `json:"rows"`
	Summary      analytics.Summary       `json:"summary"`
	Result       analytics.EdgeResult    `json:"edge"`
	Correlations []analytics.Correlation `json:"correlations"`
	Warnings     []model.Warning         `json:"warnings"`
}

func (r *QueryResult) warn(code, format string, args ...any) {
	r.Warnings = append(r.Warnings, model.Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}

// Query runs the pipeline. Auth and upstream failures of the primary fetch fail the whole
// query; the teammate-out lookup only degrades.
func (s *GameLogService) Query(ctx context.Context, q Query) (*QueryResult, error) {
	res := &QueryResult{RequestID: uuid.NewString(), Warnings: []model.Warning{}}

	if q.ViewID != "" {
		if err := s.applyView(ctx, &q, res); err != nil {
			return nil, err
		}
	}
	if err := s.validate(&q, res); err != nil {
		return nil, err
	}
	res.PlayerID, res.Season, res.Stat = q.PlayerID, q.Season, q.Stat
	res.SeasonLabel = analytics.SeasonLabel(q.Season)
	res.Filters, res.Edge = q.Filters, q.Edge

	log := s.logger.WithFields(logrus.Fields{
		"request_id": res.RequestID,
		"player_id":  q.PlayerID,
		"season":     q.Season,
		"stat":       q.Stat,
	})

	fetched, err := s.provider.FetchAllStats(ctx, model.StatsQuery{
		PlayerIDs:  []int{q.PlayerID},
		Seasons:    []int{q.Season},
		Postseason: q.Postseason,
	})
	if err != nil {
		log.WithError(err).Warn("game-log ingestion failed")
		return nil, fmt.Errorf("fetch game logs: %w", err)
	}
	res.Pages = fetched.Pages
	if fetched.Truncated {
		res.warn(model.WarnPageLimitReached, "stopped after %d pages; the season may be incomplete", fetched.Pages)
	}

	enriched := analytics.Enrich(analytics.Normalize(fetched.Stats))
	res.SeasonGames = len(enriched)

	opts := analytics.FilterOptions{
		IncludeZeroMinutes: q.IncludeZeroMinutes.OrElse(s.cfg.IncludeZeroMinutes),
	}
	if spec, ok := q.Filters.TeammateOut.Get(); ok {
		opts.OutGames = s.resolveTeammateOut(ctx, q, spec, res, log)
	}

	res.Rows = analytics.Apply(enriched, q.Filters, opts)
	series := analytics.Series(res.Rows, q.Stat)
	res.Summary = analytics.Summarize(res.Rows, q.Stat, s.cfg.RecencyWeight)
	res.Result = analytics.EvaluateEdge(series, q.Edge, s.cfg.WilsonZ)
	res.Correlations = analytics.CorrelationHints(res.Rows)

	log.WithFields(logrus.Fields{
		"pages":    res.Pages,
		"games":    res.SeasonGames,
		"rows":     len(res.Rows),
		"warnings": len(res.Warnings),
	}).Info("game-log query served")
	return res, nil
}

// resolveTeammateOut any failure, including auth, turns the filter into a no-op
func (s *GameLogService) resolveTeammateOut(ctx context.Context, q Query, spec model.TeammateOutSpec, res *QueryResult, log *logrus.Entry) *analytics.OutGames {
	if s.teammates == nil {
		res.warn(model.WarnTeammateOutDegraded, "teammate-out lookup unavailable; filter ignored")
		return nil
	}
	out, err := s.teammates.Resolve(ctx, TeammateOutRequest{
		PlayerID:   q.PlayerID,
		TeammateID: spec.TeammateID,
		Season:     q.Season,
		MaxMinutes: spec.MaxMinutes,
	})
	if err != nil {
		log.WithError(err).WithField("teammate_id", spec.TeammateID).Warn("teammate-out lookup failed, filter ignored")
		res.warn(model.WarnTeammateOutDegraded, "teammate-out lookup failed; filter ignored: %v", err)
		return nil
	}
	return out.OutGames()
}

// validate rejects missing inputs before any network call and normalizes soft problems
// into warnings
func (s *GameLogService) validate(q *Query, res *QueryResult) error {
	if q.PlayerID <= 0 {
		return &model.MissingInputError{Field: "player_id"}
	}
	if q.Season <= 0 {
		return &model.MissingInputError{Field: "season"}
	}
	if q.Stat == "" {
		q.Stat = model.StatPoints
	}
	if raw, ok := q.Filters.Opponent.Get(); ok {
		if _, resolved := model.ResolveTeamID(raw); !resolved {
			res.warn(model.WarnOpponentUnresolved, "opponent %q is not a known team; filter ignored", raw)
		}
	}
	if odds, ok := q.Edge.AmericanOdds.Get(); ok && odds == 0 {
		q.Edge.AmericanOdds = model.None[int]()
		res.warn(model.WarnInvalidOdds, "american odds of 0 are not a price; edge not computed")
	}
	if n, ok := q.Filters.LastN.Get(); ok && n <= 0 {
		q.Filters.LastN = model.None[int]()
	}
	return nil
}

// applyView fills every parameter the request left out from the saved view
func (s *GameLogService) applyView(ctx context.Context, q *Query, res *QueryResult) error {
	if s.views == nil {
		res.warn(model.WarnViewNotFound, "saved views are not enabled")
		return nil
	}
	params, err := s.views.Params(ctx, q.User, q.ViewID)
	if errors.Is(err, model.ErrViewNotFound) {
		res.warn(model.WarnViewNotFound, "saved view %s not found", q.ViewID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load saved view: %w", err)
	}

	if q.PlayerID == 0 {
		q.PlayerID = params.PlayerID
	}
	if q.Season == 0 {
		q.Season = params.Season
	}
	if q.Stat == "" {
		q.Stat = params.Stat
	}
	q.Filters = q.Filters.Merge(params.Filters)
	if !q.Edge.PropLine.IsPresent() {
		q.Edge.PropLine = params.Edge.PropLine
	}
	if !q.Edge.AmericanOdds.IsPresent() {
		q.Edge.AmericanOdds = params.Edge.AmericanOdds
	}
	return nil
}
