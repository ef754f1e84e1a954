package service

import (
	"context"
	"io"
	"sort"
	"sync"

	"PropScope/internal/config"
	"PropScope/internal/model"

	"github.com/sirupsen/logrus"
)

const (
	lakers  = 14
	celtics = 2
)

type fakeProvider struct {
	mu      sync.Mutex
	stats   map[int][]model.BDLStat
	errs    map[int]error
	players []model.BDLPlayer
	queries []model.StatsQuery
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{stats: map[int][]model.BDLStat{}, errs: map[int]error{}}
}

func (f *fakeProvider) GetName() string { return "fake" }

func (f *fakeProvider) FetchAllStats(_ context.Context, q model.StatsQuery) (*model.StatsResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if len(q.PlayerIDs) == 0 {
		return &model.StatsResult{}, nil
	}
	pid := q.PlayerIDs[0]
	if err := f.errs[pid]; err != nil {
		return nil, err
	}
	want := map[int64]bool{}
	for _, id := range q.GameIDs {
		want[id] = true
	}
	res := &model.StatsResult{Pages: 1}
	for _, s := range f.stats[pid] {
		if len(want) > 0 && !want[s.Game.ID] {
			continue
		}
		res.Stats = append(res.Stats, s)
	}
	return res, nil
}

func (f *fakeProvider) SearchPlayers(context.Context, string) ([]model.BDLPlayer, error) {
	return f.players, nil
}

func (f *fakeProvider) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

// line builds a Lakers stat line; home games are against Boston at home
func line(playerID int, gameID int64, date, min string, pts int, home bool) model.BDLStat {
	var s model.BDLStat
	s.Player.ID = playerID
	s.Team = model.BDLTeam{ID: lakers}
	s.Game = model.BDLGame{ID: gameID, Date: date + "T00:00:00.000Z", Season: 2024}
	if home {
		s.Game.HomeTeamID, s.Game.VisitorTeamID = lakers, celtics
	} else {
		s.Game.HomeTeamID, s.Game.VisitorTeamID = celtics+1, lakers
	}
	s.Min = model.FlexString(min)
	s.Pts = pts
	return s
}

type fakeViewStore struct {
	mu    sync.Mutex
	views map[string]model.SavedView
}

func newFakeViewStore() *fakeViewStore {
	return &fakeViewStore{views: map[string]model.SavedView{}}
}

func (f *fakeViewStore) Create(_ context.Context, v *model.SavedView) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.views[v.ViewUUID] = *v
	return nil
}

func (f *fakeViewStore) ListByUser(_ context.Context, email string) ([]model.SavedView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.SavedView
	for _, v := range f.views {
		if v.UserEmail == email {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeViewStore) GetByUUID(_ context.Context, id string) (*model.SavedView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.views[id]
	if !ok {
		return nil, model.ErrViewNotFound
	}
	return &v, nil
}

func (f *fakeViewStore) Delete(_ context.Context, email, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.views[id]
	if !ok || v.UserEmail != email {
		return false, nil
	}
	delete(f.views, id)
	return true, nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newServices(p *fakeProvider, store *fakeViewStore) (*GameLogService, *TeammateService, *ViewService) {
	cfg := config.Default()
	logger := quietLogger()
	teammates := NewTeammateService(p, &cfg.Upstream, logger)
	var views *ViewService
	if store != nil {
		views = NewViewService(store, logger)
	}
	return NewGameLogService(p, teammates, views, &cfg.Analytics, logger), teammates, views
}
