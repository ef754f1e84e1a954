package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"PropScope/internal/config"
	"PropScope/internal/model"
	"PropScope/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type stubProvider struct {
	stats   map[int][]model.BDLStat
	err     error
	players []model.BDLPlayer
}

func (s *stubProvider) GetName() string { return "stub" }

func (s *stubProvider) FetchAllStats(_ context.Context, q model.StatsQuery) (*model.StatsResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	want := map[int64]bool{}
	for _, id := range q.GameIDs {
		want[id] = true
	}
	res := &model.StatsResult{Pages: 1}
	for _, st := range s.stats[q.PlayerIDs[0]] {
		if len(want) == 0 || want[st.Game.ID] {
			res.Stats = append(res.Stats, st)
		}
	}
	return res, nil
}

func (s *stubProvider) SearchPlayers(context.Context, string) ([]model.BDLPlayer, error) {
	return s.players, s.err
}

type memViews struct {
	mu    sync.Mutex
	views []model.SavedView
}

func (m *memViews) Create(_ context.Context, v *model.SavedView) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views = append(m.views, *v)
	return nil
}

func (m *memViews) ListByUser(_ context.Context, email string) ([]model.SavedView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.SavedView
	for _, v := range m.views {
		if v.UserEmail == email {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memViews) GetByUUID(_ context.Context, id string) (*model.SavedView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.views {
		if v.ViewUUID == id {
			return &v, nil
		}
	}
	return nil, model.ErrViewNotFound
}

func (m *memViews) Delete(_ context.Context, email, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, v := range m.views {
		if v.ViewUUID == id && v.UserEmail == email {
			m.views = append(m.views[:i], m.views[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func stat(player int, game int64, date, min string, pts int) model.BDLStat {
	var s model.BDLStat
	s.Player.ID = player
	s.Team = model.BDLTeam{ID: 14}
	s.Game = model.BDLGame{ID: game, Date: date, HomeTeamID: 14, VisitorTeamID: 2}
	s.Min = model.FlexString(min)
	s.Pts = pts
	return s
}

func newRouter(p *stubProvider, store *memViews) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := config.Default()

	teammates := service.NewTeammateService(p, &cfg.Upstream, logger)
	var views *service.ViewService
	if store != nil {
		views = service.NewViewService(store, logger)
	}
	games := service.NewGameLogService(p, teammates, views, &cfg.Analytics, logger)
	players := service.NewPlayerService(p, logger)

	r := gin.New()
	RegisterRoutes(r,
		NewGameLogHandler(games, teammates, players, logger),
		NewViewHandler(views, logger),
	)
	return r
}

func seeded() *stubProvider {
	return &stubProvider{stats: map[int][]model.BDLStat{
		237: {
			stat(237, 1, "2024-01-01", "30:00", 20),
			stat(237, 2, "2024-01-02", "30:00", 25),
			stat(237, 3, "2024-01-04", "30:00", 30),
			stat(237, 4, "2024-01-06", "30:00", 18),
			stat(237, 5, "2024-01-07", "30:00", 22),
		},
		99: {
			stat(99, 2, "2024-01-02", "0:00", 0),
			stat(99, 4, "2024-01-06", "31:00", 12),
		},
	}}
}

func do(t *testing.T, r http.Handler, method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var out map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode %s: %v", w.Body.String(), err)
		}
	}
	return w, out
}

func TestGameLogQuery(t *testing.T) {
	r := newRouter(seeded(), nil)
	w, body := do(t, r, http.MethodGet, "/api/game-logs?player_id=237&season=2024-25&line=20&odds=-110", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	rows := body["rows"].([]any)
	if len(rows) != 5 {
		t.Errorf("rows = %d", len(rows))
	}
	edge := body["edge"].(map[string]any)
	if edge["hit_rate"].(float64) != 0.8 {
		t.Errorf("edge = %v", edge)
	}
	first := rows[0].(map[string]any)
	if first["date"] != "2024-01-07" || first["rest_days"].(float64) != 1 || first["pra"] == nil {
		t.Errorf("first row = %v", first)
	}
}

func TestGameLogQueryAbsentEdgeIsNull(t *testing.T) {
	r := newRouter(seeded(), nil)
	w, body := do(t, r, http.MethodGet, "/api/game-logs/237?season=2024&ha=H&last_n=2", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	edge := body["edge"].(map[string]any)
	for _, k := range []string{"hit_rate", "ev_per_100", "confidence", "break_even"} {
		v, present := edge[k]
		if !present || v != nil {
			t.Errorf("edge[%s] = %v, want explicit null", k, v)
		}
	}
	if rows := body["rows"].([]any); len(rows) != 2 {
		t.Errorf("rows = %d", len(rows))
	}
}

func TestGameLogQueryErrors(t *testing.T) {
	tests := []struct {
		name string
		p    *stubProvider
		path string
		want int
	}{
		{"missing player", seeded(), "/api/game-logs?season=2024", http.StatusBadRequest},
		{"missing season", seeded(), "/api/game-logs?player_id=237", http.StatusBadRequest},
		{"bad rest", seeded(), "/api/game-logs?player_id=237&season=2024&rest=9", http.StatusBadRequest},
		{"bad date", seeded(), "/api/game-logs?player_id=237&season=2024&from=01/02/2024", http.StatusBadRequest},
		{"nan line", seeded(), "/api/game-logs?player_id=237&season=2024&line=NaN&odds=-110", http.StatusBadRequest},
		{"inf line", seeded(), "/api/game-logs?player_id=237&season=2024&line=Inf&odds=-110", http.StatusBadRequest},
		{"negative inf line", seeded(), "/api/game-logs?player_id=237&season=2024&line=-Inf&odds=-110", http.StatusBadRequest},
		{"nan minutes", seeded(), "/api/game-logs?player_id=237&season=2024&min=NaN", http.StatusBadRequest},
		{"inf teammate minutes", seeded(), "/api/game-logs?player_id=237&season=2024&teammate_id=99&teammate_max_min=Inf", http.StatusBadRequest},
		{"auth", &stubProvider{err: &model.UpstreamAuthError{StatusCode: 401}}, "/api/game-logs?player_id=237&season=2024", http.StatusBadGateway},
		{"upstream", &stubProvider{err: model.NewUpstreamError(500, []byte("boom"))}, "/api/game-logs?player_id=237&season=2024", http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := do(t, newRouter(tt.p, nil), http.MethodGet, tt.path, nil, nil)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
			if w.Body.Len() == 0 {
				t.Error("empty response body")
			}
		})
	}
}

func TestGameLogOpponentFilter(t *testing.T) {
	tests := []struct {
		name       string
		opp        string
		rows       int
		unresolved bool
	}{
		{"abbreviation", "BOS", 5, false},
		{"table id", "2", 5, false},
		{"raw id outside the table", "99", 0, false},
		{"unknown abbreviation", "XYZ", 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := do(t, newRouter(seeded(), nil), http.MethodGet, "/api/game-logs?player_id=237&season=2024&opp="+tt.opp, nil, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
			}
			rows := body["rows"].([]any)
			if len(rows) != tt.rows {
				t.Errorf("rows = %d, want %d", len(rows), tt.rows)
			}
			unresolved := false
			for _, raw := range body["warnings"].([]any) {
				if raw.(map[string]any)["code"] == model.WarnOpponentUnresolved {
					unresolved = true
				}
			}
			if unresolved != tt.unresolved {
				t.Errorf("opponent_unresolved warning = %v, want %v", unresolved, tt.unresolved)
			}
		})
	}
}

func TestGameLogTeammateFilter(t *testing.T) {
	r := newRouter(seeded(), nil)
	w, body := do(t, r, http.MethodGet, "/api/game-logs?player_id=237&season=2024&teammate_id=99", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	rows := body["rows"].([]any)
	if len(rows) != 1 || rows[0].(map[string]any)["game_id"].(float64) != 2 {
		t.Errorf("rows = %v", rows)
	}
}

func TestTeammateOutEndpoint(t *testing.T) {
	r := newRouter(seeded(), nil)
	w, body := do(t, r, http.MethodPost, "/api/game-logs/teammate-out",
		map[string]any{"player_id": 237, "teammate_id": 99, "season": "2024-25", "max_minutes": 0}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if body["ok"] != true || body["count"].(float64) != 1 {
		t.Errorf("body = %v", body)
	}
	dates := body["out_dates"].([]any)
	if len(dates) != 1 || dates[0] != "2024-01-02" {
		t.Errorf("dates = %v", dates)
	}

	w, body = do(t, r, http.MethodPost, "/api/game-logs/teammate-out", map[string]any{"player_id": 237, "season": 2024}, nil)
	if w.Code != http.StatusBadRequest || body["ok"] != false {
		t.Errorf("missing teammate: %d %v", w.Code, body)
	}
}

func TestSearchPlayersEndpoint(t *testing.T) {
	p := seeded()
	p.players = []model.BDLPlayer{
		{ID: 1, FirstName: "Jaylen", LastName: "Brown"},
		{ID: 246, FirstName: "Nikola", LastName: "Jokić"},
	}
	w, body := do(t, newRouter(p, nil), http.MethodGet, "/api/game-logs/players?q=jokic", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	players := body["players"].([]any)
	if len(players) != 2 || players[0].(map[string]any)["id"].(float64) != 246 {
		t.Errorf("players = %v", players)
	}
}

func TestViewsEndpoints(t *testing.T) {
	r := newRouter(seeded(), &memViews{})
	user := map[string]string{UserHeader: "fan@example.com"}

	w, _ := do(t, r, http.MethodPost, "/api/views", map[string]any{"name": "x"}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous create = %d", w.Code)
	}

	w, created := do(t, r, http.MethodPost, "/api/views", map[string]any{
		"name": "home last 2",
		"params": map[string]any{
			"player_id": 237,
			"season":    2024,
			"filters":   map[string]any{"home_away": "H", "last_n": 2},
		},
	}, user)
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", w.Code, w.Body.String())
	}
	id := created["id"].(string)

	_, list := do(t, r, http.MethodGet, "/api/views", nil, user)
	if views := list["views"].([]any); len(views) != 1 {
		t.Errorf("views = %v", views)
	}
	_, anon := do(t, r, http.MethodGet, "/api/views", nil, nil)
	if views := anon["views"].([]any); len(views) != 0 {
		t.Errorf("anonymous views = %v", views)
	}

	w, body := do(t, r, http.MethodGet, "/api/game-logs?view_id="+id, nil, user)
	if w.Code != http.StatusOK {
		t.Fatalf("query by view = %d %s", w.Code, w.Body.String())
	}
	if rows := body["rows"].([]any); len(rows) != 2 {
		t.Errorf("rows from view = %d", len(rows))
	}

	// someone else's view id seeds nothing
	rival := map[string]string{UserHeader: "rival@example.com"}
	if w, _ := do(t, r, http.MethodGet, "/api/game-logs?view_id="+id, nil, rival); w.Code != http.StatusBadRequest {
		t.Errorf("query by another user's view = %d, want 400 for the unseeded player", w.Code)
	}
	w, body = do(t, r, http.MethodGet, "/api/game-logs?player_id=237&season=2024&view_id="+id, nil, rival)
	if w.Code != http.StatusOK {
		t.Fatalf("query = %d", w.Code)
	}
	if rows := body["rows"].([]any); len(rows) != 5 {
		t.Errorf("rows with another user's view = %d", len(rows))
	}
	if warnings := body["warnings"].([]any); len(warnings) != 1 || warnings[0].(map[string]any)["code"] != model.WarnViewNotFound {
		t.Errorf("warnings = %v", warnings)
	}

	if w, _ := do(t, r, http.MethodDelete, "/api/views/"+id, nil, user); w.Code != http.StatusOK {
		t.Errorf("delete = %d", w.Code)
	}
	if w, _ := do(t, r, http.MethodDelete, "/api/views?id="+id, nil, user); w.Code != http.StatusNotFound {
		t.Errorf("second delete = %d", w.Code)
	}
}

func TestViewsDisabled(t *testing.T) {
	w, _ := do(t, newRouter(seeded(), nil), http.MethodGet, "/api/views", nil, nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d", w.Code)
	}
}

func TestHealthz(t *testing.T) {
	w, body := do(t, newRouter(seeded(), nil), http.MethodGet, "/healthz", nil, nil)
	if w.Code != http.StatusOK || body["status"] != "ok" {
		t.Errorf("healthz = %d %v", w.Code, body)
	}
}
