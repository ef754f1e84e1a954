// Package balldontlie reads per-game player stats from the balldontlie v1 API
package balldontlie

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"PropScope/internal/adapter"
	"PropScope/internal/config"
	"PropScope/internal/interfaces"
	"PropScope/internal/model"
	"PropScope/internal/utils/httpclient"
	"PropScope/internal/utils/retry"

	"github.com/sirupsen/logrus"
)

// ProviderName registry key
const ProviderName = "balldontlie"

func init() {
	adapter.Register(ProviderName, func(cfg *config.UpstreamConfig, logger *logrus.Logger, cache interfaces.PageCache) interfaces.StatsProvider {
		return NewClient(cfg, logger, WithPageCache(cache))
	})
}

// Client balldontlie API client
type Client struct {
	cfg        *config.UpstreamConfig
	httpClient *http.Client
	logger     *logrus.Logger
	retry      *retry.Policy
	cache      interfaces.PageCache
}

// Option customizes a Client
type Option func(*Client)

// WithPageCache serves repeated page requests from cache. A nil cache is ignored.
func WithPageCache(cache interfaces.PageCache) Option {
	return func(c *Client) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// WithHTTPClient replaces the default transport, mostly for tests
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// NewClient creates a client for cfg.BaseURL
func NewClient(cfg *config.UpstreamConfig, logger *logrus.Logger, opts ...Option) *Client {
	c := &Client{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
		retry:      retry.NewPolicy(cfg.RetryCount, cfg.RetryBackoff, isRetryable),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetName implements interfaces.StatsProvider
func (c *Client) GetName() string {
	return ProviderName
}

// FetchStatsPage fetches one page of /stats
func (c *Client) FetchStatsPage(ctx context.Context, q model.StatsQuery, tok PageToken) (*model.BDLStatsResponse, error) {
	endpoint := c.statsURL(q, tok)
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	var page model.BDLStatsResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode stats page %s: %w", tok, err)
	}
	return &page, nil
}

// FetchAllStats walks every page of a query. Pages are fetched sequentially since each
// token depends on the previous response.
func (c *Client) FetchAllStats(ctx context.Context, q model.StatsQuery) (*model.StatsResult, error) {
	res := &model.StatsResult{}
	tok := PageToken{}
	for {
		page, err := c.FetchStatsPage(ctx, q, tok)
		if err != nil {
			return nil, err
		}
		res.Pages++
		res.Stats = append(res.Stats, page.Data...)

		next, ok := NextToken(tok, page.Meta)
		if !ok {
			break
		}
		if res.Pages >= c.maxPages() {
			res.Truncated = true
			c.logger.WithFields(logrus.Fields{
				"players": q.PlayerIDs,
				"seasons": q.Seasons,
				"pages":   res.Pages,
			}).Warn("page limit reached, stopping pagination")
			break
		}
		tok = next
	}

	c.logger.WithFields(logrus.Fields{
		"players": q.PlayerIDs,
		"seasons": q.Seasons,
		"games":   len(q.GameIDs),
		"pages":   res.Pages,
		"rows":    len(res.Stats),
	}).Debug("stats fetched")
	return res, nil
}

// SearchPlayers GET /players?search=
func (c *Client) SearchPlayers(ctx context.Context, query string) ([]model.BDLPlayer, error) {
	v := url.Values{}
	v.Set("search", query)
	v.Set("per_page", "100")
	body, err := c.get(ctx, c.endpoint("/players", v))
	if err != nil {
		return nil, err
	}
	var resp model.BDLPlayersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode players: %w", err)
	}
	return resp.Data, nil
}

func (c *Client) maxPages() int {
	if c.cfg.MaxPages <= 0 {
		return 50
	}
	return c.cfg.MaxPages
}

func (c *Client) statsURL(q model.StatsQuery, tok PageToken) string {
	v := url.Values{}
	for _, id := range q.PlayerIDs {
		v.Add("player_ids[]", strconv.Itoa(id))
	}
	for _, s := range q.Seasons {
		v.Add("seasons[]", strconv.Itoa(s))
	}
	for _, id := range q.GameIDs {
		v.Add("game_ids[]", strconv.FormatInt(id, 10))
	}
	if q.Postseason != nil {
		v.Set("postseason", strconv.FormatBool(*q.Postseason))
	}
	perPage := c.cfg.PerPage
	if perPage <= 0 {
		perPage = 100
	}
	v.Set("per_page", strconv.Itoa(perPage))
	switch {
	case tok.Cursor != "":
		v.Set("cursor", tok.Cursor)
	case tok.Page > 1:
		v.Set("page", strconv.Itoa(tok.Page))
	}
	return c.endpoint("/stats", v)
}

func (c *Client) endpoint(path string, v url.Values) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + path + "?" + v.Encode()
}

// get performs a GET with retries and the optional page cache
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	if c.cache != nil {
		if body, ok, err := c.cache.Get(ctx, endpoint); err != nil {
			c.logger.WithError(err).Warn("page cache read failed")
		} else if ok {
			return body, nil
		}
	}

	var body []byte
	err := c.retry.Execute(ctx, func(ctx context.Context) error {
		b, err := c.doGet(ctx, endpoint)
		if err != nil {
			if !model.IsAuthError(err) {
				c.logger.WithError(err).WithField("url", endpoint).Warn("upstream request failed")
			}
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, endpoint, body); err != nil {
			c.logger.WithError(err).Warn("page cache write failed")
		}
	}
	return body, nil
}

func (c *Client) doGet(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if key := strings.TrimSpace(c.cfg.APIKey); key != "" {
		if !strings.HasPrefix(key, "Bearer ") {
			key = "Bearer " + key
		}
		req.Header.Set("Authorization", key)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &model.UpstreamAuthError{StatusCode: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, model.NewUpstreamError(resp.StatusCode, body)
	}
	return body, nil
}

// isRetryable transport failures (client timeouts included), 429 and 5xx. Auth failures and
// cancellation are final; an expired caller deadline is caught by the retry loop itself.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if model.IsAuthError(err) {
		return false
	}
	var upstream *model.UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Retryable()
	}
	return true
}
