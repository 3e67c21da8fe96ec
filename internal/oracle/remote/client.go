// Package remote is an HTTP client for a scoring oracle service.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/f3rmion/tenpai/internal/mahjong"
	"github.com/f3rmion/tenpai/internal/oracle"
	"github.com/tidwall/gjson"
)

const (
	defaultTimeout = 5 * time.Second
	maxBodyBytes   = 1 << 20

	handValuePath = "/hand_value"
	shantenPath   = "/shanten"
)

// Client talks to a scoring oracle over JSON/HTTP. Every call carries
// its own deadline and is never retried.
type Client struct {
	baseURL    string
	shantenURL string
	httpClient *http.Client
	timeout    time.Duration
}

var _ oracle.Oracle = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithShantenURL points shanten calls at a different service.
func WithShantenURL(u string) Option {
	return func(c *Client) {
		if u = strings.TrimSpace(u); u != "" {
			c.shantenURL = strings.TrimRight(u, "/")
		}
	}
}

// NewClient creates a client for the oracle at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("oracle URL not set (config oracle.url or TENPAI_ORACLE_URL)")
	}

	c := &Client{
		baseURL:    baseURL,
		shantenURL: baseURL,
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// handConfig mirrors the oracle's rule configuration object.
type handConfig struct {
	IsTsumo    bool   `json:"is_tsumo"`
	IsRiichi   bool   `json:"is_riichi"`
	PlayerWind string `json:"player_wind"`
	RoundWind  string `json:"round_wind"`
}

// handValueRequest is the /hand_value body.
type handValueRequest struct {
	Tiles          string     `json:"tiles"`
	WinTile        string     `json:"win_tile"`
	DoraIndicators string     `json:"dora_indicators"`
	Tiles136       []int      `json:"tiles_136,omitempty"`
	Config         handConfig `json:"config"`
}

// shantenRequest is the /shanten body.
type shantenRequest struct {
	Tiles34 []int `json:"tiles_34"`
}

// HandValue asks the oracle to value a complete hand.
func (c *Client) HandValue(ctx context.Context, req oracle.Request) (mahjong.ScoreResult, error) {
	body := handValueRequest{
		Tiles:          string(req.Hand.Canonical()),
		WinTile:        req.WinTile.String(),
		DoraIndicators: string(mahjong.Canonicalize(req.Dora)),
		Config: handConfig{
			IsTsumo:    req.Scenario.SelfDraw,
			IsRiichi:   req.Scenario.Riichi,
			PlayerWind: req.Scenario.SeatWind.String(),
			RoundWind:  req.Scenario.RoundWind.String(),
		},
	}
	// a fifth copy has no physical id; the oracle gets the string form only
	if ids, err := req.Hand.OracleArray(mahjong.Width136); err == nil {
		body.Tiles136 = ids
	}

	respBody, err := c.post(ctx, c.baseURL+handValuePath, body)
	if err != nil {
		return mahjong.ScoreResult{}, oracle.AsFault(oracle.OpHandValue, err)
	}

	result, err := parseHandValue(respBody)
	if err != nil {
		return mahjong.ScoreResult{}, oracle.AsFault(oracle.OpHandValue, err)
	}
	return result, nil
}

// Shanten asks the oracle for the shanten number of a hand.
func (c *Client) Shanten(ctx context.Context, counts mahjong.TypeCounts) (int, error) {
	respBody, err := c.post(ctx, c.shantenURL+shantenPath, shantenRequest{Tiles34: counts[:]})
	if err != nil {
		return 0, oracle.AsFault(oracle.OpShanten, err)
	}

	n, err := parseShanten(respBody)
	if err != nil {
		return 0, oracle.AsFault(oracle.OpShanten, err)
	}
	return n, nil
}

// post sends body as JSON and returns the response body.
func (c *Client) post(ctx context.Context, url string, body any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		msg := strings.TrimSpace(gjson.GetBytes(respBody, "message").String())
		if msg == "" {
			msg = strings.TrimSpace(string(respBody))
		}
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, msg)
	}

	return respBody, nil
}

// parseHandValue maps the oracle response onto a ScoreResult. A non-empty
// string "error" field is the oracle saying "not a win"; any other
// non-null type is a malformed response.
func parseHandValue(body []byte) (mahjong.ScoreResult, error) {
	if !gjson.ValidBytes(body) {
		return mahjong.ScoreResult{}, fmt.Errorf("invalid JSON response")
	}
	res := gjson.ParseBytes(body)

	switch e := res.Get("error"); e.Type {
	case gjson.Null:
	case gjson.String:
		if e.Str != "" {
			return mahjong.NotAWin(e.Str), nil
		}
	default:
		return mahjong.ScoreResult{}, fmt.Errorf("unexpected error field %s", e.Raw)
	}

	total := res.Get("cost.total")
	if !total.Exists() {
		return mahjong.ScoreResult{}, fmt.Errorf("response has neither error nor cost.total")
	}

	out := mahjong.ScoreResult{
		Valid:       true,
		TotalPoints: int(total.Int()),
		Han:         int(res.Get("han").Int()),
		Fu:          int(res.Get("fu").Int()),
		Level:       res.Get("cost.yaku_level").String(),
	}

	res.Get("yaku").ForEach(func(_, v gjson.Result) bool {
		if v.Type == gjson.String {
			out.Yaku = append(out.Yaku, mahjong.Yaku{Name: v.String()})
			return true
		}
		out.Yaku = append(out.Yaku, mahjong.Yaku{
			Name: v.Get("name").String(),
			Han:  int(v.Get("han").Int()),
		})
		return true
	})

	res.Get("fu_details").ForEach(func(_, v gjson.Result) bool {
		if v.Type == gjson.String {
			out.FuBreakdown = append(out.FuBreakdown, v.String())
			return true
		}
		out.FuBreakdown = append(out.FuBreakdown, fmt.Sprintf("%d %s", v.Get("fu").Int(), v.Get("reason").String()))
		return true
	})

	return out, nil
}

func parseShanten(body []byte) (int, error) {
	if !gjson.ValidBytes(body) {
		return 0, fmt.Errorf("invalid JSON response")
	}
	v := gjson.GetBytes(body, "shanten")
	if !v.Exists() || v.Type != gjson.Number {
		return 0, fmt.Errorf("response has no shanten value")
	}
	n := int(v.Int())
	if n < 0 {
		return 0, fmt.Errorf("negative shanten %d for a 13-tile hand", n)
	}
	return n, nil
}
