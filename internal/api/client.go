package api

import (
	"context"
	"encoding/json"
	"fmt"
	"quoridor-history/internal/constants"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

// Client talks to a running history service over HTTP.
type Client struct {
	baseURL string
	client  *fasthttp.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ClientTimeout,
			WriteTimeout:        constants.ClientTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// StatusError is returned for any non-200 answer.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error: %d: %s", e.Code, e.Body)
}

type Message struct {
	Message string `json:"message"`
}

type StatusCheck struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}

type GameResult struct {
	GameNumber int64     `json:"game_number"`
	WinnerName string    `json:"winner_name"`
	GameMode   string    `json:"game_mode"`
	CreatedAt  time.Time `json:"created_at"`
}

func (c *Client) Root(ctx context.Context) (*Message, error) {
	return doRequest[Message](ctx, c, fasthttp.MethodGet, "/api/", nil)
}

func (c *Client) CreateStatusCheck(ctx context.Context, clientName string) (*StatusCheck, error) {
	return doRequest[StatusCheck](ctx, c, fasthttp.MethodPost, "/api/status", map[string]string{"client_name": clientName})
}

func (c *Client) ListStatusChecks(ctx context.Context) ([]StatusCheck, error) {
	list, err := doRequest[[]StatusCheck](ctx, c, fasthttp.MethodGet, "/api/status", nil)
	if err != nil {
		return nil, err
	}
	return *list, nil
}

func (c *Client) CreateGameResult(ctx context.Context, winnerName, gameMode string) (*GameResult, error) {
	body := map[string]string{"winner_name": winnerName, "game_mode": gameMode}
	return doRequest[GameResult](ctx, c, fasthttp.MethodPost, "/api/games", body)
}

// PostRaw sends body as-is, for exercising request validation.
func (c *Client) PostRaw(ctx context.Context, path string, body any) error {
	_, err := doRequest[json.RawMessage](ctx, c, fasthttp.MethodPost, path, body)
	return err
}

func (c *Client) ListGameResults(ctx context.Context) ([]GameResult, error) {
	list, err := doRequest[[]GameResult](ctx, c, fasthttp.MethodGet, "/api/games", nil)
	if err != nil {
		return nil, err
	}
	return *list, nil
}

func doRequest[T any](ctx context.Context, client *Client, method, path string, body any) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(client.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode(), Body: string(resp.Body())}
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
