package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wricardo/mcp-training/tilemerge/game/engine"
	"github.com/wricardo/mcp-training/tilemerge/game/service"
)

// Client drives one session of the REST API.
type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SessionID returns the session the client plays in.
func (c *Client) SessionID() string {
	return c.sessionID
}

// UseSession resumes an existing session.
func (c *Client) UseSession(id string) {
	c.sessionID = id
}

func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s %s failed: %s - %s", method, path, resp.Status, strings.TrimSpace(string(data)))
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("parse response of %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) sessionPath(suffix string) string {
	return "/api/sessions/" + url.PathEscape(c.sessionID) + suffix
}

// CreateSession starts a new session and plays in it from now on.
func (c *Client) CreateSession(ctx context.Context, configID string, gridSize int) (*service.SessionInfo, error) {
	body := map[string]interface{}{}
	if configID != "" {
		body["config_id"] = configID
	}
	if gridSize > 0 {
		body["grid_size"] = gridSize
	}

	var info service.SessionInfo
	if err := c.do(ctx, http.MethodPost, "/api/sessions", body, &info); err != nil {
		return nil, err
	}
	c.sessionID = info.ID
	return &info, nil
}

// Snapshot returns the current cells and score.
func (c *Client) Snapshot(ctx context.Context) (engine.Snapshot, error) {
	var snap engine.Snapshot
	err := c.do(ctx, http.MethodGet, c.sessionPath("/snapshot"), nil, &snap)
	return snap, err
}

// State returns the full game state.
func (c *Client) State(ctx context.Context) (*engine.GameState, error) {
	var state engine.GameState
	if err := c.do(ctx, http.MethodGet, c.sessionPath("/state"), nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *Client) Move(ctx context.Context, dir engine.Direction) (*service.MoveResult, error) {
	var result service.MoveResult
	body := map[string]interface{}{"direction": dir.String()}
	if err := c.do(ctx, http.MethodPost, c.sessionPath("/move"), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) BulkMove(ctx context.Context, dirs []engine.Direction) (*service.BulkMoveResult, error) {
	moves := make([]string, len(dirs))
	for i, d := range dirs {
		moves[i] = d.String()
	}

	var result service.BulkMoveResult
	if err := c.do(ctx, http.MethodPost, c.sessionPath("/bulk-move"), map[string]interface{}{"moves": moves}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type resetResponse struct {
	Message string            `json:"message"`
	State   *engine.GameState `json:"state"`
}

func (c *Client) Reset(ctx context.Context) (*engine.GameState, error) {
	var resp resetResponse
	if err := c.do(ctx, http.MethodPost, c.sessionPath("/reset"), nil, &resp); err != nil {
		return nil, err
	}
	return resp.State, nil
}
