package mcp

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

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/mcp-training/tilemerge/game/engine"
	"github.com/wricardo/mcp-training/tilemerge/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Tile Merge",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Tile Merge - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Slide the tiles of an N x N board (N from 2 to 8). Equal neighbours merge into
their sum and the sum is added to your score. The game ends when no direction
changes the board.

AVAILABLE TOOLS:
- create_session: Start a game (optional config_id and grid_size)
- game_state: Current board, score and possible moves
- move: Single move (up/down/left/right) - requires intent explanation
- bulk_move: Up to 50 moves at once - requires intent explanation
- reset_game: Fresh board, score 0
- move_history: Past moves with pagination
- get_session / list_sessions: Session details
- list_configs: Available configurations
- game_instructions: Full rules
- describe_cell: Value of one cell and which neighbours it can merge with

NOTE: The 'intent' parameter on move/bulk_move serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config and board size",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Config to use (see list_configs); defaults to classic",
				},
				"grid_size": map[string]interface{}{
					"type":        "integer",
					"minimum":     engine.MinGridSize,
					"maximum":     engine.MaxGridSize,
					"description": "Board size overriding the config",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board, score and possible moves",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Slide all tiles in a direction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to slide",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before moving",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: fmt.Sprintf("Execute up to %d moves in sequence; stops when the game is over", engine.MaxBulkMoves),
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"moves": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": []string{"up", "down", "left", "right"},
					},
					"description": "Array of moves",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of moves (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before moving",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, c.handleBulkMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Start a new game in the session with a fresh board",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Oldest (asc) or newest (desc) first",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Get the value of one cell and its neighbours, and which neighbours it would merge with",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row of the cell (0-based, top row is 0)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column of the cell (0-based, left column is 0)",
				},
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, c.handleDescribeCell)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// ServeHTTP answers single JSON-RPC messages posted to the /mcp endpoint
func (c *Client) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	response := c.mcpServer.HandleMessage(r.Context(), body)
	if response == nil {
		// notifications have no reply
		w.WriteHeader(http.StatusAccepted)
		return
	}

	responseData, err := json.Marshal(response)
	if err != nil {
		http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(responseData)
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// arguments returns the call arguments, empty when absent
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg reads a JSON number argument
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

func requireSessionID(args map[string]interface{}) (string, *mcp.CallToolResult) {
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		return "", mcp.NewToolResultError("session_id is required")
	}
	return sessionID, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	body := map[string]interface{}{}
	if configID, _ := args["config_id"].(string); configID != "" {
		body["config_id"] = configID
	}
	if size, ok := intArg(args, "grid_size"); ok {
		body["grid_size"] = size
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\nGrid: %dx%d\n\n%s",
		session.ID, session.ConfigName, session.GridSize, session.GridSize, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		score := 0
		if s.GameState != nil && s.GameState.Board != nil {
			score = s.GameState.Board.Score
		}
		fmt.Fprintf(&sb, "- %s (Config: %s, Grid: %dx%d, Score: %d, Created: %s)\n",
			s.ID, s.ConfigName, s.GridSize, s.GridSize, score, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(arguments(request))
	if errResult != nil {
		return errResult, nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(arguments(request))
	if errResult != nil {
		return errResult, nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, errResult := requireSessionID(args)
	if errResult != nil {
		return errResult, nil
	}
	direction, _ := args["direction"].(string)
	reset, _ := args["reset"].(bool)

	body := map[string]interface{}{
		"direction": direction,
		"reset":     reset,
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, errResult := requireSessionID(args)
	if errResult != nil {
		return errResult, nil
	}
	movesRaw, _ := args["moves"].([]interface{})
	reset, _ := args["reset"].(bool)

	moves := make([]string, 0, len(movesRaw))
	for _, m := range movesRaw {
		if move, ok := m.(string); ok {
			moves = append(moves, move)
		}
	}

	body := map[string]interface{}{
		"moves": moves,
		"reset": reset,
	}

	var result service.BulkMoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/bulk-move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBulkMoveResult(sessionID, &result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, errResult := requireSessionID(arguments(request))
	if errResult != nil {
		return errResult, nil
	}

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, errResult := requireSessionID(args)
	if errResult != nil {
		return errResult, nil
	}

	params := url.Values{}
	if page, ok := intArg(args, "page"); ok {
		params.Set("page", fmt.Sprint(page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		params.Set("limit", fmt.Sprint(limit))
	}
	if order, _ := args["order"].(string); order != "" {
		params.Set("order", order)
	}

	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatHistory(&history)

	// current segment from the live state; history alone is still useful if this fails
	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err == nil {
		result += "\n" + formatCurrentSegment(session.GameState)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	sb.WriteString("Available Configurations:\n\n")
	for _, cfg := range configs {
		fmt.Fprintf(&sb, "• %s (config_id: %s)\n  %s\n  Grid: %dx%d\n\n",
			cfg.Name, cfg.ConfigID, cfg.Description, cfg.GridSize, cfg.GridSize)
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := fmt.Sprintf(`Tile Merge - Complete Instructions

GAME OBJECTIVE:
Merge equal tiles to build large values and a high score. The game ends when
no move changes the board.

BOARD:
• Square grid of %d to %d rows; empty cells show as "."
• A new game holds two tiles of value 2 at (row 0, col 0) and (row 1, col 1)
• Score starts at 0 and never decreases

MOVES:
• up / down / left / right (w / s / a / d also accepted)
• Every tile slides as far as it can toward that edge
• Two equal tiles that meet merge into one tile of twice the value,
  and the merged value is added to the score
• A tile produced by a merge does not merge again in the same move:
  [2,2,4,0] moved left gives [4,4,0,0], not [8,0,0,0]
• With three equal tiles the pair nearest the edge merges first:
  [2,2,2,0] moved right gives [0,0,2,4]

AFTER A MOVE:
• If anything moved, a new 2 appears in the first empty cell,
  scanning rows top to bottom and each row left to right
• A move that changes nothing is ignored: no new tile, no score change

GAME OVER:
• The board is full and no two neighbouring tiles are equal
• Use reset_game (or reset=true on move) to play again

STRATEGY HINTS:
• The new tile always lands in the first empty cell from the top-left,
  so the top-left corner fills up first
• Use game_state to see possible_moves before committing to a bulk_move
• describe_cell tells you which neighbours a tile can merge with
• bulk_move runs at most %d moves and stops as soon as the game is over

Good luck!`, engine.MinGridSize, engine.MaxGridSize, engine.MaxBulkMoves)

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, errResult := requireSessionID(args)
	if errResult != nil {
		return errResult, nil
	}
	row, okRow := intArg(args, "row")
	col, okCol := intArg(args, "col")
	if !okRow || !okCol {
		return mcp.NewToolResultError("row and col are required integers"), nil
	}

	var snap engine.Snapshot
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/snapshot"), nil, &snap); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	size := len(snap.Cells)
	if row < 0 || row >= size || col < 0 || col >= size {
		return mcp.NewToolResultError(fmt.Sprintf("Cell (%d, %d) is out of bounds. Grid size is %dx%d (0-%d for row and col)",
			row, col, size, size, size-1)), nil
	}

	return mcp.NewToolResultText(describeCell(snap.Cells, row, col)), nil
}

// describeCell reports a cell and its four neighbours
func describeCell(cells [][]int, row, col int) string {
	var sb strings.Builder
	value := cells[row][col]
	fmt.Fprintf(&sb, "Cell (row %d, col %d): %s\n\n", row, col, cellLabel(value))

	neighbours := []struct {
		name     string
		row, col int
	}{
		{"up", row - 1, col},
		{"down", row + 1, col},
		{"left", row, col - 1},
		{"right", row, col + 1},
	}

	sb.WriteString("Neighbours:\n")
	for _, n := range neighbours {
		if n.row < 0 || n.row >= len(cells) || n.col < 0 || n.col >= len(cells) {
			fmt.Fprintf(&sb, "  %-5s: edge\n", n.name)
			continue
		}
		other := cells[n.row][n.col]
		note := ""
		if value != 0 && other == value {
			note = " (can merge)"
		}
		fmt.Fprintf(&sb, "  %-5s: %s%s\n", n.name, cellLabel(other), note)
	}
	return sb.String()
}

func cellLabel(v int) string {
	if v == 0 {
		return "empty"
	}
	return fmt.Sprint(v)
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	result := fmt.Sprintf("Session: %s\nConfig: %s\nGrid: %dx%d\nCreated: %s\nLast accessed: %s\n\n",
		session.ID, session.ConfigName, session.GridSize, session.GridSize,
		session.CreatedAt.Format(time.RFC3339), session.LastAccessedAt.Format(time.RFC3339))
	return result + formatGameState(session.GameState)
}

func formatGameState(state *engine.GameState) string {
	if state == nil || state.Board == nil {
		return "No game state available"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Score: %d | Max tile: %d | Empty cells: %d | Phase: %s\n\n",
		state.Board.Score, state.MaxTile, state.EmptyCells, state.Phase)
	sb.WriteString(engine.FormatGrid(state.Board.Cells))
	sb.WriteString("\n")

	if state.GameOver {
		sb.WriteString("💀 GAME OVER\n")
	} else if len(state.PossibleMoves) > 0 {
		fmt.Fprintf(&sb, "Possible moves: %s\n", strings.Join(state.PossibleMoves, ", "))
	}
	if state.Message != "" {
		fmt.Fprintf(&sb, "Message: %s\n", state.Message)
	}
	fmt.Fprintf(&sb, "Moves this game: %d | Game #%d\n", state.CurrentMovesCount, state.GamesPlayed+1)
	return sb.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var sb strings.Builder

	if result.Moved {
		fmt.Fprintf(&sb, "✓ Moved %s", result.Direction)
		if result.ScoreDelta > 0 {
			fmt.Fprintf(&sb, " (+%d)", result.ScoreDelta)
		}
		sb.WriteString("\n")
		if result.Spawned != nil {
			fmt.Fprintf(&sb, "New tile at (row %d, col %d)\n", result.Spawned.Row, result.Spawned.Col)
		}
	} else {
		fmt.Fprintf(&sb, "✗ Nothing moved (%s)\n", result.Direction)
	}

	for _, ev := range result.Events {
		if ev.Type == service.EventMerge || ev.Type == service.EventTerminal {
			fmt.Fprintf(&sb, "• %s\n", ev.Message)
		}
	}

	sb.WriteString("\n")
	sb.WriteString(formatGameState(result.GameState))
	return sb.String()
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Bulk move on %s: executed %d/%d (%d changed the board)\n",
		sessionID, result.MovesExecuted, result.RequestedMoves, result.MovedCount)
	if result.Truncated {
		fmt.Fprintf(&sb, "⚠ Request truncated to %d moves\n", result.Limit)
	}
	fmt.Fprintf(&sb, "Score: %d → %d (+%d)\n", result.StartScore, result.EndScore, result.ScoreDelta)

	if len(result.Steps) > 0 {
		sb.WriteString("\nSteps:\n")
		for _, step := range result.Steps {
			sb.WriteString(formatStepLine(step))
		}
	}

	if result.StoppedReason != "" {
		fmt.Fprintf(&sb, "\nStopped: %s", result.StoppedReason)
		if result.StoppedOnMove > 0 {
			fmt.Fprintf(&sb, " (move %d not executed)", result.StoppedOnMove)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(formatGameState(result.GameState))
	return sb.String()
}

func formatStepLine(step service.StepInfo) string {
	status := "moved"
	if !step.Moved {
		status = "no change"
	}
	line := fmt.Sprintf("  %2d. %-5s %s", step.Idx, step.Dir, status)
	if step.ScoreDelta > 0 {
		line += fmt.Sprintf(" +%d", step.ScoreDelta)
	}
	line += fmt.Sprintf(" (score %d)", step.Score)
	if step.Terminal {
		line += " GAME OVER"
	}
	return line + "\n"
}

func formatHistory(history *service.HistoryResponse) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Move History (page %d of %d, %d moves total):\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for _, entry := range history.Moves {
		sb.WriteString(formatHistoryEntry(entry))
	}
	if len(history.Moves) == 0 {
		sb.WriteString("  (no moves)\n")
	}
	return sb.String()
}

func formatHistoryEntry(entry engine.MoveHistoryEntry) string {
	status := "moved"
	if !entry.Moved {
		status = "no change"
	}
	line := fmt.Sprintf("  #%d %-5s %s", entry.MoveNumber, entry.Action, status)
	if entry.ScoreDelta > 0 {
		line += fmt.Sprintf(" +%d", entry.ScoreDelta)
	}
	line += fmt.Sprintf(" → score %d", entry.Score)
	if entry.Terminal {
		line += " GAME OVER"
	}
	return line + "\n"
}

func formatCurrentSegment(state *engine.GameState) string {
	if state == nil {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Current game (%d moves):\n", state.CurrentMovesCount)
	for _, entry := range state.CurrentMoves {
		sb.WriteString(formatHistoryEntry(entry))
	}
	return sb.String()
}
