// Package mcp exposes the tile merge game to AI agents over the Model
// Context Protocol.
//
// The Client holds no game state. Every tool call is translated into a
// request against the REST API (see package api) and the JSON reply is
// rendered as text, with boards drawn by engine.FormatGrid:
//
//	Score: 4 | Max tile: 4 | Empty cells: 1 | Phase: playing
//
//	4 2
//	2 .
//
// Tools:
//   - create_session: New session, optional config_id and grid_size
//   - list_sessions / get_session: Session details
//   - game_state: Board, score and possible moves
//   - move: One move, with an intent explaining the reasoning
//   - bulk_move: Up to engine.MaxBulkMoves moves, stops at game over
//   - reset_game: Fresh board, score 0
//   - move_history: Paginated history plus the moves of the current game
//   - list_configs: Available configurations
//   - game_instructions: Rules
//   - describe_cell: One cell, its neighbours and which of them it merges with
//
// Transports:
//
//	// stdio, for local agents
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
//	// HTTP, one JSON-RPC message per POST
//	apiServer.Mount("/mcp", client)
package mcp
