// Package service provides the business logic layer for the tile merge game.
//
// The service package implements:
//   - Multi-session game management
//   - Move processing and direction validation
//   - Move events (move, merge, spawn, terminal, no_move, reset)
//   - Paginated move history
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns its own GameEngine; every operation runs
// under the service lock and hands back copies of the state, so callers never
// hold a reference into a live board.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "classic", 0)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Move(ctx, info.ID, "left", false)
package service
