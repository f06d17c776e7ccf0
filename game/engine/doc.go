// Package engine provides the core game logic for the tile merge puzzle.
//
// The engine package implements the game mechanics including:
//   - Board creation with the two seed tiles
//   - Sliding and merging tiles in one of four directions
//   - Deterministic spawning of new tiles
//   - Terminal (no more moves) detection
//   - Configuration loading and validation
//
// Core Types:
//
// Board holds the cells and the score. ApplyMove, SpawnTile and IsTerminal are
// plain functions over a Board and hold no state of their own. The Engine
// interface, implemented by GameEngine, wraps one Board and runs the per-move
// control flow: apply the move, and if anything moved spawn a tile and check
// for a terminal position.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(engine.DefaultGameConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	dir, err := engine.ParseDirection("left")
//	if err != nil {
//		log.Fatal(err)
//	}
//	result := gameEngine.Move(dir)
//	snapshot := gameEngine.GetSnapshot()
//
// Game Rules:
//
// Every move slides all tiles as far as possible toward one edge. Two equal
// tiles that meet merge into one tile of double value, and the doubled value
// is added to the score. A tile produced by a merge does not merge again in
// the same move. The game ends when the board is full and no two adjacent
// tiles are equal.
package engine
