// Package config provides configuration management for the tile merge game.
//
// The config package handles:
//   - Loading game configurations from JSON files
//   - Caching parsed configurations
//   - Default configuration selection
//   - Configuration discovery and saving
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory.
// Each file names the board size and the texts shown to the player:
//
//	{
//	  "name": "Classic",
//	  "description": "The classic 4x4 board",
//	  "grid_size": 4,
//	  "messages": {"welcome": "...", "game_over": "Game Over! Your score: %d"}
//	}
//
// The default configuration is classic.json when present, otherwise the
// first valid file in the directory, otherwise a built-in 4x4 configuration.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("tiny")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
package config
