// Package config provides configuration management for the Klondike server.
//
// The config package handles:
//   - Loading game configurations from JSON files
//   - Validation through engine.ValidateGameConfig
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory.
// The file name without its extension is the config id. Each configuration
// defines a name and description, an optional shuffle seed, an optional undo
// history limit, and the messages shown to players.
//
// Available Configurations:
//   - classic: draw one, unlimited passes, unlimited undo
//   - practice: fixed seed so the same deal comes up every time
//   - limited_undo: only the last three actions can be undone
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("practice")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
package config
