// Package service provides the business logic layer for the Klondike server.
//
// The service package implements:
//   - Multi-session game management
//   - Configuration lookup for new sessions
//   - Select, move, draw, undo, redo, and hint requests
//   - Paginated move history
//   - Snapshot export and import
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
// the game engine. Engines are not safe for concurrent use, so every call
// that touches one holds the service mutex. States handed back to callers are
// copies and may be encoded without further locking.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	from := engine.CardRef{Pile: engine.TableauRef(6), Index: 6}
//	result, err := gameService.Move(ctx, info.ID, &from, engine.TableauRef(2))
package service
