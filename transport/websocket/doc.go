// Package websocket pushes Klondike game state to browser clients.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - State broadcasting after every change
//   - Keepalive through ping/pong
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Registration, removal, broadcasts and client
// counts all go through channels served by Hub.Run, so only that goroutine
// touches the session map. Each client connection has a read goroutine and
// a write goroutine.
//
// Message Protocol:
//
// Every frame is one JSON Message:
//
//	{"session_id": "ab12", "event": "state_update", "game_state": {...}}
//	{"session_id": "ab12", "event": "victory", "data": {...}}
//
// Clients do not send commands over the socket; they use the REST API and
// receive the resulting state here.
//
// Session Integration:
//
// Clients pick a session with the query parameter (?session=ab12). Session
// IDs are matched case-insensitively. The current state is sent as soon as
// the connection is registered.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	hub.ServeWS(w, r, sessionID, state)
//	hub.BroadcastToSession(sessionID, newState)
package websocket
