// Package api provides HTTP REST API handlers for the Klondike server.
//
// The api package implements:
//   - Session management endpoints
//   - Card selection, moves, draws, undo and redo
//   - Hints and paginated move history
//   - Snapshot export and import
//   - Configuration listing and creation
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session ({"config_id": "classic"})
//   - GET /api/sessions - List sessions (sort=created|accessed, order, limit)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current game state
//   - POST /api/sessions/{id}/new-game - Shuffle and deal again
//   - POST /api/sessions/{id}/select - Select, deselect or replace a card
//   - POST /api/sessions/{id}/move - Move the selection (or "from") to a pile
//   - POST /api/sessions/{id}/draw - Draw from stock or recycle the waste
//   - POST /api/sessions/{id}/undo, /redo - Step through history
//   - GET /api/sessions/{id}/hint - Suggest one legal move
//   - GET /api/sessions/{id}/history - Move log (page, limit, order)
//   - GET|PUT /api/sessions/{id}/snapshot - Serialize or restore the game
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - POST /api/configs - Save a configuration
//   - GET /api/configs/{name} - Get one configuration
//
// Other:
//   - GET /api/health - Liveness check
//   - GET /ws?session={id} - WebSocket state updates
//
// Request Format:
//
// Cards are named by pile and index, piles by kind plus index or suit:
//
//	POST /api/sessions/ab12/select
//	{"pile": {"kind": "tableau", "index": 6}, "index": 6}
//
//	POST /api/sessions/ab12/move
//	{"from": {"pile": {"kind": "waste"}, "index": 3},
//	 "to": {"kind": "foundation", "suit": "hearts"}}
//
// A rejected move is not an HTTP error: the response has success false and
// the violated rule in reason.
//
// Error Handling:
//
// Errors are returned as JSON with an HTTP status code:
//
//	{"error": "session zz99: session not found"}
//
// Unknown sessions and configs map to 404, undo or redo with nothing to
// step through to 409, invalid snapshots and configs to 400.
package api
