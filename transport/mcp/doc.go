// Package mcp provides a Model Context Protocol front end for the Klondike server.
//
// The Client is a thin proxy: every tool call is translated into a REST call
// against the api package and the JSON response is rendered as text for the
// agent, with the board drawn by engine.FormatBoard.
//
// MCP Tools:
//   - create_session, list_sessions, get_session
//   - game_state: Board, move count and undo/redo depth
//   - select_card: Select a card by pile and index (index defaults to the top card)
//   - move: Move the selection, or a card named with from_* arguments
//   - draw, undo, redo, new_game
//   - hint: One legal move, if any
//   - move_history: Paginated action log
//   - list_configs, game_instructions
//
// Tool arguments arrive as loosely typed JSON; numbers may be floats or
// strings and are coerced with spf13/cast.
//
// Transport Modes:
//
// main wires the server either to stdio for local MCP clients or to a
// streamable HTTP endpoint mounted next to the REST API.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
