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
	"github.com/spf13/cast"

	"github.com/wricardo/klondike/game/engine"
	"github.com/wricardo/klondike/game/service"
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
		"Klondike Solitaire",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Klondike Solitaire - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Build all four foundations from Ace to King, one suit per foundation.

AVAILABLE TOOLS:
- create_session: Create a new game session
- list_sessions / get_session: Inspect sessions
- game_state: Show the board
- select_card: Select, deselect or replace the selected card
- move: Move the selected card (or a given card) with everything on top of it
- draw: Draw from the stock, or recycle the waste when the stock is empty
- undo / redo: Step through history
- hint: Suggest one legal move
- new_game: Shuffle and deal again
- move_history: View past actions
- list_configs: List available configurations
- game_instructions: Rules and notation

Call game_instructions first if you have not played here before.`),
	)

	c.registerTools()
}

func sessionProp() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func sessionOnlySchema() mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: map[string]interface{}{"session_id": sessionProp()},
		Required:   []string{"session_id"},
	}
}

func pileProps(prefix, role string) map[string]interface{} {
	return map[string]interface{}{
		prefix + "pile": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"tableau", "waste", "foundation"},
			"description": "Kind of pile the " + role + " is",
		},
		prefix + "pile_index": map[string]interface{}{
			"type":        "integer",
			"description": "Tableau pile number 0-6 (tableau only)",
		},
		prefix + "suit": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"hearts", "diamonds", "clubs", "spades"},
			"description": "Foundation suit (foundation only)",
		},
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the config to use (optional, see list_configs)",
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
		InputSchema: sessionOnlySchema(),
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board as text",
		InputSchema: sessionOnlySchema(),
	}, c.handleGameState)

	selectProps := pileProps("", "card in")
	selectProps["session_id"] = sessionProp()
	selectProps["card_index"] = map[string]interface{}{
		"type":        "integer",
		"description": "Position of the card in the pile, 0 = bottom. Defaults to the top card",
	}
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "select_card",
		Description: "Select a face-up card. Selecting the selected card again deselects it",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: selectProps,
			Required:   []string{"session_id", "pile"},
		},
	}, c.handleSelect)

	moveProps := pileProps("to_", "destination")
	for k, v := range pileProps("from_", "source card in") {
		moveProps[k] = v
	}
	moveProps["session_id"] = sessionProp()
	moveProps["from_card_index"] = map[string]interface{}{
		"type":        "integer",
		"description": "Position of the source card, 0 = bottom. Defaults to the top card",
	}
	moveProps["intent"] = map[string]interface{}{
		"type":        "string",
		"description": "Brief explanation of why you are making this move",
	}
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move the selected card and every card on top of it to a tableau pile or foundation. Give from_pile to select the source in the same call",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: moveProps,
			Required:   []string{"session_id", "to_pile"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "draw",
		Description: "Draw one card from the stock to the waste, or turn the waste over when the stock is empty",
		InputSchema: sessionOnlySchema(),
	}, c.handleDraw)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "undo",
		Description: "Undo the last board change",
		InputSchema: sessionOnlySchema(),
	}, c.handleUndo)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "redo",
		Description: "Redo the last undone board change",
		InputSchema: sessionOnlySchema(),
	}, c.handleRedo)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "hint",
		Description: "Suggest one legal move without changing the game",
		InputSchema: sessionOnlySchema(),
	}, c.handleHint)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Shuffle and deal a new game in the same session",
		InputSchema: sessionOnlySchema(),
	}, c.handleNewGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProp(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
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
		Description: "Get game rules, notation and tool usage",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
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
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
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

// pileRef reads a pile reference from prefixed tool arguments
func pileRef(args map[string]interface{}, prefix string) (engine.PileRef, error) {
	kind := engine.PileKind(strings.ToLower(cast.ToString(args[prefix+"pile"])))
	switch kind {
	case engine.PileTableau:
		if _, ok := args[prefix+"pile_index"]; !ok {
			return engine.PileRef{}, fmt.Errorf("%spile_index is required for tableau piles", prefix)
		}
		return engine.TableauRef(cast.ToInt(args[prefix+"pile_index"])), nil
	case engine.PileFoundation:
		suit := engine.Suit(strings.ToLower(cast.ToString(args[prefix+"suit"])))
		if !suit.Valid() {
			return engine.PileRef{}, fmt.Errorf("%ssuit must be one of hearts, diamonds, clubs, spades", prefix)
		}
		return engine.FoundationRef(suit), nil
	case engine.PileWaste:
		return engine.WasteRef(), nil
	case "":
		return engine.PileRef{}, fmt.Errorf("%spile is required", prefix)
	default:
		return engine.PileRef{}, fmt.Errorf("unknown pile %q", kind)
	}
}

// cardRef resolves a card reference, defaulting the index to the pile's top card
func (c *Client) cardRef(ctx context.Context, sessionID string, args map[string]interface{}, prefix, indexKey string) (engine.CardRef, error) {
	pile, err := pileRef(args, prefix)
	if err != nil {
		return engine.CardRef{}, err
	}

	if raw, ok := args[indexKey]; ok && raw != nil {
		return engine.CardRef{Pile: pile, Index: cast.ToInt(raw)}, nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return engine.CardRef{}, err
	}
	p := state.Board.Pile(pile)
	if p == nil || p.Len() == 0 {
		return engine.CardRef{}, fmt.Errorf("%s is empty", pile)
	}
	return engine.CardRef{Pile: pile, Index: p.Len() - 1}, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	configID := cast.ToString(args["config_id"])

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s", session.ID, session.ConfigName, formatGameState(session.GameState))
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

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		foundation := 0
		if s.GameState != nil {
			foundation = s.GameState.FoundationCount()
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Foundation: %d/52, Created: %s)\n",
			s.ID, s.ConfigName, foundation, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := cast.ToString(request.GetArguments()["session_id"])

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := cast.ToString(request.GetArguments()["session_id"])

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleSelect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID := cast.ToString(args["session_id"])

	ref, err := c.cardRef(ctx, sessionID, args, "", "card_index")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.SelectResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/select"), ref, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSelectResult(&result)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID := cast.ToString(args["session_id"])

	to, err := pileRef(args, "to_")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body := map[string]interface{}{"to": to}
	if cast.ToString(args["from_pile"]) != "" {
		from, err := c.cardRef(ctx, sessionID, args, "from_", "from_card_index")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		body["from"] = from
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleDraw(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.action(ctx, request, "/draw")
}

func (c *Client) handleUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.action(ctx, request, "/undo")
}

func (c *Client) handleRedo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.action(ctx, request, "/redo")
}

func (c *Client) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.action(ctx, request, "/new-game")
}

// action posts a body-less game action and renders the result
func (c *Client) action(ctx context.Context, request mcp.CallToolRequest, suffix string) (*mcp.CallToolResult, error) {
	sessionID := cast.ToString(request.GetArguments()["session_id"])

	var result service.ActionResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, suffix), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleHint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := cast.ToString(request.GetArguments()["session_id"])

	var result service.HintResult
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/hint"), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHint(&result)), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID := cast.ToString(args["session_id"])

	params := url.Values{}
	if page := cast.ToInt(args["page"]); page > 0 {
		params.Set("page", cast.ToString(page))
	}
	if limit := cast.ToInt(args["limit"]); limit > 0 {
		params.Set("limit", cast.ToString(limit))
	}

	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		undo := "unlimited"
		if config.HistoryLimit > 0 {
			undo = cast.ToString(config.HistoryLimit)
		}
		deal := "random"
		if config.Seeded {
			deal = "fixed"
		}
		fmt.Fprintf(&b, "• %s (config_id: %s)\n  %s\n  Undo: %s, Deal: %s\n\n",
			config.Name, config.ConfigID, config.Description, undo, deal)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Klondike Solitaire - Instructions

GAME OBJECTIVE:
Move all 52 cards onto the four foundations. Each foundation belongs to one
suit and is built up from Ace to King.

LAYOUT:
• Stock: face-down cards you draw from, one at a time
• Waste: cards drawn from the stock; only the top card can be played
• Foundations: one per suit (♥ ♦ ♣ ♠)
• Tableau: seven piles T0-T6; pile i starts with i+1 cards, only the top face-up

BOARD NOTATION:
• Tableau cards are listed bottom first; the first card is index 0
• ## is a face-down card
• 10♥ is the ten of hearts; ranks are A 2-10 J Q K

RULES:
• Tableau: place a card on a card of opposite color and one rank higher
  (7♦ on 8♠). You may move a face-up card together with every card on top of it.
• Empty tableau piles accept only a King (with whatever is on it)
• Foundations: one card at a time, same suit, next rank up, starting with the Ace
• Drawing with an empty stock turns the waste back over into the stock
• When a tableau pile's top card is face-down after a move it is turned up

PLAYING THROUGH TOOLS:
1. game_state shows the board
2. move with from_pile/from_pile_index/from_card_index and to_pile/to_pile_index
   or to_suit moves in one call. Omit from_card_index to move the top card.
3. Or select_card first, then move with only the destination
4. A rejected move reports the rule it broke (wrong_suit, wrong_order,
   wrong_color, foundation_single_card, king_to_empty, ...)
5. hint suggests a legal move; draw when nothing else works
6. undo and redo step through board history

Examples:
• Waste top to hearts foundation:
  move {session_id, from_pile: "waste", to_pile: "foundation", to_suit: "hearts"}
• Run starting at T3 index 2 onto T5:
  move {session_id, from_pile: "tableau", from_pile_index: 3, from_card_index: 2,
        to_pile: "tableau", to_pile_index: 5}

Good luck!`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	fmt.Fprintf(&result, "Moves: %d | Foundation: %d/%d | Undo: %d | Redo: %d\n\n",
		state.MoveCount, state.FoundationCount(), engine.DeckSize, state.UndoDepth, state.RedoDepth)

	result.WriteString(engine.FormatBoard(state.Board))

	if state.Selection != nil {
		fmt.Fprintf(&result, "\nSelected: %s at %s index %d\n",
			state.Selection.Card, state.Selection.Source.Pile, state.Selection.Source.Index)
	}

	if state.Won {
		result.WriteString("\n🎉 VICTORY!")
	}

	if state.Message != "" {
		fmt.Fprintf(&result, "\nMessage: %s", state.Message)
	}

	return result.String()
}

func formatSelectResult(result *service.SelectResult) string {
	var response string
	switch result.Status {
	case engine.SelectionSelected:
		response = "✓ Selected\n"
		if result.Selection != nil {
			response = fmt.Sprintf("✓ Selected %s\n", result.Selection.Card)
		}
	case engine.SelectionDeselected:
		response = "✓ Selection cleared\n"
	default:
		response = fmt.Sprintf("✗ Invalid selection: %s\n", result.Reason)
	}
	return response + "\n" + formatGameState(result.GameState)
}

func formatMoveResult(result *service.MoveResult) string {
	response := ""
	if result.Success {
		response = "✓ Move successful\n"
	} else {
		response = fmt.Sprintf("✗ Move failed: %s\n", result.Reason)
		if result.ReasonText != "" {
			response += result.ReasonText + "\n"
		}
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	response += "\n" + formatGameState(result.GameState)
	return response
}

func formatActionResult(result *service.ActionResult) string {
	status := "✓"
	if !result.Success {
		status = "✗"
	}
	return fmt.Sprintf("%s %s\n\n%s", status, result.Message, formatGameState(result.GameState))
}

func formatHint(result *service.HintResult) string {
	if !result.Available || result.Hint == nil {
		return result.Message
	}
	h := result.Hint
	return fmt.Sprintf("%s\nSource: %s index %d\nTarget: %s",
		result.Message, h.Source, h.CardIndex, h.Target)
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (Page %d/%d) - Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for _, move := range history.Moves {
		status := "✓"
		if !move.Success {
			status = "✗"
		}
		fmt.Fprintf(&b, "%d. %s %s", move.MoveNumber, move.Action, status)
		if move.From != "" || move.To != "" {
			fmt.Fprintf(&b, " %s→%s", move.From, move.To)
		}
		if len(move.Cards) > 0 {
			labels := make([]string, len(move.Cards))
			for i, card := range move.Cards {
				labels[i] = card.String()
			}
			fmt.Fprintf(&b, " [%s]", strings.Join(labels, " "))
		}
		if move.Reason != "" {
			fmt.Fprintf(&b, " (%s)", move.Reason)
		}
		b.WriteString("\n")
	}

	return b.String()
}
