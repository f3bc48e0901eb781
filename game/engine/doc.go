// Package engine provides the core rules of Klondike solitaire.
//
// The engine package implements the game mechanics including:
//   - Deck construction, shuffling, and the initial deal
//   - Move legality for foundations and tableau piles
//   - Selection, moves, stock draws, and waste recycling
//   - Undo and redo over board snapshots
//   - Hints and snapshot persistence
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState embeds the Board (tableau,
// foundations, stock, waste) and adds selection and the move log, while
// GameConfig carries the messages, seed, and history limit loaded from JSON.
//
// Usage:
//
//	config, err := engine.LoadConfigByName("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine.Select(engine.CardRef{Pile: engine.TableauRef(6), Index: 6})
//	result := gameEngine.AttemptMove(engine.FoundationRef(engine.Hearts))
//	if !result.Success {
//		fmt.Println(result.Reason.Description())
//	}
//
// Game Rules:
//
// Foundations are built up by suit from Ace to King, one card at a time.
// Tableau piles are built down in alternating colors and only a King may
// start an empty pile. The stock deals one card at a time onto the waste and
// the waste is turned back over when the stock runs out. The game is won
// when all four foundations are complete.
package engine
