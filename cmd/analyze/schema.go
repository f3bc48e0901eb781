package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/invopop/jsonschema"

	"github.com/wricardo/klondike/game/engine"
)

// configSchema reflects the JSON Schema of engine.GameConfig
func configSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
	}
	schema := r.Reflect(&engine.GameConfig{})
	schema.Title = "Klondike game configuration"
	return schema
}

func writeSchema(out io.Writer) error {
	data, err := json.MarshalIndent(configSchema(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// printDeal prints the opening board cfg deals with seed
func printDeal(out io.Writer, cfg *engine.GameConfig, seed int64) error {
	if seed == 0 {
		return fmt.Errorf("seed must be non-zero")
	}
	dealt := *cfg
	dealt.Seed = seed
	eng, err := engine.NewEngine(&dealt)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Deal %d (%s)\n", seed, cfg.Name)
	fmt.Fprint(out, engine.FormatBoard(eng.GetState().Board))
	return nil
}
