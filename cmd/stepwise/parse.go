package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/stepwise/pkg/stepwise"
	"github.com/cognicore/stepwise/pkg/stepwise/recipe"
)

type parseFlags struct {
	file     string
	strategy string
	noSplit  bool
	format   string
}

func newParseCmd(a *app) *cobra.Command {
	var f parseFlags
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a recipe (or a JSON array of recipes) into steps",
		Long: `Parse reads a scraped recipe as JSON:

  {"title": "...", "url": "...", "ingredients": [{"name": "onion", "quantity": "1"}],
   "directions": ["Preheat oven to 350°F.", "..."]}

A JSON array of such objects is parsed concurrently; output keeps input order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, a, f)
		},
	}
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Recipe JSON file (required)")
	cmd.Flags().StringVar(&f.strategy, "strategy", "", "Extraction strategy: advanced or regex")
	cmd.Flags().BoolVar(&f.noSplit, "no-split", false, "Keep each direction as a single step")
	cmd.Flags().StringVar(&f.format, "format", "json", "Output format: json or yaml")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runParse(cmd *cobra.Command, a *app, f parseFlags) error {
	if f.format != "json" && f.format != "yaml" {
		return fmt.Errorf("unknown format %q", f.format)
	}
	cfg, log, err := a.loadConfig()
	if err != nil {
		return err
	}
	if f.strategy != "" {
		cfg.Strategy = f.strategy
	}
	if f.noSplit {
		cfg.SplitAtomicSteps = false
	}

	data, err := afero.ReadFile(a.fs, f.file)
	if err != nil {
		return fmt.Errorf("read recipe: %w", err)
	}
	inputs, batch, err := decodeInputs(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", f.file, err)
	}

	parser, err := stepwise.NewFromConfig(cfg, a.fs, log)
	if err != nil {
		return err
	}
	recipes, err := parser.ParseAll(cmd.Context(), inputs)
	if err != nil {
		return err
	}
	log.Info().Str("strategy", parser.Strategy()).Int("recipes", len(recipes)).Msg("parsed")

	if batch {
		return write(a.out, f.format, recipes)
	}
	return write(a.out, f.format, recipes[0])
}

// decodeInputs accepts a single recipe object or an array of them.
func decodeInputs(data []byte) ([]recipe.Input, bool, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var inputs []recipe.Input
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, err
		}
		return inputs, true, nil
	}
	var in recipe.Input
	if err := json.Unmarshal(trimmed, &in); err != nil {
		return nil, false, err
	}
	return []recipe.Input{in}, false, nil
}

func write(w io.Writer, format string, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
