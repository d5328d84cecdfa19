package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/stepwise/pkg/stepwise/config"
	"github.com/cognicore/stepwise/pkg/stepwise/internalerr"
)

func newToolsCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List tool categories, or the tools in one category",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := a.loadConfig()
			if err != nil {
				return err
			}
			// the lexicon is all we need; regex skips loading a tagger
			cfg.Strategy = config.StrategyRegex
			loader := config.Loader{Fs: a.fs, Config: cfg}
			comp, err := loader.Load()
			if err != nil {
				return err
			}
			lex := comp.Lexicon

			if category == "" {
				for _, c := range lex.Categories() {
					fmt.Fprintf(a.out, "%s\t%d\n", c, len(lex.ToolsByCategory(c)))
				}
				return nil
			}
			tools := lex.ToolsByCategory(category)
			if tools == nil {
				return fmt.Errorf("tool category %q: %w", category, internalerr.ErrNotFound)
			}
			for _, t := range tools {
				fmt.Fprintln(a.out, t)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Show the tools of one category")
	return cmd
}
