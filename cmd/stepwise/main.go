// Command stepwise parses recipe directions into structured steps and
// inspects the kitchen lexicon.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/cognicore/stepwise/internal/logging"
	"github.com/cognicore/stepwise/pkg/stepwise/config"
)

// app carries what every subcommand needs.
type app struct {
	fs         afero.Fs
	out        io.Writer
	errOut     io.Writer
	configPath string
	logLevel   string
}

func newRootCmd(fs afero.Fs, out, errOut io.Writer) *cobra.Command {
	a := &app{fs: fs, out: out, errOut: errOut}
	root := &cobra.Command{
		Use:   "stepwise",
		Short: "Turn recipe directions into structured atomic steps",
		Long: `stepwise splits free-text cooking directions into atomic steps and
annotates each with ingredients, tools, methods, time, temperature and
a classification.

Examples:
  stepwise parse --file recipe.json
  stepwise parse --file recipes.json --strategy regex --format yaml
  stepwise tools --category cookware`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override the configured log level")

	root.AddCommand(newParseCmd(a))
	root.AddCommand(newToolsCmd(a))
	return root
}

// loadConfig reads settings and builds the logger they describe.
func (a *app) loadConfig() (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(a.fs, a.configPath)
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, a.errOut)
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	return cfg, log, nil
}

func main() {
	if err := newRootCmd(afero.NewOsFs(), os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		os.Exit(1)
	}
}
