package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/njchilds90/symcanon"
	"github.com/njchilds90/symcanon/internal/config"
)

// app is the state shared by the subcommands of one invocation.
type app struct {
	cfgFile string
	verbose bool

	cfg    config.Config
	logger *zap.Logger
	canon  *symcanon.Canonicalizer
}

// NewRootCommand builds the symcanon command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "symcanon",
		Short:         "symcanon - simplify and canonicalize symbolic math expressions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(true)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", config.DefaultPath, "configuration file")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newSimplifyCmd(a))
	rootCmd.AddCommand(newBatchCmd(a))
	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newInitCmd(a))
	return rootCmd
}

// Execute runs the command tree and reports any error on stderr.
func Execute() error {
	rootCmd := NewRootCommand()
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// setup loads the configuration (unless load is false) and builds the
// logger and canonicalizer from it.
func (a *app) setup(load bool) error {
	a.cfg = config.Default()
	if load {
		cfg, err := config.Load(a.cfgFile)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	logger, err := newLogger(a.cfg.Log.Level, a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger
	a.canon = symcanon.NewCanonicalizer(
		symcanon.WithParserConfig(a.cfg.Parser),
		symcanon.WithLogger(logger),
	)
	return nil
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	zcfg.Encoding = "console"
	return zcfg.Build()
}

// variables returns the names given on the command line, falling back to
// the configured default list.
func (a *app) variables(flagVars []string) []string {
	if len(flagVars) > 0 {
		return flagVars
	}
	return a.cfg.Variables
}
