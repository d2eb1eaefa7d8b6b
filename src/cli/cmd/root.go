package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sofmeright/git2container/src/config"
	"github.com/sofmeright/git2container/src/logging"
)

var (
	cfgFile   string
	verbose   bool
	logLevel  string
	logFormat string
	cfg       *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "git2container",
	Short: "Build a Singularity image from a git repository",
	Long: `git2container writes a Singularity definition that clones a git repository
and installs its conda environment, then builds the image with
"singularity build --fakeroot".

The definition is written to <output-dir>/Singularity and the image to
<output-dir>/container.sif.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it.
		if cmd.Name() == "version" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cmd.SetContext(logger.WithContext(ctx))
		return nil
	},
	RunE:          runBuild,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .git2container.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logs, echo builder command)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: console, json (default from config)")

	addDefinitionFlags(rootCmd)
	rootCmd.Flags().StringVar(&opts.builder, "builder", "", "build tool executable (default from config, else singularity)")
	rootCmd.Flags().BoolVar(&opts.skipPreflight, "skip-preflight", false, "skip the builder --version fakeroot check")
	rootCmd.Flags().BoolVar(&opts.failOnError, "fail-on-error", false, "exit non-zero when the build tool fails")
	rootCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "write the definition without building")
}

// newLogger builds the run logger. Flags override config; --verbose
// means debug unless --log-level is given.
func newLogger(cmd *cobra.Command) (zerolog.Logger, error) {
	name := cfg.Log.Level
	if verbose {
		name = "debug"
	}
	if logLevel != "" {
		name = logLevel
	}
	level, err := logging.ParseLevel(name)
	if err != nil {
		return zerolog.Nop(), err
	}

	format := cfg.Log.Format
	if logFormat != "" {
		format = logFormat
	}
	if format != "console" && format != "json" {
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", format)
	}

	logger, _ := logging.WithRun(logging.New(cmd.ErrOrStderr(), level, format))
	return logger, nil
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
