package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sdrlab/go-interleave/internal/config"
	"github.com/sdrlab/go-interleave/internal/logger"
	"github.com/sdrlab/go-interleave/internal/sdr/codec"
	"github.com/sdrlab/go-interleave/internal/sdr/harness"
)

const version = "1.0.0"

var (
	cfgFile    string
	verbose    bool
	quiet      bool
	numSamples int
)

// rootCmd runs the verification suite when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "interleave-verify",
	Short: "Verify MIMO sample-stream interleaving round trips",
	Long: `interleave-verify drives pattern-filled sample buffers through the
interleave and deinterleave transforms and checks every stage: metadata
headers must be untouched, single-channel interleaving must be a no-op,
each channel's strided sub-sequence must carry its original counting
pattern, and the full round trip must recover the buffer exactly.

The exit status is 0 only when every scenario passes; the first failing
scenario aborts the run.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSuite()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML, optional)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "emit per-word diagnostics and buffer dumps")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress scenario narration, print failures only")
	rootCmd.Flags().IntVar(&numSamples, "samples", 0, "per-scenario sample count (default 16384)")

	rootCmd.AddCommand(versionCmd)
}

func runSuite() error {
	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			logger.Error("failed to load config", "error", err)
			return err
		}
		cfg = loaded
	}

	// Flags override the config file.
	if verbose {
		cfg.Verbose = true
	}
	if quiet {
		cfg.Quiet = true
	}
	if numSamples > 0 {
		cfg.NumSamples = numSamples
	}
	if cfg.Verbose && cfg.Quiet {
		return fmt.Errorf("verbose and quiet are mutually exclusive")
	}

	logger.Init()
	switch {
	case cfg.Verbose:
		_ = logger.SetLevel("debug")
	case cfg.Quiet:
		_ = logger.SetLevel("warn")
	}

	scenarios, err := cfg.ScenarioList()
	if err != nil {
		logger.Error("invalid scenario list", "error", err)
		return err
	}

	runner := harness.New(codec.New(),
		harness.WithVerbose(cfg.Verbose),
		harness.WithQuiet(cfg.Quiet),
	)
	if err := runner.Run(scenarios); err != nil {
		logger.Error("verification failed", "error", err)
		return err
	}

	if !cfg.Quiet {
		logger.Info("all scenarios passed", "count", len(scenarios))
	}
	return nil
}
