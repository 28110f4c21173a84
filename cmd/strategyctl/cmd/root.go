package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	strategy "github.com/stremin/codeside-strategy"
)

var (
	cfgFile     string
	fixturePath string
	seed        uint64
	jsonOut     bool
	devMode     bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:          "strategyctl",
	Short:        "Inspect and replay the decision engine offline",
	SilenceUsage: true,
	Long: `strategyctl drives the decision engine against a captured fixture
instead of a live match, for development and debugging.

Examples:
  strategyctl replay --fixture match.json
  strategyctl graph --fixture match.json --tick 0
  strategyctl bench --fixture match.json
  strategyctl watch --fixture match.json --addr :8090`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "env file to load (default none)")
	rootCmd.PersistentFlags().StringVar(&fixturePath, "fixture", "", "path to a captured fixture (required)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "override the engine's PRNG seed (0 = use config default)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "use the pretty console log handler instead of JSON logs")
}

func loadConfigAndFixture() (strategy.Config, *strategy.Fixture, error) {
	cfg, err := strategy.LoadConfig(cfgFile)
	if err != nil {
		return cfg, nil, err
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if devMode {
		cfg.DevMode = true
	}
	if fixturePath == "" {
		return cfg, nil, fmt.Errorf("--fixture is required")
	}
	fixture, err := strategy.LoadFixture(fixturePath)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, fixture, nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
