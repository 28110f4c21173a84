package strategy

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the settings a CLI flag, env var, or env file can supply.
// strategyctl applies Seed and DevMode; RolloutCount, RolloutTicks,
// FixturePath and SinkAddr are loaded but nothing reads them. The
// engine itself never calls viper directly — LoadConfig is the one
// seam.
type Config struct {
	Seed uint64

	RolloutCount int
	RolloutTicks int

	FixturePath string

	DevMode  bool
	SinkAddr string // from STRATEGY_WATCH_ADDR; watch uses its --addr flag instead
}

// DefaultConfig mirrors the planner's tuned constants so a caller that
// never touches flags/env still gets the values planner.go itself
// would use internally.
func DefaultConfig() Config {
	return Config{
		Seed:         1,
		RolloutCount: plannerPathCount,
		RolloutTicks: plannerMaxTicks,
		DevMode:      false,
	}
}

// LoadConfig reads env vars (STRATEGY_ prefixed) and an optional
// .env file into a Config, the way the source this was ported from
// loads its own config via godotenv+viper at process start. cfgFile
// may be empty, in which case only the process environment and
// defaults apply.
func LoadConfig(cfgFile string) (Config, error) {
	cfg := DefaultConfig()

	if cfgFile != "" {
		if err := godotenv.Load(cfgFile); err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("loading env file %s: %w", cfgFile, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix("STRATEGY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("seed", cfg.Seed)
	v.SetDefault("rollout-count", cfg.RolloutCount)
	v.SetDefault("rollout-ticks", cfg.RolloutTicks)
	v.SetDefault("dev-mode", cfg.DevMode)

	cfg.Seed = uint64(v.GetInt64("seed"))
	cfg.RolloutCount = v.GetInt("rollout-count")
	cfg.RolloutTicks = v.GetInt("rollout-ticks")
	cfg.DevMode = v.GetBool("dev-mode")
	cfg.FixturePath = v.GetString("fixture")
	cfg.SinkAddr = v.GetString("watch-addr")

	return cfg, nil
}
