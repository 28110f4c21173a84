package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	strategy "github.com/stremin/codeside-strategy"
)

var benchIterations int

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time the engine's GetAction across a fixture's ticks, repeated N times",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchIterations, "iterations", 10, "how many times to replay the fixture")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, fixture, err := loadConfigAndFixture()
	if err != nil {
		return err
	}

	var totalCalls int
	start := time.Now()
	for iter := 0; iter < benchIterations; iter++ {
		engine := strategy.NewEngine(cfg.Seed)
		for tickIndex := range fixture.Ticks {
			game := fixture.Game(tickIndex)
			for _, id := range fixture.ControlledIDs {
				unit := game.UnitByID(id)
				if unit == nil {
					continue
				}
				engine.GetAction(unit, game)
				totalCalls++
			}
		}
	}
	elapsed := time.Since(start)

	formatter := NewOutputFormatter()
	result := map[string]any{
		"iterations":  benchIterations,
		"total_calls": totalCalls,
		"elapsed_ms":  elapsed.Milliseconds(),
		"per_call_us": float64(elapsed.Microseconds()) / float64(max(totalCalls, 1)),
	}
	if formatter.JSON {
		return formatter.PrintJSON(result)
	}
	fmt.Printf("%d iterations, %d GetAction calls in %s (%.1f us/call)\n",
		benchIterations, totalCalls, elapsed, result["per_call_us"])
	return nil
}
