package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	strategy "github.com/stremin/codeside-strategy"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Run a fixture through the engine tick by tick, printing each action",
	RunE:  runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, fixture, err := loadConfigAndFixture()
	if err != nil {
		return err
	}

	engine := strategy.NewEngine(cfg.Seed)
	formatter := NewOutputFormatter()

	for tickIndex := range fixture.Ticks {
		game := fixture.Game(tickIndex)
		for _, id := range fixture.ControlledIDs {
			unit := game.UnitByID(id)
			if unit == nil {
				continue
			}
			action := engine.GetAction(unit, game)
			if formatter.JSON {
				if err := formatter.PrintJSON(map[string]any{
					"tick":   game.CurrentTick,
					"unit":   id,
					"action": action,
				}); err != nil {
					return err
				}
				continue
			}
			fmt.Printf("tick=%d unit=%d velocity=%.2f jump=%v jump_down=%v aim=(%.2f,%.2f) shoot=%v plant_mine=%v\n",
				game.CurrentTick, id, action.Velocity, action.Jump, action.JumpDown,
				action.Aim.X, action.Aim.Y, action.Shoot, action.PlantMine)
		}
	}
	return nil
}
