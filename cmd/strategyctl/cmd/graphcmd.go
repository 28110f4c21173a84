package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	strategy "github.com/stremin/codeside-strategy"
)

var graphTick int

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Expand and dump the motion graph reachable from a fixture tick's units",
	RunE:  runGraph,
}

func init() {
	graphCmd.Flags().IntVar(&graphTick, "tick", 0, "fixture tick index to expand from")
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	_, fixture, err := loadConfigAndFixture()
	if err != nil {
		return err
	}
	if graphTick < 0 || graphTick >= len(fixture.Ticks) {
		return fmt.Errorf("tick index %d out of range (fixture has %d ticks)", graphTick, len(fixture.Ticks))
	}
	game := fixture.Game(graphTick)

	paths := strategy.NewPaths()
	for _, id := range fixture.ControlledIDs {
		unit := game.UnitByID(id)
		if unit == nil {
			continue
		}
		vs := strategy.GetVerticalState(unit, game)
		pos := strategy.TileOf(unit.Position)
		paths.UpdatePaths(pos, vs, game)
	}

	formatter := NewOutputFormatter()
	if formatter.JSON {
		return formatter.PrintJSON(map[string]any{
			"nodes_expanded": len(paths.Outgoing),
			"edges":          countEdges(paths),
		})
	}
	fmt.Printf("nodes expanded: %d\n", len(paths.Outgoing))
	fmt.Printf("edges: %d\n", countEdges(paths))
	return nil
}

func countEdges(paths *strategy.Paths) int {
	n := 0
	for _, moves := range paths.Outgoing {
		n += len(moves)
	}
	return n
}
