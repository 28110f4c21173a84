package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	strategy "github.com/stremin/codeside-strategy"
	"github.com/stremin/codeside-strategy/utils"
)

var watchAddr string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Replay a fixture while serving the debug websocket endpoint",
	Long: `watch runs a fixture through the engine like replay, printing each
tick's shoot/plant_mine flags, and also starts a websocket server at
/debug that clients can connect to. The engine is not attached to the
broadcast sink, so connected clients receive no events.

Examples:
  strategyctl watch --fixture match.json --addr :8090`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchAddr, "addr", ":8090", "address to serve the debug websocket on")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, fixture, err := loadConfigAndFixture()
	if err != nil {
		return err
	}

	logger := strategy.NewLogger(cfg.DevMode, os.Stdout, slog.LevelInfo)
	sink := strategy.NewBroadcastSink(100*time.Millisecond, logger)

	mux := http.NewServeMux()
	mux.Handle("/debug", sink)
	server := &http.Server{Addr: watchAddr, Handler: mux}
	utils.PrintStartupMessage(watchAddr)
	go func() {
		logger.Info("serving debug watch endpoint", "addr", watchAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("debug watch server stopped", "error", err)
		}
	}()

	engine := strategy.NewEngine(cfg.Seed)
	for tickIndex := range fixture.Ticks {
		game := fixture.Game(tickIndex)
		for _, id := range fixture.ControlledIDs {
			unit := game.UnitByID(id)
			if unit == nil {
				continue
			}
			action := engine.GetAction(unit, game)
			fmt.Printf("tick=%d unit=%d shoot=%v plant_mine=%v\n", game.CurrentTick, id, action.Shoot, action.PlantMine)
		}
	}
	return nil
}
