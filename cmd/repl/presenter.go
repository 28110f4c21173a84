package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	strategy "github.com/stremin/codeside-strategy"
)

// CLI is the REPL's session state: the fixture being stepped through,
// the engine driving it, and the readline instance for history.
type CLI struct {
	fixture   *strategy.Fixture
	engine    *strategy.Engine
	tickIndex int
	readline  *readline.Instance
}

// NewCLI loads fixturePath and wires an engine ready to step through
// it one tick at a time.
func NewCLI(fixturePath string) (*CLI, error) {
	fixture, err := strategy.LoadFixture(fixturePath)
	if err != nil {
		return nil, err
	}
	rl, err := readline.New("strategy> ")
	if err != nil {
		return nil, err
	}
	return &CLI{
		fixture:  fixture,
		engine:   strategy.NewEngine(1),
		readline: rl,
	}, nil
}

// Close releases the readline instance.
func (c *CLI) Close() {
	c.readline.Close()
}

// ExecuteCommand dispatches one REPL line and returns its output.
// Returning the literal string "quit" tells the caller to exit.
func (c *CLI) ExecuteCommand(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	switch fields[0] {
	case "quit", "exit":
		return "quit"
	case "help":
		return helpText()
	case "status":
		return c.cmdStatus()
	case "step":
		return c.cmdStep()
	case "graph":
		return c.cmdGraph()
	case "plan":
		return c.cmdPlan(fields[1:])
	case "dump":
		return c.cmdDump()
	default:
		return fmt.Sprintf("unknown command %q (try 'help')", fields[0])
	}
}

func (c *CLI) currentGame() (*strategy.Game, bool) {
	if c.tickIndex >= len(c.fixture.Ticks) {
		return nil, false
	}
	return c.fixture.Game(c.tickIndex), true
}

func (c *CLI) cmdStatus() string {
	game, ok := c.currentGame()
	if !ok {
		return "fixture exhausted"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "tick %d/%d\n", c.tickIndex, len(c.fixture.Ticks)-1)
	for _, id := range c.fixture.ControlledIDs {
		if unit := game.UnitByID(id); unit != nil {
			fmt.Fprintf(&sb, "  unit %d: pos=(%.2f,%.2f) health=%d mines=%d\n",
				unit.ID, unit.Position.X, unit.Position.Y, unit.Health, unit.Mines)
		}
	}
	return sb.String()
}

func (c *CLI) cmdStep() string {
	game, ok := c.currentGame()
	if !ok {
		return "fixture exhausted"
	}
	var sb strings.Builder
	for _, id := range c.fixture.ControlledIDs {
		unit := game.UnitByID(id)
		if unit == nil {
			continue
		}
		action := c.engine.GetAction(unit, game)
		fmt.Fprintf(&sb, "unit %d: velocity=%.2f jump=%v aim=(%.2f,%.2f) shoot=%v plant_mine=%v\n",
			id, action.Velocity, action.Jump, action.Aim.X, action.Aim.Y, action.Shoot, action.PlantMine)
	}
	c.tickIndex++
	return sb.String()
}

func (c *CLI) cmdGraph() string {
	game, ok := c.currentGame()
	if !ok {
		return "fixture exhausted"
	}
	paths := strategy.NewPaths()
	for _, id := range c.fixture.ControlledIDs {
		unit := game.UnitByID(id)
		if unit == nil {
			continue
		}
		vs := strategy.GetVerticalState(unit, game)
		paths.UpdatePaths(strategy.TileOf(unit.Position), vs, game)
	}
	edges := 0
	for _, moves := range paths.Outgoing {
		edges += len(moves)
	}
	return fmt.Sprintf("nodes expanded: %d, edges: %d", len(paths.Outgoing), edges)
}

func (c *CLI) cmdPlan(args []string) string {
	if len(args) == 0 {
		var ids []string
		for _, id := range c.fixture.ControlledIDs {
			ids = append(ids, strconv.Itoa(id))
		}
		return "usage: plan <unit-id> (one of: " + strings.Join(ids, ", ") + ")"
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Sprintf("not a unit id: %s", args[0])
	}
	plan := c.engine.PlanSnapshot(id)
	if plan == nil {
		return fmt.Sprintf("no committed plan yet for unit %d (run 'step' first)", id)
	}
	if plan.Move == nil {
		return fmt.Sprintf("unit %d: idle, %d queued transitions", id, len(plan.Path))
	}
	return fmt.Sprintf("unit %d: executing %v -> %v, %d transitions queued since tick %d",
		id, plan.Move.Pos1, plan.Move.Pos2, len(plan.Path), plan.PathStartTick)
}

func (c *CLI) cmdDump() string {
	game, ok := c.currentGame()
	if !ok {
		return "fixture exhausted"
	}
	b, err := json.MarshalIndent(game, "", "  ")
	if err != nil {
		return fmt.Sprintf("marshal error: %v", err)
	}
	return string(b)
}

func helpText() string {
	return strings.Join([]string{
		"step              advance one tick and print each controlled unit's action",
		"status            show the current tick and every controlled unit's position/health",
		"graph             expand and summarize the motion graph at the current tick",
		"plan <unit-id>    show a unit's currently committed transition",
		"dump              print the current tick's full Game snapshot as JSON",
		"help              show this text",
		"quit              exit",
	}, "\n")
}
