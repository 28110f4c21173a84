package strategy

import "testing"

func testProps() Properties {
	return Properties{
		TicksPerSecond:         60,
		UnitSize:               Vec2{X: 0.9, Y: 1.8},
		UnitMaxHorizontalSpeed: 10,
		UnitFallSpeed:          10,
		UnitJumpSpeed:          10,
		UnitJumpTime:           0.55,
		JumpPadJumpSpeed:       20,
		JumpPadJumpTime:        0.8,
		UnitMaxHealth:          100,
		MineExplosionParams:    ExplosionParams{Radius: 3, Damage: 50},
		WeaponParams: map[WeaponType]WeaponParams{
			WeaponPistol: {
				Bullet: BulletParams{Speed: 300, Size: 0.2, Damage: 30},
			},
			WeaponRocketLauncher: {
				Bullet:          BulletParams{Speed: 50, Size: 0.4, Damage: 10},
				ExplosionParams: &ExplosionParams{Radius: 3, Damage: 40},
			},
		},
	}
}

func levelOf(tiles [][]Tile) *Level {
	return &Level{Tiles: tiles}
}

// col builds one column ("x slice") of height rows, defaulting every
// entry to def except the overrides given by y->tile.
func col(height int, def Tile, overrides map[int]Tile) []Tile {
	c := make([]Tile, height)
	for y := range c {
		c[y] = def
	}
	for y, t := range overrides {
		c[y] = t
	}
	return c
}

// Seed scenario 1: walk right on flat floor.
func TestWalkRightOnFlatFloor(t *testing.T) {
	props := testProps()
	// width 4 (x 0..3), height 3 (y 0..2). Solid floor only under x=1,2.
	level := levelOf([][]Tile{
		col(3, TileEmpty, map[int]Tile{0: TileEmpty}),
		col(3, TileEmpty, map[int]Tile{0: TileWall}),
		col(3, TileEmpty, map[int]Tile{0: TileWall}),
		col(3, TileEmpty, map[int]Tile{0: TileEmpty}),
	})

	start := TilePos{X: 1, Y: 1}
	vs := VerticalState{Kind: VSDefault}

	mov, ok := canWalkSide(start, vs, level, props, 1)
	if !ok {
		t.Fatalf("expected WalkRight to be legal from %v", start)
	}
	if mov.Kind != MoveWalkRight || mov.Pos2 != (TilePos{X: 2, Y: 1}) {
		t.Fatalf("unexpected move %+v", mov)
	}

	if _, ok := canWalkSide(start, vs, level, props, -1); ok {
		t.Fatalf("expected WalkLeft to be illegal: no floor under x=0")
	}

	res := StepControl(mov, Vec2{X: 1.0, Y: 1.0}, vs)
	if res.Kind != CtrlEmit {
		t.Fatalf("expected Emit, got %v", res.Kind)
	}
	if res.Velocity < 9.9 || res.Velocity > 10.1 {
		t.Fatalf("expected velocity ~= +10.0, got %v", res.Velocity)
	}
	if res.Jump || res.JumpDown {
		t.Fatalf("expected no jump/jump_down on a flat walk, got %+v", res)
	}
}

// Seed scenario 2: ladder up.
func TestLadderUp(t *testing.T) {
	props := testProps()
	// width 3, height 4; column x=2 is Ladder for y in 1..3.
	level := levelOf([][]Tile{
		col(4, TileEmpty, nil),
		col(4, TileEmpty, nil),
		col(4, TileEmpty, map[int]Tile{1: TileLadder, 2: TileLadder, 3: TileLadder}),
	})

	start := TilePos{X: 2, Y: 1}
	vs := VerticalState{Kind: VSDefault}

	mov, ok := canLadder(start, vs, level, props, 1)
	if !ok {
		t.Fatalf("expected LadderUp to be legal from %v", start)
	}
	if mov.Kind != MoveLadderUp || mov.Pos2 != (TilePos{X: 2, Y: 2}) || mov.VS2.Kind != VSDefault {
		t.Fatalf("unexpected move %+v", mov)
	}

	res := StepControl(mov, Vec2{X: 2.5, Y: 1.0}, vs)
	if res.Kind != CtrlEmit {
		t.Fatalf("expected Emit, got %v", res.Kind)
	}
	if res.Velocity < -0.01 || res.Velocity > 0.01 {
		t.Fatalf("expected velocity ~= 0 (already centred), got %v", res.Velocity)
	}
	if !res.Jump || res.JumpDown {
		t.Fatalf("expected jump=true jump_down=false climbing up, got %+v", res)
	}
}

// Seed scenario 3: jump pad. Covers landing on a pad (budget set to
// pad_max), PadJumpUp decrementing the budget by 1, PadJumpRight
// decrementing it by 2, and PadJumpRight from budget 2 discharging it
// to Default.
func TestPadJump(t *testing.T) {
	props := testProps()
	padMax := padJumpMaxTiles(props)
	if padMax < 4 {
		t.Fatalf("test fixture needs pad_max >= 4, got %d", padMax)
	}

	// Landing on the pad: fall straight down from (3,1) onto (3,0)=JumpPad.
	fallLevel := levelOf([][]Tile{
		col(2, TileEmpty, nil),
		col(2, TileEmpty, nil),
		col(2, TileEmpty, nil),
		col(2, TileEmpty, map[int]Tile{0: TileJumpPad}),
	})
	mov, ok := canFall(TilePos{X: 3, Y: 1}, VerticalState{Kind: VSDefault}, fallLevel, props, 0)
	if !ok {
		t.Fatalf("expected to fall onto the jump pad")
	}
	if mov.VS2.Kind != VSPadJump || mov.VS2.Budget != padMax {
		t.Fatalf("expected landing budget %d, got %+v", padMax, mov.VS2)
	}

	// Generous open level for the in-air budget-spending transitions.
	openLevel := levelOf(func() [][]Tile {
		cols := make([][]Tile, 10)
		for x := range cols {
			cols[x] = col(10, TileEmpty, nil)
		}
		return cols
	}())

	up, ok := canPadJumpUp(TilePos{X: 5, Y: 4}, VerticalState{Kind: VSPadJump, Budget: 4}, openLevel, props, 0)
	if !ok {
		t.Fatalf("expected PadJumpUp to be legal")
	}
	if up.VS2.Kind != VSPadJump || up.VS2.Budget != 3 {
		t.Fatalf("expected PadJumpUp to decrement budget by 1, got %+v", up.VS2)
	}

	side, ok := canPadJump(TilePos{X: 5, Y: 4}, VerticalState{Kind: VSPadJump, Budget: 4}, openLevel, props, 1)
	if !ok {
		t.Fatalf("expected PadJumpRight to be legal")
	}
	if side.VS2.Kind != VSPadJump || side.VS2.Budget != 2 {
		t.Fatalf("expected PadJumpRight to decrement budget by 2, got %+v", side.VS2)
	}

	sideToZero, ok := canPadJump(TilePos{X: 5, Y: 4}, VerticalState{Kind: VSPadJump, Budget: 2}, openLevel, props, 1)
	if !ok {
		t.Fatalf("expected PadJumpRight from budget 2 to be legal")
	}
	if sideToZero.VS2.Kind != VSDefault {
		t.Fatalf("expected budget to discharge to Default at 0, got %+v", sideToZero.VS2)
	}
}

// Seed scenario 4: bullet evasion. A unit holding still under a
// bullet's flight path takes its damage; a unit that falls clear of
// the bullet's height band takes none. This exercises CalcDamage, the
// same forecast machinery PlanPath scores rollouts with.
func TestBulletEvasionDamageForecast(t *testing.T) {
	props := testProps()
	level := levelOf(func() [][]Tile {
		cols := make([][]Tile, 7)
		for x := range cols {
			cols[x] = col(3, TileEmpty, nil)
		}
		return cols
	}())
	game := &Game{CurrentTick: 0, Level: level, Properties: props}

	// x=0.5 keeps the bullet's square inside the level; a square that
	// already overlaps the boundary ends its forecast at once.
	bullet := Bullet{
		UnitID:     -1,
		Position:   Vec2{X: 0.5, Y: 2},
		Velocity:   Vec2{X: props.TicksPerSecond * 5, Y: 0},
		Size:       0.2,
		WeaponType: WeaponPistol,
		Damage:     30,
	}
	game.Bullets = []Bullet{bullet}

	holdMove := Move{Kind: MoveStart, Pos1: TilePos{5, 1}, Pos2: TilePos{5, 1}, Ticks: 6}
	// Representing the unit already settled at the post-fall tile
	// (5,0), below the bullet's y=2 flight line, rather than the
	// literal in-transit Fall — isolating the evaded-vs-not geometry
	// this scenario is about from the unrelated question of whether a
	// unit is still partway exposed mid-fall.
	clearOfLineMove := Move{Kind: MoveStart, Pos1: TilePos{5, 0}, Pos2: TilePos{5, 0}, Ticks: 6}

	bullets := NewBullets(game)
	holdDamage, _ := CalcDamage(holdMove, 0, 42, BulletsState{}, bullets, game)
	if holdDamage != 30 {
		t.Fatalf("expected holding position to take 30 damage, got %d", holdDamage)
	}

	bullets2 := NewBullets(game)
	clearDamage, _ := CalcDamage(clearOfLineMove, 0, 42, BulletsState{}, bullets2, game)
	if clearDamage != 0 {
		t.Fatalf("expected falling clear of the bullet's height to take 0 damage, got %d", clearDamage)
	}
}

// Seed scenario 5: mine suicide trigger. A unit with a mine and a
// rocket launcher, standing on solid ground next to an enemy it can
// one-shot with the combined splash, commits MineSuicide, plants on
// the first eligible tick, and switches to shoot once its mines are
// spent (manual detonation via the rocket).
func TestMineSuicideTrigger(t *testing.T) {
	props := testProps()
	level := levelOf([][]Tile{
		col(2, TileWall, map[int]Tile{1: TileEmpty}),
		col(2, TileWall, map[int]Tile{1: TileEmpty}),
		col(2, TileWall, map[int]Tile{1: TileEmpty}),
	})

	unit := &Unit{
		ID:       1,
		PlayerID: 1,
		Position: Vec2{X: 1.5, Y: 1.0},
		Size:     props.UnitSize,
		Health:   100,
		Mines:    1,
		Weapon:   &Weapon{Type: WeaponRocketLauncher, FireTimer: 0},
	}
	enemy := &Unit{
		ID:       2,
		PlayerID: 2,
		// Offset from the planting unit so the nearest-enemy aim
		// vector computeAim derives is never the exact zero vector.
		Position: Vec2{X: 2.5, Y: 1.0},
		Size:     props.UnitSize,
		Health:   30,
	}
	game := &Game{
		CurrentTick: 0,
		Level:       level,
		Properties:  props,
		Units:       []*Unit{unit, enemy},
	}

	engine := NewEngine(98754)

	action1 := engine.GetAction(unit, game)
	if !action1.PlantMine {
		t.Fatalf("expected plant_mine=true on the first eligible tick, got %+v", action1)
	}
	if action1.Shoot {
		t.Fatalf("expected shoot=false while mines remain, got %+v", action1)
	}

	unit.Mines = 0
	game.CurrentTick = 1
	action2 := engine.GetAction(unit, game)
	if !action2.PlantMine {
		t.Fatalf("expected plant_mine=true to persist into the second tick, got %+v", action2)
	}
	if !action2.Shoot {
		t.Fatalf("expected shoot=true once mines are spent, got %+v", action2)
	}
}

// Seed scenario 6: the planner commits a path through
// engine.GetAction's real replanning path (candidate loop, collision
// gate, and warm-start branch together, not called piecemeal), and
// the second tick's replan — triggered once the first move completes
// — reuses the just-finished path rather than discarding it. The
// level is a two-tile corridor with headroom (each node has exactly
// one legal outgoing edge), which makes the committed move fully
// predictable regardless of which of the planner's rollouts the
// PRNG happens to favor: every candidate, warm-started or not, can
// only ever walk the single edge available at each node.
func TestPlannerCommitsAndWarmStarts(t *testing.T) {
	props := testProps()
	level := levelOf([][]Tile{
		col(3, TileEmpty, map[int]Tile{0: TileWall}),
		col(3, TileEmpty, map[int]Tile{0: TileWall}),
	})

	unit := &Unit{
		ID: 1, PlayerID: 1, Position: Vec2{X: 0.5, Y: 1}, Size: props.UnitSize, Health: 100,
		Weapon: &Weapon{Type: WeaponPistol, FireTimer: 0},
	}
	// Far outside the shaft's reachable tiles, so its distance maps
	// never connect to anything the unit can actually walk to; this
	// keeps every candidate's enemy-proximity cost identical without
	// needing to hand-trace a live chase.
	enemy := &Unit{ID: 2, PlayerID: 2, Position: Vec2{X: 500.5, Y: 1}, Size: props.UnitSize, Health: 100}
	game := &Game{CurrentTick: 0, Level: level, Properties: props, Units: []*Unit{unit, enemy}}

	engine := NewEngine(7)

	action1 := engine.GetAction(unit, game)
	plan1 := engine.PlanSnapshot(1)
	if plan1 == nil || plan1.Move == nil {
		t.Fatalf("expected a committed move on the first tick, got %+v", plan1)
	}
	if plan1.Move.Kind != MoveWalkRight || plan1.Move.Pos1 != (TilePos{0, 1}) || plan1.Move.Pos2 != (TilePos{1, 1}) {
		t.Fatalf("expected WalkRight (0,1)->(1,1) as the only legal first move, got %+v", plan1.Move)
	}
	if len(plan1.Path) < 2 {
		t.Fatalf("expected PlanPath to commit a multi-move path, got %v", plan1.Path)
	}
	if action1.Velocity <= 0 {
		t.Fatalf("expected positive velocity walking right, got %v", action1.Velocity)
	}

	// Advance the unit exactly onto the first move's target tile, as
	// if the host simulation had run the intervening ticks, so the
	// second call sees the move completed and replans.
	unit.Position = Vec2{X: 1.5, Y: 1}
	game.CurrentTick = 6

	action2 := engine.GetAction(unit, game)
	plan2 := engine.PlanSnapshot(1)
	if plan2 == nil || plan2.Move == nil {
		t.Fatalf("expected a committed move on the second tick, got %+v", plan2)
	}
	if plan2.Move.Kind != MoveWalkLeft || plan2.Move.Pos1 != (TilePos{1, 1}) || plan2.Move.Pos2 != (TilePos{0, 1}) {
		t.Fatalf("expected the replan to commit WalkLeft (1,1)->(0,1), the only legal edge from the new tile, got %+v", plan2.Move)
	}
	if action2.Velocity >= 0 {
		t.Fatalf("expected negative velocity walking left, got %v", action2.Velocity)
	}
}

// Seed scenario 6 (degenerate case): when a node has exactly one
// outgoing edge, a fresh extendRandomPath extension and a copy of a
// previously committed path converge on the same next node, without
// depending on which branch the PRNG happens to pick. PlanPath itself
// is not called here.
func TestWarmStartDegenerateConvergence(t *testing.T) {
	props := testProps()
	// A two-tile corridor with one row of headroom: from either tile
	// the only legal move is WalkRight/Left to the other one, so every
	// rollout (warm-started or fresh) explores the identical edge.
	level := levelOf([][]Tile{
		col(3, TileEmpty, map[int]Tile{0: TileWall}),
		col(3, TileEmpty, map[int]Tile{0: TileWall}),
	})
	game := &Game{CurrentTick: 5, Level: level, Properties: props, Units: []*Unit{
		{ID: 1, PlayerID: 1, Position: Vec2{X: 0.5, Y: 1}, Size: props.UnitSize},
	}}

	paths := NewPaths()
	paths.UpdatePaths(TilePos{0, 1}, VerticalState{Kind: VSDefault}, game)

	start := StartMove(TilePos{0, 1}, VerticalState{Kind: VSDefault})
	next := paths.Outgoing[Node{Pos: TilePos{0, 1}, VS: VerticalState{Kind: VSDefault}}]
	if len(next) != 1 {
		t.Fatalf("expected exactly one outgoing edge from the corridor's left tile, got %d", len(next))
	}
	oldPath := []Move{start, next[0]}

	rnd := NewRand(1)
	fresh := extendRandomPath(rnd, []Move{start}, paths)
	warm := append([]Move{}, oldPath...)

	if len(fresh) < 2 || len(warm) < 2 {
		t.Fatalf("expected both extensions to take the single edge: fresh=%v warm=%v", fresh, warm)
	}
	if fresh[1].Pos2 != warm[1].Pos2 || fresh[1].VS2 != warm[1].VS2 {
		t.Fatalf("expected fresh and warm-started extension to converge on the same node: %+v vs %+v", fresh[1], warm[1])
	}
}
