package strategy

import "math"

// useMineSuicide gates the mine-suicide tactic entirely; kept as a
// named constant rather than inlined true, matching the source this
// was ported from, since it is the one tactic a future tuning pass is
// likely to want to disable wholesale.
const useMineSuicide = true

// UnitPlan is one controlled unit's persistent state across ticks: the
// transition it is currently executing, the committed path it was
// drawn from, and the position it last reported (used to detect it
// got stuck against another unit and needs a fresh plan).
type UnitPlan struct {
	ID            int
	Move          *Move
	Path          []Move
	PathStartTick int
	LastPosition  Vec2
}

// Engine is the per-match decision engine: one instance lives for the
// whole match, carries the lazily-expanded motion graph and the
// loot-distance maps built once on the first tick, and tracks one
// UnitPlan per controlled unit so GetAction can reason about what it
// already committed to on the previous call.
type Engine struct {
	rand             *Rand
	paths            *Paths
	lootDistanceMaps map[TilePos]map[Node]int
	lootMapsBuilt    bool
	plans            map[int]*UnitPlan
}

// NewEngine returns a fresh engine seeded for reproducible rollouts.
func NewEngine(seed uint64) *Engine {
	return &Engine{
		rand:             NewRand(seed),
		paths:            NewPaths(),
		lootDistanceMaps: make(map[TilePos]map[Node]int),
		plans:            make(map[int]*UnitPlan),
	}
}

// planFor returns the persistent plan for unit id, creating an empty
// one (with a sentinel last position that can never equal a real
// in-bounds position) the first time it is asked for.
func (e *Engine) planFor(id int) *UnitPlan {
	plan, ok := e.plans[id]
	if !ok {
		plan = &UnitPlan{ID: id, LastPosition: Vec2{X: -1, Y: -1}}
		e.plans[id] = plan
	}
	return plan
}

// allyLookup resolves another controlled unit's committed plan for
// collision/damage prediction. selfID is accepted for symmetry with
// the call sites that pass "my own id" but is not otherwise needed:
// the map is keyed by unit id regardless of which side owns it, and
// callers already filter out their own id before consulting it.
func (e *Engine) allyLookup(selfID int) AllyLookup {
	return func(unitID int) *UnitPlan {
		return e.plans[unitID]
	}
}

// PlanSnapshot exposes a unit's current committed plan for
// introspection tools (a REPL's "plan" command, a watch sink); it
// returns nil until GetAction has been called at least once for that
// unit. The caller must not mutate the returned value.
func (e *Engine) PlanSnapshot(unitID int) *UnitPlan {
	return e.plans[unitID]
}

func suicideDamage(unit *Unit, props Properties) int {
	damage := unit.Mines * props.MineExplosionParams.Damage
	if unit.Weapon != nil && unit.Weapon.Type == WeaponRocketLauncher {
		if wp := props.WeaponParams[unit.Weapon.Type]; wp.ExplosionParams != nil {
			damage += wp.ExplosionParams.Damage
		}
	}
	return damage
}

// GetAction is the engine's entry point, called once per tick per
// controlled unit: it advances that unit's committed plan, replans
// when the plan ran out or got invalidated, and derives aim/shoot/
// plant-mine from the result.
func (e *Engine) GetAction(unit *Unit, game *Game) Action {
	plan := e.planFor(unit.ID)
	vs := GetVerticalState(unit, game)
	pos := TileOf(unit.Position)

	if _, expanded := e.paths.Outgoing[Node{Pos: pos, VS: vs}]; !expanded {
		e.paths.UpdatePaths(pos, vs, game)
	}

	if game.CurrentTick == 0 && !e.lootMapsBuilt {
		for _, loot := range game.LootBoxes {
			tile := TileOf(loot.Position)
			e.lootDistanceMaps[tile] = BuildAllPaths(tile, e.paths)
		}
		e.lootMapsBuilt = true
	}

	suicideDmg := suicideDamage(unit, game.Properties)

	if plan.Move != nil && plan.LastPosition.X == unit.Position.X && plan.LastPosition.Y == unit.Position.Y &&
		plan.Move.Kind != MoveMineSuicide {
		// Stuck, most likely against another unit: discard the plan
		// and let the replanning block below pick a fresh one.
		plan.Path = nil
		plan.Move = nil
	}
	plan.LastPosition = unit.Position

	var action *ControlResult
	if plan.Move != nil {
		switch res := StepControl(*plan.Move, unit.Position, vs); res.Kind {
		case CtrlTargetReached:
			// Falls through to the replanning block below.
		case CtrlRecover:
			recoverMove := RecoverMove()
			plan.Path = nil
			plan.Move = &recoverMove
			r2 := StepControl(recoverMove, unit.Position, vs)
			action = &r2
		case CtrlEmit:
			action = &res
		}
	}

	if plan.Move != nil && plan.Move.Kind == MoveMineSuicide && !SuicideIsEffective(unit.Position, unit.PlayerID, suicideDmg, game) {
		// Survived, or the enemy escaped the blast radius.
		plan.Path = nil
		plan.Move = nil
	}

	if action == nil {
		oldPath := plan.Path
		plan.Path = nil
		plan.Move = nil

		weapon := unit.Weapon
		readyToFire := weapon != nil && weapon.FireTimer <= 1.0/game.Properties.TicksPerSecond
		if useMineSuicide && weapon != nil && unit.Mines > 0 && readyToFire &&
			CanPlantMine(pos, game.Level) && SuicideIsEffective(unit.Position, unit.PlayerID, suicideDmg, game) {
			suicide := MineSuicideMove()
			plan.Move = &suicide
			res := StepControl(suicide, unit.Position, vs)
			action = &res
		} else {
			result := PlanPath(e.rand, unit, game, e.paths, e.lootDistanceMaps, oldPath, e.allyLookup(unit.ID))
			if len(result.Path) > 0 {
				plan.Path = result.Path
				plan.PathStartTick = game.CurrentTick
				plan.Move = &plan.Path[1]
				res := StepControl(*plan.Move, unit.Position, vs)
				action = &res
			}
		}
	}

	aim := e.computeAim(unit, game)

	canSuicide := false
	if suicideDmg > 0 && plan.Move != nil && plan.Move.Kind != MoveMineSuicide && plan.Move.Kind != MoveRecover {
		target := toUnitPosition(plan.Move.Pos2)
		if CanPlantMine(plan.Move.Pos2, game.Level) && SuicideIsEffective(target, unit.PlayerID, suicideDmg, game) {
			canSuicide = true
		}
	}

	shoot := !canSuicide && Shoot(unit, aim, game, e.allyLookup(unit.ID))
	plantMine := false

	if plan.Move != nil && plan.Move.Kind == MoveMineSuicide {
		aim = Vec2{X: 0, Y: -1}
		plantMine = true
		shoot = unit.Mines == 0
	}

	result := Action{Aim: aim.Mul(2.0), Shoot: shoot, PlantMine: plantMine}
	if action != nil {
		result.Velocity = action.Velocity
		result.Jump = action.Jump
		result.JumpDown = action.JumpDown
	}
	return result
}

// computeAim picks where to aim this tick: nowhere if the unit is
// unarmed, directly at the nearest enemy's forecasted position if the
// weapon has no established aim angle yet, and otherwise the smallest
// rotation from the weapon's last angle that brings the enemy's
// silhouette inside the weapon's live accumulated spread cone (only
// snapping straight at the enemy once the spread cone is already
// tighter than the target itself).
func (e *Engine) computeAim(unit *Unit, game *Game) Vec2 {
	if unit.Weapon == nil {
		return Vec2{}
	}

	var nearest *Unit
	bestDistSqr := math.MaxFloat64
	for _, u2 := range game.Units {
		if u2.PlayerID == unit.PlayerID {
			continue
		}
		d := distanceSqr(u2.Position, unit.Position)
		if d < bestDistSqr {
			bestDistSqr = d
			nearest = u2
		}
	}
	if nearest == nil {
		return Vec2{}
	}

	wp := game.Properties.WeaponParams[unit.Weapon.Type]
	ticksToHit := math.Sqrt(bestDistSqr) / wp.Bullet.Speed * game.Properties.TicksPerSecond
	enemyPosition := EstimateEnemyPosition(nearest, ticksToHit, e.paths, game)

	if !unit.Weapon.HasAngle {
		return enemyPosition.Sub(unit.Position)
	}

	corners := [4]Vec2{
		{X: -nearest.Size.X / 2, Y: 0},
		{X: nearest.Size.X / 2, Y: 0},
		{X: -nearest.Size.X / 2, Y: nearest.Size.Y},
		{X: nearest.Size.X / 2, Y: nearest.Size.Y},
	}
	angleToCenter := math.Atan2(enemyPosition.Y-unit.Position.Y, enemyPosition.X-unit.Position.X)
	unitCenter := unit.Position.Add(Vec2{X: 0, Y: game.Properties.UnitSize.Y / 2})
	enemySpread := 0.0
	for _, c := range corners {
		p := enemyPosition.Add(c)
		a := math.Abs(deltaAngle(angleToCenter, math.Atan2(p.Y-unitCenter.Y, p.X-unitCenter.X)))
		if a > enemySpread {
			enemySpread = a
		}
	}
	delta := deltaAngle(unit.Weapon.LastAngle, angleToCenter)

	if enemySpread <= unit.Weapon.Spread {
		missAngle := math.Abs(delta) + enemySpread - unit.Weapon.Spread
		if missAngle > 0 {
			newAngle := unit.Weapon.LastAngle + missAngle
			if delta <= 0 {
				newAngle = unit.Weapon.LastAngle - missAngle
			}
			return Vec2{X: math.Cos(newAngle), Y: math.Sin(newAngle)}
		}
		return Vec2{X: math.Cos(unit.Weapon.LastAngle), Y: math.Sin(unit.Weapon.LastAngle)}
	}
	return enemyPosition.Sub(unit.Position)
}
