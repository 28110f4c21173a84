package strategy

import "math"

// Tuning constants for the Monte-Carlo rollout planner. These are
// the committed values from the source this was ported from, not
// free knobs — changing them changes the bot's playstyle, not just
// its performance.
const (
	plannerPathCount   = 100
	plannerMaxTicks    = 60
	plannerVeryLongInt = 1000000
	plannerIdealEnemyDist = 50.0
)

// noPathInt stands in for "no path found" when picking a nearest
// target among several, matching the original's i32::MAX sentinel —
// distinct from plannerVeryLongInt, which is the smaller fallback
// added directly into a cost sum.
const noPathInt = math.MaxInt32

func toUnitPosition(pos TilePos) Vec2 {
	return Vec2{X: float64(pos.X) + 0.5, Y: float64(pos.Y)}
}

// unitPositionAtTick interpolates a committed path to find where a
// unit is at the start and end of path-relative tick. Both results
// equal basePosition if the path is empty, and equal the centre of
// the path's final tile if tick runs past its end.
func unitPositionAtTick(basePosition Vec2, path []Move, tick int) (Vec2, Vec2) {
	if len(path) == 0 {
		return basePosition, basePosition
	}
	remaining := tick
	for i := 1; i < len(path); i++ {
		if remaining < path[i].Ticks {
			p1 := toUnitPosition(path[i].Pos1)
			p2 := toUnitPosition(path[i].Pos2)
			t1 := float64(remaining) / float64(path[i].Ticks)
			t2 := float64(remaining+1) / float64(path[i].Ticks)
			return p1.Add(p2.Sub(p1).Mul(t1)), p1.Add(p2.Sub(p1).Mul(t2))
		}
		remaining -= path[i].Ticks
	}
	last := toUnitPosition(path[len(path)-1].Pos2)
	return last, last
}

// CalcDamage forecasts the bullet/explosion damage a unit takes while
// executing mov, starting at fromTick, advancing bulletsState forward
// on this branch. Skips the microtick sweep entirely once every
// forecasted bullet has already been consumed on this branch.
func CalcDamage(mov Move, fromTick int, unitID int, bulletsState BulletsState, bullets *Bullets, game *Game) (int, BulletsState) {
	damage := 0
	state := bulletsState.Clone()
	if !bullets.NeedTest(state) {
		return 0, state
	}
	for movTick := 0; movTick < mov.Ticks; movTick++ {
		for microTick := 0; microTick < bulletMicroTicks; microTick++ {
			t := float64(microTick) / float64(bulletMicroTicks)
			position := Vec2{
				X: float64(mov.Pos1.X) + (float64(mov.Pos2.X)-float64(mov.Pos1.X))*(float64(movTick)+t)/float64(mov.Ticks) + 0.5,
				Y: float64(mov.Pos1.Y) + (float64(mov.Pos2.Y)-float64(mov.Pos1.Y))*(float64(movTick)+t)/float64(mov.Ticks),
			}
			bulletHits, explosionHits, newState := bullets.Test(position, unitID, float64(fromTick)+float64(movTick)+t, state, game.Properties)
			state = newState
			for _, h := range bulletHits {
				damage += h.Damage
			}
			for _, h := range explosionHits {
				damage += h.Damage
			}
		}
	}
	return damage, state
}

func isWeaponLoot(item LootItem) bool { return item.Kind == LootWeapon }
func isHealthLoot(item LootItem) bool { return item.Kind == LootHealthPack }
func isMineLoot(item LootItem) bool   { return item.Kind == LootMine }

func nodeDistOr(m map[Node]int, n Node, fallback int) int {
	if d, ok := m[n]; ok {
		return d
	}
	return fallback
}

// buildEnemyDistanceMaps computes, for every opposing unit, the
// reverse-BFS tick-cost map to reach that unit's current tile. Built
// fresh every tick since enemies move, unlike loot (built once).
func buildEnemyDistanceMaps(game *Game, myPlayerID int, paths *Paths) map[int]map[Node]int {
	maps := make(map[int]map[Node]int)
	for _, u := range game.Units {
		if u.PlayerID == myPlayerID {
			continue
		}
		maps[u.ID] = BuildAllPaths(TileOf(u.Position), paths)
	}
	return maps
}

// AllyLookup resolves an ally unit's currently committed plan, so the
// planner can predict where it will be at a future tick instead of
// treating it as frozen in place. A nil *UnitPlan (ally not yet
// assigned, or has no committed path) falls back to its current
// static position.
type AllyLookup func(unitID int) *UnitPlan

// planResult is the outcome of one planning pass: the best path found
// (nil if nothing beat best_cost, meaning the unit should hold still)
// and its cost, for diagnostics.
type planResult struct {
	Path []Move
	Cost float64
}

// PlanPath runs the path_count-rollout Monte-Carlo search described
// in the planner's design: a warm-started/random walk over the
// motion graph toward the unit's current goal (needed weapon, needed
// health pack, or nearest enemy), scored by collision safety,
// predicted incoming damage, and goal progress, plus one fully greedy
// baseline rollout as the final candidate.
func PlanPath(rnd *Rand, unit *Unit, game *Game, paths *Paths, lootDistanceMaps map[TilePos]map[Node]int, oldPath []Move, allies AllyLookup) planResult {
	pos := TileOf(unit.Position)
	vs := GetVerticalState(unit, game)

	lootMap := make(map[TilePos]LootItem)
	for _, loot := range game.LootBoxes {
		lootMap[TileOf(loot.Position)] = loot.Item
	}

	needWeapon := unit.Weapon == nil
	needHealth := unit.Health < game.Properties.UnitMaxHealth
	if needWeapon {
		needWeapon = false
		for _, loot := range game.LootBoxes {
			if isWeaponLoot(loot.Item) {
				needWeapon = true
				break
			}
		}
	}
	if needHealth {
		needHealth = false
		for _, loot := range game.LootBoxes {
			if isHealthLoot(loot.Item) {
				needHealth = true
				break
			}
		}
	}

	enemyDistanceMaps := buildEnemyDistanceMaps(game, unit.PlayerID, paths)

	var simpleTargetMap map[Node]int
	switch {
	case needWeapon:
		simpleTargetMap = nearestLootDistanceMap(game, lootDistanceMaps, pos, vs, isWeaponLoot)
	case needHealth:
		simpleTargetMap = nearestLootDistanceMap(game, lootDistanceMaps, pos, vs, isHealthLoot)
	default:
		var bestID = -1
		bestDist := noPathInt
		for _, u := range game.Units {
			if u.PlayerID == unit.PlayerID {
				continue
			}
			d := nodeDistOr(enemyDistanceMaps[u.ID], Node{Pos: pos, VS: vs}, noPathInt)
			if d < bestDist {
				bestDist = d
				bestID = u.ID
			}
		}
		if bestID != -1 {
			simpleTargetMap = enemyDistanceMaps[bestID]
		} else {
			simpleTargetMap = map[Node]int{}
		}
	}

	bestCost := math.MaxFloat64
	var bestPath []Move

pathLoop:
	for i := 0; i < plannerPathCount; i++ {
		bullets := NewBullets(game)
		bulletsState := BulletsState{}

		var path []Move
		if i == plannerPathCount-1 {
			path = greedyPath(pos, vs, paths, simpleTargetMap)
		} else {
			usedOld := i < 5 && len(oldPath) > 1 && oldPath[1].Pos2 == pos && oldPath[1].VS2 == vs
			if usedOld {
				path = append([]Move{}, oldPath[1:]...)
			} else {
				path = []Move{StartMove(pos, vs)}
			}
			path = extendRandomPath(rnd, path, paths)
		}

		ticksSoFar := 0
		totalDamage := 0
		for _, mov := range path[1:] {
			for movTick := 0; movTick < mov.Ticks; movTick++ {
				tick := ticksSoFar + movTick
				unitPos, _ := unitPositionAtTick(unit.Position, path, tick)
				for _, u2 := range game.Units {
					if u2.ID == unit.ID {
						continue
					}
					u2Pos := u2.Position
					if u2.PlayerID == unit.PlayerID {
						if plan := allies(u2.ID); plan != nil && len(plan.Path) > 0 {
							tick2 := tick + game.CurrentTick - plan.PathStartTick
							u2Pos, _ = unitPositionAtTick(u2.Position, plan.Path, tick2)
						}
					}
					if math.Abs(unitPos.X-u2Pos.X) < game.Properties.UnitSize.X/2 &&
						math.Abs(unitPos.Y-u2Pos.Y) < game.Properties.UnitSize.Y/2 {
						continue pathLoop
					}
				}
			}
			damage, newState := CalcDamage(mov, ticksSoFar, unit.ID, bulletsState, bullets, game)
			bulletsState = newState
			ticksSoFar += mov.Ticks
			totalDamage += damage
		}

		lastMov := path[len(path)-1]
		damageCost := float64(totalDamage) * 100.0
		var cost float64
		switch {
		case needWeapon:
			cost = goalCost(path, lastMov, lootMap, isWeaponLoot, game.LootBoxes, lootDistanceMaps, damageCost)
		case needHealth:
			cost = goalCost(path, lastMov, lootMap, isHealthLoot, game.LootBoxes, lootDistanceMaps, damageCost)
		case false && unit.Mines < 2 && countLoot(game.LootBoxes, isMineLoot) >= 2-unit.Mines:
			// Mine-stockpiling incentive: kept as unreachable dead code,
			// gated exactly as in the source this was ported from. The
			// live path is the enemy-proximity branch below.
			cost = goalCost(path, lastMov, lootMap, isMineLoot, game.LootBoxes, lootDistanceMaps, damageCost)
		default:
			minDistToEnemy := plannerVeryLongInt
			for _, mov := range path {
				node := Node{Pos: mov.Pos2, VS: mov.VS2}
				for _, u2 := range game.Units {
					if u2.PlayerID == unit.PlayerID {
						continue
					}
					dmap, ok := enemyDistanceMaps[u2.ID]
					if !ok {
						continue
					}
					d, ok := dmap[node]
					if !ok {
						continue
					}
					fireTimerTicks := 0
					if u2.Weapon != nil {
						fireTimerTicks = int(u2.Weapon.FireTimer * game.Properties.TicksPerSecond)
					}
					if v := d + fireTimerTicks; v < minDistToEnemy {
						minDistToEnemy = v
					}
				}
			}
			cost = damageCost + math.Abs(float64(minDistToEnemy)-plannerIdealEnemyDist)*10.0
		}

		if cost < bestCost && len(path) > 1 {
			bestCost = cost
			bestPath = path
		}
	}

	return planResult{Path: bestPath, Cost: bestCost}
}

func countLoot(loots []LootBox, pred func(LootItem) bool) int {
	n := 0
	for _, l := range loots {
		if pred(l.Item) {
			n++
		}
	}
	return n
}

func nearestLootDistanceMap(game *Game, lootDistanceMaps map[TilePos]map[Node]int, pos TilePos, vs VerticalState, pred func(LootItem) bool) map[Node]int {
	bestDist := noPathInt
	var bestTile TilePos
	found := false
	for _, loot := range game.LootBoxes {
		if !pred(loot.Item) {
			continue
		}
		tile := TileOf(loot.Position)
		d := nodeDistOr(lootDistanceMaps[tile], Node{Pos: pos, VS: vs}, noPathInt)
		if !found || d < bestDist {
			bestDist = d
			bestTile = tile
			found = true
		}
	}
	if !found {
		return map[Node]int{}
	}
	return lootDistanceMaps[bestTile]
}

func goalCost(path []Move, lastMov Move, lootMap map[TilePos]LootItem, pred func(LootItem) bool, loots []LootBox, lootDistanceMaps map[TilePos]map[Node]int, damageCost float64) float64 {
	for _, mov := range path {
		if item, ok := lootMap[mov.Pos2]; ok && pred(item) {
			return damageCost
		}
	}
	minTicks := plannerVeryLongInt
	for _, loot := range loots {
		if !pred(loot.Item) {
			continue
		}
		tile := TileOf(loot.Position)
		if m, ok := lootDistanceMaps[tile]; ok {
			if d, ok := m[Node{Pos: lastMov.Pos2, VS: lastMov.VS2}]; ok && d < minTicks {
				minTicks = d
			}
		}
	}
	return damageCost + float64(minTicks)
}

// greedyPath builds the single-step-lookahead shortest path toward
// target, used as a deterministic baseline candidate on the final
// rollout iteration so the planner never does worse than "greedily
// reduce distance to goal every tick".
func greedyPath(pos TilePos, vs VerticalState, paths *Paths, targetMap map[Node]int) []Move {
	path := []Move{StartMove(pos, vs)}
	ticks := 0
	for ticks < plannerMaxTicks {
		last := path[len(path)-1]
		node := Node{Pos: last.Pos2, VS: last.VS2}
		if d, ok := targetMap[node]; ok && d == 0 {
			break
		}
		outgoing := paths.Outgoing[node]
		if len(outgoing) == 0 {
			break
		}
		best := outgoing[0]
		bestScore := best.Ticks + nodeDistOr(targetMap, Node{Pos: best.Pos2, VS: best.VS2}, plannerVeryLongInt)
		for _, cand := range outgoing[1:] {
			score := cand.Ticks + nodeDistOr(targetMap, Node{Pos: cand.Pos2, VS: cand.VS2}, plannerVeryLongInt)
			if score < bestScore {
				bestScore = score
				best = cand
			}
		}
		path = append(path, best)
		ticks += best.Ticks
	}
	return path
}

// extendRandomPath extends path with uniformly random outgoing edges
// until it reaches plannerMaxTicks of cumulative duration or a dead
// end, used for the bulk of rollout candidates to explore the graph
// rather than just exploit the current distance estimate.
func extendRandomPath(rnd *Rand, path []Move, paths *Paths) []Move {
	ticks := 0
	for _, mov := range path[1:] {
		ticks += mov.Ticks
	}
	for ticks < plannerMaxTicks {
		last := path[len(path)-1]
		node := Node{Pos: last.Pos2, VS: last.VS2}
		movs := paths.Outgoing[node]
		if len(movs) == 0 {
			break
		}
		choice := movs[rnd.NextU32Bounded(uint32(len(movs)))]
		path = append(path, choice)
		ticks += choice.Ticks
	}
	return path
}
