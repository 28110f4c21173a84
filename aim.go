package strategy

import "math"

// aimSampleParts is how many candidate spread angles the shoot
// decision samples before estimating expected damage; kept at 10 to
// match the tuning this was ported from.
const aimSampleParts = 10

// GetVerticalState derives a unit's current VerticalState from the
// live jump-state fields the host reports each tick, rather than
// tracking it locally — the host is authoritative on jump budgets.
func GetVerticalState(unit *Unit, game *Game) VerticalState {
	if !unit.JumpState.CanJump || unit.JumpState.MaxTime == game.Properties.UnitJumpTime {
		return VerticalState{Kind: VSDefault}
	}
	budget := int(math.Floor(unit.JumpState.Speed * unit.JumpState.MaxTime))
	if unit.JumpState.Speed == game.Properties.JumpPadJumpSpeed {
		return VerticalState{Kind: VSPadJump, Budget: budget}
	}
	return VerticalState{Kind: VSJump, Budget: budget}
}

// CanPlantMine reports whether pos is solid ground suitable for a
// mine: not itself or the tile above it a ladder, and resting on
// Wall or Platform.
func CanPlantMine(pos TilePos, level *Level) bool {
	if level.TileAt(pos) == TileLadder || level.TileAt(TilePos{pos.X, pos.Y + 1}) == TileLadder {
		return false
	}
	below := level.TileAt(TilePos{pos.X, pos.Y - 1})
	return below == TileWall || below == TilePlatform
}

func inMineExplosionRadius(unit *Unit, minePosition Vec2, props Properties) bool {
	return math.Abs(unit.Position.X-minePosition.X) <= props.MineExplosionParams.Radius &&
		math.Abs(unit.Position.Y-minePosition.Y) <= props.MineExplosionParams.Radius
}

// SuicideIsEffective reports whether detonating a mine planted at
// plantingUnitPosition would finish off at least one enemy who is
// already within its blast radius and at or below suicideDamage
// health.
func SuicideIsEffective(plantingUnitPosition Vec2, myPlayerID int, suicideDamage int, game *Game) bool {
	for _, u2 := range game.Units {
		if u2.PlayerID == myPlayerID {
			continue
		}
		if u2.Health <= suicideDamage && inMineExplosionRadius(u2, plantingUnitPosition, game.Properties) {
			return true
		}
	}
	return false
}

func damageByExplosion(position, explosion Vec2, explosionRadius float64) bool {
	return math.Abs(position.X-explosion.X) <= explosionRadius && math.Abs(position.Y-explosion.Y) <= explosionRadius
}

// DamageUnitByExplosion reports whether any of a unit's four corner
// points (feet/head, left/right) falls within an explosion's square
// blast footprint.
func DamageUnitByExplosion(unitPosition, explosion Vec2, explosionRadius, unitHeight float64) bool {
	corners := [4]Vec2{
		{X: -0.5, Y: 0},
		{X: 0.5, Y: 0},
		{X: -0.5, Y: unitHeight},
		{X: 0.5, Y: unitHeight},
	}
	for _, c := range corners {
		if damageByExplosion(unitPosition.Add(c), explosion, explosionRadius) {
			return true
		}
	}
	return false
}

// EstimateEnemyPosition averages the graph-reachable positions an
// enemy could occupy after roughly `tick` ticks (capped at 20, since
// beyond that the fan-out makes any single estimate meaningless), by
// exhaustively walking the motion graph forward from its current
// node. Falls back to the enemy's current position if the graph has
// nothing reachable that far out yet.
func EstimateEnemyPosition(enemy *Unit, tick float64, paths *Paths, game *Game) Vec2 {
	type frame struct {
		mov  Move
		tick float64
	}
	average := Vec2{}
	count := 0
	horizon := math.Min(tick, 20.0)
	stack := []frame{{mov: StartMove(TileOf(enemy.Position), GetVerticalState(enemy, game)), tick: 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.tick >= horizon {
			average = average.Add(toUnitPosition(f.mov.Pos2))
			count++
			continue
		}
		node := Node{Pos: f.mov.Pos2, VS: f.mov.VS2}
		for _, mov2 := range paths.Outgoing[node] {
			stack = append(stack, frame{mov: mov2, tick: f.tick + float64(mov2.Ticks)})
		}
	}
	if count == 0 {
		return enemy.Position
	}
	return average.Mul(1.0 / float64(count))
}

// Shoot decides whether to fire the already-aimed weapon this tick by
// sampling aimSampleParts candidate directions across the weapon's
// current spread cone, forecasting each sampled bullet's terminal
// point and whatever unit it would first hit (teammates included, so
// friendly fire is never chosen), then firing only if the
// range-discounted expected damage to enemies exceeds the expected
// damage to the unit's own side.
func Shoot(unit *Unit, aim Vec2, game *Game, allies AllyLookup) bool {
	weapon := unit.Weapon
	if weapon == nil || weapon.FireTimer > 0 {
		return false
	}
	wp := game.Properties.WeaponParams[weapon.Type]
	angle := aim.Angle()
	spread := wp.Spread
	if weapon.HasAngle {
		spread += math.Abs(deltaAngle(weapon.LastAngle, angle))
	}
	if spread > wp.MaxSpread {
		spread = wp.MaxSpread
	}

	bulletFrom := Vec2{X: unit.Position.X, Y: unit.Position.Y + unit.Size.Y/2}

	damageMyself := 0.0
	damageEnemy := 0.0

	for i := 0; i < aimSampleParts; i++ {
		sampleAngle := -spread + float64(i)*(spread*2.0/float64(aimSampleParts-1))
		bulletEndPos, bulletEndTick := bulletEnd(bulletFrom, aim.Rotate(sampleAngle), weapon.Type, game.Level, game.Properties)

		hasHit := false
		hitPlayerID := 0
		lastBulletPos := bulletFrom
		steps := int(math.Floor(bulletEndTick))
		for tick := 0; tick <= steps; tick++ {
			frac := 0.0
			if bulletEndTick >= 1e-6 {
				frac = float64(tick) / bulletEndTick
			}
			bulletAtTick := bulletFrom.Add(bulletEndPos.Sub(bulletFrom).Mul(frac))

			for _, u2 := range game.Units {
				if u2.ID == unit.ID {
					continue
				}
				bulletRadius := wp.Bullet.Size / 2
				u2Pos := u2.Position
				if u2.PlayerID == unit.PlayerID {
					if plan := allies(u2.ID); plan != nil && len(plan.Path) > 0 {
						shortPath := plan.Path
						if len(shortPath) > 1 {
							shortPath = shortPath[:1]
						}
						pathTick := tick + (game.CurrentTick - plan.PathStartTick)
						u2Pos, _ = unitPositionAtTick(u2.Position, shortPath, pathTick)
					}
				}
				p00 := u2Pos.Add(Vec2{X: -u2.Size.X/2 - bulletRadius, Y: -bulletRadius})
				p10 := u2Pos.Add(Vec2{X: u2.Size.X/2 + bulletRadius, Y: -bulletRadius})
				p01 := u2Pos.Add(Vec2{X: -u2.Size.X/2 - bulletRadius, Y: u2.Size.Y + bulletRadius})
				p11 := u2Pos.Add(Vec2{X: u2.Size.X/2 + bulletRadius, Y: u2.Size.Y + bulletRadius})
				segs := [4][2]Vec2{{p00, p10}, {p10, p11}, {p11, p01}, {p01, p00}}
				for _, seg := range segs {
					ipos, ok := segmentsIntersection(lastBulletPos, bulletAtTick, seg[0], seg[1])
					if !ok {
						continue
					}
					distPosSqr := distanceSqr(bulletFrom, ipos)
					distEndSqr := distanceSqr(bulletFrom, bulletAtTick)
					if distPosSqr <= distEndSqr {
						bulletEndPos = ipos
						bulletEndTick *= math.Sqrt(distPosSqr) / math.Sqrt(distEndSqr)
						hitPlayerID = u2.PlayerID
						hasHit = true
					}
				}
			}
			if hasHit {
				break
			}
			lastBulletPos = bulletAtTick
		}

		enemyDamageCoef := 1.0 / math.Max(1.0, bulletEndTick*game.Properties.UnitMaxHorizontalSpeed/game.Properties.TicksPerSecond)

		if hasHit {
			damage := float64(wp.Bullet.Damage)
			if hitPlayerID != unit.PlayerID {
				damageEnemy += damage * enemyDamageCoef
			} else {
				damageMyself += damage
			}
		}

		if wp.ExplosionParams != nil {
			radius := wp.ExplosionParams.Radius
			damage := float64(wp.ExplosionParams.Damage)
			for _, u2 := range game.Units {
				u2Pos := u2.Position
				if u2.PlayerID == unit.PlayerID {
					if plan := allies(u2.ID); plan != nil {
						pathTick := int(math.Floor(bulletEndTick)) + (game.CurrentTick - plan.PathStartTick)
						t := bulletEndTick - math.Floor(bulletEndTick)
						p1, p2 := unitPositionAtTick(u2.Position, plan.Path, pathTick)
						u2Pos = p1.Add(p2.Sub(p1).Mul(t))
					}
				}
				if DamageUnitByExplosion(u2Pos, bulletEndPos, radius, unit.Size.Y) {
					if u2.PlayerID != unit.PlayerID {
						damageEnemy += damage * enemyDamageCoef
					} else {
						damageMyself += damage
					}
				}
			}
		}
	}

	return damageEnemy > 0 && damageEnemy > damageMyself
}
