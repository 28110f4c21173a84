package strategy

import "math"

// bulletMicroTicks is the number of sub-steps bulletEnd simulates per
// game tick when marching a bullet toward its wall/boundary impact;
// kept at 100 so the planner's damage forecast is bit-faithful to the
// same discretization the live simulation uses.
const bulletMicroTicks = 100

// bulletEnd marches a bullet fired from position along aim's
// direction (magnitude irrelevant, only the unit vector matters)
// until it first overlaps a wall or the level boundary, returning
// that point and the fractional tick at which it happens.
func bulletEnd(position, aim Vec2, weaponType WeaponType, level *Level, props Properties) (Vec2, float64) {
	wp := props.WeaponParams[weaponType]
	aimLen := aim.Len()
	speed := aim.Mul(wp.Bullet.Speed / aimLen)
	halfSize := wp.Bullet.Size / 2
	timeStep := 1.0 / props.TicksPerSecond / float64(bulletMicroTicks)
	pos := position
	for {
		pos = pos.Add(speed.Mul(timeStep))
		if wallCollision(Vec2{pos.X - halfSize, pos.Y - halfSize}, level) ||
			wallCollision(Vec2{pos.X + halfSize, pos.Y - halfSize}, level) ||
			wallCollision(Vec2{pos.X - halfSize, pos.Y + halfSize}, level) ||
			wallCollision(Vec2{pos.X + halfSize, pos.Y + halfSize}, level) {
			length := math.Sqrt(distanceSqr(position, pos))
			tick := length / wp.Bullet.Speed * props.TicksPerSecond
			return pos, tick
		}
	}
}

func wallCollision(pos Vec2, level *Level) bool {
	if pos.X <= 0 || pos.X >= float64(level.Width()) || pos.Y <= 0 || pos.Y >= float64(level.Height()) {
		return true
	}
	return level.TileAt(TileOf(pos)) == TileWall
}

// bulletForecast is one bullet's precomputed terminal point and tick,
// good for the whole rollout since the level never changes mid-match.
type bulletForecast struct {
	Bullet  Bullet
	End     Vec2
	EndTick float64
}

// BulletsState is a cheap-copy bitset of which forecasted bullets
// have already been consumed (hit something, or expired) along one
// hypothetical rollout branch. Distinct branches clone it forward
// independently rather than sharing mutable state.
type BulletsState struct {
	removed []bool
}

// Clone returns an independent copy.
func (s BulletsState) Clone() BulletsState {
	cp := make([]bool, len(s.removed))
	copy(cp, s.removed)
	return BulletsState{removed: cp}
}

// IsRemoved reports whether forecast index i has already been
// consumed on this branch.
func (s BulletsState) IsRemoved(i int) bool {
	if i < 0 || i >= len(s.removed) {
		return false
	}
	return s.removed[i]
}

// Remove marks forecast index i consumed.
func (s *BulletsState) Remove(i int) {
	for len(s.removed) <= i {
		s.removed = append(s.removed, false)
	}
	s.removed[i] = true
}

// CountRemoved returns how many forecasts this branch has consumed.
func (s BulletsState) CountRemoved() int {
	n := 0
	for _, v := range s.removed {
		if v {
			n++
		}
	}
	return n
}

// DamageHit is one direct bullet impact.
type DamageHit struct {
	Position Vec2
	Damage   int
}

// ExplosionHit is one area-of-effect trigger (from an explosive
// bullet or a planted mine).
type ExplosionHit struct {
	Position Vec2
	Damage   int
	Radius   float64
}

// Bullets holds the precomputed forecast for every bullet alive at
// the start of a planning pass. Testing a hypothetical position
// against it never mutates the forecast itself, only the caller's
// BulletsState, so the same Bullets value can back many independent
// rollout branches concurrently in spirit (though the planner itself
// runs single-threaded).
type Bullets struct {
	forecasts []bulletForecast
}

// NewBullets precomputes the terminal point/tick for every bullet in
// game.Bullets.
func NewBullets(game *Game) *Bullets {
	forecasts := make([]bulletForecast, len(game.Bullets))
	for i, b := range game.Bullets {
		end, tick := bulletEnd(b.Position, b.Velocity, b.WeaponType, game.Level, game.Properties)
		forecasts[i] = bulletForecast{Bullet: b, End: end, EndTick: tick}
	}
	return &Bullets{forecasts: forecasts}
}

// NeedTest reports whether any forecasted bullet remains unconsumed
// on state's branch; once every forecast is consumed, Test is
// guaranteed to return nothing and callers can skip it.
func (b *Bullets) NeedTest(state BulletsState) bool {
	return len(b.forecasts) > state.CountRemoved()
}

// Test evaluates one hypothetical unit position at one fractional
// tick against every unconsumed forecast, returning any direct hits
// and any explosion triggers plus the branch state advanced past
// whatever it just consumed. Idempotent within a branch: testing the
// same (position, tick) twice after the first consumes nothing new.
func (b *Bullets) Test(unitPosition Vec2, unitID int, tick float64, state BulletsState, props Properties) ([]DamageHit, []ExplosionHit, BulletsState) {
	unitCenter := unitPosition.Add(Vec2{X: 0, Y: props.UnitSize.Y / 2})
	newState := state.Clone()
	var bulletHits []DamageHit
	var explosionHits []ExplosionHit

	for idx, f := range b.forecasts {
		if newState.IsRemoved(idx) {
			continue
		}
		explode := false
		bulletPos := Vec2{
			X: f.Bullet.Position.X + f.Bullet.Velocity.X*tick/props.TicksPerSecond,
			Y: f.Bullet.Position.Y + f.Bullet.Velocity.Y*tick/props.TicksPerSecond,
		}
		if f.EndTick < tick {
			newState.Remove(idx)
			explode = f.Bullet.ExplosionParams != nil
		} else {
			halfBulletSize := f.Bullet.Size / 2
			if math.Abs(unitCenter.X-bulletPos.X) <= props.UnitSize.X/2+halfBulletSize &&
				math.Abs(unitCenter.Y-bulletPos.Y) <= props.UnitSize.Y/2+halfBulletSize &&
				f.Bullet.UnitID != unitID {
				newState.Remove(idx)
				explode = f.Bullet.ExplosionParams != nil
				bulletHits = append(bulletHits, DamageHit{Position: bulletPos, Damage: f.Bullet.Damage})
			}
		}
		if explode {
			radius := f.Bullet.ExplosionParams.Radius
			if math.Abs(unitCenter.X-bulletPos.X) <= props.UnitSize.X/2+radius &&
				math.Abs(unitCenter.Y-bulletPos.Y) <= props.UnitSize.Y/2+radius {
				explosionHits = append(explosionHits, ExplosionHit{Position: bulletPos, Damage: f.Bullet.ExplosionParams.Damage, Radius: radius})
			}
		}
	}
	return bulletHits, explosionHits, newState
}
