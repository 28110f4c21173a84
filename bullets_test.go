package strategy

import "testing"

func flatBulletLevel(width int) *Level {
	cols := make([][]Tile, width)
	for x := range cols {
		cols[x] = col(3, TileEmpty, nil)
	}
	return levelOf(cols)
}

// Bullet idempotence: testing the same (position, tick) against the
// same starting state twice produces identical hits, and re-testing
// with the state a first call already advanced consumes nothing new.
func TestBulletTestIdempotence(t *testing.T) {
	props := testProps()
	level := flatBulletLevel(7)
	// Starting at x=0.5 keeps the bullet's square clear of the level's
	// left edge, which would otherwise end its forecast immediately.
	// Velocity.X/TicksPerSecond = 5 units per game-tick, so the bullet
	// is at x=5.5 (inside the unit's hitbox) at tick=1.0, well before
	// it reaches the level's right boundary (its forecasted expiry,
	// around tick=1.3).
	game := &Game{Level: level, Properties: props, Bullets: []Bullet{
		{UnitID: -1, Position: Vec2{X: 0.5, Y: 2}, Velocity: Vec2{X: props.TicksPerSecond * 5, Y: 0}, Size: 0.2, WeaponType: WeaponPistol, Damage: 30},
	}}
	bullets := NewBullets(game)
	unitPos := Vec2{X: 5, Y: 2}

	hits1, explosions1, state1 := bullets.Test(unitPos, 0, 1.0, BulletsState{}, props)
	hits2, explosions2, state2 := bullets.Test(unitPos, 0, 1.0, BulletsState{}, props)

	if len(hits1) != len(hits2) || len(explosions1) != len(explosions2) {
		t.Fatalf("expected identical results from two calls on the same state: %v vs %v", hits1, hits2)
	}
	if state1.CountRemoved() != state2.CountRemoved() {
		t.Fatalf("expected identical resulting state: %d vs %d removed", state1.CountRemoved(), state2.CountRemoved())
	}
	if len(hits1) != 1 {
		t.Fatalf("expected exactly one direct hit on the unit's hitbox, got %d", len(hits1))
	}

	hits3, _, _ := bullets.Test(unitPos, 0, 1.0, state1, props)
	if len(hits3) != 0 {
		t.Fatalf("expected no new hits once the forecast is already consumed, got %v", hits3)
	}
}

// NeedTest should go false only once every forecast is consumed.
func TestBulletsNeedTest(t *testing.T) {
	props := testProps()
	level := flatBulletLevel(7)
	game := &Game{Level: level, Properties: props, Bullets: []Bullet{
		{UnitID: -1, Position: Vec2{X: 0, Y: 2}, Velocity: Vec2{X: props.TicksPerSecond * 5, Y: 0}, Size: 0.2, WeaponType: WeaponPistol, Damage: 30},
	}}
	bullets := NewBullets(game)

	state := BulletsState{}
	if !bullets.NeedTest(state) {
		t.Fatalf("expected NeedTest true before any forecast is consumed")
	}
	_, _, state = bullets.Test(Vec2{X: 5, Y: 2}, 0, 1.0, state, props)
	if bullets.NeedTest(state) {
		t.Fatalf("expected NeedTest false once the only forecast is consumed")
	}
}
