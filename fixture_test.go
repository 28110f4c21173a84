package strategy

import (
	"path/filepath"
	"testing"
)

func TestFixtureRoundTrip(t *testing.T) {
	f := &Fixture{
		Level:         levelOf([][]Tile{{TileWall, TileEmpty}, {TileWall, TileEmpty}}),
		Properties:    testProps(),
		ControlledIDs: []int{1},
		Ticks: []FixtureTick{
			{
				CurrentTick: 0,
				Units: []*Unit{
					{ID: 1, PlayerID: 1, Position: Vec2{X: 0.5, Y: 1}, Size: testProps().UnitSize, Health: 100},
				},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "fixture.json")
	if err := SaveFixture(path, f); err != nil {
		t.Fatalf("SaveFixture: %v", err)
	}

	loaded, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if len(loaded.Ticks) != 1 || len(loaded.Ticks[0].Units) != 1 {
		t.Fatalf("unexpected round-tripped fixture: %+v", loaded)
	}
	if loaded.Ticks[0].Units[0].ID != 1 {
		t.Fatalf("expected unit id 1, got %d", loaded.Ticks[0].Units[0].ID)
	}

	game := loaded.Game(0)
	if game.Level.Width() != 2 {
		t.Fatalf("expected level width 2, got %d", game.Level.Width())
	}
}

func TestLoadFixtureMissingFile(t *testing.T) {
	if _, err := LoadFixture(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected an error loading a nonexistent fixture")
	}
}
