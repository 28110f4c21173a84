package strategy

import (
	"encoding/json"
	"fmt"
	"os"
)

// Fixture is a captured sequence of ticks for offline replay: a
// fixed Level/Properties pair plus one Game snapshot per tick and
// the ids of the units the engine should control. It stands in for
// the live host connection during development and testing.
type Fixture struct {
	Level         *Level
	Properties    Properties
	ControlledIDs []int
	Ticks         []FixtureTick
}

// FixtureTick is one tick's worth of world state, enough to
// reconstruct a Game for GetAction without replaying every prior
// tick through the engine.
type FixtureTick struct {
	CurrentTick int
	Units       []*Unit
	Bullets     []Bullet
	LootBoxes   []LootBox
}

// Game reconstructs the Game snapshot for this tick, pairing it
// with the fixture's fixed Level/Properties.
func (f *Fixture) Game(tickIndex int) *Game {
	t := f.Ticks[tickIndex]
	return &Game{
		CurrentTick: t.CurrentTick,
		Level:       f.Level,
		Properties:  f.Properties,
		Units:       t.Units,
		Bullets:     t.Bullets,
		LootBoxes:   t.LootBoxes,
	}
}

// LoadFixture reads a JSON-encoded Fixture from path, the read side
// of the output-directory convention this was ported from: a fixed
// file holding everything one replay run needs, rather than a
// directory of per-tick files.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding fixture %s: %w", path, err)
	}
	return &f, nil
}

// SaveFixture writes a Fixture to path as indented JSON, in the form
// LoadFixture reads back for replay.
func SaveFixture(path string, f *Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding fixture: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing fixture %s: %w", path, err)
	}
	return nil
}
