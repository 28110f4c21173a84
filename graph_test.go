package strategy

import "testing"

// Graph legality: every expanded node's outgoing Move actually
// originates at that node, and every outgoing Move is mirrored by a
// matching entry in Incoming keyed by where it lands.
func TestGraphLegality(t *testing.T) {
	props := testProps()
	level := levelOf(func() [][]Tile {
		cols := make([][]Tile, 6)
		for x := range cols {
			cols[x] = col(3, TileEmpty, map[int]Tile{0: TileWall})
		}
		return cols
	}())
	game := &Game{Level: level, Properties: props}

	paths := NewPaths()
	paths.UpdatePaths(TilePos{0, 1}, VerticalState{Kind: VSDefault}, game)

	if len(paths.Outgoing) == 0 {
		t.Fatalf("expected at least one expanded node")
	}

	for node, moves := range paths.Outgoing {
		for _, mov := range moves {
			if mov.Pos1 != node.Pos || mov.VS1 != node.VS {
				t.Fatalf("outgoing move %+v does not originate at its own node %+v", mov, node)
			}
			toNode := Node{Pos: mov.Pos2, VS: mov.VS2}
			if !containsMove(paths.Incoming[toNode], mov) {
				t.Fatalf("move %+v missing from Incoming[%+v]", mov, toNode)
			}
		}
	}
}

// Distance-map correctness: on a flat floor, walking n tiles right
// costs n times a single WalkRight's tick duration, and BuildAllPaths
// must recover exactly that minimum from every tile in the corridor.
func TestDistanceMapCorrectness(t *testing.T) {
	props := testProps()
	width := 5
	level := levelOf(func() [][]Tile {
		cols := make([][]Tile, width)
		for x := range cols {
			cols[x] = col(3, TileEmpty, map[int]Tile{0: TileWall})
		}
		return cols
	}())
	game := &Game{Level: level, Properties: props}

	paths := NewPaths()
	start := TilePos{0, 1}
	paths.UpdatePaths(start, VerticalState{Kind: VSDefault}, game)

	mov, ok := canWalkSide(start, VerticalState{Kind: VSDefault}, level, props, 1)
	if !ok {
		t.Fatalf("expected a legal WalkRight step on a flat floor")
	}
	stepTicks := mov.Ticks

	target := TilePos{width - 1, 1}
	costs := BuildAllPaths(target, paths)

	for x := 0; x < width; x++ {
		node := Node{Pos: TilePos{x, 1}, VS: VerticalState{Kind: VSDefault}}
		cost, ok := costs[node]
		if !ok {
			t.Fatalf("expected tile x=%d to reach the target", x)
		}
		want := (width - 1 - x) * stepTicks
		if cost != want {
			t.Fatalf("tile x=%d: expected cost %d, got %d", x, want, cost)
		}
	}
}
