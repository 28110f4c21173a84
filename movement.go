package strategy

import "math"

// Hardcoded physical constants the host's movement math uses directly
// rather than through Properties, preserved exactly from the source
// this was ported from: a flat-floor walk yields velocity ~= +10.0
// regardless of Properties.UnitMaxHorizontalSpeed, which only this
// constant reproduces.
const (
	maxHorizontalSpeedConst = 10.0
	fallSpeedConst          = 10.0
	ticksPerSecondConst     = 60.0
	horizontalEpsilon       = 0.049
	verticalEpsilon         = 0.2
)

// MoveKind tags a transition's kind. Transitions are modeled as this
// tag plus a small fixed payload (Move, below) rather than as
// per-transition heap-allocated closures, so path candidates in the
// planner's hot rollout loop are cheap to copy.
type MoveKind int

const (
	MoveStart MoveKind = iota
	MoveRecover
	MoveMineSuicide
	MoveWalkLeft
	MoveWalkRight
	MoveLadderUp
	MoveLadderDown
	MoveFall
	MoveFallLeft
	MoveFallRight
	MoveFall2Left
	MoveFall2Right
	MoveFallEdgeLeft
	MoveFallEdgeRight
	MoveJump
	MoveJumpLeft
	MoveJumpRight
	MoveJump2Left
	MoveJump2Right
	MoveJumpStop
	MovePadJumpLeft
	MovePadJumpRight
	MovePadJump2Left
	MovePadJump2Right
	MovePadJumpUp
	MovePadJumpStop
)

// Move is one edge of the motion graph: a value type, cheap to copy,
// with enough payload (Pos1/Pos2/VS1/VS2) for StepControl to
// reconstruct the per-kind control logic without a captured closure.
type Move struct {
	Kind  MoveKind
	Pos1  TilePos
	VS1   VerticalState
	Pos2  TilePos
	VS2   VerticalState
	Ticks int
}

// ControlKind discriminates ControlResult.
type ControlKind int

const (
	CtrlTargetReached ControlKind = iota
	CtrlRecover
	CtrlEmit
)

// ControlResult is what a transition's control step yields for one
// tick, given the unit's continuous position and vertical state.
type ControlResult struct {
	Kind     ControlKind
	Velocity float64
	Jump     bool
	JumpDown bool
}

func ceilDiv(tps, speed float64) int {
	return int(math.Ceil(tps / speed))
}

// targetReached reports whether position is within the tile/vs
// envelope of target.
func targetReached(position Vec2, target TilePos, vs VerticalState) bool {
	vEps := verticalEpsilon
	if vs.Kind == VSPadJump {
		vEps = 2 * verticalEpsilon
	}
	return math.Abs(position.X-(float64(target.X)+0.5)) < horizontalEpsilon &&
		position.Y >= float64(target.Y) &&
		(position.Y-float64(target.Y)) < vEps
}

// chooseHorizontalSpeed picks the "seek column centre, decelerate
// linearly inside one-tick reach" velocity.
func chooseHorizontalSpeed(pos, target float64) float64 {
	delta := math.Abs(pos - target)
	var speed float64
	if delta < maxHorizontalSpeedConst/ticksPerSecondConst {
		speed = delta * ticksPerSecondConst
	} else {
		speed = maxHorizontalSpeedConst
	}
	if pos > target {
		return -speed
	}
	return speed
}

// checkPossibleLocation reports whether pos is in-grid and not a
// Wall, optionally also rejecting Ladder/JumpPad tiles.
func checkPossibleLocation(pos TilePos, level *Level, avoidLadders, avoidJumpPad bool) bool {
	if pos.X < 0 || pos.X >= level.Width() || pos.Y < 0 || pos.Y >= level.Height() {
		return false
	}
	switch level.TileAt(pos) {
	case TileWall:
		return false
	case TileLadder:
		if avoidLadders {
			return false
		}
	case TileJumpPad:
		if avoidJumpPad {
			return false
		}
	}
	return true
}

func jumpMaxTiles(props Properties) int {
	return int(math.Floor(props.UnitJumpTime * props.UnitJumpSpeed))
}

func padJumpMaxTiles(props Properties) int {
	return int(math.Floor(props.JumpPadJumpTime * props.JumpPadJumpSpeed))
}

func unitIsOnLadder(pos TilePos, level *Level) bool {
	if level.TileAt(pos) == TileLadder {
		return true
	}
	return level.TileAt(TilePos{pos.X, pos.Y + 1}) == TileLadder
}

// destVSFromTile derives the vertical state landed in when the
// destination tile is Ladder or JumpPad; Wall is handled by the
// caller (always illegal), Empty/Platform is handled by the caller
// (kind-specific budget bookkeeping).
func destVSFromTile(t Tile, props Properties) (VerticalState, bool) {
	switch t {
	case TileLadder:
		return VerticalState{Kind: VSDefault}, true
	case TileJumpPad:
		return VerticalState{Kind: VSPadJump, Budget: padJumpMaxTiles(props)}, true
	default:
		return VerticalState{}, false
	}
}

// --- movement catalog ---

type movementFn func(tilePos TilePos, vs VerticalState, level *Level, props Properties, delta int) (Move, bool)

type movementEntry struct {
	fn    movementFn
	delta int
}

// MovementCatalog lists every movement kind in the order the original
// engine registers them. Each entry is a plain function reference
// plus a small int payload, built once at process start — not a
// per-transition allocation.
var MovementCatalog = []movementEntry{
	{canWalkSide, -1},
	{canWalkSide, 1},
	{canLadder, 1},
	{canLadder, -1},
	{canFall, 0},
	{canFall, -1},
	{canFall, 1},
	{canFall2, -1},
	{canFall2, 1},
	{canFallEdge, -2},
	{canFallEdge, -1},
	{canFallEdge, 1},
	{canFallEdge, 2},
	{canJump, 0},
	{canJump, -1},
	{canJump, 1},
	{canJump2, -1},
	{canJump2, 1},
	{canJumpStop, 0},
	{canPadJump, -1},
	{canPadJump, 1},
	{canPadJump2, -1},
	{canPadJump2, 1},
	{canPadJumpUp, 0},
	{canPadJumpStop, 0},
}

func canWalkSide(tilePos TilePos, vs VerticalState, level *Level, props Properties, delta int) (Move, bool) {
	switch vs.Kind {
	case VSDefault, VSJump:
	default:
		return Move{}, false
	}
	below := level.TileAt(TilePos{tilePos.X, tilePos.Y - 1})
	if (below == TileEmpty || below == TileJumpPad) && !unitIsOnLadder(tilePos, level) {
		return Move{}, false
	}
	newPos := TilePos{tilePos.X + delta, tilePos.Y}
	belowNew := level.TileAt(TilePos{newPos.X, newPos.Y - 1})
	if (belowNew == TileEmpty || belowNew == TileJumpPad) && !unitIsOnLadder(tilePos, level) {
		return Move{}, false
	}
	if !checkPossibleLocation(newPos, level, false, false) {
		return Move{}, false
	}
	if !checkPossibleLocation(TilePos{newPos.X, newPos.Y + 1}, level, false, true) {
		return Move{}, false
	}
	destTile := level.TileAt(newPos)
	var newVS VerticalState
	switch destTile {
	case TileWall:
		return Move{}, false
	case TileEmpty, TilePlatform:
		newVS = VerticalState{Kind: VSDefault}
	default:
		newVS, _ = destVSFromTile(destTile, props)
	}
	kind := MoveWalkRight
	if delta < 0 {
		kind = MoveWalkLeft
	}
	return Move{
		Kind:  kind,
		Pos1:  tilePos,
		VS1:   vs,
		Pos2:  newPos,
		VS2:   newVS,
		Ticks: ceilDiv(props.TicksPerSecond, props.UnitMaxHorizontalSpeed),
	}, true
}

func canLadder(tilePos TilePos, vs VerticalState, level *Level, props Properties, vdelta int) (Move, bool) {
	switch vs.Kind {
	case VSDefault, VSJump:
	default:
		return Move{}, false
	}
	if !unitIsOnLadder(tilePos, level) {
		return Move{}, false
	}
	newPos := TilePos{tilePos.X, tilePos.Y + vdelta}
	if !checkPossibleLocation(newPos, level, false, false) {
		return Move{}, false
	}
	if !checkPossibleLocation(TilePos{newPos.X, newPos.Y + 1}, level, false, true) {
		return Move{}, false
	}
	destTile := level.TileAt(newPos)
	var newVS VerticalState
	switch destTile {
	case TileWall:
		return Move{}, false
	case TileEmpty, TilePlatform, TileLadder:
		newVS = VerticalState{Kind: VSDefault}
	default:
		newVS, _ = destVSFromTile(destTile, props)
	}
	speed := props.UnitFallSpeed
	if vdelta > 0 {
		speed = props.UnitJumpSpeed
	}
	kind := MoveLadderUp
	if vdelta < 0 {
		kind = MoveLadderDown
	}
	return Move{Kind: kind, Pos1: tilePos, VS1: vs, Pos2: newPos, VS2: newVS, Ticks: ceilDiv(props.TicksPerSecond, speed)}, true
}

func canFall(tilePos TilePos, vs VerticalState, level *Level, props Properties, delta int) (Move, bool) {
	if vs.Kind == VSPadJump {
		return Move{}, false
	}
	newPos := TilePos{tilePos.X + delta, tilePos.Y - 1}
	if !checkPossibleLocation(newPos, level, false, false) {
		return Move{}, false
	}
	if !checkPossibleLocation(TilePos{newPos.X, newPos.Y + 1}, level, false, true) {
		return Move{}, false
	}
	if delta != 0 && !checkPossibleLocation(TilePos{newPos.X, newPos.Y + 2}, level, false, true) {
		return Move{}, false
	}
	if delta != 0 && !checkPossibleLocation(TilePos{tilePos.X, tilePos.Y - 1}, level, false, true) {
		return Move{}, false
	}
	destTile := level.TileAt(newPos)
	var newVS VerticalState
	switch destTile {
	case TileWall:
		return Move{}, false
	case TileEmpty, TilePlatform, TileLadder:
		newVS = VerticalState{Kind: VSDefault}
	default:
		newVS, _ = destVSFromTile(destTile, props)
	}
	var kind MoveKind
	switch {
	case delta < 0:
		kind = MoveFallLeft
	case delta > 0:
		kind = MoveFallRight
	default:
		kind = MoveFall
	}
	return Move{Kind: kind, Pos1: tilePos, VS1: vs, Pos2: newPos, VS2: newVS, Ticks: ceilDiv(props.TicksPerSecond, props.UnitFallSpeed)}, true
}

func canFall2(tilePos TilePos, vs VerticalState, level *Level, props Properties, delta int) (Move, bool) {
	if vs.Kind == VSPadJump {
		return Move{}, false
	}
	newPos := TilePos{tilePos.X + delta, tilePos.Y - 1}
	if level.TileAt(TilePos{newPos.X, newPos.Y + 2}) != TileWall {
		return Move{}, false
	}
	if !checkPossibleLocation(newPos, level, false, false) {
		return Move{}, false
	}
	if !checkPossibleLocation(TilePos{newPos.X, newPos.Y + 1}, level, false, true) {
		return Move{}, false
	}
	if !checkPossibleLocation(TilePos{tilePos.X, tilePos.Y - 1}, level, false, true) {
		return Move{}, false
	}
	destTile := level.TileAt(newPos)
	var newVS VerticalState
	switch destTile {
	case TileWall:
		return Move{}, false
	case TileEmpty, TilePlatform, TileLadder:
		newVS = VerticalState{Kind: VSDefault}
	default:
		newVS, _ = destVSFromTile(destTile, props)
	}
	kind := MoveFall2Right
	if delta < 0 {
		kind = MoveFall2Left
	}
	ticks := ceilDiv(props.TicksPerSecond, props.UnitMaxHorizontalSpeed) + ceilDiv(props.TicksPerSecond, props.UnitFallSpeed)
	return Move{Kind: kind, Pos1: tilePos, VS1: vs, Pos2: newPos, VS2: newVS, Ticks: ticks}, true
}

func canFallEdge(tilePos TilePos, vs VerticalState, level *Level, props Properties, delta int) (Move, bool) {
	if vs.Kind == VSPadJump {
		return Move{}, false
	}
	below := level.TileAt(TilePos{tilePos.X, tilePos.Y - 1})
	if below != TileWall && below != TilePlatform {
		return Move{}, false
	}
	delta1 := 1
	if delta < 0 {
		delta1 = -1
	}
	if level.TileAt(TilePos{tilePos.X + delta1, tilePos.Y - 1}) != TileEmpty {
		return Move{}, false
	}
	newPos := TilePos{tilePos.X + delta, tilePos.Y - 1}
	if !checkPossibleLocation(newPos, level, false, false) {
		return Move{}, false
	}
	if !checkPossibleLocation(TilePos{newPos.X, newPos.Y + 1}, level, false, true) {
		return Move{}, false
	}
	if !checkPossibleLocation(TilePos{newPos.X, newPos.Y + 2}, level, false, true) {
		return Move{}, false
	}
	if delta1 != delta {
		if !checkPossibleLocation(TilePos{tilePos.X + delta1, tilePos.Y - 1}, level, false, true) {
			return Move{}, false
		}
		if !checkPossibleLocation(TilePos{tilePos.X + delta1, tilePos.Y}, level, false, true) {
			return Move{}, false
		}
		if !checkPossibleLocation(TilePos{tilePos.X + delta1, tilePos.Y + 1}, level, false, true) {
			return Move{}, false
		}
	}
	destTile := level.TileAt(newPos)
	var newVS VerticalState
	switch destTile {
	case TileWall:
		return Move{}, false
	case TileEmpty, TilePlatform, TileLadder:
		newVS = VerticalState{Kind: VSDefault}
	default:
		newVS, _ = destVSFromTile(destTile, props)
	}
	kind := MoveFallEdgeRight
	if delta < 0 {
		kind = MoveFallEdgeLeft
	}
	return Move{Kind: kind, Pos1: tilePos, VS1: vs, Pos2: newPos, VS2: newVS, Ticks: ceilDiv(props.TicksPerSecond, props.UnitFallSpeed)}, true
}

func canJump(tilePos TilePos, vs VerticalState, level *Level, props Properties, delta int) (Move, bool) {
	switch vs.Kind {
	case VSDefault:
		below := level.TileAt(TilePos{tilePos.X, tilePos.Y - 1})
		if below == TileEmpty || below == TileJumpPad {
			return Move{}, false
		}
	case VSJump:
		if vs.Budget < 1 {
			return Move{}, false
		}
	default:
		return Move{}, false
	}
	newPos := TilePos{tilePos.X + delta, tilePos.Y + 1}
	if !checkPossibleLocation(newPos, level, false, false) {
		return Move{}, false
	}
	if !checkPossibleLocation(TilePos{newPos.X, newPos.Y + 1}, level, false, true) {
		return Move{}, false
	}
	if delta != 0 && !checkPossibleLocation(TilePos{newPos.X, newPos.Y - 1}, level, false, true) {
		return Move{}, false
	}
	if delta != 0 && !checkPossibleLocation(TilePos{tilePos.X, tilePos.Y + 2}, level, false, true) {
		return Move{}, false
	}
	destTile := level.TileAt(newPos)
	var newVS VerticalState
	switch destTile {
	case TileWall:
		return Move{}, false
	case TileLadder:
		newVS = VerticalState{Kind: VSDefault}
	case TileEmpty, TilePlatform:
		if level.TileAt(TilePos{newPos.X, newPos.Y + 1}) == TileLadder {
			newVS = VerticalState{Kind: VSDefault}
		} else {
			switch vs.Kind {
			case VSDefault:
				newVS = VerticalState{Kind: VSJump, Budget: jumpMaxTiles(props) - 1}
			case VSJump:
				if vs.Budget > 1 {
					newVS = VerticalState{Kind: VSJump, Budget: vs.Budget - 1}
				} else {
					newVS = VerticalState{Kind: VSDefault}
				}
			default:
				return Move{}, false
			}
		}
	default:
		newVS, _ = destVSFromTile(destTile, props)
	}
	var kind MoveKind
	switch {
	case delta < 0:
		kind = MoveJumpLeft
	case delta > 0:
		kind = MoveJumpRight
	default:
		kind = MoveJump
	}
	return Move{Kind: kind, Pos1: tilePos, VS1: vs, Pos2: newPos, VS2: newVS, Ticks: ceilDiv(props.TicksPerSecond, props.UnitJumpSpeed)}, true
}

func canJump2(tilePos TilePos, vs VerticalState, level *Level, props Properties, delta int) (Move, bool) {
	switch vs.Kind {
	case VSDefault:
		below := level.TileAt(TilePos{tilePos.X, tilePos.Y - 1})
		if below == TileEmpty || below == TileJumpPad {
			return Move{}, false
		}
	case VSJump:
		if vs.Budget < 1 {
			return Move{}, false
		}
	default:
		return Move{}, false
	}
	newPos := TilePos{tilePos.X + delta, tilePos.Y + 1}
	side := level.TileAt(TilePos{newPos.X, newPos.Y - 1})
	if side != TileWall && side != TilePlatform {
		return Move{}, false
	}
	if !checkPossibleLocation(newPos, level, false, false) {
		return Move{}, false
	}
	if !checkPossibleLocation(TilePos{newPos.X, newPos.Y + 1}, level, false, true) {
		return Move{}, false
	}
	if delta != 0 && !checkPossibleLocation(TilePos{tilePos.X, tilePos.Y + 2}, level, false, true) {
		return Move{}, false
	}
	destTile := level.TileAt(newPos)
	var newVS VerticalState
	switch destTile {
	case TileWall:
		return Move{}, false
	case TileLadder, TileEmpty, TilePlatform:
		newVS = VerticalState{Kind: VSDefault}
	default:
		newVS, _ = destVSFromTile(destTile, props)
	}
	kind := MoveJump2Right
	if delta < 0 {
		kind = MoveJump2Left
	}
	ticks := ceilDiv(props.TicksPerSecond, props.UnitMaxHorizontalSpeed) + ceilDiv(props.TicksPerSecond, props.UnitJumpSpeed)
	return Move{Kind: kind, Pos1: tilePos, VS1: vs, Pos2: newPos, VS2: newVS, Ticks: ticks}, true
}

// jumpStopTicks and padJumpStopTicks are noted as tentative in the
// source this was ported from; keep as-is unless measured otherwise.
const (
	jumpStopTicks    = 2
	padJumpStopTicks = 3
)

func canJumpStop(tilePos TilePos, vs VerticalState, level *Level, props Properties, _ int) (Move, bool) {
	if vs.Kind != VSJump {
		return Move{}, false
	}
	return Move{Kind: MoveJumpStop, Pos1: tilePos, VS1: vs, Pos2: tilePos, VS2: VerticalState{Kind: VSDefault}, Ticks: jumpStopTicks}, true
}

func canPadJump(tilePos TilePos, vs VerticalState, level *Level, props Properties, delta int) (Move, bool) {
	if vs.Kind != VSPadJump || vs.Budget < 2 {
		return Move{}, false
	}
	newPos := TilePos{tilePos.X + delta, tilePos.Y + 2}
	if !checkPossibleLocation(newPos, level, false, false) {
		return Move{}, false
	}
	if !checkPossibleLocation(TilePos{newPos.X, newPos.Y + 1}, level, false, true) {
		return Move{}, false
	}
	if !checkPossibleLocation(TilePos{newPos.X, newPos.Y - 2}, level, true, true) {
		return Move{}, false
	}
	if !checkPossibleLocation(TilePos{newPos.X, newPos.Y - 1}, level, true, true) {
		return Move{}, false
	}
	if delta != 0 && !checkPossibleLocation(TilePos{tilePos.X, tilePos.Y + 2}, level, true, true) {
		return Move{}, false
	}
	if delta != 0 && !checkPossibleLocation(TilePos{tilePos.X, tilePos.Y + 3}, level, true, true) {
		return Move{}, false
	}
	destTile := level.TileAt(newPos)
	var newVS VerticalState
	switch destTile {
	case TileWall:
		return Move{}, false
	case TileLadder:
		newVS = VerticalState{Kind: VSDefault}
	case TileEmpty, TilePlatform:
		if level.TileAt(TilePos{newPos.X, newPos.Y + 1}) == TileLadder {
			newVS = VerticalState{Kind: VSDefault}
		} else if vs.Budget > 2 {
			newVS = VerticalState{Kind: VSPadJump, Budget: vs.Budget - 2}
		} else {
			newVS = VerticalState{Kind: VSDefault}
		}
	default:
		newVS, _ = destVSFromTile(destTile, props)
	}
	kind := MovePadJumpRight
	if delta < 0 {
		kind = MovePadJumpLeft
	}
	ticks := ceilDiv(2*props.TicksPerSecond, props.JumpPadJumpSpeed)
	return Move{Kind: kind, Pos1: tilePos, VS1: vs, Pos2: newPos, VS2: newVS, Ticks: ticks}, true
}

func canPadJump2(tilePos TilePos, vs VerticalState, level *Level, props Properties, delta int) (Move, bool) {
	if vs.Kind != VSPadJump || vs.Budget < 1 {
		return Move{}, false
	}
	newPos := TilePos{tilePos.X + delta, tilePos.Y + 1}
	if !checkPossibleLocation(newPos, level, false, false) {
		return Move{}, false
	}
	if !checkPossibleLocation(TilePos{newPos.X, newPos.Y + 1}, level, false, true) {
		return Move{}, false
	}
	if level.TileAt(TilePos{newPos.X, newPos.Y - 1}) != TileWall {
		return Move{}, false
	}
	if level.TileAt(TilePos{newPos.X, newPos.Y + 2}) != TileWall {
		return Move{}, false
	}
	if delta != 0 && !checkPossibleLocation(TilePos{tilePos.X, tilePos.Y + 2}, level, true, true) {
		return Move{}, false
	}
	destTile := level.TileAt(newPos)
	var newVS VerticalState
	switch destTile {
	case TileWall:
		return Move{}, false
	case TileLadder, TileEmpty, TilePlatform:
		newVS = VerticalState{Kind: VSDefault}
	default:
		newVS, _ = destVSFromTile(destTile, props)
	}
	kind := MovePadJump2Right
	if delta < 0 {
		kind = MovePadJump2Left
	}
	ticks := ceilDiv(props.TicksPerSecond, props.UnitMaxHorizontalSpeed) + ceilDiv(props.TicksPerSecond, props.JumpPadJumpSpeed)
	return Move{Kind: kind, Pos1: tilePos, VS1: vs, Pos2: newPos, VS2: newVS, Ticks: ticks}, true
}

func canPadJumpUp(tilePos TilePos, vs VerticalState, level *Level, props Properties, _ int) (Move, bool) {
	if vs.Kind != VSPadJump || vs.Budget < 1 {
		return Move{}, false
	}
	newPos := TilePos{tilePos.X, tilePos.Y + 1}
	if !checkPossibleLocation(newPos, level, false, false) {
		return Move{}, false
	}
	if !checkPossibleLocation(TilePos{newPos.X, newPos.Y + 1}, level, false, true) {
		return Move{}, false
	}
	destTile := level.TileAt(newPos)
	var newVS VerticalState
	switch destTile {
	case TileWall:
		return Move{}, false
	case TileLadder:
		newVS = VerticalState{Kind: VSDefault}
	case TileEmpty, TilePlatform:
		// The source this was ported from guards a ladder-continuation
		// shortcut here with a literal `false &&`, making it
		// unreachable; preserved as dead code rather than "fixed" —
		// distinct from the mine-pickup open question in planner.go.
		if false && level.TileAt(TilePos{newPos.X, newPos.Y + 1}) == TileLadder {
			newVS = VerticalState{Kind: VSDefault}
		} else if vs.Budget > 1 {
			newVS = VerticalState{Kind: VSPadJump, Budget: vs.Budget - 1}
		} else {
			newVS = VerticalState{Kind: VSDefault}
		}
	default:
		newVS, _ = destVSFromTile(destTile, props)
	}
	return Move{Kind: MovePadJumpUp, Pos1: tilePos, VS1: vs, Pos2: newPos, VS2: newVS, Ticks: ceilDiv(props.TicksPerSecond, props.JumpPadJumpSpeed)}, true
}

func canPadJumpStop(tilePos TilePos, vs VerticalState, level *Level, props Properties, _ int) (Move, bool) {
	if vs.Kind != VSPadJump {
		return Move{}, false
	}
	if level.TileAt(TilePos{tilePos.X, tilePos.Y + 2}) != TileWall {
		return Move{}, false
	}
	return Move{Kind: MovePadJumpStop, Pos1: tilePos, VS1: vs, Pos2: tilePos, VS2: VerticalState{Kind: VSDefault}, Ticks: padJumpStopTicks}, true
}

// RecoverMove is the synthetic recovery transition: it re-targets
// whatever integer tile the unit currently occupies.
func RecoverMove() Move {
	return Move{Kind: MoveRecover, Pos1: TilePos{-1, -1}, Pos2: TilePos{-1, -1}, Ticks: 1}
}

// MineSuicideMove is the synthetic mine-detonation transition.
func MineSuicideMove() Move {
	return Move{Kind: MoveMineSuicide, Pos1: TilePos{-1, -1}, Pos2: TilePos{-1, -1}, Ticks: 1}
}

// StartMove is the synthetic zero-tick root of a freshly committed
// path, targeting the unit's own current node.
func StartMove(pos TilePos, vs VerticalState) Move {
	return Move{Kind: MoveStart, Pos1: pos, VS1: vs, Pos2: pos, VS2: vs, Ticks: 0}
}

// StepControl runs one tick of m's control logic. This is the tagged
// dispatch that replaces a per-transition closure: all state the
// original per-kind closure captured is already sitting in m's fields.
func StepControl(m Move, position Vec2, vs VerticalState) ControlResult {
	switch m.Kind {
	case MoveStart:
		return ControlResult{Kind: CtrlTargetReached}

	case MoveRecover:
		pos := TileOf(position)
		if targetReached(position, pos, vs) {
			return ControlResult{Kind: CtrlTargetReached}
		}
		return ControlResult{Kind: CtrlEmit, Velocity: chooseHorizontalSpeed(position.X, float64(pos.X)+0.5), Jump: true}

	case MoveMineSuicide:
		return ControlResult{Kind: CtrlEmit, Velocity: 0}

	case MoveWalkLeft, MoveWalkRight:
		if targetReached(position, m.Pos2, vs) {
			return ControlResult{Kind: CtrlTargetReached}
		}
		pos := TileOf(position)
		if pos.Y != m.Pos2.Y || (pos.X != m.Pos1.X && pos.X != m.Pos2.X) {
			return ControlResult{Kind: CtrlRecover}
		}
		return ControlResult{Kind: CtrlEmit, Velocity: chooseHorizontalSpeed(position.X, float64(m.Pos2.X)+0.5)}

	case MoveLadderUp, MoveLadderDown:
		if targetReached(position, m.Pos2, vs) {
			return ControlResult{Kind: CtrlTargetReached}
		}
		pos := TileOf(position)
		if (pos.Y != m.Pos1.Y && pos.Y != m.Pos2.Y) || pos.X != m.Pos2.X {
			return ControlResult{Kind: CtrlRecover}
		}
		vdelta := m.Pos2.Y - m.Pos1.Y
		return ControlResult{Kind: CtrlEmit, Velocity: chooseHorizontalSpeed(position.X, float64(m.Pos2.X)+0.5), Jump: vdelta > 0, JumpDown: vdelta < 0}

	case MoveFall, MoveFallLeft, MoveFallRight, MoveFall2Left, MoveFall2Right:
		if targetReached(position, m.Pos2, vs) {
			return ControlResult{Kind: CtrlTargetReached}
		}
		pos := TileOf(position)
		if (pos.Y != m.Pos1.Y && pos.Y != m.Pos2.Y) || (pos.X != m.Pos1.X && pos.X != m.Pos2.X) {
			return ControlResult{Kind: CtrlRecover}
		}
		return ControlResult{Kind: CtrlEmit, Velocity: chooseHorizontalSpeed(position.X, float64(m.Pos2.X)+0.5), JumpDown: true}

	case MoveFallEdgeLeft, MoveFallEdgeRight:
		if targetReached(position, m.Pos2, vs) {
			return ControlResult{Kind: CtrlTargetReached}
		}
		pos := TileOf(position)
		delta := m.Pos2.X - m.Pos1.X
		delta1 := 1
		if delta < 0 {
			delta1 = -1
		}
		if (pos.Y != m.Pos1.Y && pos.Y != m.Pos2.Y) || (pos.X != m.Pos1.X && pos.X != m.Pos1.X+delta1 && pos.X != m.Pos2.X) {
			return ControlResult{Kind: CtrlRecover}
		}
		return ControlResult{Kind: CtrlEmit, Velocity: chooseHorizontalSpeed(position.X, float64(m.Pos2.X)+0.5), JumpDown: pos.X == m.Pos2.X}

	case MoveJump, MoveJumpLeft, MoveJumpRight, MoveJump2Left, MoveJump2Right:
		if targetReached(position, m.Pos2, vs) {
			return ControlResult{Kind: CtrlTargetReached}
		}
		pos := TileOf(position)
		if (pos.Y != m.Pos1.Y && pos.Y != m.Pos2.Y) || (pos.X != m.Pos1.X && pos.X != m.Pos2.X) {
			return ControlResult{Kind: CtrlRecover}
		}
		jump := true
		if m.Kind == MoveJump2Left || m.Kind == MoveJump2Right {
			jump = pos.Y == m.Pos1.Y
		}
		return ControlResult{Kind: CtrlEmit, Velocity: chooseHorizontalSpeed(position.X, float64(m.Pos2.X)+0.5), Jump: jump}

	case MoveJumpStop:
		if vs.Kind == VSDefault && targetReached(position, m.Pos2, vs) {
			return ControlResult{Kind: CtrlTargetReached}
		}
		pos := TileOf(position)
		if pos.Y < m.Pos1.Y || pos.Y > m.Pos2.Y || pos.X != m.Pos2.X {
			return ControlResult{Kind: CtrlRecover}
		}
		jump := (position.Y - float64(m.Pos1.Y)) <= fallSpeedConst/ticksPerSecondConst
		return ControlResult{Kind: CtrlEmit, Velocity: chooseHorizontalSpeed(position.X, float64(m.Pos2.X)+0.5), Jump: jump}

	case MovePadJumpLeft, MovePadJumpRight, MovePadJump2Left, MovePadJump2Right:
		if targetReached(position, m.Pos2, vs) {
			return ControlResult{Kind: CtrlTargetReached}
		}
		pos := TileOf(position)
		if pos.Y < m.Pos1.Y || pos.Y > m.Pos2.Y || (pos.X != m.Pos1.X && pos.X != m.Pos2.X) {
			return ControlResult{Kind: CtrlRecover}
		}
		return ControlResult{Kind: CtrlEmit, Velocity: chooseHorizontalSpeed(position.X, float64(m.Pos2.X)+0.5), Jump: true}

	case MovePadJumpUp:
		if targetReached(position, m.Pos2, vs) {
			return ControlResult{Kind: CtrlTargetReached}
		}
		pos := TileOf(position)
		if pos.Y < m.Pos1.Y || pos.Y > m.Pos2.Y || pos.X != m.Pos2.X {
			return ControlResult{Kind: CtrlRecover}
		}
		return ControlResult{Kind: CtrlEmit, Velocity: chooseHorizontalSpeed(position.X, float64(m.Pos2.X)+0.5), Jump: true}

	case MovePadJumpStop:
		if vs.Kind == VSDefault && targetReached(position, m.Pos2, vs) {
			return ControlResult{Kind: CtrlTargetReached}
		}
		pos := TileOf(position)
		if pos.Y < m.Pos1.Y || pos.Y > m.Pos2.Y || pos.X != m.Pos2.X {
			return ControlResult{Kind: CtrlRecover}
		}
		return ControlResult{
			Kind:     CtrlEmit,
			Velocity: chooseHorizontalSpeed(position.X, float64(m.Pos2.X)+0.5),
			Jump:     vs.Kind != VSDefault,
			JumpDown: vs.Kind == VSDefault,
		}
	}
	return ControlResult{Kind: CtrlRecover}
}
