package strategy

import "container/list"

// Paths is the lazily-expanded motion graph cache: outgoing holds,
// for each node, every Move that leaves it; incoming holds every Move
// that arrives at it. Both maps only ever grow — a node once expanded
// is never re-expanded, since the level and movement catalog are
// fixed for the whole match (model.go's Level comment explains why
// this is safe).
type Paths struct {
	Outgoing map[Node][]Move
	Incoming map[Node][]Move
}

// NewPaths returns an empty graph cache ready for UpdatePaths.
func NewPaths() *Paths {
	return &Paths{Outgoing: make(map[Node][]Move), Incoming: make(map[Node][]Move)}
}

func containsMove(moves []Move, m Move) bool {
	for _, existing := range moves {
		if existing == m {
			return true
		}
	}
	return false
}

// UpdatePaths expands the graph outward from (pos, vs) via BFS,
// skipping any node already expanded. Call this once per tick per
// unit with the unit's current node; repeated calls across ticks
// converge to the full reachable subgraph without redoing earlier
// work.
func (p *Paths) UpdatePaths(pos TilePos, vs VerticalState, game *Game) {
	queue := list.New()
	queue.PushBack(StartMove(pos, vs))
	for queue.Len() > 0 {
		front := queue.Remove(queue.Front()).(Move)
		node := Node{Pos: front.Pos2, VS: front.VS2}
		if _, expanded := p.Outgoing[node]; expanded {
			continue
		}
		p.Outgoing[node] = nil
		for _, entry := range MovementCatalog {
			mov, ok := entry.fn(node.Pos, node.VS, game.Level, game.Properties, entry.delta)
			if !ok {
				continue
			}
			fromNode := Node{Pos: mov.Pos1, VS: mov.VS1}
			if !containsMove(p.Outgoing[fromNode], mov) {
				p.Outgoing[fromNode] = append(p.Outgoing[fromNode], mov)
			}
			toNode := Node{Pos: mov.Pos2, VS: mov.VS2}
			if !containsMove(p.Incoming[toNode], mov) {
				p.Incoming[toNode] = append(p.Incoming[toNode], mov)
			}
			if _, expanded := p.Outgoing[toNode]; !expanded {
				queue.PushBack(mov)
			}
		}
	}
}

// BuildAllPaths computes, for every node that can reach targetPos,
// the minimum tick cost to do so, via reverse BFS over Incoming.
// Ties keep the first (lowest) cost found; a node never reachable is
// simply absent from the result.
func BuildAllPaths(targetPos TilePos, paths *Paths) map[Node]int {
	costs := make(map[Node]int)
	queue := list.New()
	for node := range paths.Incoming {
		if node.Pos == targetPos {
			queue.PushBack(struct {
				node  Node
				ticks int
			}{node, 0})
		}
	}
	for queue.Len() > 0 {
		entry := queue.Remove(queue.Front()).(struct {
			node  Node
			ticks int
		})
		if existing, ok := costs[entry.node]; ok {
			if existing <= entry.ticks {
				continue
			}
		}
		costs[entry.node] = entry.ticks
		for _, mov := range paths.Incoming[entry.node] {
			prev := Node{Pos: mov.Pos1, VS: mov.VS1}
			queue.PushBack(struct {
				node  Node
				ticks int
			}{prev, entry.ticks + mov.Ticks})
		}
	}
	return costs
}
