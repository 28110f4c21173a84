package strategy

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/panyam/gocurrent"
)

// DebugShapeKind tags a DebugEvent's payload, mirroring the handful of
// primitives the decision loop wants to annotate a tick with: the
// planner's candidate paths, the aim cone, and bullet/explosion
// footprints.
type DebugShapeKind int

const (
	DebugLine DebugShapeKind = iota
	DebugRect
	DebugText
)

// DebugColor is an RGBA color in [0,1], matching the host's own
// color representation rather than introducing a packed-uint32 one.
type DebugColor struct {
	R, G, B, A float64
}

// DebugEvent is one drawable for a given tick and unit. A watch client
// connected to a BroadcastSink receives them as JSON batches; the
// engine never depends on anything consuming them.
type DebugEvent struct {
	Tick   int
	UnitID int
	Kind   DebugShapeKind
	P1     Vec2
	P2     Vec2
	Width  float64
	Color  DebugColor
	Text   string
}

// DebugSink receives DebugEvents. It is deliberately narrow: one
// method, no lifecycle to manage, so a nil-free no-op implementation
// is trivial.
type DebugSink interface {
	Draw(DebugEvent)
}

// NullSink discards every event. Engine holds no DebugSink of its
// own, and GetAction emits no DebugEvents.
type NullSink struct{}

func (NullSink) Draw(DebugEvent) {}

// drawRay emits a Line of width 0.05 from `from` to `to` for the
// given tick and unit. Nothing in the package calls it.
func drawRay(sink DebugSink, tick, unitID int, from, to Vec2, color DebugColor) {
	sink.Draw(DebugEvent{Tick: tick, UnitID: unitID, Kind: DebugLine, P1: from, P2: to, Width: 0.05, Color: color})
}

// drawFootprint emits a Rect spanning halfWidth either side of center
// and height above it. Nothing in the package calls it.
func drawFootprint(sink DebugSink, tick, unitID int, center Vec2, halfWidth, height float64, color DebugColor) {
	sink.Draw(DebugEvent{
		Tick: tick, UnitID: unitID, Kind: DebugRect,
		P1: center.Add(Vec2{X: -halfWidth, Y: 0}), P2: center.Add(Vec2{X: halfWidth, Y: height}),
		Color: color,
	})
}

// BroadcastSink batches incoming DebugEvents on a fixed period and
// fans the batch out as JSON frames to every connected websocket
// watcher, rather than writing to each connection synchronously on
// the hot decision path.
type BroadcastSink struct {
	reducer *gocurrent.Reducer2[DebugEvent, []DebugEvent]
	logger  *slog.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewBroadcastSink starts the batching goroutine and returns a sink
// ready to accept Upgrade'd connections via ServeHTTP. flushPeriod of
// 0 defaults to 100ms, frequent enough for a live watch client to
// feel responsive without serializing every single event.
func NewBroadcastSink(flushPeriod time.Duration, logger *slog.Logger) *BroadcastSink {
	if flushPeriod <= 0 {
		flushPeriod = 100 * time.Millisecond
	}
	b := &BroadcastSink{
		logger:  logger,
		clients: make(map[*websocket.Conn]struct{}),
	}
	b.reducer = gocurrent.NewReducer2(
		gocurrent.WithFlushPeriod2[DebugEvent, []DebugEvent](flushPeriod),
	)
	b.reducer.CollectFunc = func(batch []DebugEvent, items ...DebugEvent) ([]DebugEvent, bool) {
		return append(batch, items...), false
	}
	go b.run()
	return b
}

func (b *BroadcastSink) run() {
	for batch := range b.reducer.OutputChan() {
		if len(batch) == 0 {
			continue
		}
		b.broadcast(batch)
	}
}

func (b *BroadcastSink) broadcast(batch []DebugEvent) {
	payload, err := json.Marshal(batch)
	if err != nil {
		b.logger.Error("marshal debug batch", "error", err)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for conn := range b.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			b.logger.Warn("dropping debug watch client", "error", err)
			conn.Close()
			delete(b.clients, conn)
		}
	}
}

// Draw implements DebugSink by enqueueing onto the batching reducer;
// it never blocks on a slow or disconnected watch client.
func (b *BroadcastSink) Draw(e DebugEvent) {
	b.reducer.InputChan() <- e
}

var debugUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeHTTP upgrades the request to a websocket and registers it as a
// watch client until it disconnects. Intended to back the "watch"
// subcommand's `--addr` flag, not a general web server.
func (b *BroadcastSink) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := debugUpgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Error("upgrade debug watch connection", "error", err)
		return
	}
	b.mu.Lock()
	b.clients[conn] = struct{}{}
	b.mu.Unlock()

	go func() {
		defer func() {
			b.mu.Lock()
			delete(b.clients, conn)
			b.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
