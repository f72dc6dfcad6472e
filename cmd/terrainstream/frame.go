package main

import (
	"log/slog"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"voxelterrain/internal/mesh"
	"voxelterrain/internal/stream"
	"voxelterrain/internal/world"
)

// scriptedObserver moves in a straight line from start at a fixed velocity.
type scriptedObserver struct {
	start    mgl32.Vec3
	velocity mgl32.Vec3
	began    time.Time
	now      func() time.Time
}

func newScriptedObserver(start, velocity mgl32.Vec3, now func() time.Time) *scriptedObserver {
	return &scriptedObserver{start: start, velocity: velocity, began: now(), now: now}
}

func (o *scriptedObserver) Position() mgl32.Vec3 {
	elapsed := float32(o.now().Sub(o.began).Seconds())
	return o.start.Add(o.velocity.Mul(elapsed))
}

// meshTracker stands in for a GPU: it keeps the face count of every
// uploaded mesh.
type meshTracker struct {
	mu    sync.Mutex
	faces map[world.Key]int
}

func newMeshTracker() *meshTracker {
	return &meshTracker{faces: make(map[world.Key]int)}
}

func (t *meshTracker) Upload(key world.Key, m *mesh.Mesh) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.faces[key] = m.Opaque.Faces() + m.Transparent.Faces()
}

func (t *meshTracker) Release(key world.Key) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.faces, key)
}

// Faces is the total number of faces currently uploaded.
func (t *meshTracker) Faces() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	total := 0
	for _, n := range t.faces {
		total += n
	}
	return total
}

type passCounter struct {
	faces [2]int
}

func (c *passCounter) DrawChunk(key world.Key, pass mesh.Pass, buf *mesh.Buffer) {
	c.faces[pass] += buf.Faces()
}

// frameLogger draws every frame into a counter and logs when the observer
// crosses into a new chunk.
type frameLogger struct {
	logger     *slog.Logger
	tracker    *meshTracker
	drawRadius int

	count int
	last  stream.Telemetry
	seen  bool
}

func newFrameLogger(logger *slog.Logger, tracker *meshTracker, drawRadius int) *frameLogger {
	return &frameLogger{logger: logger, tracker: tracker, drawRadius: drawRadius}
}

func (f *frameLogger) frame(e *stream.Engine, pos mgl32.Vec3, report stream.TickReport) {
	f.count++

	var counter passCounter
	calls := e.Draw(world.AreaAround(int(pos[0]), int(pos[2]), f.drawRadius), &counter)

	if report.Expansion != nil && report.Expansion.Dispatched() > 0 {
		f.logger.Debug("expansion dispatched", "tasks", report.Expansion.Dispatched())
	}

	telemetry := stream.Locate(pos)
	if f.seen && telemetry == f.last {
		return
	}
	f.seen = true
	f.last = telemetry
	f.logger.Info("observer moved",
		"location", telemetry.String(),
		"drawCalls", calls,
		"opaqueFaces", counter.faces[mesh.Opaque],
		"transparentFaces", counter.faces[mesh.Transparent],
		"uploadedFaces", f.tracker.Faces(),
	)
}
