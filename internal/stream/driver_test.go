package stream

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"voxelterrain/internal/config"
	"voxelterrain/internal/pipeline"
)

type fixedObserver struct {
	mu  sync.Mutex
	pos mgl32.Vec3
}

func (o *fixedObserver) Position() mgl32.Vec3 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pos
}

type frameRecorder struct {
	mu      sync.Mutex
	elapsed []time.Duration
	reports []TickReport
	notify  chan struct{}
}

func newFrameRecorder() *frameRecorder {
	return &frameRecorder{notify: make(chan struct{}, 1)}
}

func (r *frameRecorder) frame(e *Engine, pos mgl32.Vec3, report TickReport) {
	r.mu.Lock()
	r.elapsed = append(r.elapsed, e.sinceExpansion)
	r.reports = append(r.reports, report)
	r.mu.Unlock()

	select {
	case r.notify <- struct{}{}:
	default:
	}
}

func (r *frameRecorder) waitForFrames(target int, timeout time.Duration) bool {
	deadline := time.After(timeout)
	for {
		r.mu.Lock()
		count := len(r.reports)
		r.mu.Unlock()
		if count >= target {
			return true
		}
		select {
		case <-r.notify:
		case <-deadline:
			return false
		}
	}
}

func TestDriverClampsDeltaAndExpandsOnFirstTick(t *testing.T) {
	pool := pipeline.NewPool(1, nil)
	defer pool.Shutdown()

	cfg := config.Default().Stream
	cfg.ZoneRadius = 1
	cfg.ExpansionInterval = config.Duration(time.Hour)
	engine := NewEngine(cfg, flatGenerator{}, pool, nil)

	rec := newFrameRecorder()
	tick := 10 * time.Millisecond
	driver := NewDriver(engine, &fixedObserver{pos: origin}, tick, rec.frame)

	base := time.Unix(0, 0)
	driver.now = func() time.Time { return base }

	times := []time.Time{
		base.Add(tick),      // normal interval
		base.Add(tick),      // zero delta -> clamp
		base.Add(20 * tick), // oversized delta -> clamp
	}
	tickerChan := make(chan time.Time, len(times))
	for _, tm := range times {
		tickerChan <- tm
	}
	driver.newTicker = func(time.Duration) (<-chan time.Time, func()) {
		return tickerChan, func() {}
	}

	ctx, cancel := context.WithCancel(context.Background())
	driver.Start(ctx)
	if !rec.waitForFrames(len(times), time.Second) {
		cancel()
		driver.Wait()
		t.Fatalf("expected %d frames", len(times))
	}
	cancel()
	driver.Wait()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.reports[0].Expansion == nil || rec.reports[0].Expansion.GenerationTasks != 9 {
		t.Fatalf("first tick should expand into 9 zones, got %+v", rec.reports[0].Expansion)
	}
	for i, r := range rec.reports[1:] {
		if r.Expansion != nil {
			t.Fatalf("tick %d expanded inside the interval", i+1)
		}
	}
	want := []time.Duration{0, tick, 2 * tick}
	for i, got := range rec.elapsed {
		if got != want[i] {
			t.Fatalf("frame %d: elapsed %v, want %v", i, got, want[i])
		}
	}
}

func TestDriverStartIgnoresMissingObserver(t *testing.T) {
	driver := NewDriver(nil, nil, 0, nil)
	if driver.tick != 16*time.Millisecond {
		t.Fatalf("expected default tick, got %v", driver.tick)
	}
	driver.Start(context.Background())
	driver.Wait()
}
