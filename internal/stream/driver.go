package stream

import (
	"context"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Observer supplies the position the terrain streams around.
type Observer interface {
	Position() mgl32.Vec3
}

// FrameFunc runs after every tick on the driver goroutine, which is the only
// goroutine allowed to touch the engine while the driver runs.
type FrameFunc func(e *Engine, pos mgl32.Vec3, report TickReport)

type tickerFactory func(time.Duration) (<-chan time.Time, func())

type timeSource func() time.Time

// Driver ticks an Engine at a fixed rate from its own goroutine.
type Driver struct {
	engine    *Engine
	observer  Observer
	frame     FrameFunc
	tick      time.Duration
	wg        sync.WaitGroup
	newTicker tickerFactory
	now       timeSource
}

func defaultTickerFactory() tickerFactory {
	return func(d time.Duration) (<-chan time.Time, func()) {
		ticker := time.NewTicker(d)
		return ticker.C, ticker.Stop
	}
}

// NewDriver builds a driver. frame may be nil.
func NewDriver(engine *Engine, observer Observer, tick time.Duration, frame FrameFunc) *Driver {
	if tick <= 0 {
		tick = 16 * time.Millisecond
	}
	return &Driver{
		engine:    engine,
		observer:  observer,
		frame:     frame,
		tick:      tick,
		newTicker: defaultTickerFactory(),
		now:       time.Now,
	}
}

func (d *Driver) Start(ctx context.Context) {
	if d == nil || d.engine == nil || d.observer == nil {
		return
	}
	d.wg.Add(1)
	go d.run(ctx)
}

func (d *Driver) run(ctx context.Context) {
	defer d.wg.Done()
	if d.newTicker == nil {
		d.newTicker = defaultTickerFactory()
	}
	if d.now == nil {
		d.now = time.Now
	}

	tickerC, stop := d.newTicker(d.tick)
	defer stop()

	last := d.now()
	prev := d.observer.Position()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-tickerC:
			delta := now.Sub(last)
			if delta <= 0 {
				delta = d.tick
			} else if delta > 10*d.tick {
				delta = d.tick
			}
			last = now

			pos := d.observer.Position()
			report := d.engine.Tick(pos, prev, delta)
			if d.frame != nil {
				d.frame(d.engine, pos, report)
			}
			prev = pos
		}
	}
}

func (d *Driver) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}
