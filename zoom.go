package panzoom

import (
	"math"
	"slices"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultZoomRatioStep = 0.5
	defaultMinZoomRatio  = 0.5
	wheelZoomInterval    = 150 * time.Millisecond
)

// ZoomEvent is the immutable message broadcast on every zoom ratio change.
type ZoomEvent struct {
	ZoomRatio     float64
	PrevZoomRatio float64
}

// Delta returns the signed ratio change carried by the event.
func (e ZoomEvent) Delta() float64 {
	return e.ZoomRatio - e.PrevZoomRatio
}

type zoomHandler struct {
	id uint32
	fn func(ZoomEvent)
}

// ZoomBus carries zoom events from controllers to viewers. Create one per
// window and hand it to every controller and viewer that should share zoom
// state; buses do not see each other's events.
type ZoomBus struct {
	handlers []zoomHandler
	nextID   uint32
}

// NewZoomBus creates an empty bus.
func NewZoomBus() *ZoomBus {
	return &ZoomBus{}
}

// Subscribe registers fn to receive every event published on the bus.
func (b *ZoomBus) Subscribe(fn func(ZoomEvent)) Subscription {
	b.nextID++
	id := b.nextID
	b.handlers = append(b.handlers, zoomHandler{id: id, fn: fn})
	return Subscription{id: id, bus: b}
}

// Publish delivers e to all current subscribers in registration order.
// Handlers may subscribe or unsubscribe while being called; the change takes
// effect from the next Publish.
func (b *ZoomBus) Publish(e ZoomEvent) {
	for _, h := range slices.Clone(b.handlers) {
		h.fn(e)
	}
}

// Len returns the number of registered subscribers.
func (b *ZoomBus) Len() int {
	return len(b.handlers)
}

// Subscription allows removing a registered zoom handler.
type Subscription struct {
	id  uint32
	bus *ZoomBus
}

// Remove unregisters the handler. Calling Remove more than once, or on the
// zero Subscription, is a no-op.
func (s Subscription) Remove() {
	if s.bus == nil {
		return
	}
	hs := s.bus.handlers
	for i := range hs {
		if hs[i].id == s.id {
			copy(hs[i:], hs[i+1:])
			hs[len(hs)-1] = zoomHandler{}
			s.bus.handlers = hs[:len(hs)-1]
			return
		}
	}
}

// ZoomController owns the shared zoom ratio and broadcasts every change.
type ZoomController struct {
	bus     *ZoomBus
	ratio   float64
	initial float64
	step    float64
	min     float64
	wheel   *rate.Limiter
}

// NewZoomController creates a controller publishing on bus, starting at
// cfg.InitialZoomRatio.
func NewZoomController(bus *ZoomBus, cfg Config) *ZoomController {
	cfg = cfg.withDefaults()
	return &ZoomController{
		bus:     bus,
		ratio:   cfg.InitialZoomRatio,
		initial: cfg.InitialZoomRatio,
		step:    cfg.ZoomRatioStep,
		min:     cfg.MinZoomRatio,
		wheel:   rate.NewLimiter(rate.Every(wheelZoomInterval), 1),
	}
}

// Ratio returns the current zoom ratio.
func (c *ZoomController) Ratio() float64 {
	return c.ratio
}

// ZoomIn raises the ratio by one step and broadcasts it.
func (c *ZoomController) ZoomIn() {
	c.SetRatio(c.ratio + c.step)
}

// ZoomOut lowers the ratio by one step, never below the floor, and
// broadcasts it.
func (c *ZoomController) ZoomOut() {
	c.SetRatio(c.ratio - c.step)
}

// Reset returns to the initial ratio.
func (c *ZoomController) Reset() {
	c.SetRatio(c.initial)
}

// SetRatio floor-clamps r, rounds it to two decimals and broadcasts
// {r, previous}.
func (c *ZoomController) SetRatio(r float64) {
	r = math.Max(r, c.min)
	r = math.Round(r*100) / 100
	prev := c.ratio
	c.ratio = r
	if c.bus != nil {
		c.bus.Publish(ZoomEvent{ZoomRatio: r, PrevZoomRatio: prev})
	}
}

// Wheel maps a wheel delta to a zoom step: positive (scroll down) zooms out,
// negative zooms in. At most one call per 150ms is accepted; calls inside the
// window are dropped. Reports whether the call zoomed.
func (c *ZoomController) Wheel(deltaY float64, now time.Time) bool {
	if deltaY == 0 {
		return false
	}
	if !c.wheel.AllowN(now, 1) {
		return false
	}
	if deltaY > 0 {
		c.ZoomOut()
	} else {
		c.ZoomIn()
	}
	return true
}

// ZoomReceiver listens on a ZoomBus, caches the two most recent ratios and
// forwards every event to its callback.
type ZoomReceiver struct {
	ZoomRatio     float64
	PrevZoomRatio float64

	fn  func(ZoomEvent)
	sub Subscription
}

// NewZoomReceiver creates a receiver with both cached ratios set to initial.
// fn may be nil.
func NewZoomReceiver(initial float64, fn func(ZoomEvent)) *ZoomReceiver {
	return &ZoomReceiver{ZoomRatio: initial, PrevZoomRatio: initial, fn: fn}
}

// Listen subscribes to bus. Listening again on the same bus is a no-op;
// listening on a different bus moves the subscription.
func (r *ZoomReceiver) Listen(bus *ZoomBus) {
	if bus == nil || r.sub.bus == bus {
		return
	}
	r.Close()
	r.sub = bus.Subscribe(r.receive)
}

// Close stops listening. Safe to call repeatedly.
func (r *ZoomReceiver) Close() {
	r.sub.Remove()
	r.sub = Subscription{}
}

// Listening reports whether the receiver is subscribed to a bus.
func (r *ZoomReceiver) Listening() bool {
	return r.sub.bus != nil
}

func (r *ZoomReceiver) receive(e ZoomEvent) {
	r.ZoomRatio = e.ZoomRatio
	r.PrevZoomRatio = e.PrevZoomRatio
	if r.fn != nil {
		r.fn(e)
	}
}
