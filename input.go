package panzoom

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// propagationStopper is implemented by handlers that end dispatch to the
// handlers registered after them.
type propagationStopper interface {
	StopsPropagation() bool
}

// PointerSource polls ebiten's mouse and touch state once per frame and
// turns press/hold/release transitions of a single pointer into
// OnStart/OnMove/OnEnd notifications. The left mouse button and the first
// touch both drive the pointer; additional touches are ignored. Wheel
// movement is forwarded to the wheel callback.
type PointerSource struct {
	handlers []MotionHandler
	wheelFn  func(deltaY float64, now time.Time)
	now      func() time.Time

	down    bool
	touch   bool // current gesture is driven by a touch
	touchID ebiten.TouchID
	lastX   float64
	lastY   float64

	touchIDs    []ebiten.TouchID
	injectQueue []syntheticPointerEvent
}

// NewPointerSource creates a source dispatching to handlers in order.
func NewPointerSource(handlers ...MotionHandler) *PointerSource {
	return &PointerSource{
		handlers: handlers,
		now:      time.Now,
	}
}

// AddHandler appends h to the dispatch order.
func (s *PointerSource) AddHandler(h MotionHandler) {
	s.handlers = append(s.handlers, h)
}

// OnWheel registers the wheel callback. deltaY is positive when scrolling
// down, matching browser wheel events.
func (s *PointerSource) OnWheel(fn func(deltaY float64, now time.Time)) {
	s.wheelFn = fn
}

// SetClock replaces the time source used to stamp samples.
func (s *PointerSource) SetClock(now func() time.Time) {
	s.now = now
}

// Down reports whether the pointer is currently pressed.
func (s *PointerSource) Down() bool {
	return s.down
}

// Update reads this frame's input. A queued synthetic event, if any, is
// consumed instead of real input.
func (s *PointerSource) Update() {
	now := s.now()
	if s.processInjectedInput(now) {
		return
	}
	s.processWheel(now)
	if s.processTouch(now) {
		return
	}
	s.processMouse(now)
}

func (s *PointerSource) processWheel(now time.Time) {
	_, yoff := ebiten.Wheel()
	if yoff != 0 && s.wheelFn != nil {
		// ebiten reports scroll-up as positive.
		s.wheelFn(-yoff, now)
	}
}

// processTouch drives the pointer from the first touch. It reports whether
// touch input owned this frame.
func (s *PointerSource) processTouch(now time.Time) bool {
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])

	if s.down && s.touch {
		for _, id := range s.touchIDs {
			if id == s.touchID {
				x, y := ebiten.TouchPosition(id)
				s.processPointer(float64(x), float64(y), true, now)
				return true
			}
		}
		// Finger lifted: release at the last known position.
		s.processPointer(s.lastX, s.lastY, false, now)
		s.touch = false
		return true
	}

	if !s.down && len(s.touchIDs) > 0 {
		s.touch = true
		s.touchID = s.touchIDs[0]
		x, y := ebiten.TouchPosition(s.touchID)
		s.processPointer(float64(x), float64(y), true, now)
		return true
	}
	return false
}

func (s *PointerSource) processMouse(now time.Time) {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.processPointer(float64(mx), float64(my), pressed, now)
}

// processPointer runs the pointer state machine for one observation.
func (s *PointerSource) processPointer(x, y float64, pressed bool, now time.Time) {
	sample := Sample{X: x, Y: y, Time: now}

	switch {
	case pressed && !s.down:
		s.down = true
		s.dispatch(MotionHandler.OnStart, sample)
	case !pressed && s.down:
		s.down = false
		s.dispatch(MotionHandler.OnEnd, sample)
	case pressed && s.down:
		if x != s.lastX || y != s.lastY {
			s.dispatch(MotionHandler.OnMove, sample)
		}
	}
	s.lastX = x
	s.lastY = y
}

func (s *PointerSource) dispatch(fn func(MotionHandler, Sample), sample Sample) {
	for _, h := range s.handlers {
		fn(h, sample)
		if ps, ok := h.(propagationStopper); ok && ps.StopsPropagation() {
			return
		}
	}
}
