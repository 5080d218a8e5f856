package panzoom

import "time"

// syntheticPointerEvent represents a single injected pointer or wheel event
// in screen coordinates.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
	wheel   float64 // non-zero for wheel events; pointer fields are unused
}

// InjectPress queues a pointer press at the given screen coordinates. The
// event is consumed on the next Update call.
func (s *PointerSource) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (s *PointerSource) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (s *PointerSource) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y})
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (s *PointerSource) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel event. Positive deltaY scrolls down. A zero
// delta is ignored.
func (s *PointerSource) InjectWheel(deltaY float64) {
	if deltaY == 0 {
		return
	}
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{wheel: deltaY})
}

// Pending returns the number of queued synthetic events.
func (s *PointerSource) Pending() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the pointer state machine or the wheel callback. Returns true if
// an event was consumed (real input is skipped this frame).
func (s *PointerSource) processInjectedInput(now time.Time) bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if evt.wheel != 0 {
		if s.wheelFn != nil {
			s.wheelFn(evt.wheel, now)
		}
		return true
	}
	s.processPointer(evt.x, evt.y, evt.pressed, now)
	return true
}
