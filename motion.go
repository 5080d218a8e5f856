package panzoom

import "time"

// Sample is a single pointer position with the time it was observed.
type Sample struct {
	X, Y float64
	Time time.Time
}

// Pos returns the sample's position.
func (s Sample) Pos() Vec2 {
	return Vec2{s.X, s.Y}
}

// MotionHandler receives the directionless start/move/end stream of a single
// pointer. A source guarantees OnStart precedes OnMove/OnEnd for a gesture and
// that OnEnd eventually follows every OnStart.
type MotionHandler interface {
	OnStart(Sample)
	OnMove(Sample)
	OnEnd(Sample)
}

// MotionRecord is the live state of one gesture. It is reset on press and is
// owned by the gesture until the next press supersedes it.
type MotionRecord struct {
	Start     Sample
	Distance  Vec2
	Direction Direction
	// Positions is append-only during a gesture and non-decreasing in Time.
	// Positions[0] always equals Start.
	Positions []Sample

	// Set at release only.
	Force        float64
	ReleaseAngle float64
}

// Current returns the latest recorded sample.
func (r *MotionRecord) Current() Sample {
	if len(r.Positions) == 0 {
		return r.Start
	}
	return r.Positions[len(r.Positions)-1]
}

// Sampler turns pointer notifications into a MotionRecord. It implements
// MotionHandler so it can be attached directly to a pointer source.
type Sampler struct {
	Axis Axis

	// OnStartFunc, OnMoveFunc and OnEndFunc are invoked with the live record
	// after the sampler has updated it.
	OnStartFunc func(*MotionRecord)
	OnMoveFunc  func(*MotionRecord)
	OnEndFunc   func(*MotionRecord)

	record MotionRecord
	active bool
}

// NewSampler creates a Sampler measuring direction along axis.
func NewSampler(axis Axis) *Sampler {
	return &Sampler{Axis: axis}
}

// Record returns the current (or most recently finished) gesture record.
func (s *Sampler) Record() *MotionRecord {
	return &s.record
}

// Active reports whether a gesture is in progress.
func (s *Sampler) Active() bool {
	return s.active
}

// OnStart begins a new gesture at sample, discarding the previous record.
func (s *Sampler) OnStart(sample Sample) {
	positions := s.record.Positions[:0]
	s.record = MotionRecord{
		Start:     sample,
		Positions: append(positions, sample),
	}
	s.active = true
	if s.OnStartFunc != nil {
		s.OnStartFunc(&s.record)
	}
}

// OnMove appends sample to the active gesture. Ignored when no gesture is active.
func (s *Sampler) OnMove(sample Sample) {
	if !s.active {
		return
	}
	s.append(sample)
	if s.OnMoveFunc != nil {
		s.OnMoveFunc(&s.record)
	}
}

// OnEnd finalizes the active gesture: the release sample is recorded and the
// throw estimate is stored on the record. Ignored when no gesture is active.
func (s *Sampler) OnEnd(sample Sample) {
	if !s.active {
		return
	}
	// A stationary release still carries the time the pointer was held.
	if last := s.record.Current(); sample.Pos() != last.Pos() || sample.Time.After(last.Time) {
		s.append(sample)
	}
	s.active = false

	th := EstimateThrow(s.record.Positions)
	s.record.Force = th.Force
	s.record.ReleaseAngle = th.Angle

	if s.OnEndFunc != nil {
		s.OnEndFunc(&s.record)
	}
}

// Cancel abandons the active gesture without finalizing it. No callback fires.
func (s *Sampler) Cancel() {
	s.active = false
}

func (s *Sampler) append(sample Sample) {
	// Keep the time ordering invariant even if a source reports a stale stamp.
	if last := s.record.Current(); sample.Time.Before(last.Time) {
		sample.Time = last.Time
	}
	s.record.Positions = append(s.record.Positions, sample)
	s.record.Distance = sample.Pos().Sub(s.record.Start.Pos())
	s.record.Direction = directionOf(s.Axis, s.record.Distance)
}
