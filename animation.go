package panzoom

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultAnimationDuration is the duration used by Animate.
const DefaultAnimationDuration = 150 * time.Millisecond

// Target selects which transform components an animation drives. Components
// that are not set are left untouched by the animation.
type Target struct {
	Translation    Vec2
	Scale          float64
	hasTranslation bool
	hasScale       bool
}

// TranslateTo targets the translation only.
func TranslateTo(v Vec2) Target {
	return Target{Translation: v, hasTranslation: true}
}

// ScaleTo targets the scale only.
func ScaleTo(s float64) Target {
	return Target{Scale: s, hasScale: true}
}

// TransformTo targets both translation and scale.
func TransformTo(t Transform) Target {
	return Target{Translation: t.Translation, Scale: t.Scale, hasTranslation: true, hasScale: true}
}

// tweens holds the in-flight interpolation of one AnimateTo call.
// A nil tween is a component not being animated.
type tweens struct {
	x, y, scale *gween.Tween
	target      Target
	done        func(Transform)
}

// momentum is the state of a throw continuation.
type momentum struct {
	force       float64
	dir         Vec2
	outOfBounds func(Vec2) bool
	done        func(Transform)
}

// Animator drives a Transform either immediately, through linear
// interpolation over a duration, or by decaying throw momentum.
// There is no global animation manager: the owner calls Update once per frame.
type Animator struct {
	// MinScale is the floor every written scale is clamped to.
	MinScale float64
	// Duration is the default animation duration used by Animate.
	Duration time.Duration

	state    *Transform
	tweens   *tweens
	momentum *momentum
}

// NewAnimator creates an Animator writing into state.
func NewAnimator(state *Transform, minScale float64) *Animator {
	a := &Animator{
		MinScale: minScale,
		Duration: DefaultAnimationDuration,
		state:    state,
	}
	state.Scale = a.clampScale(state.Scale)
	return a
}

// Transform returns the current transform value.
func (a *Animator) Transform() Transform {
	return *a.state
}

// Active reports whether an animation or momentum continuation is running.
func (a *Animator) Active() bool {
	return a.tweens != nil || a.momentum != nil
}

// Force returns the remaining momentum force, or 0 when no throw is running.
func (a *Animator) Force() float64 {
	if a.momentum == nil {
		return 0
	}
	return a.momentum.force
}

// Destination returns the transform the running animation will land on, or
// the current transform when no animation is running. Momentum has no fixed
// destination and reports the current transform.
func (a *Animator) Destination() Transform {
	t := *a.state
	if a.tweens != nil {
		if a.tweens.target.hasTranslation {
			t.Translation = a.tweens.target.Translation
		}
		if a.tweens.target.hasScale {
			t.Scale = a.clampScale(a.tweens.target.Scale)
		}
	}
	return t
}

// Cancel stops any running animation or momentum. The transform keeps the
// value it had at the last tick and no completion callback fires.
func (a *Animator) Cancel() {
	a.tweens = nil
	a.momentum = nil
}

// SetTranslation overwrites the translation without interpolation.
func (a *Animator) SetTranslation(v Vec2) {
	a.state.Translation = v
}

// SetScale overwrites the scale without interpolation, clamped to MinScale.
func (a *Animator) SetScale(s float64) {
	a.state.Scale = a.clampScale(s)
}

// Set overwrites both components without interpolation.
func (a *Animator) Set(t Transform) {
	a.SetTranslation(t.Translation)
	a.SetScale(t.Scale)
}

// Animate animates to target over the default Duration.
func (a *Animator) Animate(target Target, done func(Transform)) {
	a.AnimateTo(target, a.Duration, done)
}

// AnimateTo replaces any running animation with a linear interpolation from
// the current values to target over d. A non-positive d applies the target
// and calls done before returning.
func (a *Animator) AnimateTo(target Target, d time.Duration, done func(Transform)) {
	a.Cancel()

	if d <= 0 {
		a.apply(target)
		if done != nil {
			done(*a.state)
		}
		return
	}

	secs := float32(d.Seconds())
	tw := &tweens{target: target, done: done}
	if target.hasTranslation {
		tw.x = gween.New(float32(a.state.Translation.X), float32(target.Translation.X), secs, ease.Linear)
		tw.y = gween.New(float32(a.state.Translation.Y), float32(target.Translation.Y), secs, ease.Linear)
	}
	if target.hasScale {
		tw.scale = gween.New(float32(a.state.Scale), float32(target.Scale), secs, ease.Linear)
	}
	a.tweens = tw
}

// Throw starts a momentum continuation along th's angle. Each tick moves the
// translation by force*3*(round(scale*0.3)+1) pixels and decays force by 0.95.
// The throw ends, calling done with the final transform, once force drops to
// 0.3 or below or outOfBounds reports the next candidate position as outside
// the bounds (the candidate is then not applied).
func (a *Animator) Throw(th Throw, outOfBounds func(Vec2) bool, done func(Transform)) {
	a.Cancel()
	if th.Force <= momentumStopForce {
		if done != nil {
			done(*a.state)
		}
		return
	}
	a.momentum = &momentum{
		force:       th.Force,
		dir:         angleDir(th.Radians()),
		outOfBounds: outOfBounds,
		done:        done,
	}
}

// Update advances the running animation by dt seconds, or the running throw
// by one step.
func (a *Animator) Update(dt float32) {
	switch {
	case a.tweens != nil:
		a.updateTweens(dt)
	case a.momentum != nil:
		a.stepMomentum()
	}
}

func (a *Animator) updateTweens(dt float32) {
	tw := a.tweens
	allDone := true
	if tw.x != nil {
		vx, doneX := tw.x.Update(dt)
		vy, doneY := tw.y.Update(dt)
		a.state.Translation = Vec2{float64(vx), float64(vy)}
		allDone = doneX && doneY
	}
	if tw.scale != nil {
		v, done := tw.scale.Update(dt)
		a.state.Scale = a.clampScale(float64(v))
		allDone = allDone && done
	}
	if !allDone {
		return
	}

	// Tweens run in float32; land exactly on the requested values.
	a.apply(tw.target)
	a.tweens = nil
	if tw.done != nil {
		tw.done(*a.state)
	}
}

func (a *Animator) stepMomentum() {
	m := a.momentum
	factor := 3 * (math.Round(a.state.Scale*0.3) + 1)
	candidate := a.state.Translation.Add(m.dir.Mul(m.force * factor))
	if m.outOfBounds != nil && m.outOfBounds(candidate) {
		a.finishMomentum()
		return
	}
	a.state.Translation = candidate
	m.force *= momentumDecay
	if m.force <= momentumStopForce {
		a.finishMomentum()
	}
}

// angleDir returns the unit vector for rad. Components that are zero up to
// rounding are made exactly zero so a throw along an axis has no drift on the
// other one.
func angleDir(rad float64) Vec2 {
	sin, cos := math.Sincos(rad)
	return Vec2{snapZero(cos), snapZero(sin)}
}

func snapZero(v float64) float64 {
	if math.Abs(v) < 1e-12 {
		return 0
	}
	return v
}

func (a *Animator) finishMomentum() {
	m := a.momentum
	a.momentum = nil
	if m.done != nil {
		m.done(*a.state)
	}
}

func (a *Animator) apply(target Target) {
	if target.hasTranslation {
		a.state.Translation = target.Translation
	}
	if target.hasScale {
		a.state.Scale = a.clampScale(target.Scale)
	}
}

func (a *Animator) clampScale(s float64) float64 {
	if s < a.MinScale {
		return a.MinScale
	}
	return s
}
