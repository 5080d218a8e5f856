package panzoom

import (
	"math"
	"time"
)

const (
	throwWindow       = 10                     // trailing samples examined at release
	maxThrowForce     = 7.0                    // cap on the summed speed
	momentumDistance  = 10.0                   // pixels travelled inside momentumElapsed
	momentumElapsed   = 100 * time.Millisecond // recent-movement window
	throwAngleStep    = 15.0                   // degrees
	defaultThreshold  = 30.0                   // pixels along the gesture axis
	momentumDecay     = 0.95
	momentumStopForce = 0.3
)

// Throw is the release estimate of a gesture.
type Throw struct {
	// Force is the summed pointer speed (px/ms) over the trailing window,
	// capped at 7. It is zero when the pointer paused before release.
	Force float64
	// Angle is the release direction in degrees, a multiple of 15 in (-180, 180].
	// Angles follow screen coordinates: 90 points down.
	Angle float64
}

// Radians returns the release angle in radians.
func (t Throw) Radians() float64 {
	return t.Angle * math.Pi / 180
}

// EstimateThrow computes the force and quantized release angle from the
// tail of a gesture's position history.
func EstimateThrow(positions []Sample) Throw {
	tail := positions
	if len(tail) > throwWindow {
		tail = tail[len(tail)-throwWindow:]
	}
	if len(tail) < 2 {
		return Throw{}
	}

	var force, sumDx, sumDy float64
	for i := 1; i < len(tail); i++ {
		dx := tail[i].X - tail[i-1].X
		dy := tail[i].Y - tail[i-1].Y
		sumDx += dx
		sumDy += dy
		elapsed := float64(tail[i].Time.Sub(tail[i-1].Time)) / float64(time.Millisecond)
		if elapsed > 0 {
			force += math.Hypot(dx, dy) / elapsed
		}
	}
	force = math.Min(force, maxThrowForce)

	if !hasTerminalMomentum(tail) {
		force = 0
	}

	return Throw{Force: force, Angle: quantizeAngle(sumDx, sumDy)}
}

// hasTerminalMomentum walks backwards from the release sample and reports
// whether more than momentumDistance pixels were covered in under
// momentumElapsed. A gesture that paused before release has none.
func hasTerminalMomentum(tail []Sample) bool {
	var elapsed time.Duration
	var travelled float64
	for i := len(tail) - 1; i > 0; i-- {
		elapsed += tail[i].Time.Sub(tail[i-1].Time)
		if elapsed >= momentumElapsed {
			return false
		}
		travelled += math.Hypot(tail[i].X-tail[i-1].X, tail[i].Y-tail[i-1].Y)
		if travelled > momentumDistance {
			return true
		}
	}
	return false
}

// quantizeAngle returns atan2(dy, dx) in degrees rounded to the nearest
// multiple of throwAngleStep, normalized to (-180, 180].
func quantizeAngle(dx, dy float64) float64 {
	deg := math.Atan2(dy, dx) * 180 / math.Pi
	deg = math.Round(deg/throwAngleStep) * throwAngleStep
	if deg <= -180 {
		deg += 360
	}
	if deg == 0 {
		// Normalize -0.
		deg = 0
	}
	return deg
}
