package panzoom

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	defaultRetryInterval = 200 * time.Millisecond
	defaultRetryAttempts = 30
)

// Config holds the options recognized by Viewer and ZoomController. Start
// from DefaultConfig: the zero value disables bounds, fit and centring.
type Config struct {
	// InBounds enforces the bounds rules on settle.
	InBounds bool
	// FitOnInit scales the content to fit the viewport on attach and resize.
	FitOnInit bool
	// CenterOnInit centres the content in the viewport on attach and resize.
	CenterOnInit bool
	// Disabled suppresses all interaction and initialization.
	Disabled bool

	// ZoomRatioStep is the ratio change of one ZoomIn/ZoomOut.
	ZoomRatioStep float64
	// MinZoomRatio is the floor for both the controller ratio and the
	// viewer scale.
	MinZoomRatio float64
	// InitialZoomRatio is the controller's starting ratio.
	InitialZoomRatio float64

	// Axis is the gesture axis used for direction and the throw threshold.
	Axis Axis
	// Threshold is the release distance along Axis, in pixels, a gesture must
	// exceed to count as a throw.
	Threshold float64
	// PropagateSwipe lets pointer events continue to handlers registered
	// after the viewer on the same source.
	PropagateSwipe bool

	// Inset is how far oversized content may recede from a viewport edge.
	Inset float64
	// AnimationDuration is used for settle and zoom animations. Zero selects
	// DefaultAnimationDuration; a negative value applies changes instantly.
	AnimationDuration time.Duration

	// RetryInterval and RetryAttempts bound the wait for content that has
	// not been laid out yet.
	RetryInterval time.Duration
	RetryAttempts int

	// Logger receives debug output. Nil discards it.
	Logger *zap.Logger
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		InBounds:          true,
		FitOnInit:         true,
		CenterOnInit:      true,
		ZoomRatioStep:     defaultZoomRatioStep,
		MinZoomRatio:      defaultMinZoomRatio,
		InitialZoomRatio:  1,
		Axis:              AxisHorizontal,
		Threshold:         defaultThreshold,
		PropagateSwipe:    true,
		AnimationDuration: DefaultAnimationDuration,
		RetryInterval:     defaultRetryInterval,
		RetryAttempts:     defaultRetryAttempts,
	}
}

// withDefaults replaces unset numeric fields and a nil logger with defaults.
func (c Config) withDefaults() Config {
	if c.ZoomRatioStep == 0 {
		c.ZoomRatioStep = defaultZoomRatioStep
	}
	if c.MinZoomRatio == 0 {
		c.MinZoomRatio = defaultMinZoomRatio
	}
	if c.InitialZoomRatio == 0 {
		c.InitialZoomRatio = 1
	}
	if c.Threshold == 0 {
		c.Threshold = defaultThreshold
	}
	if c.AnimationDuration == 0 {
		c.AnimationDuration = DefaultAnimationDuration
	}
	if c.RetryInterval == 0 {
		c.RetryInterval = defaultRetryInterval
	}
	if c.RetryAttempts == 0 {
		c.RetryAttempts = defaultRetryAttempts
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// Validate reports the first option that cannot be used.
func (c Config) Validate() error {
	if c.ZoomRatioStep < 0 {
		return fmt.Errorf("panzoom: zoom ratio step %v must not be negative", c.ZoomRatioStep)
	}
	if c.MinZoomRatio < 0 {
		return fmt.Errorf("panzoom: min zoom ratio %v must not be negative", c.MinZoomRatio)
	}
	d := c.withDefaults()
	if d.InitialZoomRatio < d.MinZoomRatio {
		return fmt.Errorf("panzoom: initial zoom ratio %v is below min zoom ratio %v",
			d.InitialZoomRatio, d.MinZoomRatio)
	}
	if c.Threshold < 0 {
		return fmt.Errorf("panzoom: threshold %v must not be negative", c.Threshold)
	}
	if c.Inset < 0 {
		return fmt.Errorf("panzoom: inset %v must not be negative", c.Inset)
	}
	if c.Axis != AxisHorizontal && c.Axis != AxisVertical {
		return fmt.Errorf("panzoom: unknown axis %d", c.Axis)
	}
	if c.RetryInterval < 0 || c.RetryAttempts < 0 {
		return fmt.Errorf("panzoom: retry policy %v x %d must not be negative", c.RetryInterval, c.RetryAttempts)
	}
	return nil
}
