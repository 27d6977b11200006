package core

import "time"

// Clock measures wall time for the frame loop.
type Clock struct {
	startTime time.Time
	elapsed   float64
}

func NewClock() *Clock {
	return &Clock{}
}

// Updates the provided clock. Should be called just before checking elapsed time.
// Has no effect on non-started clocks.
func (c *Clock) Update() {
	if !c.startTime.IsZero() {
		c.elapsed = time.Since(c.startTime).Seconds()
	}
}

// Starts the provided clock. Resets elapsed time.
func (c *Clock) Start() {
	c.startTime = time.Now()
	c.elapsed = 0
}

// Stops the provided clock. Does not reset elapsed time.
func (c *Clock) Stop() {
	c.startTime = time.Time{}
}

// Elapsed returns the seconds since Start as of the last Update.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

// FrameClock accumulates the deltas handed to it by the host, one tick per
// frame. It never reads wall time, so effects stay deterministic under test.
type FrameClock struct {
	elapsed float64
	frames  uint64
}

func NewFrameClock() *FrameClock {
	return &FrameClock{}
}

// Tick advances the clock by delta seconds. Negative deltas are ignored so the
// elapsed time stays monotonic.
func (fc *FrameClock) Tick(delta float64) {
	if delta > 0 {
		fc.elapsed += delta
	}
	fc.frames++
}

func (fc *FrameClock) Elapsed() float64 {
	return fc.elapsed
}

func (fc *FrameClock) Frames() uint64 {
	return fc.frames
}

func (fc *FrameClock) Reset() {
	fc.elapsed = 0
	fc.frames = 0
}
