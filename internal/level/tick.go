package level

// TickClock is a single fixed-rate accumulator: doomgo only ever has
// one rate to schedule (the 35Hz sim tic), driven by accumulated
// wall-clock seconds rather than a cycle counter, since the host's
// render loop runs at an uncorrelated variable framerate.
type TickClock struct {
	rate float64 // tics per second
	accumulator float64
	totalTics uint64
}

// NewTickClock returns a clock that emits ticsPerSecond tics per
// second of accumulated real time.
func NewTickClock(ticsPerSecond int) *TickClock {
	return &TickClock{rate: float64(ticsPerSecond)}
}

// Accumulate adds elapsedSeconds to the internal accumulator and
// returns how many whole sim tics have become due, consuming that much
// accumulated time.
func (c *TickClock) Accumulate(elapsedSeconds float64) int {
	if elapsedSeconds < 0 {
		return 0
	}
	c.accumulator += elapsedSeconds * c.rate
	n := int(c.accumulator)
	c.accumulator -= float64(n)
	c.totalTics += uint64(n)
	return n
}

// TotalTics returns the cumulative number of tics this clock has
// emitted since it was created or last Reset.
func (c *TickClock) TotalTics() uint64 { return c.totalTics }

// Reset restores the clock to its zero state, dropping any partly
// accumulated tic.
func (c *TickClock) Reset() {
	c.accumulator = 0
	c.totalTics = 0
}
