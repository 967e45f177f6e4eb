package engine

// Input is the per-session input latch the host feeds between frames.
// Held keys are plain booleans; the pointer delta accumulates until
// the session samples it, and Click is a one-shot latch consumed by
// the next sample. The session owns exactly one Input and reads it
// once per tick; the host mutates it from the same goroutine that
// drives the loop.
type Input struct {
	Forward     bool
	Back        bool
	StrafeLeft  bool
	StrafeRight bool
	TurnLeft    bool
	TurnRight   bool
	Fire        bool // held fire key
	Exit        bool // in-engine exit key

	SelectPistol   bool
	SelectLauncher bool

	pointerDX float64
	clicked   bool
}

// Click latches a one-shot fire click.
func (in *Input) Click() {
	in.clicked = true
}

// AddPointerDelta accumulates horizontal pointer movement.
func (in *Input) AddPointerDelta(dx float64) {
	in.pointerDX += dx
}

// takeClick consumes the click latch.
func (in *Input) takeClick() bool {
	c := in.clicked
	in.clicked = false
	return c
}

// takePointerDelta consumes the accumulated pointer delta.
func (in *Input) takePointerDelta() float64 {
	dx := in.pointerDX
	in.pointerDX = 0
	return dx
}

// Reset clears every held key and transient latch, so a restarted
// session begins clean.
func (in *Input) Reset() {
	*in = Input{}
}
