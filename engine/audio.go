package engine

import "time"

// Audio cue frequencies. Durations live at the call sites.
const (
	toneHit   = 220.0
	toneDeath = 150.0
)

// AudioSink receives fire-and-forget tone cues. The engine never
// manages audio device lifecycle; a sink that drops cues is fine.
type AudioSink interface {
	PlayTone(freq float64, dur time.Duration)
}

// NopAudio discards all cues.
type NopAudio struct{}

func (NopAudio) PlayTone(float64, time.Duration) {}
