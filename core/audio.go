// audio.go - AudioContext: the shared running mix of direct-DAC and PSG
// samples, the handoff point to the external audio output sink.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/vectrexcore
License: GPLv3 or later
*/

package core

// AudioContext accumulates a running mix of direct-DAC samples and PSG
// samples at the host's sample rate. The VIA sync path drops samples into
// this at the PSG tick rate; the external audio backend drains it.
type AudioContext struct {
	SampleRate int
	samples    []float32
}

func NewAudioContext(sampleRate int) *AudioContext {
	return &AudioContext{SampleRate: sampleRate}
}

// AddSample mixes one sample (already summed from the direct-DAC and PSG
// paths) into the running buffer.
func (a *AudioContext) AddSample(v float32) {
	a.samples = append(a.samples, v)
}

// Drain returns and clears the accumulated samples since the last Drain
// call, for the host audio backend to feed to its output device.
func (a *AudioContext) Drain() []float32 {
	out := a.samples
	a.samples = nil
	return out
}

// Pending reports how many samples are buffered without draining them.
func (a *AudioContext) Pending() int {
	return len(a.samples)
}
