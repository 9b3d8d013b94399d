//go:build !headless

// audio_oto.go - OTO v3 audio output: drains the AudioContext's mixed
// samples and feeds them to the host sound device.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/vectrexcore
License: GPLv3 or later
*/

package main

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/intuitionamiga/vectrexcore/core"
)

type otoOutput struct {
	ctx    *oto.Context
	player *oto.Player

	mu      sync.Mutex
	audio   *core.AudioContext
	pending []float32
}

func newOtoOutput(audio *core.AudioContext) (*otoOutput, error) {
	op := &oto.NewContextOptions{
		SampleRate:   audio.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	o := &otoOutput{ctx: ctx, audio: audio}
	o.player = ctx.NewPlayer(o)
	o.player.Play()
	return o, nil
}

// Read implements io.Reader for the oto player: it drains whatever the
// emulation produced since the last callback and pads with silence when the
// core is behind the sound card.
func (o *otoOutput) Read(p []byte) (int, error) {
	o.mu.Lock()
	if drained := o.audio.Drain(); len(drained) > 0 {
		o.pending = append(o.pending, drained...)
	}
	numSamples := len(p) / 4
	for i := 0; i < numSamples; i++ {
		var s float32
		if i < len(o.pending) {
			s = o.pending[i]
		}
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	if numSamples >= len(o.pending) {
		o.pending = o.pending[:0]
	} else {
		o.pending = o.pending[numSamples:]
	}
	o.mu.Unlock()
	return numSamples * 4, nil
}
