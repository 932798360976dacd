package main

import (
	"encoding/binary"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/nesemu/gintendo/apu"
	"github.com/nesemu/gintendo/console"
)

const sampleRate = 44100

// sampleStream adapts an apu.SampleQueue to io.Reader: mono float32
// samples are duplicated to stereo and written little-endian, the
// format NewPlayerF32 expects. Channel synthesis isn't implemented,
// so in practice this streams silence punctuated by whatever DMC
// fetch samples the APU does push.
type sampleStream struct {
	queue   *apu.SampleQueue
	pending []float32
}

func (s *sampleStream) Read(p []byte) (int, error) {
	if len(s.pending) == 0 {
		s.pending = s.queue.Drain()
	}
	n := 0
	for n+8 <= len(p) {
		var v float32
		if len(s.pending) > 0 {
			v = s.pending[0]
			s.pending = s.pending[1:]
		}
		bits := math.Float32bits(v)
		binary.LittleEndian.PutUint32(p[n:], bits)
		binary.LittleEndian.PutUint32(p[n+4:], bits)
		n += 8
	}
	return n, nil
}

func startAudio(bus *console.NesBus) {
	ctx := audio.NewContext(sampleRate)
	player, err := ctx.NewPlayerF32(&sampleStream{queue: bus.Samples()})
	if err != nil {
		return
	}
	player.Play()
}
