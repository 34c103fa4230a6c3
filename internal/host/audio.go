package host

import (
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// sampleRate/channels match vanilla's mixer output: 11025Hz mono, upsampled by oto's
// player to whatever rate the host device actually wants.
const (
	sampleRate = 11025
	channels = 1
)

// audioSink feeds doomgo's mixed PCM samples to an oto.Player through
// the io.Reader contract oto.Context.NewPlayer expects, the same
// Reader-backed adapter shape as the oto-examples repo's OtoPlayer:
// oto pulls on its own goroutine, the sim pushes from the tick loop,
// and a mutex-guarded ring buffer decouples the two instead of the
// chip-pointer/atomic trick that repo uses for its register-mapped
// sound chip (doomgo has no equivalent single source of truth to load
// atomically, so a plain guarded slice stands in for it).
type audioSink struct {
	ctx *oto.Context
	player *oto.Player

	mu sync.Mutex
	buf []float32
}

func newAudioSink() (*audioSink, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate: sampleRate,
		ChannelCount: channels,
		Format: oto.FormatFloat32LE,
		BufferSize: 4,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	s := &audioSink{ctx: ctx}
	s.player = ctx.NewPlayer(s)
	s.player.Play()
	return s, nil
}

// queue appends mixed samples to the ring buffer; Read drains it at
// whatever pace oto's device thread wants.
func (s *audioSink) queue(samples []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = append(s.buf, samples...)

	// Cap backlog at roughly a quarter second so a paused/minimized
	// window doesn't grow this buffer unbounded.
	max := sampleRate / 4
	if len(s.buf) > max {
		s.buf = s.buf[len(s.buf)-max:]
	}
}

// Read implements io.Reader for oto.Context.NewPlayer: p is a byte
// view over a float32 slice, 4 bytes per sample.
func (s *audioSink) Read(p []byte) (int, error) {
	n := len(p) / 4
	s.mu.Lock()
	avail := len(s.buf)
	if n > avail {
		n = avail
	}
	var take []float32
	if n > 0 {
		take = s.buf[:n]
		s.buf = s.buf[n:]
	}
	s.mu.Unlock()

	for i, v := range take {
		putFloat32LE(p[i*4:i*4+4], v)
	}
	for i := len(take) * 4; i < len(p); i++ {
		p[i] = 0
	}
	return len(p), nil
}

func (s *audioSink) close() {
	if s.player != nil {
		s.player.Close()
	}
}

func putFloat32LE(b []byte, v float32) {
	bits := math.Float32bits(v)
	b[0] = byte(bits)
	b[1] = byte(bits >> 8)
	b[2] = byte(bits >> 16)
	b[3] = byte(bits >> 24)
}
