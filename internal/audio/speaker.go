// Package audio synthesizes the game's sound effects and plays them
// through the system speaker. Every effect is generated, no sample
// assets. Events carry a stereo pan (impact x) and a volume (impact
// speed) from the engine.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/mkovalev/tui-smashout/internal/games/smashout"
)

const sampleRate = beep.SampleRate(48000)

// Speaker implements smashout.SoundSink on the local audio device.
// Play is non-blocking: each event adds a short finite streamer to the
// shared mixer and returns.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSpeaker creates an uninitialized speaker. Call Initialize before
// the first Play; Play on an uninitialized speaker is a silent no-op.
func NewSpeaker() *Speaker {
	return &Speaker{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device and starts the mixer.
func (s *Speaker) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Cleanup silences the mixer. The device itself stays open; beep
// provides no speaker close.
func (s *Speaker) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	s.mixer.Clear()
	s.initialized = false
}

// Play queues one synthesized effect. Safe to call from the game loop;
// never blocks on the audio device.
func (s *Speaker) Play(e smashout.SoundEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}

	// Quiet events still get a floor so every impact is audible.
	vol := 0.3 + 0.7*e.Volume

	var streamer beep.Streamer
	switch e.Kind {
	case smashout.SoundBatHit:
		streamer = take(60, newTone(220, 0, vol*0.5, e.Pan, 20))
	case smashout.SoundBrickHit:
		streamer = take(50, newTone(440, 0, vol*0.4, e.Pan, 30))
	case smashout.SoundBrickBreak:
		streamer = take(250, newCrack(e.Pan, vol*0.5))
	case smashout.SoundBallHit:
		streamer = take(40, newTone(330, 0, vol*0.35, e.Pan, 35))
	case smashout.SoundDrop:
		streamer = take(300, newTone(300, -500, 0.5, e.Pan, 6))
	case smashout.SoundLaserFire:
		streamer = take(120, newTone(600, 3000, vol*0.3, e.Pan, 15))
	case smashout.SoundBonus:
		streamer = take(200, newTone(523, 400, 0.4, e.Pan, 8))
	case smashout.SoundInvertTick:
		streamer = take(30, newTone(880, 0, 0.3, e.Pan, 40))
	default:
		return
	}
	s.mixer.Add(streamer)
}

// take cuts a generator to a millisecond duration.
func take(ms int, g beep.Streamer) beep.Streamer {
	return beep.Take(sampleRate.N(time.Millisecond*time.Duration(ms)), g)
}

// panGains converts a 0..1 pan position to constant-power stereo gains.
func panGains(pan float64) (left, right float64) {
	a := pan * math.Pi / 2
	return math.Cos(a), math.Sin(a)
}

// toneGenerator produces a sine tone with a linear frequency sweep and
// an exponential amplitude decay, panned across the stereo field.
type toneGenerator struct {
	freq  float64 // Starting frequency in Hz
	sweep float64 // Hz per second, may be negative
	amp   float64
	decay float64 // Envelope decay rate per second
	left  float64
	right float64
	pos   int
}

func newTone(freq, sweep, amp, pan, decay float64) *toneGenerator {
	l, r := panGains(pan)
	return &toneGenerator{
		freq:  freq,
		sweep: sweep,
		amp:   amp,
		decay: decay,
		left:  l,
		right: r,
	}
}

func (g *toneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(sampleRate)

		freq := g.freq + g.sweep*t
		if freq < 40 {
			freq = 40
		}
		envelope := math.Exp(-t * g.decay)
		sample := g.amp * envelope * math.Sin(2*math.Pi*freq*t)

		samples[i][0] = sample * g.left
		samples[i][1] = sample * g.right
		g.pos++
	}
	return len(samples), true
}

func (g *toneGenerator) Err() error {
	return nil
}

// crackGenerator produces the brick-break crackle: filtered noise over
// a low rumble with a fast decay.
type crackGenerator struct {
	amp   float64
	left  float64
	right float64
	pos   int
	seed  int64
}

func newCrack(pan, amp float64) *crackGenerator {
	l, r := panGains(pan)
	return &crackGenerator{
		amp:   amp,
		left:  l,
		right: r,
		seed:  time.Now().UnixNano(),
	}
}

func (g *crackGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(sampleRate)

		envelope := math.Exp(-t * 10)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		rumble := 0.3 * math.Sin(2*math.Pi*90*t)
		sample := g.amp * envelope * (0.4*noise + rumble)

		samples[i][0] = sample * g.left
		samples[i][1] = sample * g.right
		g.pos++
	}
	return len(samples), true
}

func (g *crackGenerator) Err() error {
	return nil
}
