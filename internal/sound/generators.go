package sound

import (
	"math"

	"github.com/gopxl/beep"
)

// ScreamGenerator synthesizes a falling, noisy sawtooth yell. The pitch
// glides from 900Hz down to 250Hz over two thirds of a second.
type ScreamGenerator struct {
	sr    beep.SampleRate
	pos   int
	phase float64
	seed  int64
}

// NewScreamGenerator creates a scream generator. The seed drives the noise
// component so that repeated screams differ slightly.
func NewScreamGenerator(sr beep.SampleRate, seed int64) *ScreamGenerator {
	return &ScreamGenerator{sr: sr, seed: seed & 0x7fffffff}
}

func (g *ScreamGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		freq := 250 + 650*math.Exp(-t*2.5)
		// Vibrato makes it sound less like a siren
		freq *= 1 + 0.04*math.Sin(2*math.Pi*7*t)

		saw := 2*g.phase - 1

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		// Quick attack, slow release
		envelope := math.Min(t/0.03, 1) * math.Exp(-t*2)

		sample := envelope * (0.22*saw + 0.08*noise)

		samples[i][0] = sample
		samples[i][1] = sample

		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *ScreamGenerator) Err() error {
	return nil
}

// HopGenerator synthesizes a short rising sine blip.
type HopGenerator struct {
	sr    beep.SampleRate
	pos   int
	phase float64
}

// NewHopGenerator creates a hop generator.
func NewHopGenerator(sr beep.SampleRate) *HopGenerator {
	return &HopGenerator{sr: sr}
}

func (g *HopGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		freq := 440 + 4000*t
		envelope := math.Exp(-t * 25)
		sample := 0.2 * envelope * math.Sin(2*math.Pi*g.phase)

		samples[i][0] = sample
		samples[i][1] = sample

		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *HopGenerator) Err() error {
	return nil
}
