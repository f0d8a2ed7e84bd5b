// Package audio plays the ocean ambience under the viewers. The pad and surf
// brighten as the boat picks up speed.
package audio

import (
	"math"
	"math/rand"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	baseCutoff = 250.0
	maxCutoff  = 1400.0
)

// Gsus2 spread over two octaves.
var padFreqs = []float64{98.00, 110.00, 146.83, 196.00, 220.00}

type Synth struct {
	stream *portaudio.Stream

	time        float64
	filterState [2]float64
	surfState   [2]float64
	delayLine   [2][]float64
	delayHead   int
	noise       *rand.Rand

	mu          sync.Mutex
	speed       float64
	speedSmooth float64
	// maxSpeed is the speed at which the filter is fully open, normally
	// the controller's max velocity.
	maxSpeed float64

	Active bool
}

func NewSynth(maxSpeed float64) *Synth {
	delayLen := int(float64(SampleRate) * 0.45)
	return &Synth{
		maxSpeed:  maxSpeed,
		delayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
		noise:     rand.New(rand.NewSource(7)),
	}
}

// Start opens the default output device. The returned error is safe to log
// and ignore; the viewers run silently without audio.
func (s *Synth) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, s.Process)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}
	s.stream = stream
	s.Active = true
	return nil
}

func (s *Synth) Stop() {
	if !s.Active {
		return
	}
	s.stream.Stop()
	s.stream.Close()
	portaudio.Terminate()
	s.stream = nil
	s.Active = false
}

// SetSpeed feeds the boat's velocity to the synth. Safe to call from the
// render loop while the device callback runs.
func (s *Synth) SetSpeed(velocity float64) {
	s.mu.Lock()
	s.speed = math.Abs(velocity)
	s.mu.Unlock()
}

func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// lpf is a one pole low pass. It returns the output and the new state, which
// are the same value.
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

// cutoffFor maps boat speed to the pad filter cutoff, fully open at
// maxSpeed.
func cutoffFor(speed, maxSpeed float64) float64 {
	if maxSpeed <= 0 {
		return baseCutoff
	}
	t := math.Min(math.Abs(speed)/maxSpeed, 1)
	return baseCutoff + (maxCutoff-baseCutoff)*t
}

// swell is the slow wave envelope of the surf, in [0.2,1].
func swell(t float64) float64 {
	return 0.6 + 0.4*math.Sin(2*math.Pi*t/7)
}

// Process is the portaudio callback.
func (s *Synth) Process(out [][]float32) {
	s.mu.Lock()
	target := s.speed
	s.mu.Unlock()

	s.speedSmooth = s.speedSmooth*0.995 + target*0.005
	cutoff := cutoffFor(s.speedSmooth, s.maxSpeed)
	surfCutoff := cutoff * 0.5
	dt := 1.0 / float64(SampleRate)
	vol := 0.22

	for i := range out[0] {
		var padL, padR float64
		g := 1.0 / float64(len(padFreqs))
		for j, f := range padFreqs {
			lfo := math.Sin(s.time*0.2 + float64(j))
			padL += triangle(s.time*f*0.999) * g * (0.7 + 0.3*lfo)
			padR += triangle(s.time*f*1.001) * g * (0.7 + 0.3*lfo)
		}

		var outL, outR, surfL, surfR float64
		outL, s.filterState[0] = lpf(padL, cutoff, dt, s.filterState[0])
		outR, s.filterState[1] = lpf(padR, cutoff, dt, s.filterState[1])
		surfL, s.surfState[0] = lpf(s.noise.Float64()*2-1, surfCutoff, dt, s.surfState[0])
		surfR, s.surfState[1] = lpf(s.noise.Float64()*2-1, surfCutoff, dt, s.surfState[1])

		sw := swell(s.time)
		dryL := outL*0.6 + surfL*sw*1.5
		dryR := outR*0.6 + surfR*sw*1.5

		delayL := s.delayLine[0][s.delayHead]
		delayR := s.delayLine[1][s.delayHead]
		mixL := dryL + delayL*0.3 + delayR*0.1
		mixR := dryR + delayR*0.3 + delayL*0.1
		s.delayLine[0][s.delayHead] = mixL * 0.6
		s.delayLine[1][s.delayHead] = mixR * 0.6
		s.delayHead = (s.delayHead + 1) % len(s.delayLine[0])

		out[0][i] = float32(mixL * vol)
		out[1][i] = float32(mixR * vol)
		s.time += dt
	}
}
