package chirp

import "math"
import "math/rand"

const (
	// carrierMinPitch is the voicing threshold for the cipher carrier.
	carrierMinPitch = 50.0
	carrierLevel    = 0.8
	dataLevel       = 0.15
	encodePeak      = 0.95
)

// Encoder carries the state of an in-progress encode so a host can process a
// bounded number of frames per call and yield between checkpoints.
type Encoder struct {
	c   *Chirp
	src []float64
	out []float64

	frames   []Frame
	analyzed int

	pos        int
	carrier    float64
	dataPhases []float64
	done       bool
}

// NewEncoder prepares a chunked encode of a speech buffer. It fails with
// ErrInputTooShort when the buffer cannot hold one full analysis frame.
func (c *Chirp) NewEncoder(buf []float64) (*Encoder, error) {
	if len(buf) <= c.FFTSize {
		return nil, ErrInputTooShort
	}
	rng := rand.New(rand.NewSource(c.seed()))
	phases := make([]float64, c.NumBands)
	for i := range phases {
		phases[i] = rng.Float64() * 2 * math.Pi
	}
	return &Encoder{
		c:          c,
		src:        buf,
		out:        make([]float64, len(buf)),
		frames:     make([]Frame, 0, c.numFrames(buf)),
		dataPhases: phases,
	}, nil
}

// ProcessNext advances the encode by at most n frames of analysis, or n hops
// worth of synthesized samples once analysis is complete. It reports whether
// work remains.
func (e *Encoder) ProcessNext(n int) bool {
	if e.done {
		return false
	}
	c := e.c
	total := c.numFrames(e.src)
	if e.analyzed < total {
		stop := e.analyzed + n
		if stop > total {
			stop = total
		}
		for ; e.analyzed < stop; e.analyzed++ {
			win := e.src[e.analyzed*c.HopSize : e.analyzed*c.HopSize+c.FFTSize]
			e.frames = append(e.frames, c.analyzeFrame(win))
		}
		return true
	}
	e.synthesize(n * c.HopSize)
	if e.done {
		normalize(e.out, encodePeak)
		return false
	}
	return true
}

// Result returns the cipher buffer once ProcessNext has reported completion,
// nil before that.
func (e *Encoder) Result() []float64 {
	if !e.done {
		return nil
	}
	return e.out
}

// synthesize emits up to the given number of output samples. Each sample
// interpolates pitch, amplitude and band energies between its frame and the
// next, mixes the carrier with the data tones, and applies the interpolated
// amplitude as a single global envelope over both layers.
func (e *Encoder) synthesize(samples int) {
	c := e.c
	rate := float64(c.SampleRate)
	hop := float64(c.HopSize)

	stop := e.pos + samples
	if stop > len(e.out) {
		stop = len(e.out)
	}
	for ; e.pos < stop; e.pos++ {
		frame := e.pos / c.HopSize
		if frame+1 >= len(e.frames) {
			// Trailing tail stays silent.
			e.done = true
			return
		}
		t := float64(e.pos%c.HopSize) / hop
		f0 := &e.frames[frame]
		f1 := &e.frames[frame+1]
		pitch := lerp(f0.Pitch, f1.Pitch, t)
		amplitude := lerp(f0.Amplitude, f1.Amplitude, t)

		// Carrier: the phase accumulator never resets, so voicing gaps
		// do not break phase continuity when voicing resumes.
		var sample float64
		if pitch > carrierMinPitch {
			e.carrier += 2 * math.Pi * pitch * c.PitchMul / rate
			sample = carrierLevel * math.Sin(e.carrier)
		}

		// Data layer: one fixed-frequency tone per band, weighted by the
		// interpolated band energy.
		var data float64
		for b := 0; b < c.NumBands; b++ {
			e.dataPhases[b] += 2 * math.Pi * (c.DataStartFreq + float64(b)*c.DataStep) / rate
			data += math.Sin(e.dataPhases[b]) * lerp(f0.BandEnergies[b], f1.BandEnergies[b], t)
		}

		e.out[e.pos] = (sample + dataLevel*data) * amplitude
	}
	if e.pos >= len(e.out) {
		e.done = true
	}
}
