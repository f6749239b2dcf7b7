package chirp

import "math"
import "math/rand"
import "sort"

import "github.com/neurlang/gochirp/mel"

const (
	// The carrier is searched for in this window; data tones live above it.
	carrierLowHz  = 600.0
	carrierHighHz = 5000.0
	// carrierThreshold keeps the data layer from being mistaken for pitch.
	carrierThreshold = 0.05

	dataGain       = 80.0
	voicedMinPitch = 60.0
	maxHarmonics   = 40
	harmonicSlots  = 64
	noisePhaseStep = 1000.0
	outputGain     = 0.003
	decodePeak     = 0.85
)

// Decoder carries the state of an in-progress decode: a cipher-side analysis
// pass followed by additive harmonic resynthesis.
type Decoder struct {
	c   *Chirp
	src []float64
	out []float64

	frames    []Frame
	analyzed  int
	pitchHist [5]float64

	pos        int
	harmonics  []float64
	scratch    []float64
	noisePhase float64
	rng        *rand.Rand
	done       bool
}

// NewDecoder prepares a chunked decode of a cipher buffer. It fails with
// ErrInputTooShort when the buffer cannot hold one full analysis frame.
func (c *Chirp) NewDecoder(buf []float64) (*Decoder, error) {
	if len(buf) <= c.FFTSize {
		return nil, ErrInputTooShort
	}
	return &Decoder{
		c:         c,
		src:       buf,
		out:       make([]float64, len(buf)),
		frames:    make([]Frame, 0, c.numFrames(buf)),
		harmonics: make([]float64, harmonicSlots),
		scratch:   make([]float64, c.NumBands),
		rng:       rand.New(rand.NewSource(c.seed())),
	}, nil
}

// ProcessNext advances the decode by at most n frames of analysis, or n hops
// worth of resynthesized samples once analysis is complete. It reports
// whether work remains.
func (d *Decoder) ProcessNext(n int) bool {
	if d.done {
		return false
	}
	c := d.c
	total := c.numFrames(d.src)
	if d.analyzed < total {
		stop := d.analyzed + n
		if stop > total {
			stop = total
		}
		for ; d.analyzed < stop; d.analyzed++ {
			win := d.src[d.analyzed*c.HopSize : d.analyzed*c.HopSize+c.FFTSize]
			d.frames = append(d.frames, d.decodeFrame(win))
		}
		return true
	}
	d.synthesize(n * c.HopSize)
	if d.done {
		normalize(d.out, decodePeak)
		return false
	}
	return true
}

// Result returns the reconstructed speech buffer once ProcessNext has
// reported completion, nil before that.
func (d *Decoder) Result() []float64 {
	if !d.done {
		return nil
	}
	return d.out
}

// decodeFrame re-derives pitch and band energies from one cipher window.
// The magnitude spectrum routine is shared with the speech-side analyzer;
// pitch and banding are recovered differently.
func (d *Decoder) decodeFrame(win []float64) Frame {
	c := d.c
	mags := c.magnitudeSpectrum(win)
	bin := c.binSize()

	// Carrier recovery: strongest bin in the carrier window, refined to
	// sub-bin precision when it clears the threshold.
	lo := int(carrierLowHz / bin)
	hi := int(carrierHighHz / bin)
	if hi >= len(mags) {
		hi = len(mags) - 1
	}
	peakBin := lo
	var peakMag float64
	for k := lo; k <= hi; k++ {
		if mags[k] > peakMag {
			peakMag = mags[k]
			peakBin = k
		}
	}
	var raw float64
	if peakMag > carrierThreshold {
		refined := float64(peakBin)
		if peakBin > 0 && peakBin+1 < len(mags) {
			refined += parabolicOffset(mags[peakBin-1], mags[peakBin], mags[peakBin+1])
		}
		raw = refined * bin / c.PitchMul
	}

	f := Frame{
		BandEnergies: make([]float64, c.NumBands),
		Pitch:        d.smoothPitch(raw),
		// Peak carrier magnitude, recorded as telemetry; resynthesis
		// derives loudness from the band energies instead.
		Amplitude: peakMag,
	}

	// Data recovery: peak within ±2 bins of each band's expected tone,
	// boosted progressively toward the higher bands.
	for b := 0; b < c.NumBands; b++ {
		center := int((c.DataStartFreq + float64(b)*c.DataStep) / bin)
		var peak float64
		for k := center - 2; k <= center+2; k++ {
			if k >= 0 && k < len(mags) && mags[k] > peak {
				peak = mags[k]
			}
		}
		f.BandEnergies[b] = peak * dataGain * (1 + 2*float64(b)/float64(c.NumBands))
	}
	return f
}

// parabolicOffset refines a spectral peak to sub-bin precision from the
// three magnitudes around it. Symmetric neighbors yield exactly 0.
func parabolicOffset(left, center, right float64) float64 {
	den := left - 2*center + right
	if den == 0 {
		return 0
	}
	return 0.5 * (left - right) / den
}

// smoothPitch reports the median of the five most recent raw estimates,
// suppressing single-frame spikes. The history is seeded with zeros.
func (d *Decoder) smoothPitch(raw float64) float64 {
	copy(d.pitchHist[:], d.pitchHist[1:])
	d.pitchHist[4] = raw

	sorted := d.pitchHist
	sort.Float64s(sorted[:])
	return sorted[2]
}

// synthesize emits up to the given number of output samples using the same
// frame interpolation scheme as the encoder. Voiced stretches sum harmonics
// of the recovered pitch weighted by the mel-mapped band energies; unvoiced
// stretches fall back to band-shaped noise.
func (d *Decoder) synthesize(samples int) {
	c := d.c
	rate := float64(c.SampleRate)
	hop := float64(c.HopSize)
	bands := c.melBands()
	melLo := mel.HzToMel(mel.MinFreq)
	melHi := mel.HzToMel(c.SpeechMaxFreq)

	stop := d.pos + samples
	if stop > len(d.out) {
		stop = len(d.out)
	}
	for ; d.pos < stop; d.pos++ {
		frame := d.pos / c.HopSize
		if frame+1 >= len(d.frames) {
			d.done = true
			return
		}
		t := float64(d.pos%c.HopSize) / hop
		f0 := &d.frames[frame]
		f1 := &d.frames[frame+1]
		pitch := lerp(f0.Pitch, f1.Pitch, t)
		for b := range d.scratch {
			d.scratch[b] = lerp(f0.BandEnergies[b], f1.BandEnergies[b], t)
		}

		var sum float64
		if pitch > voicedMinPitch {
			for h := 1; h <= maxHarmonics; h++ {
				freq := float64(h) * pitch
				if freq > c.SpeechMaxFreq {
					break
				}
				d.harmonics[h] = math.Mod(d.harmonics[h]+2*math.Pi*freq/rate, 2*math.Pi)
				sum += math.Sin(d.harmonics[h]) * harmonicAmplitude(freq, d.scratch, melLo, melHi)
			}
		} else {
			// One uniform random value per sample; noisePhase only
			// diversifies phase, it does not shape the spectrum.
			r := d.rng.Float64()
			var noise float64
			for b := 0; b < c.NumBands; b += 2 {
				noise += math.Sin(float64(d.pos)*bands[b].Center*0.001+d.noisePhase) * d.scratch[b] * r
			}
			sum = 0.5 * noise
			d.noisePhase += noisePhaseStep
		}

		d.out[d.pos] = sum * outputGain
	}
	if d.pos >= len(d.out) {
		d.done = true
	}
}

// harmonicAmplitude maps a harmonic frequency onto the continuous mel band
// axis and linearly interpolates the two nearest band energies. Frequencies
// outside the band range contribute nothing.
func harmonicAmplitude(freq float64, energies []float64, melLo, melHi float64) float64 {
	pos := (mel.HzToMel(freq) - melLo) / (melHi - melLo) * float64(len(energies))
	if pos < 0 || pos >= float64(len(energies)) {
		return 0
	}
	i := int(pos)
	frac := pos - float64(i)
	if i+1 < len(energies) {
		return energies[i]*(1-frac) + energies[i+1]*frac
	}
	return energies[i]
}
