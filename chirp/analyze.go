package chirp

import "math"

// Frame holds the analysis of one sample window: banded spectral energy,
// pitch in Hz (0 = unvoiced or silent), and RMS amplitude. The decoder
// produces frames of the same shape from its own analysis pass over the
// cipher buffer.
type Frame struct {
	BandEnergies []float64
	Pitch        float64
	Amplitude    float64
}

// Analyze runs the frame analyzer over a speech buffer and returns one Frame
// per analysis window.
func (c *Chirp) Analyze(buf []float64) ([]Frame, error) {
	if len(buf) <= c.FFTSize {
		return nil, ErrInputTooShort
	}
	n := c.numFrames(buf)
	frames := make([]Frame, 0, n)
	for i := 0; i < n; i++ {
		win := buf[i*c.HopSize : i*c.HopSize+c.FFTSize]
		frames = append(frames, c.analyzeFrame(win))
	}
	return frames, nil
}

func (c *Chirp) analyzeFrame(win []float64) Frame {
	f := Frame{
		BandEnergies: make([]float64, c.NumBands),
		Amplitude:    rms(win),
	}
	f.Pitch = c.detectPitch(win, f.Amplitude)

	mags := c.magnitudeSpectrum(win)
	bin := c.binSize()
	for b, band := range c.melBands() {
		lo := int(band.Start / bin)
		hi := int(band.End / bin)
		if hi >= len(mags) {
			hi = len(mags) - 1
		}
		// Peak rather than average: keeps formant peaks sharp.
		var peak float64
		for k := lo; k <= hi; k++ {
			if mags[k] > peak {
				peak = mags[k]
			}
		}
		f.BandEnergies[b] = peak
	}
	return f
}

// silenceRMS gates pitch detection: windows quieter than this are unvoiced.
const silenceRMS = 0.01

// detectPitch estimates the fundamental by time-domain autocorrelation over
// candidate periods for 70..800 Hz, stepping the inner sum by 2 samples. The
// correlation sum is deliberately not normalized by lag length or energy.
func (c *Chirp) detectPitch(win []float64, amplitude float64) float64 {
	if amplitude < silenceRMS {
		return 0
	}
	minPeriod := c.SampleRate / 800
	maxPeriod := c.SampleRate / 70

	var best int
	var bestCorr float64
	for period := minPeriod; period <= maxPeriod; period++ {
		var corr float64
		for i := 0; i+period < len(win); i += 2 {
			corr += win[i] * win[i+period]
		}
		if corr > bestCorr {
			bestCorr = corr
			best = period
		}
	}
	if best == 0 {
		return 0
	}
	return float64(c.SampleRate) / float64(best)
}

// magnitudeSpectrum computes a Hann-windowed direct DFT magnitude for bins
// 0..FFTSize/2. The inner sum steps by 2 samples and skips near-zero samples,
// trading spectral accuracy for speed.
func (c *Chirp) magnitudeSpectrum(win []float64) []float64 {
	n := c.FFTSize
	windowed := make([]float64, n)
	for i := 0; i < n && i < len(win); i++ {
		windowed[i] = win[i] * 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}

	mags := make([]float64, n/2)
	for k := range mags {
		w := -2 * math.Pi * float64(k) / float64(n)
		var re, im float64
		for i := 0; i < n; i += 2 {
			v := windowed[i]
			if v < 1e-9 && v > -1e-9 {
				continue
			}
			angle := w * float64(i)
			re += v * math.Cos(angle)
			im += v * math.Sin(angle)
		}
		mags[k] = math.Sqrt(re*re + im*im)
	}
	return mags
}

// rms is the root mean square of the raw, unwindowed sample window.
func rms(win []float64) float64 {
	var sum float64
	for _, v := range win {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(win)))
}
