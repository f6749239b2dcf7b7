package chirp

import "math"
import "math/cmplx"
import "path/filepath"
import "testing"

import "github.com/mjibson/go-dsp/fft"

func maxAbs(buf []float64) float64 {
	var max float64
	for _, v := range buf {
		if v > max {
			max = v
		} else if -v > max {
			max = -v
		}
	}
	return max
}

// dominantFrequency measures the strongest spectral component of a buffer
// segment inside [lo, hi] Hz with an independent FFT.
func dominantFrequency(t *testing.T, buf []float64, rate int, lo, hi float64) float64 {
	t.Helper()
	const n = 16384
	if len(buf) < n {
		t.Fatalf("buffer too short for measurement: %d", len(buf))
	}
	spectrum := fft.FFTReal(buf[:n])
	binSize := float64(rate) / float64(n)

	best := int(lo / binSize)
	var bestMag float64
	for k := int(lo / binSize); k <= int(hi/binSize) && k < len(spectrum)/2; k++ {
		if mag := cmplx.Abs(spectrum[k]); mag > bestMag {
			bestMag = mag
			best = k
		}
	}
	return float64(best) * binSize
}

func TestEncodePreservesLengthAndPeak(t *testing.T) {
	c := NewChirp()
	c.Seed = 42
	src := sine(150, c.SampleRate, c.SampleRate/2, 0.5)

	out, err := c.Encode(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(src) {
		t.Fatalf("cipher length %d, want %d", len(out), len(src))
	}
	if peak := maxAbs(out); math.Abs(peak-0.95) > 1e-9 {
		t.Errorf("cipher peak %g, want 0.95", peak)
	}
}

func TestDecodePreservesLengthAndPeak(t *testing.T) {
	c := NewChirp()
	c.Seed = 42
	src := sine(150, c.SampleRate, c.SampleRate/2, 0.5)

	cipher, err := c.Encode(src)
	if err != nil {
		t.Fatal(err)
	}
	out, err := c.Decode(cipher)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(cipher) {
		t.Fatalf("decoded length %d, want %d", len(out), len(cipher))
	}
	if peak := maxAbs(out); math.Abs(peak-0.85) > 1e-9 {
		t.Errorf("decoded peak %g, want 0.85", peak)
	}
}

func TestEncodeSilence(t *testing.T) {
	c := NewChirp()
	c.Seed = 42
	out, err := c.Encode(make([]float64, c.SampleRate/2))
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out {
		if v != 0 {
			t.Fatalf("silent input produced nonzero sample %g at %d", v, i)
		}
	}
}

func TestEncodeTooShort(t *testing.T) {
	c := NewChirp()
	if _, err := c.Encode(make([]float64, c.FFTSize)); err != ErrInputTooShort {
		t.Errorf("got %v, want ErrInputTooShort", err)
	}
	if _, err := c.NewEncoder(nil); err != ErrInputTooShort {
		t.Errorf("got %v, want ErrInputTooShort", err)
	}
}

func TestChunkSizeDoesNotChangeOutput(t *testing.T) {
	c := NewChirp()
	c.Seed = 42
	src := sine(150, c.SampleRate, c.SampleRate/2, 0.5)

	whole, err := c.Encode(src)
	if err != nil {
		t.Fatal(err)
	}

	e, err := c.NewEncoder(src)
	if err != nil {
		t.Fatal(err)
	}
	for e.ProcessNext(1) {
	}
	chunked := e.Result()

	if len(whole) != len(chunked) {
		t.Fatalf("length mismatch: %d vs %d", len(whole), len(chunked))
	}
	for i := range whole {
		if whole[i] != chunked[i] {
			t.Fatalf("sample %d differs: %g vs %g", i, whole[i], chunked[i])
		}
	}
}

func TestEndToEnd(t *testing.T) {
	c := NewChirp()
	c.Seed = 42
	src := sine(150, c.SampleRate, c.SampleRate, 0.5)

	cipher, err := c.Encode(src)
	if err != nil {
		t.Fatal(err)
	}

	// The carrier must sit near voicePitch*PitchMul inside the carrier window.
	carrier := dominantFrequency(t, cipher[4096:], c.SampleRate, 600, 5000)
	want := 150 * c.PitchMul
	if math.Abs(carrier-want)/want > 0.03 {
		t.Errorf("cipher carrier at %g Hz, want about %g Hz", carrier, want)
	}

	out, err := c.Decode(cipher)
	if err != nil {
		t.Fatal(err)
	}

	// Early frames are still under the zero-seeded pitch median; measure
	// past them.
	voice := dominantFrequency(t, out[8192:], c.SampleRate, 70, 800)
	if math.Abs(voice-150)/150 > 0.10 {
		t.Errorf("decoded fundamental at %g Hz, want within 10%% of 150 Hz", voice)
	}
}

func TestImagePacksBandEnergies(t *testing.T) {
	c := NewChirp()
	src := sine(150, c.SampleRate, c.FFTSize+4*c.HopSize, 0.5)
	frames, err := c.Analyze(src)
	if err != nil {
		t.Fatal(err)
	}

	img := c.Image(frames)
	if len(img) != len(frames)*c.NumBands {
		t.Fatalf("image has %d cells, want %d", len(img), len(frames)*c.NumBands)
	}
	var nonzero bool
	for _, v := range img {
		if v != 0 {
			nonzero = true
			break
		}
	}
	if !nonzero {
		t.Error("image of a loud sine is all zero")
	}
}

func TestWavRoundTrip(t *testing.T) {
	c := NewChirp()
	src := sine(440, c.SampleRate, c.SampleRate/4, 0.5)

	name := filepath.Join(t.TempDir(), "tone.wav")
	if err := SaveWav(name, src, c.SampleRate); err != nil {
		t.Fatal(err)
	}

	loaded, sr, err := LoadWavSampleRate(name)
	if err != nil {
		t.Fatal(err)
	}
	if int(sr) != c.SampleRate {
		t.Errorf("sample rate %d, want %d", sr, c.SampleRate)
	}
	if len(loaded) != len(src) {
		t.Fatalf("loaded %d samples, want %d", len(loaded), len(src))
	}
	for i := range src {
		if math.Abs(loaded[i]-src[i]) > 1e-2 {
			t.Fatalf("sample %d differs beyond 16-bit quantization: %g vs %g", i, loaded[i], src[i])
		}
	}
}
