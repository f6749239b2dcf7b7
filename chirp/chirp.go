package chirp

import "errors"
import "time"

import "github.com/neurlang/gochirp/mel"

// Chirp represents the configuration for the bird-call speech cipher.
type Chirp struct {
	SampleRate int
	FFTSize    int
	HopSize    int
	NumBands   int
	// SpeechMaxFreq is the top of the speech band in Hz.
	SpeechMaxFreq float64
	// DataStartFreq and DataStep place the per-band data tones in Hz.
	DataStartFreq float64
	DataStep      float64
	// PitchMul shifts voice pitch into the carrier's operating range.
	PitchMul float64
	// Seed fixes the initial data-band phases and the unvoiced noise
	// source, making output reproducible. Zero seeds from the clock.
	Seed int64
	// YReverse flips spectrogram images vertically.
	YReverse bool

	bands []mel.Band
}

// NewChirp creates a new Chirp instance with default values.
func NewChirp() *Chirp {
	return &Chirp{
		SampleRate:    44100,
		FFTSize:       2048,
		HopSize:       512,
		NumBands:      20,
		SpeechMaxFreq: 4000,
		DataStartFreq: 5200,
		DataStep:      150,
		PitchMul:      8,
	}
}

var ErrFileNotLoaded = errors.New("wavNotLoaded")
var ErrInputTooShort = errors.New("inputTooShort")

// Encode disguises a speech buffer as a bird-call waveform of the same
// length. The input must be longer than one analysis frame.
func (c *Chirp) Encode(buf []float64) ([]float64, error) {
	e, err := c.NewEncoder(buf)
	if err != nil {
		return nil, err
	}
	for e.ProcessNext(chunkFrames) {
	}
	return e.Result(), nil
}

// Decode reconstructs speech from a cipher buffer of the same length.
func (c *Chirp) Decode(buf []float64) ([]float64, error) {
	d, err := c.NewDecoder(buf)
	if err != nil {
		return nil, err
	}
	for d.ProcessNext(chunkFrames) {
	}
	return d.Result(), nil
}

// chunkFrames is the checkpoint interval used by the one-shot Encode and
// Decode calls. Chunking is a scheduling convenience only; state is carried
// explicitly between checkpoints, so the chunk size never changes output.
const chunkFrames = 64

// EncodeWav ciphers a speech WAV file into a bird-call WAV file.
func (c *Chirp) EncodeWav(inputFile, outputFile string) error {
	buf, sr := loadwav(inputFile)
	if len(buf) == 0 {
		return ErrFileNotLoaded
	}
	if sr != 0 {
		c.SampleRate = int(sr)
	}
	out, err := c.Encode(buf)
	if err != nil {
		return err
	}
	return dumpwav(outputFile, out, c.SampleRate)
}

// EncodeFlac ciphers a speech FLAC file into a bird-call WAV file.
func (c *Chirp) EncodeFlac(inputFile, outputFile string) error {
	buf, sr := loadflac(inputFile)
	if len(buf) == 0 {
		return ErrFileNotLoaded
	}
	if sr != 0 {
		c.SampleRate = int(sr)
	}
	out, err := c.Encode(buf)
	if err != nil {
		return err
	}
	return dumpwav(outputFile, out, c.SampleRate)
}

// DecodeWav reconstructs speech from a bird-call WAV file into a WAV file.
func (c *Chirp) DecodeWav(inputFile, outputFile string) error {
	buf, sr := loadwav(inputFile)
	if len(buf) == 0 {
		return ErrFileNotLoaded
	}
	if sr != 0 {
		c.SampleRate = int(sr)
	}
	out, err := c.Decode(buf)
	if err != nil {
		return err
	}
	return dumpwav(outputFile, out, c.SampleRate)
}

// Image packs per-frame band energies as float16 bits, a compact dump for
// display or storage.
func (c *Chirp) Image(frames []Frame) []uint16 {
	return dumpbuffer(frames, c.NumBands)
}

// LoadWav loads mono wav file to sample vector
func LoadWav(inputFile string) []float64 {
	mono, _ := loadwav(inputFile)
	return mono
}

// LoadFlac loads mono flac file to sample vector
func LoadFlac(inputFile string) []float64 {
	mono, _ := loadflac(inputFile)
	return mono
}

// LoadWavSampleRate loads mono wav file to sample vector and it's sample rate, or it returns an error like ErrFileNotLoaded
func LoadWavSampleRate(inputFile string) ([]float64, uint32, error) {
	mono, sr := loadwav(inputFile)
	if len(mono) == 0 || sr == 0 {
		return nil, 0, ErrFileNotLoaded
	}
	return mono, sr, nil
}

// LoadFlacSampleRate loads mono flac file to sample vector and it's sample rate, or it returns an error like ErrFileNotLoaded
func LoadFlacSampleRate(inputFile string) ([]float64, uint32, error) {
	mono, sr := loadflac(inputFile)
	if len(mono) == 0 || sr == 0 {
		return nil, 0, ErrFileNotLoaded
	}
	return mono, sr, nil
}

// SaveWav saves mono wav file from sample vector
func SaveWav(outputFile string, vec []float64, sr int) error {
	return dumpwav(outputFile, vec, sr)
}

// melBands returns the shared band partition, computing it on first use.
func (c *Chirp) melBands() []mel.Band {
	if len(c.bands) != c.NumBands {
		c.bands = mel.Bands(c.NumBands, c.SpeechMaxFreq)
	}
	return c.bands
}

// numFrames is the number of full analysis windows in a buffer.
func (c *Chirp) numFrames(buf []float64) int {
	return (len(buf) - c.FFTSize) / c.HopSize
}

// binSize is the width of one spectral bin in Hz.
func (c *Chirp) binSize() float64 {
	return float64(c.SampleRate) / float64(c.FFTSize)
}

func (c *Chirp) seed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// normalize scales buf so its peak absolute value is peak. A silent buffer
// is left untouched.
func normalize(buf []float64, peak float64) {
	var max float64
	for _, v := range buf {
		if v > max {
			max = v
		} else if -v > max {
			max = -v
		}
	}
	if max == 0 {
		return
	}
	scale := peak / max
	for i := range buf {
		buf[i] *= scale
	}
}
