package chirp

import "image"
import "image/color"
import "image/png"
import "math"
import "os"

import "github.com/faiface/beep"
import "github.com/faiface/beep/wav"
import "github.com/mewkiz/flac"
import "github.com/r9y9/gossp/stft"
import "github.com/x448/float16"

func loadwav(name string) (out []float64, sr uint32) {
	file, _ := os.Open(name)
	defer file.Close()

	// wavReader
	stream, format, err := wav.Decode(file)
	if err != nil {
		println(err.Error())
		return nil, 0
	}

	// require wavReader
	if stream == nil {
		return nil, 0
	}
	var samples = make([][2]float64, 0, 1)
	for {
		samples = samples[0:1]
		n, ok := stream.Stream(samples)
		if !ok {
			break
		}
		samples = samples[:n]
		for i := 0; i < 1; i++ {
			out = append(out, samples[i][0])
		}
	}

	return out, uint32(format.SampleRate)
}

func loadflac(name string) (out []float64, sr uint32) {
	stream, err := flac.ParseFile(name)
	if err != nil {
		println(err.Error())
		return nil, 0
	}
	defer stream.Close()

	sr = stream.Info.SampleRate
	div := float64(int64(1) << (stream.Info.BitsPerSample - 1))
	for {
		frame, err := stream.ParseNext()
		if err != nil {
			break
		}
		for _, sample := range frame.Subframes[0].Samples {
			out = append(out, float64(sample)/div)
		}
	}

	return
}

// bufferStreamer adapts a mono sample vector to beep.Streamer so dumpwav can
// hand it to the wav encoder.
type bufferStreamer struct {
	buf []float64
	pos int
}

func (b *bufferStreamer) Stream(samples [][2]float64) (int, bool) {
	if b.pos >= len(b.buf) {
		return 0, false
	}
	n := 0
	for i := range samples {
		if b.pos >= len(b.buf) {
			break
		}
		v := b.buf[b.pos]
		samples[i][0] = v
		samples[i][1] = v
		b.pos++
		n++
	}
	return n, true
}

func (b *bufferStreamer) Err() error { return nil }

func dumpwav(name string, vec []float64, sr int) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(sr),
		NumChannels: 1,
		Precision:   2,
	}
	if err := wav.Encode(f, &bufferStreamer{buf: vec}, format); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// SpectrogramWav renders a spectrogram PNG of a WAV file. The image is a
// read-only view for inspection and feeds nothing back into the transform.
func (c *Chirp) SpectrogramWav(inputFile, outputFile string) error {
	buf, _ := loadwav(inputFile)
	if len(buf) == 0 {
		return ErrFileNotLoaded
	}

	s := stft.New(c.HopSize, c.FFTSize)
	spectrum := s.STFT(buf)

	return dumpimage(outputFile, spectrum, c.FFTSize/2, c.YReverse)
}

func dumpimage(name string, spectrum [][]complex128, bins int, reverse bool) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, len(spectrum), bins))

	var mgc_max, mgc_min = (-99999999.), (9999999.)

	mags := make([][]float64, len(spectrum))
	for x := range spectrum {
		mags[x] = make([]float64, bins)
		for y := 0; y < bins && y < len(spectrum[x]); y++ {
			var v = spectrum[x][y]
			var w = math.Log(math.Sqrt(real(v)*real(v)+imag(v)*imag(v)) + 1e-5)
			mags[x][y] = w
			if w > mgc_max {
				mgc_max = w
			}
			if w < mgc_min {
				mgc_min = w
			}
		}
	}
	for x := range mags {
		for y := 0; y < bins; y++ {
			var col color.RGBA
			val := (mags[x][y] - mgc_min) / (mgc_max - mgc_min)
			col.R = uint8(int(255 * val))
			col.G = uint8(int(255 * val))
			col.B = uint8(int(255 * val))
			col.A = uint8(255)
			if reverse {
				img.SetRGBA(x, bins-y-1, col)
			} else {
				img.SetRGBA(x, y, col)
			}
		}
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func dumpbuffer(frames []Frame, bands int) (out []uint16) {
	for _, f := range frames {
		for b := 0; b < bands && b < len(f.BandEnergies); b++ {
			out = append(out, float16.Fromfloat32(float32(f.BandEnergies[b])).Bits())
		}
	}
	return
}
