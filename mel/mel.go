package mel

import "math"

// MinFreq is the lower edge of the speech band partition in Hz.
const MinFreq = 100.0

// Band is one perceptually spaced frequency band, in Hz.
type Band struct {
	Start  float64
	End    float64
	Center float64
}

// HzToMel converts a frequency in Hz to the mel scale.
func HzToMel(hz float64) float64 {
	return 2595 * math.Log10(1+hz/700)
}

// MelToHz converts a mel value back to a frequency in Hz.
func MelToHz(m float64) float64 {
	return 700 * (math.Pow(10, m/2595) - 1)
}

// Bands divides [MinFreq, maxFreq] into count equal-width mel intervals and
// returns the bands in increasing frequency order. Undefined for count < 1.
func Bands(count int, maxFreq float64) []Band {
	lo := HzToMel(MinFreq)
	step := (HzToMel(maxFreq) - lo) / float64(count)

	bands := make([]Band, count)
	for i := range bands {
		bands[i] = Band{
			Start:  MelToHz(lo + float64(i)*step),
			End:    MelToHz(lo + float64(i+1)*step),
			Center: MelToHz(lo + (float64(i)+0.5)*step),
		}
	}
	return bands
}
