package mel

import "math"
import "testing"

func TestBandsPartition(t *testing.T) {
	const count = 20
	const maxFreq = 4000.0

	bands := Bands(count, maxFreq)
	if len(bands) != count {
		t.Fatalf("got %d bands, want %d", len(bands), count)
	}
	if math.Abs(bands[0].Start-MinFreq) > 1e-6 {
		t.Errorf("first band starts at %f Hz, want %f", bands[0].Start, MinFreq)
	}
	if math.Abs(bands[count-1].End-maxFreq) > 1e-6 {
		t.Errorf("last band ends at %f Hz, want %f", bands[count-1].End, maxFreq)
	}
	for i, b := range bands {
		if !(b.Start < b.Center && b.Center < b.End) {
			t.Errorf("band %d not ordered: %+v", i, b)
		}
		if i > 0 && b.Center <= bands[i-1].Center {
			t.Errorf("band %d center %f not above band %d center %f",
				i, b.Center, i-1, bands[i-1].Center)
		}
		if i > 0 && math.Abs(b.Start-bands[i-1].End) > 1e-6 {
			t.Errorf("band %d start %f does not meet band %d end %f",
				i, b.Start, i-1, bands[i-1].End)
		}
	}
}

func TestBandsWidenWithFrequency(t *testing.T) {
	bands := Bands(20, 4000)
	first := bands[0].End - bands[0].Start
	last := bands[len(bands)-1].End - bands[len(bands)-1].Start
	if last <= first {
		t.Errorf("mel bands should widen with frequency: first %f Hz, last %f Hz", first, last)
	}
}

func TestHzMelRoundTrip(t *testing.T) {
	for _, hz := range []float64{100, 150, 440, 1000, 4000, 8000} {
		got := MelToHz(HzToMel(hz))
		if math.Abs(got-hz) > 1e-6 {
			t.Errorf("round trip of %f Hz gave %f", hz, got)
		}
	}
}
