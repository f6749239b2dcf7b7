// Command tovoice reconstructs speech from bird-call WAV files made by tobird.
//
// The tool recovers the carrier pitch and the banded spectral envelope from
// the cipher waveform and resynthesizes an intelligible approximation of the
// original speech with an additive harmonic vocoder. The round trip is
// intentionally lossy.
//
// Usage:
//
//	tovoice <wav_file>
//
// The output WAV file will be named <wav_file>.voice.wav
package main
