// Package chirp implements a lossy, reversible cipher that disguises human
// speech as a synthetic bird-call waveform.
//
// The forward transform analyzes speech frame by frame (pitch, mel band
// energies, RMS amplitude) and synthesizes a pitched carrier plus a bank of
// high-frequency data tones carrying the spectral envelope. The reverse
// transform recovers the carrier and the data layer from the cipher buffer
// and resynthesizes speech with an additive harmonic vocoder. It supports:
//   - Encoding WAV/FLAC speech recordings into bird-call WAV files
//   - Decoding bird-call WAV files back into intelligible speech
//   - Chunked encode/decode sessions for cooperative scheduling
//   - Spectrogram PNG rendering of audio files for inspection
//
// The transform is intentionally lossy and offers no cryptographic security;
// it is steganographic obfuscation, not encryption.
package chirp
