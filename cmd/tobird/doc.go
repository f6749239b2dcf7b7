// Command tobird ciphers speech audio files (WAV/FLAC) into bird-call WAV files.
//
// The tool analyzes the speech recording frame by frame and resynthesizes it
// as a synthetic bird-call waveform: a pitched carrier shifted into the
// bird-call range plus high-frequency data tones carrying the spectral
// envelope. The output can be turned back into speech with the tovoice tool.
//
// Usage:
//
//	tobird <audio_file> [seed]
//
// The output WAV file will be named <audio_file>.bird.wav
//
// Supported input formats: .wav, .flac
package main
