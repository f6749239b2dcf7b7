// Command tospec renders spectrogram images (PNG) of WAV files.
//
// This is a display aid for inspecting cipher output or speech input; the
// image is a decimated time-frequency view and feeds nothing back into the
// transform.
//
// Usage:
//
//	tospec <wav_file>
//
// The output PNG file will be named <wav_file>.png
package main
