// Package mel provides mel-scale frequency conversion and the fixed
// perceptual band partition of the speech frequency range.
//
// The band table is a pure function of the band count and the top speech
// frequency. The chirp encoder and decoder share one identical partition,
// which is what makes the data layer of the cipher reversible.
package mel
