package main

import (
	"fmt"
	"github.com/neurlang/gochirp/chirp"
	"os"
	"strings"
)

func main() {
	// Check if the filename argument is provided
	if len(os.Args) < 2 {
		fmt.Println("Usage: tospec <wav_filename>")
		os.Exit(1)
	}

	// Get the filename from the command-line arguments
	var filename = os.Args[1]

	// Create a new instance of Chirp
	var c = chirp.NewChirp()

	// Set parameters
	c.YReverse = true

	if !strings.HasSuffix(filename, ".wav") {
		filename += ".wav"
	}

	// Generate the spectrogram and save it as a PNG file
	err := c.SpectrogramWav(filename, filename+".png")
	if err != nil {
		fmt.Printf("Error generating spectrogram: %v\n", err)
		os.Exit(1)
	}
}
