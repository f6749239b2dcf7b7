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
		fmt.Println("Usage: tovoice <wav_filename>")
		os.Exit(1)
	}

	// Get the filename from the command-line arguments
	var filename = os.Args[1]

	// Create a new instance of Chirp
	var c = chirp.NewChirp()

	if !strings.HasSuffix(filename, ".wav") {
		filename += ".wav"
	}

	// Reconstruct the speech and save it as a WAV file
	err := c.DecodeWav(filename, filename+".voice.wav")
	if err != nil {
		fmt.Printf("Error reconstructing speech: %v\n", err)
		os.Exit(1)
	}
}
