package main

import (
	"fmt"
	"github.com/neurlang/gochirp/chirp"
	"os"
	"strconv"
	"strings"
)

func main() {
	// Check if the filename argument is provided
	if len(os.Args) < 2 {
		fmt.Println("Usage: tobird <audio_filename> [seed]")
		os.Exit(1)
	}

	// Get the filename from the command-line arguments
	var filename = os.Args[1]

	// Create a new instance of Chirp
	var c = chirp.NewChirp()

	// Optional seed for reproducible data-band phases
	if len(os.Args) > 2 {
		seed, err := strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil {
			fmt.Printf("Bad seed %q: %v\n", os.Args[2], err)
			os.Exit(1)
		}
		c.Seed = seed
	}

	if strings.HasSuffix(filename, ".flac") {
		// Cipher the speech and save it as a WAV file
		err := c.EncodeFlac(filename, filename+".bird.wav")
		if err != nil {
			fmt.Printf("Error ciphering speech: %v\n", err)
			os.Exit(1)
		}
	} else if strings.HasSuffix(filename, ".wav") {
		// Cipher the speech and save it as a WAV file
		err := c.EncodeWav(filename, filename+".bird.wav")
		if err != nil {
			fmt.Printf("Error ciphering speech: %v\n", err)
			os.Exit(1)
		}
	} else {
		// Cipher the speech and save it as a WAV file
		err := c.EncodeWav(filename+".wav", filename+".bird.wav")
		if err != nil {
			fmt.Printf("Error ciphering speech: %v\n", err)
			os.Exit(1)
		}
	}
}
