//go:build !portaudio

package recorder

import "fmt"

// microphone stub when portaudio is not available
type microphone struct{}

// NewMicrophone returns a Source that fails to open; rebuild with
// -tags portaudio for microphone capture.
func NewMicrophone() Source {
	return microphone{}
}

func (microphone) Open(int, int) error {
	return fmt.Errorf("microphone not available: rebuild with -tags portaudio")
}

func (microphone) Read() ([]int16, error) {
	return nil, fmt.Errorf("microphone not available")
}

func (microphone) Close() error { return nil }
