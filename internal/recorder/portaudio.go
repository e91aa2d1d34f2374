//go:build portaudio

package recorder

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

const framesPerBuffer = 1024

type microphone struct {
	stream *portaudio.Stream
	buffer []int16
}

// NewMicrophone returns a Source reading the default input device.
func NewMicrophone() Source {
	return &microphone{}
}

func (m *microphone) Open(sampleRate, channels int) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %w", err)
	}

	m.buffer = make([]int16, framesPerBuffer*channels)
	stream, err := portaudio.OpenDefaultStream(channels, 0, float64(sampleRate), framesPerBuffer, m.buffer)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("opening stream: %w", err)
	}
	m.stream = stream

	if err := m.stream.Start(); err != nil {
		m.stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("starting stream: %w", err)
	}
	return nil
}

func (m *microphone) Read() ([]int16, error) {
	if err := m.stream.Read(); err != nil {
		return nil, fmt.Errorf("reading from stream: %w", err)
	}
	return m.buffer, nil
}

func (m *microphone) Close() error {
	if m.stream != nil {
		m.stream.Stop()
		m.stream.Close()
	}
	return portaudio.Terminate()
}
