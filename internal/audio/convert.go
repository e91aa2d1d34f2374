package audio

import (
	"context"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/echoscribe/internal/logger"
	"github.com/nguyentantai21042004/echoscribe/pkg/executor"
)

// Converter turns arbitrary audio containers into LINEAR16 WAV with ffmpeg.
type Converter struct {
	exec   executor.Executor
	binary string
	logger logger.Logger
}

// NewConverter creates a Converter. binary defaults to "ffmpeg".
func NewConverter(exec executor.Executor, binary string, log logger.Logger) *Converter {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Converter{exec: exec, binary: binary, logger: log}
}

// IsWAV reports whether path has a .wav extension.
func IsWAV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".wav")
}

// TempPath is where ToWAV writes the converted copy of src: a file in the
// system temp dir, keyed by src's absolute path so the copy never lands in
// a watched inbox and two sources with the same name do not collide.
func TempPath(src string) string {
	abs, err := filepath.Abs(src)
	if err != nil {
		abs = src
	}
	stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	name := fmt.Sprintf("echoscribe-%s-%08x_temp.wav", stem, crc32.ChecksumIEEE([]byte(abs)))
	return filepath.Join(os.TempDir(), name)
}

// ToWAV converts src to a 16-bit PCM WAV at sampleRate with the given channel
// count and returns the new file's path.
func (c *Converter) ToWAV(ctx context.Context, src string, sampleRate, channels int) (string, error) {
	out := TempPath(src)

	c.logger.Info(ctx, "Converting audio to WAV (%d Hz, %d ch): %s", sampleRate, channels, src)

	// -vn drops any video stream, pcm_s16le is LINEAR16
	args := []string{
		"-i", src,
		"-vn",
		"-ar", strconv.Itoa(sampleRate),
		"-ac", strconv.Itoa(channels),
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		out,
	}

	if _, err := c.exec.Execute(ctx, c.binary, args...); err != nil {
		return "", fmt.Errorf("ffmpeg convert audio: %w", err)
	}

	c.logger.Debug(ctx, "Audio converted: %s", out)
	return out, nil
}
