package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/echoscribe/internal/audio"
)

// cleanupTempFile removes a temporary file, logs warning if fails
func (p *implPipeline) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp file: %s", filePath)
	}
}

// cleanupChunks removes the chunk files written for a run.
func (p *implPipeline) cleanupChunks(ctx context.Context, paths []string) {
	if len(paths) == 0 {
		return
	}
	if err := audio.RemoveFiles(paths); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup chunk files: %v", err)
		return
	}
	p.logger.Debug(ctx, "Cleaned up %d chunk files", len(paths))
}

// Archive moves a processed recording into dir and returns its new path.
func Archive(path, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}

	dest := filepath.Join(dir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		return "", fmt.Errorf("move to archived: %w", err)
	}

	return dest, nil
}
