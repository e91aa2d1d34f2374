package publisher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/echoscribe/internal/errs"
)

// MeetingBanner heads every automatically posted meeting summary.
const MeetingBanner = "🎙️ *New Meeting Recording*\n\n"

func (p *implPublisher) channel(channel string) string {
	if channel == "" {
		return p.defaultChannel
	}
	return channel
}

func (p *implPublisher) Publish(ctx context.Context, text, channel, threadTS string) (Receipt, error) {
	channel = p.channel(channel)

	receipt, err := p.messenger.Post(ctx, channel, text, threadTS)
	if err != nil {
		p.logger.Error(ctx, "Failed to post message to %s: %v", channel, err)
		return Receipt{}, errs.Service("post message to "+channel, err)
	}

	p.logger.Info(ctx, "Message posted to %s (ts %s)", receipt.Channel, receipt.Timestamp)
	return receipt, nil
}

func (p *implPublisher) PublishMeetingSummary(ctx context.Context, text, channel string) (Receipt, error) {
	return p.Publish(ctx, MeetingBanner+text, channel, "")
}

func (p *implPublisher) UploadFile(ctx context.Context, path, channel, title, comment string) (UploadReceipt, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return UploadReceipt{}, errs.NotFound(path)
		}
		return UploadReceipt{}, fmt.Errorf("stat upload: %w", err)
	}

	if title == "" {
		title = filepath.Base(path)
	}
	channel = p.channel(channel)

	receipt, err := p.messenger.Upload(ctx, UploadRequest{
		Path:    path,
		Channel: channel,
		Title:   title,
		Comment: comment,
	})
	if err != nil {
		p.logger.Error(ctx, "Failed to upload %s to %s: %v", path, channel, err)
		return UploadReceipt{}, errs.Service("upload file to "+channel, err)
	}

	p.logger.Info(ctx, "File uploaded: %s (%s)", receipt.Title, receipt.FileID)
	return receipt, nil
}
