package publisher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/slack-go/slack"
)

type slackMessenger struct {
	client *slack.Client
}

// NewSlackMessenger creates a Messenger backed by the Slack Web API.
func NewSlackMessenger(token string) Messenger {
	return &slackMessenger{client: slack.New(token)}
}

func (m *slackMessenger) Post(ctx context.Context, channel, text, threadTS string) (Receipt, error) {
	opts := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if threadTS != "" {
		opts = append(opts, slack.MsgOptionTS(threadTS))
	}

	respChannel, ts, err := m.client.PostMessageContext(ctx, channel, opts...)
	if err != nil {
		return Receipt{}, fmt.Errorf("chat.postMessage: %w", err)
	}

	return Receipt{Channel: respChannel, Timestamp: ts}, nil
}

func (m *slackMessenger) Upload(ctx context.Context, req UploadRequest) (UploadReceipt, error) {
	info, err := os.Stat(req.Path)
	if err != nil {
		return UploadReceipt{}, fmt.Errorf("stat upload: %w", err)
	}

	file, err := m.client.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
		File:           req.Path,
		FileSize:       int(info.Size()),
		Filename:       filepath.Base(req.Path),
		Title:          req.Title,
		InitialComment: req.Comment,
		Channel:        req.Channel,
	})
	if err != nil {
		return UploadReceipt{}, fmt.Errorf("files.uploadV2: %w", err)
	}

	return UploadReceipt{FileID: file.ID, Title: file.Title}, nil
}
