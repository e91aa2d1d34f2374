package publisher

import "context"

// Receipt identifies a posted message. Timestamp doubles as the thread ID
// for replies.
type Receipt struct {
	Channel   string
	Timestamp string
}

// UploadRequest describes one file share.
type UploadRequest struct {
	Path    string
	Channel string
	Title   string
	Comment string
}

// UploadReceipt identifies an uploaded file.
type UploadReceipt struct {
	FileID string
	Title  string
}

// Messenger is a chat backend.
type Messenger interface {
	Post(ctx context.Context, channel, text, threadTS string) (Receipt, error)
	Upload(ctx context.Context, req UploadRequest) (UploadReceipt, error)
}

// Publisher delivers meeting output to a channel.
type Publisher interface {
	// Publish posts text to channel, or to the configured default channel
	// when channel is empty. A non-empty threadTS posts a threaded reply.
	Publish(ctx context.Context, text, channel, threadTS string) (Receipt, error)
	// PublishMeetingSummary posts a formatted summary under the new
	// recording banner.
	PublishMeetingSummary(ctx context.Context, text, channel string) (Receipt, error)
	// UploadFile shares a local file with an optional comment.
	UploadFile(ctx context.Context, path, channel, title, comment string) (UploadReceipt, error)
}
