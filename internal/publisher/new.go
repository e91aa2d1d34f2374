package publisher

import (
	"github.com/nguyentantai21042004/echoscribe/internal/config"
	"github.com/nguyentantai21042004/echoscribe/internal/logger"
)

type implPublisher struct {
	messenger      Messenger
	defaultChannel string
	logger         logger.Logger
}

// New creates a Publisher. An empty defaultChannel falls back to
// config.DefaultChannel.
func New(messenger Messenger, defaultChannel string, log logger.Logger) Publisher {
	if defaultChannel == "" {
		defaultChannel = config.DefaultChannel
	}
	return &implPublisher{
		messenger:      messenger,
		defaultChannel: defaultChannel,
		logger:         log,
	}
}
