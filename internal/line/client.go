package line

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/line/line-bot-sdk-go/v7/linebot"

	"github.com/carbothq/carbot/internal/relay"
)

// Client implements relay.Pusher against the LINE Messaging API.
type Client struct {
	logger *slog.Logger
	bot    *linebot.Client
}

// NewClient creates a push client. The channel secret is only used for
// webhook signature checks by the SDK and may be empty for a push-only bot.
func NewClient(log *slog.Logger, channelSecret, channelToken string) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}
	bot, err := linebot.New(channelSecret, channelToken)
	if err != nil {
		return nil, fmt.Errorf("line client: %w", err)
	}
	return &Client{
		logger: log.With(slog.String("component", "line")),
		bot:    bot,
	}, nil
}

// Push delivers one batch of at most relay.MaxBatchSize messages to the
// given destination. Each call carries a fresh retry key so a
// transport-level retry cannot double-deliver the batch.
func (c *Client) Push(ctx context.Context, to string, batch []relay.TargetMessage) error {
	if len(batch) == 0 {
		return nil
	}
	if len(batch) > relay.MaxBatchSize {
		return fmt.Errorf("batch of %d exceeds push limit %d", len(batch), relay.MaxBatchSize)
	}

	messages := make([]linebot.SendingMessage, 0, len(batch))
	for _, msg := range batch {
		sending, err := toSendingMessage(msg)
		if err != nil {
			return err
		}
		messages = append(messages, sending)
	}

	_, err := c.bot.PushMessage(to, messages...).
		WithContext(ctx).
		WithRetryKey(uuid.NewString()).
		Do()
	if err != nil {
		return fmt.Errorf("push %d messages to %s: %w", len(batch), to, err)
	}

	c.logger.Info("pushed batch", slog.String("to", to), slog.Int("count", len(batch)))
	return nil
}
