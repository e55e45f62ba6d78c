package relay

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Directory answers membership questions about the source platform: which
// guilds a user shares with the bot, and channel lookup by display name.
type Directory interface {
	MutualGuilds(ctx context.Context, userID string) ([]string, error)
	ChannelByName(ctx context.Context, guildID, name string) (channelID string, ok bool, err error)
}

// ChannelSender posts text or file payloads into a source-platform channel.
type ChannelSender interface {
	SendText(ctx context.Context, channelID, text string) error
	SendFile(ctx context.Context, channelID, filename string, content io.Reader, caption string) error
}

// Downloader fetches attachment bytes for re-upload.
type Downloader interface {
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}

// Gatherer re-emits direct messages into the shared channel of every guild
// the sender belongs to. The re-emitted message arrives as a fresh inbound
// event from the bot's own account, which the ordinary channel path then
// forwards; the gatherer never pushes anything itself.
type Gatherer struct {
	logger      *slog.Logger
	directory   Directory
	sender      ChannelSender
	downloader  Downloader
	channelName string
}

// NewGatherer creates a Gatherer targeting channels named channelName.
func NewGatherer(log *slog.Logger, dir Directory, sender ChannelSender, dl Downloader, channelName string) *Gatherer {
	if log == nil {
		log = slog.Default()
	}
	return &Gatherer{
		logger:      log.With(slog.String("component", "gatherer")),
		directory:   dir,
		sender:      sender,
		downloader:  dl,
		channelName: channelName,
	}
}

// Gather relays a direct message into each located shared channel. Guilds
// without the target channel are skipped; that is expected configuration
// variance, not an error. Text rides as the caption of the first upload when
// attachments are present, so text and file stay visually grouped.
func (g *Gatherer) Gather(ctx context.Context, msg InboundMessage) error {
	guilds, err := g.directory.MutualGuilds(ctx, msg.Sender.ID)
	if err != nil {
		return fmt.Errorf("list mutual guilds: %w", err)
	}

	for _, guildID := range guilds {
		channelID, ok, err := g.directory.ChannelByName(ctx, guildID, g.channelName)
		if err != nil {
			return fmt.Errorf("lookup channel %q in guild %s: %w", g.channelName, guildID, err)
		}
		if !ok {
			g.logger.Info("guild has no target channel, skipping",
				slog.String("guild_id", guildID),
				slog.String("channel_name", g.channelName),
			)
			continue
		}
		if err := g.relayInto(ctx, channelID, msg); err != nil {
			return err
		}
	}
	return nil
}

func (g *Gatherer) relayInto(ctx context.Context, channelID string, msg InboundMessage) error {
	if len(msg.Attachments) == 0 {
		if msg.Content == "" {
			return nil
		}
		if err := g.sender.SendText(ctx, channelID, msg.Content); err != nil {
			return fmt.Errorf("send text to channel %s: %w", channelID, err)
		}
		return nil
	}

	for i, att := range msg.Attachments {
		caption := ""
		if i == 0 {
			caption = msg.Content
		}
		if err := g.uploadAttachment(ctx, channelID, att, caption); err != nil {
			return err
		}
	}
	return nil
}

func (g *Gatherer) uploadAttachment(ctx context.Context, channelID string, att Attachment, caption string) error {
	body, err := g.downloader.Download(ctx, att.URL)
	if err != nil {
		return fmt.Errorf("download attachment %s: %w", att.Filename, err)
	}
	defer body.Close()

	if err := g.sender.SendFile(ctx, channelID, att.Filename, body, caption); err != nil {
		return fmt.Errorf("upload attachment %s to channel %s: %w", att.Filename, channelID, err)
	}
	return nil
}
