// Package discord adapts the Discord gateway to the relay pipeline: it
// filters and converts message events, and exposes the membership and
// channel-send operations the private-relay gatherer needs.
package discord

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"github.com/carbothq/carbot/internal/relay"
)

// Forwarder consumes channel messages bound for the target platform.
type Forwarder interface {
	Forward(ctx context.Context, msg relay.InboundMessage)
}

// Gatherer consumes direct messages to be re-emitted into shared channels.
type Gatherer interface {
	Gather(ctx context.Context, msg relay.InboundMessage) error
}

// Bot owns the gateway session and routes inbound events. It also implements
// relay.Directory, relay.ChannelSender, and relay.Downloader on top of the
// same session.
type Bot struct {
	logger      *slog.Logger
	session     *discordgo.Session
	http        *http.Client
	peerID      string
	channelName string

	forwarder Forwarder
	gatherer  Gatherer

	removeHandler func()
}

// New creates a Bot for the given bot token. The peer id names the mirror
// bot whose messages are ignored outright; channelName is the shared channel
// watched in every guild.
func New(log *slog.Logger, token, peerID, channelName string) (*Bot, error) {
	if log == nil {
		log = slog.Default()
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsAllWithoutPrivileged |
		discordgo.IntentGuildMembers |
		discordgo.IntentMessageContent

	return &Bot{
		logger:      log.With(slog.String("component", "discord")),
		session:     session,
		http:        &http.Client{},
		peerID:      peerID,
		channelName: channelName,
	}, nil
}

// Bind attaches the pipeline stages. Must be called before Open.
func (b *Bot) Bind(forwarder Forwarder, gatherer Gatherer) {
	b.forwarder = forwarder
	b.gatherer = gatherer
}

// Open registers the message handler and connects to the gateway.
func (b *Bot) Open(ctx context.Context) error {
	b.removeHandler = b.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		b.handleMessage(ctx, s, m)
	})
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("discord open connection: %w", err)
	}
	b.logger.Info("gateway connected")
	return nil
}

// Close detaches the handler and closes the gateway connection.
func (b *Bot) Close() error {
	if b.removeHandler != nil {
		b.removeHandler()
		b.removeHandler = nil
	}
	b.logger.Info("gateway closing")
	return b.session.Close()
}

// MutualGuilds lists the ids of every connected guild the user is a member
// of, implementing relay.Directory.
func (b *Bot) MutualGuilds(ctx context.Context, userID string) ([]string, error) {
	var guilds []string
	for _, guild := range b.session.State.Guilds {
		member, err := b.session.State.Member(guild.ID, userID)
		if err != nil || member == nil {
			member, err = b.session.GuildMember(guild.ID, userID, discordgo.WithContext(ctx))
			if err != nil {
				// An unknown-member 404 means not a member; anything else
				// (rate limit, outage) still skips the guild, but audibly.
				if !isUnknownMember(err) {
					b.logger.Warn("membership lookup failed, skipping guild",
						slog.String("guild_id", guild.ID),
						slog.String("user_id", userID),
						slog.Any("error", err),
					)
				}
				continue
			}
			if member == nil {
				continue
			}
		}
		guilds = append(guilds, guild.ID)
	}
	return guilds, nil
}

// isUnknownMember reports whether err is the REST 404 returned for a user
// who is not in the guild.
func isUnknownMember(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	return restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
}

// ChannelByName finds a text channel by display name within a guild,
// implementing relay.Directory.
func (b *Bot) ChannelByName(ctx context.Context, guildID, name string) (string, bool, error) {
	channels, err := b.session.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return "", false, fmt.Errorf("list channels of guild %s: %w", guildID, err)
	}
	for _, ch := range channels {
		if ch.Type == discordgo.ChannelTypeGuildText && ch.Name == name {
			return ch.ID, true, nil
		}
	}
	return "", false, nil
}

// SendText posts plain text into a channel, implementing relay.ChannelSender.
func (b *Bot) SendText(ctx context.Context, channelID, text string) error {
	_, err := b.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx))
	return err
}

// SendFile uploads a file into a channel with an optional caption,
// implementing relay.ChannelSender.
func (b *Bot) SendFile(ctx context.Context, channelID, filename string, content io.Reader, caption string) error {
	_, err := b.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: caption,
		Files:   []*discordgo.File{{Name: filename, Reader: content}},
	}, discordgo.WithContext(ctx))
	return err
}

// Download fetches attachment bytes, implementing relay.Downloader.
func (b *Bot) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("download %s: status %s", url, resp.Status)
	}
	return resp.Body, nil
}
