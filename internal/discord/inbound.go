package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/carbothq/carbot/internal/relay"
)

// handleMessage filters and routes one gateway event: direct messages go to
// the gatherer, messages in a guild's target channel go to the forwarder,
// everything else is ignored. A panic while processing one event is logged
// so the event loop keeps running.
func (b *Bot) handleMessage(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("panic while handling message",
				slog.String("message_id", m.ID),
				slog.Any("panic", r),
			)
		}
	}()

	if m.Author == nil || m.Type != discordgo.MessageTypeDefault {
		return
	}
	// The mirror bot re-posts target-platform messages into Discord;
	// forwarding those back would close an infinite relay loop.
	if b.peerID != "" && m.Author.ID == b.peerID {
		return
	}

	self := s.State.User != nil && m.Author.ID == s.State.User.ID

	if m.GuildID == "" {
		if self {
			return
		}
		if err := b.gatherer.Gather(ctx, b.buildInbound(s, m, relay.SenderHuman, "")); err != nil {
			b.logger.Error("gather direct message failed",
				slog.String("message_id", m.ID),
				slog.String("user_id", m.Author.ID),
				slog.Any("error", err),
			)
		}
		return
	}

	channelName := b.resolveChannelName(s, m.ChannelID)
	if channelName != b.channelName {
		return
	}

	// The bot's own messages in the target channel are gatherer re-emissions
	// of direct messages; they forward without attribution decoration.
	kind := relay.SenderHuman
	if self {
		kind = relay.SenderAutomatedPeer
	}
	b.forwarder.Forward(ctx, b.buildInbound(s, m, kind, channelName))
}

// buildInbound converts a gateway message into the pipeline's inbound shape,
// resolving display name, role color, and a still-photo avatar URL.
func (b *Bot) buildInbound(s *discordgo.Session, m *discordgo.MessageCreate, kind relay.SenderKind, channelName string) relay.InboundMessage {
	attachments := make([]relay.Attachment, 0, len(m.Attachments))
	for _, att := range m.Attachments {
		attachments = append(attachments, relay.Attachment{
			Filename: att.Filename,
			URL:      att.URL,
			ProxyURL: att.ProxyURL,
		})
	}

	displayName := m.Author.Username
	if m.Member != nil && m.Member.Nick != "" {
		displayName = m.Member.Nick
	}

	return relay.InboundMessage{
		Sender: relay.Sender{
			ID:          m.Author.ID,
			DisplayName: displayName,
			Color:       fmt.Sprintf("#%06x", s.State.UserColor(m.Author.ID, m.ChannelID)),
			Kind:        kind,
			AvatarURL:   avatarURL(m.Author),
		},
		Content:     m.Content,
		Attachments: attachments,
		ChannelID:   m.ChannelID,
		ChannelName: channelName,
		GuildID:     m.GuildID,
	}
}

// avatarURL resolves a still-photo avatar. The gateway's dynamic URL serves
// webp, which the target renderer cannot display, so the png variant is
// built from the user id and avatar hash instead.
func avatarURL(user *discordgo.User) string {
	if user.Avatar == "" {
		return user.AvatarURL("256")
	}
	return fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png?size=256", user.ID, user.Avatar)
}

func (b *Bot) resolveChannelName(s *discordgo.Session, channelID string) string {
	ch, err := s.State.Channel(channelID)
	if err != nil {
		ch, err = s.Channel(channelID)
		if err != nil {
			return ""
		}
	}
	return ch.Name
}
