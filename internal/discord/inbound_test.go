package discord

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbothq/carbot/internal/relay"
)

type fakeForwarder struct {
	msgs []relay.InboundMessage
}

func (f *fakeForwarder) Forward(_ context.Context, msg relay.InboundMessage) {
	f.msgs = append(f.msgs, msg)
}

type fakeGatherer struct {
	msgs []relay.InboundMessage
}

func (g *fakeGatherer) Gather(_ context.Context, msg relay.InboundMessage) error {
	g.msgs = append(g.msgs, msg)
	return nil
}

type panickingForwarder struct{}

func (panickingForwarder) Forward(context.Context, relay.InboundMessage) {
	panic("push client exploded")
}

const (
	testSelfID = "self-1"
	testPeerID = "peer-1"
)

// seededSession builds an unopened gateway session whose state holds one
// guild with a "line" and a "general" channel, plus a direct channel.
func seededSession(t *testing.T) *discordgo.Session {
	t.Helper()

	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)

	session.State.User = &discordgo.User{ID: testSelfID, Username: "carbot"}
	require.NoError(t, session.State.GuildAdd(&discordgo.Guild{ID: "g1"}))
	require.NoError(t, session.State.ChannelAdd(&discordgo.Channel{
		ID: "chan-line", GuildID: "g1", Name: "line", Type: discordgo.ChannelTypeGuildText,
	}))
	require.NoError(t, session.State.ChannelAdd(&discordgo.Channel{
		ID: "chan-general", GuildID: "g1", Name: "general", Type: discordgo.ChannelTypeGuildText,
	}))
	require.NoError(t, session.State.ChannelAdd(&discordgo.Channel{
		ID: "dm-1", Type: discordgo.ChannelTypeDM,
	}))
	return session
}

func newTestBot(t *testing.T) (*Bot, *fakeForwarder, *fakeGatherer) {
	t.Helper()

	bot, err := New(nil, "test-token", testPeerID, "line")
	require.NoError(t, err)
	fwd := &fakeForwarder{}
	g := &fakeGatherer{}
	bot.Bind(fwd, g)
	return bot, fwd, g
}

func guildMessage(authorID, channelID string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "m1",
		Type:      discordgo.MessageTypeDefault,
		Content:   "hello",
		ChannelID: channelID,
		GuildID:   "g1",
		Author:    &discordgo.User{ID: authorID, Username: "alice"},
	}}
}

func directMessage(authorID string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "m1",
		Type:      discordgo.MessageTypeDefault,
		Content:   "psst",
		ChannelID: "dm-1",
		Author:    &discordgo.User{ID: authorID, Username: "alice"},
	}}
}

func TestHandleMessageRouting(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		msg         *discordgo.MessageCreate
		wantForward int
		wantGather  int
	}{
		{
			name:        "human in target channel forwards",
			msg:         guildMessage("100", "chan-line"),
			wantForward: 1,
		},
		{
			name: "other guild channel ignored",
			msg:  guildMessage("100", "chan-general"),
		},
		{
			name: "system message dropped",
			msg: &discordgo.MessageCreate{Message: &discordgo.Message{
				ID:        "m1",
				Type:      discordgo.MessageTypeGuildMemberJoin,
				ChannelID: "chan-line",
				GuildID:   "g1",
				Author:    &discordgo.User{ID: "100"},
			}},
		},
		{
			name: "mirror bot dropped in target channel",
			msg:  guildMessage(testPeerID, "chan-line"),
		},
		{
			name: "mirror bot dropped in direct channel",
			msg:  directMessage(testPeerID),
		},
		{
			name:        "own message in target channel forwards",
			msg:         guildMessage(testSelfID, "chan-line"),
			wantForward: 1,
		},
		{
			name:       "direct message gathers",
			msg:        directMessage("100"),
			wantGather: 1,
		},
		{
			name: "own direct message dropped",
			msg:  directMessage(testSelfID),
		},
		{
			name: "authorless event dropped",
			msg: &discordgo.MessageCreate{Message: &discordgo.Message{
				ID: "m1", Type: discordgo.MessageTypeDefault, ChannelID: "chan-line", GuildID: "g1",
			}},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			bot, fwd, g := newTestBot(t)
			bot.handleMessage(context.Background(), seededSession(t), tc.msg)

			assert.Len(t, fwd.msgs, tc.wantForward, "forwarded")
			assert.Len(t, g.msgs, tc.wantGather, "gathered")
		})
	}
}

func TestHandleMessageSelfIsAutomatedPeer(t *testing.T) {
	t.Parallel()

	bot, fwd, _ := newTestBot(t)
	bot.handleMessage(context.Background(), seededSession(t), guildMessage(testSelfID, "chan-line"))

	require.Len(t, fwd.msgs, 1)
	assert.Equal(t, relay.SenderAutomatedPeer, fwd.msgs[0].Sender.Kind,
		"gatherer re-emissions forward without attribution decoration")
}

func TestHandleMessageInboundShape(t *testing.T) {
	t.Parallel()

	bot, fwd, _ := newTestBot(t)
	msg := guildMessage("100", "chan-line")
	msg.Attachments = []*discordgo.MessageAttachment{
		{Filename: "a.png", URL: "https://cdn/a.png", ProxyURL: "https://proxy/a.png"},
	}
	bot.handleMessage(context.Background(), seededSession(t), msg)

	require.Len(t, fwd.msgs, 1)
	got := fwd.msgs[0]
	assert.Equal(t, relay.SenderHuman, got.Sender.Kind)
	assert.Equal(t, "alice", got.Sender.DisplayName)
	assert.Equal(t, "hello", got.Content)
	assert.Equal(t, "chan-line", got.ChannelID)
	assert.Equal(t, "line", got.ChannelName)
	assert.Equal(t, "g1", got.GuildID)
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, relay.Attachment{
		Filename: "a.png", URL: "https://cdn/a.png", ProxyURL: "https://proxy/a.png",
	}, got.Attachments[0])
}

func TestHandleMessagePanicRecovered(t *testing.T) {
	t.Parallel()

	bot, _, _ := newTestBot(t)
	bot.Bind(panickingForwarder{}, &fakeGatherer{})

	assert.NotPanics(t, func() {
		bot.handleMessage(context.Background(), seededSession(t), guildMessage("100", "chan-line"))
	})
}

func TestAvatarURL(t *testing.T) {
	t.Parallel()

	custom := &discordgo.User{ID: "100", Avatar: "abcdef"}
	assert.Equal(t,
		"https://cdn.discordapp.com/avatars/100/abcdef.png?size=256",
		avatarURL(custom),
		"custom avatars use the still png form, never the webp dynamic URL",
	)

	none := &discordgo.User{ID: "100"}
	assert.Equal(t, none.AvatarURL("256"), avatarURL(none))
}
