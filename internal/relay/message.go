// Package relay implements the Discord to LINE transformation pipeline:
// classifying attachments, building flex cards, batching the resulting
// messages, and gathering direct messages back into shared channels.
package relay

// SenderKind discriminates a human author from the automated peer bot that
// mirrors LINE messages into Discord. Messages from the peer are rendered
// without attribution, and must never loop back to LINE with a full card.
type SenderKind int

const (
	SenderHuman SenderKind = iota
	SenderAutomatedPeer
)

// Sender is the author of an inbound message. AvatarURL is resolved by the
// source adapter to a format the LINE renderer can display.
type Sender struct {
	ID          string
	DisplayName string
	Color       string
	Kind        SenderKind
	AvatarURL   string
}

// Attachment describes one file attached to an inbound message. ProxyURL is
// the platform's resized preview variant and may be empty.
type Attachment struct {
	Filename string
	URL      string
	ProxyURL string
}

// InboundMessage is one chat message received from the source platform,
// immutable once built. System messages never reach the pipeline; the source
// adapter drops them on their message-type tag before conversion. The
// pipeline owns a message only for the duration of a single forwarding or
// gathering operation.
type InboundMessage struct {
	Sender      Sender
	Content     string
	Attachments []Attachment
	ChannelID   string
	ChannelName string
	GuildID     string
}

// IsDirect reports whether the message arrived on a direct channel rather
// than inside a guild.
func (m InboundMessage) IsDirect() bool {
	return m.GuildID == ""
}
