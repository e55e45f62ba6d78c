package relay

import "fmt"

const emojiIconURL = "https://cdn.discordapp.com/emojis/%s.png"

// Emoji grid tiers: up to the count, rows hold capacity icons at the given
// size. The md floor keeps large grids legible.
var emojiTiers = []struct {
	count    int
	capacity int
	size     string
}{
	{count: 10, capacity: 6, size: "3xl"},
	{count: 15, capacity: 8, size: "xl"},
}

const (
	emojiOverflowCapacity = 10
	emojiOverflowSize     = "md"
)

// BuildCard renders one inbound message as at most one target message:
// usually a flex card, a bare text message for automated-peer content, or
// nothing at all for empty peer messages (attachment-only relays need no
// card).
func BuildCard(msg InboundMessage) []TargetMessage {
	peer := msg.Sender.Kind == SenderAutomatedPeer
	if peer && msg.Content == "" {
		return nil
	}

	var body []Node
	switch {
	case msg.Content == "":
		// A bare empty text node is rejected by the renderer.
		body = []Node{Box{Layout: LayoutBaseline, Contents: []Node{Filler{}}}}
	case IsAllEmoji(msg.Content):
		body = emojiRows(EmojiIDs(msg.Content))
	case peer:
		// Peer text needs no avatar or name decoration, skip the card.
		return []TargetMessage{NewText(msg.Content)}
	default:
		body = []Node{Box{Layout: LayoutBaseline, Contents: []Node{
			Text{Text: msg.Content, Flex: intPtr(0), Wrap: true},
		}}}
	}

	// Author line and body stacked vertically, avatar alongside. Relayed
	// peer messages already carry attribution upstream, so no header.
	var column []Node
	if !peer {
		column = append(column, Text{
			Text:   msg.Sender.DisplayName,
			Weight: "bold",
			Color:  msg.Sender.Color,
			Size:   "sm",
			Flex:   intPtr(0),
		})
	}
	column = append(column, body...)

	row := []Node{}
	if !peer {
		row = append(row, Image{URL: msg.Sender.AvatarURL, Size: "xxs", Flex: intPtr(0)})
	}
	row = append(row, Box{Layout: LayoutVertical, Contents: column})

	card := &Card{
		AltText: fmt.Sprintf("%s:%s", msg.Sender.DisplayName, msg.Content),
		Footer:  &Box{Layout: LayoutHorizontal, Spacing: "md", Contents: row},
	}
	return []TargetMessage{NewCard(card)}
}

// emojiRows lays emoji ids out as horizontally stacked icon rows, capacity
// and icon size chosen by total count.
func emojiRows(ids []string) []Node {
	capacity, size := emojiOverflowCapacity, emojiOverflowSize
	for _, tier := range emojiTiers {
		if len(ids) <= tier.count {
			capacity, size = tier.capacity, tier.size
			break
		}
	}

	rows := make([]Node, 0, (len(ids)+capacity-1)/capacity)
	for start := 0; start < len(ids); start += capacity {
		end := min(start+capacity, len(ids))
		icons := make([]Node, 0, end-start)
		for _, id := range ids[start:end] {
			icons = append(icons, Icon{URL: fmt.Sprintf(emojiIconURL, id), Size: size})
		}
		rows = append(rows, Box{Layout: LayoutBaseline, Contents: icons})
	}
	return rows
}

func intPtr(v int) *int {
	return &v
}
