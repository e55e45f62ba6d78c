package relay

// TargetKind tags the variant carried by a TargetMessage.
type TargetKind int

const (
	TargetText TargetKind = iota
	TargetImage
	TargetAudio
	TargetVideo
	TargetCard
)

// String returns the kind name used in logs.
func (k TargetKind) String() string {
	switch k {
	case TargetText:
		return "text"
	case TargetImage:
		return "image"
	case TargetAudio:
		return "audio"
	case TargetVideo:
		return "video"
	case TargetCard:
		return "card"
	default:
		return "unknown"
	}
}

// TargetMessage is one message object destined for the push API. Exactly one
// variant is populated, selected by Kind; it is consumed by the single push
// call that contains it.
type TargetMessage struct {
	Kind       TargetKind
	Text       string
	URL        string
	PreviewURL string
	Card       *Card
}

// NewText returns a plain text target message.
func NewText(body string) TargetMessage {
	return TargetMessage{Kind: TargetText, Text: body}
}

// NewImage returns an image target message. An empty preview falls back to
// the content URL at conversion time.
func NewImage(url, previewURL string) TargetMessage {
	return TargetMessage{Kind: TargetImage, URL: url, PreviewURL: previewURL}
}

// NewAudio returns an audio target message.
func NewAudio(url string) TargetMessage {
	return TargetMessage{Kind: TargetAudio, URL: url}
}

// NewVideo returns a video target message.
func NewVideo(url string) TargetMessage {
	return TargetMessage{Kind: TargetVideo, URL: url}
}

// NewCard returns a flex card target message.
func NewCard(card *Card) TargetMessage {
	return TargetMessage{Kind: TargetCard, Card: card}
}
