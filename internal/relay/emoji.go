package relay

import "regexp"

// Discord custom emoji take the form <:name:id>, with an extra "a" flag for
// animated ones. The id keys the CDN image used for icon rendering.
var (
	emojiTokenPattern = regexp.MustCompile(`<a?:\w+:(\d+)>`)
	allEmojiPattern   = regexp.MustCompile(`^\s*(?:<a?:\w+:\d+>\s*)+$`)

	// Scheme-qualified links, or bare hosts ending in a common TLD. The card
	// renderer truncates raw links, so these are re-sent as plain text.
	linkPattern = regexp.MustCompile(`(?i)(?:https?://[^\s<>]+|\b[a-z0-9][a-z0-9.-]*\.(?:com|net|org|io|dev|app|gg|me|co|tv|jp|tw|uk|us)\b(?:/[^\s<>]*)?)`)
)

// IsAllEmoji reports whether text consists solely of whitespace-separated
// emoji tokens, with no other non-whitespace characters. Messages that mix
// tokens with visible text do not qualify and render as literal text.
func IsAllEmoji(text string) bool {
	return allEmojiPattern.MatchString(text)
}

// EmojiIDs extracts the ordered numeric ids of every emoji token in text,
// regardless of whether the whole message qualifies as emoji-only.
func EmojiIDs(text string) []string {
	matches := emojiTokenPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m[1])
	}
	return ids
}

// ExtractLinks finds every web link in text, non-overlapping, in order of
// appearance.
func ExtractLinks(text string) []string {
	return linkPattern.FindAllString(text, -1)
}
