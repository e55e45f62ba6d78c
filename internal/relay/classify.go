package relay

import (
	"mime"
	"path/filepath"
	"strings"
)

// MediaKind is the category a filename classifies into.
type MediaKind int

const (
	MediaUnsupported MediaKind = iota
	MediaImage
	MediaAudio
	MediaVideo
)

// String returns the category name used in logs.
func (k MediaKind) String() string {
	switch k {
	case MediaImage:
		return "image"
	case MediaAudio:
		return "audio"
	case MediaVideo:
		return "video"
	default:
		return "unsupported"
	}
}

// Media extensions the host mime database may be missing. mime.types varies
// wildly between images and containers, so the common cases are pinned here.
var fallbackTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
}

// Classify guesses the media category of a filename from its extension.
// It is total: any input, including one without an extension, maps to a
// category, with MediaUnsupported for everything that is not a recognized
// image, audio, or video type.
func Classify(filename string) MediaKind {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return MediaUnsupported
	}
	guessed := mime.TypeByExtension(ext)
	if guessed == "" {
		guessed = fallbackTypes[ext]
	}
	switch {
	case strings.HasPrefix(guessed, "image/"):
		return MediaImage
	case strings.HasPrefix(guessed, "audio/"):
		return MediaAudio
	case strings.HasPrefix(guessed, "video/"):
		return MediaVideo
	default:
		return MediaUnsupported
	}
}
