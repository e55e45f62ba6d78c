package relay

import "log/slog"

// TransformAttachments maps each attachment to at most one target message,
// preserving order. Attachments with an unrecognized media type are dropped
// and logged; nothing is ever duplicated.
func TransformAttachments(log *slog.Logger, attachments []Attachment) []TargetMessage {
	if len(attachments) == 0 {
		return nil
	}
	out := make([]TargetMessage, 0, len(attachments))
	for _, att := range attachments {
		switch kind := Classify(att.Filename); kind {
		case MediaImage:
			preview := att.ProxyURL
			if preview == "" {
				preview = att.URL
			}
			out = append(out, NewImage(att.URL, preview))
		case MediaAudio:
			out = append(out, NewAudio(att.URL))
		case MediaVideo:
			out = append(out, NewVideo(att.URL))
		default:
			if log != nil {
				log.Info("dropping attachment with unsupported media type",
					slog.String("filename", att.Filename),
					slog.String("kind", kind.String()),
				)
			}
		}
	}
	return out
}
