package relay

import (
	"context"
	"log/slog"
)

// MaxBatchSize is the push API ceiling on messages per call.
const MaxBatchSize = 5

// Pusher delivers one batch of target messages to a destination. An error
// covers the whole batch.
type Pusher interface {
	Push(ctx context.Context, to string, batch []TargetMessage) error
}

// Forwarder turns an inbound message into target messages and pushes them to
// the fixed destination, best effort per batch.
type Forwarder struct {
	logger    *slog.Logger
	pusher    Pusher
	targetID  string
	batchSize int
}

// NewForwarder creates a Forwarder pushing to targetID. A batchSize of zero
// or above the API ceiling falls back to MaxBatchSize.
func NewForwarder(log *slog.Logger, pusher Pusher, targetID string, batchSize int) *Forwarder {
	if log == nil {
		log = slog.Default()
	}
	if batchSize <= 0 || batchSize > MaxBatchSize {
		batchSize = MaxBatchSize
	}
	return &Forwarder{
		logger:    log.With(slog.String("component", "forwarder")),
		pusher:    pusher,
		targetID:  targetID,
		batchSize: batchSize,
	}
}

// Forward transforms msg and pushes the result. Order is fixed: the card (or
// peer text) first, then one plain-text call-out per extracted link, then
// attachment messages. Batches are pushed sequentially so that order is
// preserved in the target channel; a failed batch is logged and skipped
// without aborting the rest.
func (f *Forwarder) Forward(ctx context.Context, msg InboundMessage) {
	messages := BuildCard(msg)
	for _, link := range ExtractLinks(msg.Content) {
		messages = append(messages, NewText(link))
	}
	messages = append(messages, TransformAttachments(f.logger, msg.Attachments)...)

	for _, batch := range splitBatches(messages, f.batchSize) {
		if err := f.pusher.Push(ctx, f.targetID, batch); err != nil {
			f.logger.Error("push batch failed",
				slog.String("to", f.targetID),
				slog.Int("batch_size", len(batch)),
				slog.Any("batch", batchContents(batch)),
				slog.Any("error", err),
			)
		}
	}
}

// splitBatches partitions messages into runs of at most size, in order, with
// nothing duplicated or dropped.
func splitBatches(messages []TargetMessage, size int) [][]TargetMessage {
	if len(messages) == 0 {
		return nil
	}
	batches := make([][]TargetMessage, 0, (len(messages)+size-1)/size)
	for start := 0; start < len(messages); start += size {
		batches = append(batches, messages[start:min(start+size, len(messages))])
	}
	return batches
}

// batchContents renders a batch for the failure log: kind plus the body,
// alt text, or content URL of each message.
func batchContents(batch []TargetMessage) []string {
	contents := make([]string, 0, len(batch))
	for _, m := range batch {
		switch m.Kind {
		case TargetText:
			contents = append(contents, "text:"+m.Text)
		case TargetCard:
			contents = append(contents, "card:"+m.Card.AltText)
		default:
			contents = append(contents, m.Kind.String()+":"+m.URL)
		}
	}
	return contents
}
