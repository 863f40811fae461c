package service

import (
	"context"
	"strings"

	"github.com/bobbyohyeah/skyebot-support/internal/domain"
	"github.com/bobbyohyeah/skyebot-support/internal/stream"
	"go.uber.org/zap"
)

// Sink receives reply output as it streams. Text gets every raw
// fragment; Chunk, when set, gets sentence-bounded segments suitable
// for speech synthesis. Either callback may be nil.
type Sink struct {
	Text  func(string)
	Chunk func(stream.Chunk)
}

// Responder drives one streamed conversation turn end to end.
type Responder struct {
	engine Engine
	logger *zap.Logger
}

// NewResponder creates a responder over the engine.
func NewResponder(engine Engine, logger *zap.Logger) *Responder {
	return &Responder{engine: engine, logger: logger}
}

// StreamTurn sends the inquiry, forwards streamed output to the sink
// and records the reply in the session. On a mid-stream failure the
// partial text is still recorded and returned alongside the error.
func (r *Responder) StreamTurn(ctx context.Context, sess *Session, model, inquiry string, sink Sink) (domain.Reply, error) {
	turns := sess.BuildPrompt(inquiry)

	frags, err := r.engine.StreamGenerate(ctx, model, turns)
	if err != nil {
		return domain.Reply{}, err
	}

	var (
		full      strings.Builder
		usage     *domain.Usage
		streamErr error
		seg       *stream.Segmenter
	)
	if sink.Chunk != nil {
		seg = stream.NewSegmenter(0)
	}

	for frag := range frags {
		if frag.Err != nil {
			streamErr = frag.Err
			break
		}
		if frag.Usage != nil {
			usage = frag.Usage
		}
		if frag.Text == "" {
			continue
		}
		full.WriteString(frag.Text)
		if sink.Text != nil {
			sink.Text(frag.Text)
		}
		if seg != nil {
			for _, chunk := range seg.Feed(frag.Text) {
				sink.Chunk(chunk)
			}
		}
	}

	if seg != nil && streamErr == nil {
		if chunk, ok := seg.Flush(); ok {
			sink.Chunk(chunk)
		}
	}

	text := full.String()
	sess.RecordReply(text)
	if streamErr != nil {
		r.logger.Warn("stream interrupted", zap.Error(streamErr), zap.Int("partial_len", len(text)))
	}
	return domain.Reply{Text: text, Usage: usage}, streamErr
}
