package speech

import (
	"context"

	"go.uber.org/zap"
)

// Pipeline overlaps synthesis with playback: while one segment plays,
// the next is already being synthesized. Playback stays strictly in
// enqueue order; a segment whose synthesis fails is skipped so one bad
// request does not silence the rest of the reply.
type Pipeline struct {
	synth  Synthesizer
	player Player
	logger *zap.Logger

	texts chan string
	audio chan []byte
	done  chan struct{}
}

// NewPipeline creates an idle pipeline. Call Start before Enqueue.
func NewPipeline(synth Synthesizer, player Player, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		synth:  synth,
		player: player,
		logger: logger,
		texts:  make(chan string, 8),
		audio:  make(chan []byte, 2),
		done:   make(chan struct{}),
	}
}

// Start launches the synthesis and playback stages.
func (p *Pipeline) Start(ctx context.Context) {
	go p.synthLoop(ctx)
	go p.playLoop(ctx)
}

// Enqueue submits one text segment for synthesis and playback. Blocks
// when the pipeline is saturated, which backpressures the producer.
func (p *Pipeline) Enqueue(text string) {
	p.texts <- text
}

// Close signals that no more segments will arrive.
func (p *Pipeline) Close() {
	close(p.texts)
}

// Wait blocks until every enqueued segment has finished playing.
func (p *Pipeline) Wait() {
	<-p.done
}

func (p *Pipeline) synthLoop(ctx context.Context) {
	defer close(p.audio)
	for text := range p.texts {
		audio, err := p.synth.Synthesize(ctx, text)
		if err != nil {
			p.logger.Warn("skipping segment", zap.Error(err))
			continue
		}
		if len(audio) == 0 {
			continue
		}
		select {
		case p.audio <- audio:
		case <-ctx.Done():
			return
		}
	}
}

func (p *Pipeline) playLoop(ctx context.Context) {
	defer close(p.done)
	for audio := range p.audio {
		if err := p.player.Play(ctx, audio); err != nil {
			p.logger.Warn("playback failed", zap.Error(err))
		}
	}
}
