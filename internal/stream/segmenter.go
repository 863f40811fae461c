// Package stream segments a streamed token sequence into speakable
// sentence chunks so synthesis can start before generation finishes.
package stream

import "strings"

// DefaultMinChunkLen is the minimum pending-segment length before a cut
// is taken at a sentence terminator. Shorter segments wait for the next
// terminator: very short "sentences" are usually abbreviations.
const DefaultMinChunkLen = 15

// Chunk is one sentence-bounded segment of streamed text.
type Chunk struct {
	Text             string
	SentenceComplete bool
}

// Segmenter is an incremental scanner over streamed text fragments. It
// holds a pending buffer and a scan cursor so each byte is examined
// once, regardless of how the text is split across fragments. Feeding a
// whole response at once or character by character produces the same
// cut points.
type Segmenter struct {
	minLen   int
	pending  string
	scanFrom int
}

// NewSegmenter creates a segmenter. A non-positive minLen selects
// DefaultMinChunkLen.
func NewSegmenter(minLen int) *Segmenter {
	if minLen <= 0 {
		minLen = DefaultMinChunkLen
	}
	return &Segmenter{minLen: minLen}
}

// Feed appends a fragment to the pending buffer and returns every chunk
// that can be cut: a sentence terminator (. ? !) followed by whitespace,
// with the pending segment longer than the minimum length.
func (s *Segmenter) Feed(fragment string) []Chunk {
	s.pending += fragment

	var chunks []Chunk
	i := s.scanFrom
	for i < len(s.pending)-1 {
		if isTerminator(s.pending[i]) && isSpace(s.pending[i+1]) {
			segment := s.pending[:i+1]
			if len(segment) > s.minLen {
				chunks = append(chunks, Chunk{
					Text:             strings.TrimSpace(segment),
					SentenceComplete: true,
				})
				s.pending = s.pending[i+1:]
				i = 0
				continue
			}
		}
		i++
	}
	s.scanFrom = i
	return chunks
}

// Flush emits any leftover pending text as a final chunk after the
// stream ends, even if it never reached a sentence terminator. The
// second return is false when nothing remains.
func (s *Segmenter) Flush() (Chunk, bool) {
	text := strings.TrimSpace(s.pending)
	s.pending = ""
	s.scanFrom = 0
	if text == "" {
		return Chunk{}, false
	}
	return Chunk{
		Text:             text,
		SentenceComplete: isTerminator(text[len(text)-1]),
	}, true
}

// Pending returns the text accumulated since the last cut.
func (s *Segmenter) Pending() string {
	return s.pending
}

func isTerminator(b byte) bool {
	return b == '.' || b == '?' || b == '!'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}
