package stream

import (
	"strings"
	"testing"
)

func TestFeedCutsAtSentenceBoundaries(t *testing.T) {
	s := NewSegmenter(0)

	chunks := s.Feed("The battery lasts about 25 minutes. Charging takes an hour. And")
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
	if chunks[0].Text != "The battery lasts about 25 minutes." {
		t.Errorf("unexpected first chunk: %q", chunks[0].Text)
	}
	if chunks[1].Text != "Charging takes an hour." {
		t.Errorf("unexpected second chunk: %q", chunks[1].Text)
	}
	for _, c := range chunks {
		if !c.SentenceComplete {
			t.Errorf("chunk %q should be sentence-complete", c.Text)
		}
	}
	if s.Pending() != " And" {
		t.Errorf("unexpected pending text: %q", s.Pending())
	}
}

func TestShortSegmentsWaitForNextTerminator(t *testing.T) {
	s := NewSegmenter(15)

	// "Yes. " alone is under the minimum and must not be cut.
	if chunks := s.Feed("Yes. "); len(chunks) != 0 {
		t.Fatalf("expected no chunks for short segment, got %v", chunks)
	}
	chunks := s.Feed("The drone supports that mode. ")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "Yes. The drone supports that mode." {
		t.Errorf("unexpected chunk: %q", chunks[0].Text)
	}
}

func TestTerminatorNeedsTrailingWhitespace(t *testing.T) {
	s := NewSegmenter(5)

	// A period followed by a digit is not a sentence boundary.
	if chunks := s.Feed("Firmware v1.2 is required"); len(chunks) != 0 {
		t.Fatalf("expected no chunks, got %v", chunks)
	}
	chunks := s.Feed(". Update first.")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "Firmware v1.2 is required." {
		t.Errorf("unexpected chunk: %q", chunks[0].Text)
	}
}

func TestFlushEmitsRemainder(t *testing.T) {
	s := NewSegmenter(0)
	s.Feed("This reply just stops mid")

	chunk, ok := s.Flush()
	if !ok {
		t.Fatal("expected a final chunk")
	}
	if chunk.Text != "This reply just stops mid" {
		t.Errorf("unexpected final chunk: %q", chunk.Text)
	}
	if chunk.SentenceComplete {
		t.Error("unterminated remainder should not be sentence-complete")
	}

	if _, ok := s.Flush(); ok {
		t.Error("second flush should report nothing pending")
	}
}

func TestFlushMarksTerminatedRemainderComplete(t *testing.T) {
	s := NewSegmenter(50)
	s.Feed("Short but done!")

	chunk, ok := s.Flush()
	if !ok {
		t.Fatal("expected a final chunk")
	}
	if !chunk.SentenceComplete {
		t.Error("terminated remainder should be sentence-complete")
	}
}

func TestFragmentationDoesNotChangeCuts(t *testing.T) {
	text := "SkyeBrowse works with most DJI drones. Upload your video after the flight! " +
		"Processing usually finishes within an hour? See the docs for edge cases. tail"

	var wholeTexts, byteTexts []string

	s1 := NewSegmenter(0)
	for _, c := range s1.Feed(text) {
		wholeTexts = append(wholeTexts, c.Text)
	}
	if c, ok := s1.Flush(); ok {
		wholeTexts = append(wholeTexts, c.Text)
	}

	s2 := NewSegmenter(0)
	for i := 0; i < len(text); i++ {
		for _, c := range s2.Feed(text[i : i+1]) {
			byteTexts = append(byteTexts, c.Text)
		}
	}
	if c, ok := s2.Flush(); ok {
		byteTexts = append(byteTexts, c.Text)
	}

	if strings.Join(wholeTexts, "|") != strings.Join(byteTexts, "|") {
		t.Errorf("cut points differ:\nwhole: %v\nbytes: %v", wholeTexts, byteTexts)
	}
	if len(wholeTexts) != 5 {
		t.Errorf("expected 5 chunks, got %d: %v", len(wholeTexts), wholeTexts)
	}
}

func TestFlushOnEmptySegmenter(t *testing.T) {
	s := NewSegmenter(0)
	if _, ok := s.Flush(); ok {
		t.Error("empty segmenter should flush nothing")
	}
}
