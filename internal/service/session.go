package service

import (
	"github.com/bobbyohyeah/skyebot-support/internal/domain"
)

// inquiryDelimiter separates the static context preamble from the
// user's actual question in the opening turn.
const inquiryDelimiter = "--- User Inquiry ---"

// Session holds one conversation's transcript. The system instruction
// and file references are embedded in the opening user turn only;
// every later turn carries just the inquiry text. Not safe for
// concurrent use.
type Session struct {
	instruction string
	refs        []domain.ContextRef
	history     []domain.Turn
}

// NewSession creates a session over the prepared context references.
func NewSession(instruction string, refs []domain.ContextRef) *Session {
	return &Session{instruction: instruction, refs: refs}
}

// BuildPrompt appends the inquiry as a user turn and returns the full
// transcript to send. The first inquiry is packaged with the system
// instruction and the document references; the files are never resent.
func (s *Session) BuildPrompt(inquiry string) []domain.Turn {
	var turn domain.Turn
	if len(s.history) == 0 {
		parts := make([]domain.Part, 0, len(s.refs)+3)
		parts = append(parts, domain.TextPart(s.instruction))
		for _, ref := range s.refs {
			parts = append(parts, domain.FilePart(ref))
		}
		parts = append(parts, domain.TextPart(inquiryDelimiter))
		parts = append(parts, domain.TextPart(inquiry))
		turn = domain.Turn{Role: domain.RoleUser, Parts: parts}
	} else {
		turn = domain.Turn{Role: domain.RoleUser, Parts: []domain.Part{domain.TextPart(inquiry)}}
	}
	s.history = append(s.history, turn)
	return s.history
}

// RecordReply appends the model's reply to the transcript. An empty
// reply is not recorded. A partial reply from an interrupted stream is
// recorded so the conversation stays coherent.
func (s *Session) RecordReply(text string) {
	if text == "" {
		return
	}
	s.history = append(s.history, domain.Turn{
		Role:  domain.RoleModel,
		Parts: []domain.Part{domain.TextPart(text)},
	})
}

// History returns the transcript accumulated so far.
func (s *Session) History() []domain.Turn {
	return s.history
}
