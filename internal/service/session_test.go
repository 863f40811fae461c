package service

import (
	"testing"

	"github.com/bobbyohyeah/skyebot-support/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRefs() []domain.ContextRef {
	return []domain.ContextRef{
		{Name: "Supported Drones", URI: "files/abc", MIMEType: "text/plain"},
		{Name: "Pricing Faq", URI: "files/def", MIMEType: "text/csv"},
	}
}

func TestFirstPromptCarriesContext(t *testing.T) {
	sess := NewSession("be helpful", testRefs())

	turns := sess.BuildPrompt("how long does processing take?")
	require.Len(t, turns, 1)
	require.Equal(t, domain.RoleUser, turns[0].Role)

	parts := turns[0].Parts
	require.Len(t, parts, 5)
	assert.Equal(t, "be helpful", parts[0].Text)
	assert.True(t, parts[1].IsFile())
	assert.Equal(t, "files/abc", parts[1].FileURI)
	assert.True(t, parts[2].IsFile())
	assert.Equal(t, "--- User Inquiry ---", parts[3].Text)
	assert.Equal(t, "how long does processing take?", parts[4].Text)
}

func TestLaterPromptsAreTextOnly(t *testing.T) {
	sess := NewSession("be helpful", testRefs())
	sess.BuildPrompt("first question")
	sess.RecordReply("first answer")

	turns := sess.BuildPrompt("second question")
	require.Len(t, turns, 3)

	last := turns[2]
	require.Len(t, last.Parts, 1)
	assert.Equal(t, "second question", last.Parts[0].Text)
	assert.False(t, last.Parts[0].IsFile())

	// Files live only in the opening turn.
	for _, turn := range turns[1:] {
		for _, p := range turn.Parts {
			assert.False(t, p.IsFile())
		}
	}
}

func TestRecordReplyAlternatesRoles(t *testing.T) {
	sess := NewSession("sys", nil)
	sess.BuildPrompt("q1")
	sess.RecordReply("a1")
	sess.BuildPrompt("q2")
	sess.RecordReply("a2")

	h := sess.History()
	require.Len(t, h, 4)
	assert.Equal(t, domain.RoleUser, h[0].Role)
	assert.Equal(t, domain.RoleModel, h[1].Role)
	assert.Equal(t, domain.RoleUser, h[2].Role)
	assert.Equal(t, domain.RoleModel, h[3].Role)
	assert.Equal(t, "a1", h[1].Parts[0].Text)
}

func TestEmptyReplyIsNotRecorded(t *testing.T) {
	sess := NewSession("sys", nil)
	sess.BuildPrompt("q1")
	sess.RecordReply("")

	require.Len(t, sess.History(), 1)

	// The next inquiry is then another user turn in a row, which keeps
	// the transcript consistent with what the model actually said.
	turns := sess.BuildPrompt("q2")
	assert.Len(t, turns, 2)
	assert.Equal(t, domain.RoleUser, turns[1].Role)
}
