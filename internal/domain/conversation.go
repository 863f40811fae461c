package domain

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Modality is the selected response format.
type Modality string

const (
	ModalityEmail Modality = "email"
	ModalityChat  Modality = "chat"
	ModalityVoice Modality = "voice"
)

// Part is one piece of turn content: either inline text or a reference
// to a context file previously uploaded to the engine.
type Part struct {
	Text     string `json:"text,omitempty"`
	FileURI  string `json:"file_uri,omitempty"`
	MIMEType string `json:"mime_type,omitempty"`
}

// TextPart builds an inline text part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// FilePart builds a content-reference part.
func FilePart(ref ContextRef) Part {
	return Part{FileURI: ref.URI, MIMEType: ref.MIMEType}
}

// IsFile reports whether the part references an uploaded file.
func (p Part) IsFile() bool {
	return p.FileURI != ""
}

// Turn is one role-tagged contribution to a conversation history.
type Turn struct {
	Role  Role   `json:"role"`
	Parts []Part `json:"parts"`
}

// Fragment is one increment of a streamed model reply. A non-nil Err
// means the stream failed mid-turn; no further fragments follow it.
type Fragment struct {
	Text  string
	Usage *Usage
	Err   error
}

// Reply is the complete model output for one turn.
type Reply struct {
	Text  string
	Usage *Usage
}
