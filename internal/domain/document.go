package domain

// Declaration names a remote context document. The logical name is
// derived from the GDRIVE_* configuration key that declared it.
type Declaration struct {
	Name     string `json:"name"`
	SourceID string `json:"source_id"`
}

// ContextDocument is a locally cached, engine-ingestible document.
// Documents are never mutated in place; a refresh overwrites the cache
// file wholesale.
type ContextDocument struct {
	Name     string `json:"name"`
	SourceID string `json:"source_id,omitempty"`
	Path     string `json:"path"`
	MIMEType string `json:"mime_type"`
}

// ContextRef is the opaque handle returned by the completion engine
// after a file upload. Refs are created once per process and shared
// read-only across every conversation turn.
type ContextRef struct {
	Name     string `json:"name"`
	URI      string `json:"uri"`
	MIMEType string `json:"mime_type"`
}
