package domain

import "errors"

// Per-document fetch errors. These are logged and the document skipped;
// they never abort the run on their own.
var (
	// ErrUnsupportedType indicates a source content type with no text conversion
	ErrUnsupportedType = errors.New("unsupported content type")
	// ErrTransport indicates a transport-level fault talking to the document store
	ErrTransport = errors.New("transport error")
	// ErrNotFound indicates the remote document does not exist
	ErrNotFound = errors.New("document not found")
)

// Initialization errors. All of these are fatal: the process refuses to
// serve without grounded context.
var (
	// ErrNoConfiguredDocuments indicates no GDRIVE_* declarations were found
	ErrNoConfiguredDocuments = errors.New("no configured documents")
	// ErrNoDocumentsFetched indicates every configured document failed to fetch
	ErrNoDocumentsFetched = errors.New("no documents fetched")
	// ErrNoUploadsSucceeded indicates every fetched document failed to upload
	ErrNoUploadsSucceeded = errors.New("no uploads succeeded")
	// ErrMissingCredential indicates a required API key or credential file is absent
	ErrMissingCredential = errors.New("missing credential")
	// ErrClientInit indicates the engine client could not be constructed
	ErrClientInit = errors.New("client initialization failed")
)

// Per-turn generation errors, recovered by reporting to the caller.
var (
	// ErrEngineRejected indicates the engine refused the generation request
	ErrEngineRejected = errors.New("engine rejected request")
)
