// Package drive retrieves context documents from Google Drive and
// converts them into engine-ingestible cache files.
package drive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/bobbyohyeah/skyebot-support/internal/domain"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Metadata describes a remote document before download.
type Metadata struct {
	Name     string
	MIMEType string
}

// Store is the document-store capability the fetcher depends on.
type Store interface {
	// Metadata resolves the content type and display name of a document.
	Metadata(ctx context.Context, id string) (Metadata, error)
	// Content opens the document body. A non-empty exportMIME requests a
	// converted export; empty means a direct media download.
	Content(ctx context.Context, id, exportMIME string) (io.ReadCloser, error)
}

type driveStore struct {
	svc *gdrive.Service
}

// NewStore builds a Drive-backed Store using the installed-app OAuth
// flow: credentials from credentialsPath, cached token at tokenPath.
// When no valid token exists the user is prompted on the console once.
func NewStore(ctx context.Context, credentialsPath, tokenPath string) (Store, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read client secret file %s: %w", credentialsPath, domain.ErrMissingCredential)
	}

	oauthCfg, err := google.ConfigFromJSON(b, gdrive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse client secret file: %w", err)
	}

	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		tok, err = tokenFromConsole(ctx, oauthCfg)
		if err != nil {
			return nil, err
		}
		saveToken(tokenPath, tok)
	}

	svc, err := gdrive.NewService(ctx, option.WithHTTPClient(oauthCfg.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("build drive service: %w", err)
	}
	return &driveStore{svc: svc}, nil
}

func (s *driveStore) Metadata(ctx context.Context, id string) (Metadata, error) {
	f, err := s.svc.Files.Get(id).Fields("mimeType", "name").Context(ctx).Do()
	if err != nil {
		return Metadata{}, wrapDriveError(id, err)
	}
	return Metadata{Name: f.Name, MIMEType: f.MimeType}, nil
}

func (s *driveStore) Content(ctx context.Context, id, exportMIME string) (io.ReadCloser, error) {
	var resp *http.Response
	var err error
	if exportMIME != "" {
		resp, err = s.svc.Files.Export(id, exportMIME).Context(ctx).Download()
	} else {
		resp, err = s.svc.Files.Get(id).Context(ctx).Download()
	}
	if err != nil {
		return nil, wrapDriveError(id, err)
	}
	return resp.Body, nil
}

func wrapDriveError(id string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	return fmt.Errorf("file %s: %v: %w", id, err, domain.ErrTransport)
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, err
	}
	return tok, nil
}

// tokenFromConsole runs the manual authorization flow: print the URL,
// read the code back from stdin, exchange it for a token.
func tokenFromConsole(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the authorization code:\n%v\n", authURL)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("read authorization code: %w", err)
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return tok, nil
}

// saveToken is best-effort: a failure only means re-authorizing next run.
func saveToken(path string, tok *oauth2.Token) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		fmt.Printf("Warning: unable to cache oauth token: %v\n", err)
		return
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(tok); err != nil {
		fmt.Printf("Warning: unable to write oauth token: %v\n", err)
	}
}
