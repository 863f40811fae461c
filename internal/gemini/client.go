// Package gemini adapts the Gemini API to the completion-engine
// capability the services consume: upload-once file context, streamed
// and non-streamed generation with usage accounting.
package gemini

import (
	"context"
	"fmt"

	"github.com/bobbyohyeah/skyebot-support/internal/domain"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Client wraps a genai.Client. The handle is initialized once per
// process and safe for concurrent use after that.
type Client struct {
	gc     *genai.Client
	logger *zap.Logger
}

// NewClient builds a Gemini client from the API key.
func NewClient(ctx context.Context, apiKey string, logger *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set: %w", domain.ErrMissingCredential)
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrClientInit)
	}
	return &Client{gc: gc, logger: logger}, nil
}

// Upload pushes one cached document to the engine's file store and
// returns its content reference. Each document is uploaded exactly once
// per process; the ref is reused across every turn.
func (c *Client) Upload(ctx context.Context, doc domain.ContextDocument) (domain.ContextRef, error) {
	f, err := c.gc.Files.UploadFromPath(ctx, doc.Path, &genai.UploadFileConfig{
		MIMEType: doc.MIMEType,
	})
	if err != nil {
		return domain.ContextRef{}, fmt.Errorf("upload %s: %w", doc.Name, err)
	}

	mime := f.MIMEType
	if mime == "" {
		mime = doc.MIMEType
	}
	c.logger.Info("uploaded context file",
		zap.String("name", doc.Name),
		zap.String("file", f.Name),
	)
	return domain.ContextRef{Name: doc.Name, URI: f.URI, MIMEType: mime}, nil
}

// StreamGenerate starts a streamed generation over the full transcript
// and returns a channel of text fragments. A mid-stream failure is
// delivered as a final fragment with Err set; the channel then closes.
func (c *Client) StreamGenerate(ctx context.Context, model string, turns []domain.Turn) (<-chan domain.Fragment, error) {
	contents := toContents(turns)
	out := make(chan domain.Fragment, 16)

	go func() {
		defer close(out)
		for resp, err := range c.gc.Models.GenerateContentStream(ctx, model, contents, generateConfig()) {
			if err != nil {
				out <- domain.Fragment{Err: fmt.Errorf("%v: %w", err, domain.ErrEngineRejected)}
				return
			}
			frag := domain.Fragment{Text: resp.Text()}
			if resp.UsageMetadata != nil {
				frag.Usage = toUsage(resp.UsageMetadata)
			}
			out <- frag
		}
	}()
	return out, nil
}

// Generate performs a non-streaming generation, used by the webhook.
func (c *Client) Generate(ctx context.Context, model string, turns []domain.Turn) (domain.Reply, error) {
	resp, err := c.gc.Models.GenerateContent(ctx, model, toContents(turns), generateConfig())
	if err != nil {
		return domain.Reply{}, fmt.Errorf("%v: %w", err, domain.ErrEngineRejected)
	}

	reply := domain.Reply{Text: resp.Text()}
	if resp.UsageMetadata != nil {
		reply.Usage = toUsage(resp.UsageMetadata)
	}
	if reply.Text == "" {
		c.logger.Warn("engine returned empty response", zap.String("model", model))
	}
	return reply, nil
}

func generateConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "text/plain",
	}
}

func toContents(turns []domain.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		parts := make([]*genai.Part, 0, len(t.Parts))
		for _, p := range t.Parts {
			if p.IsFile() {
				parts = append(parts, genai.NewPartFromURI(p.FileURI, p.MIMEType))
			} else {
				parts = append(parts, genai.NewPartFromText(p.Text))
			}
		}
		contents = append(contents, &genai.Content{Role: string(t.Role), Parts: parts})
	}
	return contents
}

func toUsage(um *genai.GenerateContentResponseUsageMetadata) *domain.Usage {
	return &domain.Usage{
		InputTokens:  um.PromptTokenCount,
		OutputTokens: um.CandidatesTokenCount,
		TotalTokens:  um.TotalTokenCount,
	}
}
