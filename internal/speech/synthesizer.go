// Package speech provides text-to-speech synthesis, speech recognition
// and local audio I/O for the voice adapter.
package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const ttsEndpoint = "https://texttospeech.googleapis.com/v1/text:synthesize"

// Synthesizer converts a text segment into playable audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// SynthesizerOptions selects the voice for a GoogleSynthesizer.
type SynthesizerOptions struct {
	Voice        string
	LanguageCode string
	SpeakingRate float64
}

// GoogleSynthesizer calls the Google Cloud Text-to-Speech REST API with
// an API key. LINEAR16 output carries a WAV header, so the returned
// bytes are playable as-is.
type GoogleSynthesizer struct {
	apiKey string
	opts   SynthesizerOptions
	client *http.Client
	logger *zap.Logger
}

// NewGoogleSynthesizer builds a synthesizer. Empty option fields fall
// back to a conversational en-US voice at normal rate.
func NewGoogleSynthesizer(apiKey string, opts SynthesizerOptions, logger *zap.Logger) *GoogleSynthesizer {
	if opts.Voice == "" {
		opts.Voice = "en-US-Chirp3-HD-Leda"
	}
	if opts.LanguageCode == "" {
		opts.LanguageCode = "en-US"
	}
	if opts.SpeakingRate == 0 {
		opts.SpeakingRate = 1.0
	}
	return &GoogleSynthesizer{
		apiKey: apiKey,
		opts:   opts,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

type synthesizeRequest struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
		Name         string `json:"name"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding string  `json:"audioEncoding"`
		SpeakingRate  float64 `json:"speakingRate"`
	} `json:"audioConfig"`
}

type synthesizeResponse struct {
	AudioContent string `json:"audioContent"`
}

// Synthesize renders one text segment to WAV audio.
func (s *GoogleSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	var reqBody synthesizeRequest
	reqBody.Input.Text = text
	reqBody.Voice.LanguageCode = s.opts.LanguageCode
	reqBody.Voice.Name = s.opts.Voice
	reqBody.AudioConfig.AudioEncoding = "LINEAR16"
	reqBody.AudioConfig.SpeakingRate = s.opts.SpeakingRate

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal synthesize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ttsEndpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create synthesize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", s.apiKey)

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesize request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("synthesize returned %d: %s", resp.StatusCode, body)
	}

	var out synthesizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode synthesize response: %w", err)
	}

	audio, err := base64.StdEncoding.DecodeString(out.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("decode audio content: %w", err)
	}

	s.logger.Debug("synthesized segment",
		zap.Int("text_len", len(text)),
		zap.Int("audio_bytes", len(audio)),
		zap.Duration("took", time.Since(start)),
	)
	return audio, nil
}
