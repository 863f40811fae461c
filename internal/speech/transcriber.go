package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const sttEndpoint = "https://speech.googleapis.com/v1/speech:recognize"

// Transcriber converts recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// GoogleTranscriber calls the Google Cloud Speech-to-Text REST API with
// an API key. Audio is expected as LINEAR16 WAV at the configured
// sample rate.
type GoogleTranscriber struct {
	apiKey       string
	languageCode string
	sampleRate   int
	client       *http.Client
	logger       *zap.Logger
}

// NewGoogleTranscriber builds a transcriber for the given language and
// sample rate.
func NewGoogleTranscriber(apiKey, languageCode string, sampleRate int, logger *zap.Logger) *GoogleTranscriber {
	if languageCode == "" {
		languageCode = "en-US"
	}
	if sampleRate == 0 {
		sampleRate = 16000
	}
	return &GoogleTranscriber{
		apiKey:       apiKey,
		languageCode: languageCode,
		sampleRate:   sampleRate,
		client:       &http.Client{Timeout: 30 * time.Second},
		logger:       logger,
	}
}

type recognizeRequest struct {
	Config struct {
		Encoding        string `json:"encoding"`
		SampleRateHertz int    `json:"sampleRateHertz"`
		LanguageCode    string `json:"languageCode"`
	} `json:"config"`
	Audio struct {
		Content string `json:"content"`
	} `json:"audio"`
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string `json:"transcript"`
		} `json:"alternatives"`
	} `json:"results"`
}

// Transcribe recognizes one utterance. An empty result set means
// nothing intelligible was heard and is reported as an error so the
// caller can reprompt.
func (t *GoogleTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	var reqBody recognizeRequest
	reqBody.Config.Encoding = "LINEAR16"
	reqBody.Config.SampleRateHertz = t.sampleRate
	reqBody.Config.LanguageCode = t.languageCode
	reqBody.Audio.Content = base64.StdEncoding.EncodeToString(audio)

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal recognize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sttEndpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create recognize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("recognize request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("recognize returned %d: %s", resp.StatusCode, body)
	}

	var out recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode recognize response: %w", err)
	}

	var parts []string
	for _, r := range out.Results {
		if len(r.Alternatives) > 0 {
			parts = append(parts, r.Alternatives[0].Transcript)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no speech recognized")
	}

	text := strings.Join(parts, " ")
	t.logger.Debug("transcribed utterance", zap.Int("audio_bytes", len(audio)), zap.Int("text_len", len(text)))
	return text, nil
}
