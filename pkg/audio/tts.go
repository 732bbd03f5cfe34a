package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const (
	DefaultElevenLabsURL = "https://api.elevenlabs.io/v1"
	elevenLabsModel      = "eleven_multilingual_v2"
	AudioFormatMPEG      = "audio/mpeg"
)

type ISynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

type ttsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type SynthesizerOption func(*elevenLabs)

func WithBaseURL(url string) SynthesizerOption {
	return func(e *elevenLabs) {
		e.baseURL = url
	}
}

func WithHTTPClient(client *http.Client) SynthesizerOption {
	return func(e *elevenLabs) {
		e.client = client
	}
}

type elevenLabs struct {
	apiKey  string
	voiceID string
	baseURL string
	client  *http.Client
}

// NewSynthesizer returns nil when either credential is missing.
func NewSynthesizer(apiKey, voiceID string, opts ...SynthesizerOption) ISynthesizer {
	if apiKey == "" || voiceID == "" {
		return nil
	}

	e := &elevenLabs{
		apiKey:  apiKey,
		voiceID: voiceID,
		baseURL: DefaultElevenLabsURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *elevenLabs) Synthesize(ctx context.Context, text string) ([]byte, error) {
	body, err := jsoniter.Marshal(ttsRequest{
		Text:    text,
		ModelID: elevenLabsModel,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.8,
			Style:           0.0,
			UseSpeakerBoost: true,
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/text-to-speech/"+e.voiceID, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", AudioFormatMPEG)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ElevenLabs API error: %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}
