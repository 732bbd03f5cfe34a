package audio

import (
	"bytes"
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

var ErrNotConfigured = errors.New("audio backend not configured")

type ITranscriber interface {
	Transcribe(ctx context.Context, filename string, audio []byte, language string) (string, error)
}

type transcriber struct {
	client *openai.Client
}

// NewTranscriber returns nil when apiKey is empty so callers can treat speech
// input as disabled.
func NewTranscriber(apiKey string) ITranscriber {
	if apiKey == "" {
		return nil
	}
	return &transcriber{client: openai.NewClient(apiKey)}
}

func NewTranscriberWithConfig(config openai.ClientConfig) ITranscriber {
	return &transcriber{client: openai.NewClientWithConfig(config)}
}

func (t *transcriber) Transcribe(ctx context.Context, filename string, audio []byte, language string) (string, error) {
	if len(audio) == 0 {
		return "", errors.New("empty audio payload")
	}

	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: filename,
		Reader:   bytes.NewReader(audio),
		Language: language,
	}

	resp, err := t.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.Text), nil
}
