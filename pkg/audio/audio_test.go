package audio

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSynthesizer_MissingCredentials(t *testing.T) {
	assert.Nil(t, NewSynthesizer("", "voice"))
	assert.Nil(t, NewSynthesizer("key", ""))
}

func TestSynthesize(t *testing.T) {
	var got ttsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/text-to-speech/voice-1", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("xi-api-key"))
		assert.Equal(t, AudioFormatMPEG, r.Header.Get("Accept"))

		body, _ := io.ReadAll(r.Body)
		_ = jsoniter.Unmarshal(body, &got)

		w.Header().Set("Content-Type", AudioFormatMPEG)
		_, _ = w.Write([]byte("ID3audio"))
	}))
	defer srv.Close()

	tts := NewSynthesizer("secret", "voice-1", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	require.NotNil(t, tts)

	audio, err := tts.Synthesize(context.Background(), "Hello! How can I help you today?")
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3audio"), audio)
	assert.Equal(t, "Hello! How can I help you today?", got.Text)
	assert.Equal(t, elevenLabsModel, got.ModelID)
}

func TestSynthesize_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tts := NewSynthesizer("bad", "voice-1", WithBaseURL(srv.URL))
	_, err := tts.Synthesize(context.Background(), "hi")
	assert.ErrorContains(t, err, "401")
}

func TestNewTranscriber_MissingKey(t *testing.T) {
	assert.Nil(t, NewTranscriber(""))
}

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "hi", r.FormValue("language"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"  नमस्ते  "}`))
	}))
	defer srv.Close()

	config := openai.DefaultConfig("test-key")
	config.BaseURL = srv.URL + "/v1"

	text, err := NewTranscriberWithConfig(config).Transcribe(context.Background(), "clip.wav", []byte("RIFF"), "hi")
	require.NoError(t, err)
	assert.Equal(t, "नमस्ते", text)
}

func TestTranscribe_EmptyAudio(t *testing.T) {
	config := openai.DefaultConfig("test-key")
	_, err := NewTranscriberWithConfig(config).Transcribe(context.Background(), "clip.wav", nil, "")
	assert.Error(t, err)
}
