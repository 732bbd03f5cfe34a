package chat

import (
	"VoiceBot/pkg/response"
	"net/http"
)

var (
	ErrSessionNotFound     = response.NewCodedError(http.StatusNotFound, "SESSION_NOT_FOUND", "session not found")
	ErrSessionLimitReached = response.NewCodedError(http.StatusServiceUnavailable, "SESSION_LIMIT_REACHED", "too many active sessions")
	ErrInvalidAudioFile    = response.NewCodedError(http.StatusBadRequest, "INVALID_AUDIO", "invalid audio file")
	ErrSpeechNotConfigured = response.NewCodedError(http.StatusServiceUnavailable, "SPEECH_DISABLED", "speech recognition is not configured")
	ErrTranscriptionFailed = response.NewCodedError(http.StatusBadGateway, "TRANSCRIPTION_FAILED", "failed to transcribe audio")
	ErrEmptyTranscript     = response.NewCodedError(http.StatusUnprocessableEntity, "EMPTY_TRANSCRIPT", "no speech recognized in audio")
	ErrUnknownCommand      = response.NewCodedError(http.StatusBadRequest, "UNKNOWN_COMMAND", "unknown command")
)
