package chat

import (
	"VoiceBot/internal/dialog"
	"VoiceBot/internal/entity"
	"VoiceBot/pkg/nlp"
	"mime/multipart"
	"time"
)

type CreateSessionResponse struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

type MessageRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,max=64"`
	Text      string `json:"text" validate:"max=20000"`
	Language  string `json:"language" validate:"omitempty,max=16"`
}

type MessageResponse struct {
	SessionID          string            `json:"session_id"`
	Response           string            `json:"response"`
	Intent             nlp.Intent        `json:"intent"`
	Confidence         float64           `json:"confidence"`
	Entities           map[string]string `json:"entities"`
	Language           string            `json:"language"`
	LanguageConfidence float64           `json:"language_confidence"`
	LanguageDetected   bool              `json:"language_detected"`
}

type VoiceRequest struct {
	AudioFile *multipart.FileHeader `json:"audio_file" validate:"required"`
	SessionID string                `json:"session_id" validate:"omitempty,max=64"`
	Language  string                `json:"language" validate:"omitempty,max=16"`
	Speak     bool                  `json:"speak"`
}

type VoiceResponse struct {
	MessageResponse
	Transcript  string `json:"transcript"`
	AudioBase64 string `json:"audio_base64,omitempty"`
	AudioFormat string `json:"audio_format,omitempty"`
}

type HistoryResponse struct {
	SessionID string                    `json:"session_id"`
	Turns     []entity.ConversationTurn `json:"turns"`
	Count     int                       `json:"count"`
}

type NLPTestRequest struct {
	Text     string `json:"text" validate:"max=20000"`
	Language string `json:"language" validate:"omitempty,max=16"`
}

type NLPTestResponse struct {
	Match              nlp.IntentMatch `json:"match"`
	Candidates         []string        `json:"candidates"`
	Language           string          `json:"language"`
	LanguageConfidence float64         `json:"language_confidence"`
	ProcessingTime     string          `json:"processing_time"`
}

type IntentsResponse struct {
	Intents   []string `json:"intents"`
	Languages []string `json:"languages"`
}

type StatsResponse struct {
	ActiveSessions int                    `json:"active_sessions"`
	MaxSessions    int                    `json:"max_sessions"`
	Processing     dialog.ProcessingStats `json:"processing"`
	Cache          CacheTotals            `json:"cache"`
	Sessions       []entity.ChatSession   `json:"sessions"`
}

type CacheTotals struct {
	RecognizerHits   int64 `json:"recognizer_hits"`
	RecognizerMisses int64 `json:"recognizer_misses"`
	GeneratorHits    int64 `json:"generator_hits"`
	GeneratorMisses  int64 `json:"generator_misses"`
}

type ClearCachesResponse struct {
	Sessions int `json:"sessions"`
}

// WSMessage is a client frame on the chat socket. Either Command or Text is
// set.
type WSMessage struct {
	Command  string `json:"command,omitempty"`
	Text     string `json:"text,omitempty"`
	Language string `json:"language,omitempty"`
}

type WSReply struct {
	Type      string           `json:"type"`
	SessionID string           `json:"session_id,omitempty"`
	Message   *MessageResponse `json:"message,omitempty"`
	History   *HistoryResponse `json:"history,omitempty"`
	Error     string           `json:"error,omitempty"`
	Code      string           `json:"code,omitempty"`
}

const (
	WSCommandHistory = "history"
	WSCommandClear   = "clear"

	WSTypeSession = "session"
	WSTypeMessage = "message"
	WSTypeHistory = "history"
	WSTypeCleared = "cleared"
	WSTypeError   = "error"
)
