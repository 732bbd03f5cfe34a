package dialog

import (
	"fmt"
	"time"

	"VoiceBot/internal/entity"
	"VoiceBot/pkg/nlp"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Input struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type Reply struct {
	Response   string            `json:"response"`
	Intent     nlp.Intent        `json:"intent"`
	Confidence float64           `json:"confidence"`
	Entities   map[string]string `json:"entities"`
	Language   string            `json:"language"`

	// Turn is the history entry this call appended.
	Turn entity.ConversationTurn `json:"-"`
}

type CacheConfig struct {
	Enabled        bool
	RecognizerSize int
	GeneratorSize  int
}

func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:        true,
		RecognizerSize: nlp.DefaultRecognizerCacheSize,
		GeneratorSize:  nlp.DefaultGeneratorCacheSize,
	}
}

type CacheStats struct {
	Recognizer *nlp.CacheStats `json:"recognizer,omitempty"`
	Generator  *nlp.CacheStats `json:"generator,omitempty"`
}

type Option func(*Manager)

func WithHistorySize(size int) Option {
	return func(m *Manager) {
		m.history = NewHistory(size)
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// Manager owns one conversation: its recognizer, generator and bounded
// history. A Manager shares no mutable state with other managers and is safe
// for concurrent use.
type Manager struct {
	log        *logrus.Logger
	recognizer nlp.IIntentRecognizer
	generator  nlp.IResponseGenerator
	history    *History
	latency    *latencyWindow
	now        func() time.Time
}

func New(log *logrus.Logger, recognizer nlp.IIntentRecognizer, generator nlp.IResponseGenerator, opts ...Option) *Manager {
	if log == nil {
		log = logrus.StandardLogger()
	}

	m := &Manager{
		log:        log,
		recognizer: recognizer,
		generator:  generator,
		history:    NewHistory(DefaultHistorySize),
		latency:    newLatencyWindow(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewDefault builds a manager over the built-in English and Hindi tables.
func NewDefault(log *logrus.Logger, cache CacheConfig, opts ...Option) (*Manager, error) {
	engine, err := NewEngine()
	if err != nil {
		return nil, err
	}
	return engine.NewManager(log, cache, opts...)
}

// ProcessInput always returns a non-empty reply, even when recognition or
// generation panics.
func (m *Manager) ProcessInput(text, language string) string {
	return m.Process(text, language).Response
}

func (m *Manager) Process(text, language string) (reply Reply) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			traceID := uuid.NewString()
			m.log.WithFields(logrus.Fields{
				"trace_id":     traceID,
				"panic":        fmt.Sprint(r),
				"language":     language,
				"input_length": len(text),
			}).Error("[dialog.Process] recovered from panic")

			reply = Reply{
				Response:   nlp.UltimateFallbackResponse,
				Intent:     nlp.IntentFallback,
				Confidence: 0,
				Entities:   map[string]string{},
				Language:   language,
			}
			reply.Turn = m.record(text, reply)
		}
		m.latency.record(time.Since(start))
	}()

	match := m.recognizer.Recognize(text)
	response := m.generator.Generate(match, language)
	if response == "" {
		response = nlp.UltimateFallbackResponse
	}

	reply = Reply{
		Response:   response,
		Intent:     match.Intent,
		Confidence: match.Confidence,
		Entities:   match.Entities,
		Language:   language,
	}
	reply.Turn = m.record(text, reply)

	m.log.WithFields(logrus.Fields{
		"intent":     match.Intent,
		"confidence": match.Confidence,
		"language":   language,
		"pattern":    match.MatchedPattern,
		"latency_us": time.Since(start).Microseconds(),
	}).Debug("[dialog.Process] turn processed")

	return reply
}

func (m *Manager) record(text string, reply Reply) entity.ConversationTurn {
	turn := entity.ConversationTurn{
		UserInput:   text,
		BotResponse: reply.Response,
		Intent:      string(reply.Intent),
		Timestamp:   m.now().Format(time.RFC3339Nano),
	}
	m.history.Append(turn)
	return turn
}

// ProcessBatch handles inputs in order; each one becomes a history turn.
func (m *Manager) ProcessBatch(inputs []Input) []string {
	responses := make([]string, 0, len(inputs))
	for _, in := range inputs {
		responses = append(responses, m.ProcessInput(in.Text, in.Language))
	}
	return responses
}

func (m *Manager) History() []entity.ConversationTurn {
	return m.history.Snapshot()
}

func (m *Manager) ClearHistory() {
	m.history.Clear()
}

func (m *Manager) SupportedIntents() []string {
	intents := nlp.AllIntents()
	out := make([]string, 0, len(intents))
	for _, intent := range intents {
		out = append(out, intent.String())
	}
	return out
}

func (m *Manager) Stats() ProcessingStats {
	return m.latency.snapshot()
}

type purger interface {
	Purge()
}

type cacheReporter interface {
	Stats() nlp.CacheStats
}

// ClearCaches empties whichever components are caching decorators.
func (m *Manager) ClearCaches() {
	if p, ok := m.recognizer.(purger); ok {
		p.Purge()
	}
	if p, ok := m.generator.(purger); ok {
		p.Purge()
	}
}

func (m *Manager) CacheStats() CacheStats {
	var stats CacheStats
	if c, ok := m.recognizer.(cacheReporter); ok {
		s := c.Stats()
		stats.Recognizer = &s
	}
	if c, ok := m.generator.(cacheReporter); ok {
		s := c.Stats()
		stats.Generator = &s
	}
	return stats
}
