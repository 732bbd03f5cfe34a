package dialog

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"VoiceBot/pkg/nlp"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	logger, _ := test.NewNullLogger()
	m, err := NewDefault(logger, DefaultCacheConfig(), opts...)
	require.NoError(t, err)
	return m
}

type panickingRecognizer struct{}

func (panickingRecognizer) Recognize(string) nlp.IntentMatch {
	panic("pattern evaluation blew up")
}

type silentGenerator struct{}

func (silentGenerator) Generate(nlp.IntentMatch, string) string     { return "" }
func (silentGenerator) Candidates(nlp.IntentMatch, string) []string { return nil }

func TestProcessInput_EndToEnd(t *testing.T) {
	m := newTestManager(t)
	table := nlp.DefaultResponseTable()

	first := m.ProcessInput("Hello", "en")
	assert.Contains(t, table.Intents[nlp.IntentGreeting]["en"], first)

	second := m.ProcessInput("नमस्ते", "hi")
	assert.Contains(t, table.Intents[nlp.IntentGreeting]["hi"], second)

	history := m.History()
	require.Len(t, history, 2)
	assert.Equal(t, "Hello", history[0].UserInput)
	assert.Equal(t, first, history[0].BotResponse)
	assert.Equal(t, "greeting", history[0].Intent)
	assert.Equal(t, "नमस्ते", history[1].UserInput)
	assert.Equal(t, second, history[1].BotResponse)
}

func TestProcess_Reply(t *testing.T) {
	m := newTestManager(t)

	reply := m.Process("What is a voice bot?", "hi")
	assert.Equal(t, nlp.IntentFAQ, reply.Intent)
	assert.Equal(t, "what_is_voice_bot", reply.Entities[nlp.EntityFAQTopic])
	assert.Equal(t, "hi", reply.Language)
	assert.Contains(t, nlp.DefaultResponseTable().FAQ["what_is_voice_bot"]["hi"], reply.Response)

	reply = m.Process("blah blah", "fr")
	assert.Equal(t, nlp.IntentFallback, reply.Intent)
	assert.Contains(t, nlp.DefaultResponseTable().Intents[nlp.IntentFallback]["en"], reply.Response)

	history := m.History()
	require.Len(t, history, 2)
	assert.Equal(t, history[1], reply.Turn)
	assert.Equal(t, "blah blah", reply.Turn.UserInput)
	assert.Equal(t, reply.Response, reply.Turn.BotResponse)
}

func TestProcessInput_HistoryBounded(t *testing.T) {
	m := newTestManager(t)

	for i := 0; i < 15; i++ {
		m.ProcessInput(fmt.Sprintf("message %d", i), "en")
	}

	history := m.History()
	require.Len(t, history, DefaultHistorySize)
	for i, turn := range history {
		assert.Equal(t, fmt.Sprintf("message %d", i+5), turn.UserInput)
	}
}

func TestProcessInput_NeverEmpty(t *testing.T) {
	m := newTestManager(t)

	inputs := []string{
		"",
		"   ",
		strings.Repeat("x", 10000),
		"\x00\x01\x02",
		"🙂",
		string([]byte{0xff, 0xfe}),
		"!!!???...,,;;",
		"hello नमस्ते how are you",
		"नमस्ते hello",
	}
	for _, input := range inputs {
		for _, lang := range []string{"en", "hi", "", "zz"} {
			assert.NotEmpty(t, m.ProcessInput(input, lang))
		}
	}
}

func TestProcess_PunctuationAndMixedScript(t *testing.T) {
	m := newTestManager(t)

	tests := []struct {
		input  string
		intent nlp.Intent
	}{
		{input: "!!!???...,,;;", intent: nlp.IntentFallback},
		{input: "hello नमस्ते how are you", intent: nlp.IntentGreeting},
		{input: "नमस्ते hello", intent: nlp.IntentGreeting},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			reply := m.Process(tt.input, "hi")
			assert.Equal(t, tt.intent, reply.Intent)
			assert.NotEmpty(t, reply.Response)
			if tt.intent == nlp.IntentFallback {
				assert.Equal(t, nlp.FallbackConfidence, reply.Confidence)
				assert.Empty(t, reply.Entities)
			}
		})
	}
}

func TestProcessInput_RecoversPanic(t *testing.T) {
	logger, hook := test.NewNullLogger()
	generator, err := nlp.NewResponseGenerator(nlp.DefaultResponseTable())
	require.NoError(t, err)

	m := New(logger, panickingRecognizer{}, generator)

	var response string
	assert.NotPanics(t, func() {
		response = m.ProcessInput("hello", "en")
	})
	assert.Equal(t, nlp.UltimateFallbackResponse, response)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.NotEmpty(t, entry.Data["trace_id"])

	history := m.History()
	require.Len(t, history, 1)
	assert.Equal(t, "fallback", history[0].Intent)
}

func TestProcessInput_EmptyGeneration(t *testing.T) {
	logger, _ := test.NewNullLogger()
	recognizer, err := nlp.NewIntentRecognizer(nlp.DefaultPatternTable())
	require.NoError(t, err)

	m := New(logger, recognizer, silentGenerator{})
	assert.Equal(t, nlp.UltimateFallbackResponse, m.ProcessInput("hello", "en"))
}

func TestClearHistory_Idempotent(t *testing.T) {
	m := newTestManager(t)

	m.ClearHistory()
	assert.Empty(t, m.History())

	m.ProcessInput("hi", "en")
	m.ClearHistory()
	m.ClearHistory()
	assert.Empty(t, m.History())
}

func TestHistory_IsCopy(t *testing.T) {
	m := newTestManager(t)
	m.ProcessInput("hello", "en")

	history := m.History()
	history[0].UserInput = "changed"

	assert.Equal(t, "hello", m.History()[0].UserInput)
}

func TestProcessInput_Timestamp(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	m := newTestManager(t, WithClock(func() time.Time { return fixed }))

	m.ProcessInput("hello", "en")
	assert.Equal(t, "2024-03-01T10:30:00Z", m.History()[0].Timestamp)
}

func TestProcessBatch(t *testing.T) {
	m := newTestManager(t)
	table := nlp.DefaultResponseTable()

	responses := m.ProcessBatch([]Input{
		{Text: "hello", Language: "en"},
		{Text: "bye", Language: "hi"},
	})
	require.Len(t, responses, 2)
	assert.Contains(t, table.Intents[nlp.IntentGreeting]["en"], responses[0])
	assert.Contains(t, table.Intents[nlp.IntentGoodbye]["hi"], responses[1])
	assert.Len(t, m.History(), 2)
}

func TestSupportedIntents(t *testing.T) {
	m := newTestManager(t)
	assert.Equal(t,
		[]string{"greeting", "faq", "small_talk", "goodbye", "help", "fallback"},
		m.SupportedIntents(),
	)
}

func TestStats(t *testing.T) {
	m := newTestManager(t)
	assert.Equal(t, 0, m.Stats().Count)

	for i := 0; i < 3; i++ {
		m.ProcessInput("hello", "en")
	}

	stats := m.Stats()
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, int64(3), stats.Total)
	assert.LessOrEqual(t, stats.Min, stats.Average)
	assert.LessOrEqual(t, stats.Average, stats.Max)
}

func TestClearCaches(t *testing.T) {
	m := newTestManager(t)

	m.ProcessInput("hello", "en")
	m.ProcessInput("hello", "en")

	stats := m.CacheStats()
	require.NotNil(t, stats.Recognizer)
	require.NotNil(t, stats.Generator)
	assert.Equal(t, int64(1), stats.Recognizer.Hits)
	assert.Equal(t, 1, stats.Recognizer.Size)

	m.ClearCaches()
	stats = m.CacheStats()
	assert.Equal(t, 0, stats.Recognizer.Size)
	assert.Equal(t, 0, stats.Generator.Size)
}

func TestNewManager_CacheDisabled(t *testing.T) {
	logger, _ := test.NewNullLogger()
	m, err := NewDefault(logger, CacheConfig{Enabled: false})
	require.NoError(t, err)

	m.ClearCaches()
	assert.Nil(t, m.CacheStats().Recognizer)
	assert.NotEmpty(t, m.ProcessInput("hello", "en"))
}

func TestNewManager_InvalidCacheSize(t *testing.T) {
	logger, _ := test.NewNullLogger()
	_, err := NewDefault(logger, CacheConfig{Enabled: true, RecognizerSize: 0, GeneratorSize: 10})
	assert.Error(t, err)
}

func TestManager_Concurrent(t *testing.T) {
	m := newTestManager(t)
	inputs := []string{"hello", "नमस्ते", "bye", "help", "what is the weather", "random"}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.NotEmpty(t, m.ProcessInput(inputs[(worker+j)%len(inputs)], "en"))
				if j%10 == 0 {
					assert.LessOrEqual(t, len(m.History()), DefaultHistorySize)
				}
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, m.History(), DefaultHistorySize)
	assert.Equal(t, int64(1000), m.Stats().Total)
}

func TestManagers_Independent(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)
	logger, _ := test.NewNullLogger()

	a, err := engine.NewManager(logger, DefaultCacheConfig())
	require.NoError(t, err)
	b, err := engine.NewManager(logger, DefaultCacheConfig())
	require.NoError(t, err)

	a.ProcessInput("hello", "en")
	assert.Len(t, a.History(), 1)
	assert.Empty(t, b.History())
	assert.Equal(t, 0, b.CacheStats().Recognizer.Size)
}

func TestNewEngineFromTables_Invalid(t *testing.T) {
	patterns := nlp.DefaultPatternTable()
	patterns.Intents[0].Patterns = append(patterns.Intents[0].Patterns, "(broken")

	_, err := NewEngineFromTables(patterns, nlp.DefaultResponseTable())
	assert.Error(t, err)

	responses := nlp.DefaultResponseTable()
	delete(responses.FAQ, "privacy")
	_, err = NewEngineFromTables(nlp.DefaultPatternTable(), responses)
	assert.Error(t, err)
}
