package nlp

import "golang.org/x/text/language"

type Intent string

const (
	IntentGreeting  Intent = "greeting"
	IntentFAQ       Intent = "faq"
	IntentSmallTalk Intent = "small_talk"
	IntentGoodbye   Intent = "goodbye"
	IntentHelp      Intent = "help"
	IntentFallback  Intent = "fallback"
)

func (i Intent) String() string {
	return string(i)
}

// AllIntents returns every intent in declaration order.
func AllIntents() []Intent {
	return []Intent{
		IntentGreeting,
		IntentFAQ,
		IntentSmallTalk,
		IntentGoodbye,
		IntentHelp,
		IntentFallback,
	}
}

func ParseIntent(s string) (Intent, bool) {
	for _, intent := range AllIntents() {
		if string(intent) == s {
			return intent, true
		}
	}
	return "", false
}

const (
	EntityGreetingType = "greeting_type"
	EntityTopic        = "topic"
	EntityFAQTopic     = "faq_topic"
)

var (
	LanguageEnglish = language.English.String()
	LanguageHindi   = language.Hindi.String()
)

const (
	FallbackConfidence = 0.5
	MaxConfidence      = 0.9
	confidenceBoost    = 0.3

	UltimateFallbackResponse = "I'm sorry, I didn't understand that. Could you please try again?"
)

type IntentMatch struct {
	Intent         Intent            `json:"intent"`
	Confidence     float64           `json:"confidence"`
	Entities       map[string]string `json:"entities"`
	MatchedPattern string            `json:"matched_pattern"`
}

// Clone returns a copy that shares no map with m.
func (m IntentMatch) Clone() IntentMatch {
	entities := make(map[string]string, len(m.Entities))
	for k, v := range m.Entities {
		entities[k] = v
	}
	m.Entities = entities
	return m
}

func (m IntentMatch) Entity(key string) (string, bool) {
	v, ok := m.Entities[key]
	return v, ok
}

func fallbackMatch() IntentMatch {
	return IntentMatch{
		Intent:         IntentFallback,
		Confidence:     FallbackConfidence,
		Entities:       map[string]string{},
		MatchedPattern: "",
	}
}

type IIntentRecognizer interface {
	Recognize(text string) IntentMatch
}

type IResponseGenerator interface {
	Generate(match IntentMatch, language string) string
	Candidates(match IntentMatch, language string) []string
}

type CacheStats struct {
	Hits     int64 `json:"hits"`
	Misses   int64 `json:"misses"`
	Size     int   `json:"size"`
	Capacity int   `json:"capacity"`
}
