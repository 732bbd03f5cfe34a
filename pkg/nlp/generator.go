package nlp

import (
	"fmt"
	"math/rand/v2"
)

type GeneratorOption func(*ResponseGenerator)

// WithPicker replaces the uniform random index source. pick(n) must return
// a value in [0, n).
func WithPicker(pick func(n int) int) GeneratorOption {
	return func(g *ResponseGenerator) {
		g.pick = pick
	}
}

// ResponseGenerator turns an IntentMatch into reply text. The tables are
// copied at construction and never mutated, so one generator may be shared.
type ResponseGenerator struct {
	intents map[Intent]map[string][]string
	faq     map[string]map[string][]string
	pick    func(n int) int
}

func NewResponseGenerator(table ResponseTable, opts ...GeneratorOption) (*ResponseGenerator, error) {
	for intent, pools := range table.Intents {
		if err := validatePools(string(intent), pools); err != nil {
			return nil, err
		}
	}
	for topic, pools := range table.FAQ {
		if err := validatePools("faq topic "+topic, pools); err != nil {
			return nil, err
		}
	}

	// Unmatched input always resolves to fallback, so it needs an English pool.
	if len(table.Intents[IntentFallback][LanguageEnglish]) == 0 {
		return nil, fmt.Errorf("intent %s has no %q responses", IntentFallback, LanguageEnglish)
	}

	g := &ResponseGenerator{
		intents: make(map[Intent]map[string][]string, len(table.Intents)),
		faq:     make(map[string]map[string][]string, len(table.FAQ)),
		pick:    rand.IntN,
	}
	for intent, pools := range table.Intents {
		g.intents[intent] = copyPools(pools)
	}
	for topic, pools := range table.FAQ {
		g.faq[topic] = copyPools(pools)
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

func (g *ResponseGenerator) Generate(match IntentMatch, language string) string {
	return pickFrom(g.Candidates(match, language), g.pick)
}

// Candidates resolves the pool a reply is drawn from: the FAQ topic pool
// in language, then the intent pool in language, then the intent pool in
// English, then the fixed fallback sentence. The returned slice must not
// be modified.
func (g *ResponseGenerator) Candidates(match IntentMatch, language string) []string {
	if match.Intent == IntentFAQ {
		if topic, ok := match.Entities[EntityFAQTopic]; ok {
			if pool := g.faq[topic][language]; len(pool) > 0 {
				return pool
			}
		}
	}

	if pool := g.intents[match.Intent][language]; len(pool) > 0 {
		return pool
	}
	if pool := g.intents[match.Intent][LanguageEnglish]; len(pool) > 0 {
		return pool
	}

	return []string{UltimateFallbackResponse}
}

func pickFrom(pool []string, pick func(n int) int) string {
	switch len(pool) {
	case 0:
		return UltimateFallbackResponse
	case 1:
		return pool[0]
	}

	i := pick(len(pool))
	if i < 0 || i >= len(pool) {
		i = 0
	}
	return pool[i]
}

func validatePools(owner string, pools map[string][]string) error {
	for lang, pool := range pools {
		if len(pool) == 0 {
			return fmt.Errorf("%s: empty %q response pool", owner, lang)
		}
		for i, candidate := range pool {
			if candidate == "" {
				return fmt.Errorf("%s: empty response at %s[%d]", owner, lang, i)
			}
		}
	}
	return nil
}

func copyPools(pools map[string][]string) map[string][]string {
	out := make(map[string][]string, len(pools))
	for lang, pool := range pools {
		out[lang] = append([]string(nil), pool...)
	}
	return out
}

// ValidateCoverage checks that everything the recognizer can emit has an
// English reply.
func ValidateCoverage(patterns PatternTable, responses ResponseTable) error {
	for _, ip := range patterns.Intents {
		if len(responses.Intents[ip.Intent][LanguageEnglish]) == 0 {
			return fmt.Errorf("intent %s has no %q responses", ip.Intent, LanguageEnglish)
		}
	}
	if len(patterns.FAQ) > 0 && len(responses.Intents[IntentFAQ][LanguageEnglish]) == 0 {
		return fmt.Errorf("intent %s has no %q responses", IntentFAQ, LanguageEnglish)
	}
	for _, fp := range patterns.FAQ {
		if len(responses.FAQ[fp.Topic][LanguageEnglish]) == 0 {
			return fmt.Errorf("faq topic %s has no %q responses", fp.Topic, LanguageEnglish)
		}
	}
	return nil
}
