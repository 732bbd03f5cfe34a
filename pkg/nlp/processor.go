package nlp

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

type intentRule struct {
	intent   Intent
	patterns []compiledPattern
}

type faqRule struct {
	topic    string
	patterns []compiledPattern
}

// IntentRecognizer classifies text with an ordered first-match-wins scan over
// a compiled PatternTable. It is read-only after construction and safe for
// concurrent use.
type IntentRecognizer struct {
	rules     []intentRule
	faqRules  []faqRule
	extractor *EntityExtractor
}

func NewIntentRecognizer(table PatternTable) (*IntentRecognizer, error) {
	seen := make(map[Intent]bool, len(table.Intents))
	rules := make([]intentRule, 0, len(table.Intents))
	for _, ip := range table.Intents {
		if ip.Intent == IntentFallback || ip.Intent == IntentFAQ {
			return nil, fmt.Errorf("intent %q cannot carry patterns directly", ip.Intent)
		}
		if _, ok := ParseIntent(string(ip.Intent)); !ok {
			return nil, fmt.Errorf("unknown intent %q", ip.Intent)
		}
		if seen[ip.Intent] {
			return nil, fmt.Errorf("intent %q listed twice", ip.Intent)
		}
		seen[ip.Intent] = true

		compiled, err := compileAll(ip.Patterns)
		if err != nil {
			return nil, fmt.Errorf("intent %s: %w", ip.Intent, err)
		}
		rules = append(rules, intentRule{intent: ip.Intent, patterns: compiled})
	}

	topics := make(map[string]bool, len(table.FAQ))
	faqRules := make([]faqRule, 0, len(table.FAQ))
	for _, fp := range table.FAQ {
		if fp.Topic == "" {
			return nil, fmt.Errorf("faq topic name is empty")
		}
		if topics[fp.Topic] {
			return nil, fmt.Errorf("faq topic %q listed twice", fp.Topic)
		}
		topics[fp.Topic] = true

		compiled, err := compileAll(fp.Patterns)
		if err != nil {
			return nil, fmt.Errorf("faq topic %s: %w", fp.Topic, err)
		}
		faqRules = append(faqRules, faqRule{topic: fp.Topic, patterns: compiled})
	}

	extractor, err := NewEntityExtractor()
	if err != nil {
		return nil, fmt.Errorf("entity extractor: %w", err)
	}

	return &IntentRecognizer{
		rules:     rules,
		faqRules:  faqRules,
		extractor: extractor,
	}, nil
}

// Recognize never fails: text matching no pattern yields the fallback intent.
func (r *IntentRecognizer) Recognize(text string) IntentMatch {
	normalized := Normalize(text)
	if normalized == "" {
		return fallbackMatch()
	}

	for _, rule := range r.rules {
		for _, p := range rule.patterns {
			matched, ok := p.find(normalized)
			if !ok {
				continue
			}
			return IntentMatch{
				Intent:         rule.intent,
				Confidence:     confidence(matched, normalized),
				Entities:       r.extractor.Extract(rule.intent, normalized),
				MatchedPattern: p.source,
			}
		}
	}

	for _, rule := range r.faqRules {
		for _, p := range rule.patterns {
			matched, ok := p.find(normalized)
			if !ok {
				continue
			}
			return IntentMatch{
				Intent:         IntentFAQ,
				Confidence:     confidence(matched, normalized),
				Entities:       map[string]string{EntityFAQTopic: rule.topic},
				MatchedPattern: p.source,
			}
		}
	}

	return fallbackMatch()
}

// Normalize trims, composes to NFC and lower-cases text. Combining marks are
// kept since Devanagari vowel signs carry meaning.
func Normalize(text string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(text)))
}

func confidence(matched, normalized string) float64 {
	total := utf8.RuneCountInString(normalized)
	if total == 0 {
		return FallbackConfidence
	}
	ratio := float64(utf8.RuneCountInString(matched)) / float64(total)
	return math.Min(MaxConfidence, ratio+confidenceBoost)
}
