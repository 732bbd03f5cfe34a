package langdetect

import (
	"math"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/language"
)

const (
	DefaultConfidenceThreshold = 0.6

	scriptWeight  = 0.7
	wordWeight    = 0.3
	maxConfidence = 0.95
	noSignal      = 0.5
)

var (
	English = language.English.String()
	Hindi   = language.Hindi.String()
)

type IDetector interface {
	Detect(text string) (string, float64)
	Threshold() float64
}

// Detector guesses English or Hindi from script counts and common words.
type Detector struct {
	mu           sync.RWMutex
	threshold    float64
	hindiWords   map[string]struct{}
	englishWords map[string]struct{}
}

func New(threshold float64) *Detector {
	return &Detector{
		threshold:    clamp(threshold),
		hindiWords:   toSet(defaultHindiWords),
		englishWords: toSet(defaultEnglishWords),
	}
}

// Detect returns a language code and a confidence in [0, 0.95]. Empty input
// yields ("en", 0) and input with no usable signal yields ("en", 0.5).
func (d *Detector) Detect(text string) (string, float64) {
	if strings.TrimSpace(text) == "" {
		return English, 0.0
	}

	var hindiChars, englishChars int
	for _, r := range text {
		switch {
		case unicode.In(r, unicode.Devanagari, unicode.Bengali):
			hindiChars++
		case r < unicode.MaxASCII && unicode.IsLetter(r):
			englishChars++
		}
	}

	d.mu.RLock()
	var hindiWords, englishWords int
	for _, word := range splitWords(strings.ToLower(text)) {
		if _, ok := d.hindiWords[word]; ok {
			hindiWords++
		}
		if _, ok := d.englishWords[word]; ok {
			englishWords++
		}
	}
	d.mu.RUnlock()

	totalChars := hindiChars + englishChars
	totalWords := hindiWords + englishWords
	if totalChars == 0 && totalWords == 0 {
		return English, noSignal
	}

	hindiScore := ratio(hindiChars, totalChars)*scriptWeight + ratio(hindiWords, totalWords)*wordWeight
	englishScore := ratio(englishChars, totalChars)*scriptWeight + ratio(englishWords, totalWords)*wordWeight

	if hindiScore > englishScore {
		return Hindi, math.Min(hindiScore, maxConfidence)
	}
	return English, math.Min(englishScore, maxConfidence)
}

func (d *Detector) IsHindi(text string) bool {
	lang, confidence := d.Detect(text)
	return lang == Hindi && confidence >= d.Threshold()
}

func (d *Detector) IsEnglish(text string) bool {
	lang, confidence := d.Detect(text)
	return lang == English && confidence >= d.Threshold()
}

func (d *Detector) Threshold() float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.threshold
}

func (d *Detector) SetThreshold(threshold float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.threshold = clamp(threshold)
}

// AddWords extends the word list of a supported language. Unknown codes are
// ignored.
func (d *Detector) AddWords(lang string, words ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var set map[string]struct{}
	switch lang {
	case Hindi:
		set = d.hindiWords
	case English:
		set = d.englishWords
	default:
		return
	}
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
}

func SupportedLanguages() []string {
	return []string{English, Hindi}
}

// splitWords treats combining marks as part of a word so matras stay
// attached to their consonants.
func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) || r == '_')
	})
}

func ratio(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

var defaultHindiWords = []string{
	"है", "हैं", "था", "थे", "थी", "हो", "होता", "होती", "होते",
	"मैं", "तुम", "आप", "वह", "यह", "हम", "उन्हें", "इस", "उस", "क्या",
	"कैसे", "कब", "कहाँ", "क्यों", "कौन", "कितना", "कितनी", "कितने",
	"अच्छा", "बुरा", "बड़ा", "छोटा", "नया", "पुराना", "सुंदर", "अच्छी",
	"धन्यवाद", "शुक्रिया", "नमस्ते", "नमस्कार", "हैलो", "अलविदा",
	"हाँ", "नहीं", "शायद", "ज़रूर", "बिल्कुल",
}

var defaultEnglishWords = []string{
	"the", "be", "to", "of", "and", "a", "in", "that", "have", "i",
	"it", "for", "not", "on", "with", "he", "as", "you", "do", "at",
	"this", "but", "his", "by", "from", "they", "she", "or", "an",
	"will", "my", "one", "all", "would", "there", "their", "what",
	"so", "up", "out", "if", "about", "who", "get", "which", "go",
	"me", "when", "make", "can", "like", "time", "no", "just", "him",
	"know", "take", "people", "into", "year", "your", "good", "some",
	"could", "them", "see", "other", "than", "then", "now", "look",
	"only", "come", "its", "over", "think", "also", "back", "after",
	"use", "two", "how", "our", "work", "first", "well", "way", "even",
	"new", "want", "because", "any", "these", "give", "day", "most",
	"us", "is", "was", "are", "were", "been", "being", "has",
	"had", "does", "did", "should", "may", "might", "must", "shall",
}
