package nlp

import (
	"fmt"
	"regexp"

	"golang.org/x/text/unicode/norm"
)

// IntentPatterns lists the pattern sources for one intent. Each source is an
// alternation of phrases; it is wrapped with word boundaries when compiled.
type IntentPatterns struct {
	Intent   Intent
	Patterns []string
}

type FAQPatterns struct {
	Topic    string
	Patterns []string
}

// PatternTable is scanned in slice order: Intents first, then FAQ topics.
type PatternTable struct {
	Intents []IntentPatterns
	FAQ     []FAQPatterns
}

func DefaultPatternTable() PatternTable {
	return PatternTable{
		Intents: []IntentPatterns{
			{
				Intent: IntentGreeting,
				Patterns: []string{
					`hi|hello|hey|good morning|good afternoon|good evening`,
					`how are you|how do you do`,
					`nice to meet you|pleased to meet you`,
					`नमस्ते|नमस्कार|हैलो|हाय|सुप्रभात|शुभ संध्या`,
					`आप कैसे हैं|कैसे हो|कैसी हैं`,
					`मिलकर खुशी हुई|आपसे मिलकर अच्छा लगा`,
				},
			},
			{
				Intent: IntentGoodbye,
				Patterns: []string{
					`bye|goodbye|see you|farewell|take care`,
					`have a good day|have a nice day`,
					`catch you later|talk to you later`,
					`अलविदा|बाय|फिर मिलते हैं|खुदा हाफिज`,
					`शुभ दिन|अच्छा दिन`,
					`बाद में बात करते हैं|फिर बात करते हैं`,
				},
			},
			{
				Intent: IntentHelp,
				Patterns: []string{
					`help|can you help|what can you do`,
					`how does this work|how to use`,
					`what are your capabilities|what can you help with`,
					`मदद|सहायता|क्या आप मदद कर सकते हैं`,
					`यह कैसे काम करता है|कैसे उपयोग करें`,
					`आप क्या कर सकते हैं|क्या मदद कर सकते हैं`,
				},
			},
			{
				Intent: IntentSmallTalk,
				Patterns: []string{
					`how is the weather|what is the weather`,
					`tell me about yourself|who are you`,
					`what time is it|what is the time`,
					`how old are you|what is your age`,
					`where are you from|where do you live`,
					`मौसम कैसा है|आज मौसम कैसा है`,
					`आपके बारे में बताइए|आप कौन हैं`,
					`क्या समय हुआ है|समय क्या है`,
					`आपकी उम्र क्या है|आप कितने साल के हैं`,
					`आप कहाँ से हैं|आप कहाँ रहते हैं`,
				},
			},
		},
		FAQ: []FAQPatterns{
			{
				Topic: "what_is_voice_bot",
				Patterns: []string{
					`what is a voice bot|what is voice assistant`,
					`explain voice bot|define voice bot`,
					`क्या है वॉयस बॉट|वॉयस असिस्टेंट क्या है`,
				},
			},
			{
				Topic: "how_it_works",
				Patterns: []string{
					`how does voice recognition work|how does speech recognition work`,
					`how does tts work|how does text to speech work`,
					`वॉयस रिकग्निशन कैसे काम करता है|स्पीच रिकग्निशन कैसे काम करता है`,
				},
			},
			{
				Topic: "supported_languages",
				Patterns: []string{
					`what languages do you support|which languages are supported`,
					`do you speak hindi|do you understand hindi`,
					`कौन सी भाषाएं सपोर्ट करते हैं|हिंदी बोलते हैं`,
				},
			},
			{
				Topic: "privacy",
				Patterns: []string{
					`is my data safe|do you store my conversations`,
					`privacy policy|data protection`,
					`क्या मेरा डेटा सुरक्षित है|प्राइवेसी पॉलिसी`,
				},
			},
		},
	}
}

// Go's \b only knows ASCII word characters, so Devanagari needs explicit
// boundaries. Letters, combining marks (matras), digits and underscore are
// word runes.
const (
	boundaryPrefix = `(?i)(?:^|[^\p{L}\p{M}\p{N}_])(`
	boundarySuffix = `)(?:[^\p{L}\p{M}\p{N}_]|$)`
)

type compiledPattern struct {
	source string
	re     *regexp.Regexp
}

func compilePattern(source string) (compiledPattern, error) {
	if source == "" {
		return compiledPattern{}, fmt.Errorf("empty pattern")
	}

	re, err := regexp.Compile(boundaryPrefix + norm.NFC.String(source) + boundarySuffix)
	if err != nil {
		return compiledPattern{}, err
	}

	return compiledPattern{source: source, re: re}, nil
}

// find returns the bounded substring of text that matched, if any.
func (p compiledPattern) find(text string) (string, bool) {
	loc := p.re.FindStringSubmatchIndex(text)
	if loc == nil || loc[2] < 0 {
		return "", false
	}
	return text[loc[2]:loc[3]], true
}

func compileAll(patterns []string) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, source := range patterns {
		p, err := compilePattern(source)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", source, err)
		}
		compiled = append(compiled, p)
	}
	return compiled, nil
}
