package nlp

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedIntentRecognizer_MatchesBase(t *testing.T) {
	base := newTestRecognizer(t)
	cached, err := NewCachedIntentRecognizer(base, DefaultRecognizerCacheSize)
	require.NoError(t, err)

	inputs := []string{"Hello", "नमस्ते", "what is a voice bot", "xyz", "", "How is the weather?", "goodbye"}
	for round := 0; round < 3; round++ {
		for _, input := range inputs {
			assert.Equal(t, base.Recognize(input), cached.Recognize(input), input)
		}
	}

	stats := cached.Stats()
	assert.Equal(t, int64(len(inputs)), stats.Misses)
	assert.Equal(t, int64(2*len(inputs)), stats.Hits)
	assert.Equal(t, len(inputs), stats.Size)
	assert.Equal(t, DefaultRecognizerCacheSize, stats.Capacity)
}

func TestCachedIntentRecognizer_KeyIsNormalized(t *testing.T) {
	cached, err := NewCachedIntentRecognizer(newTestRecognizer(t), 10)
	require.NoError(t, err)

	cached.Recognize("Hello")
	cached.Recognize("  hello ")
	cached.Recognize("HELLO")

	stats := cached.Stats()
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(2), stats.Hits)
}

func TestCachedIntentRecognizer_CallerMutationIsolated(t *testing.T) {
	cached, err := NewCachedIntentRecognizer(newTestRecognizer(t), 10)
	require.NoError(t, err)

	first := cached.Recognize("good morning")
	first.Entities[EntityGreetingType] = "tampered"

	second := cached.Recognize("good morning")
	assert.Equal(t, "morning", second.Entities[EntityGreetingType])
}

func TestCachedIntentRecognizer_Bounded(t *testing.T) {
	cached, err := NewCachedIntentRecognizer(newTestRecognizer(t), 2)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		cached.Recognize(fmt.Sprintf("input %d", i))
	}
	assert.Equal(t, 2, cached.Stats().Size)

	cached.Purge()
	assert.Equal(t, 0, cached.Stats().Size)
}

func TestCachedIntentRecognizer_Invalid(t *testing.T) {
	_, err := NewCachedIntentRecognizer(nil, 10)
	assert.Error(t, err)

	_, err = NewCachedIntentRecognizer(newTestRecognizer(t), 0)
	assert.Error(t, err)
}

func TestCachedResponseGenerator_KeepsRandomness(t *testing.T) {
	cached, err := NewCachedResponseGenerator(newTestGenerator(t), DefaultGeneratorCacheSize)
	require.NoError(t, err)

	pool := DefaultResponseTable().Intents[IntentGreeting][LanguageEnglish]
	match := IntentMatch{Intent: IntentGreeting, Entities: map[string]string{EntityGreetingType: "general"}}

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		reply := cached.Generate(match, LanguageEnglish)
		assert.Contains(t, pool, reply)
		seen[reply] = true
	}
	assert.Greater(t, len(seen), 1)

	stats := cached.Stats()
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(99), stats.Hits)
}

func TestCachedResponseGenerator_UsesBasePicker(t *testing.T) {
	base := newTestGenerator(t, WithPicker(func(n int) int { return n - 1 }))
	cached, err := NewCachedResponseGenerator(base, 10)
	require.NoError(t, err)

	pool := DefaultResponseTable().Intents[IntentHelp][LanguageEnglish]
	assert.Equal(t, pool[len(pool)-1], cached.Generate(IntentMatch{Intent: IntentHelp}, LanguageEnglish))
}

func TestCachedResponseGenerator_KeyIncludesEntities(t *testing.T) {
	cached, err := NewCachedResponseGenerator(newTestGenerator(t), 10)
	require.NoError(t, err)
	table := DefaultResponseTable()

	privacy := IntentMatch{Intent: IntentFAQ, Entities: map[string]string{EntityFAQTopic: "privacy"}}
	languages := IntentMatch{Intent: IntentFAQ, Entities: map[string]string{EntityFAQTopic: "supported_languages"}}

	assert.Contains(t, table.FAQ["privacy"][LanguageEnglish], cached.Generate(privacy, LanguageEnglish))
	assert.Contains(t, table.FAQ["supported_languages"][LanguageEnglish], cached.Generate(languages, LanguageEnglish))
	assert.Equal(t, 2, cached.Stats().Size)
}

func TestResponseCacheKey_Stable(t *testing.T) {
	a := IntentMatch{Intent: IntentSmallTalk, Entities: map[string]string{"b": "2", "a": "1", "c": "3"}}
	b := IntentMatch{Intent: IntentSmallTalk, Entities: map[string]string{"c": "3", "a": "1", "b": "2"}}

	assert.Equal(t, responseCacheKey(a, "en"), responseCacheKey(b, "en"))
	assert.Equal(t, "small_talk|en|a=1|b=2|c=3", responseCacheKey(a, "en"))
	assert.NotEqual(t, responseCacheKey(a, "en"), responseCacheKey(a, "hi"))
}

func TestCachedDecorators_Concurrent(t *testing.T) {
	recognizer, err := NewCachedIntentRecognizer(newTestRecognizer(t), 4)
	require.NoError(t, err)
	generator, err := NewCachedResponseGenerator(newTestGenerator(t), 4)
	require.NoError(t, err)

	inputs := []string{"hello", "bye", "help", "what time is it", "privacy policy", "zzz"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				match := recognizer.Recognize(inputs[(offset+j)%len(inputs)])
				assert.NotEmpty(t, generator.Generate(match, LanguageEnglish))
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, recognizer.Stats().Size, 4)
	assert.LessOrEqual(t, generator.Stats().Size, 4)
}
