package nlp

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	DefaultRecognizerCacheSize = 100
	DefaultGeneratorCacheSize  = 200
)

// CachedIntentRecognizer memoizes Recognize by normalized text.
type CachedIntentRecognizer struct {
	base     IIntentRecognizer
	cache    *lru.Cache[string, IntentMatch]
	capacity int
	hits     atomic.Int64
	misses   atomic.Int64
}

func NewCachedIntentRecognizer(base IIntentRecognizer, size int) (*CachedIntentRecognizer, error) {
	if base == nil {
		return nil, fmt.Errorf("base recognizer is nil")
	}
	cache, err := lru.New[string, IntentMatch](size)
	if err != nil {
		return nil, fmt.Errorf("recognizer cache: %w", err)
	}
	return &CachedIntentRecognizer{base: base, cache: cache, capacity: size}, nil
}

func (c *CachedIntentRecognizer) Recognize(text string) IntentMatch {
	key := Normalize(text)
	if match, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		return match.Clone()
	}

	c.misses.Add(1)
	match := c.base.Recognize(text)
	c.cache.Add(key, match.Clone())
	return match
}

func (c *CachedIntentRecognizer) Purge() {
	c.cache.Purge()
}

func (c *CachedIntentRecognizer) Stats() CacheStats {
	return CacheStats{
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
		Size:     c.cache.Len(),
		Capacity: c.capacity,
	}
}

// CachedResponseGenerator memoizes pool resolution, not the reply itself:
// every Generate call still draws at random from the cached pool.
type CachedResponseGenerator struct {
	base     IResponseGenerator
	cache    *lru.Cache[string, []string]
	pick     func(n int) int
	capacity int
	hits     atomic.Int64
	misses   atomic.Int64
}

func NewCachedResponseGenerator(base IResponseGenerator, size int) (*CachedResponseGenerator, error) {
	if base == nil {
		return nil, fmt.Errorf("base generator is nil")
	}
	cache, err := lru.New[string, []string](size)
	if err != nil {
		return nil, fmt.Errorf("generator cache: %w", err)
	}

	pick := rand.IntN
	if g, ok := base.(*ResponseGenerator); ok {
		pick = g.pick
	}

	return &CachedResponseGenerator{base: base, cache: cache, capacity: size, pick: pick}, nil
}

func (c *CachedResponseGenerator) Generate(match IntentMatch, language string) string {
	return pickFrom(c.Candidates(match, language), c.pick)
}

func (c *CachedResponseGenerator) Candidates(match IntentMatch, language string) []string {
	key := responseCacheKey(match, language)
	if pool, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		return pool
	}

	c.misses.Add(1)
	pool := c.base.Candidates(match, language)
	c.cache.Add(key, pool)
	return pool
}

func (c *CachedResponseGenerator) Purge() {
	c.cache.Purge()
}

func (c *CachedResponseGenerator) Stats() CacheStats {
	return CacheStats{
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
		Size:     c.cache.Len(),
		Capacity: c.capacity,
	}
}

func responseCacheKey(match IntentMatch, language string) string {
	keys := make([]string, 0, len(match.Entities))
	for k := range match.Entities {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	b.WriteString(string(match.Intent))
	b.WriteByte('|')
	b.WriteString(language)
	for _, k := range keys {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(match.Entities[k])
	}
	return b.String()
}
