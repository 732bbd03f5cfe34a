package dialog

import (
	"fmt"

	"VoiceBot/pkg/nlp"

	"github.com/sirupsen/logrus"
)

// Engine holds the compiled, read-only recognizer and generator. One engine
// backs any number of managers; caches are created per manager.
type Engine struct {
	recognizer *nlp.IntentRecognizer
	generator  *nlp.ResponseGenerator
}

func NewEngine(opts ...nlp.GeneratorOption) (*Engine, error) {
	return NewEngineFromTables(nlp.DefaultPatternTable(), nlp.DefaultResponseTable(), opts...)
}

func NewEngineFromTables(patterns nlp.PatternTable, responses nlp.ResponseTable, opts ...nlp.GeneratorOption) (*Engine, error) {
	if err := nlp.ValidateCoverage(patterns, responses); err != nil {
		return nil, fmt.Errorf("response coverage: %w", err)
	}

	recognizer, err := nlp.NewIntentRecognizer(patterns)
	if err != nil {
		return nil, fmt.Errorf("intent recognizer: %w", err)
	}

	generator, err := nlp.NewResponseGenerator(responses, opts...)
	if err != nil {
		return nil, fmt.Errorf("response generator: %w", err)
	}

	return &Engine{recognizer: recognizer, generator: generator}, nil
}

func (e *Engine) Recognizer() nlp.IIntentRecognizer {
	return e.recognizer
}

func (e *Engine) Generator() nlp.IResponseGenerator {
	return e.generator
}

func (e *Engine) NewManager(log *logrus.Logger, cache CacheConfig, opts ...Option) (*Manager, error) {
	if !cache.Enabled {
		return New(log, e.recognizer, e.generator, opts...), nil
	}

	recognizer, err := nlp.NewCachedIntentRecognizer(e.recognizer, cache.RecognizerSize)
	if err != nil {
		return nil, err
	}
	generator, err := nlp.NewCachedResponseGenerator(e.generator, cache.GeneratorSize)
	if err != nil {
		return nil, err
	}

	return New(log, recognizer, generator, opts...), nil
}
