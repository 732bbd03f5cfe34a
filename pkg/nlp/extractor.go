package nlp

import "fmt"

type entityRule struct {
	value   string
	pattern compiledPattern
}

type entitySlot struct {
	key      string
	rules    []entityRule
	fallback string
}

// EntityExtractor fills intent specific slots from keywords in the
// normalized input. The first matching rule in a slot wins.
type EntityExtractor struct {
	slots map[Intent]entitySlot
}

func NewEntityExtractor() (*EntityExtractor, error) {
	definitions := map[Intent]struct {
		key      string
		rules    [][2]string
		fallback string
	}{
		IntentGreeting: {
			key: EntityGreetingType,
			rules: [][2]string{
				{"morning", `morning|सुप्रभात`},
				{"evening", `afternoon|evening|शुभ संध्या`},
			},
			fallback: "general",
		},
		IntentSmallTalk: {
			key: EntityTopic,
			rules: [][2]string{
				{"weather", `weather|मौसम`},
				{"time", `time|समय`},
				{"age", `age|उम्र`},
				{"location", `location|जगह|कहाँ`},
			},
			fallback: "general",
		},
	}

	slots := make(map[Intent]entitySlot, len(definitions))
	for intent, def := range definitions {
		slot := entitySlot{key: def.key, fallback: def.fallback}
		for _, rule := range def.rules {
			p, err := compilePattern(rule[1])
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", intent, rule[0], err)
			}
			slot.rules = append(slot.rules, entityRule{value: rule[0], pattern: p})
		}
		slots[intent] = slot
	}

	return &EntityExtractor{slots: slots}, nil
}

// Extract always returns a non-nil map. Intents without slots get an empty one.
func (e *EntityExtractor) Extract(intent Intent, normalized string) map[string]string {
	entities := map[string]string{}

	slot, ok := e.slots[intent]
	if !ok {
		return entities
	}

	entities[slot.key] = slot.fallback
	for _, rule := range slot.rules {
		if _, found := rule.pattern.find(normalized); found {
			entities[slot.key] = rule.value
			break
		}
	}

	return entities
}
