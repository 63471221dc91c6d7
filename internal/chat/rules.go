package chat

import "strings"

// Rule is one instant-answer entry: a predicate over the normalized message
// and the canned response it produces. Rules are evaluated in order; the
// first match wins.
type Rule struct {
	Name     string
	Match    func(normalized string) bool
	Response string
}

// ExactAny matches when the whole normalized message equals one of words.
func ExactAny(words ...string) func(string) bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = true
	}
	return func(normalized string) bool {
		return set[normalized]
	}
}

// ContainsAny matches when the normalized message contains one of phrases.
func ContainsAny(phrases ...string) func(string) bool {
	lowered := make([]string, len(phrases))
	for i, p := range phrases {
		lowered[i] = strings.ToLower(p)
	}
	return func(normalized string) bool {
		for _, p := range lowered {
			if strings.Contains(normalized, p) {
				return true
			}
		}
		return false
	}
}

// DefaultRules answers trivial prompts without an upstream round trip.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "greeting",
			Match:    ExactAny("hi", "hello", "hey"),
			Response: "Hello! I'm your Social Support Assistant. I can help with applications, documents, and eligibility. What would you like to know?",
		},
		{
			Name:  "capabilities",
			Match: ContainsAny("how can you help", "what can you do"),
			Response: "I can help with:\n" +
				"- Application eligibility & process\n" +
				"- Document requirements\n" +
				"- Financial support programs\n" +
				"- Processing status\n\n" +
				"What would you like to know?",
		},
	}
}
