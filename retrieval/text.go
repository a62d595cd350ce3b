package retrieval

import "strings"

// tokenize splits text into lowercase terms, trimming punctuation from
// word boundaries. Empty terms are dropped.
func tokenize(text string) []string {
	words := strings.Fields(text)
	terms := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))
		if cleaned != "" {
			terms = append(terms, cleaned)
		}
	}

	return terms
}
