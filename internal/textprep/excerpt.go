package textprep

import (
	"strings"

	"github.com/neurosnap/sentences"
)

// Excerpt returns at most maxSentences sentences from text, for use in
// remote model prompts. maxSentences <= 0 disables truncation. Scoring
// always runs on the full text; only the prompt is shortened.
func Excerpt(text string, maxSentences int) string {
	if maxSentences <= 0 {
		return text
	}

	tokenizer := sentences.NewSentenceTokenizer(nil)
	sents := tokenizer.Tokenize(text)
	if len(sents) <= maxSentences {
		return text
	}

	var b strings.Builder
	for _, s := range sents[:maxSentences] {
		b.WriteString(s.Text)
	}
	return strings.TrimSpace(b.String())
}

// ExcerptFn binds a sentence budget into the closure shape the analysis
// wrapper accepts.
func ExcerptFn(maxSentences int) func(string) string {
	return func(text string) string {
		return Excerpt(text, maxSentences)
	}
}
