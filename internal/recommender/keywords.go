// internal/recommender/keywords.go
package recommender

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jdkato/prose/v2"
)

const (
	DefaultMinKeywordLength = 3
	DefaultMaxKeywords      = 10
)

// KeywordOptions bounds free-text keyword extraction.
type KeywordOptions struct {
	MinLength int // in runes
	MaxCount  int
	StopWords StopWords
}

func (o KeywordOptions) withDefaults() KeywordOptions {
	if o.MinLength <= 0 {
		o.MinLength = DefaultMinKeywordLength
	}
	if o.MaxCount <= 0 {
		o.MaxCount = DefaultMaxKeywords
	}
	if o.StopWords == nil {
		o.StopWords = DefaultStopWords()
	}
	return o
}

// ExtractKeywords returns the most frequent words of text after dropping
// stop-words, short words, links and tokens without letters. Frequency ties
// are broken alphabetically so the result is deterministic.
func ExtractKeywords(text string, opts KeywordOptions) []string {
	opts = opts.withDefaults()

	counts := make(map[string]int)
	for _, word := range tokenize(stripLinks(text)) {
		w := Normalize(strings.Trim(word, "-'’_."))
		if w == "" || !hasLetter(w) || linkLike(w) {
			continue
		}
		if utf8.RuneCountInString(w) < opts.MinLength || opts.StopWords.Contains(w) {
			continue
		}
		counts[w]++
	}

	keywords := make([]string, 0, len(counts))
	for w := range counts {
		keywords = append(keywords, w)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return keywords[i] < keywords[j]
	})

	if len(keywords) > opts.MaxCount {
		keywords = keywords[:opts.MaxCount]
	}
	return keywords
}

// stripLinks removes whitespace-separated URLs, email addresses and bare
// domains before tokenizing, so their fragments never become keywords.
func stripLinks(text string) string {
	fields := strings.Fields(text)
	kept := fields[:0]
	for _, f := range fields {
		if !linkLike(strings.Trim(f, linkTrim)) {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

const linkTrim = `"'’()[]<>{},;:!?.`

func linkLike(word string) bool {
	if strings.ContainsAny(word, "/@") {
		return true
	}
	return strings.Contains(strings.Trim(word, "."), ".")
}

func tokenize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return strings.FieldsFunc(text, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.IsMark(r)
		})
	}
	tokens := doc.Tokens()
	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		words = append(words, tok.Text)
	}
	return words
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
