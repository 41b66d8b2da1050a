// Package keywords turns free text into a set of normalized keywords and
// scores how well one set covers another.
package keywords

import (
	"sort"
	"strings"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/pkg/errors"
)

type Set map[string]struct{}

func NewSet(words ...string) Set {
	set := make(Set, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}

func (s Set) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

func (s Set) Sorted() []string {
	words := make([]string, 0, len(s))
	for word := range s {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

type Extractor struct {
	lemmatizer *golem.Lemmatizer
}

// NewExtractor loads the English lemma dictionary, which takes a noticeable moment.
// Build one extractor and share it.
func NewExtractor() (*Extractor, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, errors.Wrap(err, "failed to load english lemma dictionary")
	}
	return &Extractor{lemmatizer: lemmatizer}, nil
}

func (e *Extractor) Extract(text string) Set {
	result := Set{}

	for _, token := range tokenize(text) {
		if !isAlpha(token) || isStopWord(token) {
			continue
		}

		lemma := strings.ToLower(e.lemmatizer.Lemma(token))
		if lemma == "" || !isAlpha(lemma) || isStopWord(lemma) {
			continue
		}
		result[lemma] = struct{}{}
	}

	return result
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func isAlpha(token string) bool {
	for _, r := range token {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return token != ""
}
