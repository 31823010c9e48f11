package dictionary

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAmbiguousVocabulary is returned when one tag is a prefix of another
var ErrAmbiguousVocabulary = errors.New("ambiguous part of speech vocabulary")

// DefaultTags are part of speech prefixes recognized in Bing descriptions.
// 网络释义 holds web sourced definitions and is treated as a part of speech.
var DefaultTags = []string{"pron.", "adj.", "adv.", "conj.", "网络释义"}

// Vocabulary is an ordered list of recognized part of speech prefixes
type Vocabulary struct {
	tags []string
}

// NewVocabulary validates and creates vocabulary.
// Empty and duplicate tags are skipped, tags are matched in the given order.
func NewVocabulary(tags ...string) (Vocabulary, error) {
	var v Vocabulary
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		for _, other := range v.tags {
			if strings.HasPrefix(tag, other) || strings.HasPrefix(other, tag) {
				return Vocabulary{}, fmt.Errorf("%w: %q and %q", ErrAmbiguousVocabulary, other, tag)
			}
		}
		seen[tag] = struct{}{}
		v.tags = append(v.tags, tag)
	}
	return v, nil
}

// DefaultVocabulary returns vocabulary built from DefaultTags
func DefaultVocabulary() Vocabulary {
	v, err := NewVocabulary(DefaultTags...)
	if err != nil {
		panic(err)
	}
	return v
}

// Tags returns copy of vocabulary tags
func (v Vocabulary) Tags() []string {
	return append([]string(nil), v.tags...)
}

// Match returns first tag the segment starts with
func (v Vocabulary) Match(segment string) (string, bool) {
	for _, tag := range v.tags {
		if strings.HasPrefix(segment, tag) {
			return tag, true
		}
	}
	return "", false
}
