package dictionary

import (
	"regexp"
	"strings"
)

const (
	segmentSeparator = "；"
	definitionColon  = "："
)

var pronunciationRe = regexp.MustCompile(`美\[([^\]]+)\]，英\[([^\]]+)\]`)

// RepeatPolicy defines what happens when a part of speech is seen again
type RepeatPolicy int

const (
	// RepeatOverwrite replaces earlier definition, entry keeps its position
	RepeatOverwrite RepeatPolicy = iota
	// RepeatMerge appends new definitions to the earlier entry
	RepeatMerge
)

// Parser converts dictionary page text to Entry
type Parser struct {
	vocabulary Vocabulary
	repeat     RepeatPolicy
}

// NewParser creates parser with given vocabulary and repeat policy
func NewParser(v Vocabulary, repeat RepeatPolicy) Parser {
	return Parser{vocabulary: v, repeat: repeat}
}

// DefaultParser creates parser with default vocabulary
func DefaultParser() Parser {
	return NewParser(DefaultVocabulary(), RepeatOverwrite)
}

// Signature describes settings that change parse results
func (p Parser) Signature() string {
	repeat := "overwrite"
	if p.repeat == RepeatMerge {
		repeat = "merge"
	}
	return repeat + "|" + strings.Join(p.vocabulary.tags, ",")
}

// ParseFragments pairs alternating part of speech and definition fragments.
// Trailing unpaired label is discarded.
func ParseFragments(fragments []string) Entry {
	var entry Entry
	for i := 0; i+1 < len(fragments); i += 2 {
		pos := collapseSpace(fragments[i])
		def := collapseSpace(fragments[i+1])
		if pos == "" || def == "" {
			continue
		}
		entry.Senses = append(entry.Senses, Sense{PartOfSpeech: pos, Definition: def})
	}
	return entry
}

// ParseDescription parses free text description of the word:
// optional pronunciation preamble followed by ； separated segments.
func (p Parser) ParseDescription(text string) Entry {
	var entry Entry
	if m := pronunciationRe.FindStringSubmatchIndex(text); m != nil {
		entry.US = ptrStr(text[m[2]:m[3]])
		entry.UK = ptrStr(text[m[4]:m[5]])
		text = strings.TrimSpace(text[m[1]:])
	}

	senses := senseList{repeat: p.repeat}
	var (
		current   string
		active    bool
		fragments []string
	)
	for _, seg := range strings.Split(text, segmentSeparator) {
		seg = collapseSpace(seg)
		if seg == "" {
			continue
		}
		tag, ok := p.vocabulary.Match(seg)
		if !ok {
			if active {
				fragments = append(fragments, seg)
			}
			continue
		}
		if active {
			senses.commit(current, fragments)
		}
		current, active, fragments = tag, true, nil
		def := strings.TrimSpace(seg[len(tag):])
		def = strings.TrimSpace(strings.TrimPrefix(def, definitionColon))
		if def != "" {
			fragments = append(fragments, def)
		}
	}
	if active {
		senses.commit(current, fragments)
	}
	entry.Senses = senses.items
	return entry
}

// collapseSpace trims text and joins inner whitespace runs, line breaks included, with one space
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// senseList keeps senses in first seen order with one entry per part of speech
type senseList struct {
	repeat RepeatPolicy
	items  []Sense
	index  map[string]int
}

func (l *senseList) commit(pos string, fragments []string) {
	if len(fragments) == 0 {
		return
	}
	def := strings.Join(fragments, segmentSeparator)
	if l.index == nil {
		l.index = make(map[string]int)
	}
	i, ok := l.index[pos]
	if !ok {
		l.index[pos] = len(l.items)
		l.items = append(l.items, Sense{PartOfSpeech: pos, Definition: def})
		return
	}
	if l.repeat == RepeatMerge {
		l.items[i].Definition += segmentSeparator + def
		return
	}
	l.items[i].Definition = def
}
