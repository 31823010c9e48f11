package dictionary

import "strings"

// FlatHeader is the first line of flattened entry
const FlatHeader = "词性,词义"

// lineBreaks keeps every sense on its own line
var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Flatten serializes senses as header followed by one "pos,definition" line per sense.
// Line breaks inside a sense are written as spaces.
func Flatten(e Entry) string {
	var b strings.Builder
	b.WriteString(FlatHeader + "\n")
	for _, s := range e.Senses {
		b.WriteString(lineBreaks.Replace(s.PartOfSpeech) + "," + lineBreaks.Replace(s.Definition) + "\n")
	}
	return b.String()
}

// ParseFlat restores senses from Flatten output.
// Each line is split on the first comma, lines without comma are skipped.
func ParseFlat(text string) []Sense {
	var senses []Sense
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if i == 0 && line == FlatHeader {
			continue
		}
		pos, def, ok := strings.Cut(line, ",")
		if !ok {
			continue
		}
		senses = append(senses, Sense{PartOfSpeech: pos, Definition: def})
	}
	return senses
}

// IsFlat returns true if text looks like Flatten output
func IsFlat(text string) bool {
	return strings.HasPrefix(text, FlatHeader+"\n")
}
