package textprep

import (
	"bytes"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// charReplacementMap normalizes the smart punctuation that fetched web text
// and pasted transcripts commonly carry.
var charReplacementMap = map[string]string{
	"‘": "'", "’": "'", "“": "\"",
	"”": "\"", "–": "-", "—": "--", "…": "...",
	" ": " ", "": "'", "": "'", "": "\"",
	"": "\"",
}

// Clean normalizes raw input text before scoring: BOM stripped, invalid
// UTF-8 replaced, smart punctuation flattened, whitespace collapsed at the
// edges. It never fails; worst case the replacement rune stands in for
// broken sequences.
func Clean(raw string) string {
	b := bytes.TrimPrefix([]byte(raw), utf8BOM)

	if !utf8.Valid(b) {
		log.Warn("input contains invalid UTF-8, replacing broken sequences")
		b = bytes.ToValidUTF8(b, []byte(string(utf8.RuneError)))
	}

	str := string(b)
	for bad, good := range charReplacementMap {
		str = strings.ReplaceAll(str, bad, good)
	}
	return strings.TrimSpace(str)
}
