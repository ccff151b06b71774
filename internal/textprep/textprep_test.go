package textprep

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean_SmartPunctuation(t *testing.T) {
	in := "“quoted” ‘text’ with a dash – and ellipsis…"
	out := Clean(in)

	assert.Equal(t, `"quoted" 'text' with a dash - and ellipsis...`, out)
}

func TestClean_BOMAndWhitespace(t *testing.T) {
	in := "\xEF\xBB\xBF  hello world  \n"
	assert.Equal(t, "hello world", Clean(in))
}

func TestClean_InvalidUTF8(t *testing.T) {
	in := "ok\xff\xfebroken"
	out := Clean(in)

	assert.True(t, strings.Contains(out, "ok"))
	assert.True(t, strings.Contains(out, "broken"))
}

func TestExcerpt_UnderLimitUnchanged(t *testing.T) {
	text := "One sentence. Two sentences."
	assert.Equal(t, text, Excerpt(text, 10))
}

func TestExcerpt_Truncates(t *testing.T) {
	text := "First one. Second one. Third one. Fourth one."
	out := Excerpt(text, 2)

	assert.Contains(t, out, "First one.")
	assert.Contains(t, out, "Second one.")
	assert.NotContains(t, out, "Third")
}

func TestExcerpt_ZeroDisables(t *testing.T) {
	text := strings.Repeat("A sentence. ", 100)
	assert.Equal(t, text, Excerpt(text, 0))
}
