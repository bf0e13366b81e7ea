package pipeline

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseBlankLines(t *testing.T) {
	tbl := []struct {
		name string
		in   string
		want string
	}{
		{name: "no blank lines", in: "a\nb", want: "a\nb"},
		{name: "one blank line kept", in: "a\n\nb", want: "a\n\nb"},
		{name: "two blank lines kept", in: "a\n\n\nb", want: "a\n\n\nb"},
		{name: "three collapsed", in: "a\n\n\n\nb", want: "a\n\nb"},
		{name: "many collapsed", in: "a" + strings.Repeat("\n", 12) + "b", want: "a\n\nb"},
		{name: "whitespace lines count as blank", in: "a\n \n\t\n  \nb", want: "a\n\nb"},
		{name: "crlf", in: "a\r\n\r\n\r\n\r\nb", want: "a\n\nb"},
		{name: "trimmed", in: "\n\n\n  text  \n\n\n\n", want: "text"},
		{name: "several runs", in: "a\n\n\n\nb\n\nc\n\n\n\n\nd", want: "a\n\nb\n\nc\n\nd"},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collapseBlankLines(tt.in))
		})
	}
}

// maxBlankRun returns the longest run of consecutive blank lines in s
func maxBlankRun(s string) int {
	longest, cur := 0, 0
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			cur++
			longest = max(longest, cur)
			continue
		}
		cur = 0
	}
	return longest
}

func TestCollapseBlankLines_Property(t *testing.T) {
	rnd := rand.New(rand.NewSource(42)) //nolint:gosec // deterministic test data
	pieces := []string{"word", "\n", "\n\n", "\n\n\n\n\n", " ", "\t", "\r\n", "line two"}
	for i := 0; i < 500; i++ {
		var sb strings.Builder
		for j := 0; j < rnd.Intn(40); j++ {
			sb.WriteString(pieces[rnd.Intn(len(pieces))])
		}
		out := collapseBlankLines(sb.String())
		assert.Less(t, maxBlankRun(out), 3, "input %q", sb.String())
		assert.Equal(t, strings.TrimSpace(out), out)
	}
}

func FuzzCollapseBlankLines(f *testing.F) {
	f.Add("a\n\n\n\nb")
	f.Add("\r\n\r\n\r\n")
	f.Add("x\n \n \n \ny")
	f.Fuzz(func(t *testing.T, s string) {
		out := collapseBlankLines(s)
		if n := maxBlankRun(out); n >= 3 {
			t.Fatalf("%d consecutive blank lines in %q", n, out)
		}
	})
}

func TestStripMarkup(t *testing.T) {
	tbl := []struct {
		in, want string
	}{
		{in: "plain text", want: "plain text"},
		{in: "<p>Hello <b>world</b></p>", want: "Hello world"},
		{in: "Tom &amp; Jerry", want: "Tom & Jerry"},
		{in: "<script>alert(1)</script>safe", want: "safe"},
		{in: "  spaced   out  ", want: "spaced out"},
		{in: "5 &lt; 6", want: "5 < 6"},
	}
	for _, tt := range tbl {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, stripMarkup(tt.in))
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "short", truncateRunes("short", 10))
	assert.Equal(t, "héll...", truncateRunes("héllo wörld", 4))
	assert.Equal(t, "日本...", truncateRunes("日本語のテキスト", 2))
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "German", languageName("de"))
	assert.Equal(t, "Russian", languageName("ru"))
	assert.Equal(t, "Spanish", languageName("es"))
	assert.Equal(t, "not a tag!", languageName("not a tag!"))
}

func TestSameLanguage(t *testing.T) {
	assert.True(t, sameLanguage("en", "en"))
	assert.True(t, sameLanguage("EN", "en"))
	assert.True(t, sameLanguage("en-US", "en"))
	assert.False(t, sameLanguage("de", "en"))
	assert.False(t, sameLanguage("???", "en"))
}
