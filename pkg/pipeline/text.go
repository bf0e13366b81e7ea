package pipeline

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var (
	strictPolicy = bluemonday.StrictPolicy()
	spaceRunRe   = regexp.MustCompile(`[ \t]{2,}`)
)

// stripMarkup removes any html left in generated text and resolves entities
func stripMarkup(s string) string {
	s = strictPolicy.Sanitize(s)
	s = html.UnescapeString(s)
	s = spaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// collapseBlankLines replaces every run of three or more blank lines with one blank line and trims the result.
// A line is blank when it holds nothing but whitespace.
func collapseBlankLines(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	res := make([]string, 0, len(lines))
	var blanks []string
	flush := func() {
		if len(blanks) >= 3 {
			blanks = blanks[:0]
			res = append(res, "")
			return
		}
		res = append(res, blanks...)
		blanks = blanks[:0]
	}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blanks = append(blanks, line)
			continue
		}
		flush()
		res = append(res, line)
	}
	flush()
	return strings.TrimSpace(strings.Join(res, "\n"))
}

// truncateRunes cuts s to at most n runes, adding an ellipsis when cut
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// languageName returns the English name of a language tag, e.g. "de" -> "German".
// Unknown tags are returned as is.
func languageName(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return lang
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return lang
}

// sameLanguage reports whether two language tags share the base language, "en-US" matches "en"
func sameLanguage(a, b string) bool {
	if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) {
		return true
	}
	ta, errA := language.Parse(a)
	tb, errB := language.Parse(b)
	if errA != nil || errB != nil {
		return false
	}
	ba, _ := ta.Base()
	bb, _ := tb.Base()
	return ba == bb
}
