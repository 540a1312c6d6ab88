package evaluation

import (
	"regexp"
	"strings"
)

// Filler detection is purely local text analysis: it stays available even
// when every provider is down.

type fillerPattern struct {
	label string
	re    *regexp.Regexp
}

var fillerPatterns = []fillerPattern{
	{"um", regexp.MustCompile(`\bum+\b`)},
	{"uh", regexp.MustCompile(`\buh+\b`)},
	{"erm", regexp.MustCompile(`\berm+\b`)},
	{"like", regexp.MustCompile(`\blike\b`)},
	{"you know", regexp.MustCompile(`\byou know\b`)},
	{"i mean", regexp.MustCompile(`\bi mean\b`)},
	{"basically", regexp.MustCompile(`\bbasically\b`)},
	{"actually", regexp.MustCompile(`\bactually\b`)},
	{"literally", regexp.MustCompile(`\bliterally\b`)},
	{"so", regexp.MustCompile(`\bso+\b\s+(?:yeah|like|um|uh)\b`)},
	{"kind of", regexp.MustCompile(`\bkind of\b`)},
	{"sort of", regexp.MustCompile(`\bsort of\b`)},
}

// DetectFillers counts hesitation markers, vague qualifiers, and discourse
// markers in a transcript. Patterns with zero matches are omitted.
func DetectFillers(transcript string) map[string]int {
	text := strings.ToLower(transcript)
	counts := make(map[string]int)
	for _, p := range fillerPatterns {
		if n := len(p.re.FindAllString(text, -1)); n > 0 {
			counts[p.label] += n
		}
	}
	return counts
}
