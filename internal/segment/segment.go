// Package segment splits extracted lab-manual text into experiment records.
package segment

import (
	"regexp"
	"strings"
)

// Record is one segmented experiment: the matched heading and the text
// running from that heading up to the next one.
type Record struct {
	Title string
	Body  string
}

// experimentPattern matches the heading styles commonly found in lab
// manuals: "Experiment 3", "Exp 3", "Practical 3", or a numbered line
// like "\n4. Title". Matching is case-insensitive.
var experimentPattern = regexp.MustCompile(
	`(?i)(Experiment\s*\d+|Exp\s*\d+|Practical\s*\d+|\n\d+\.\s+[A-Za-z].+)`,
)

// Experiments scans text left to right for experiment headings and
// returns one Record per match, in document order. Each body spans from
// its heading to the start of the next heading (the last runs to the
// end of the text), so consecutive bodies reconstruct the text from the
// first heading onward. Text before the first heading is discarded.
// Returns an empty slice when no heading matches; callers decide
// whether that is an error.
func Experiments(text string) []Record {
	matches := experimentPattern.FindAllStringIndex(text, -1)

	records := make([]Record, 0, len(matches))
	for i, m := range matches {
		start := m[0]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		records = append(records, Record{
			Title: strings.TrimSpace(text[m[0]:m[1]]),
			Body:  text[start:end],
		})
	}
	return records
}
