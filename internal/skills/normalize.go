package skills

import (
	"regexp"
	"sort"
	"strings"
)

// Result holds the outcome of normalizing a piece of text: the rewritten text
// and the set of canonical skill names detected in it (all lower-cased).
type Result struct {
	Text     string
	Detected map[string]bool
}

// DetectedSorted returns the detected canonical names as a sorted slice.
func (r Result) DetectedSorted() []string {
	names := make([]string, 0, len(r.Detected))
	for name := range r.Detected {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Normalize lower-cases text and rewrites every whole-word synonym occurrence
// to its canonical skill name, reporting which canonical skills were seen.
//
// Canonicals are processed in sorted order and replacement mutates the working
// text as it goes, so when synonym lists overlap across canonical entries the
// outcome depends on that processing order. That matches the documented
// behavior of the vocabulary; it is not corrected here.
func Normalize(text string, m Map) Result {
	detected := make(map[string]bool)
	normalized := strings.ToLower(text)

	for _, canonical := range m.Canonicals() {
		canonicalLower := strings.ToLower(canonical)
		for _, syn := range m[canonical] {
			pattern, err := wholeWord(syn)
			if err != nil {
				continue
			}
			if pattern.MatchString(normalized) {
				normalized = pattern.ReplaceAllString(normalized, canonicalLower)
				detected[canonicalLower] = true
			}
		}
		// The canonical term may appear verbatim in the input, or exist now
		// as the product of a replacement above.
		if pattern, err := wholeWord(canonicalLower); err == nil && pattern.MatchString(normalized) {
			detected[canonicalLower] = true
		}
	}

	return Result{Text: normalized, Detected: detected}
}

// wholeWord compiles a case-insensitive whole-word matcher for a literal term.
func wholeWord(term string) (*regexp.Regexp, error) {
	return regexp.Compile(`\b` + regexp.QuoteMeta(strings.ToLower(term)) + `\b`)
}
