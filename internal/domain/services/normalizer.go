package services

import "strings"

// Descriptive adjectives that carry no identity: "fresh basil" and "basil"
// should compare equal.
var stopWords = map[string]bool{
	"fresh":    true,
	"dried":    true,
	"ground":   true,
	"organic":  true,
	"raw":      true,
	"ripe":     true,
	"chopped":  true,
	"minced":   true,
	"large":    true,
	"small":    true,
	"medium":   true,
	"whole":    true,
	"fat-free": true,
	"low-fat":  true,
	"unsalted": true,
}

// NormalizeName canonicalizes an ingredient name for comparison: lowercase,
// a single trailing plural "s" stripped from the last word, stop-word
// adjectives removed, surrounding whitespace trimmed. Pure and idempotent;
// every matching tier beyond the exact one compares normalized names.
func NormalizeName(name string) string {
	words := strings.Fields(strings.ToLower(name))
	if len(words) == 0 {
		return ""
	}

	// Depluralize the last word only: "roma tomatoes" -> "roma tomatoe".
	last := words[len(words)-1]
	if len(last) > 1 && strings.HasSuffix(last, "s") && !strings.HasSuffix(last, "ss") {
		words[len(words)-1] = strings.TrimSuffix(last, "s")
	}

	kept := words[:0]
	for _, w := range words {
		if !stopWords[w] {
			kept = append(kept, w)
		}
	}

	return strings.TrimSpace(strings.Join(kept, " "))
}
