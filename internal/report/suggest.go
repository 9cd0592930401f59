package report

import (
	"sort"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Suggest picks the candidate closest to name by edit distance, if it is close enough.
func Suggest(name string, candidates []string) (string, bool) {
	if name == "" || len(candidates) == 0 {
		return "", false
	}
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)

	target := []rune(name)
	limit := max(1, (len(target)+2)/3)
	best, bestDist := "", limit+1
	for _, c := range sorted {
		if c == name {
			continue
		}
		d := levenshtein.DistanceForStrings(target, []rune(c), levenshtein.DefaultOptions)
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, best != ""
}
