package round

import (
	"math/rand"
	"strconv"
)

// NumericChoices returns n distinct positive candidates that include correct,
// in random order. Distractors are drawn from correct+[-spread, spread); if
// that range cannot supply enough of them, the nearest unused values above
// correct fill the gap.
func NumericChoices(rng *rand.Rand, correct, n, spread int) []int {
	if n < 1 {
		n = 1
	}
	if spread < 1 {
		spread = 1
	}
	out := []int{correct}
	seen := map[int]bool{correct: true}

	for attempts := 0; len(out) < n && attempts < 64*n; attempts++ {
		v := correct + rng.Intn(2*spread) - spread
		if v <= 0 || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	for v := correct + 1; len(out) < n; v++ {
		if v > 0 && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}

	Shuffle(rng, out)
	return out
}

// Itoa formats numeric choices as answer strings.
func Itoa(values []int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.Itoa(v)
	}
	return out
}

// SampleChoices returns target plus n-1 other entries of pool, drawn
// without replacement, in random order. Duplicates in pool are ignored.
func SampleChoices(rng *rand.Rand, target string, pool []string, n int) []string {
	others := make([]string, 0, len(pool))
	seen := map[string]bool{target: true}
	for _, p := range pool {
		if !seen[p] {
			seen[p] = true
			others = append(others, p)
		}
	}
	Shuffle(rng, others)
	if n-1 < len(others) {
		others = others[:max(n-1, 0)]
	}

	out := append([]string{target}, others...)
	Shuffle(rng, out)
	return out
}

// Shuffle permutes s in place (Fisher-Yates).
func Shuffle[T any](rng *rand.Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
