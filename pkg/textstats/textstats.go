// Package textstats implements the corpus statistics used by the analytics
// endpoint: tokenization, n-gram windows, frequency ranking and medians.
package textstats

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Length returns the length of s in characters (Unicode code points).
func Length(s string) int {
	return utf8.RuneCountInString(s)
}

// Tokens lower-cases text and splits it on whitespace.
func Tokens(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// IsAlnum reports whether tok is non-empty and made only of letters and digits.
func IsAlnum(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Words returns the alphanumeric tokens of tokens, preserving order.
func Words(tokens []string) []string {
	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if IsAlnum(tok) {
			words = append(words, tok)
		}
	}
	return words
}

// NGrams returns every window of size consecutive tokens joined by a single
// space. It returns nil when there are fewer than size tokens.
func NGrams(tokens []string, size int) []string {
	if size <= 0 || len(tokens) < size {
		return nil
	}
	grams := make([]string, 0, len(tokens)-size+1)
	for i := 0; i+size <= len(tokens); i++ {
		grams = append(grams, strings.Join(tokens[i:i+size], " "))
	}
	return grams
}

// TopN returns up to n distinct items ordered by descending frequency.
// Items with equal frequency keep the order in which they were first seen.
func TopN(items []string, n int) []string {
	if n <= 0 || len(items) == 0 {
		return []string{}
	}

	counts := make(map[string]int, len(items))
	order := make([]string, 0, len(items))
	for _, item := range items {
		if _, seen := counts[item]; !seen {
			order = append(order, item)
		}
		counts[item]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}

// Median returns the median of values, averaging the two middle values for
// an even count. It returns 0 for an empty slice and does not modify values.
func Median(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}
