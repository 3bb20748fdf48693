package textstats

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestLength(t *testing.T) {
	assert.Equal(t, 0, Length(""))
	assert.Equal(t, 11, Length("Hello world"))
	assert.Equal(t, 4, Length("café"))
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"hello", "big", "world"}, Tokens("Hello  BIG\nworld "))
	assert.Empty(t, Tokens("   "))
}

func TestIsAlnum(t *testing.T) {
	tests := []struct {
		tok  string
		want bool
	}{
		{"hello", true},
		{"abc123", true},
		{"über", true},
		{"", false},
		{"hello,", false},
		{"it's", false},
		{"-", false},
	}

	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAlnum(tt.tok))
		})
	}
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"go", "is", "fun"}, Words([]string{"go", "is", "fun!", "fun", "?"}))
}

func TestNGrams(t *testing.T) {
	tokens := []string{"a", "b", "c", "d"}

	assert.Equal(t, []string{"a b", "b c", "c d"}, NGrams(tokens, 2))
	assert.Equal(t, []string{"a b c", "b c d"}, NGrams(tokens, 3))
	assert.Nil(t, NGrams(tokens[:1], 2))
	assert.Nil(t, NGrams(tokens, 0))
}

func TestTopN(t *testing.T) {
	items := []string{"b", "a", "c", "a", "b", "d", "a"}

	assert.Equal(t, []string{"a", "b", "c", "d"}, TopN(items, 10))
	assert.Equal(t, []string{"a", "b"}, TopN(items, 2))
	assert.Equal(t, []string{}, TopN(nil, 10))
	assert.Equal(t, []string{}, TopN(items, 0))
}

func TestTopN_TiesKeepFirstSeenOrder(t *testing.T) {
	assert.Equal(t, []string{"z", "y", "x"}, TopN([]string{"z", "y", "x"}, 3))
	assert.Equal(t, []string{"x", "z", "y"}, TopN([]string{"z", "y", "x", "x"}, 3))
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, Median(nil))
	assert.Equal(t, 4.0, Median([]int{1, 4, 7}))
	assert.Equal(t, 2.5, Median([]int{1, 4}))
	assert.Equal(t, 4.0, Median([]int{7, 1, 4}))

	values := []int{3, 1, 2}
	Median(values)
	assert.Equal(t, []int{3, 1, 2}, values)
}

func TestMedian_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		values := rapid.SliceOfN(rapid.IntRange(0, 10000), 1, 50).Draw(t, "values")

		got := Median(values)

		sorted := append([]int(nil), values...)
		sort.Ints(sorted)
		if got < float64(sorted[0]) || got > float64(sorted[len(sorted)-1]) {
			t.Fatalf("median %v outside [%d, %d]", got, sorted[0], sorted[len(sorted)-1])
		}
	})
}

func TestTopN_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		items := rapid.SliceOf(rapid.SampledFrom([]string{"a", "b", "c", "d", "e"})).Draw(t, "items")
		n := rapid.IntRange(1, 6).Draw(t, "n")

		top := TopN(items, n)

		counts := map[string]int{}
		for _, item := range items {
			counts[item]++
		}
		if len(top) > n || len(top) > len(counts) {
			t.Fatalf("got %d items for n=%d and %d distinct", len(top), n, len(counts))
		}
		for i := 1; i < len(top); i++ {
			if counts[top[i-1]] < counts[top[i]] {
				t.Fatalf("%q (%d) ranked before %q (%d)", top[i-1], counts[top[i-1]], top[i], counts[top[i]])
			}
		}
	})
}
