// Package similarity scores how likely two question texts are the same
// question. It combines word-level token overlap (Jaccard) with
// character bigram overlap (Dice) and keeps the larger of the two, so
// a pair counts as a duplicate when either signal flags it.
package similarity

import (
	"strings"
	"unicode"
)

// Thai function words that carry no signal for duplicate detection.
var stopwords = func() map[string]struct{} {
	words := strings.Fields("คือ ของ และ หรือ ที่ ใน เป็น ได้ มี ใด ใดๆ อะไร อย่างไร ใคร ไหน ข้อใด ต่อไปนี้ มาก น้อย ไม่ ใช่ จาก ตาม เพื่อ เช่น ดังนั้น ดังกล่าว ซึ่ง โดย เพราะ ดังนั้นจึง")
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()

// Tokenize lower-cases the text, replaces punctuation and the Thai
// repetition marker ๆ with spaces, splits on whitespace and drops
// stopwords. Empty input yields an empty slice.
func Tokenize(s string) []string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r == 'ๆ':
			b.WriteByte(' ')
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	var tokens []string
	for _, w := range strings.Fields(b.String()) {
		if _, stop := stopwords[w]; !stop {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// Jaccard is |A ∩ B| / |A ∪ B| over the normalized token sets.
// It is 0 when either side normalizes to nothing.
func Jaccard(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	inter := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range Tokenize(s) {
		set[t] = struct{}{}
	}
	return set
}

// BigramDice is the multiset Dice coefficient over overlapping
// two-rune substrings: repeated bigrams count. Texts shorter than two
// runes have no bigrams and score 0.
func BigramDice(a, b string) float64 {
	bigramsA := bigrams(a)
	bigramsB := bigrams(b)
	if len(bigramsA) == 0 || len(bigramsB) == 0 {
		return 0
	}
	countA := make(map[string]int, len(bigramsA))
	for _, g := range bigramsA {
		countA[g]++
	}
	countB := make(map[string]int, len(bigramsB))
	for _, g := range bigramsB {
		countB[g]++
	}
	shared := 0
	for g, n := range countA {
		if m, ok := countB[g]; ok {
			if m < n {
				n = m
			}
			shared += n
		}
	}
	return 2 * float64(shared) / float64(len(bigramsA)+len(bigramsB))
}

func bigrams(s string) []string {
	runes := []rune(strings.TrimSpace(strings.Join(strings.Fields(s), " ")))
	if len(runes) < 2 {
		return nil
	}
	out := make([]string, 0, len(runes)-1)
	for i := 0; i+1 < len(runes); i++ {
		out = append(out, string(runes[i:i+2]))
	}
	return out
}

// Score is the duplicate-likelihood of two question texts in [0, 1]:
// the maximum of token Jaccard and character bigram Dice. A pair is a
// duplicate when either signal flags it.
func Score(a, b string) float64 {
	j := Jaccard(a, b)
	d := BigramDice(a, b)
	if d > j {
		return d
	}
	return j
}
