package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	in := "บรรทัดแรก\n\n\n\nบรรทัดสอง   มีช่องว่าง  เกิน\n"
	assert.Equal(t, "บรรทัดแรก\n\nบรรทัดสอง มีช่องว่าง เกิน", CleanText(in))
}

func TestTruncateCharsIsRuneSafe(t *testing.T) {
	assert.Equal(t, "กขค", TruncateChars("กขคงจ", 3))
	assert.Equal(t, "abc", TruncateChars("abc", 10))
}

func TestSplitSentences(t *testing.T) {
	sents := SplitSentences("ประโยคแรก. ประโยคสอง!\nประโยคสาม\n\n")
	assert.Equal(t, []string{"ประโยคแรก", "ประโยคสอง", "ประโยคสาม"}, sents)
	assert.Empty(t, SplitSentences("   "))
}
