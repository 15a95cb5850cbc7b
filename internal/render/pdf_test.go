package render

import (
	"sort"
	"testing"

	"github.com/Nickzanarak/Edu/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mcqQuestion(choices []string, answer string) *domain.Question {
	return &domain.Question{
		Type:     domain.QuestionTypeMCQ,
		Question: "ข้อใดถูกต้อง",
		Choices:  choices,
		Answer:   answer,
	}
}

func TestPresentChoicesRelabelsExistingLabels(t *testing.T) {
	q := mcqQuestion([]string{"ก) โลก", "ข. ดวงจันทร์", "ดาวอังคาร"}, "ข")

	lines, answer := presentChoices(q, false)
	assert.Equal(t, []string{"ก. โลก", "ข. ดวงจันทร์", "ค. ดาวอังคาร"}, lines)
	assert.Equal(t, "ข", answer)
}

func TestPresentChoicesShuffleTracksAnswer(t *testing.T) {
	q := mcqQuestion([]string{"หนึ่ง", "สอง", "สาม", "สี่"}, "ค")

	for i := 0; i < 20; i++ {
		lines, answer := presentChoices(q, true)
		require.Len(t, lines, 4)

		texts := make([]string, len(lines))
		var answerText string
		for j, line := range lines {
			label, text := line[:len("ก")], line[len("ก. "):]
			texts[j] = text
			if label == answer {
				answerText = text
			}
		}
		assert.Equal(t, "สาม", answerText, "answer label follows the shuffled choice")

		sort.Strings(texts)
		assert.Equal(t, []string{"สอง", "สาม", "สี่", "หนึ่ง"}, texts)
	}
}

func TestPresentChoicesTrueFalse(t *testing.T) {
	q := &domain.Question{Type: domain.QuestionTypeTrueFalse, Question: "โลกกลม", Answer: "true"}
	lines, answer := presentChoices(q, true)
	assert.Equal(t, []string{"ก. จริง", "ข. เท็จ"}, lines)
	assert.Equal(t, "ก", answer)

	q.Answer = "false"
	_, answer = presentChoices(q, false)
	assert.Equal(t, "ข", answer)
}

func TestNewPDFRendererMissingFont(t *testing.T) {
	_, err := NewPDFRenderer(t.TempDir())
	assert.Error(t, err)
}
