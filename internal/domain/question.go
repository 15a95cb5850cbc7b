package domain

import "strings"

// QuestionType identifies the two generated question variants.
type QuestionType string

const (
	QuestionTypeMCQ       QuestionType = "mcq"
	QuestionTypeTrueFalse QuestionType = "tf"
)

// ChoiceLabels are the Thai answer labels used for MCQ choices.
var ChoiceLabels = []string{"ก", "ข", "ค", "ง"}

// Question is one generated quiz item. Instances are created at the
// generation boundary and never mutated afterwards.
type Question struct {
	Type     QuestionType `json:"type"`
	Question string       `json:"question"`
	Choices  []string     `json:"choices,omitempty"`
	Answer   string       `json:"answer"`
	Explain  string       `json:"explain,omitempty"`
	Topic    string       `json:"topic,omitempty"`
}

// IsChoiceLabel reports whether s is one of the MCQ answer labels.
func IsChoiceLabel(s string) bool {
	for _, l := range ChoiceLabels {
		if s == l {
			return true
		}
	}
	return false
}

// NormalizeTrueFalseAnswer maps the accepted boolean-like tokens
// (true/false and their Thai equivalents) to canonical "true"/"false".
// The second return value is false for anything else.
func NormalizeTrueFalseAnswer(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "จริง":
		return "true", true
	case "false", "เท็จ":
		return "false", true
	}
	return "", false
}

// Validate checks the question against the shape rules of its type.
// Malformed model output is dropped at the generation boundary rather
// than propagated inward, so services can trust validated questions.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return NewInvalidInputError("question text is required")
	}
	switch q.Type {
	case QuestionTypeMCQ:
		if len(q.Choices) == 0 || len(q.Choices) > 4 {
			return NewInvalidInputError("mcq question requires 1-4 choices")
		}
		if !IsChoiceLabel(strings.TrimSpace(q.Answer)) {
			return NewInvalidInputError("mcq answer must be one of ก/ข/ค/ง")
		}
	case QuestionTypeTrueFalse:
		if _, ok := NormalizeTrueFalseAnswer(q.Answer); !ok {
			return NewInvalidInputError("tf answer must be true/false")
		}
	default:
		return NewInvalidInputError("unknown question type: " + string(q.Type))
	}
	return nil
}
