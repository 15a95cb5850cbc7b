package textgen

import (
	"encoding/json"
	"strings"

	"github.com/Nickzanarak/Edu/internal/domain"
	"github.com/Nickzanarak/Edu/internal/logger"

	"go.uber.org/zap"
)

// stripJSONFence removes a surrounding markdown code fence, which some
// models emit even when asked for bare JSON.
func stripJSONFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// extractJSONObject narrows raw completion text to the outermost JSON
// object. Local models tend to wrap JSON in prose or think-tags.
func extractJSONObject(s string) string {
	s = stripJSONFence(s)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

type rawQuestion struct {
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
	Answer   string   `json:"answer"`
	Explain  string   `json:"explain"`
	Topic    string   `json:"topic"`
}

type questionsPayload struct {
	Questions []rawQuestion `json:"questions"`
}

// parseQuestions turns raw model output into validated questions of
// the requested kind. Parse failure yields an empty candidate list and
// any individually malformed item is dropped: the boundary fails
// closed instead of propagating bad objects inward.
func parseQuestions(raw string, kind domain.QuestionType) []*domain.Question {
	body := extractJSONObject(raw)
	if body == "" {
		return nil
	}
	var payload questionsPayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		logger.Get().Warn("discarding unparseable generation output",
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return nil
	}

	var out []*domain.Question
	for _, r := range payload.Questions {
		q := &domain.Question{
			Type:     kind,
			Question: strings.TrimSpace(r.Question),
			Explain:  strings.TrimSpace(r.Explain),
			Topic:    strings.TrimSpace(r.Topic),
		}
		switch kind {
		case domain.QuestionTypeMCQ:
			choices := r.Choices
			if len(choices) > 4 {
				choices = choices[:4]
			}
			q.Choices = choices
			q.Answer = strings.TrimSpace(r.Answer)
		case domain.QuestionTypeTrueFalse:
			normalized, ok := domain.NormalizeTrueFalseAnswer(r.Answer)
			if !ok {
				continue
			}
			q.Answer = normalized
		}
		if err := q.Validate(); err != nil {
			logger.Get().Debug("dropping malformed candidate",
				zap.String("question", q.Question),
				zap.Error(err),
			)
			continue
		}
		out = append(out, q)
	}
	return out
}

type topicsPayload struct {
	Topics []string `json:"topics"`
}

func parseTopics(raw string) []string {
	body := extractJSONObject(raw)
	if body == "" {
		return nil
	}
	var payload topicsPayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil
	}
	var out []string
	for _, t := range payload.Topics {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

type sectionsPayload struct {
	Sections []domain.SummarySection `json:"sections"`
}

func parseSections(raw string) []domain.SummarySection {
	body := extractJSONObject(raw)
	if body == "" {
		return nil
	}
	var payload sectionsPayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil
	}
	var out []domain.SummarySection
	for _, s := range payload.Sections {
		s.Title = strings.TrimSpace(s.Title)
		s.Summary = strings.TrimSpace(s.Summary)
		if s.Title != "" && s.Summary != "" {
			out = append(out, s)
		}
	}
	return out
}

type overviewPayload struct {
	Overview   string             `json:"overview"`
	KeyPoints  []string           `json:"key_points"`
	DataPoints []domain.DataPoint `json:"data_points"`
}

func parseOverview(raw string) overviewPayload {
	var payload overviewPayload
	body := extractJSONObject(raw)
	if body == "" {
		return payload
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return overviewPayload{}
	}
	payload.Overview = strings.TrimSpace(payload.Overview)
	var points []domain.DataPoint
	for _, d := range payload.DataPoints {
		d.Label = strings.TrimSpace(d.Label)
		d.Value = strings.TrimSpace(d.Value)
		d.Unit = strings.TrimSpace(d.Unit)
		if d.Label != "" && d.Value != "" {
			points = append(points, d)
		}
	}
	payload.DataPoints = points
	return payload
}
