package service

import (
	"context"
	"strings"

	"github.com/Nickzanarak/Edu/internal/config"
	"github.com/Nickzanarak/Edu/internal/domain"
	"github.com/Nickzanarak/Edu/internal/dto"
	"github.com/Nickzanarak/Edu/internal/logger"
	"github.com/Nickzanarak/Edu/internal/similarity"

	"go.uber.org/zap"
)

const defaultQuestionCount = 5

// QuizService generates deduplicated quiz question batches.
type QuizService interface {
	GenerateMCQ(ctx context.Context, req *dto.QuizGenerationRequest) (*dto.QuizGenerationResponse, error)
	GenerateTrueFalse(ctx context.Context, req *dto.QuizGenerationRequest) (*dto.QuizGenerationResponse, error)
}

// quizService implements QuizService
type quizService struct {
	generator domain.QuestionGenerationService
	cfg       config.QuizGenConfig
}

// NewQuizService creates a new instance of quizService.
func NewQuizService(generator domain.QuestionGenerationService, cfg config.QuizGenConfig) QuizService {
	return &quizService{
		generator: generator,
		cfg:       cfg,
	}
}

// GenerateMCQ implements QuizService
func (s *quizService) GenerateMCQ(ctx context.Context, req *dto.QuizGenerationRequest) (*dto.QuizGenerationResponse, error) {
	return s.generate(ctx, req, s.generator.GenerateMCQCandidates)
}

// GenerateTrueFalse implements QuizService
func (s *quizService) GenerateTrueFalse(ctx context.Context, req *dto.QuizGenerationRequest) (*dto.QuizGenerationResponse, error) {
	return s.generate(ctx, req, s.generator.GenerateTrueFalseCandidates)
}

// generateOnceFunc is one call to the generation boundary for a
// specific question kind.
type generateOnceFunc func(ctx context.Context, req domain.GenerationRequest) ([]*domain.Question, error)

// generate runs the retry loop: ask for the remaining shortfall, filter
// near-duplicates, accumulate, narrow topic hints, and stop on either a
// full batch or an exhausted retry budget. Under-delivery is a normal
// result; a generation-service failure aborts the whole call.
func (s *quizService) generate(ctx context.Context, req *dto.QuizGenerationRequest, generateOnce generateOnceFunc) (*dto.QuizGenerationResponse, error) {
	content := strings.TrimSpace(req.Context)
	if content == "" {
		return nil, domain.NewInvalidInputError("context is required")
	}
	n := s.clampCount(req.N)

	exclude := trimNonEmpty(req.Exclude)
	topics := trimNonEmpty(req.Topics)

	var collected []*domain.Question
	for tries := 0; len(collected) < n && tries < s.cfg.MaxTriesPerBatch; tries++ {
		need := n - len(collected)

		// The round's exclusion set is the caller's list plus
		// everything accepted so far.
		avoid := make([]string, 0, len(exclude)+len(collected))
		avoid = append(avoid, exclude...)
		avoid = append(avoid, questionTexts(collected)...)

		var topicHints []string
		if len(topics) > 0 {
			topicHints = topics
			if len(topicHints) > need {
				topicHints = topicHints[:need]
			}
		}

		batch, err := generateOnce(ctx, domain.GenerationRequest{
			Content: content,
			Count:   need,
			Exclude: avoid,
			Topics:  topicHints,
		})
		if err != nil {
			return nil, err
		}

		accepted := filterNearDuplicates(batch, avoid, s.cfg.DuplicateThreshold)

		// Second pass against the full collected list. The avoid set
		// above already contains those texts, but the list is rebuilt
		// each round; this keeps cross-round protection independent of
		// that reconstruction.
		for _, q := range accepted {
			if !similarToAny(q.Question, collected, s.cfg.DuplicateThreshold) {
				collected = append(collected, q)
			}
		}

		if len(topics) > 0 {
			topics = remainingTopics(topics, collected)
		}

		logger.Get().Debug("quiz generation round finished",
			zap.Int("round", tries+1),
			zap.Int("requested", need),
			zap.Int("candidates", len(batch)),
			zap.Int("collected", len(collected)),
			zap.Int("topics_left", len(topics)),
		)
	}

	if len(collected) > n {
		collected = collected[:n]
	}
	return &dto.QuizGenerationResponse{Questions: toQuestionDTOs(collected)}, nil
}

// clampCount applies the request-count defaults: zero means the
// default batch size, anything above the cap is trimmed to the cap.
// Negative counts are rejected by the validator before this point.
func (s *quizService) clampCount(n int) int {
	if n <= 0 {
		n = defaultQuestionCount
	}
	if n > s.cfg.MaxQuestionCount {
		n = s.cfg.MaxQuestionCount
	}
	return n
}

// filterNearDuplicates keeps candidates in input order, dropping any
// whose text is empty, scores at or above threshold against an entry
// of avoid, or collides with an earlier survivor of this same call.
// A single left-to-right pass; rejected candidates are never revisited.
func filterNearDuplicates(candidates []*domain.Question, avoid []string, threshold float64) []*domain.Question {
	var kept []*domain.Question
	for _, q := range candidates {
		if q == nil {
			continue
		}
		text := strings.TrimSpace(q.Question)
		if text == "" {
			continue
		}
		if similarToAnyText(text, avoid, threshold) {
			continue
		}
		if similarToAny(text, kept, threshold) {
			continue
		}
		kept = append(kept, q)
	}
	return kept
}

func similarToAnyText(text string, avoid []string, threshold float64) bool {
	for _, a := range avoid {
		if similarity.Score(text, a) >= threshold {
			return true
		}
	}
	return false
}

func similarToAny(text string, questions []*domain.Question, threshold float64) bool {
	for _, q := range questions {
		if similarity.Score(text, q.Question) >= threshold {
			return true
		}
	}
	return false
}

// remainingTopics drops every topic hint already satisfied by a
// collected item, matching on exact equality after lower-casing. A
// paraphrased topic echo never matches, so that hint stays in the
// queue for later rounds.
func remainingTopics(topics []string, collected []*domain.Question) []string {
	used := make(map[string]struct{}, len(collected))
	for _, q := range collected {
		used[strings.ToLower(strings.TrimSpace(q.Topic))] = struct{}{}
	}
	var left []string
	for _, t := range topics {
		if _, ok := used[strings.ToLower(strings.TrimSpace(t))]; !ok {
			left = append(left, t)
		}
	}
	return left
}

func questionTexts(questions []*domain.Question) []string {
	texts := make([]string, 0, len(questions))
	for _, q := range questions {
		texts = append(texts, q.Question)
	}
	return texts
}

func trimNonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func toQuestionDTOs(questions []*domain.Question) []dto.Question {
	out := make([]dto.Question, 0, len(questions))
	for _, q := range questions {
		out = append(out, dto.Question{
			Type:     string(q.Type),
			Question: q.Question,
			Choices:  q.Choices,
			Answer:   q.Answer,
			Explain:  q.Explain,
			Topic:    q.Topic,
		})
	}
	return out
}
