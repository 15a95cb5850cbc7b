// Package textgen is the boundary to the generative text backend. It
// builds prompts, calls one of the configured model providers, and
// parses structured output into validated domain objects.
package textgen

import (
	"context"
	"strings"

	"github.com/Nickzanarak/Edu/internal/config"
	"github.com/Nickzanarak/Edu/internal/domain"

	"go.uber.org/zap"
)

// completionClient is one model provider. CompleteJSON asks for a
// single JSON object response; Complete returns free text.
type completionClient interface {
	Complete(ctx context.Context, prompt string, temperature float32) (string, error)
	CompleteJSON(ctx context.Context, prompt string, temperature float32) (string, error)
}

// Generator implements domain.QuestionGenerationService and
// domain.ContentAnalysisService on top of a completionClient.
type Generator struct {
	client completionClient
	limits config.QuizGenConfig
	logger *zap.Logger
}

var (
	_ domain.QuestionGenerationService = (*Generator)(nil)
	_ domain.ContentAnalysisService    = (*Generator)(nil)
)

// GenerateMCQCandidates implements domain.QuestionGenerationService.
// Transport failures surface as a GENERATION_FAILED domain error;
// unparseable output is an empty candidate list, not an error.
func (g *Generator) GenerateMCQCandidates(ctx context.Context, req domain.GenerationRequest) ([]*domain.Question, error) {
	raw, err := g.client.CompleteJSON(ctx, g.buildMCQPrompt(req), 0.3)
	if err != nil {
		return nil, domain.NewGenerationFailedError(err)
	}
	candidates := parseQuestions(raw, domain.QuestionTypeMCQ)
	g.logger.Debug("mcq generation round",
		zap.Int("requested", req.Count),
		zap.Int("parsed", len(candidates)),
	)
	return candidates, nil
}

// GenerateTrueFalseCandidates implements domain.QuestionGenerationService.
func (g *Generator) GenerateTrueFalseCandidates(ctx context.Context, req domain.GenerationRequest) ([]*domain.Question, error) {
	raw, err := g.client.CompleteJSON(ctx, g.buildTFPrompt(req), 0.25)
	if err != nil {
		return nil, domain.NewGenerationFailedError(err)
	}
	candidates := parseQuestions(raw, domain.QuestionTypeTrueFalse)
	g.logger.Debug("tf generation round",
		zap.Int("requested", req.Count),
		zap.Int("parsed", len(candidates)),
	)
	return candidates, nil
}

// Summarize implements domain.ContentAnalysisService with the
// two-stage flow: numbered sentences to sections first, then an
// overview grounded in those sections.
func (g *Generator) Summarize(ctx context.Context, content string) (*domain.Summary, error) {
	numbered := numberedSentences(content)

	sectionsRaw, err := g.client.CompleteJSON(ctx, buildSectionsPrompt(numbered), 0.15)
	if err != nil {
		return nil, domain.NewGenerationFailedError(err)
	}
	sections := parseSections(sectionsRaw)

	overviewRaw, err := g.client.CompleteJSON(ctx, buildOverviewPrompt(content, sections), 0.15)
	if err != nil {
		return nil, domain.NewGenerationFailedError(err)
	}
	overview := parseOverview(overviewRaw)

	return &domain.Summary{
		Overview:   overview.Overview,
		KeyPoints:  overview.KeyPoints,
		Sections:   sections,
		DataPoints: overview.DataPoints,
	}, nil
}

// ExtractTopics implements domain.ContentAnalysisService.
func (g *Generator) ExtractTopics(ctx context.Context, content string) ([]string, error) {
	raw, err := g.client.CompleteJSON(ctx, g.buildTopicsPrompt(content), 0.2)
	if err != nil {
		return nil, domain.NewGenerationFailedError(err)
	}
	return parseTopics(raw), nil
}

// AnswerQuestion implements domain.ContentAnalysisService.
func (g *Generator) AnswerQuestion(ctx context.Context, content, question string) (string, error) {
	raw, err := g.client.Complete(ctx, g.buildQAPrompt(content, question), 0.15)
	if err != nil {
		return "", domain.NewGenerationFailedError(err)
	}
	return strings.TrimSpace(raw), nil
}
