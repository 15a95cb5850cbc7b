package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Nickzanarak/Edu/internal/cache"
	"github.com/Nickzanarak/Edu/internal/domain"
	"github.com/Nickzanarak/Edu/internal/dto"
	"github.com/Nickzanarak/Edu/internal/logger"
	"github.com/Nickzanarak/Edu/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	summaryContextLimit = 45000
	minSummarySentences = 3
)

// ContentService exposes the document analysis operations.
type ContentService interface {
	Summarize(ctx context.Context, req *dto.SummarizeRequest) (*dto.SummarizeResponse, error)
	ExtractTopics(ctx context.Context, req *dto.TopicsRequest) (*dto.TopicsResponse, error)
	AnswerQuestion(ctx context.Context, req *dto.QARequest) (*dto.QAResponse, error)
}

type contentService struct {
	analysis domain.ContentAnalysisService
	cache    domain.Cache
	cacheTTL time.Duration
	group    singleflight.Group
}

// NewContentService builds a content service. cacheClient may be nil,
// which disables response caching entirely.
func NewContentService(analysis domain.ContentAnalysisService, cacheClient domain.Cache, cacheTTL time.Duration) ContentService {
	return &contentService{
		analysis: analysis,
		cache:    cacheClient,
		cacheTTL: cacheTTL,
	}
}

// Summarize produces the structured summary of a document. Identical
// documents share one cached result; concurrent requests for the same
// document collapse into a single upstream call.
func (s *contentService) Summarize(ctx context.Context, req *dto.SummarizeRequest) (*dto.SummarizeResponse, error) {
	content := util.CleanText(req.Context)
	if content == "" {
		return nil, domain.NewInvalidInputError("context must not be empty")
	}
	content = util.TruncateChars(content, summaryContextLimit)
	if len(util.SplitSentences(content)) < minSummarySentences {
		return nil, domain.NewUnsupportedDocumentError("เอกสารสั้นเกินไป")
	}

	key := cache.GenerateCacheKey("summary", cache.ContentHash(content))
	if cached, ok := s.cachedSummary(ctx, key); ok {
		return toSummaryResponse(cached), nil
	}

	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		if cached, ok := s.cachedSummary(ctx, key); ok {
			return cached, nil
		}
		summary, err := s.analysis.Summarize(ctx, content)
		if err != nil {
			return nil, err
		}
		s.storeSummary(ctx, key, summary)
		return summary, nil
	})
	if err != nil {
		return nil, err
	}
	return toSummaryResponse(result.(*domain.Summary)), nil
}

func (s *contentService) cachedSummary(ctx context.Context, key string) (*domain.Summary, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("summary cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var summary domain.Summary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		logger.Get().Warn("dropping corrupt summary cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &summary, true
}

func (s *contentService) storeSummary(ctx context.Context, key string, summary *domain.Summary) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.cacheTTL); err != nil {
		logger.Get().Warn("summary cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// ExtractTopics returns topic hints for the quiz generator, cached the
// same way summaries are.
func (s *contentService) ExtractTopics(ctx context.Context, req *dto.TopicsRequest) (*dto.TopicsResponse, error) {
	content := util.CleanText(req.Context)
	if content == "" {
		return nil, domain.NewInvalidInputError("context must not be empty")
	}
	content = util.TruncateChars(content, summaryContextLimit)

	key := cache.GenerateCacheKey("topics", cache.ContentHash(content))
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err == nil {
			var topics []string
			if json.Unmarshal([]byte(raw), &topics) == nil {
				return &dto.TopicsResponse{Topics: topics}, nil
			}
		}
	}

	topics, err := s.analysis.ExtractTopics(ctx, content)
	if err != nil {
		return nil, err
	}
	if topics == nil {
		topics = []string{}
	}
	if s.cache != nil {
		if data, err := json.Marshal(topics); err == nil {
			if err := s.cache.Set(ctx, key, string(data), s.cacheTTL); err != nil {
				logger.Get().Warn("topics cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return &dto.TopicsResponse{Topics: topics}, nil
}

// AnswerQuestion answers a free-form question grounded in the given
// document. Answers are not cached: questions rarely repeat verbatim.
func (s *contentService) AnswerQuestion(ctx context.Context, req *dto.QARequest) (*dto.QAResponse, error) {
	content := util.CleanText(req.Context)
	question := util.CleanText(req.Question)
	if content == "" {
		return nil, domain.NewInvalidInputError("context must not be empty")
	}
	if question == "" {
		return nil, domain.NewInvalidInputError("question must not be empty")
	}
	content = util.TruncateChars(content, summaryContextLimit)

	answer, err := s.analysis.AnswerQuestion(ctx, content, question)
	if err != nil {
		return nil, err
	}
	return &dto.QAResponse{Answer: answer}, nil
}

func toSummaryResponse(summary *domain.Summary) *dto.SummarizeResponse {
	resp := &dto.SummarizeResponse{
		Overview:   summary.Overview,
		KeyPoints:  summary.KeyPoints,
		Sections:   make([]dto.SummarySection, 0, len(summary.Sections)),
		DataPoints: make([]dto.DataPoint, 0, len(summary.DataPoints)),
	}
	if resp.KeyPoints == nil {
		resp.KeyPoints = []string{}
	}
	for _, s := range summary.Sections {
		resp.Sections = append(resp.Sections, dto.SummarySection{Title: s.Title, Summary: s.Summary})
	}
	for _, d := range summary.DataPoints {
		resp.DataPoints = append(resp.DataPoints, dto.DataPoint{Label: d.Label, Value: d.Value, Unit: d.Unit})
	}
	return resp
}
