package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Nickzanarak/Edu/internal/config"
	"github.com/Nickzanarak/Edu/internal/domain"
	"github.com/Nickzanarak/Edu/internal/dto"
	"github.com/Nickzanarak/Edu/internal/similarity"

	"github.com/stretchr/testify/assert"
)

// stubGenerator drives the orchestrator with scripted per-round
// behavior. Both question kinds share the same func so tests exercise
// the generic loop through either entry point.
type stubGenerator struct {
	calls    int
	requests []domain.GenerationRequest
	generate func(call int, req domain.GenerationRequest) ([]*domain.Question, error)
}

func (g *stubGenerator) GenerateMCQCandidates(ctx context.Context, req domain.GenerationRequest) ([]*domain.Question, error) {
	g.calls++
	g.requests = append(g.requests, req)
	return g.generate(g.calls, req)
}

func (g *stubGenerator) GenerateTrueFalseCandidates(ctx context.Context, req domain.GenerationRequest) ([]*domain.Question, error) {
	g.calls++
	g.requests = append(g.requests, req)
	return g.generate(g.calls, req)
}

func testGenConfig() config.QuizGenConfig {
	return config.QuizGenConfig{
		DuplicateThreshold: 0.78,
		MaxTriesPerBatch:   4,
		ContextCharLimit:   15000,
		ExcludeHintLimit:   30,
		MaxQuestionCount:   10,
	}
}

func mcq(text, topic string) *domain.Question {
	return &domain.Question{
		Type:     domain.QuestionTypeMCQ,
		Question: text,
		Choices:  []string{"ก) หนึ่ง", "ข) สอง", "ค) สาม", "ง) สี่"},
		Answer:   "ก",
		Topic:    topic,
	}
}

const (
	photoQ    = "การสังเคราะห์แสงของพืชต้องใช้สิ่งใด"
	photoQDup = "การสังเคราะห์แสงของพืชต้องใช้สิ่งใดบ้าง"
	mitoQ     = "ไมโทคอนเดรียทำหน้าที่อะไรในเซลล์"
	osmosisQ  = "การออสโมซิสของน้ำผ่านเยื่อหุ้มเซลล์คืออะไร"
)

func TestFilterNearDuplicates(t *testing.T) {
	threshold := 0.78

	t.Run("DropsEmptyAvoidedAndIntraBatchDuplicates", func(t *testing.T) {
		candidates := []*domain.Question{
			mcq("   ", ""),
			mcq(photoQ, ""),
			mcq(photoQDup, ""),
			mcq(mitoQ, ""),
		}
		kept := filterNearDuplicates(candidates, []string{mitoQ}, threshold)
		assert.Len(t, kept, 1)
		assert.Equal(t, photoQ, kept[0].Question)
	})

	t.Run("PreservesInputOrder", func(t *testing.T) {
		candidates := []*domain.Question{mcq(mitoQ, ""), mcq(osmosisQ, ""), mcq(photoQ, "")}
		kept := filterNearDuplicates(candidates, nil, threshold)
		assert.Equal(t, []string{mitoQ, osmosisQ, photoQ},
			[]string{kept[0].Question, kept[1].Question, kept[2].Question})
	})

	t.Run("Idempotence", func(t *testing.T) {
		avoid := []string{photoQ}
		candidates := []*domain.Question{mcq(mitoQ, ""), mcq(photoQDup, ""), mcq(osmosisQ, "")}
		once := filterNearDuplicates(candidates, avoid, threshold)
		twice := filterNearDuplicates(once, avoid, threshold)
		assert.Equal(t, once, twice)
	})
}

func TestFilterThresholdBoundary(t *testing.T) {
	// An exact-threshold score counts as a duplicate; only a strictly
	// smaller score passes.
	score := similarity.Score(photoQ, photoQDup)
	candidates := []*domain.Question{mcq(photoQDup, "")}

	atThreshold := filterNearDuplicates(candidates, []string{photoQ}, score)
	assert.Empty(t, atThreshold, "score equal to threshold must be rejected")

	justAbove := filterNearDuplicates(candidates, []string{photoQ}, score+1e-9)
	assert.Len(t, justAbove, 1, "score below threshold must be accepted")
}

func TestGenerateTerminatesAfterMaxTries(t *testing.T) {
	gen := &stubGenerator{generate: func(call int, req domain.GenerationRequest) ([]*domain.Question, error) {
		return nil, nil // never delivers anything
	}}
	svc := NewQuizService(gen, testGenConfig())

	resp, err := svc.GenerateMCQ(context.Background(), &dto.QuizGenerationRequest{Context: "เนื้อหา", N: 5})
	assert.NoError(t, err)
	assert.Empty(t, resp.Questions)
	assert.Equal(t, 4, gen.calls, "retry budget is exactly MaxTriesPerBatch attempts")
}

func TestGeneratePartialResultOnUnderDelivery(t *testing.T) {
	fresh := []string{photoQ, mitoQ, osmosisQ}
	gen := &stubGenerator{generate: func(call int, req domain.GenerationRequest) ([]*domain.Question, error) {
		if call > len(fresh) {
			return nil, nil
		}
		return []*domain.Question{mcq(fresh[call-1], "")}, nil
	}}
	svc := NewQuizService(gen, testGenConfig())

	resp, err := svc.GenerateTrueFalse(context.Background(), &dto.QuizGenerationRequest{Context: "เนื้อหา", N: 5})
	assert.NoError(t, err)
	assert.Len(t, resp.Questions, 3, "fewer than requested is a normal result")
	assert.Equal(t, 4, gen.calls)
}

func TestGenerateSucceedsInOneRound(t *testing.T) {
	gen := &stubGenerator{generate: func(call int, req domain.GenerationRequest) ([]*domain.Question, error) {
		return []*domain.Question{mcq(photoQ, ""), mcq(mitoQ, ""), mcq(osmosisQ, "")}, nil
	}}
	svc := NewQuizService(gen, testGenConfig())

	resp, err := svc.GenerateMCQ(context.Background(), &dto.QuizGenerationRequest{Context: "เนื้อหา", N: 3})
	assert.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, []string{photoQ, mitoQ, osmosisQ}, resultTexts(resp.Questions))
}

func TestGenerateNeverOverDelivers(t *testing.T) {
	gen := &stubGenerator{generate: func(call int, req domain.GenerationRequest) ([]*domain.Question, error) {
		// Hand back far more distinct questions than asked for.
		return []*domain.Question{
			mcq(photoQ, ""), mcq(mitoQ, ""), mcq(osmosisQ, ""),
			mcq("คลอโรพลาสต์พบในเซลล์ชนิดใด", ""),
			mcq("เอนไซม์ทำงานได้ดีที่อุณหภูมิเท่าใด", ""),
		}, nil
	}}
	svc := NewQuizService(gen, testGenConfig())

	resp, err := svc.GenerateMCQ(context.Background(), &dto.QuizGenerationRequest{Context: "เนื้อหา", N: 2})
	assert.NoError(t, err)
	assert.Len(t, resp.Questions, 2)
}

func TestGenerateCrossRoundDedup(t *testing.T) {
	gen := &stubGenerator{generate: func(call int, req domain.GenerationRequest) ([]*domain.Question, error) {
		if call == 1 {
			return []*domain.Question{mcq(photoQ, "")}, nil
		}
		// Round 2 repeats round 1's question in near-identical
		// phrasing plus one genuinely new question.
		return []*domain.Question{mcq(photoQDup, ""), mcq(mitoQ, "")}, nil
	}}
	svc := NewQuizService(gen, testGenConfig())

	resp, err := svc.GenerateMCQ(context.Background(), &dto.QuizGenerationRequest{Context: "เนื้อหา", N: 2})
	assert.NoError(t, err)
	assert.Equal(t, []string{photoQ, mitoQ}, resultTexts(resp.Questions))
}

func TestGenerateHonorsCallerExclusions(t *testing.T) {
	gen := &stubGenerator{generate: func(call int, req domain.GenerationRequest) ([]*domain.Question, error) {
		return []*domain.Question{mcq(photoQDup, ""), mcq(mitoQ, "")}, nil
	}}
	svc := NewQuizService(gen, testGenConfig())

	resp, err := svc.GenerateMCQ(context.Background(), &dto.QuizGenerationRequest{
		Context: "เนื้อหา",
		N:       2,
		Exclude: []string{photoQ},
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{mitoQ}, resultTexts(resp.Questions))
	for _, r := range gen.requests {
		assert.Contains(t, r.Exclude, photoQ, "caller exclusions must reach every round")
	}
}

func TestGenerateConsumesTopicHints(t *testing.T) {
	topics := []string{"การสังเคราะห์แสง", "ไมโทคอนเดรีย", "ออสโมซิส"}
	gen := &stubGenerator{generate: func(call int, req domain.GenerationRequest) ([]*domain.Question, error) {
		if len(req.Topics) == 0 {
			return nil, nil
		}
		// Echo the first offered topic back, one question per round.
		switch req.Topics[0] {
		case topics[0]:
			return []*domain.Question{mcq(photoQ, topics[0])}, nil
		case topics[1]:
			return []*domain.Question{mcq(mitoQ, topics[1])}, nil
		default:
			return []*domain.Question{mcq(osmosisQ, topics[2])}, nil
		}
	}}
	svc := NewQuizService(gen, testGenConfig())

	resp, err := svc.GenerateMCQ(context.Background(), &dto.QuizGenerationRequest{
		Context: "เนื้อหา",
		N:       3,
		Topics:  topics,
	})
	assert.NoError(t, err)
	assert.Len(t, resp.Questions, 3)
	assert.Equal(t, 3, gen.calls)
	assert.NotContains(t, gen.requests[1].Topics, topics[0], "consumed topic must leave the queue")
	assert.Equal(t, []string{topics[2]}, gen.requests[2].Topics)
}

func TestGenerateTopicHintsTruncatedToNeed(t *testing.T) {
	topics := []string{"หัวข้อหนึ่ง", "หัวข้อสอง", "หัวข้อสาม", "หัวข้อสี่"}
	gen := &stubGenerator{generate: func(call int, req domain.GenerationRequest) ([]*domain.Question, error) {
		return []*domain.Question{mcq(photoQ, "")}, nil
	}}
	svc := NewQuizService(gen, testGenConfig())

	_, err := svc.GenerateMCQ(context.Background(), &dto.QuizGenerationRequest{
		Context: "เนื้อหา",
		N:       2,
		Topics:  topics,
	})
	assert.NoError(t, err)
	assert.Len(t, gen.requests[0].Topics, 2, "first round needs 2, so only 2 hints are offered")
	assert.Len(t, gen.requests[1].Topics, 1, "second round needs 1")
}

func TestGenerateAbortsOnGenerationFailure(t *testing.T) {
	genErr := domain.NewGenerationFailedError(errors.New("connection refused"))
	gen := &stubGenerator{generate: func(call int, req domain.GenerationRequest) ([]*domain.Question, error) {
		if call == 2 {
			return nil, genErr
		}
		return []*domain.Question{mcq(photoQ, "")}, nil
	}}
	svc := NewQuizService(gen, testGenConfig())

	resp, err := svc.GenerateMCQ(context.Background(), &dto.QuizGenerationRequest{Context: "เนื้อหา", N: 3})
	assert.Nil(t, resp, "a service failure yields no partial result")
	assert.ErrorIs(t, err, genErr)
	assert.Equal(t, 2, gen.calls, "the failure is not retried")
}

func TestGenerateRejectsEmptyContext(t *testing.T) {
	gen := &stubGenerator{generate: func(call int, req domain.GenerationRequest) ([]*domain.Question, error) {
		t.Fatal("generator must not be called for empty context")
		return nil, nil
	}}
	svc := NewQuizService(gen, testGenConfig())

	_, err := svc.GenerateMCQ(context.Background(), &dto.QuizGenerationRequest{Context: "   ", N: 3})
	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrInvalidInput, domainErr.Code)
}

func TestGenerateEndToEndThaiBatches(t *testing.T) {
	// Round 1 delivers a trio with an internal near-duplicate; only two
	// survive, so a second round runs and fills the last slot.
	gen := &stubGenerator{generate: func(call int, req domain.GenerationRequest) ([]*domain.Question, error) {
		if call == 1 {
			return []*domain.Question{mcq(photoQ, ""), mcq(photoQDup, ""), mcq(mitoQ, "")}, nil
		}
		return []*domain.Question{mcq(osmosisQ, "")}, nil
	}}
	svc := NewQuizService(gen, testGenConfig())

	resp, err := svc.GenerateMCQ(context.Background(), &dto.QuizGenerationRequest{Context: "เนื้อหา", N: 3})
	assert.NoError(t, err)
	assert.Equal(t, 2, gen.calls)
	assert.Len(t, resp.Questions, 3)
	assert.Equal(t, 1, gen.requests[1].Count, "round 2 asks only for the shortfall")

	// No two accepted questions may be mutual near-duplicates.
	for i := range resp.Questions {
		for j := i + 1; j < len(resp.Questions); j++ {
			score := similarity.Score(resp.Questions[i].Question, resp.Questions[j].Question)
			assert.Less(t, score, 0.78)
		}
	}
}

func resultTexts(questions []dto.Question) []string {
	out := make([]string, 0, len(questions))
	for _, q := range questions {
		out = append(out, q.Question)
	}
	return out
}
