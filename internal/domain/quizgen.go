package domain

import "context"

// GenerationRequest carries one round of question generation.
// Exclude holds question texts the model is hinted away from; the
// caller remains responsible for similarity filtering of the result.
type GenerationRequest struct {
	Content string
	Count   int
	Exclude []string
	Topics  []string
}

// QuestionGenerationService is the boundary to the generative text
// backend. Implementations must return validated candidates only:
// malformed model output is dropped (an empty slice is a valid
// result), while transport or service failures are reported as a
// GENERATION_FAILED domain error.
type QuestionGenerationService interface {
	GenerateMCQCandidates(ctx context.Context, req GenerationRequest) ([]*Question, error)
	GenerateTrueFalseCandidates(ctx context.Context, req GenerationRequest) ([]*Question, error)
}
