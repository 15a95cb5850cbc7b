package domain

import "context"

// SummarySection is one extracted topic block of a document summary.
type SummarySection struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// DataPoint is a labeled figure extracted from the source document.
type DataPoint struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// Summary is the structured result of document summarization.
type Summary struct {
	Overview   string           `json:"overview"`
	KeyPoints  []string         `json:"key_points"`
	Sections   []SummarySection `json:"sections"`
	DataPoints []DataPoint      `json:"data_points"`
}

// ContentAnalysisService covers the non-quiz generative operations:
// summarization, topic extraction for hint seeding, and grounded Q&A.
type ContentAnalysisService interface {
	Summarize(ctx context.Context, content string) (*Summary, error)
	ExtractTopics(ctx context.Context, content string) ([]string, error)
	AnswerQuestion(ctx context.Context, content, question string) (string, error)
}
