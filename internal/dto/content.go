package dto

// SummarizeRequest is the request body for POST /summarize.
type SummarizeRequest struct {
	Context string `json:"context"`
}

// SummarizeResponse mirrors domain.Summary for the API.
type SummarizeResponse struct {
	Overview   string           `json:"overview"`
	KeyPoints  []string         `json:"key_points"`
	Sections   []SummarySection `json:"sections"`
	DataPoints []DataPoint      `json:"data_points"`
}

type SummarySection struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

type DataPoint struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// QARequest is the request body for POST /qa.
type QARequest struct {
	Context  string `json:"context"`
	Question string `json:"question"`
}

// QAResponse is the grounded answer to a question.
type QAResponse struct {
	Answer string `json:"answer"`
}

// PDFExtractResponse carries the text extracted from an uploaded PDF.
type PDFExtractResponse struct {
	Text string `json:"text"`
}

// HealthResponse is the response for GET /health.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version"`
}
