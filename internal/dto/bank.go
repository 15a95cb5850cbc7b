package dto

import "time"

// NoteRequest is the request body for PUT /notes/:fileId.
type NoteRequest struct {
	Content string `json:"content"`
}

// NoteResponse is a stored note; UpdatedAt is nil for never-written notes.
type NoteResponse struct {
	FileID    string     `json:"file_id"`
	Content   string     `json:"content"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// BankQuestionRequest creates or updates a question-bank entry.
type BankQuestionRequest struct {
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Choices  []string `json:"choices,omitempty"`
	Answer   string   `json:"answer"`
	Explain  string   `json:"explain,omitempty"`
	Topic    string   `json:"topic,omitempty"`
}

// BankQuestionResponse is a question-bank entry with its assigned id.
type BankQuestionResponse struct {
	ID       int      `json:"id"`
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
	Answer   string   `json:"answer"`
	Explain  string   `json:"explain"`
	Topic    string   `json:"topic"`
}

// QuizSetRequest creates or updates a quiz set.
type QuizSetRequest struct {
	Title       string `json:"title"`
	QuestionIDs []int  `json:"question_ids"`
}

// QuizSetTitleRequest creates an empty quiz set.
type QuizSetTitleRequest struct {
	Title string `json:"title"`
}

// QuizSetResponse is a stored quiz set.
type QuizSetResponse struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	QuestionIDs []int     `json:"question_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// QuizSetMergeRequest merges several quiz sets into a new one.
type QuizSetMergeRequest struct {
	QuizIDs []int  `json:"quiz_ids"`
	Title   string `json:"title"`
}

// QuestionIDRequest references a single bank question by id.
type QuestionIDRequest struct {
	ID int `json:"id"`
}

// ExportOptions controls PDF quiz export.
type ExportOptions struct {
	ShuffleChoices bool `json:"shuffleChoices"`
	ShowAnswers    bool `json:"showAnswers"`
}

// OKResponse acknowledges a deletion.
type OKResponse struct {
	OK bool `json:"ok"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
