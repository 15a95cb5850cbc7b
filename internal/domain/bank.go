package domain

import "time"

// Note is a free-form per-user note attached to a file id.
type Note struct {
	Content   string     `json:"content"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// BankQuestion is a question stored in a user's question bank.
// IDs are small integers assigned sequentially per user.
type BankQuestion struct {
	ID int `json:"id"`
	Question
}

// QuizSet is a named, ordered selection of bank question ids.
type QuizSet struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	QuestionIDs []int     `json:"question_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NoteRepository persists per-user notes.
type NoteRepository interface {
	GetNote(userID, fileID string) (*Note, error)
	PutNote(userID, fileID, content string) (*Note, error)
}

// BankRepository persists a user's question bank and quiz sets as
// whole lists; read-modify-write is performed by the service layer.
// Writes of the same user's data are last-writer-wins: the store
// guarantees no torn file, not serialized writers.
type BankRepository interface {
	ListQuestions(userID string) ([]*BankQuestion, error)
	SaveQuestions(userID string, questions []*BankQuestion) error
	ListQuizzes(userID string) ([]*QuizSet, error)
	SaveQuizzes(userID string, quizzes []*QuizSet) error
}
