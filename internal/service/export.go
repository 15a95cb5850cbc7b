package service

import (
	"fmt"

	"github.com/Nickzanarak/Edu/internal/domain"
	"github.com/Nickzanarak/Edu/internal/dto"
	"github.com/Nickzanarak/Edu/internal/render"
)

// QuizRenderer turns a quiz set and its questions into document bytes.
type QuizRenderer interface {
	RenderQuiz(quiz *domain.QuizSet, questions []*domain.BankQuestion, opts render.Options) ([]byte, error)
}

// ExportService renders stored quiz sets into downloadable PDFs.
type ExportService interface {
	ExportQuiz(userID string, quizID int, opts *dto.ExportOptions) ([]byte, string, error)
}

type exportService struct {
	bank     domain.BankRepository
	renderer QuizRenderer
}

func NewExportService(bank domain.BankRepository, renderer QuizRenderer) ExportService {
	return &exportService{bank: bank, renderer: renderer}
}

// ExportQuiz loads a quiz set, resolves its questions in stored order
// and renders the sheet. The returned filename carries the quiz id;
// question ids that no longer resolve are skipped.
func (s *exportService) ExportQuiz(userID string, quizID int, opts *dto.ExportOptions) ([]byte, string, error) {
	quizzes, err := s.bank.ListQuizzes(userID)
	if err != nil {
		return nil, "", domain.NewInternalError("failed to read quiz sets", err)
	}
	quiz := findQuiz(quizzes, quizID)
	if quiz == nil {
		return nil, "", domain.NewNotFoundError("quiz set not found")
	}
	if len(quiz.QuestionIDs) == 0 {
		return nil, "", domain.NewInvalidInputError("quiz set has no questions")
	}

	all, err := s.bank.ListQuestions(userID)
	if err != nil {
		return nil, "", domain.NewInternalError("failed to read question bank", err)
	}
	byID := make(map[int]*domain.BankQuestion, len(all))
	for _, q := range all {
		byID[q.ID] = q
	}
	questions := make([]*domain.BankQuestion, 0, len(quiz.QuestionIDs))
	for _, id := range quiz.QuestionIDs {
		if q, ok := byID[id]; ok {
			questions = append(questions, q)
		}
	}
	if len(questions) == 0 {
		return nil, "", domain.NewInvalidInputError("quiz set has no questions")
	}

	renderOpts := render.Options{}
	if opts != nil {
		renderOpts.ShuffleChoices = opts.ShuffleChoices
		renderOpts.ShowAnswers = opts.ShowAnswers
	}
	data, err := s.renderer.RenderQuiz(quiz, questions, renderOpts)
	if err != nil {
		return nil, "", domain.NewInternalError("failed to render quiz", err)
	}
	return data, fmt.Sprintf("quiz-%d.pdf", quiz.ID), nil
}
