package repository

import (
	"path/filepath"

	"github.com/Nickzanarak/Edu/internal/domain"
)

// FileBankRepository keeps each user's question bank and quiz sets in
// two JSON files under <dataDir>/qb/<user>/. Lists are written whole;
// the atomic rename in writeJSONFile keeps each file internally
// consistent under concurrent writers.
type FileBankRepository struct {
	dataDir string
}

func NewFileBankRepository(dataDir string) *FileBankRepository {
	return &FileBankRepository{dataDir: dataDir}
}

var _ domain.BankRepository = (*FileBankRepository)(nil)

func (r *FileBankRepository) userDir(userID string) string {
	return filepath.Join(r.dataDir, "qb", sanitizeComponent(userID))
}

func (r *FileBankRepository) ListQuestions(userID string) ([]*domain.BankQuestion, error) {
	questions := []*domain.BankQuestion{}
	path := filepath.Join(r.userDir(userID), "questions.json")
	if err := readJSONFile(path, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *FileBankRepository) SaveQuestions(userID string, questions []*domain.BankQuestion) error {
	if questions == nil {
		questions = []*domain.BankQuestion{}
	}
	return writeJSONFile(filepath.Join(r.userDir(userID), "questions.json"), questions)
}

func (r *FileBankRepository) ListQuizzes(userID string) ([]*domain.QuizSet, error) {
	quizzes := []*domain.QuizSet{}
	path := filepath.Join(r.userDir(userID), "quizzes.json")
	if err := readJSONFile(path, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *FileBankRepository) SaveQuizzes(userID string, quizzes []*domain.QuizSet) error {
	if quizzes == nil {
		quizzes = []*domain.QuizSet{}
	}
	return writeJSONFile(filepath.Join(r.userDir(userID), "quizzes.json"), quizzes)
}
