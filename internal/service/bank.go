package service

import (
	"strings"
	"time"

	"github.com/Nickzanarak/Edu/internal/domain"
	"github.com/Nickzanarak/Edu/internal/dto"
)

// BankService manages per-user notes, the question bank and quiz sets.
// Persistence is whole-list read-modify-write on flat files; writers
// of the same user's data are last-writer-wins.
type BankService interface {
	GetNote(userID, fileID string) (*dto.NoteResponse, error)
	PutNote(userID, fileID string, req *dto.NoteRequest) (*dto.NoteResponse, error)

	ListQuestions(userID string) ([]dto.BankQuestionResponse, error)
	CreateQuestion(userID string, req *dto.BankQuestionRequest) (*dto.BankQuestionResponse, error)
	UpdateQuestion(userID string, id int, req *dto.BankQuestionRequest) (*dto.BankQuestionResponse, error)
	DeleteQuestion(userID string, id int) error

	ListQuizzes(userID string) ([]dto.QuizSetResponse, error)
	GetQuiz(userID string, id int) (*dto.QuizSetResponse, error)
	CreateQuiz(userID string, req *dto.QuizSetRequest) (*dto.QuizSetResponse, error)
	CreateEmptyQuiz(userID string, req *dto.QuizSetTitleRequest) (*dto.QuizSetResponse, error)
	UpdateQuiz(userID string, id int, req *dto.QuizSetRequest) (*dto.QuizSetResponse, error)
	DeleteQuiz(userID string, id int) error
	AppendQuestion(userID string, quizID, questionID int) (*dto.QuizSetResponse, error)
	RemoveQuestion(userID string, quizID, questionID int) (*dto.QuizSetResponse, error)
	MergeQuizzes(userID string, req *dto.QuizSetMergeRequest) (*dto.QuizSetResponse, error)
}

type bankService struct {
	notes domain.NoteRepository
	bank  domain.BankRepository
}

func NewBankService(notes domain.NoteRepository, bank domain.BankRepository) BankService {
	return &bankService{notes: notes, bank: bank}
}

func (s *bankService) GetNote(userID, fileID string) (*dto.NoteResponse, error) {
	note, err := s.notes.GetNote(userID, fileID)
	if err != nil {
		return nil, domain.NewInternalError("failed to read note", err)
	}
	return &dto.NoteResponse{FileID: fileID, Content: note.Content, UpdatedAt: note.UpdatedAt}, nil
}

func (s *bankService) PutNote(userID, fileID string, req *dto.NoteRequest) (*dto.NoteResponse, error) {
	note, err := s.notes.PutNote(userID, fileID, req.Content)
	if err != nil {
		return nil, domain.NewInternalError("failed to save note", err)
	}
	return &dto.NoteResponse{FileID: fileID, Content: note.Content, UpdatedAt: note.UpdatedAt}, nil
}

func (s *bankService) ListQuestions(userID string) ([]dto.BankQuestionResponse, error) {
	questions, err := s.bank.ListQuestions(userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to read question bank", err)
	}
	out := make([]dto.BankQuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, toBankQuestionResponse(q))
	}
	return out, nil
}

func (s *bankService) CreateQuestion(userID string, req *dto.BankQuestionRequest) (*dto.BankQuestionResponse, error) {
	question, err := buildBankQuestion(req)
	if err != nil {
		return nil, err
	}

	questions, err := s.bank.ListQuestions(userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to read question bank", err)
	}
	entry := &domain.BankQuestion{ID: nextID(questionIDs(questions)), Question: *question}
	questions = append(questions, entry)
	if err := s.bank.SaveQuestions(userID, questions); err != nil {
		return nil, domain.NewInternalError("failed to save question bank", err)
	}
	resp := toBankQuestionResponse(entry)
	return &resp, nil
}

func (s *bankService) UpdateQuestion(userID string, id int, req *dto.BankQuestionRequest) (*dto.BankQuestionResponse, error) {
	question, err := buildBankQuestion(req)
	if err != nil {
		return nil, err
	}

	questions, err := s.bank.ListQuestions(userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to read question bank", err)
	}
	for _, q := range questions {
		if q.ID == id {
			q.Question = *question
			if err := s.bank.SaveQuestions(userID, questions); err != nil {
				return nil, domain.NewInternalError("failed to save question bank", err)
			}
			resp := toBankQuestionResponse(q)
			return &resp, nil
		}
	}
	return nil, domain.NewNotFoundError("question not found")
}

// DeleteQuestion removes a question and cascades the id out of every
// quiz set that references it.
func (s *bankService) DeleteQuestion(userID string, id int) error {
	questions, err := s.bank.ListQuestions(userID)
	if err != nil {
		return domain.NewInternalError("failed to read question bank", err)
	}
	kept := questions[:0]
	found := false
	for _, q := range questions {
		if q.ID == id {
			found = true
			continue
		}
		kept = append(kept, q)
	}
	if !found {
		return domain.NewNotFoundError("question not found")
	}
	if err := s.bank.SaveQuestions(userID, kept); err != nil {
		return domain.NewInternalError("failed to save question bank", err)
	}

	quizzes, err := s.bank.ListQuizzes(userID)
	if err != nil {
		return domain.NewInternalError("failed to read quiz sets", err)
	}
	changed := false
	for _, quiz := range quizzes {
		filtered := quiz.QuestionIDs[:0]
		for _, qid := range quiz.QuestionIDs {
			if qid != id {
				filtered = append(filtered, qid)
			}
		}
		if len(filtered) != len(quiz.QuestionIDs) {
			quiz.QuestionIDs = filtered
			quiz.UpdatedAt = time.Now().UTC()
			changed = true
		}
	}
	if changed {
		if err := s.bank.SaveQuizzes(userID, quizzes); err != nil {
			return domain.NewInternalError("failed to save quiz sets", err)
		}
	}
	return nil
}

func (s *bankService) ListQuizzes(userID string) ([]dto.QuizSetResponse, error) {
	quizzes, err := s.bank.ListQuizzes(userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to read quiz sets", err)
	}
	out := make([]dto.QuizSetResponse, 0, len(quizzes))
	for _, q := range quizzes {
		out = append(out, toQuizSetResponse(q))
	}
	return out, nil
}

func (s *bankService) GetQuiz(userID string, id int) (*dto.QuizSetResponse, error) {
	quizzes, err := s.bank.ListQuizzes(userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to read quiz sets", err)
	}
	quiz := findQuiz(quizzes, id)
	if quiz == nil {
		return nil, domain.NewNotFoundError("quiz set not found")
	}
	resp := toQuizSetResponse(quiz)
	return &resp, nil
}

func (s *bankService) CreateQuiz(userID string, req *dto.QuizSetRequest) (*dto.QuizSetResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.NewInvalidInputError("title must not be empty")
	}

	questions, err := s.bank.ListQuestions(userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to read question bank", err)
	}
	ids, err := validateQuestionIDs(req.QuestionIDs, questions)
	if err != nil {
		return nil, err
	}

	return s.appendQuiz(userID, title, ids)
}

func (s *bankService) CreateEmptyQuiz(userID string, req *dto.QuizSetTitleRequest) (*dto.QuizSetResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.NewInvalidInputError("title must not be empty")
	}
	return s.appendQuiz(userID, title, []int{})
}

func (s *bankService) UpdateQuiz(userID string, id int, req *dto.QuizSetRequest) (*dto.QuizSetResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.NewInvalidInputError("title must not be empty")
	}

	questions, err := s.bank.ListQuestions(userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to read question bank", err)
	}
	ids, err := validateQuestionIDs(req.QuestionIDs, questions)
	if err != nil {
		return nil, err
	}

	quizzes, err := s.bank.ListQuizzes(userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to read quiz sets", err)
	}
	quiz := findQuiz(quizzes, id)
	if quiz == nil {
		return nil, domain.NewNotFoundError("quiz set not found")
	}
	quiz.Title = title
	quiz.QuestionIDs = ids
	quiz.UpdatedAt = time.Now().UTC()
	if err := s.bank.SaveQuizzes(userID, quizzes); err != nil {
		return nil, domain.NewInternalError("failed to save quiz sets", err)
	}
	resp := toQuizSetResponse(quiz)
	return &resp, nil
}

func (s *bankService) DeleteQuiz(userID string, id int) error {
	quizzes, err := s.bank.ListQuizzes(userID)
	if err != nil {
		return domain.NewInternalError("failed to read quiz sets", err)
	}
	kept := quizzes[:0]
	found := false
	for _, q := range quizzes {
		if q.ID == id {
			found = true
			continue
		}
		kept = append(kept, q)
	}
	if !found {
		return domain.NewNotFoundError("quiz set not found")
	}
	if err := s.bank.SaveQuizzes(userID, kept); err != nil {
		return domain.NewInternalError("failed to save quiz sets", err)
	}
	return nil
}

// AppendQuestion adds a bank question to a quiz set; appending an id
// already present is a no-op rather than an error.
func (s *bankService) AppendQuestion(userID string, quizID, questionID int) (*dto.QuizSetResponse, error) {
	questions, err := s.bank.ListQuestions(userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to read question bank", err)
	}
	if !hasQuestionID(questions, questionID) {
		return nil, domain.NewNotFoundError("question not found")
	}

	quizzes, err := s.bank.ListQuizzes(userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to read quiz sets", err)
	}
	quiz := findQuiz(quizzes, quizID)
	if quiz == nil {
		return nil, domain.NewNotFoundError("quiz set not found")
	}

	present := false
	for _, id := range quiz.QuestionIDs {
		if id == questionID {
			present = true
			break
		}
	}
	if !present {
		quiz.QuestionIDs = append(quiz.QuestionIDs, questionID)
		quiz.UpdatedAt = time.Now().UTC()
		if err := s.bank.SaveQuizzes(userID, quizzes); err != nil {
			return nil, domain.NewInternalError("failed to save quiz sets", err)
		}
	}
	resp := toQuizSetResponse(quiz)
	return &resp, nil
}

func (s *bankService) RemoveQuestion(userID string, quizID, questionID int) (*dto.QuizSetResponse, error) {
	quizzes, err := s.bank.ListQuizzes(userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to read quiz sets", err)
	}
	quiz := findQuiz(quizzes, quizID)
	if quiz == nil {
		return nil, domain.NewNotFoundError("quiz set not found")
	}

	filtered := quiz.QuestionIDs[:0]
	for _, id := range quiz.QuestionIDs {
		if id != questionID {
			filtered = append(filtered, id)
		}
	}
	if len(filtered) != len(quiz.QuestionIDs) {
		quiz.QuestionIDs = filtered
		quiz.UpdatedAt = time.Now().UTC()
		if err := s.bank.SaveQuizzes(userID, quizzes); err != nil {
			return nil, domain.NewInternalError("failed to save quiz sets", err)
		}
	}
	resp := toQuizSetResponse(quiz)
	return &resp, nil
}

// MergeQuizzes creates a new quiz set holding the union of the source
// sets' question ids in first-seen order.
func (s *bankService) MergeQuizzes(userID string, req *dto.QuizSetMergeRequest) (*dto.QuizSetResponse, error) {
	if len(req.QuizIDs) == 0 {
		return nil, domain.NewInvalidInputError("quiz_ids must not be empty")
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.NewInvalidInputError("title must not be empty")
	}

	quizzes, err := s.bank.ListQuizzes(userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to read quiz sets", err)
	}

	seen := make(map[int]struct{})
	var merged []int
	for _, quizID := range req.QuizIDs {
		quiz := findQuiz(quizzes, quizID)
		if quiz == nil {
			return nil, domain.NewNotFoundError("quiz set not found")
		}
		for _, qid := range quiz.QuestionIDs {
			if _, ok := seen[qid]; ok {
				continue
			}
			seen[qid] = struct{}{}
			merged = append(merged, qid)
		}
	}
	if merged == nil {
		merged = []int{}
	}

	now := time.Now().UTC()
	quiz := &domain.QuizSet{
		ID:          nextID(quizIDs(quizzes)),
		Title:       title,
		QuestionIDs: merged,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	quizzes = append(quizzes, quiz)
	if err := s.bank.SaveQuizzes(userID, quizzes); err != nil {
		return nil, domain.NewInternalError("failed to save quiz sets", err)
	}
	resp := toQuizSetResponse(quiz)
	return &resp, nil
}

func (s *bankService) appendQuiz(userID, title string, ids []int) (*dto.QuizSetResponse, error) {
	quizzes, err := s.bank.ListQuizzes(userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to read quiz sets", err)
	}
	now := time.Now().UTC()
	quiz := &domain.QuizSet{
		ID:          nextID(quizIDs(quizzes)),
		Title:       title,
		QuestionIDs: ids,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	quizzes = append(quizzes, quiz)
	if err := s.bank.SaveQuizzes(userID, quizzes); err != nil {
		return nil, domain.NewInternalError("failed to save quiz sets", err)
	}
	resp := toQuizSetResponse(quiz)
	return &resp, nil
}

// buildBankQuestion validates and normalizes an incoming question.
// MCQ choices are padded with empty options up to four and capped at
// four; true/false answers accept Thai boolean tokens.
func buildBankQuestion(req *dto.BankQuestionRequest) (*domain.Question, error) {
	text := strings.TrimSpace(req.Question)
	if text == "" {
		return nil, domain.NewInvalidInputError("question must not be empty")
	}

	q := &domain.Question{
		Type:     domain.QuestionType(req.Type),
		Question: text,
		Explain:  strings.TrimSpace(req.Explain),
		Topic:    strings.TrimSpace(req.Topic),
	}
	switch q.Type {
	case domain.QuestionTypeMCQ:
		choices := make([]string, 0, 4)
		for _, c := range req.Choices {
			choices = append(choices, strings.TrimSpace(c))
		}
		if len(choices) > 4 {
			choices = choices[:4]
		}
		for len(choices) < 4 {
			choices = append(choices, "")
		}
		q.Choices = choices
		q.Answer = strings.TrimSpace(req.Answer)
		if !domain.IsChoiceLabel(q.Answer) {
			return nil, domain.NewInvalidInputError("answer must be one of ก ข ค ง")
		}
	case domain.QuestionTypeTrueFalse:
		normalized, ok := domain.NormalizeTrueFalseAnswer(req.Answer)
		if !ok {
			return nil, domain.NewInvalidInputError("answer must be true/false or จริง/เท็จ")
		}
		q.Answer = normalized
	default:
		return nil, domain.NewInvalidInputError("type must be mcq or tf")
	}
	return q, nil
}

func validateQuestionIDs(ids []int, questions []*domain.BankQuestion) ([]int, error) {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !hasQuestionID(questions, id) {
			return nil, domain.NewNotFoundError("question not found")
		}
		out = append(out, id)
	}
	return out, nil
}

func hasQuestionID(questions []*domain.BankQuestion, id int) bool {
	for _, q := range questions {
		if q.ID == id {
			return true
		}
	}
	return false
}

func findQuiz(quizzes []*domain.QuizSet, id int) *domain.QuizSet {
	for _, q := range quizzes {
		if q.ID == id {
			return q
		}
	}
	return nil
}

func nextID(existing []int) int {
	max := 0
	for _, id := range existing {
		if id > max {
			max = id
		}
	}
	return max + 1
}

func questionIDs(questions []*domain.BankQuestion) []int {
	ids := make([]int, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	return ids
}

func quizIDs(quizzes []*domain.QuizSet) []int {
	ids := make([]int, 0, len(quizzes))
	for _, q := range quizzes {
		ids = append(ids, q.ID)
	}
	return ids
}

func toBankQuestionResponse(q *domain.BankQuestion) dto.BankQuestionResponse {
	choices := q.Choices
	if choices == nil {
		choices = []string{}
	}
	return dto.BankQuestionResponse{
		ID:       q.ID,
		Type:     string(q.Type),
		Question: q.Question.Question,
		Choices:  choices,
		Answer:   q.Answer,
		Explain:  q.Explain,
		Topic:    q.Topic,
	}
}

func toQuizSetResponse(q *domain.QuizSet) dto.QuizSetResponse {
	ids := q.QuestionIDs
	if ids == nil {
		ids = []int{}
	}
	return dto.QuizSetResponse{
		ID:          q.ID,
		Title:       q.Title,
		QuestionIDs: ids,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}
