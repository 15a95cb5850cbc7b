package service

import (
	"testing"

	"github.com/Nickzanarak/Edu/internal/domain"
	"github.com/Nickzanarak/Edu/internal/dto"
	"github.com/Nickzanarak/Edu/internal/render"
	"github.com/Nickzanarak/Edu/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBankService(t *testing.T) BankService {
	t.Helper()
	dir := t.TempDir()
	return NewBankService(
		repository.NewFileNoteRepository(dir),
		repository.NewFileBankRepository(dir),
	)
}

func mcqRequest(text string) *dto.BankQuestionRequest {
	return &dto.BankQuestionRequest{
		Type:     "mcq",
		Question: text,
		Choices:  []string{"ก) หนึ่ง", "ข) สอง"},
		Answer:   "ก",
	}
}

func TestNoteLifecycle(t *testing.T) {
	svc := newBankService(t)

	note, err := svc.GetNote("alice", "doc1")
	require.NoError(t, err)
	assert.Empty(t, note.Content)
	assert.Nil(t, note.UpdatedAt)

	saved, err := svc.PutNote("alice", "doc1", &dto.NoteRequest{Content: "บันทึก"})
	require.NoError(t, err)
	assert.Equal(t, "บันทึก", saved.Content)
	assert.NotNil(t, saved.UpdatedAt)
}

func TestCreateQuestionAssignsSequentialIDs(t *testing.T) {
	svc := newBankService(t)

	first, err := svc.CreateQuestion("alice", mcqRequest("คำถามแรก"))
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)
	assert.Len(t, first.Choices, 4, "mcq choices are padded to four")

	second, err := svc.CreateQuestion("alice", mcqRequest("คำถามที่สอง"))
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)

	require.NoError(t, svc.DeleteQuestion("alice", 1))
	third, err := svc.CreateQuestion("alice", mcqRequest("คำถามที่สาม"))
	require.NoError(t, err)
	assert.Equal(t, 3, third.ID, "ids are max+1, never reused below the high-water mark")
}

func TestCreateQuestionValidation(t *testing.T) {
	svc := newBankService(t)

	_, err := svc.CreateQuestion("alice", &dto.BankQuestionRequest{Type: "mcq", Question: "x", Answer: "จ"})
	assertDomainCode(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateQuestion("alice", &dto.BankQuestionRequest{Type: "essay", Question: "x", Answer: "ก"})
	assertDomainCode(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateQuestion("alice", &dto.BankQuestionRequest{Type: "tf", Question: "x", Answer: "maybe"})
	assertDomainCode(t, err, domain.ErrInvalidInput)

	tf, err := svc.CreateQuestion("alice", &dto.BankQuestionRequest{Type: "tf", Question: "โลกกลม", Answer: "จริง"})
	require.NoError(t, err)
	assert.Equal(t, "true", tf.Answer, "Thai boolean answers are normalized")
}

func TestUpdateQuestion(t *testing.T) {
	svc := newBankService(t)

	created, err := svc.CreateQuestion("alice", mcqRequest("เดิม"))
	require.NoError(t, err)

	updated, err := svc.UpdateQuestion("alice", created.ID, mcqRequest("แก้ไขแล้ว"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "แก้ไขแล้ว", updated.Question)

	_, err = svc.UpdateQuestion("alice", 99, mcqRequest("ไม่มี"))
	assertDomainCode(t, err, domain.ErrNotFound)
}

func TestDeleteQuestionCascadesIntoQuizSets(t *testing.T) {
	svc := newBankService(t)

	q1, err := svc.CreateQuestion("alice", mcqRequest("หนึ่ง"))
	require.NoError(t, err)
	q2, err := svc.CreateQuestion("alice", mcqRequest("สอง"))
	require.NoError(t, err)

	quiz, err := svc.CreateQuiz("alice", &dto.QuizSetRequest{
		Title:       "ชุดทดสอบ",
		QuestionIDs: []int{q1.ID, q2.ID},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteQuestion("alice", q1.ID))

	after, err := svc.GetQuiz("alice", quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{q2.ID}, after.QuestionIDs)
}

func TestCreateQuizValidatesQuestionIDs(t *testing.T) {
	svc := newBankService(t)

	_, err := svc.CreateQuiz("alice", &dto.QuizSetRequest{Title: "ชุด", QuestionIDs: []int{7}})
	assertDomainCode(t, err, domain.ErrNotFound)

	_, err = svc.CreateQuiz("alice", &dto.QuizSetRequest{Title: "  "})
	assertDomainCode(t, err, domain.ErrInvalidInput)

	empty, err := svc.CreateEmptyQuiz("alice", &dto.QuizSetTitleRequest{Title: "ชุดว่าง"})
	require.NoError(t, err)
	assert.Empty(t, empty.QuestionIDs)
	assert.Equal(t, 1, empty.ID)
}

func TestAppendAndRemoveQuestion(t *testing.T) {
	svc := newBankService(t)

	q, err := svc.CreateQuestion("alice", mcqRequest("หนึ่ง"))
	require.NoError(t, err)
	quiz, err := svc.CreateEmptyQuiz("alice", &dto.QuizSetTitleRequest{Title: "ชุด"})
	require.NoError(t, err)

	appended, err := svc.AppendQuestion("alice", quiz.ID, q.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{q.ID}, appended.QuestionIDs)

	again, err := svc.AppendQuestion("alice", quiz.ID, q.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{q.ID}, again.QuestionIDs, "appending a present id is a no-op")

	_, err = svc.AppendQuestion("alice", quiz.ID, 99)
	assertDomainCode(t, err, domain.ErrNotFound)

	removed, err := svc.RemoveQuestion("alice", quiz.ID, q.ID)
	require.NoError(t, err)
	assert.Empty(t, removed.QuestionIDs)
}

func TestMergeQuizzesDeduplicates(t *testing.T) {
	svc := newBankService(t)

	var ids []int
	for _, text := range []string{"หนึ่ง", "สอง", "สาม"} {
		q, err := svc.CreateQuestion("alice", mcqRequest(text))
		require.NoError(t, err)
		ids = append(ids, q.ID)
	}

	left, err := svc.CreateQuiz("alice", &dto.QuizSetRequest{Title: "ซ้าย", QuestionIDs: []int{ids[0], ids[1]}})
	require.NoError(t, err)
	right, err := svc.CreateQuiz("alice", &dto.QuizSetRequest{Title: "ขวา", QuestionIDs: []int{ids[1], ids[2]}})
	require.NoError(t, err)

	merged, err := svc.MergeQuizzes("alice", &dto.QuizSetMergeRequest{
		QuizIDs: []int{left.ID, right.ID},
		Title:   "รวม",
	})
	require.NoError(t, err)
	assert.Equal(t, []int{ids[0], ids[1], ids[2]}, merged.QuestionIDs, "union keeps first-seen order")

	_, err = svc.MergeQuizzes("alice", &dto.QuizSetMergeRequest{QuizIDs: []int{99}, Title: "x"})
	assertDomainCode(t, err, domain.ErrNotFound)
}

type stubRenderer struct {
	lastQuiz      *domain.QuizSet
	lastQuestions []*domain.BankQuestion
	lastOpts      render.Options
}

func (r *stubRenderer) RenderQuiz(quiz *domain.QuizSet, questions []*domain.BankQuestion, opts render.Options) ([]byte, error) {
	r.lastQuiz = quiz
	r.lastQuestions = questions
	r.lastOpts = opts
	return []byte("%PDF-fake"), nil
}

func TestExportQuiz(t *testing.T) {
	dir := t.TempDir()
	bankRepo := repository.NewFileBankRepository(dir)
	svc := NewBankService(repository.NewFileNoteRepository(dir), bankRepo)

	q, err := svc.CreateQuestion("alice", mcqRequest("หนึ่ง"))
	require.NoError(t, err)
	quiz, err := svc.CreateQuiz("alice", &dto.QuizSetRequest{Title: "ชุดส่งออก", QuestionIDs: []int{q.ID}})
	require.NoError(t, err)

	renderer := &stubRenderer{}
	exporter := NewExportService(bankRepo, renderer)

	data, filename, err := exporter.ExportQuiz("alice", quiz.ID, &dto.ExportOptions{ShuffleChoices: true, ShowAnswers: true})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), data)
	assert.Equal(t, "quiz-1.pdf", filename)
	assert.True(t, renderer.lastOpts.ShuffleChoices)
	assert.True(t, renderer.lastOpts.ShowAnswers)
	require.Len(t, renderer.lastQuestions, 1)
	assert.Equal(t, q.ID, renderer.lastQuestions[0].ID)

	_, _, err = exporter.ExportQuiz("alice", 99, nil)
	assertDomainCode(t, err, domain.ErrNotFound)

	empty, err := svc.CreateEmptyQuiz("alice", &dto.QuizSetTitleRequest{Title: "ว่าง"})
	require.NoError(t, err)
	_, _, err = exporter.ExportQuiz("alice", empty.ID, nil)
	assertDomainCode(t, err, domain.ErrInvalidInput)
}

func assertDomainCode(t *testing.T, err error, code domain.ErrorCode) {
	t.Helper()
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}
