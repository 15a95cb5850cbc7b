package handler

import (
	"fmt"
	"net/url"

	"github.com/Nickzanarak/Edu/internal/domain"
	"github.com/Nickzanarak/Edu/internal/dto"
	"github.com/Nickzanarak/Edu/internal/middleware"
	"github.com/Nickzanarak/Edu/internal/service"

	"github.com/gofiber/fiber/v2"
)

// BankHandler handles question bank and quiz set HTTP requests
type BankHandler struct {
	bankService   service.BankService
	exportService service.ExportService
}

// NewBankHandler creates a new BankHandler instance
func NewBankHandler(bankService service.BankService, exportService service.ExportService) *BankHandler {
	return &BankHandler{
		bankService:   bankService,
		exportService: exportService,
	}
}

// ListQuestions godoc
// @Summary List bank questions
// @Tags bank
// @Produce json
// @Param X-User-Id header string true "User ID"
// @Success 200 {array} dto.BankQuestionResponse
// @Router /bank/questions [get]
func (h *BankHandler) ListQuestions(c *fiber.Ctx) error {
	questions, err := h.bankService.ListQuestions(middleware.GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(questions)
}

// CreateQuestion godoc
// @Summary Add a question to the bank
// @Tags bank
// @Accept json
// @Produce json
// @Param X-User-Id header string true "User ID"
// @Param request body dto.BankQuestionRequest true "Question"
// @Success 201 {object} dto.BankQuestionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /bank/questions [post]
func (h *BankHandler) CreateQuestion(c *fiber.Ctx) error {
	var req dto.BankQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	resp, err := h.bankService.CreateQuestion(middleware.GetUserID(c), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateQuestion godoc
// @Summary Update a bank question
// @Tags bank
// @Accept json
// @Produce json
// @Param X-User-Id header string true "User ID"
// @Param id path int true "Question ID"
// @Param request body dto.BankQuestionRequest true "Question"
// @Success 200 {object} dto.BankQuestionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /bank/questions/{id} [put]
func (h *BankHandler) UpdateQuestion(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.BankQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	resp, err := h.bankService.UpdateQuestion(middleware.GetUserID(c), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteQuestion godoc
// @Summary Delete a bank question
// @Description Deletes the question and removes its id from every quiz set
// @Tags bank
// @Produce json
// @Param X-User-Id header string true "User ID"
// @Param id path int true "Question ID"
// @Success 200 {object} dto.OKResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /bank/questions/{id} [delete]
func (h *BankHandler) DeleteQuestion(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.bankService.DeleteQuestion(middleware.GetUserID(c), id); err != nil {
		return err
	}
	return c.JSON(dto.OKResponse{OK: true})
}

// ListQuizzes godoc
// @Summary List quiz sets
// @Tags bank
// @Produce json
// @Param X-User-Id header string true "User ID"
// @Success 200 {array} dto.QuizSetResponse
// @Router /bank/quizzes [get]
func (h *BankHandler) ListQuizzes(c *fiber.Ctx) error {
	quizzes, err := h.bankService.ListQuizzes(middleware.GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(quizzes)
}

// GetQuiz godoc
// @Summary Get a quiz set
// @Tags bank
// @Produce json
// @Param X-User-Id header string true "User ID"
// @Param quizId path int true "Quiz ID"
// @Success 200 {object} dto.QuizSetResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /bank/quizzes/{quizId} [get]
func (h *BankHandler) GetQuiz(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "quizId")
	if err != nil {
		return err
	}
	resp, err := h.bankService.GetQuiz(middleware.GetUserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CreateQuiz godoc
// @Summary Create a quiz set from bank question ids
// @Tags bank
// @Accept json
// @Produce json
// @Param X-User-Id header string true "User ID"
// @Param request body dto.QuizSetRequest true "Quiz set"
// @Success 201 {object} dto.QuizSetResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /bank/quizzes [post]
func (h *BankHandler) CreateQuiz(c *fiber.Ctx) error {
	var req dto.QuizSetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	resp, err := h.bankService.CreateQuiz(middleware.GetUserID(c), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// CreateEmptyQuiz godoc
// @Summary Create an empty quiz set
// @Tags bank
// @Accept json
// @Produce json
// @Param X-User-Id header string true "User ID"
// @Param request body dto.QuizSetTitleRequest true "Title"
// @Success 201 {object} dto.QuizSetResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /bank/quizzes/create-empty [post]
func (h *BankHandler) CreateEmptyQuiz(c *fiber.Ctx) error {
	var req dto.QuizSetTitleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	resp, err := h.bankService.CreateEmptyQuiz(middleware.GetUserID(c), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateQuiz godoc
// @Summary Update a quiz set
// @Tags bank
// @Accept json
// @Produce json
// @Param X-User-Id header string true "User ID"
// @Param quizId path int true "Quiz ID"
// @Param request body dto.QuizSetRequest true "Quiz set"
// @Success 200 {object} dto.QuizSetResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /bank/quizzes/{quizId} [put]
func (h *BankHandler) UpdateQuiz(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "quizId")
	if err != nil {
		return err
	}
	var req dto.QuizSetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	resp, err := h.bankService.UpdateQuiz(middleware.GetUserID(c), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteQuiz godoc
// @Summary Delete a quiz set
// @Tags bank
// @Produce json
// @Param X-User-Id header string true "User ID"
// @Param quizId path int true "Quiz ID"
// @Success 200 {object} dto.OKResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /bank/quizzes/{quizId} [delete]
func (h *BankHandler) DeleteQuiz(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "quizId")
	if err != nil {
		return err
	}
	if err := h.bankService.DeleteQuiz(middleware.GetUserID(c), id); err != nil {
		return err
	}
	return c.JSON(dto.OKResponse{OK: true})
}

// AppendQuestion godoc
// @Summary Append a bank question to a quiz set
// @Tags bank
// @Accept json
// @Produce json
// @Param X-User-Id header string true "User ID"
// @Param quizId path int true "Quiz ID"
// @Param request body dto.QuestionIDRequest true "Question reference"
// @Success 200 {object} dto.QuizSetResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /bank/quizzes/{quizId}/append [post]
func (h *BankHandler) AppendQuestion(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "quizId")
	if err != nil {
		return err
	}
	var req dto.QuestionIDRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	resp, err := h.bankService.AppendQuestion(middleware.GetUserID(c), id, req.ID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// RemoveQuestion godoc
// @Summary Remove a bank question from a quiz set
// @Tags bank
// @Accept json
// @Produce json
// @Param X-User-Id header string true "User ID"
// @Param quizId path int true "Quiz ID"
// @Param request body dto.QuestionIDRequest true "Question reference"
// @Success 200 {object} dto.QuizSetResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /bank/quizzes/{quizId}/remove [post]
func (h *BankHandler) RemoveQuestion(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "quizId")
	if err != nil {
		return err
	}
	var req dto.QuestionIDRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	resp, err := h.bankService.RemoveQuestion(middleware.GetUserID(c), id, req.ID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// MergeQuizzes godoc
// @Summary Merge quiz sets into a new one
// @Description Duplicate question ids collapse to their first occurrence
// @Tags bank
// @Accept json
// @Produce json
// @Param X-User-Id header string true "User ID"
// @Param request body dto.QuizSetMergeRequest true "Merge request"
// @Success 201 {object} dto.QuizSetResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /bank/quizzes/merge [post]
func (h *BankHandler) MergeQuizzes(c *fiber.Ctx) error {
	var req dto.QuizSetMergeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	resp, err := h.bankService.MergeQuizzes(middleware.GetUserID(c), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ExportQuiz godoc
// @Summary Export a quiz set as PDF
// @Tags export
// @Accept json
// @Produce application/pdf
// @Param X-User-Id header string true "User ID"
// @Param quizId path int true "Quiz ID"
// @Param request body dto.ExportOptions false "Export options"
// @Success 200 {file} binary
// @Failure 404 {object} middleware.ErrorResponse
// @Router /export/quizzes/{quizId} [post]
func (h *BankHandler) ExportQuiz(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "quizId")
	if err != nil {
		return err
	}
	opts := &dto.ExportOptions{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(opts); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}
	data, filename, err := h.exportService.ExportQuiz(middleware.GetUserID(c), id, opts)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(
		`attachment; filename="%s"; filename*=UTF-8''%s`,
		filename, url.PathEscape(filename),
	))
	return c.Send(data)
}

func parseIDParam(c *fiber.Ctx, name string) (int, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, domain.NewInvalidInputError(name + " must be a positive integer")
	}
	return id, nil
}
