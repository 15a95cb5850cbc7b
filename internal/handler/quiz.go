package handler

import (
	"github.com/Nickzanarak/Edu/internal/dto"
	"github.com/Nickzanarak/Edu/internal/logger"
	"github.com/Nickzanarak/Edu/internal/service"
	"github.com/Nickzanarak/Edu/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz generation HTTP requests
type QuizHandler struct {
	quizService    service.QuizService
	contentService service.ContentService
	validator      *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(quizService service.QuizService, contentService service.ContentService) *QuizHandler {
	return &QuizHandler{
		quizService:    quizService,
		contentService: contentService,
		validator:      validation.NewValidator(),
	}
}

// GenerateMCQ godoc
// @Summary Generate multiple-choice questions
// @Description Generates up to n duplicate-free MCQ items from the given context
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.QuizGenerationRequest true "Generation Request"
// @Success 200 {object} dto.QuizGenerationResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /quiz/mcq [post]
func (h *QuizHandler) GenerateMCQ(c *fiber.Ctx) error {
	req, err := h.parseGenerationRequest(c)
	if err != nil {
		return err
	}
	resp, err := h.quizService.GenerateMCQ(c.Context(), req)
	if err != nil {
		return err
	}
	logger.Get().Info("mcq batch served",
		zap.Int("requested", req.N),
		zap.Int("delivered", len(resp.Questions)),
	)
	return c.JSON(resp)
}

// GenerateTrueFalse godoc
// @Summary Generate true/false questions
// @Description Generates up to n duplicate-free true/false items from the given context
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.QuizGenerationRequest true "Generation Request"
// @Success 200 {object} dto.QuizGenerationResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /quiz/tf [post]
func (h *QuizHandler) GenerateTrueFalse(c *fiber.Ctx) error {
	req, err := h.parseGenerationRequest(c)
	if err != nil {
		return err
	}
	resp, err := h.quizService.GenerateTrueFalse(c.Context(), req)
	if err != nil {
		return err
	}
	logger.Get().Info("tf batch served",
		zap.Int("requested", req.N),
		zap.Int("delivered", len(resp.Questions)),
	)
	return c.JSON(resp)
}

// ExtractTopics godoc
// @Summary Extract topic hints
// @Description Extracts topic hints from the given context for seeding generation
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.TopicsRequest true "Topics Request"
// @Success 200 {object} dto.TopicsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /quiz/topics [post]
func (h *QuizHandler) ExtractTopics(c *fiber.Ctx) error {
	var req dto.TopicsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	resp, err := h.contentService.ExtractTopics(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *QuizHandler) parseGenerationRequest(c *fiber.Ctx) (*dto.QuizGenerationRequest, error) {
	var req dto.QuizGenerationRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if errs := h.validator.ValidateQuizGenerationRequest(&req); len(errs) > 0 {
		return nil, errs
	}
	return &req, nil
}
