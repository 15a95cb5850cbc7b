package handler

import (
	"io"
	"strings"

	"github.com/Nickzanarak/Edu/internal/domain"
	"github.com/Nickzanarak/Edu/internal/dto"
	"github.com/Nickzanarak/Edu/internal/logger"
	"github.com/Nickzanarak/Edu/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TextExtractor pulls plain text from an uploaded document.
type TextExtractor interface {
	ExtractText(r io.Reader) (string, error)
}

// ContentHandler handles document analysis HTTP requests
type ContentHandler struct {
	contentService service.ContentService
	extractor      TextExtractor
	version        string
}

// NewContentHandler creates a new ContentHandler instance
func NewContentHandler(contentService service.ContentService, extractor TextExtractor, version string) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		extractor:      extractor,
		version:        version,
	}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *ContentHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{OK: true, Version: h.version})
}

// Summarize godoc
// @Summary Summarize a document
// @Description Produces a structured summary with sections, key points and data points
// @Tags content
// @Accept json
// @Produce json
// @Param request body dto.SummarizeRequest true "Summarize Request"
// @Success 200 {object} dto.SummarizeResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /summarize [post]
func (h *ContentHandler) Summarize(c *fiber.Ctx) error {
	var req dto.SummarizeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	resp, err := h.contentService.Summarize(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// AnswerQuestion godoc
// @Summary Answer a question about a document
// @Description Answers strictly from the supplied content
// @Tags content
// @Accept json
// @Produce json
// @Param request body dto.QARequest true "QA Request"
// @Success 200 {object} dto.QAResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /qa [post]
func (h *ContentHandler) AnswerQuestion(c *fiber.Ctx) error {
	var req dto.QARequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	resp, err := h.contentService.AnswerQuestion(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ExtractPDF godoc
// @Summary Extract text from an uploaded PDF
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Success 200 {object} dto.PDFExtractResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Router /pdf/extract [post]
func (h *ContentHandler) ExtractPDF(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return domain.NewInvalidInputError("file field is required")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return domain.NewInvalidInputError("only .pdf files are accepted")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return domain.NewInternalError("failed to open uploaded file", err)
	}
	defer file.Close()

	text, err := h.extractor.ExtractText(file)
	if err != nil {
		return err
	}
	logger.Get().Info("pdf text extracted",
		zap.String("filename", fileHeader.Filename),
		zap.Int("chars", len(text)),
	)
	return c.JSON(dto.PDFExtractResponse{Text: text})
}
