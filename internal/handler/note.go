package handler

import (
	"github.com/Nickzanarak/Edu/internal/dto"
	"github.com/Nickzanarak/Edu/internal/middleware"
	"github.com/Nickzanarak/Edu/internal/service"
	"github.com/Nickzanarak/Edu/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// NoteHandler handles per-user note HTTP requests
type NoteHandler struct {
	bankService service.BankService
	validator   *validation.Validator
}

// NewNoteHandler creates a new NoteHandler instance
func NewNoteHandler(bankService service.BankService) *NoteHandler {
	return &NoteHandler{
		bankService: bankService,
		validator:   validation.NewValidator(),
	}
}

// GetNote godoc
// @Summary Get a note
// @Description Returns the note for a file; a never-written note reads as empty
// @Tags notes
// @Produce json
// @Param fileId path string true "File ID"
// @Param X-User-Id header string true "User ID"
// @Success 200 {object} dto.NoteResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /notes/{fileId} [get]
func (h *NoteHandler) GetNote(c *fiber.Ctx) error {
	fileID := c.Params("fileId")
	if errs := h.validator.ValidateFileID(fileID); len(errs) > 0 {
		return errs
	}
	resp, err := h.bankService.GetNote(middleware.GetUserID(c), fileID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// PutNote godoc
// @Summary Save a note
// @Tags notes
// @Accept json
// @Produce json
// @Param fileId path string true "File ID"
// @Param X-User-Id header string true "User ID"
// @Param request body dto.NoteRequest true "Note content"
// @Success 200 {object} dto.NoteResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /notes/{fileId} [put]
func (h *NoteHandler) PutNote(c *fiber.Ctx) error {
	fileID := c.Params("fileId")
	if errs := h.validator.ValidateFileID(fileID); len(errs) > 0 {
		return errs
	}
	var req dto.NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	resp, err := h.bankService.PutNote(middleware.GetUserID(c), fileID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
