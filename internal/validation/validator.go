package validation

import (
	"strings"

	"github.com/Nickzanarak/Edu/internal/domain"
	"github.com/Nickzanarak/Edu/internal/dto"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateQuizGenerationRequest validates quiz generation parameters.
// A zero n is allowed and falls back to the service default; negative
// counts are rejected here.
func (v *Validator) ValidateQuizGenerationRequest(req *dto.QuizGenerationRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Context) == "" {
		errors = append(errors, domain.NewMissingFieldError("context"))
	}
	if req.N < 0 {
		errors = append(errors, domain.NewOutOfRangeError("n", req.N, 0, 10))
	}

	return errors
}

// ValidateFileID validates a notes file identifier path parameter
func (v *Validator) ValidateFileID(fileID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(fileID) == "" {
		errors = append(errors, domain.NewMissingFieldError("fileId"))
	} else if len(fileID) > 256 {
		errors = append(errors, domain.NewOutOfRangeError("fileId", len(fileID), 1, 256))
	}

	return errors
}
