package pdftext

import (
	"strings"
	"testing"

	"github.com/Nickzanarak/Edu/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextRejectsNonPDF(t *testing.T) {
	extractor := NewExtractor()

	_, err := extractor.ExtractText(strings.NewReader("this is plain text, not a pdf"))
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrUnreadableDocument, domainErr.Code)
}

func TestExtractTextRejectsTruncatedPDF(t *testing.T) {
	extractor := NewExtractor()

	_, err := extractor.ExtractText(strings.NewReader("%PDF-1.4\n1 0 obj"))
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrUnreadableDocument, domainErr.Code)
}
