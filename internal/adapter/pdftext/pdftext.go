package pdftext

import (
	"bytes"
	"io"
	"strings"

	"github.com/Nickzanarak/Edu/internal/domain"
	"github.com/Nickzanarak/Edu/internal/logger"
	"github.com/Nickzanarak/Edu/internal/util"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// Extractor pulls plain text out of uploaded PDF documents.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText reads every page of the document and returns the cleaned
// concatenated text. Encrypted, malformed or image-only documents map
// to an unreadable-document error rather than an internal one.
//
// The underlying parser panics on some malformed inputs, so the whole
// extraction runs behind a recover.
func (e *Extractor) ExtractText(r io.Reader) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			logger.Get().Warn("pdf parser panicked", zap.Any("panic", p))
			text = ""
			err = domain.NewUnreadableDocumentError("document could not be parsed as a PDF")
		}
	}()
	data, err := io.ReadAll(r)
	if err != nil {
		return "", domain.NewInternalError("failed to read uploaded document", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		logger.Get().Warn("rejecting unparseable pdf", zap.Error(err))
		return "", domain.NewUnreadableDocumentError("document could not be parsed as a PDF")
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Get().Debug("skipping unreadable page",
				zap.Int("page", i),
				zap.Error(err),
			)
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	cleaned := util.CleanText(sb.String())
	if cleaned == "" {
		return "", domain.NewUnreadableDocumentError("document contains no extractable text")
	}
	return cleaned, nil
}
