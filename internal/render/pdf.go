package render

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Nickzanarak/Edu/internal/domain"

	"github.com/signintech/gopdf"
)

const (
	fontName   = "sarabun"
	fontFile   = "THSarabunNew.ttf"
	pageMargin = 40.0
	lineHeight = 20.0
)

var (
	pageWidth  = gopdf.PageSizeA4.W
	pageHeight = gopdf.PageSizeA4.H
	bodyWidth  = pageWidth - 2*pageMargin
)

// Options control how an exported quiz sheet is laid out.
type Options struct {
	ShuffleChoices bool
	ShowAnswers    bool
}

// PDFRenderer renders quiz sets into printable A4 sheets using a Thai
// TrueType font loaded from the configured font directory.
type PDFRenderer struct {
	fontPath string
}

func NewPDFRenderer(fontDir string) (*PDFRenderer, error) {
	path := filepath.Join(fontDir, fontFile)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("quiz export font %s: %w", path, err)
	}
	return &PDFRenderer{fontPath: path}, nil
}

// leadingLabel matches an already-labelled choice like "ก) ..." or
// "ข. ..." so relabelling does not double up.
var leadingLabel = regexp.MustCompile(`^[กขคง][.)]\s*`)

// RenderQuiz lays out the quiz title followed by its numbered
// questions and returns the finished document bytes.
func (r *PDFRenderer) RenderQuiz(quiz *domain.QuizSet, questions []*domain.BankQuestion, opts Options) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	if err := pdf.AddTTFFont(fontName, r.fontPath); err != nil {
		return nil, fmt.Errorf("load font %s: %w", r.fontPath, err)
	}
	pdf.AddPage()
	pdf.SetMargins(pageMargin, pageMargin, pageMargin, pageMargin)

	if err := pdf.SetFont(fontName, "", 20); err != nil {
		return nil, err
	}
	title := quiz.Title
	if title == "" {
		title = "ชุดข้อสอบ"
	}
	writeLine(&pdf, title, 0)
	writeLine(&pdf, "", 0)

	if err := pdf.SetFont(fontName, "", 14); err != nil {
		return nil, err
	}
	for i, q := range questions {
		writeLine(&pdf, fmt.Sprintf("%d. %s", i+1, q.Question.Question), 0)
		choices, answerLabel := presentChoices(&q.Question, opts.ShuffleChoices)
		for _, c := range choices {
			writeLine(&pdf, c, 20)
		}
		if opts.ShowAnswers {
			line := "เฉลย: " + answerLabel
			if q.Explain != "" {
				line += " (" + q.Explain + ")"
			}
			writeLine(&pdf, line, 20)
		}
		writeLine(&pdf, "", 0)
	}

	return pdf.GetBytesPdf(), nil
}

// writeLine emits one wrapped line, starting a new page when the
// cursor runs past the bottom margin.
func writeLine(pdf *gopdf.GoPdf, text string, indent float64) {
	if pdf.GetY() > pageHeight-2*pageMargin {
		pdf.AddPage()
		pdf.SetY(pageMargin)
	}
	pdf.SetX(pageMargin + indent)
	if text == "" {
		pdf.SetY(pdf.GetY() + lineHeight/2)
		return
	}
	_ = pdf.MultiCell(&gopdf.Rect{W: bodyWidth - indent, H: lineHeight}, text)
}

// presentChoices returns the printable choice lines for a question and
// the label of the correct answer after any shuffling. True/false
// questions always render as a fixed จริง/เท็จ pair.
func presentChoices(q *domain.Question, shuffle bool) ([]string, string) {
	if q.Type == domain.QuestionTypeTrueFalse {
		label := "ก"
		if q.Answer == "false" {
			label = "ข"
		}
		return []string{"ก. จริง", "ข. เท็จ"}, label
	}

	texts := make([]string, len(q.Choices))
	for i, c := range q.Choices {
		texts[i] = leadingLabel.ReplaceAllString(strings.TrimSpace(c), "")
	}

	answerIdx := -1
	for i, label := range domain.ChoiceLabels {
		if q.Answer == label && i < len(texts) {
			answerIdx = i
			break
		}
	}

	order := make([]int, len(texts))
	for i := range order {
		order[i] = i
	}
	if shuffle {
		rand.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	lines := make([]string, len(order))
	answerLabel := q.Answer
	for pos, src := range order {
		label := domain.ChoiceLabels[pos]
		lines[pos] = label + ". " + texts[src]
		if src == answerIdx {
			answerLabel = label
		}
	}
	return lines, answerLabel
}
