// Package parser extracts question records from arbitrarily-formatted
// questionnaire exports: decoded spreadsheet grids with unknown column
// layout, and freeform pasted text. Both parsers degrade to fewer records
// on malformed input and never error; an empty result is the caller's
// signal that nothing could be extracted.
package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"cyberassess/internal/models"

	"github.com/ternarybob/arbor"
)

// AnswerColumnAuto tells Parse to use the detected answer column.
const AnswerColumnAuto = -1

// minQuestionTextLength and maxQuestionTextLength bound what counts as
// question text; anything longer is guidance prose, not a question.
const (
	minQuestionTextLength = 10
	maxQuestionTextLength = 300
)

var (
	letteredNumberPattern = regexp.MustCompile(`^[A-Z]\d+(\.\d+)*$`)
	numericNumberPattern  = regexp.MustCompile(`^\d+(\.\d+)+$`)
	embeddedNumberPattern = regexp.MustCompile(`[A-Z]\d+(?:\.\d+)*`)

	// guidanceMarkers identify explanatory rows that share the question
	// layout but carry instructions instead of a question.
	guidanceMarkers = []string{"In this section", "You should include", "For example:"}
)

// ExtractQuestionNumber pulls a question identifier out of a cell. When the
// trimmed text contains a lettered identifier (A1.1, B2) that fragment is
// returned; otherwise the trimmed text passes through unchanged so purely
// numeric identifiers survive.
func ExtractQuestionNumber(text string) string {
	trimmed := strings.TrimSpace(text)
	if match := embeddedNumberPattern.FindString(trimmed); match != "" {
		return match
	}
	return trimmed
}

func isQuestionNumber(s string) bool {
	return letteredNumberPattern.MatchString(s) || numericNumberPattern.MatchString(s)
}

// IsQuestionRow reports whether a (number, text, type, answer) tuple
// represents a real question: the first cell must reduce to a valid
// question number and the second must hold question-sized text that is not
// guidance prose.
func IsQuestionRow(row models.Row) bool {
	if !isQuestionNumber(ExtractQuestionNumber(row.Text(0))) {
		return false
	}

	text := row.Text(1)
	length := utf8.RuneCountInString(text)
	if length < minQuestionTextLength || length > maxQuestionTextLength {
		return false
	}
	for _, marker := range guidanceMarkers {
		if strings.Contains(text, marker) {
			return false
		}
	}
	return true
}

// SpreadsheetParser walks a raw grid using the classifier's layout and
// emits structured question records.
type SpreadsheetParser struct {
	logger     arbor.ILogger
	classifier *Classifier
}

// NewSpreadsheetParser creates a grid parser.
func NewSpreadsheetParser(logger arbor.ILogger) *SpreadsheetParser {
	return &SpreadsheetParser{
		logger:     logger,
		classifier: NewClassifier(logger),
	}
}

// Classifier exposes the parser's layout classifier so callers can run
// detection on its own, typically to offer a manual column picker.
func (p *SpreadsheetParser) Classifier() *Classifier {
	return p.classifier
}

// Parse extracts every question record from a raw grid. The answer column
// is the detected one unless answerColumnOverride is a valid index; when
// neither resolves it defaults to the column after the answer type. A grid
// that yields nothing with the detected layout is retried once with the
// fixed (2,3,4,5) layout seen in a common export format.
func (p *SpreadsheetParser) Parse(grid models.Grid, answerColumnOverride int) []models.QuestionRecord {
	detection := p.classifier.DetectColumns(grid)

	answerCol := detection.UserAnswerColumn
	if answerColumnOverride >= 0 {
		answerCol = answerColumnOverride
	}
	if answerCol < 0 {
		answerCol = detection.AnswerTypeColumn + 1
	}

	records := p.extract(grid, detection.HeaderRow,
		detection.QuestionNumberColumn, detection.QuestionTextColumn,
		detection.AnswerTypeColumn, answerCol)

	if len(records) == 0 && detection.QuestionNumberColumn != 2 {
		// Known fixed layout: some published question sets keep columns
		// A-B for section bookkeeping and start the table at column C.
		records = p.extract(grid, 0, 2, 3, 4, 5)
		if len(records) > 0 {
			p.logger.Info().
				Int("questions", len(records)).
				Msg("Detected layout yielded nothing, fixed-layout retry succeeded")
		}
	}

	return records
}

func (p *SpreadsheetParser) extract(grid models.Grid, headerRow, numberCol, textCol, typeCol, answerCol int) []models.QuestionRecord {
	records := []models.QuestionRecord{}

	for i := headerRow + 1; i < len(grid); i++ {
		row := grid[i]

		tuple := models.Row{
			models.StringCell(row.Text(numberCol)),
			models.StringCell(row.Text(textCol)),
			models.StringCell(row.Text(typeCol)),
			models.StringCell(row.Text(answerCol)),
		}
		if !IsQuestionRow(tuple) {
			continue
		}

		answerType := row.Text(typeCol)
		if answerType == "" {
			answerType = "Notes"
		}

		records = append(records, models.QuestionRecord{
			QuestionNumber: ExtractQuestionNumber(row.Text(numberCol)),
			QuestionText:   row.Text(textCol),
			AnswerType:     answerType,
			UserAnswer:     row.Text(answerCol),
		})
	}

	return records
}
