package parser

import (
	"regexp"
	"strings"

	"cyberassess/internal/models"

	"github.com/ternarybob/arbor"
)

const (
	// maxDetectionRows caps every row scan so detection stays bounded on
	// arbitrarily large exports.
	maxDetectionRows = 50
	// maxPatternColumns caps the pattern fallback's column scan.
	maxPatternColumns = 15
	// minPatternMatches is how many question-number-shaped cells a column
	// needs before the pattern fallback trusts it.
	minPatternMatches = 5
)

var titleRowPattern = regexp.MustCompile(`(?i)cyber essentials|question set|assessment|questionnaire`)

// answerHeaderCandidates are the labels an answer column is known to carry,
// in priority order. Matching is by equality or prefix on the lowercased
// trimmed cell, with simple singular/plural variants accepted.
var answerHeaderCandidates = []string{
	"responses",
	"response",
	"my response",
	"user response",
	"my answer",
	"user answer",
	"your answer",
	"answer",
	"notes",
}

// ColumnDetection describes where the questionnaire lives inside a raw
// grid: the header row and the column index for each of the four fields.
// UserAnswerColumn is -1 and AnswerColumnDetected false when no answer
// column could be located; callers may then offer DetectedHeaders to the
// user and re-run with an explicit override.
type ColumnDetection struct {
	HeaderRow            int      `json:"header_row"`
	QuestionNumberColumn int      `json:"question_number_column"`
	QuestionTextColumn   int      `json:"question_text_column"`
	AnswerTypeColumn     int      `json:"answer_type_column"`
	UserAnswerColumn     int      `json:"user_answer_column"`
	AnswerColumnDetected bool     `json:"answer_column_detected"`
	DetectedHeaders      []string `json:"detected_headers"`
}

// Classifier locates the header/data layout of an unknown spreadsheet
// export. Detection runs an ordered list of strategies, each of which
// either resolves the layout or defers to the next.
type Classifier struct {
	logger arbor.ILogger
}

// NewClassifier creates a grid layout classifier.
func NewClassifier(logger arbor.ILogger) *Classifier {
	return &Classifier{logger: logger}
}

// columnStrategy attempts to resolve the header row and label columns.
// It reports whether it succeeded; strategies run in order until one does.
type columnStrategy func(grid models.Grid, dataStart int, det *ColumnDetection) bool

// DetectColumns determines the data start row and the four column indices
// for a raw grid. It always returns a complete result: when every strategy
// fails the last one supplies hardcoded defaults, so callers never see an
// error state.
func (c *Classifier) DetectColumns(grid models.Grid) *ColumnDetection {
	dataStart := findDataStartRow(grid)

	det := &ColumnDetection{
		HeaderRow:            dataStart,
		QuestionNumberColumn: -1,
		QuestionTextColumn:   -1,
		AnswerTypeColumn:     -1,
		UserAnswerColumn:     -1,
	}

	strategies := []columnStrategy{
		c.headerLabelStrategy,
		c.patternFallbackStrategy,
		c.defaultColumnStrategy,
	}
	for _, strategy := range strategies {
		if strategy(grid, dataStart, det) {
			break
		}
	}

	// The answer column is located independently of header detection.
	det.UserAnswerColumn, det.AnswerColumnDetected = findAnswerColumn(grid, dataStart)

	if det.DetectedHeaders == nil {
		det.DetectedHeaders = headerLabels(rowAt(grid, dataStart))
	}

	c.logger.Debug().
		Int("header_row", det.HeaderRow).
		Int("number_col", det.QuestionNumberColumn).
		Int("text_col", det.QuestionTextColumn).
		Int("type_col", det.AnswerTypeColumn).
		Int("answer_col", det.UserAnswerColumn).
		Msg("Column detection completed")

	return det
}

// findDataStartRow returns the index of the first row that looks like real
// tabular data, skipping blank rows and title rows. Defaults to 0 when no
// row qualifies within the scan window.
func findDataStartRow(grid models.Grid) int {
	limit := min(len(grid), maxDetectionRows)
	for i := 0; i < limit; i++ {
		row := grid[i]

		nonEmpty := 0
		for j := range row {
			if !row[j].IsEmpty() {
				nonEmpty++
			}
		}
		if nonEmpty == 0 {
			continue
		}
		if isTitleRow(row, nonEmpty) {
			continue
		}
		if nonEmpty >= 3 {
			return i
		}
	}
	return 0
}

// isTitleRow reports whether a row is a sheet title rather than data: a
// long first cell with nothing after it, or a first cell carrying one of
// the known questionnaire title phrases.
func isTitleRow(row models.Row, nonEmpty int) bool {
	first := row.Text(0)
	if len(first) > 20 && nonEmpty == 1 && !row[0].IsEmpty() {
		return true
	}
	return titleRowPattern.MatchString(first)
}

// headerLabelStrategy scans forward from the data start looking for header
// cells whose labels identify the question-number, question-text and
// answer-type columns. A column is never overwritten once set. The header
// row is the row at which both the number and text columns are resolved.
func (c *Classifier) headerLabelStrategy(grid models.Grid, dataStart int, det *ColumnDetection) bool {
	numberCol, textCol, typeCol := -1, -1, -1

	limit := min(len(grid), dataStart+maxDetectionRows)
	for i := dataStart; i < limit; i++ {
		row := grid[i]
		if row.IsEmpty() {
			continue
		}

		for j := range row {
			cell := strings.ToLower(row.Text(j))
			if cell == "" {
				continue
			}

			if numberCol < 0 && isQuestionNumberHeader(cell) {
				numberCol = j
			}
			if textCol < 0 && strings.Contains(cell, "question") &&
				!strings.Contains(cell, "no") && !strings.Contains(cell, "type") {
				textCol = j
			}
			if typeCol < 0 && isAnswerTypeHeader(cell) {
				typeCol = j
			}
		}

		if numberCol >= 0 && textCol >= 0 {
			det.HeaderRow = i
			det.QuestionNumberColumn = numberCol
			det.QuestionTextColumn = textCol
			det.AnswerTypeColumn = typeCol
			det.DetectedHeaders = headerLabels(row)
			return true
		}
	}
	return false
}

func isQuestionNumberHeader(cell string) bool {
	return strings.Contains(cell, "no.") ||
		cell == "no" ||
		strings.Contains(cell, "q.no") ||
		strings.Contains(cell, "question no") ||
		strings.Contains(cell, "q no")
}

func isAnswerTypeHeader(cell string) bool {
	return strings.Contains(cell, "answer type") ||
		strings.Contains(cell, "response type") ||
		cell == "type"
}

// patternFallbackStrategy handles grids whose headers are missing or
// mislabeled: it looks for a column where enough cells are shaped like
// question numbers and assumes the two columns after it hold the question
// text and answer type. Parsing then starts at the data start row itself,
// since the matched question rows begin there.
func (c *Classifier) patternFallbackStrategy(grid models.Grid, dataStart int, det *ColumnDetection) bool {
	limit := min(len(grid), dataStart+maxDetectionRows)

	width := 0
	for i := dataStart; i < limit; i++ {
		if len(grid[i]) > width {
			width = len(grid[i])
		}
	}
	width = min(width, maxPatternColumns)

	for j := 0; j < width; j++ {
		matches := 0
		for i := dataStart; i < limit; i++ {
			if isQuestionNumber(ExtractQuestionNumber(grid[i].Text(j))) {
				matches++
			}
		}
		if matches >= minPatternMatches {
			det.HeaderRow = dataStart - 1
			det.QuestionNumberColumn = j
			det.QuestionTextColumn = j + 1
			det.AnswerTypeColumn = j + 2
			c.logger.Debug().
				Int("column", j).
				Int("matches", matches).
				Msg("Question number column located by pattern scan")
			return true
		}
	}
	return false
}

// defaultColumnStrategy is the last resort: assume the first three columns
// hold number, text and type, with the data start row as header row.
func (c *Classifier) defaultColumnStrategy(grid models.Grid, dataStart int, det *ColumnDetection) bool {
	det.HeaderRow = dataStart
	det.QuestionNumberColumn = 0
	det.QuestionTextColumn = 1
	det.AnswerTypeColumn = 2
	c.logger.Debug().Msg("Header detection exhausted, using default column layout")
	return true
}

// findAnswerColumn scans the detection window for a cell labeled like an
// answer column, trying the known labels in priority order. Cells that
// mention "type" are excluded so "Answer Type" never wins over "Answer".
func findAnswerColumn(grid models.Grid, dataStart int) (int, bool) {
	limit := min(len(grid), dataStart+maxDetectionRows)
	for i := dataStart; i < limit; i++ {
		row := grid[i]
		for _, candidate := range answerHeaderCandidates {
			for j := range row {
				cell := strings.ToLower(row.Text(j))
				if cell == "" || strings.Contains(cell, "type") {
					continue
				}
				if matchesAnswerLabel(cell, candidate) {
					return j, true
				}
			}
		}
	}
	return -1, false
}

func matchesAnswerLabel(cell, candidate string) bool {
	if cell == candidate || strings.HasPrefix(cell, candidate) {
		return true
	}
	// Singular variant of a plural candidate.
	return strings.HasSuffix(candidate, "s") && cell == strings.TrimSuffix(candidate, "s")
}

// headerLabels returns the display label for every cell of a header row:
// the cell's own text, or a computed spreadsheet-style column letter when
// the cell is blank.
func headerLabels(row models.Row) []string {
	labels := make([]string, len(row))
	for j := range row {
		if text := row.Text(j); text != "" {
			labels[j] = text
		} else {
			labels[j] = columnLetter(j)
		}
	}
	return labels
}

// columnLetter converts a zero-based column index to its spreadsheet
// letter: 0 -> A, 25 -> Z, 26 -> AA.
func columnLetter(index int) string {
	letters := ""
	for index >= 0 {
		letters = string(rune('A'+index%26)) + letters
		index = index/26 - 1
	}
	return letters
}

// rowAt is a bounds-safe row accessor.
func rowAt(grid models.Grid, i int) models.Row {
	if i < 0 || i >= len(grid) {
		return models.Row{}
	}
	return grid[i]
}
