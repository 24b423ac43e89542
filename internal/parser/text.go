package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"cyberassess/internal/models"

	"github.com/ternarybob/arbor"
)

var (
	colonLinePattern    = regexp.MustCompile(`^([A-Z]?\d+(?:\.\d+)*)[:\s]+(.+)$`)
	bareNumberPattern   = regexp.MustCompile(`^([A-Z]?\d+(?:\.\d+)*)\s+(.+)$`)
	inlineAnswerPattern = regexp.MustCompile(`^(.+?)(?:\s+Answer:\s+|\s+Response:\s+)(.+)$`)
	answerLabelPattern  = regexp.MustCompile(`^(?:Answer|Response):\s*(.*)$`)
)

// TextParser is a tolerant parser for freeform pasted text copied out of a
// spreadsheet or document. Each line is tried against four dialects in
// fixed priority order: tab-separated, pipe-separated, colon-delimited, and
// bare number prefix. The last two may consume the following line as an
// "Answer:"/"Response:" continuation. Malformed lines are skipped silently.
type TextParser struct {
	logger arbor.ILogger
}

// NewTextParser creates a pasted-text parser.
func NewTextParser(logger arbor.ILogger) *TextParser {
	return &TextParser{logger: logger}
}

// Parse extracts question records from pasted text. A record is kept only
// when it has a valid question number and question-sized text; everything
// else is dropped without error.
func (p *TextParser) Parse(text string) []models.QuestionRecord {
	rawLines := strings.Split(text, "\n")
	lines := make([]string, 0, len(rawLines))
	for _, line := range rawLines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	records := []models.QuestionRecord{}
	for i := 0; i < len(lines); i++ {
		line := lines[i]

		var record models.QuestionRecord
		consumed := 0
		switch {
		case strings.Contains(line, "\t"):
			record = recordFromParts(strings.Split(line, "\t"))
		case strings.Contains(line, "|"):
			record = recordFromParts(strings.Split(line, "|"))
		default:
			record, consumed = parseDelimitedLine(line, peekLine(lines, i+1))
		}
		i += consumed

		if acceptRecord(record) {
			records = append(records, record)
		}
	}

	p.logger.Debug().
		Int("lines", len(lines)).
		Int("questions", len(records)).
		Msg("Pasted text parsed")

	return records
}

// recordFromParts maps the columns of a tab- or pipe-separated line onto a
// record: number, text, type (default "Notes"), answer.
func recordFromParts(parts []string) models.QuestionRecord {
	record := models.QuestionRecord{
		QuestionNumber: ExtractQuestionNumber(partAt(parts, 0)),
		QuestionText:   partAt(parts, 1),
		AnswerType:     "Notes",
		UserAnswer:     partAt(parts, 3),
	}
	if answerType := partAt(parts, 2); answerType != "" {
		record.AnswerType = answerType
	}
	return record
}

// parseDelimitedLine handles the colon-delimited and bare-number dialects.
// The answer may sit on the same line behind an "Answer:"/"Response:"
// label, or on the next line; in the latter case one extra line is
// consumed and the returned count is 1.
func parseDelimitedLine(line, next string) (models.QuestionRecord, int) {
	match := colonLinePattern.FindStringSubmatch(line)
	if match == nil {
		match = bareNumberPattern.FindStringSubmatch(line)
	}
	if match == nil {
		return models.QuestionRecord{}, 0
	}

	record := models.QuestionRecord{
		QuestionNumber: match[1],
		AnswerType:     "Notes",
	}

	remainder := strings.TrimSpace(match[2])
	if inline := inlineAnswerPattern.FindStringSubmatch(remainder); inline != nil {
		record.QuestionText = strings.TrimSpace(inline[1])
		record.UserAnswer = strings.TrimSpace(inline[2])
		return record, 0
	}

	record.QuestionText = remainder
	if label := answerLabelPattern.FindStringSubmatch(next); label != nil {
		record.UserAnswer = strings.TrimSpace(label[1])
		return record, 1
	}
	return record, 0
}

// acceptRecord applies the shared validity gate: non-empty number and
// text, question-sized text, and a number matching one of the two valid
// identifier shapes.
func acceptRecord(record models.QuestionRecord) bool {
	if record.QuestionNumber == "" || record.QuestionText == "" {
		return false
	}
	if utf8.RuneCountInString(record.QuestionText) < minQuestionTextLength {
		return false
	}
	return isQuestionNumber(record.QuestionNumber)
}

func partAt(parts []string, i int) string {
	if i < 0 || i >= len(parts) {
		return ""
	}
	return strings.TrimSpace(parts[i])
}

func peekLine(lines []string, i int) string {
	if i < 0 || i >= len(lines) {
		return ""
	}
	return lines[i]
}
