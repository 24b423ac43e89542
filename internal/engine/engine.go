// Package engine orchestrates the assessment pipeline for each input kind:
// sanitize, parse, assess, aggregate. It is the calling layer around the
// pure core packages and is where the caller-side limits (pasted-text
// length, maximum question count) are enforced.
package engine

import (
	"cyberassess/internal/assess"
	"cyberassess/internal/common"
	"cyberassess/internal/ingest"
	"cyberassess/internal/models"
	"cyberassess/internal/parser"
	"cyberassess/internal/sanitize"

	"github.com/ternarybob/arbor"
)

// ErrNoQuestions signals that parsing produced no question records; callers
// surface it as a "no questions found" condition to the user.
var ErrNoQuestions = common.NewValidationError("no_questions", "no questions found in input")

// Engine runs assessments. Safe for concurrent use: it holds no mutable
// state beyond its logger and parsers, which are themselves stateless.
type Engine struct {
	logger      arbor.ILogger
	config      *common.EngineConfig
	spreadsheet *parser.SpreadsheetParser
	text        *parser.TextParser
}

// New creates an assessment engine. A nil config uses the defaults.
func New(config *common.EngineConfig, logger arbor.ILogger) *Engine {
	if config == nil {
		config = &common.DefaultConfig().Engine
	}
	return &Engine{
		logger:      logger,
		config:      config,
		spreadsheet: parser.NewSpreadsheetParser(logger),
		text:        parser.NewTextParser(logger),
	}
}

// DetectColumns runs layout detection on a sanitized copy of the grid,
// typically to drive a manual answer-column picker when detection could
// not find one.
func (e *Engine) DetectColumns(grid models.Grid) *parser.ColumnDetection {
	return e.spreadsheet.Classifier().DetectColumns(sanitize.Grid(grid))
}

// AssessGrid sanitizes and assesses a decoded spreadsheet grid. Pass
// parser.AnswerColumnAuto unless the user picked an answer column
// explicitly.
func (e *Engine) AssessGrid(grid models.Grid, answerColumnOverride int) (*models.AssessmentResult, error) {
	clean := sanitize.Grid(grid)
	records := e.spreadsheet.Parse(clean, answerColumnOverride)

	e.logger.Debug().
		Int("rows", len(grid)).
		Int("questions", len(records)).
		Msg("Spreadsheet grid parsed")

	return e.finish(records)
}

// AssessText sanitizes and assesses freeform pasted text.
func (e *Engine) AssessText(text string) (*models.AssessmentResult, error) {
	clean := sanitize.TextInput(text, e.config.MaxTextLength)
	records := e.text.Parse(clean)
	return e.finish(records)
}

// AssessHTMLTable decodes a pasted HTML table fragment into a grid and
// assesses it.
func (e *Engine) AssessHTMLTable(content string) (*models.AssessmentResult, error) {
	clean := sanitize.EnforceMaxLength(content, e.config.MaxTextLength)
	grid, err := ingest.DecodeTable(clean)
	if err != nil {
		return nil, common.WrapError(err, common.ErrorTypeParse, "html_table",
			"failed to decode pasted table")
	}
	return e.AssessGrid(grid, parser.AnswerColumnAuto)
}

func (e *Engine) finish(records []models.QuestionRecord) (*models.AssessmentResult, error) {
	if len(records) == 0 {
		return nil, ErrNoQuestions
	}

	if max := e.config.MaxQuestions; max > 0 && len(records) > max {
		e.logger.Warn().
			Int("questions", len(records)).
			Int("limit", max).
			Msg("Question count exceeds limit, truncating")
		records = records[:max]
	}

	result := assess.GenerateAssessment(records)

	e.logger.Info().
		Int("questions", len(records)).
		Int("flagged", len(result.FlaggedIssues)).
		Int("passed", len(result.PassedQuestions)).
		Msg("Assessment generated")

	return result, nil
}
