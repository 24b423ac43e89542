package engine

import (
	"fmt"
	"testing"

	"cyberassess/internal/common"
	"cyberassess/internal/models"
	"cyberassess/internal/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func newTestEngine(config *common.EngineConfig) *Engine {
	return New(config, arbor.NewLogger())
}

func TestAssessGrid(t *testing.T) {
	grid := models.StringGrid([][]string{
		{"No.", "Question", "Type", "Answer"},
		{"A1.1", "What is your organisation's name?", "Notes", "Acme Ltd, registered in England"},
		{"A4.1", "Do you have firewalls at your network boundary?", "Yes/No", "No"},
	})

	result, err := newTestEngine(nil).AssessGrid(grid, parser.AnswerColumnAuto)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, result.OverallScore, 0.001)
	require.Len(t, result.FlaggedIssues, 1)
	assert.Equal(t, "A4.1", result.FlaggedIssues[0].QuestionNumber)
	require.Len(t, result.PassedQuestions, 1)
	assert.Equal(t, "A1.1", result.PassedQuestions[0].QuestionNumber)
	require.Len(t, result.SectionResults, 2)
	assert.Equal(t, "company-info", result.SectionResults[0].SectionID)
	assert.Equal(t, "firewalls", result.SectionResults[1].SectionID)
}

func TestAssessGridSanitizesCells(t *testing.T) {
	grid := models.StringGrid([][]string{
		{"No.", "Question", "Type", "Answer"},
		{"A1.1", "What is your organisation's name?", "Notes", "<script>alert(1)</script>Acme Ltd"},
	})

	result, err := newTestEngine(nil).AssessGrid(grid, parser.AnswerColumnAuto)
	require.NoError(t, err)

	require.Len(t, result.PassedQuestions, 1)
	assert.Equal(t, "alert(1)Acme Ltd", result.PassedQuestions[0].UserAnswer)
	assert.NotContains(t, result.PassedQuestions[0].UserAnswer, "<")
}

func TestAssessGridNoQuestions(t *testing.T) {
	grid := models.StringGrid([][]string{
		{"random", "content", "here"},
	})

	_, err := newTestEngine(nil).AssessGrid(grid, parser.AnswerColumnAuto)
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestAssessText(t *testing.T) {
	text := "A1.1: What is your organisation's name?\nAnswer: Acme Ltd, registered in England"

	result, err := newTestEngine(nil).AssessText(text)
	require.NoError(t, err)

	require.Len(t, result.PassedQuestions, 1)
	assert.Equal(t, "Acme Ltd, registered in England", result.PassedQuestions[0].UserAnswer)
}

func TestAssessTextEmpty(t *testing.T) {
	_, err := newTestEngine(nil).AssessText("")
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestAssessTextRespectsMaxLength(t *testing.T) {
	config := common.DefaultConfig().Engine
	config.MaxTextLength = 40

	// The second question sits past the length cap and must not survive.
	text := "A1.1: What is your organisation's name?\n" +
		"A1.2: What is your registered address?"

	result, err := newTestEngine(&config).AssessText(text)
	require.NoError(t, err)

	total := len(result.FlaggedIssues) + len(result.PassedQuestions)
	assert.Equal(t, 1, total)
}

func TestMaxQuestionsTruncation(t *testing.T) {
	config := common.DefaultConfig().Engine
	config.MaxQuestions = 3

	rows := [][]string{{"No.", "Question", "Type", "Answer"}}
	for i := 1; i <= 6; i++ {
		rows = append(rows, []string{
			fmt.Sprintf("A1.%d", i),
			fmt.Sprintf("What is your organisation's detail number %d?", i),
			"Notes",
			"A perfectly adequate answer",
		})
	}

	result, err := newTestEngine(&config).AssessGrid(models.StringGrid(rows), parser.AnswerColumnAuto)
	require.NoError(t, err)

	assert.Equal(t, 3, len(result.FlaggedIssues)+len(result.PassedQuestions))
}

func TestAssessHTMLTable(t *testing.T) {
	content := `<table>
		<tr><th>No.</th><th>Question</th><th>Type</th><th>Answer</th></tr>
		<tr><td>A1.1</td><td>What is your organisation's name?</td><td>Notes</td><td>Acme Ltd, registered in England</td></tr>
	</table>`

	result, err := newTestEngine(nil).AssessHTMLTable(content)
	require.NoError(t, err)

	require.Len(t, result.PassedQuestions, 1)
	assert.Equal(t, "A1.1", result.PassedQuestions[0].QuestionNumber)
}

func TestAssessHTMLTableNoTable(t *testing.T) {
	_, err := newTestEngine(nil).AssessHTMLTable("<div>not a table</div>")
	require.Error(t, err)

	var engineErr *common.EngineError
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, common.ErrorTypeParse, engineErr.Type)
}

func TestDetectColumns(t *testing.T) {
	grid := models.StringGrid([][]string{
		{"No.", "Question", "Type", "Answer"},
	})

	det := newTestEngine(nil).DetectColumns(grid)
	require.NotNil(t, det)
	assert.Equal(t, 0, det.QuestionNumberColumn)
	assert.Equal(t, 1, det.QuestionTextColumn)
	assert.True(t, det.AnswerColumnDetected)
}
