package parser

import (
	"strings"
	"testing"

	"cyberassess/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func newTestSpreadsheetParser() *SpreadsheetParser {
	return NewSpreadsheetParser(arbor.NewLogger())
}

func TestExtractQuestionNumber(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"A1.1", "A1.1"},
		{"  A4.2.1  ", "A4.2.1"},
		{"Question A1.1", "A1.1"},
		{"A1.1 (see guidance)", "A1.1"},
		{"2.1", "2.1"},
		{"7", "7"},
		{"plain text", "plain text"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractQuestionNumber(tt.input), "input %q", tt.input)
	}
}

func TestIsQuestionRow(t *testing.T) {
	tests := []struct {
		name string
		row  []string
		want bool
	}{
		{
			name: "lettered number with real question",
			row:  []string{"A1.1", "What is your organisation's name?", "Notes", "Acme Ltd"},
			want: true,
		},
		{
			name: "dotted numeric number accepted",
			row:  []string{"2.1", "What is your organisation's name?", "Notes", ""},
			want: true,
		},
		{
			name: "bare integer rejected",
			row:  []string{"7", "What is your organisation's name?", "Notes", ""},
			want: false,
		},
		{
			name: "text below minimum length rejected",
			row:  []string{"A1.1", "Name?", "Notes", ""},
			want: false,
		},
		{
			name: "overlong guidance prose rejected",
			row:  []string{"A1.1", strings.Repeat("x", 301), "Notes", ""},
			want: false,
		},
		{
			name: "guidance marker rejected",
			row:  []string{"A4.1", "In this section we ask about your firewalls.", "", ""},
			want: false,
		},
		{
			name: "non-number first cell rejected",
			row:  []string{"Section", "What is your organisation's name?", "Notes", ""},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := make(models.Row, len(tt.row))
			for i, s := range tt.row {
				row[i] = models.StringCell(s)
			}
			assert.Equal(t, tt.want, IsQuestionRow(row))
		})
	}
}

func TestSpreadsheetParserParse(t *testing.T) {
	grid := models.StringGrid([][]string{
		{"No.", "Question", "Type", "Answer"},
		{"A1.1", "What is your organisation's name?", "Notes", "Acme Ltd"},
	})

	records := newTestSpreadsheetParser().Parse(grid, AnswerColumnAuto)

	require.Len(t, records, 1)
	assert.Equal(t, models.QuestionRecord{
		QuestionNumber: "A1.1",
		QuestionText:   "What is your organisation's name?",
		AnswerType:     "Notes",
		UserAnswer:     "Acme Ltd",
	}, records[0])
}

func TestSpreadsheetParserSkipsGuidanceRows(t *testing.T) {
	grid := models.StringGrid([][]string{
		{"No.", "Question", "Type", "Answer"},
		{"A4", "In this section we ask about the firewalls protecting your devices.", "", ""},
		{"A4.1", "Do you have firewalls at your network boundary?", "Yes/No", "Yes"},
		{"", "You should include every internet-facing office here.", "", ""},
		{"A4.2", "Have you changed default firewall passwords?", "Yes/No", "No"},
	})

	records := newTestSpreadsheetParser().Parse(grid, AnswerColumnAuto)

	require.Len(t, records, 2)
	assert.Equal(t, "A4.1", records[0].QuestionNumber)
	assert.Equal(t, "A4.2", records[1].QuestionNumber)
}

func TestSpreadsheetParserAnswerColumnOverride(t *testing.T) {
	grid := models.StringGrid([][]string{
		{"No.", "Question", "Type", "Draft", "Final"},
		{"A1.1", "What is your organisation's name?", "Notes", "Acme (draft)", "Acme Ltd"},
	})

	records := newTestSpreadsheetParser().Parse(grid, 4)

	require.Len(t, records, 1)
	assert.Equal(t, "Acme Ltd", records[0].UserAnswer)
}

func TestSpreadsheetParserDefaultAnswerColumn(t *testing.T) {
	// No answer-labeled header anywhere, so the answer falls back to the
	// column after the answer type.
	grid := models.StringGrid([][]string{
		{"No.", "Question", "Type", "Filled In"},
		{"A1.1", "What is your organisation's name?", "Notes", "Acme Ltd"},
	})

	records := newTestSpreadsheetParser().Parse(grid, AnswerColumnAuto)

	require.Len(t, records, 1)
	assert.Equal(t, "Acme Ltd", records[0].UserAnswer)
}

func TestSpreadsheetParserDefaultsAnswerType(t *testing.T) {
	grid := models.StringGrid([][]string{
		{"No.", "Question", "Type", "Answer"},
		{"A1.1", "What is your organisation's name?", "", "Acme Ltd"},
	})

	records := newTestSpreadsheetParser().Parse(grid, AnswerColumnAuto)

	require.Len(t, records, 1)
	assert.Equal(t, "Notes", records[0].AnswerType)
}

func TestSpreadsheetParserFixedLayoutRetry(t *testing.T) {
	// Questions live in columns C-F; columns A-B carry bookkeeping that
	// defeats header detection, so the fixed-layout retry has to find them.
	grid := models.StringGrid([][]string{
		{"Sheet 1", "", "", "", "", ""},
		{"x", "y", "A1.1", "What is your organisation's name?", "Notes", "Acme Ltd"},
		{"x", "y", "A1.2", "What is your registration number?", "Notes", "00112233"},
	})

	records := newTestSpreadsheetParser().Parse(grid, AnswerColumnAuto)

	require.Len(t, records, 2)
	assert.Equal(t, "A1.1", records[0].QuestionNumber)
	assert.Equal(t, "Acme Ltd", records[0].UserAnswer)
	assert.Equal(t, "00112233", records[1].UserAnswer)
}

func TestSpreadsheetParserEmptyGrid(t *testing.T) {
	records := newTestSpreadsheetParser().Parse(models.Grid{}, AnswerColumnAuto)
	assert.Empty(t, records)
	assert.NotNil(t, records)
}
