package parser

import (
	"testing"

	"cyberassess/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func newTestClassifier() *Classifier {
	return NewClassifier(arbor.NewLogger())
}

func TestFindDataStartRow(t *testing.T) {
	tests := []struct {
		name string
		grid models.Grid
		want int
	}{
		{
			name: "empty rows skipped",
			grid: models.StringGrid([][]string{
				{"", "", ""},
				{"", "", ""},
				{"No.", "Question", "Type"},
			}),
			want: 2,
		},
		{
			name: "long lone title skipped",
			grid: models.StringGrid([][]string{
				{"Self assessment workbook for small organisations", "", ""},
				{"No.", "Question", "Type"},
			}),
			want: 1,
		},
		{
			name: "known title phrases skipped",
			grid: models.StringGrid([][]string{
				{"Cyber Essentials", "v3", "2025"},
				{"Question Set", "", ""},
				{"No.", "Question", "Type"},
			}),
			want: 2,
		},
		{
			name: "rows with fewer than three filled cells skipped",
			grid: models.StringGrid([][]string{
				{"intro", "", ""},
				{"No.", "Question", "Type"},
			}),
			want: 1,
		},
		{
			name: "nothing qualifies defaults to zero",
			grid: models.StringGrid([][]string{
				{"a", ""},
				{"b", ""},
			}),
			want: 0,
		},
		{
			name: "empty grid",
			grid: models.Grid{},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findDataStartRow(tt.grid))
		})
	}
}

func TestDetectColumnsHeaderLabels(t *testing.T) {
	grid := models.StringGrid([][]string{
		{"Section", "No.", "Question", "Answer Type", "Your Answer"},
		{"Firewalls", "A4.1", "Do you have firewalls at your network boundary?", "Yes/No", "Yes"},
	})

	det := newTestClassifier().DetectColumns(grid)

	assert.Equal(t, 0, det.HeaderRow)
	assert.Equal(t, 1, det.QuestionNumberColumn)
	assert.Equal(t, 2, det.QuestionTextColumn)
	assert.Equal(t, 3, det.AnswerTypeColumn)
	assert.Equal(t, 4, det.UserAnswerColumn)
	assert.True(t, det.AnswerColumnDetected)
	assert.Equal(t, []string{"Section", "No.", "Question", "Answer Type", "Your Answer"}, det.DetectedHeaders)
}

func TestDetectColumnsAnswerColumn(t *testing.T) {
	t.Run("type column never matches as answer column", func(t *testing.T) {
		grid := models.StringGrid([][]string{
			{"No.", "Question", "Answer Type"},
		})
		det := newTestClassifier().DetectColumns(grid)
		assert.False(t, det.AnswerColumnDetected)
		assert.Equal(t, -1, det.UserAnswerColumn)
	})

	t.Run("response label beats notes label", func(t *testing.T) {
		grid := models.StringGrid([][]string{
			{"No.", "Question", "Notes", "Response"},
		})
		det := newTestClassifier().DetectColumns(grid)
		assert.True(t, det.AnswerColumnDetected)
		assert.Equal(t, 3, det.UserAnswerColumn)
	})

	t.Run("prefix match accepted", func(t *testing.T) {
		grid := models.StringGrid([][]string{
			{"No.", "Question", "Type", "My Answer (required)"},
		})
		det := newTestClassifier().DetectColumns(grid)
		assert.True(t, det.AnswerColumnDetected)
		assert.Equal(t, 3, det.UserAnswerColumn)
	})

	t.Run("plural answers accepted", func(t *testing.T) {
		grid := models.StringGrid([][]string{
			{"No.", "Question", "Type", "Answers"},
		})
		det := newTestClassifier().DetectColumns(grid)
		assert.True(t, det.AnswerColumnDetected)
		assert.Equal(t, 3, det.UserAnswerColumn)
	})
}

func TestDetectColumnsPatternFallback(t *testing.T) {
	// No header labels anywhere; five question-shaped cells in column 1.
	grid := models.StringGrid([][]string{
		{"", "A1.1", "What is your organisation's name?", "Notes", "Acme"},
		{"", "A1.2", "What is your registration number?", "Notes", "123"},
		{"", "A1.3", "What is your registered address?", "Notes", "1 Main St"},
		{"", "A1.4", "What is your main business?", "Notes", "Retail"},
		{"", "A1.5", "What is your website address?", "Notes", "acme.test"},
	})

	det := newTestClassifier().DetectColumns(grid)

	assert.Equal(t, 1, det.QuestionNumberColumn)
	assert.Equal(t, 2, det.QuestionTextColumn)
	assert.Equal(t, 3, det.AnswerTypeColumn)
	// Parsing starts at the first matched row.
	assert.Equal(t, -1, det.HeaderRow)
}

func TestDetectColumnsLastResortDefaults(t *testing.T) {
	grid := models.StringGrid([][]string{
		{"alpha", "beta", "gamma"},
		{"delta", "epsilon", "zeta"},
	})

	det := newTestClassifier().DetectColumns(grid)

	assert.Equal(t, 0, det.HeaderRow)
	assert.Equal(t, 0, det.QuestionNumberColumn)
	assert.Equal(t, 1, det.QuestionTextColumn)
	assert.Equal(t, 2, det.AnswerTypeColumn)
	assert.False(t, det.AnswerColumnDetected)
}

func TestDetectColumnsBlankHeaderCellsGetLetters(t *testing.T) {
	grid := models.StringGrid([][]string{
		{"No.", "Question", "", "Answer"},
		{"A1.1", "What is your organisation's name?", "Notes", "Acme"},
	})

	det := newTestClassifier().DetectColumns(grid)

	require.Len(t, det.DetectedHeaders, 4)
	assert.Equal(t, "C", det.DetectedHeaders[2])
}

func TestDetectColumnsEmptyGrid(t *testing.T) {
	det := newTestClassifier().DetectColumns(models.Grid{})
	assert.NotNil(t, det)
	assert.Equal(t, 0, det.QuestionNumberColumn)
	assert.False(t, det.AnswerColumnDetected)
	assert.NotNil(t, det.DetectedHeaders)
}

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, columnLetter(tt.index))
	}
}
