package assess

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"cyberassess/internal/models"
)

// GenerateAssessment scores a list of question records and groups them by
// certification section. Sections appear in first-encountered order. The
// function is deterministic and stateless: the same records always produce
// an identical result.
func GenerateAssessment(records []models.QuestionRecord) *models.AssessmentResult {
	bySection := make(map[string]*models.SectionResult)
	sectionOrder := []string{}
	flaggedIssues := []models.FlaggedIssue{}
	passedQuestions := []models.PassedQuestion{}

	for _, q := range records {
		id := SectionID(q.QuestionNumber)
		section, ok := bySection[id]
		if !ok {
			section = &models.SectionResult{
				SectionID:   id,
				SectionName: SectionName(id),
				Issues:      []string{},
			}
			bySection[id] = section
			sectionOrder = append(sectionOrder, id)
		}
		section.TotalQuestions++

		if issue := AssessQuestion(q); issue != nil {
			flaggedIssues = append(flaggedIssues, *issue)
			section.Issues = append(section.Issues,
				fmt.Sprintf("%s: %s", issue.QuestionNumber, issue.IssueDescription))
		} else {
			passedQuestions = append(passedQuestions, models.PassedQuestion{
				QuestionNumber: q.QuestionNumber,
				QuestionText:   q.QuestionText,
				AnswerType:     q.AnswerType,
				UserAnswer:     q.UserAnswer,
			})
			section.AnsweredQuestions++
		}
		section.Score = sectionScore(section)
	}

	sectionResults := make([]models.SectionResult, 0, len(sectionOrder))
	for _, id := range sectionOrder {
		sectionResults = append(sectionResults, *bySection[id])
	}

	answered := 0
	for _, q := range records {
		if utf8.RuneCountInString(strings.TrimSpace(q.UserAnswer)) >= 2 {
			answered++
		}
	}
	overallScore := 0.0
	if len(records) > 0 {
		overallScore = float64(answered) / float64(len(records)) * 100
	}

	return &models.AssessmentResult{
		OverallScore:    overallScore,
		SectionResults:  sectionResults,
		FlaggedIssues:   flaggedIssues,
		PassedQuestions: passedQuestions,
		Completeness:    overallScore,
		Summary:         buildSummary(overallScore, flaggedIssues),
	}
}

func sectionScore(s *models.SectionResult) float64 {
	if s.TotalQuestions == 0 {
		return 100
	}
	return float64(s.AnsweredQuestions) / float64(s.TotalQuestions) * 100
}

// buildSummary renders the human-readable summary: a threshold band for the
// overall score, then one clause per present issue severity.
func buildSummary(overallScore float64, flaggedIssues []models.FlaggedIssue) string {
	var summary string
	switch {
	case overallScore >= 90:
		summary = "Excellent! Your assessment is nearly complete with minimal issues."
	case overallScore >= 70:
		summary = "Good progress! You have answered most questions, but some areas need attention."
	case overallScore >= 50:
		summary = "Fair progress. Several questions still need to be answered or improved."
	default:
		summary = "Your assessment needs significant work. Many questions are incomplete or missing."
	}

	highIssues, mediumIssues := 0, 0
	for _, issue := range flaggedIssues {
		switch issue.Severity {
		case models.SeverityHigh:
			highIssues++
		case models.SeverityMedium:
			mediumIssues++
		}
	}

	if highIssues > 0 {
		summary += fmt.Sprintf(" You have %d high-severity issue%s that require immediate attention.",
			highIssues, pluralSuffix(highIssues))
	}
	if mediumIssues > 0 {
		summary += fmt.Sprintf(" There are %d medium-severity issue%s to address.",
			mediumIssues, pluralSuffix(mediumIssues))
	}
	return summary
}

func pluralSuffix(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
