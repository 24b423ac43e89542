package assess

import (
	"strings"
	"unicode/utf8"

	"cyberassess/internal/models"
)

// nonComplianceKeywords are the question-text substrings for which a "No"
// answer suggests a failed control. The list is a deliberate product
// decision; do not extend it without one.
var nonComplianceKeywords = []string{"firewall", "anti-malware", "security updates"}

// minNotesAnswerLength is the shortest free-text answer accepted for
// "Notes" style questions.
const minNotesAnswerLength = 10

// AssessQuestion classifies a single question record. It returns the
// flagged issue for the first rule that fires, or nil when the record
// passes. Pure function: evaluating it has no side effects and the rule
// order is fixed.
func AssessQuestion(q models.QuestionRecord) *models.FlaggedIssue {
	if utf8.RuneCountInString(q.UserAnswer) < 2 {
		return flagged(q, "Answer is missing or incomplete", models.SeverityHigh)
	}

	if strings.Contains(strings.ToLower(q.AnswerType), "yes") {
		answer := strings.ToLower(q.UserAnswer)
		if !strings.Contains(answer, "yes") && !strings.Contains(answer, "no") {
			return flagged(q, "Answer must be Yes or No", models.SeverityMedium)
		}
		if strings.Contains(answer, "no") {
			for _, keyword := range nonComplianceKeywords {
				if strings.Contains(q.QuestionText, keyword) {
					return flagged(q, `This "No" answer may indicate non-compliance`, models.SeverityHigh)
				}
			}
		}
	}

	if strings.Contains(strings.ToLower(q.AnswerType), "notes") &&
		utf8.RuneCountInString(q.UserAnswer) < minNotesAnswerLength {
		return flagged(q, "Answer is too brief, more detail required", models.SeverityMedium)
	}

	return nil
}

func flagged(q models.QuestionRecord, description string, severity models.Severity) *models.FlaggedIssue {
	return &models.FlaggedIssue{
		QuestionNumber:   q.QuestionNumber,
		QuestionText:     q.QuestionText,
		UserAnswer:       q.UserAnswer,
		IssueDescription: description,
		Severity:         severity,
	}
}
