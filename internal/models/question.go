package models

// QuestionRecord is one parsed questionnaire entry together with the
// respondent's answer. Records are created by the spreadsheet or text
// parser and are immutable afterwards; the assessor consumes each record
// exactly once. Duplicate question numbers are processed independently.
type QuestionRecord struct {
	QuestionNumber string `json:"questionNumber"`
	QuestionText   string `json:"questionText"`
	AnswerType     string `json:"answerType"`
	UserAnswer     string `json:"userAnswer"`
}
