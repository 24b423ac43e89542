package models

// Severity grades a flagged issue.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// FlaggedIssue is a question record that failed assessment. The severity is
// fully determined by the rule that produced it and is never set
// independently.
type FlaggedIssue struct {
	QuestionNumber   string   `json:"questionNumber"`
	QuestionText     string   `json:"questionText"`
	UserAnswer       string   `json:"userAnswer"`
	IssueDescription string   `json:"issueDescription"`
	Severity         Severity `json:"severity"`
}

// PassedQuestion is a question record that passed assessment.
type PassedQuestion struct {
	QuestionNumber string `json:"questionNumber"`
	QuestionText   string `json:"questionText"`
	AnswerType     string `json:"answerType"`
	UserAnswer     string `json:"userAnswer"`
}

// SectionResult is the aggregated score for one certification section.
// Invariant: AnsweredQuestions + len(Issues) == TotalQuestions.
type SectionResult struct {
	SectionID         string   `json:"sectionId"`
	SectionName       string   `json:"sectionName"`
	Score             float64  `json:"score"`
	AnsweredQuestions int      `json:"answeredQuestions"`
	TotalQuestions    int      `json:"totalQuestions"`
	Issues            []string `json:"issues"`
}

// AssessmentResult is the top-level output of an assessment run. Section
// results appear in the order their sections were first encountered.
// Completeness mirrors OverallScore and is retained as a distinct field for
// API stability.
type AssessmentResult struct {
	OverallScore    float64          `json:"overallScore"`
	SectionResults  []SectionResult  `json:"sectionResults"`
	FlaggedIssues   []FlaggedIssue   `json:"flaggedIssues"`
	PassedQuestions []PassedQuestion `json:"passedQuestions"`
	Completeness    float64          `json:"completeness"`
	Summary         string           `json:"summary"`
}
