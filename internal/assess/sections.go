// Package assess scores parsed question records against the certification
// rule set and aggregates them into per-section and overall results.
package assess

import "strings"

// Section ids and display names are a fixed external contract consumed by
// rendering layers; both tables must be preserved exactly.
var sectionIDByPrefix = map[string]string{
	"A1": "company-info",
	"A2": "scope",
	"A3": "insurance",
	"A4": "firewalls",
	"A5": "secure-configuration",
	"A6": "security-updates",
	"A7": "access-control",
	"A8": "malware-protection",
}

var sectionNameByID = map[string]string{
	"company-info":         "Your Company",
	"scope":                "Scope of Assessment",
	"insurance":            "Insurance",
	"firewalls":            "Firewalls",
	"secure-configuration": "Secure Configuration",
	"security-updates":     "Security Update Management",
	"access-control":       "User Access Control",
	"malware-protection":   "Malware Protection",
}

// SectionID maps a question number to its certification section via the
// prefix before the first dot. Unmapped prefixes land in "unknown".
func SectionID(questionNumber string) string {
	prefix, _, _ := strings.Cut(questionNumber, ".")
	if id, ok := sectionIDByPrefix[prefix]; ok {
		return id
	}
	return "unknown"
}

// SectionName returns the display name for a section id.
func SectionName(sectionID string) string {
	if name, ok := sectionNameByID[sectionID]; ok {
		return name
	}
	return "Unknown Section"
}
