// Package sanitize strips dangerous content from respondent-supplied input
// before any parsing touches it. Every function is total: malformed input
// degrades to the empty value for its type, never an error.
package sanitize

import (
	"regexp"
	"strings"

	"cyberassess/internal/models"
)

var (
	htmlTagPattern      = regexp.MustCompile(`<[^>]*>`)
	controlCharPattern  = regexp.MustCompile("[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]")
	protocolPattern     = regexp.MustCompile(`(?i)(?:javascript|data|vbscript):`)
	scriptBlockPattern  = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	iframeBlockPattern  = regexp.MustCompile(`(?is)<iframe\b.*?</iframe>`)
	eventHandlerPattern = regexp.MustCompile(`(?i)on\w+\s*=\s*["'][^"']*["']`)

	questionNumberChars   = regexp.MustCompile(`[^A-Za-z0-9.\-_]`)
	questionNumberValid   = regexp.MustCompile(`^[A-Z]?\d+(?:\.\d+)*$`)
	questionNumberExtract = regexp.MustCompile(`[A-Z]?\d+(?:\.\d+)*`)

	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
		"/", "&#x2F;",
	)
)

// String returns a version of input that is safe to store and display:
// HTML tags removed, special characters escaped, control characters and
// script protocol prefixes stripped, surrounding whitespace trimmed.
func String(input string) string {
	if input == "" {
		return ""
	}

	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	sanitized = htmlEscaper.Replace(sanitized)
	sanitized = controlCharPattern.ReplaceAllString(sanitized, "")
	sanitized = protocolPattern.ReplaceAllString(sanitized, "")

	return strings.TrimSpace(sanitized)
}

// TextInput cleans a pasted text blob ahead of the text parser. Unlike
// String it does not escape markup characters: the paste path keeps the
// text readable for line-oriented parsing and only removes the outright
// dangerous constructs (script/iframe blocks including their content, and
// inline event-handler attributes). The blob is truncated to maxTotalLength
// first.
func TextInput(text string, maxTotalLength int) string {
	if text == "" {
		return ""
	}

	sanitized := EnforceMaxLength(text, maxTotalLength)
	sanitized = scriptBlockPattern.ReplaceAllString(sanitized, "")
	sanitized = iframeBlockPattern.ReplaceAllString(sanitized, "")
	sanitized = eventHandlerPattern.ReplaceAllString(sanitized, "")

	return sanitized
}

// Grid applies String to every string-typed cell of a raw grid. Cells of
// other kinds pass through unchanged; nil rows become empty rows and a nil
// grid becomes an empty grid.
func Grid(grid models.Grid) models.Grid {
	if grid == nil {
		return models.Grid{}
	}

	out := make(models.Grid, len(grid))
	for i, row := range grid {
		if row == nil {
			out[i] = models.Row{}
			continue
		}
		cleaned := make(models.Row, len(row))
		for j, cell := range row {
			if cell.Kind == models.CellString {
				cleaned[j] = models.StringCell(String(cell.Str))
			} else {
				cleaned[j] = cell
			}
		}
		out[i] = cleaned
	}
	return out
}

// QuestionNumber validates and cleans a question identifier, keeping only
// the characters a valid identifier can contain. When the cleaned value
// still does not match the expected shape, the first valid fragment is
// extracted; failing that, "" is returned.
func QuestionNumber(questionNumber string) string {
	sanitized := htmlTagPattern.ReplaceAllString(questionNumber, "")
	sanitized = strings.TrimSpace(sanitized)
	sanitized = questionNumberChars.ReplaceAllString(sanitized, "")

	if questionNumberValid.MatchString(sanitized) {
		return sanitized
	}
	return questionNumberExtract.FindString(sanitized)
}

// EnforceMaxLength truncates input to at most maxLength bytes. A
// non-positive maxLength leaves the input untouched.
func EnforceMaxLength(input string, maxLength int) string {
	if maxLength > 0 && len(input) > maxLength {
		return input[:maxLength]
	}
	return input
}
