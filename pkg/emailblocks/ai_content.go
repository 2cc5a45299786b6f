package emailblocks

import (
	"regexp"
	"strings"
)

var (
	subjectLinePattern   = regexp.MustCompile(`(?i)subject[:\s]*([^\n]+)`)
	leadingSubjectPrefix = regexp.MustCompile(`(?i)^subject[:\s]*[^\n]*\n*`)
)

// GeneratedContent is the result of splitting AI output into a subject and body
type GeneratedContent struct {
	Subject    string
	HasSubject bool
	// BodyHTML is empty when the output carried no body text
	BodyHTML string
}

// ExtractGeneratedContent applies the best-effort subject/body heuristic to AI output.
// Only a line labelled "subject" is recognised; other labels leave the subject alone.
func ExtractGeneratedContent(output string) GeneratedContent {
	var result GeneratedContent
	if match := subjectLinePattern.FindStringSubmatch(output); match != nil {
		result.Subject = strings.TrimSpace(match[1])
		result.HasSubject = true
	}

	body := strings.TrimSpace(leadingSubjectPrefix.ReplaceAllString(output, ""))
	if body != "" {
		result.BodyHTML = "<p>" + strings.ReplaceAll(body, "\n", "</p><p>") + "</p>"
	}
	return result
}
