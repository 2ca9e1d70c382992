// Package redact scrubs file paths, connection strings and SQL from error
// text before it reaches the logs of the HTTP API. Save files live at
// user-chosen paths and the postgres backend reports its DSN in connection
// errors; neither belongs in a log line.
package redact

import (
	"regexp"
)

// Placeholders substituted for redacted fragments.
const (
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
)

type rule struct {
	re          *regexp.Regexp
	placeholder string
}

// Rules run in order; connection strings go before paths so the path rule
// never splits a URL.
var rules = []rule{
	{
		re:          regexp.MustCompile(`(?i)\b(postgres(?:ql)?|pgx)://\S+`),
		placeholder: RedactedCredentialPlaceholder,
	},
	{
		re:          regexp.MustCompile(`(?i)\b(password|passwd|pwd)\s*=\s*\S+`),
		placeholder: RedactedCredentialPlaceholder,
	},
	{
		re: regexp.MustCompile(
			`(?i)\b(SELECT|INSERT|UPDATE|DELETE)\b[^:;]*\b(FROM|INTO|SET)\b[^:;]*`,
		),
		placeholder: RedactedSQLPlaceholder,
	},
	{
		re:          regexp.MustCompile(`(?:\.{0,2}/[\w.-]+){2,}/?`),
		placeholder: RedactedPathPlaceholder,
	},
	{
		re:          regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(?:\\[^\\\s]+)+`),
		placeholder: RedactedPathPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	result := input
	for _, r := range rules {
		result = r.re.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
