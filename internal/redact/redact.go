// Package redact scrubs secrets and internal details from strings before they
// are logged or echoed back to clients. Rules run in a fixed order so that
// broader patterns (stack traces, credentials in URLs) win over narrower ones.
package redact

import "regexp"

// Placeholders written in place of redacted values.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	TokenPlaceholder      = "[REDACTED_TOKEN]"
	JWTPlaceholder        = "[REDACTED_JWT]"
	ValuePlaceholder      = "[REDACTED]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	PathPlaceholder       = "[REDACTED_PATH]"
	StackTracePlaceholder = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

var rules = []rule{
	{
		pattern:     regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*`),
		replacement: StackTracePlaceholder,
	},
	{
		// userinfo in postgres, redis and object storage URLs
		pattern:     regexp.MustCompile(`(?i)\b(postgres(?:ql)?|rediss?|mongodb|mysql|s3|https?)://[^\s@/]+@`),
		replacement: "${1}://" + CredentialPlaceholder + "@",
	},
	{
		pattern:     regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9\-._~+/]+=*`),
		replacement: "Bearer " + TokenPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),
		replacement: JWTPlaceholder,
	},
	{
		pattern: regexp.MustCompile(
			`(?i)\b(password|passwd|pwd|jwt_secret|secret_key|access_key|api_key|secret)(\s*[=:]\s*)['"]?[^\s'"&,]+['"]?`,
		),
		replacement: "${1}${2}" + ValuePlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`),
		replacement: EmailPlaceholder,
	},
	{
		// Go error strings are lower case, so only upper-case statements are treated as SQL.
		pattern:     regexp.MustCompile(`\b(SELECT|INSERT INTO|UPDATE|DELETE FROM)\s[\s\S]*`),
		replacement: "${1} " + SQLPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(^|\s)(?:/[\w.-]+){2,}`),
		replacement: "${1}" + PathPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
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
