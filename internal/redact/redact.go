// Package redact scrubs sensitive fragments from strings before they are
// logged or echoed in error responses. Errors that bubble up from the
// database driver or the identity client can carry connection strings,
// bearer tokens, SQL fragments, or roster emails, and none of those belong
// in a log line or an HTTP body.
package redact

import "regexp"

// Placeholders substituted for matched fragments.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedTokenPlaceholder      = "[REDACTED_TOKEN]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedHostPlaceholder       = "[REDACTED_HOST]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules are applied in order; more specific patterns run before the broad
// host matcher so a connection string is not half-eaten by it.
var rules = []rule{
	// Database connection URLs with inline credentials.
	{regexp.MustCompile(`(?i)(postgres(ql)?|mysql|db|database)://[^@\s]+@[^\s]+`), RedactedCredentialPlaceholder},

	// Explicit password/secret assignments in error text or DSN fragments.
	{regexp.MustCompile(`(?i)(password|passwd|secret|api[_-]?key)([=:\s]['"]?)[^'"&\s]{3,}`), RedactedCredentialPlaceholder},

	// Bearer JWTs forwarded to the identity service.
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`), RedactedTokenPlaceholder},

	// SQL statements leaking from driver errors.
	{regexp.MustCompile(`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(?:FROM|INTO|SET|TABLE|INDEX)(?:[\s\w,*()='"$]+)?`), RedactedSQLPlaceholder},

	// Gym member emails from identity payloads.
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), RedactedEmailPlaceholder},

	// Filesystem paths in wrapped I/O errors.
	{regexp.MustCompile(`(/[\w.-]+){2,}`), RedactedPathPlaceholder},

	// Hostnames with optional ports, e.g. unreachable identity endpoints.
	{regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`), RedactedHostPlaceholder},
}

// String redacts sensitive fragments from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive fragments from an error's message. Returns the
// empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
