package respond

import "regexp"

var (
	// provider API keys travel as a query parameter
	apiKeyParamPattern = regexp.MustCompile(`(?i)(apikey=)[^&\s"]+`)
	dbPasswordPattern  = regexp.MustCompile(`://([^:/]+):([^@]+)@`)
)

// SanitizeError masks API keys and DSN passwords in err's message.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	msg = apiKeyParamPattern.ReplaceAllString(msg, "${1}****")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	return msg
}
