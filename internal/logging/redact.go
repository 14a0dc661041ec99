package logging

import "strings"

// SensitiveFieldPatterns are substrings of field or attribute names whose
// values must never be printed. Matching is case-insensitive.
var SensitiveFieldPatterns = []string{
	"PASSWORD",
	"PASSWD",
	"PASSPHRASE",
	"SECRET",
	"TOKEN",
	"API_KEY",
	"APIKEY",
	"PRIVATE",
	"CREDENTIAL",
	"SSN",
	"CVV",
	"CARD_NUMBER",
}

// TokenPrefixes are value prefixes of well-known credentials that are masked
// whatever the field is called.
var TokenPrefixes = []string{
	"ghp_",
	"gho_",
	"ghs_",
	"sk-",
	"AKIA",
	"xoxb-",
	"xoxp-",
}

// ShouldMask reports whether the name suggests a sensitive value.
func ShouldMask(name string) bool {
	upper := strings.ToUpper(name)
	for _, pattern := range SensitiveFieldPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix reports whether value starts with a known credential prefix.
func ContainsTokenPrefix(value string) bool {
	for _, prefix := range TokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// MaskValue hides value. Values of four characters or fewer are fully
// masked; longer ones keep their last four characters.
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// Redact returns value masked if the name or the value itself looks
// sensitive, and unchanged otherwise.
func Redact(name, value string) string {
	if ShouldMask(name) || ContainsTokenPrefix(value) {
		return MaskValue(value)
	}
	return value
}
