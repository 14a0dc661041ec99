// Package rules provides reusable single-value checks and adapts them to the
// validation.Checker capability.
//
// Every rule except NotEmpty treats a missing or blank value as valid, so
// "required" stays a separate decision from "well formed".
package rules

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Rule is a single check with a default failure message.
type Rule interface {
	// Name is the rule's textual form, as accepted by Parse.
	Name() string
	Valid(value any) bool
	DefaultMessage() string
}

type rule struct {
	name    string
	message string
	valid   func(text string) bool
	// blankOK lets nil and whitespace-only values pass without calling valid.
	blankOK bool
}

func (r rule) Name() string           { return r.name }
func (r rule) DefaultMessage() string { return r.message }

func (r rule) Valid(value any) bool {
	text, present := textOf(value)
	if !present || strings.TrimSpace(text) == "" {
		return r.blankOK
	}
	return r.valid(text)
}

func textOf(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	case []byte:
		return string(v), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return fmt.Sprint(v), true
	}
}

var (
	emailPattern        = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,6}$`)
	alphanumericPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	digitsPattern       = regexp.MustCompile(`^[0-9]+$`)
)

// NotEmpty fails nil, empty and whitespace-only values.
func NotEmpty() Rule {
	return rule{
		name:    "required",
		message: "This field is required.",
		valid:   func(string) bool { return true },
	}
}

// Email accepts addresses of the form local@domain.tld.
func Email() Rule {
	return rule{
		name:    "email",
		message: "Please enter a valid email address.",
		valid:   emailPattern.MatchString,
		blankOK: true,
	}
}

// URL accepts absolute http and https URLs.
func URL() Rule {
	return rule{
		name:    "url",
		message: "Please enter a valid URL.",
		valid: func(text string) bool {
			u, err := url.Parse(strings.TrimSpace(text))
			if err != nil || u.Host == "" {
				return false
			}
			return u.Scheme == "http" || u.Scheme == "https"
		},
		blankOK: true,
	}
}

// Numeric accepts any finite decimal number.
func Numeric() Rule {
	return rule{
		name:    "numeric",
		message: "Please enter a valid number.",
		valid: func(text string) bool {
			_, ok := parseNumber(text)
			return ok
		},
		blankOK: true,
	}
}

// Integer accepts base-10 integers in the 32-bit range.
func Integer() Rule {
	return rule{
		name:    "integer",
		message: "Please enter a valid integer.",
		valid: func(text string) bool {
			_, err := strconv.ParseInt(strings.TrimSpace(text), 10, 32)
			return err == nil
		},
		blankOK: true,
	}
}

// Alphanumeric accepts ASCII letters and digits only.
func Alphanumeric() Rule {
	return rule{
		name:    "alphanumeric",
		message: "Please enter only letters and numbers.",
		valid:   alphanumericPattern.MatchString,
		blankOK: true,
	}
}

// DigitsOnly accepts ASCII digits only.
func DigitsOnly() Rule {
	return rule{
		name:    "digits",
		message: "Please enter only digits.",
		valid:   digitsPattern.MatchString,
		blankOK: true,
	}
}

// MinLength requires at least n characters.
func MinLength(n int) Rule {
	return rule{
		name:    "min_length=" + strconv.Itoa(n),
		message: fmt.Sprintf("The field must be at least %d characters long.", n),
		valid:   func(text string) bool { return utf8.RuneCountInString(text) >= n },
		blankOK: true,
	}
}

// MaxLength allows at most n characters.
func MaxLength(n int) Rule {
	return rule{
		name:    "max_length=" + strconv.Itoa(n),
		message: fmt.Sprintf("The field must be no more than %d characters long.", n),
		valid:   func(text string) bool { return utf8.RuneCountInString(text) <= n },
		blankOK: true,
	}
}

// MinValue requires a number no smaller than limit. Text that is not a
// number fails.
func MinValue(limit float64) Rule {
	s := formatNumber(limit)
	return rule{
		name:    "min=" + s,
		message: "The value must be at least " + s + ".",
		valid: func(text string) bool {
			v, ok := parseNumber(text)
			return ok && v >= limit
		},
		blankOK: true,
	}
}

// MaxValue requires a number no larger than limit. Text that is not a
// number fails.
func MaxValue(limit float64) Rule {
	s := formatNumber(limit)
	return rule{
		name:    "max=" + s,
		message: "The value must be no more than " + s + ".",
		valid: func(text string) bool {
			v, ok := parseNumber(text)
			return ok && v <= limit
		},
		blankOK: true,
	}
}

// parseNumber accepts surrounding whitespace and thousands separators.
func parseNumber(text string) (float64, bool) {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
