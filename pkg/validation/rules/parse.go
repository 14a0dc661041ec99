package rules

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	// ErrUnknownRule is returned by Parse for a name it does not recognise.
	ErrUnknownRule = errors.New("unknown rule")

	// ErrInvalidArgument is returned by Parse when a rule's argument is
	// missing or malformed.
	ErrInvalidArgument = errors.New("invalid rule argument")
)

// Parse builds a rule from its textual form: a name, optionally followed by
// "=" and an argument. Recognised forms are required, email, url, numeric,
// integer, alphanumeric, digits, min_length=N, max_length=N, min=V and max=V.
func Parse(expr string) (Rule, error) {
	name, arg, hasArg := strings.Cut(strings.TrimSpace(expr), "=")
	name = strings.ToLower(strings.TrimSpace(name))
	arg = strings.TrimSpace(arg)

	simple := map[string]func() Rule{
		"required":     NotEmpty,
		"not_empty":    NotEmpty,
		"email":        Email,
		"url":          URL,
		"numeric":      Numeric,
		"number":       Numeric,
		"integer":      Integer,
		"int":          Integer,
		"alphanumeric": Alphanumeric,
		"alnum":        Alphanumeric,
		"digits":       DigitsOnly,
		"digits_only":  DigitsOnly,
	}
	if build, ok := simple[name]; ok {
		if hasArg {
			return nil, errors.Wrapf(ErrInvalidArgument, "rule %q takes no argument", name)
		}
		return build(), nil
	}

	switch name {
	case "min_length", "max_length":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return nil, errors.Wrapf(ErrInvalidArgument, "rule %q needs a non-negative integer, got %q", name, arg)
		}
		if name == "min_length" {
			return MinLength(n), nil
		}
		return MaxLength(n), nil
	case "min", "max":
		v, ok := parseNumber(arg)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidArgument, "rule %q needs a number, got %q", name, arg)
		}
		if name == "min" {
			return MinValue(v), nil
		}
		return MaxValue(v), nil
	case "":
		return nil, errors.Wrap(ErrUnknownRule, "empty rule")
	default:
		return nil, errors.Wrapf(ErrUnknownRule, "%q", name)
	}
}

// ParseAll parses each expression, stopping at the first error.
func ParseAll(exprs []string) ([]Rule, error) {
	out := make([]Rule, 0, len(exprs))
	for _, e := range exprs {
		r, err := Parse(e)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
