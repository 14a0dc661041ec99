package rules

import (
	"context"

	"github.com/thoreinstein/fieldcheck/pkg/validation"
)

// DefaultCompositeMessage is a Composite's error text unless overridden.
const DefaultCompositeMessage = "Validation failed."

// AdaptOption configures a RuleChecker.
type AdaptOption func(*RuleChecker)

// WithMessage replaces the rule's default failure message.
func WithMessage(msg string) AdaptOption {
	return func(c *RuleChecker) {
		c.message = msg
	}
}

// RuleChecker adapts a Rule to validation.Checker, remembering the outcome
// of its last check.
type RuleChecker struct {
	rule    Rule
	message string
	status  validation.Status
}

// Adapt wraps r as a validation.Checker.
func Adapt(r Rule, opts ...AdaptOption) *RuleChecker {
	c := &RuleChecker{rule: r}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rule returns the adapted rule.
func (c *RuleChecker) Rule() Rule { return c.rule }

// Check runs the rule and records the outcome.
func (c *RuleChecker) Check(value any) bool {
	ok := c.rule.Valid(value)
	c.status = validation.StatusError
	if ok {
		c.status = validation.StatusSuccess
	}
	return ok
}

// CheckAsync is Check behind a cancellation check; rules never suspend.
func (c *RuleChecker) CheckAsync(ctx context.Context, value any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return c.Check(value), nil
}

// ErrorMessage returns the custom message if set, else the rule's default.
func (c *RuleChecker) ErrorMessage() string {
	if c.message != "" {
		return c.message
	}
	return c.rule.DefaultMessage()
}

// Status returns the outcome of the last check.
func (c *RuleChecker) Status() validation.Status { return c.status }

// Composite is a Checker that passes only when all of its members pass.
type Composite struct {
	message string
	members []validation.Checker
	status  validation.Status
}

// NewComposite combines members. Nil members are ignored.
func NewComposite(members ...validation.Checker) *Composite {
	c := &Composite{message: DefaultCompositeMessage}
	for _, m := range members {
		c.Add(m)
	}
	return c
}

// All adapts each rule and combines them.
func All(rs ...Rule) *Composite {
	c := NewComposite()
	for _, r := range rs {
		c.Add(Adapt(r))
	}
	return c
}

// SetErrorMessage overrides DefaultCompositeMessage.
func (c *Composite) SetErrorMessage(msg string) {
	c.message = msg
}

// Add appends a member. A nil member is ignored.
func (c *Composite) Add(m validation.Checker) {
	if m != nil {
		c.members = append(c.members, m)
	}
}

// Remove drops the first occurrence of m.
func (c *Composite) Remove(m validation.Checker) {
	for i, x := range c.members {
		if x == m {
			c.members = append(c.members[:i], c.members[i+1:]...)
			return
		}
	}
}

// Len returns the number of members.
func (c *Composite) Len() int { return len(c.members) }

// Check runs every member so each records its own status.
func (c *Composite) Check(value any) bool {
	ok := true
	for _, m := range c.members {
		if !m.Check(value) {
			ok = false
		}
	}
	c.setStatus(ok)
	return ok
}

// CheckAsync runs members one after another and stops at the first error.
func (c *Composite) CheckAsync(ctx context.Context, value any) (bool, error) {
	ok := true
	for _, m := range c.members {
		passed, err := m.CheckAsync(ctx, value)
		if err != nil {
			return false, err
		}
		if !passed {
			ok = false
		}
	}
	c.setStatus(ok)
	return ok, nil
}

func (c *Composite) setStatus(ok bool) {
	c.status = validation.StatusError
	if ok {
		c.status = validation.StatusSuccess
	}
}

// ErrorMessage returns the composite's own message.
func (c *Composite) ErrorMessage() string { return c.message }

// Status returns the outcome of the last check.
func (c *Composite) Status() validation.Status { return c.status }

// Messages checks value and returns the messages of the members that failed,
// in member order.
func (c *Composite) Messages(value any) []string {
	var out []string
	for _, m := range c.members {
		if !m.Check(value) {
			out = append(out, m.ErrorMessage())
		}
	}
	return out
}

// MessagesAsync is the asynchronous counterpart of Messages.
func (c *Composite) MessagesAsync(ctx context.Context, value any) ([]string, error) {
	var out []string
	for _, m := range c.members {
		passed, err := m.CheckAsync(ctx, value)
		if err != nil {
			return nil, err
		}
		if !passed {
			out = append(out, m.ErrorMessage())
		}
	}
	return out, nil
}

// Validator reports every failed member's message instead of the single
// composite message, for use with validation.WithValidator.
func (c *Composite) Validator() validation.ValidatorFunc {
	return validation.MessagesFunc(c.Messages)
}

// AsyncValidator is Validator for validation.WithAsyncValidator.
func (c *Composite) AsyncValidator() validation.AsyncValidatorFunc {
	return func(ctx context.Context, value any) (validation.Result, error) {
		msgs, err := c.MessagesAsync(ctx, value)
		if err != nil {
			return validation.Result{}, err
		}
		if len(msgs) == 0 {
			return validation.Success(), nil
		}
		return validation.Failure(msgs...), nil
	}
}
