package validation

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
)

// Handler is a validation strategy. Both methods must leave validation
// failures in the returned Result; the error return is reserved for
// collaborator faults and cancellation.
type Handler interface {
	Kind() HandlerKind
	Validate(u *Unit, value any) (Result, error)
	ValidateAsync(ctx context.Context, u *Unit, value any) (Result, error)
}

var handlerFactories = map[HandlerKind]func() Handler{
	HandlerValidator:  func() Handler { return validatorHandler{} },
	HandlerPattern:    func() Handler { return patternHandler{} },
	HandlerAnnotation: func() Handler { return annotationHandler{} },
}

// NewHandler returns the Handler for kind. An unknown kind is a
// configuration error wrapping ErrUnknownHandler.
func NewHandler(kind HandlerKind) (Handler, error) {
	build, ok := handlerFactories[kind]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownHandler, "handler kind %d", int(kind))
	}
	return build(), nil
}

// textOf coerces a field value to the text a pattern is matched against.
func textOf(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

type patternHandler struct{}

func (patternHandler) Kind() HandlerKind { return HandlerPattern }

func (patternHandler) Validate(u *Unit, value any) (Result, error) {
	if u.pattern == nil {
		return None(), nil
	}
	if u.pattern.MatchString(textOf(value)) {
		return Success(), nil
	}
	return Failure(PatternMismatchMessage), nil
}

// ValidateAsync never suspends; it only honours cancellation at entry.
func (h patternHandler) ValidateAsync(ctx context.Context, u *Unit, value any) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return h.Validate(u, value)
}

type annotationHandler struct{}

func (annotationHandler) Kind() HandlerKind { return HandlerAnnotation }

func (h annotationHandler) Validate(u *Unit, value any) (Result, error) {
	return h.run(context.Background(), u, value)
}

func (h annotationHandler) ValidateAsync(ctx context.Context, u *Unit, value any) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return h.run(ctx, u, value)
}

func (annotationHandler) run(ctx context.Context, u *Unit, value any) (Result, error) {
	bc := u.bindingContext()
	if bc == nil || bc.Source == nil {
		return None(), nil
	}

	field := u.FieldBinding()
	if field.Accessor != nil {
		value = field.Accessor()
	}

	messages, err := bc.Source.FieldErrors(ctx, field.ID, value)
	if err != nil {
		return Result{}, errors.Wrapf(err, "looking up rules for field %q", field.ID.Name)
	}
	// The lookup may have suspended; nothing is written once cancelled.
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if bc.Store != nil {
		bc.Store.Clear(field.ID)
		for _, m := range messages {
			bc.Store.Add(field.ID, m)
		}
	}

	if len(messages) == 0 {
		return Success(), nil
	}
	return Failure(messages...), nil
}

type validatorHandler struct{}

func (validatorHandler) Kind() HandlerKind { return HandlerValidator }

func (validatorHandler) Validate(u *Unit, value any) (Result, error) {
	switch {
	case u.checker != nil:
		return checkerResult(u.checker, u.checker.Check(value)), nil
	case u.validate != nil:
		return u.validate(value), nil
	case u.validateAsync != nil:
		return u.validateAsync(context.Background(), value)
	default:
		return None(), nil
	}
}

// ValidateAsync prefers the asynchronous validator when one is configured.
func (validatorHandler) ValidateAsync(ctx context.Context, u *Unit, value any) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	var (
		res Result
		err error
	)
	switch {
	case u.checker != nil:
		var ok bool
		ok, err = u.checker.CheckAsync(ctx, value)
		if err == nil {
			res = checkerResult(u.checker, ok)
		}
	case u.validateAsync != nil:
		res, err = u.validateAsync(ctx, value)
	case u.validate != nil:
		res = u.validate(value)
	default:
		return None(), nil
	}

	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return res, nil
}

// checkerResult trusts the checker's own status when it tracks one and falls
// back to the boolean outcome otherwise.
func checkerResult(c Checker, ok bool) Result {
	status := c.Status()
	if status == StatusNone {
		status = StatusError
		if ok {
			status = StatusSuccess
		}
	}

	switch status {
	case StatusSuccess:
		return Success()
	case StatusError:
		if msg := c.ErrorMessage(); msg != "" {
			return Failure(msg)
		}
		return Failure()
	default:
		return None()
	}
}
