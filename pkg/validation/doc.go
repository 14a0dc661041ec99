// Package validation orchestrates field-level and form-level validation.
//
// A [Unit] tracks one field: its current [Status], its messages and the
// [Handler] that validates it. An [Aggregator] owns the units of a form,
// runs them and derives one aggregate status from theirs. Both raise
// status-changed events that hosts subscribe to with explicit
// [Subscription] handles.
//
// # Handlers
//
// A unit runs exactly one strategy, chosen by [HandlerKind] when the unit is
// built:
//
//   - [HandlerPattern] matches the value's text against a regular expression.
//   - [HandlerAnnotation] asks an [AnnotationSource] for the bound field's
//     errors and mirrors them into the host's [ErrorStore].
//   - [HandlerValidator] calls a [ValidatorFunc], an [AsyncValidatorFunc] or
//     a [Checker].
//
// Validation failures are data: a run that rejects a value returns a nil
// error and leaves the unit in [StatusError]. Errors are returned only for
// configuration mistakes, collaborator faults and cancellation.
//
// # Basic Usage
//
//	form, err := validation.New(validation.WithMode(validation.ModeManual))
//	if err != nil {
//		return err
//	}
//	zip, err := validation.NewUnit("zip",
//		validation.WithHandler(validation.HandlerPattern),
//		validation.WithPattern(`^[0-9]{5}$`),
//	)
//	if err != nil {
//		return err
//	}
//	if err := form.Attach(ctx, zip); err != nil {
//		return err
//	}
//	zip.Initialize(validation.NewInput(func() any { return "1234" }, nil))
//
//	ok, err := form.ValidateAll(ctx)
//	// ok == false, form.Messages() == ["Value does not match the required pattern."]
//
// # Concurrency
//
// The engine follows a single-threaded cooperative model. Units and
// aggregators hold no locks and start no goroutines; drive each form from one
// goroutine. Asynchronous runs suspend only inside handlers and honour
// context cancellation without committing partial state.
package validation
