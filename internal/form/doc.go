// Package form loads declarative form definitions and builds validation
// aggregators from them.
//
// A definition lists a form's fields and, for each, the strategy that
// validates it: a regular expression, a list of rule expressions such as
// "min_length=3", or a go-playground/validator tag string. Definitions are
// read from YAML, TOML, JSON or Markdown documents with a YAML header.
//
//	def, err := form.LoadFile("signup.yaml")
//	values, err := form.LoadValues("answers.json")
//	f, err := form.Build(ctx, def, values)
//	ok, err := f.Aggregator.ValidateAll(ctx)
package form
