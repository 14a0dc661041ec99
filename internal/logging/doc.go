// Package logging provides structured logging for the fieldcheck CLI using slog.
//
// Loggers write either JSON or a compact terminal format produced by
// [Handler], which colors levels on terminals and masks the values of
// sensitive attributes such as passwords. A [LevelTrace] level below Debug
// records individual validation runs; [LevelFromVerbosity] maps repeated -v
// flags onto levels.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(2),
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Debug("form loaded", "form", "signup")
//
// # Testing
//
// [ForTest] routes output through t.Log so it only shows for failing tests.
package logging
