package errors

import crdb "github.com/cockroachdb/errors"

// Re-exported constructors and wrappers from github.com/cockroachdb/errors.
var (
	New         = crdb.New
	Newf        = crdb.Newf
	Errorf      = crdb.Errorf
	Wrap        = crdb.Wrap
	Wrapf       = crdb.Wrapf
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	GetAllHints = crdb.GetAllHints
	Mark        = crdb.Mark
	Is          = crdb.Is
	As          = crdb.As
	Unwrap      = crdb.Unwrap
	Join        = crdb.Join
)
