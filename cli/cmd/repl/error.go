package repl

import "github.com/ardnew/scenic/pkg"

var (
	ErrOutOfBounds       = pkg.NewError("index out of range")
	ErrEditDeclined      = pkg.NewError("decline edit")
	ErrUnknownCommand    = pkg.NewError("unknown command (try :help)")
	ErrUnknownExpression = pkg.NewError("unknown expression id")
	ErrMissingArgument   = pkg.NewError("missing argument")
)
