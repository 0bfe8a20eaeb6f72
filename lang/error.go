package lang

import "github.com/ardnew/scenic/pkg"

var (
	ErrParse            = pkg.NewError("parse error")
	ErrExpectedFunction = pkg.NewError("expected function name")
	ErrUnknownFunction  = pkg.NewError("unidentified function")
	ErrTooManyArgs      = pkg.NewError("too many arguments")
	ErrUnmatchedBrace   = pkg.NewError("mismatched braces")
	ErrUnexpectedEOF    = pkg.NewError("unexpected end of expression")
	ErrTrailingText     = pkg.NewError("unexpected text after definition")
)
