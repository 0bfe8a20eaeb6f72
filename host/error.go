package host

import "github.com/ardnew/scenic/pkg"

var (
	ErrRead         = pkg.NewError("read document")
	ErrDecode       = pkg.NewError("decode document")
	ErrEncode       = pkg.NewError("encode document")
	ErrCompile      = pkg.NewError("compile expression")
	ErrEvaluate     = pkg.NewError("evaluate expression")
	ErrVariableName = pkg.NewError("invalid variable name")
	ErrDuplicateID  = pkg.NewError("duplicate expression id")
)
