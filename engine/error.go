package engine

import "github.com/ardnew/scenic/pkg"

var (
	ErrUnknownFunction   = pkg.NewError("unidentified function")
	ErrDuplicateVariable = pkg.NewError("variable defined more than once")
	ErrConstruct         = pkg.NewError("entity construction failed")
	ErrTypeShape         = pkg.NewError("argument shape does not match its type")
	ErrCycle             = pkg.NewError("cyclic definition")
	ErrRegister          = pkg.NewError("invalid function descriptor")
	ErrHostSource        = pkg.NewError("host source does not compile")
)

var (
	errMissingConstructor = pkg.NewError("missing constructor")
	errDuplicateFunction  = pkg.NewError("function already registered")
)
