package session

import "github.com/ardnew/scenic/pkg"

var (
	ErrHeader = pkg.NewError("malformed header")
	ErrFormat = pkg.NewError("unsupported report format")
)
