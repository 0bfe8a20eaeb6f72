package cmd

import "github.com/ardnew/scenic/pkg"

var (
	ErrWriteConfig       = pkg.NewError("write configuration file")
	ErrFileExists        = pkg.NewError("file exists (use --force to overwrite)")
	ErrInvalidAssignment = pkg.NewError("invalid assignment (want name=expr)")
	ErrNoDocument        = pkg.NewError("document not found")
	ErrMarshal           = pkg.NewError("marshal output")
	ErrSource            = pkg.NewError("invalid source expression")
)
