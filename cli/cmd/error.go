package cmd

import "github.com/ardnew/dataindex/pkg"

var (
	ErrNoSource    = pkg.NewError("no source input (use --source)")
	ErrLoadSource  = pkg.NewError("load source")
	ErrWriteOutput = pkg.NewError("write output")
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
)
