package cmd

import (
	"context"
	"fmt"
	"log/slog"
)

// Eval evaluates an expression in which every name visible from the current
// scope is a variable.
type Eval struct {
	Expr string `arg:"" help:"Expression to evaluate, e.g. 'height * 2'" name:"expr"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	idx, err := indexFrom(ctx)
	if err != nil {
		return err
	}

	result, err := idx.Eval(ctx, e.Expr, scopeFrom(ctx))
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(outputFrom(ctx), result); err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("command", "eval"))
	}

	return nil
}
