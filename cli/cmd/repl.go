package cmd

import (
	"context"

	"github.com/ardnew/dataindex/cli/cmd/repl"
	"github.com/ardnew/dataindex/log"
)

// Repl starts an interactive session for browsing the index.
type Repl struct {
	History string `default:"${cache}" help:"Directory holding the REPL history file" type:"path"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	idx, err := indexFrom(ctx)
	if err != nil {
		return err
	}

	return repl.Run(ctx, idx, scopeFrom(ctx), r.History, log.Default())
}
