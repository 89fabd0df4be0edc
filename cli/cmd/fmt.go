package cmd

import (
	"context"
	"log/slog"
)

// Fmt writes the whole index in the chosen format.
type Fmt struct {
	Markup Markup `cmd:"" default:"withargs" help:"Format as markup (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
}

// Markup writes the index as markup that ingests back to the same index.
type Markup struct{}

// Run executes the fmt markup command.
func (*Markup) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	idx, err := indexFrom(ctx)
	if err != nil {
		return err
	}

	if err := idx.FormatMarkup(ctx, outputFrom(ctx)); err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("format", "markup"))
	}

	return nil
}

// JSON writes the index as nested JSON objects.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`
}

// Run executes the fmt json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	idx, err := indexFrom(ctx)
	if err != nil {
		return err
	}

	if err := idx.FormatJSON(ctx, outputFrom(ctx), j.Indent); err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("format", "json"))
	}

	return nil
}

// YAML writes the index as YAML, keeping container child order.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`
}

// Run executes the fmt yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	idx, err := indexFrom(ctx)
	if err != nil {
		return err
	}

	if err := idx.FormatYAML(ctx, outputFrom(ctx), y.Indent); err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("format", "yaml"))
	}

	return nil
}
