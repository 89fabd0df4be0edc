package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/dataindex/index"
	"github.com/ardnew/dataindex/pkg"
	"github.com/ardnew/dataindex/value"
)

// Get prints the value a name resolves to from the current scope.
type Get struct {
	Name string `arg:"" help:"Name to resolve" name:"name"`

	Suggest int `default:"${suggest}" help:"Number of similar names to report when the name is not found (0 disables)"`
}

// Run executes the get command.
func (g *Get) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	idx, err := indexFrom(ctx)
	if err != nil {
		return err
	}

	v, err := idx.Get(g.Name, scopeFrom(ctx))
	if err != nil {
		return withSuggestions(err, idx, g.Name, g.Suggest)
	}

	return writeValue(outputFrom(ctx), v)
}

// writeValue prints a leaf's payload, or a container's children one per
// line.
func writeValue(w io.Writer, v value.Value) error {
	var text string

	if c, ok := v.(*value.Container); ok {
		text = strings.Join(c.Children(), "\n")
	} else {
		text = v.Payload()
	}

	if _, err := fmt.Fprintln(w, text); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// withSuggestions attaches up to n names similar to name to a not-found
// error. A non-positive n attaches nothing.
func withSuggestions(err error, idx *index.Index, name string, n int) error {
	var perr *pkg.Error
	if n <= 0 || !errors.Is(err, index.ErrNotFound) || !errors.As(err, &perr) {
		return err
	}

	similar := idx.Suggest(name, n)
	if len(similar) == 0 {
		return err
	}

	return perr.With(slog.Any("suggest", similar))
}

// Resolve prints the fully-qualified name a name resolves to.
type Resolve struct {
	Name string `arg:"" help:"Name to resolve" name:"name"`
}

// Run executes the resolve command.
func (r *Resolve) Run(ctx context.Context) error {
	idx, err := indexFrom(ctx)
	if err != nil {
		return err
	}

	scope := scopeFrom(ctx)

	fqn, ok := idx.Resolve(r.Name, scope)
	if !ok || !idx.Has(fqn, "") {
		return withSuggestions(
			index.ErrNotFound.With(
				slog.String("name", r.Name),
				slog.String("scope", scope),
			),
			idx, r.Name, index.DefaultSuggestions,
		)
	}

	if _, err := fmt.Fprintln(outputFrom(ctx), index.Canonical(fqn)); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// Ls lists fully-qualified names, or with --visible the short names that
// resolve from the current scope.
type Ls struct {
	Prefix  string `arg:"" help:"Only list names under this prefix" name:"prefix" optional:""`
	Visible bool   `help:"List short names visible from the current scope" short:"v"`
}

// Run executes the ls command.
func (l *Ls) Run(ctx context.Context) error {
	idx, err := indexFrom(ctx)
	if err != nil {
		return err
	}

	var names []string

	if l.Visible {
		names = idx.Visible(scopeFrom(ctx))
	} else {
		names = idx.Names()
	}

	prefix := l.Prefix
	if prefix != "" && !l.Visible {
		prefix = index.Canonical(prefix)
	}

	w := outputFrom(ctx)

	for _, name := range names {
		if !underPrefix(name, prefix) {
			continue
		}

		if _, err := fmt.Fprintln(w, name); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}

// underPrefix reports whether name is prefix or nested beneath it.
func underPrefix(name, prefix string) bool {
	if prefix == "" || name == prefix {
		return true
	}

	return strings.HasPrefix(name, strings.TrimSuffix(prefix, index.Separator)+index.Separator)
}

// Describe prints the type description of a name, <name type="T"/>.
type Describe struct {
	Name string `arg:"" help:"Name to describe" name:"name"`
}

// Run executes the describe command.
func (d *Describe) Run(ctx context.Context) error {
	idx, err := indexFrom(ctx)
	if err != nil {
		return err
	}

	desc, err := idx.Describe(d.Name, scopeFrom(ctx))
	if err != nil {
		return withSuggestions(err, idx, d.Name, index.DefaultSuggestions)
	}

	if _, err := fmt.Fprintln(outputFrom(ctx), desc); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// Serialize prints the markup fragment for a name and, for containers,
// everything nested beneath it.
type Serialize struct {
	Name string `arg:"" help:"Name to serialize" name:"name"`
}

// Run executes the serialize command.
func (s *Serialize) Run(ctx context.Context) error {
	idx, err := indexFrom(ctx)
	if err != nil {
		return err
	}

	text, err := idx.Serialize(s.Name, scopeFrom(ctx))
	if err != nil {
		return withSuggestions(err, idx, s.Name, index.DefaultSuggestions)
	}

	if _, err := fmt.Fprintln(outputFrom(ctx), text); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
