package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dataindex/index"
)

type (
	contextKey struct{}
	indexKey   struct{}
	scopeKey   struct{}
	outputKey  struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// WithIndex returns a new context.Context containing idx.
func WithIndex(ctx context.Context, idx *index.Index) context.Context {
	return context.WithValue(ctx, indexKey{}, idx)
}

// indexFrom returns the index stored by WithIndex, or [ErrNoSource] if
// there is none.
func indexFrom(ctx context.Context) (*index.Index, error) {
	idx, ok := ctx.Value(indexKey{}).(*index.Index)
	if !ok || idx == nil {
		return nil, ErrNoSource
	}

	return idx, nil
}

// WithScope returns a new context.Context containing the scope names are
// resolved from.
func WithScope(ctx context.Context, scope string) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

func scopeFrom(ctx context.Context) string {
	scope, _ := ctx.Value(scopeKey{}).(string)

	return scope
}

// WithOutput returns a new context.Context whose commands write to w
// instead of os.Stdout.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}
