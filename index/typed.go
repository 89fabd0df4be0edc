package index

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ardnew/dataindex/value"
)

// ValueOf resolves name from scope and returns its native value as T.
// A value of a different kind fails with [ErrKindMismatch].
func ValueOf[T value.Native](idx *Index, name, scope string) (T, error) {
	var zero T

	v, err := idx.Get(name, scope)
	if err != nil {
		return zero, err
	}

	t, ok := v.Native().(T)
	if !ok {
		return zero, ErrKindMismatch.With(
			slog.String("name", name),
			slog.String("scope", scope),
			slog.String("type", v.Kind().String()),
			slog.String("want", fmt.Sprintf("%T", zero)),
		)
	}

	return t, nil
}

// ValueOr is like [ValueOf] but returns def instead of [ErrNotFound].
func ValueOr[T value.Native](idx *Index, name string, def T, scope string) (T, error) {
	t, err := ValueOf[T](idx, name, scope)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}

	return t, err
}
