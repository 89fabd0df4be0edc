package index

import (
	"context"
	"log/slog"
	"maps"
	"os"

	"github.com/ardnew/mung"
	"github.com/expr-lang/expr"
)

// builtins are available to every expression and shadowed by entries of
// the same name.
var builtins = map[string]any{
	"paths": map[string]any{
		"prefix":   pathsPrefix,
		"prefixif": pathsPrefixIf,
	},
}

// Env returns the expression environment visible from scope. Every entry
// reachable by a short name from scope appears under that name, inner
// scopes shadowing outer ones. Containers appear as nested maps.
func (idx *Index) Env(scope string) map[string]any {
	env := maps.Clone(builtins)

	for _, root := range idx.Roots() {
		env[Base(root)] = idx.native(root)
	}

	segs := segments(scope)

	for n := 1; n <= len(segs); n++ {
		fqn := qualify(segs[:n]...)
		if _, ok := idx.entries[fqn]; !ok {
			continue
		}

		if m, ok := idx.native(fqn).(map[string]any); ok {
			maps.Copy(env, m)
		}
	}

	return env
}

// Eval evaluates an expression against [Index.Env] for scope.
//
//	idx.Eval(ctx, "height * 2", "stanley/stella") // 9.0
func (idx *Index) Eval(ctx context.Context, source, scope string) (any, error) {
	env := idx.Env(scope)

	program, err := expr.Compile(source, expr.Env(env))
	if err != nil {
		return nil, ErrExprCompile.Wrap(err).With(slog.String("source", source))
	}

	result, err := expr.Run(program, env)
	if err != nil {
		return nil, ErrExprEvaluate.Wrap(err).With(slog.String("source", source))
	}

	idx.logger.TraceContext(ctx, "evaluated",
		slog.String("source", source),
		slog.String("scope", scope),
		slog.Any("result", result),
	)

	return result, nil
}

// pathsPrefix prepends items to a search-path list, such as a string entry
// holding shader or plugin directories.
func pathsPrefix(list string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}

// pathsPrefixIf is like pathsPrefix but keeps only items accepted by
// predicate.
func pathsPrefixIf(
	list string,
	predicate func(string) bool,
	prefix ...string,
) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(predicate),
	).String()
}
