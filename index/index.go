package index

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ardnew/dataindex/log"
	"github.com/ardnew/dataindex/markup"
	"github.com/ardnew/dataindex/value"
)

// DefaultCacheSize is the number of resolved names remembered by an Index.
const DefaultCacheSize = 256

// ParseFunc parses markup text. [markup.Parse] and [markup.ParseCached]
// both satisfy it.
type ParseFunc func(
	ctx context.Context,
	text string,
	opts ...markup.Option,
) (*markup.Document, error)

// Index maps fully-qualified names to typed values.
type Index struct {
	entries map[string]value.Value
	policy  Policy
	logger  log.Logger

	cacheSize int
	resolved  *lru.Cache[resolveKey, string]

	parse      ParseFunc
	markupOpts []markup.Option
}

type resolveKey struct {
	name, scope string
}

// Option configures an Index.
type Option func(*Index)

// WithPolicy sets the overwrite policy.
func WithPolicy(p Policy) Option {
	return func(idx *Index) {
		idx.policy = p
	}
}

// WithLogger sets the logger used for insertion and resolution
// diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(idx *Index) {
		idx.logger = logger
	}
}

// WithCacheSize sets the number of resolved names remembered. Zero
// disables the cache.
func WithCacheSize(n int) Option {
	return func(idx *Index) {
		idx.cacheSize = max(n, 0)
	}
}

// WithParser sets the function used to parse ingested markup.
func WithParser(fn ParseFunc) Option {
	return func(idx *Index) {
		if fn != nil {
			idx.parse = fn
		}
	}
}

// WithMarkupOptions sets options passed to the parser on every ingestion.
func WithMarkupOptions(opts ...markup.Option) Option {
	return func(idx *Index) {
		idx.markupOpts = append(idx.markupOpts, opts...)
	}
}

// New returns an empty Index.
func New(opts ...Option) *Index {
	idx := &Index{
		entries:   make(map[string]value.Value),
		policy:    DefaultPolicy,
		cacheSize: DefaultCacheSize,
		parse:     markup.ParseCached,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(idx)
		}
	}

	if idx.cacheSize > 0 {
		// lru.New only fails for a non-positive size.
		idx.resolved, _ = lru.New[resolveKey, string](idx.cacheSize)
	}

	idx.markupOpts = append(idx.markupOpts, markup.WithLogger(idx.logger))

	return idx
}

// Policy returns the overwrite policy.
func (idx *Index) Policy() Policy { return idx.policy }

// Len returns the number of entries.
func (idx *Index) Len() int { return len(idx.entries) }

// Names returns every fully-qualified name in sorted order.
func (idx *Index) Names() []string {
	return slices.Sorted(maps.Keys(idx.entries))
}

// Resolve returns the fully-qualified name that name refers to from scope.
//
// A name beginning with "/" is returned unchanged without consulting the
// index. Otherwise each enclosing scope is tried, from scope itself down
// to the root, and the first existing entry wins. Resolve reports false if
// no scope defines name.
func (idx *Index) Resolve(name, scope string) (string, bool) {
	if IsQualified(name) {
		return name, true
	}

	rel := segments(name)
	if len(rel) == 0 {
		return "", false
	}

	key := resolveKey{name: name, scope: scope}

	if idx.resolved != nil {
		if fqn, ok := idx.resolved.Get(key); ok {
			return fqn, true
		}
	}

	scopeSegs := segments(scope)
	trial := make([]string, 0, len(scopeSegs)+len(rel))

	for n := len(scopeSegs); n >= 0; n-- {
		trial = append(append(trial[:0], scopeSegs[:n]...), rel...)
		fqn := qualify(trial...)

		if _, ok := idx.entries[fqn]; ok {
			idx.logger.Trace("resolved",
				slog.String("name", name),
				slog.String("scope", scope),
				slog.String("fqn", fqn),
			)

			if idx.resolved != nil {
				idx.resolved.Add(key, fqn)
			}

			return fqn, true
		}
	}

	return "", false
}

// Lookup returns a copy of the value stored under the fully-qualified
// name fqn.
func (idx *Index) Lookup(fqn string) (value.Value, error) {
	v, ok := idx.entries[Canonical(fqn)]
	if !ok {
		return nil, ErrNotFound.With(slog.String("name", fqn))
	}

	return v.Clone(), nil
}

// Get resolves name from scope and returns a copy of its value.
func (idx *Index) Get(name, scope string) (value.Value, error) {
	fqn, ok := idx.Resolve(name, scope)
	if !ok {
		return nil, ErrNotFound.With(
			slog.String("name", name),
			slog.String("scope", scope),
		)
	}

	v, err := idx.Lookup(fqn)
	if err != nil {
		return nil, ErrNotFound.With(
			slog.String("name", name),
			slog.String("scope", scope),
		)
	}

	return v, nil
}

// Has reports whether name resolves from scope.
func (idx *Index) Has(name, scope string) bool {
	fqn, ok := idx.Resolve(name, scope)
	if !ok {
		return false
	}

	_, ok = idx.entries[Canonical(fqn)]

	return ok
}

// Insert stores v under name, which is taken as fully qualified whether or
// not it begins with "/".
//
// If the name is new, every missing ancestor is created as a container and
// each ancestor records its child. An ancestor that exists and is not a
// container fails with [ErrKindMismatch].
//
// If the name exists, a container merges into an existing container and
// Insert reports true. Otherwise the [Policy] decides: [Forbid] fails with
// [ErrOverwriteForbidden], [AlwaysOverwrite] replaces the value in place
// and reports whether the replacement was accepted, [NeverOverwrite]
// reports false.
//
// Every segment of name must be usable as a markup element name, or Insert
// fails with [ErrInvalidName]. Strings holding characters markup cannot
// carry fail with [value.ErrInvalidPayload]. Strings that are empty after
// trimming are never stored; Insert reports false.
func (idx *Index) Insert(name string, v value.Value) (bool, error) {
	segs := segments(name)
	if len(segs) == 0 {
		return false, ErrInvalidName.With(slog.String("name", name))
	}

	for _, seg := range segs {
		if !validSegment(seg) {
			return false, ErrInvalidName.With(
				slog.String("name", name),
				slog.String("segment", seg),
			)
		}
	}

	if v == nil {
		return false, ErrKindMismatch.With(
			slog.String("name", name),
			slog.String("issue", "nil value"),
		)
	}

	if err := value.Check(v); err != nil {
		return false, err
	}

	fqn := qualify(segs...)

	if s, ok := v.(*value.String); ok && s.Empty() {
		idx.logger.Debug("rejected empty string", slog.String("name", fqn))

		return false, nil
	}

	if existing, ok := idx.entries[fqn]; ok {
		return idx.replace(fqn, existing, v)
	}

	if err := idx.link(segs); err != nil {
		return false, err
	}

	idx.entries[fqn] = v.Clone()

	if idx.resolved != nil {
		// A new name may shadow an earlier resolution.
		idx.resolved.Purge()
	}

	idx.logger.Trace("inserted",
		slog.String("name", fqn),
		slog.String("type", v.Kind().String()),
	)

	return true, nil
}

func (idx *Index) replace(fqn string, existing, v value.Value) (bool, error) {
	if c, ok := existing.(*value.Container); ok {
		if add, ok := v.(*value.Container); ok {
			n := c.Add(add.Children()...)

			idx.logger.Trace("merged container",
				slog.String("name", fqn),
				slog.Int("added", n),
			)

			return true, nil
		}
	}

	switch idx.policy {
	case AlwaysOverwrite:
		if !value.Assign(existing, v) {
			idx.logger.Warn("overwrite rejected",
				slog.String("name", fqn),
				slog.String("type", existing.Kind().String()),
				slog.String("with", v.Kind().String()),
			)

			return false, nil
		}

		idx.logger.Trace("overwrote", slog.String("name", fqn))

		return true, nil

	case NeverOverwrite:
		idx.logger.Trace("kept existing", slog.String("name", fqn))

		return false, nil

	default:
		return false, ErrOverwriteForbidden.With(
			slog.String("name", fqn),
			slog.String("type", existing.Kind().String()),
		)
	}
}

// link makes every proper ancestor of segs a container that lists its
// child. Nothing is modified unless all ancestors are containers or absent.
func (idx *Index) link(segs []string) error {
	for n := 1; n < len(segs); n++ {
		parent := qualify(segs[:n]...)

		if v, ok := idx.entries[parent]; ok && v.Kind() != value.KindContainer {
			return ErrKindMismatch.With(
				slog.String("name", qualify(segs...)),
				slog.String("parent", parent),
				slog.String("type", v.Kind().String()),
			)
		}
	}

	for n := 1; n < len(segs); n++ {
		parent := qualify(segs[:n]...)

		if v, ok := idx.entries[parent]; ok {
			v.(*value.Container).Add(segs[n])

			continue
		}

		idx.entries[parent] = value.NewContainer(segs[n])

		if idx.resolved != nil {
			idx.resolved.Purge()
		}
	}

	return nil
}

// AddInt inserts an integer value.
func (idx *Index) AddInt(name string, i int32) (bool, error) {
	return idx.Insert(name, value.NewInt(i))
}

// AddFloat inserts a float value.
func (idx *Index) AddFloat(name string, f float64) (bool, error) {
	return idx.Insert(name, value.NewFloat(f))
}

// AddString inserts a string value.
func (idx *Index) AddString(name, s string) (bool, error) {
	return idx.Insert(name, value.NewString(s))
}

// AddVecFloat inserts a float vector.
func (idx *Index) AddVecFloat(name string, elems ...float64) (bool, error) {
	return idx.Insert(name, value.NewVecFloat(elems...))
}

// AddContainer inserts a container, or merges children into an existing
// one.
func (idx *Index) AddContainer(name string, children ...string) (bool, error) {
	return idx.Insert(name, value.NewContainer(children...))
}
