package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dataindex/index"
	"github.com/ardnew/dataindex/log"
	"github.com/ardnew/dataindex/value"
)

// resolve returns a [kong.ConfigurationLoader] for markup configuration
// files. The children of the container name supply flag values:
//
//	<config type="container">
//	  <log-level type="string">debug</log-level>
//	  <log_format type="string">json</log_format>
//	  <log-pretty type="string">false</log-pretty>
//	</config>
//
// Element names may spell flags with hyphens or underscores. Command-line
// flags override configuration values. A file that cannot be ingested or
// has no such container resolves nothing.
func resolve(
	ctx context.Context,
	name string,
) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		idx := index.New(index.WithPolicy(index.NeverOverwrite))

		if err := idx.IngestReader(ctx, r); err != nil {
			log.WarnContext(ctx, "ignoring configuration",
				slog.Any("error", err),
			)

			return config{}, nil
		}

		return configFrom(idx, name), nil
	}
}

// configFrom collects the children of the container name in idx.
func configFrom(idx *index.Index, name string) config {
	parent, err := idx.Lookup(index.Canonical(name))
	if err != nil {
		return config{}
	}

	c, ok := parent.(*value.Container)
	if !ok {
		return config{}
	}

	cfg := make(config, c.Len())

	for _, child := range c.Children() {
		v, err := idx.Lookup(index.Join(name, child))
		if err != nil {
			continue
		}

		if s, ok := flagString(v); ok {
			cfg[child] = s
		}
	}

	return cfg
}

// flagString renders v the way kong parses flag values. Containers have no
// flag equivalent.
func flagString(v value.Value) (string, bool) {
	switch x := v.(type) {
	case *value.VecFloat:
		elems := x.Get()
		parts := make([]string, len(elems))

		for i, f := range elems {
			parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}

		return strings.Join(parts, ","), true

	case *value.Container:
		return "", false

	default:
		return v.Payload(), true
	}
}

// config implements [kong.Resolver] over flag values keyed by name.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if v, ok := r[flag.Name]; ok {
		return v, nil
	}

	if v, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return v, nil
	}

	return nil, nil
}
