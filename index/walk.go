package index

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/klauspost/readahead"

	"github.com/ardnew/dataindex/markup"
	"github.com/ardnew/dataindex/value"
)

// IngestMarkup parses text and inserts every element under scope (the
// root by default). Multiple scope arguments are joined.
//
// Elements with type="container", or with no type attribute and child
// elements, become containers whose children are ingested in the nested
// scope. Other elements are built by [value.New] from their type attribute
// (string if absent) and text, then inserted under the overwrite policy.
//
// Ingestion stops at the first error; entries inserted before it remain.
func (idx *Index) IngestMarkup(ctx context.Context, text string, scope ...string) error {
	doc, err := idx.parse(ctx, text, idx.markupOpts...)
	if err != nil {
		return err
	}

	return idx.Walk(ctx, doc.Root(), scope...)
}

// Walk inserts the children of node under scope.
func (idx *Index) Walk(ctx context.Context, node *markup.Node, scope ...string) error {
	return idx.walk(ctx, node, segments(Join(scope...)))
}

func (idx *Index) walk(ctx context.Context, node *markup.Node, scope []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for child := range node.All() {
		segs := append(slices.Clip(scope), segments(child.Name())...)
		fqn := qualify(segs...)

		typ, ok := child.Type()
		if !ok {
			typ = value.TagString
			if child.HasChildren() {
				typ = value.TagContainer
			}
		}

		if typ == value.TagContainer {
			names := make([]string, 0, len(child.Children()))
			for c := range child.All() {
				names = append(names, c.Name())
			}

			if _, err := idx.Insert(fqn, value.NewContainer(names...)); err != nil {
				return err
			}

			if err := idx.walk(ctx, child, segs); err != nil {
				return err
			}

			continue
		}

		v, err := value.New(typ, child.Text())
		if err != nil {
			idx.logger.WarnContext(ctx, "invalid element",
				slog.String("name", fqn),
				slog.Any("error", err),
			)

			return err
		}

		if _, err := idx.Insert(fqn, v); err != nil {
			return err
		}
	}

	return nil
}

// IngestReader reads all of r and ingests it as markup under scope.
func (idx *Index) IngestReader(ctx context.Context, r io.Reader, scope ...string) error {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		err := ErrReadInput.Wrap(err).With(slog.String("source", "reader"))

		idx.logger.WarnContext(ctx, "read failed", slog.Any("error", err))

		return err
	}

	idx.logger.TraceContext(ctx, "read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	return idx.IngestMarkup(ctx, string(data), scope...)
}

// IngestFile reads the file at path and ingests it at the root scope. A
// file that cannot be opened or read fails with [ErrReadInput]; the caller
// decides whether that is fatal.
func (idx *Index) IngestFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		err := ErrReadInput.Wrap(err).With(slog.String("path", path))

		idx.logger.WarnContext(ctx, "open failed", slog.Any("error", err))

		return err
	}
	defer f.Close()

	idx.logger.DebugContext(ctx, "ingesting file", slog.String("path", path))

	return idx.IngestReader(ctx, f)
}
