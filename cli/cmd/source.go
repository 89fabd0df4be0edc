package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/ardnew/dataindex/index"
	"github.com/ardnew/dataindex/log"
)

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// source is one markup input.
type source struct {
	name string
	r    io.Reader
}

// sources is an ordered, duplicate-free list of markup inputs. Stdin, if
// present, is always last.
type sources struct {
	list []source
}

// Len returns the number of inputs.
func (s *sources) Len() int { return len(s.list) }

// Close closes every input that is a file other than stdin.
func (s *sources) Close() error {
	var errs []error

	for _, src := range s.list {
		if f, ok := src.r.(*os.File); ok && f != os.Stdin {
			errs = append(errs, f.Close())
		}
	}

	return errors.Join(errs...)
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// openSources opens each path in order. Files named more than once, through
// any path or symlink, are opened once. Every "-" collapses into a single
// stdin input placed last. Paths that cannot be opened are logged and
// skipped.
func openSources(ctx context.Context, paths []string) *sources {
	var srcs sources

	seen := make(map[fileKey]struct{})

	stdinKey, hasStdinKey := fileKey{}, false
	if info, err := os.Stdin.Stat(); err == nil {
		stdinKey, hasStdinKey = makeFileKey(info)
	}

	stdin := false

	for _, path := range paths {
		if path == stdinSource {
			stdin = true

			continue
		}

		f, key, err := openUnique(path, seen)
		if err != nil {
			log.WarnContext(ctx, "skipping source",
				slog.String("path", path),
				slog.Any("error", err),
			)

			continue
		}

		if f == nil {
			log.DebugContext(ctx, "duplicate source", slog.String("path", path))

			continue
		}

		// Stdin may have been named as a regular path, e.g. /dev/stdin.
		if hasStdinKey && key == stdinKey {
			_ = f.Close()
			stdin = true

			continue
		}

		srcs.list = append(srcs.list, source{name: path, r: f})
	}

	if stdin {
		srcs.list = append(srcs.list, source{name: stdinSource, r: os.Stdin})
	}

	return &srcs
}

// openUnique opens the file at path if it has not been seen before. It
// returns a nil file and no error for a duplicate.
func openUnique(
	path string,
	seen map[fileKey]struct{},
) (*os.File, fileKey, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fileKey{}, err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fileKey{}, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fileKey{}, err
	}

	key, ok := makeFileKey(info)
	if ok {
		if _, dup := seen[key]; dup {
			return nil, key, nil
		}

		seen[key] = struct{}{}
	}

	f, err := os.Open(resolved)
	if err != nil {
		return nil, key, err
	}

	return f, key, nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: stat.Dev, ino: stat.Ino}, true
}

// Load builds an index from the markup files at paths, in order, with "-"
// read from stdin after every file. It fails with [ErrNoSource] if no path
// could be opened, and with [ErrLoadSource] at the first input that cannot
// be ingested.
func Load(
	ctx context.Context,
	paths []string,
	opts ...index.Option,
) (*index.Index, error) {
	srcs := openSources(ctx, paths)
	defer srcs.Close()

	if srcs.Len() == 0 {
		return nil, ErrNoSource
	}

	idx := index.New(opts...)

	for _, src := range srcs.list {
		if err := idx.IngestReader(ctx, src.r); err != nil {
			return nil, ErrLoadSource.Wrap(err).With(slog.String("source", src.name))
		}

		log.DebugContext(ctx, "loaded source",
			slog.String("source", src.name),
			slog.Int("entries", idx.Len()),
		)
	}

	return idx, nil
}
