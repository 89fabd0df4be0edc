package repl

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/dataindex/index"
	"github.com/ardnew/dataindex/log"
	"github.com/ardnew/dataindex/markup"
)

const defaultEditor = "vi"

// editCommand implements [tea.ExecCommand]. It writes the index as markup
// to a temporary file, opens $EDITOR on it, and ingests the result into a
// new index with the same policy. On an ingestion error the user may edit
// again; declining fails with [ErrEditDeclined].
type editCommand struct {
	idx     *index.Index
	ctxFunc func() context.Context
	logger  log.Logger
	result  *index.Index
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func (c *editCommand) SetStdin(r io.Reader)  { c.stdin = r }
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-ingest-retry loop.
func (c *editCommand) Run() error {
	ctx := c.ctxFunc()

	var buf bytes.Buffer
	if err := c.idx.FormatMarkup(ctx, &buf); err != nil {
		return err
	}

	f, err := os.CreateTemp("", "dataindex-repl-*.xml")
	if err != nil {
		return err
	}

	path := f.Name()
	defer os.Remove(path)

	if err := f.Close(); err != nil {
		return err
	}

	content := buf.Bytes()

	for {
		if err := os.WriteFile(path, content, 0o600); err != nil {
			return err
		}

		if err := c.runEditor(ctx, path); err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}

		next := index.New(
			index.WithPolicy(c.idx.Policy()),
			index.WithLogger(c.logger),
			index.WithParser(markup.Parse),
		)

		ingestErr := next.IngestMarkup(ctx, string(data))

		c.logger.TraceContext(ctx, "editor ingest attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", ingestErr == nil),
		)

		if ingestErr == nil {
			c.result = next

			return nil
		}

		fmt.Fprintf(c.stderr, "\nerror: %s\n", ingestErr)
		fmt.Fprint(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "no":
			return ErrEditDeclined
		}

		content = data
	}
}

func (c *editCommand) runEditor(ctx context.Context, path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = c.stdin
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr

	return cmd.Run()
}
