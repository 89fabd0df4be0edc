package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

const historyFile = "history.utf8"

// historyEntry is a submitted line and the mode it was submitted in.
type historyEntry struct {
	Line string
	Mode inputMode
}

// History is the list of submitted lines, oldest first, persisted one per
// line with a mode prefix. Resubmitting a line moves it to the end.
type History struct {
	path    string
	entries []historyEntry
	mu      sync.RWMutex
}

// NewHistory returns a History stored in dir. An empty dir keeps history
// in memory only.
func NewHistory(dir string) *History {
	if dir == "" {
		return &History{}
	}

	return &History{path: filepath.Join(dir, historyFile)}
}

// Load replaces the entries with those in the history file. A missing
// file is not an error.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.path == "" {
		return nil
	}

	file, err := os.Open(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return err
	}
	defer file.Close()

	h.entries = h.entries[:0]

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if e, ok := parseEntry(scanner.Text()); ok {
			h.entries = append(h.entries, e)
		}
	}

	return scanner.Err()
}

// Add appends line, removing any earlier identical entry, and persists the
// history.
func (h *History) Add(line string, mode inputMode) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	e := historyEntry{Line: line, Mode: mode}

	if n := len(h.entries); n > 0 && h.entries[n-1] == e {
		return nil
	}

	h.entries = slices.DeleteFunc(h.entries, func(x historyEntry) bool { return x == e })
	h.entries = append(h.entries, e)

	return h.save()
}

// At returns the entry at i, oldest first.
func (h *History) At(i int) (historyEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return historyEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// save rewrites the history file. Must be called with h.mu held.
func (h *History) save() error {
	if h.path == "" {
		return nil
	}

	var b strings.Builder

	for _, e := range h.entries {
		b.WriteString(e.Mode.prefix())
		b.WriteString(e.Line)
		b.WriteByte('\n')
	}

	return os.WriteFile(h.path, []byte(b.String()), 0o600)
}

func parseEntry(text string) (historyEntry, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return historyEntry{}, false
	}

	for _, mode := range []inputMode{modeEval, modeCtrl} {
		if line, ok := strings.CutPrefix(text, mode.prefix()); ok {
			return historyEntry{Line: line, Mode: mode}, true
		}
	}

	return historyEntry{Line: text, Mode: modeEval}, true
}
