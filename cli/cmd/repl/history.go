package repl

import (
	"bufio"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/zeebo/xxh3"
)

const baseHistory = "history.utf8"

// History is the list of submitted input lines, oldest first, persisted one
// line per entry. Resubmitting a line moves it to the end instead of adding
// a duplicate.
type History struct {
	path    string
	entries []string
	index   map[uint64]int
	mu      sync.RWMutex
}

// NewHistory returns a History persisted at path. An empty path keeps the
// history in memory only.
func NewHistory(path string) *History {
	return &History{path: path, index: make(map[uint64]int)}
}

// Load replaces the entries with the contents of the history file. A missing
// file is not an error.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.path == "" {
		return nil
	}

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.entries = h.entries[:0]
	clear(h.index)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			h.push(line)
		}
	}

	return scanner.Err()
}

// Add appends line, dropping any earlier copy of it.
func (h *History) Add(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return nil
	}

	if h.push(line) {
		return h.rewrite()
	}

	return h.append(line)
}

// push appends line and reports whether an earlier copy was removed.
// Must be called with h.mu held.
func (h *History) push(line string) (moved bool) {
	key := xxh3.HashString(line)

	if i, ok := h.index[key]; ok && h.entries[i] == line {
		h.entries = slices.Delete(h.entries, i, i+1)
		for j := i; j < len(h.entries); j++ {
			h.index[xxh3.HashString(h.entries[j])] = j
		}

		moved = true
	}

	h.index[key] = len(h.entries)
	h.entries = append(h.entries, line)

	return moved
}

// Entry returns the entry at i, 0 being the oldest.
func (h *History) Entry(i int) (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return "", ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}

func (h *History) append(line string) error {
	if h.path == "" {
		return nil
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(line + "\n")

	return err
}

func (h *History) rewrite() error {
	if h.path == "" {
		return nil
	}

	var b strings.Builder
	for _, e := range h.entries {
		b.WriteString(e)
		b.WriteByte('\n')
	}

	return os.WriteFile(h.path, []byte(b.String()), 0o600)
}
