// Package artifact names and places the screenshots a run leaves behind.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Dir is an output directory for one run. Paths it hands out never repeat.
type Dir struct {
	root string

	mu   sync.Mutex
	used map[string]int
}

// New creates root if absent.
func New(root string) (*Dir, error) {
	if root == "" {
		return nil, fmt.Errorf("artifact dir is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &Dir{root: abs, used: map[string]int{}}, nil
}

// Root returns the absolute directory path.
func (d *Dir) Root() string { return d.root }

// Path returns the screenshot path for a checkpoint, <prefix>-<checkpoint>.png.
// A name already handed out in this run gets a -2, -3... suffix.
func (d *Dir) Path(prefix, checkpoint string) string {
	name := slug(prefix)
	if cp := slug(checkpoint); cp != "" {
		if name != "" {
			name += "-"
		}
		name += cp
	}
	if name == "" {
		name = "checkpoint"
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	candidate := name
	for n := d.used[name] + 1; d.used[candidate] > 0; n++ {
		candidate = fmt.Sprintf("%s-%d", name, n)
		d.used[name] = n
	}
	d.used[candidate]++
	return filepath.Join(d.root, candidate+".png")
}

// File returns a path for a non-screenshot file in the directory.
func (d *Dir) File(name string) string {
	return filepath.Join(d.root, name)
}

// Rel returns path relative to the working directory when it lies beneath
// it, else path unchanged.
func Rel(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	dash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
