package helpers

import (
	"os"
	"sync"
	"testing"

	"github.com/spf13/afero"
)

// CountingFs is an in-memory filesystem that counts how often each file is
// opened for reading
type CountingFs struct {
	afero.Fs

	mu    sync.Mutex
	opens map[string]int
}

// NewCountingFs creates a new counting filesystem backed by afero.MemMapFs
func NewCountingFs() *CountingFs {
	return &CountingFs{
		Fs:    afero.NewMemMapFs(),
		opens: make(map[string]int),
	}
}

// Open records the read and delegates to the wrapped filesystem
func (c *CountingFs) Open(name string) (afero.File, error) {
	c.record(name)
	return c.Fs.Open(name)
}

// OpenFile records read-only opens and delegates to the wrapped filesystem
func (c *CountingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR) == 0 {
		c.record(name)
	}
	return c.Fs.OpenFile(name, flag, perm)
}

func (c *CountingFs) record(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opens[name]++
}

// Reads returns how often name was opened for reading
func (c *CountingFs) Reads(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opens[name]
}

// TotalReads returns the number of read opens across all files
func (c *CountingFs) TotalReads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, n := range c.opens {
		total += n
	}
	return total
}

// WriteFile stores content at path without counting it as a read
func (c *CountingFs) WriteFile(t testing.TB, path string, content string) {
	t.Helper()
	if err := afero.WriteFile(c.Fs, path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
