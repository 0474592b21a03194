// Package jsonfile stores each slot as <dir>/<name>.json. Writes go to a
// temporary file that is renamed over the target, so a crash never leaves a
// half-written collection behind. Locking is per process only.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Slots is a directory-backed slot backend.
type Slots struct {
	dir string
	mu  sync.Mutex
}

// NewSlots creates the data directory if needed.
func NewSlots(dir string) (*Slots, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &Slots{dir: dir}, nil
}

func (f *Slots) path(name string) string {
	return filepath.Join(f.dir, name+".json")
}

func (f *Slots) read(name string) ([]byte, error) {
	data, err := os.ReadFile(f.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

func (f *Slots) Load(_ context.Context, name string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read(name)
}

func (f *Slots) Mutate(_ context.Context, name string, fn func([]byte) ([]byte, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.read(name)
	if err != nil {
		return err
	}
	out, err := fn(current)
	if err != nil {
		return err
	}
	return f.write(name, out)
}

func (f *Slots) write(name string, data []byte) error {
	tmp, err := os.CreateTemp(f.dir, name+"-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path(name))
}

// Ping checks that the data directory is still there.
func (f *Slots) Ping(context.Context) error {
	_, err := os.Stat(f.dir)
	return err
}
