// Package procfs reads the kernel networking facts exposed under /proc and
// /sys. Each reader parses exactly one file and has no knowledge of the
// others; joining them is left to the callers.
package procfs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrFormat marks a structural mismatch in a kernel file, e.g. a
	// /proc/net/snmp value line that does not match its header.
	ErrFormat = errors.New("unexpected kernel file format")

	// ErrUnknownTCPState is returned for kernel TCP state codes with no MIB mapping.
	ErrUnknownTCPState = errors.New("unknown tcp state")
)

// FormatError describes where a kernel file stopped making sense.
type FormatError struct {
	Path   string
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

func formatErrorf(path string, line int, format string, args ...any) error {
	return &FormatError{Path: path, Line: line, Reason: fmt.Sprintf(format, args...)}
}

// FS reads kernel files relative to configurable proc and sys roots, so
// tests can point it at a fixture tree.
type FS struct {
	procRoot string
	sysRoot  string
	timeout  time.Duration
}

func New(procRoot, sysRoot string, timeout time.Duration) *FS {
	return &FS{
		procRoot: procRoot,
		sysRoot:  sysRoot,
		timeout:  timeout,
	}
}

func (fs *FS) procPath(elem ...string) string {
	return filepath.Join(append([]string{fs.procRoot}, elem...)...)
}

func (fs *FS) sysPath(elem ...string) string {
	return filepath.Join(append([]string{fs.sysRoot}, elem...)...)
}

type result[T any] struct {
	val T
	err error
}

// bounded runs op, giving up once ctx or the configured read timeout
// expires. An expired call is reported like any other failure on path.
func bounded[T any](ctx context.Context, fs *FS, path string, op func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if fs.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, fs.timeout)
		defer cancel()
	}

	ch := make(chan result[T], 1)
	go func() {
		v, err := op()
		ch <- result[T]{val: v, err: err}
	}()

	select {
	case <-ctx.Done():
		return zero, fmt.Errorf("failed to read %s: %w", path, ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return zero, fmt.Errorf("failed to read %s: %w", path, r.err)
		}
		return r.val, nil
	}
}

func (fs *FS) readFile(ctx context.Context, path string) ([]byte, error) {
	return bounded(ctx, fs, path, func() ([]byte, error) { return os.ReadFile(path) })
}

// exists stats path under the same bound as reads. A missing file is not
// an error.
func (fs *FS) exists(ctx context.Context, path string) (bool, error) {
	_, err := bounded(ctx, fs, path, func() (os.FileInfo, error) { return os.Stat(path) })
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

func (fs *FS) readString(ctx context.Context, path string) (string, error) {
	data, err := fs.readFile(ctx, path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (fs *FS) readInt(ctx context.Context, path string) (int64, error) {
	s, err := fs.readString(ctx, path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, formatErrorf(path, 0, "not an integer: %q", s)
	}
	return v, nil
}

func (fs *FS) readUint(ctx context.Context, path string) (uint64, error) {
	s, err := fs.readString(ctx, path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, formatErrorf(path, 0, "not an unsigned integer: %q", s)
	}
	return v, nil
}

// parseCounter parses a kernel counter. Values beyond int64 keep their bit
// pattern so callers converting back to uint64 see the original value.
func parseCounter(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return v, nil
	}
	u, uerr := strconv.ParseUint(s, 10, 64)
	if uerr != nil {
		return 0, err
	}
	return int64(u), nil
}
