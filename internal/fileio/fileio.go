package fileio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

// gzipMagic is the two-byte header of every gzip member (RFC 1952).
var gzipMagic = []byte{0x1f, 0x8b}

// readCloser couples a decoded reader with the close functions of every
// layer beneath it, closed innermost first.
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var errs []error
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Open opens path for reading. If the content starts with the gzip magic
// bytes it is decompressed on the fly. The caller must Close the result.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(f)
	head, err := br.Peek(len(gzipMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		_ = f.Close()
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if len(head) == len(gzipMagic) && head[0] == gzipMagic[0] && head[1] == gzipMagic[1] {
		zr, err := pgzip.NewReader(br)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to open gzip stream in %s: %w", path, err)
		}
		return &readCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	}

	return &readCloser{Reader: br, closers: []io.Closer{f}}, nil
}

// IsGzipPath reports whether path names a file that Create will compress.
func IsGzipPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".gz")
}

// writeCloser buffers writes and flushes every layer on Close.
type writeCloser struct {
	buf  *bufio.Writer
	zw   *pgzip.Writer
	file *os.File
}

func (w *writeCloser) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

// Close flushes the buffer, finishes the gzip stream if any, and closes
// the file. The file is closed even if an earlier step fails.
func (w *writeCloser) Close() error {
	var errs []error
	if err := w.buf.Flush(); err != nil {
		errs = append(errs, err)
	}
	if w.zw != nil {
		if err := w.zw.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := w.file.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Create creates or truncates path for writing. Paths ending in ".gz" are
// gzip-compressed. The caller must Close the result and check its error:
// buffered data only reaches the disk on Close.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := &writeCloser{file: f}
	if IsGzipPath(path) {
		w.zw = pgzip.NewWriter(f)
		w.buf = bufio.NewWriter(w.zw)
	} else {
		w.buf = bufio.NewWriter(f)
	}
	return w, nil
}
