package source

import (
	"bufio"
	"compress/gzip"
	stdErrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"persona-lab/dataset"
	"persona-lab/errors"

	"github.com/gabriel-vasile/mimetype"
)

const sniffLen = 3072

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r readCloser) Close() error {
	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c.Close())
	}
	return stdErrors.Join(errs...)
}

// Open returns a reader over the triples stored at path.
// A missing file yields ErrInputNotFound. Gzip content is detected from its
// magic bytes and decompressed on the fly.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		if stdErrors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errors.ErrInputNotFound, path)
		}
		return nil, err
	}

	buffered := bufio.NewReaderSize(f, sniffLen)
	head, err := buffered.Peek(sniffLen)
	if err != nil && !stdErrors.Is(err, io.EOF) {
		_ = f.Close()
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if mimetype.Detect(head).Is("application/gzip") {
		gz, err := gzip.NewReader(buffered)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to open gzip stream %s: %w", path, err)
		}
		return readCloser{Reader: gz, closers: []io.Closer{gz, f}}, nil
	}
	return readCloser{Reader: buffered, closers: []io.Closer{f}}, nil
}

// LoadIdentifiers opens path and collects the subjects typed as typeIRI.
func LoadIdentifiers(path, typeIRI string) (map[string]struct{}, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ParseIdentifiers(r, typeIRI)
}

// LoadMappings opens path and collects the (object, subject) pairs of predicate.
func LoadMappings(path, predicate string) ([]dataset.Mapping, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ParseMappings(r, predicate)
}
