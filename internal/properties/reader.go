package properties

import (
	"context"

	"golang.org/x/text/encoding"

	"github.com/scan-io-git/propusage/internal/observe"
	"github.com/scan-io-git/propusage/pkg/shared"
	sharederrors "github.com/scan-io-git/propusage/pkg/shared/errors"
	"github.com/scan-io-git/propusage/pkg/shared/files"
)

// Reader reads definitions files into an Index.
type Reader struct {
	charset encoding.Encoding
	threads int
	logger  observe.Logger
}

// NewReader creates a Reader decoding files with charset. threads bounds concurrent file reads.
func NewReader(charset encoding.Encoding, threads int, logger observe.Logger) *Reader {
	return &Reader{
		charset: charset,
		threads: threads,
		logger:  observe.OrNop(logger),
	}
}

// ReadFile reads the definitions of a single file.
func (r *Reader) ReadFile(path string) ([]Definition, error) {
	r.logger.Debug("reading property file", "file", path)
	lines, err := files.ReadLines(path, r.charset)
	if err != nil {
		return nil, sharederrors.WrapIO(path, err)
	}

	defs := ParseLines(path, lines)
	for _, def := range defs {
		r.logger.Trace("property definition", "key", def.Key, "file", def.File, "line", def.Line)
	}
	return defs, nil
}

// ReadFiles reads every file and groups the definitions by key.
// Any unreadable file fails the whole read and no partial Index is returned.
func (r *Reader) ReadFiles(ctx context.Context, paths []string) (*Index, error) {
	perFile := make([][]Definition, len(paths))
	err := shared.ForEachWithBoundedGoroutines(ctx, r.threads, paths, func(_ context.Context, i int, path string) error {
		defs, err := r.ReadFile(path)
		if err != nil {
			return err
		}
		perFile[i] = defs
		return nil
	})
	if err != nil {
		return nil, err
	}

	idx := NewIndex()
	for _, defs := range perFile {
		for _, def := range defs {
			idx.Add(def)
		}
	}
	r.logger.Debug("property files read", "files", len(paths), "keys", idx.Len())
	return idx, nil
}
