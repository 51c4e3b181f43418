package weather

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// OpenFile opens a local weather log. The format is chosen from the file
// name: ".parquet" for Parquet, anything else is a text table, gzip
// compressed when the name ends in ".gz".
func OpenFile(path string) (Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("open weather log: %w", err)
	}

	if isParquet(path) {
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("stat weather log: %w", err)
		}
		r, err := NewParquetReader(f, info.Size())
		if err != nil {
			f.Close()
			return nil, err
		}
		pr := r.(*parquetReader)
		pr.closers = append(pr.closers, f)
		return pr, nil
	}

	return OpenStream(f, path)
}

// OpenStream creates a weather reader from a stream such as an S3 object body.
// name is used only to pick the format, as in OpenFile. The reader takes
// ownership of rc and closes it.
func OpenStream(rc io.ReadCloser, name string) (Reader, error) {
	if isParquet(name) {
		return newParquetReaderFromStream(rc)
	}

	var reader io.Reader = rc
	closers := []io.Closer{rc}

	if strings.HasSuffix(strings.ToLower(name), ".gz") {
		gzr, err := gzip.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		closers = append(closers, gzr)
		reader = gzr
	}

	tr := NewTextReader(reader).(*textReader)
	tr.closers = closers
	return tr, nil
}

func isParquet(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".parquet")
}
