package publisher

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cuemby/nsqops/pkg/nsqerr"
)

// openInput opens path for line-by-line reading, transparently
// decompressing gzip input (".gz" suffix) and treating "-" as standard
// input. The returned closer must be called once reading is done.
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nsqerr.New(nsqerr.KindIOFatal, fmt.Errorf("open input %s: %w", path, err))
	}

	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nsqerr.New(nsqerr.KindIOFatal, fmt.Errorf("init gzip reader for %s: %w", path, err))
		}
		return gzipReadCloser{gz: gz, f: f}, nil
	}

	return f, nil
}

// gzipReadCloser closes both the gzip stream and the underlying file.
type gzipReadCloser struct {
	gz *gzip.Reader
	f  *os.File
}

func (g gzipReadCloser) Read(p []byte) (int, error) { return g.gz.Read(p) }

func (g gzipReadCloser) Close() error {
	gzErr := g.gz.Close()
	fErr := g.f.Close()
	if gzErr != nil {
		return gzErr
	}
	return fErr
}

// countLines opens path and counts its newline-delimited lines, used to
// establish the true line-count upper bound for limit and the progress
// bar's total. Standard input can only be streamed once, so counting it
// up front would consume the very data the send loop needs to read
// afterward — countLines returns (-1, nil) for "-" and the send loop
// falls back to an unsized progress bar and an unbounded count cap.
func countLines(path string) (int, error) {
	if path == "-" {
		return -1, nil
	}

	r, err := openInput(path)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	for scanner.Scan() {
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, nsqerr.New(nsqerr.KindIOFatal, fmt.Errorf("count lines: %w", err))
	}
	return count, nil
}
