// Package rescale enlarges uncompressed 24-bit BMP images by an integer
// factor, turning every source pixel into an n×n block of the same colour.
//
// The input is validated before anything is written. Pixel data is streamed
// one source row at a time; only that row, sized by the bytes actually read,
// is held in memory.
package rescale

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"

	"BMPResize/bitmap"
	"BMPResize/rules"
)

// DefaultBufferSize is the bufio size used when none is configured.
const DefaultBufferSize = 64 * 1024

// Rescaler resizes BMP streams and files. The zero value is not usable; call New.
type Rescaler struct {
	rules      rules.RuleSet
	logger     *log.Logger
	bufferSize int
}

// Option configures a Rescaler.
type Option func(*Rescaler)

// WithRules replaces the header acceptance rules.
func WithRules(rs rules.RuleSet) Option {
	return func(r *Rescaler) { r.rules = rs }
}

// WithLogger sets where progress is logged. A nil logger disables logging.
func WithLogger(l *log.Logger) Option {
	return func(r *Rescaler) {
		if l == nil {
			l = log.New(ioutil.Discard, "", 0)
		}
		r.logger = l
	}
}

// WithBufferSize sets the bufio size used for input and output. Values below
// one fall back to DefaultBufferSize.
func WithBufferSize(n int) Option {
	return func(r *Rescaler) {
		if n < 1 {
			n = DefaultBufferSize
		}
		r.bufferSize = n
	}
}

// New returns a Rescaler checking the default acceptance rules, with logging off.
func New(opts ...Option) *Rescaler {
	r := &Rescaler{
		rules:      rules.MustDefault(),
		logger:     log.New(ioutil.Discard, "", 0),
		bufferSize: DefaultBufferSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// header is a validated header pair together with the geometry derived from it.
type header struct {
	fh  bitmap.FileHeader
	ih  bitmap.InfoHeader
	geo Geometry
}

// readHeader reads, validates and measures the input headers.
func (r *Rescaler) readHeader(in io.Reader, n int) (header, error) {
	if err := checkScale(n); err != nil {
		return header{}, err
	}
	fh, ih, err := bitmap.ReadHeaders(in)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return header{}, fmt.Errorf("%w: %v", ErrTruncatedHeader, err)
		}
		return header{}, fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := r.rules.Check(bitmap.Params(fh, ih)); err != nil {
		return header{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	geo, err := ComputeGeometry(ih, n)
	if err != nil {
		return header{}, err
	}
	r.logger.Printf("Input %dx%d (padding %d), scale %d -> %dx%d (padding %d), %d bytes",
		ih.Width, ih.Height, geo.PaddingIn, n, geo.NewWidth, geo.NewHeight, geo.PaddingOut, geo.FileSize)
	return header{fh: fh, ih: ih, geo: geo}, nil
}

// emit writes the rewritten headers followed by the replicated pixel rows.
// in must be positioned right after the headers.
func (r *Rescaler) emit(h header, in *bufio.Reader, out io.Writer) error {
	bw := bufio.NewWriterSize(out, r.bufferSize)

	fh, ih := h.fh, h.ih
	h.geo.Apply(&fh, &ih)
	if err := bitmap.WriteHeaders(bw, fh, ih); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	rows := newRowReader(in, h.geo)
	rw := newRowWriter(bw, h.geo)
	for i := int64(0); i < h.geo.Rows; i++ {
		row, err := rows.Next()
		if err != nil {
			return fmt.Errorf("%w: error reading source row %d: %v", ErrIO, i, err)
		}
		if err := rw.WriteRow(row); err != nil {
			return fmt.Errorf("%w: error writing scaled row %d: %v", ErrIO, i, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	r.logger.Printf("Wrote %d rows of %d bytes.", h.geo.Rows*int64(h.geo.Scale), h.geo.OutputRowSize())
	return nil
}

// Rescale reads a BMP from in and writes the image scaled by n to out.
// Nothing is written to out unless the input headers are valid.
func (r *Rescaler) Rescale(n int, in io.Reader, out io.Writer) error {
	br := bufio.NewReaderSize(in, r.bufferSize)
	h, err := r.readHeader(br, n)
	if err != nil {
		return err
	}
	return r.emit(h, br, out)
}

// ResizeFile scales the BMP at inPath by n and writes it to outPath.
//
// The output file is only created once the input headers have been
// validated, so a rejected input leaves no output behind. Failures after
// that point leave the partial output in place.
func (r *Rescaler) ResizeFile(n int, inPath, outPath string) (err error) {
	if err := checkScale(n); err != nil {
		return err
	}

	inFile, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrFileNotFound, inPath, err)
	}
	defer inFile.Close()

	br := bufio.NewReaderSize(inFile, r.bufferSize)
	h, err := r.readHeader(br, n)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}
	r.logger.Printf("Headers of %s validated.", inPath)

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrFileUnwritable, outPath, err)
	}
	defer func() {
		if cerr := outFile.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: error closing %s: %v", ErrIO, outPath, cerr)
		}
	}()

	if err := r.emit(h, br, outFile); err != nil {
		return fmt.Errorf("%s: %w", outPath, err)
	}
	r.logger.Printf("Resized %s -> %s.", inPath, outPath)
	return nil
}
