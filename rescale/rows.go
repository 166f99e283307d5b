package rescale

import (
	"bufio"
	"bytes"
	"io"

	"BMPResize/bitmap"
)

// rowReader yields the pixel bytes of one source row at a time. The row
// padding is skipped without being looked at. The row buffer only grows with
// bytes actually read, so a header claiming a huge width costs nothing until
// the pixel data is really there.
type rowReader struct {
	r        *bufio.Reader
	row      bytes.Buffer
	rowBytes int64
	padding  int
}

func newRowReader(r *bufio.Reader, g Geometry) *rowReader {
	return &rowReader{
		r:        r,
		rowBytes: g.SourceRowBytes(),
		padding:  int(g.PaddingIn),
	}
}

// Next returns the next source row. The slice is reused by the following call.
func (rr *rowReader) Next() ([]byte, error) {
	rr.row.Reset()
	if _, err := io.CopyN(&rr.row, rr.r, rr.rowBytes); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if rr.padding > 0 {
		if _, err := rr.r.Discard(rr.padding); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
	}
	return rr.row.Bytes(), nil
}

var zeroPadding [3]byte

// rowWriter writes every source row n times, each pixel repeated n times,
// straight into the buffered output.
type rowWriter struct {
	w       *bufio.Writer
	scale   int
	padding []byte
}

func newRowWriter(w *bufio.Writer, g Geometry) *rowWriter {
	return &rowWriter{
		w:       w,
		scale:   g.Scale,
		padding: zeroPadding[:g.PaddingOut],
	}
}

// WriteRow writes the scaled copies of src.
func (rw *rowWriter) WriteRow(src []byte) error {
	for v := 0; v < rw.scale; v++ {
		for i := 0; i+bitmap.BytesPerPixel <= len(src); i += bitmap.BytesPerPixel {
			triple := src[i : i+bitmap.BytesPerPixel]
			for h := 0; h < rw.scale; h++ {
				if _, err := rw.w.Write(triple); err != nil {
					return err
				}
			}
		}
		if _, err := rw.w.Write(rw.padding); err != nil {
			return err
		}
	}
	return nil
}
