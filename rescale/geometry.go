package rescale

import (
	"fmt"
	"math"

	"BMPResize/bitmap"
)

// Geometry holds the source and scaled dimensions of one resize.
type Geometry struct {
	Scale int

	Width      int64 // source pixels per row
	Rows       int64 // source row count, |height|
	PaddingIn  int64
	NewWidth   int64
	NewHeight  int64 // sign follows the source height
	PaddingOut int64
	ImageSize  int64
	FileSize   int64
}

// ComputeGeometry derives the scaled dimensions from the original info header.
// Every quantity that ends up in a header must fit a signed 32-bit field.
func ComputeGeometry(ih bitmap.InfoHeader, n int) (Geometry, error) {
	if err := checkScale(n); err != nil {
		return Geometry{}, err
	}
	if ih.Width < 0 {
		return Geometry{}, fmt.Errorf("%w: negative width %d", ErrUnsupportedFormat, ih.Width)
	}

	g := Geometry{Scale: n, Width: int64(ih.Width)}
	height := int64(ih.Height)
	g.Rows = height
	if g.Rows < 0 {
		g.Rows = -g.Rows
	}
	if g.Rows > math.MaxInt32 {
		return Geometry{}, fmt.Errorf("%w: height %d has no positive 32-bit magnitude", ErrDimensionOverflow, ih.Height)
	}
	g.PaddingIn = bitmap.Padding(g.Width)

	g.NewWidth = g.Width * int64(n)
	g.NewHeight = height * int64(n)
	if err := fits32("width", g.NewWidth); err != nil {
		return Geometry{}, err
	}
	if err := fits32("height", g.NewHeight); err != nil {
		return Geometry{}, err
	}
	g.PaddingOut = bitmap.Padding(g.NewWidth)

	g.ImageSize = bitmap.RowSize(g.NewWidth) * g.Rows * int64(n)
	if err := fits32("image size", g.ImageSize); err != nil {
		return Geometry{}, err
	}
	g.FileSize = g.ImageSize + bitmap.HeadersSize
	if err := fits32("file size", g.FileSize); err != nil {
		return Geometry{}, err
	}
	return g, nil
}

// fits32 checks v against the signed 32-bit range.
func fits32(what string, v int64) error {
	if v > math.MaxInt32 || v < math.MinInt32 {
		return fmt.Errorf("%w: scaled %s %d does not fit in 32 bits", ErrDimensionOverflow, what, v)
	}
	return nil
}

// SourceRowBytes is the pixel byte count of one source row, padding excluded.
func (g Geometry) SourceRowBytes() int64 { return g.Width * bitmap.BytesPerPixel }

// OutputRowSize is the stored length of one scaled row, padding included.
func (g Geometry) OutputRowSize() int64 { return bitmap.RowSize(g.NewWidth) }

// Apply rewrites the size fields of the header pair for the scaled image.
// All other fields are left as they were.
func (g Geometry) Apply(fh *bitmap.FileHeader, ih *bitmap.InfoHeader) {
	ih.Width = int32(g.NewWidth)
	ih.Height = int32(g.NewHeight)
	ih.ImageSize = uint32(g.ImageSize)
	fh.FileSize = uint32(g.FileSize)
}
