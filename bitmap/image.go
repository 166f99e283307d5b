package bitmap

// Padding returns the number of zero bytes that follow a row of width pixels.
func Padding(width int64) int64 {
	return (4 - (width*BytesPerPixel)%4) % 4
}

// RowSize returns the stored length of a row of width pixels, padding included.
func RowSize(width int64) int64 {
	return width*BytesPerPixel + Padding(width)
}

// NewHeaders builds the header pair of an uncompressed 24-bit image.
// A negative height describes top-down rows.
func NewHeaders(width, height int32) (FileHeader, InfoHeader) {
	h := int64(height)
	if h < 0 {
		h = -h
	}
	imageSize := uint32(RowSize(int64(width)) * h)

	fh := FileHeader{
		Type:       Magic,
		FileSize:   HeadersSize + imageSize,
		DataOffset: HeadersSize,
	}
	ih := InfoHeader{
		HeaderSize:      InfoHeaderSize,
		Width:           width,
		Height:          height,
		Planes:          1,
		BitsPerPixel:    24,
		Compression:     0, // BI_RGB
		ImageSize:       imageSize,
		XPixelsPerMeter: 2835, // ~72 DPI
		YPixelsPerMeter: 2835,
	}
	return fh, ih
}
