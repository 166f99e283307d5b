// Package bitmap reads and writes the two fixed headers of a Windows BMP file.
//
// Every field is decoded and encoded one at a time in little-endian order,
// so the in-memory struct layout never has to match the file layout.
package bitmap

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	FileHeaderSize = 14
	InfoHeaderSize = 40
	HeadersSize    = FileHeaderSize + InfoHeaderSize

	// Magic is the "BM" type tag read as a little-endian uint16.
	Magic = 0x4D42

	BytesPerPixel = 3
)

// FileHeader is the 14-byte BITMAPFILEHEADER.
type FileHeader struct {
	Type uint16 // BMP Signature (BM)

	FileSize uint32 // Total file size

	Reserved1 uint16 // Reserved (0)

	Reserved2 uint16 // Reserved (0)

	DataOffset uint32 // Offset to image data
}

// InfoHeader is the 40-byte BITMAPINFOHEADER.
type InfoHeader struct {
	HeaderSize uint32 // Size of the information header (40)

	Width int32 // Image width

	Height int32 // Image height, negative for top-down rows

	Planes uint16 // Number of color planes (always 1)

	BitsPerPixel uint16 // Bits per pixel (24 for RGB)

	Compression uint32 // Compression method (0 for uncompressed)

	ImageSize uint32 // Size of the raw pixel data including row padding

	XPixelsPerMeter int32 // Horizontal resolution (pixels per meter)

	YPixelsPerMeter int32 // Vertical resolution (pixels per meter)

	ColorsUsed uint32 // Number of colors in the color palette (0 for true-color images)

	ImportantColors uint32 // Number of important colors (0 for all colors important)
}

// Signature returns the type tag as the two ASCII characters it encodes.
func (s *FileHeader) Signature() string {
	return string([]byte{byte(s.Type), byte(s.Type >> 8)})
}

func (s *FileHeader) Read(r io.Reader) error {
	fields := []interface{}{&s.Type, &s.FileSize, &s.Reserved1, &s.Reserved2, &s.DataOffset}
	return readFields(r, fields)
}

func (s *FileHeader) Write(w io.Writer) error {
	fields := []interface{}{s.Type, s.FileSize, s.Reserved1, s.Reserved2, s.DataOffset}
	return writeFields(w, fields)
}

func (s *InfoHeader) Read(r io.Reader) error {
	fields := []interface{}{
		&s.HeaderSize,
		&s.Width,
		&s.Height,
		&s.Planes,
		&s.BitsPerPixel,
		&s.Compression,
		&s.ImageSize,
		&s.XPixelsPerMeter,
		&s.YPixelsPerMeter,
		&s.ColorsUsed,
		&s.ImportantColors,
	}
	return readFields(r, fields)
}

func (s *InfoHeader) Write(w io.Writer) error {
	fields := []interface{}{
		s.HeaderSize,
		s.Width,
		s.Height,
		s.Planes,
		s.BitsPerPixel,
		s.Compression,
		s.ImageSize,
		s.XPixelsPerMeter,
		s.YPixelsPerMeter,
		s.ColorsUsed,
		s.ImportantColors,
	}
	return writeFields(w, fields)
}

func readFields(r io.Reader, fields []interface{}) error {
	for _, f := range fields {
		err := binary.Read(r, binary.LittleEndian, f)
		if err == io.EOF {
			// A header that stops on a field boundary is still cut short.
			return io.ErrUnexpectedEOF
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeFields(w io.Writer, fields []interface{}) error {
	for _, f := range fields {
		if err := binary.Write(w, binary.LittleEndian, f); err != nil {
			return err
		}
	}
	return nil
}

// ReadHeaders reads the file header followed by the info header.
// A stream shorter than HeadersSize yields an error wrapping io.ErrUnexpectedEOF.
func ReadHeaders(r io.Reader) (FileHeader, InfoHeader, error) {
	var fh FileHeader
	var ih InfoHeader
	if err := fh.Read(r); err != nil {
		return fh, ih, fmt.Errorf("error reading file header: %w", err)
	}
	if err := ih.Read(r); err != nil {
		return fh, ih, fmt.Errorf("error reading info header: %w", err)
	}
	return fh, ih, nil
}

// WriteHeaders writes the file header followed by the info header.
func WriteHeaders(w io.Writer, fh FileHeader, ih InfoHeader) error {
	if err := fh.Write(w); err != nil {
		return fmt.Errorf("error writing file header: %w", err)
	}
	if err := ih.Write(w); err != nil {
		return fmt.Errorf("error writing info header: %w", err)
	}
	return nil
}

// Params exposes the header fields by name for rule evaluation.
// Numbers are passed as float64, the type govaluate compares with.
func Params(fh FileHeader, ih InfoHeader) map[string]interface{} {
	return map[string]interface{}{
		"Signature":       fh.Signature(),
		"Type":            float64(fh.Type),
		"FileSize":        float64(fh.FileSize),
		"Reserved1":       float64(fh.Reserved1),
		"Reserved2":       float64(fh.Reserved2),
		"DataOffset":      float64(fh.DataOffset),
		"HeaderSize":      float64(ih.HeaderSize),
		"Width":           float64(ih.Width),
		"Height":          float64(ih.Height),
		"Planes":          float64(ih.Planes),
		"BitsPerPixel":    float64(ih.BitsPerPixel),
		"Compression":     float64(ih.Compression),
		"ImageSize":       float64(ih.ImageSize),
		"XPixelsPerMeter": float64(ih.XPixelsPerMeter),
		"YPixelsPerMeter": float64(ih.YPixelsPerMeter),
		"ColorsUsed":      float64(ih.ColorsUsed),
		"ImportantColors": float64(ih.ImportantColors),
	}
}
