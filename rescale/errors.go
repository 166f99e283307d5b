package rescale

import "errors"

// Every error returned by this package wraps exactly one of these, so callers
// can tell the failed precondition apart with errors.Is.
var (
	ErrBadArgument       = errors.New("bad argument")
	ErrFileNotFound      = errors.New("cannot open input file")
	ErrFileUnwritable    = errors.New("cannot create output file")
	ErrTruncatedHeader   = errors.New("truncated header")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrDimensionOverflow = errors.New("scaled dimensions overflow")
	ErrIO                = errors.New("i/o error")
)
