package bmp

import "errors"

// Errors reported while parsing headers or addressing pixels. Raise sites
// wrap these with fmt.Errorf("%w: ...") to attach detail, so callers should
// classify with errors.Is.
var (
	ErrTruncatedHeader        = errors.New("bmp: truncated header")
	ErrUnsupportedHeaderType  = errors.New("bmp: unsupported DIB header type")
	ErrCorruptHeader          = errors.New("bmp: corrupt header")
	ErrUnsupportedField       = errors.New("bmp: field not defined for DIB header type")
	ErrUnsupportedColorDepth  = errors.New("bmp: unsupported color depth")
	ErrInvalidPixelFormat     = errors.New("bmp: invalid pixel format")
	ErrPixelOutOfRange        = errors.New("bmp: pixel out of range")
	ErrInconsistentBufferSize = errors.New("bmp: inconsistent pixel buffer size")
)
