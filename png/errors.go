package png

import "errors"

// Errors returned by the chunk codec. Callers match them with errors.Is,
// parse errors are wrapped with the offset they occurred at.
var (
	ErrBadSignature      = errors.New("invalid png signature")
	ErrTruncated         = errors.New("truncated data")
	ErrInvalidTypeLength = errors.New("chunk type must be exactly 4 bytes")
	ErrInvalidTypeByte   = errors.New("chunk type bytes must be ascii letters")
	ErrInvalidType       = errors.New("invalid chunk type")
	ErrCRCMismatch       = errors.New("chunk crc mismatch")
	ErrNoIEND            = errors.New("missing IEND chunk")
	ErrTrailingGarbage   = errors.New("trailing data after IEND chunk")
	ErrChunkNotFound     = errors.New("chunk not found")
	ErrNotUTF8           = errors.New("chunk data is not valid utf-8")
)

// invalidTypeError matches both ErrInvalidType and the cause of the
// rejected type.
type invalidTypeError struct {
	err error
}

func (e invalidTypeError) Error() string {
	return ErrInvalidType.Error() + ": " + e.err.Error()
}

func (e invalidTypeError) Is(target error) bool {
	return target == ErrInvalidType
}

func (e invalidTypeError) Unwrap() error {
	return e.err
}
