package codec

import (
	"errors"
	"fmt"
)

// ErrDecode matches every *DecodeError.
var ErrDecode = errors.New("codec: decode failed")

// Format violations wrapped by DecodeError.
var (
	ErrMagic     = errors.New("codec: bad magic number")
	ErrVersion   = errors.New("codec: unsupported container version")
	ErrKind      = errors.New("codec: payload kind mismatch")
	ErrTruncate  = errors.New("codec: unexpected end of data")
	ErrTrailing  = errors.New("codec: trailing bytes after payload")
	ErrEnum      = errors.New("codec: unknown enum name")
	ErrPayload   = errors.New("codec: invalid base64 payload")
	ErrIndexFlag = errors.New("codec: invalid index presence flag")
)

// ErrUnsupported is returned when a payload kind cannot be represented in
// the requested format, such as a mesh encoded as an image.
var ErrUnsupported = errors.New("codec: unsupported format for payload")

// DecodeError reports a failure to decode a payload of Kind from Format.
type DecodeError struct {
	Format Format
	Kind   Kind
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("codec: decode %s from %s: %v", e.Kind, e.Format, e.Err)
}

// Unwrap returns the underlying violation.
func (e *DecodeError) Unwrap() error { return e.Err }

// Is reports whether target is ErrDecode.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

func decodeErr(f Format, k Kind, err error) error {
	if err == nil {
		return nil
	}
	return &DecodeError{Format: f, Kind: k, Err: err}
}
