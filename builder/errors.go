package builder

import "errors"

// Validation errors. Validate wraps these with the offending stream or
// field so callers can match them with errors.Is.
var (
	ErrNoVertices       = errors.New("builder: mesh has no vertex streams")
	ErrZeroStride       = errors.New("builder: vertex stride is zero")
	ErrVertexData       = errors.New("builder: vertex data is not a multiple of the stride")
	ErrVertexFormat     = errors.New("builder: undefined vertex format")
	ErrAttributeBounds  = errors.New("builder: vertex attribute exceeds stride")
	ErrVertexCount      = errors.New("builder: vertex streams disagree on vertex count")
	ErrIndexFormat      = errors.New("builder: undefined index format")
	ErrIndexData        = errors.New("builder: index data is not a multiple of the index size")
	ErrTopology         = errors.New("builder: unknown primitive topology")
	ErrEmptyExtent      = errors.New("builder: texture extent has a zero dimension")
	ErrTextureFormat    = errors.New("builder: undefined texture format")
	ErrTextureDimension = errors.New("builder: invalid texture dimension")
	ErrTextureExtent    = errors.New("builder: texture extent exceeds device limits")
	ErrMipLevels        = errors.New("builder: invalid mip level count")
	ErrTextureData      = errors.New("builder: texture data length does not match extent and format")
)
