// Package codec serializes mesh and texture payloads.
//
// Four formats are supported:
//
//	binary  compact little-endian container (magic 0xdaaaadd1)
//	yaml    human-editable document, byte payloads in base64
//	toml    human-editable document, byte payloads in base64
//	image   PNG, JPEG, BMP, TIFF or WebP pixels (textures only)
//
// Every decoder copies byte spans out of its input: the returned builders
// never alias the caller's buffer, so the buffer may be reused or
// overwritten as soon as a decode call returns.
//
// Decode failures are reported as *DecodeError, which matches ErrDecode
// with errors.Is and unwraps to the underlying violation.
package codec
