// Package builder holds backend-independent mesh and texture payloads.
//
// A MeshBuilder or TextureBuilder describes a resource completely: vertex
// and index bytes with their layouts, or texel bytes with their size,
// format and sampling parameters. Nothing here touches a GPU. The render
// package turns a validated builder into a concrete resource for one
// backend.
//
// Builders own their byte slices. Constructing one from in-memory data
// takes ownership of the slices passed in; use Clone to obtain an
// independent copy.
package builder
