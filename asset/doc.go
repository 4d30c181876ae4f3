// Package asset connects serialized descriptors to wrapped GPU resources.
//
// The package keeps a process-wide binding table from stable identity tags
// to descriptor and asset types, populated by packages at init time through
// Register. A Loader holds one Processor per asset kind; Load runs the
// pipeline for a Source:
//
//  1. resolve the binding for the source kind
//  2. decode the serialized bytes into an owned descriptor
//  3. hand the descriptor to the kind's processor, which builds a concrete
//     backend resource and wraps it
//  4. insert the wrapped asset into a Storage and return its Handle
//
// LoadAll decodes many sources concurrently and constructs them
// sequentially on the calling goroutine. Watcher reports changed source
// files for hot reload.
package asset
