// Package file provides the TOML-backed ConfigStore.
//
// Keys use dot notation; "chunker.chunk_size" is written as chunk_size
// under a [chunker] table.
package file
