// Package crypt implements the cryptographic primitives of the archive
// format: the shared 1280-entry lookup table, the filename hash that
// addresses the hash table and derives file keys, and the word-stream
// cipher that obscures the directory tables and file sectors.
//
// The table is computed once at process start and shared read-only by every
// archive handle. All arithmetic is 32-bit modular; the hash and cipher are
// bit-exact with the legacy implementations, which is load-bearing for
// every decrypted byte downstream.
package crypt
