// Package erasure wraps Reed-Solomon coding for ciphertext archives.
//
// Data is split into k data shards and m parity shards; any k of the k+m shards are enough
// to rebuild the original bytes.
package erasure
