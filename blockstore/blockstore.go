// Package blockstore provides content-addressed block storage for hosting
// generated actors: blocks are keyed by the CID of their bytes, and writes of
// identical content land on identical addresses.
package blockstore

import (
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// Blockstore is the host-side store the generated persistence glue writes
// through. Hash function, digest size and codec arrive from the caller as
// fixed policy constants.
type Blockstore interface {
	// Put stores data under the address derived from the given multihash
	// code, digest size and codec, and returns that address.
	Put(mhCode uint64, mhSize int, codec uint64, data []byte) (cid.Cid, error)

	// Get returns the bytes stored under c. The second result reports
	// whether the block exists.
	Get(c cid.Cid) ([]byte, bool, error)

	// Has reports whether a block exists under c.
	Has(c cid.Cid) (bool, error)
}

// addressOf derives the content address for data under the given policy.
func addressOf(mhCode uint64, mhSize int, codec uint64, data []byte) (cid.Cid, error) {
	h, err := multihash.Sum(data, mhCode, mhSize)
	if err != nil {
		return cid.Undef, fmt.Errorf("blockstore: hashing block: %w", err)
	}
	return cid.NewCidV1(codec, h), nil
}
