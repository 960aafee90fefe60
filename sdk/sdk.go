// Package sdk defines the boundary between generated actor glue and the
// deterministic VM host: the Runtime context, the abort taxonomy, and the
// fixed serialization policy shared by every generated actor.
package sdk

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// Serialization policy for all generated state records and return payloads.
// These are configuration constants; generated code never computes them.
const (
	// CodecDagCBOR is the multicodec for DAG-CBOR encoded blocks.
	CodecDagCBOR uint64 = 0x71

	// HashBlake2b256 is the multihash code used for state blocks.
	HashBlake2b256 = uint64(multihash.BLAKE2B_MIN + 31)

	// HashLength is the digest length, in bytes, for state block hashes.
	HashLength = 32
)

// NoDataBlockID is the reserved return value for methods that produce no
// payload. Real return payloads are stored as blocks with ids starting at 1.
const NoDataBlockID uint32 = 0

// RawBytes wraps undecoded parameter or return bytes. Methods decode their
// own parameters; the dispatcher only moves the bytes.
type RawBytes []byte

// Runtime is the host context handed to generated dispatch code and actor
// methods. It replaces the host's ambient accessors with an explicit value so
// generated glue can run against a fake host in tests.
//
// The host guarantees a single invocation at a time per actor instance, so
// implementations need no internal synchronization for root updates.
type Runtime interface {
	// MethodNumber returns the method number of the message being processed.
	MethodNumber() uint64

	// ParamsRaw returns the raw parameter bytes attached to the message
	// identified by id.
	ParamsRaw(id uint64) []byte

	// CallerID returns the actor id of the message sender.
	CallerID() uint64

	// StateRoot returns the content address of the current state record.
	// It fails when no root has been set for this actor.
	StateRoot() (cid.Cid, error)

	// SetStateRoot points the actor's state root at a new content address.
	SetStateRoot(c cid.Cid) error

	// BlockGet fetches the block stored under the given address. The second
	// result reports whether the block exists.
	BlockGet(c cid.Cid) ([]byte, bool, error)

	// BlockPut stores data under the content address derived from the given
	// multihash code, digest size and codec.
	BlockPut(mhCode uint64, mhSize int, codec uint64, data []byte) (cid.Cid, error)

	// PutBlock stores a return payload and yields its numeric block id, the
	// value the invocation entrypoint hands back to the host.
	PutBlock(codec uint64, data []byte) (uint32, error)
}
