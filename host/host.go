// Package host provides an in-process stand-in for the VM host. The
// Simulator implements sdk.Runtime over a blockstore so generated dispatch
// glue can be exercised end to end without a real VM.
package host

import (
	"errors"
	"fmt"

	"github.com/ipfs/go-cid"

	"github.com/dreadful-dev/fvm-macro/blockstore"
	"github.com/dreadful-dev/fvm-macro/sdk"
)

// ErrNoRoot indicates the actor has no state root set yet.
var ErrNoRoot = errors.New("no state root set")

// SystemCallerID is the actor id the simulator reports as the caller by
// default. Constructors conventionally require it.
const SystemCallerID uint64 = 1

// Simulator is a fake host runtime for one actor instance. It processes one
// message at a time, mirroring the host's single-invocation guarantee, so it
// performs no locking of its own.
type Simulator struct {
	store  blockstore.Blockstore
	caller uint64

	method uint64
	params map[uint64][]byte

	root    cid.Cid
	hasRoot bool

	retBlocks map[uint32][]byte
	nextRet   uint32

	blockGets int

	// Failure injection for abort-path tests.
	setRootErr  error
	blockPutErr error
	putBlockErr error
}

// NewSimulator creates a simulator over the given store. A nil store gets a
// fresh in-memory one.
func NewSimulator(store blockstore.Blockstore) *Simulator {
	if store == nil {
		store = blockstore.NewMemory()
	}
	return &Simulator{
		store:     store,
		caller:    SystemCallerID,
		params:    make(map[uint64][]byte),
		retBlocks: make(map[uint32][]byte),
	}
}

// SetCaller changes the caller id reported for subsequent messages.
func (s *Simulator) SetCaller(id uint64) { s.caller = id }

// FailNextSetRoot makes the next SetStateRoot call fail with err.
func (s *Simulator) FailNextSetRoot(err error) { s.setRootErr = err }

// FailNextBlockPut makes the next BlockPut (state store) call fail with err.
func (s *Simulator) FailNextBlockPut(err error) { s.blockPutErr = err }

// FailNextPutBlock makes the next PutBlock (return payload) call fail with err.
func (s *Simulator) FailNextPutBlock(err error) { s.putBlockErr = err }

// Send delivers one message: it records the method number and raw params,
// runs the given entrypoint to completion, and reports either the returned
// block id or the abort that terminated the invocation.
func (s *Simulator) Send(id uint64, params []byte, invoke func(sdk.Runtime, uint64) uint32) (ret uint32, abort *sdk.Abort) {
	s.method = id
	s.params[id] = params

	defer func() {
		abort = sdk.CatchAbort(recover())
	}()
	ret = invoke(s, id)
	return ret, nil
}

// Root returns the current state root, if one is set.
func (s *Simulator) Root() (cid.Cid, bool) {
	return s.root, s.hasRoot
}

// SeedRoot sets the state root directly, bypassing the sdk surface. Tests use
// it to model a pre-existing actor instance.
func (s *Simulator) SeedRoot(c cid.Cid) {
	s.root = c
	s.hasRoot = true
}

// ReturnBlock reads back a stored return payload by block id.
func (s *Simulator) ReturnBlock(id uint32) ([]byte, bool) {
	data, ok := s.retBlocks[id]
	return data, ok
}

// BlockGets returns how many block reads the actor has performed. Tests use
// it to prove the constructor path never touches stored state.
func (s *Simulator) BlockGets() int { return s.blockGets }

// --- sdk.Runtime ---

// MethodNumber returns the method number of the message being processed.
func (s *Simulator) MethodNumber() uint64 { return s.method }

// ParamsRaw returns the raw parameter bytes recorded for id.
func (s *Simulator) ParamsRaw(id uint64) []byte { return s.params[id] }

// CallerID returns the configured caller id.
func (s *Simulator) CallerID() uint64 { return s.caller }

// StateRoot returns the current root, failing when none is set.
func (s *Simulator) StateRoot() (cid.Cid, error) {
	if !s.hasRoot {
		return cid.Undef, ErrNoRoot
	}
	return s.root, nil
}

// SetStateRoot points the root at a new address.
func (s *Simulator) SetStateRoot(c cid.Cid) error {
	if err := s.setRootErr; err != nil {
		s.setRootErr = nil
		return err
	}
	s.root = c
	s.hasRoot = true
	return nil
}

// BlockGet fetches a block from the backing store.
func (s *Simulator) BlockGet(c cid.Cid) ([]byte, bool, error) {
	s.blockGets++
	return s.store.Get(c)
}

// BlockPut stores a block in the backing store.
func (s *Simulator) BlockPut(mhCode uint64, mhSize int, codec uint64, data []byte) (cid.Cid, error) {
	if err := s.blockPutErr; err != nil {
		s.blockPutErr = nil
		return cid.Undef, err
	}
	return s.store.Put(mhCode, mhSize, codec, data)
}

// PutBlock registers a return payload and yields its numeric block id.
// Ids start at 1; sdk.NoDataBlockID stays reserved for the no-payload case.
func (s *Simulator) PutBlock(codec uint64, data []byte) (uint32, error) {
	if err := s.putBlockErr; err != nil {
		s.putBlockErr = nil
		return 0, err
	}
	if codec != sdk.CodecDagCBOR {
		return 0, fmt.Errorf("unsupported return codec %#x", codec)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.nextRet++
	s.retBlocks[s.nextRet] = cp
	return s.nextRet, nil
}
