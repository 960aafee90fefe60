package blockstore

import (
	"sync"

	"github.com/ipfs/go-cid"
)

// Memory is an in-memory content-addressed store. It is the default backing
// store for the host simulator and for tests.
type Memory struct {
	mu     sync.RWMutex
	blocks map[cid.Cid][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{blocks: make(map[cid.Cid][]byte)}
}

// Put stores data under its derived content address.
func (m *Memory) Put(mhCode uint64, mhSize int, codec uint64, data []byte) (cid.Cid, error) {
	c, err := addressOf(mhCode, mhSize, codec, data)
	if err != nil {
		return cid.Undef, err
	}

	cp := make([]byte, len(data))
	copy(cp, data)

	m.mu.Lock()
	m.blocks[c] = cp
	m.mu.Unlock()
	return c, nil
}

// Get returns the block stored under c, if any.
func (m *Memory) Get(c cid.Cid) ([]byte, bool, error) {
	m.mu.RLock()
	data, ok := m.blocks[c]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, true, nil
}

// Has reports whether a block exists under c.
func (m *Memory) Has(c cid.Cid) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.blocks[c]
	return ok, nil
}

// Len returns the number of stored blocks.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blocks)
}
