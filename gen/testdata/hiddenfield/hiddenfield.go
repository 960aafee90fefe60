// Package hiddenfield is an introspection fixture: its state record carries
// an unexported field the codec cannot reach.
package hiddenfield

import "github.com/dreadful-dev/fvm-macro/sdk"

// LedgerState has a field the binary codec cannot encode.
type LedgerState struct {
	Balance uint64
	secret  uint64
}

// LedgerActor is a well-formed actor over a malformed record.
type LedgerActor struct{}

// Constructor persists the initial record.
func (a LedgerActor) Constructor(rt sdk.Runtime, params sdk.RawBytes, st *LedgerState) {
	_ = st.secret
}
