package sdk

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode uses canonical encoding so identical records always produce
// identical bytes, and therefore identical content addresses.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("sdk: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Marshal serializes a value with the fixed canonical CBOR policy.
func Marshal(v any) ([]byte, error) {
	return cborEncMode.Marshal(v)
}

// Unmarshal deserializes canonical CBOR bytes into v.
func Unmarshal(data []byte, v any) error {
	if err := cbor.Unmarshal(data, v); err != nil {
		return fmt.Errorf("sdk: unmarshal: %w", err)
	}
	return nil
}
