package sdk

import (
	"bytes"
	"testing"
)

type record struct {
	Count uint64
	Label string
}

func TestMarshalRoundTrip(t *testing.T) {
	in := record{Count: 42, Label: "hello"}
	data, err := Marshal(&in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var out record
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	in := record{Count: 7, Label: "x"}
	a, err := Marshal(&in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	b, err := Marshal(&in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("canonical encoding produced different bytes for equal values")
	}
}

func TestUnmarshalGarbage(t *testing.T) {
	var out record
	if err := Unmarshal([]byte{0xff, 0x00, 0x13}, &out); err == nil {
		t.Error("expected decode error for garbage input")
	}
}
