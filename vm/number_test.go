package vm

import (
	"bytes"
	"testing"
)

func TestScriptNumberRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 127, 128, -128, 255, 32767, -32768}
	for _, v := range values {
		encoded := encodeScriptNumber(v)
		decoded, ok, kind := decodeScriptNumber(encoded, MaxScriptNumberLength, true)
		if !ok {
			t.Fatalf("decode failed for %d : %s", v, kind)
		}
		if decoded != v {
			t.Fatalf("round trip mismatch : got %d want %d (encoded %x)", decoded, v, encoded)
		}
	}
}

func TestDecodeScriptNumberRejectsNonMinimal(t *testing.T) {
	// 0x01 0x00 (little-endian) is a non-minimal encoding of 1 (could be encoded as a single 0x01 byte).
	if _, ok, kind := decodeScriptNumber([]byte{0x01, 0x00}, MaxScriptNumberLength, true); ok || kind != ErrorNonMinimallyEncodedNumber {
		t.Fatalf("expected a non-minimal encoding error, got ok=%v kind=%s", ok, kind)
	}
}

func TestDecodeScriptNumberAllowsNonMinimalWhenNotRequired(t *testing.T) {
	if _, ok, _ := decodeScriptNumber([]byte{0x01, 0x00}, MaxScriptNumberLength, false); !ok {
		t.Fatalf("expected non-minimal encoding to be accepted when not required")
	}
}

func TestDecodeScriptNumberRejectsOverlength(t *testing.T) {
	if _, ok, kind := decodeScriptNumber([]byte{1, 2, 3, 4, 5}, MaxScriptNumberLength, false); ok || kind != ErrorExceededMaximumScriptNumberLength {
		t.Fatalf("expected a length error, got ok=%v kind=%s", ok, kind)
	}
}

func TestBoolFromStackItem(t *testing.T) {
	tests := []struct {
		in  []byte
		out bool
	}{
		{nil, false},
		{[]byte{}, false},
		{[]byte{0}, false},
		{[]byte{0, 0, 0x80}, false},
		{[]byte{1}, true},
		{[]byte{0, 1}, true},
	}
	for i, test := range tests {
		if got := boolFromStackItem(test.in); got != test.out {
			t.Fatalf("test %d : got %v want %v for %x", i, got, test.out, test.in)
		}
	}
}

func TestMinimallyEncodeScriptNumber(t *testing.T) {
	if got := minimallyEncodeScriptNumber([]byte{0x01, 0x00, 0x00}); !bytes.Equal(got, []byte{0x01}) {
		t.Fatalf("expected trailing zero bytes stripped, got %x", got)
	}
	// 0xff alone would be read as a negative number (high bit set), so a positive value whose
	// magnitude byte has its own high bit set keeps its zero-padding byte.
	if got := minimallyEncodeScriptNumber([]byte{0xff, 0x00}); !bytes.Equal(got, []byte{0xff, 0x00}) {
		t.Fatalf("unexpected result : %x", got)
	}
}
