package template

import (
	"bytes"
	"math/big"
	"testing"
)

func TestBigIntScriptNumberRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 127, 128, -128, 255, 256, -256, 32767, -32768, 1 << 40, -(1 << 40)}

	for _, v := range values {
		n := big.NewInt(v)
		encoded := BigIntToScriptNumber(n)
		decoded := ScriptNumberToBigInt(encoded)
		if decoded.Cmp(n) != 0 {
			t.Fatalf("round trip failed for %d : got %s, encoded %x", v, decoded, encoded)
		}
	}
}

func TestBigIntScriptNumberBeyondInt64(t *testing.T) {
	n, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	if !ok {
		t.Fatalf("failed to parse test value")
	}
	encoded := BigIntToScriptNumber(n)
	decoded := ScriptNumberToBigInt(encoded)
	if decoded.Cmp(n) != 0 {
		t.Fatalf("round trip failed for large value : got %s", decoded)
	}

	negated := new(big.Int).Neg(n)
	encodedNeg := BigIntToScriptNumber(negated)
	decodedNeg := ScriptNumberToBigInt(encodedNeg)
	if decodedNeg.Cmp(negated) != 0 {
		t.Fatalf("round trip failed for large negative value : got %s", decodedNeg)
	}
}

func TestZeroEncodesEmpty(t *testing.T) {
	if encoded := BigIntToScriptNumber(big.NewInt(0)); len(encoded) != 0 {
		t.Fatalf("expected zero to encode as an empty slice, got %x", encoded)
	}
}

func TestHexToBinRejectsOddLength(t *testing.T) {
	if _, err := HexToBin("abc"); err == nil {
		t.Fatalf("expected an error for odd-length hex")
	}
}

func TestHexToBinRoundTrip(t *testing.T) {
	b, err := HexToBin("deadbeef")
	if err != nil {
		t.Fatalf("unexpected error : %s", err)
	}
	if !bytes.Equal(b, []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Fatalf("wrong bytes : %x", b)
	}
	if BinToHex(b) != "deadbeef" {
		t.Fatalf("wrong hex : %s", BinToHex(b))
	}
}
