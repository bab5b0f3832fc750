package template

import (
	"encoding/hex"
	"math/big"

	"github.com/pkg/errors"
)

var (
	ErrOddLengthHex = errors.New("Odd Length Hex")
)

// BigIntToScriptNumber encodes n using Bitcoin's script number format: sign-magnitude,
// little-endian, minimal length, with the sign carried in the high bit of the most
// significant byte. Zero encodes to an empty slice. Operates on an unbounded *big.Int since
// BTL's BigIntLiteral has no fixed width.
func BigIntToScriptNumber(n *big.Int) []byte {
	if n.Sign() == 0 {
		return nil
	}

	isNegative := n.Sign() < 0
	magnitude := new(big.Int).Abs(n)

	result := make([]byte, 0, (magnitude.BitLen()/8)+1)
	mask := big.NewInt(0xff)
	shifted := new(big.Int).Set(magnitude)
	tmp := new(big.Int)
	for shifted.Sign() > 0 {
		tmp.And(shifted, mask)
		result = append(result, byte(tmp.Uint64()))
		shifted.Rsh(shifted, 8)
	}

	if result[len(result)-1]&0x80 != 0 {
		extra := byte(0x00)
		if isNegative {
			extra = 0x80
		}
		result = append(result, extra)
	} else if isNegative {
		result[len(result)-1] |= 0x80
	}

	return result
}

// ScriptNumberToBigInt decodes a Bitcoin script number. It does not enforce minimal
// encoding; callers that need that check should use vm's requireMinimalEncoding flag.
func ScriptNumberToBigInt(b []byte) *big.Int {
	result := new(big.Int)
	if len(b) == 0 {
		return result
	}

	isNegative := b[len(b)-1]&0x80 != 0

	magnitudeBytes := make([]byte, len(b))
	copy(magnitudeBytes, b)
	magnitudeBytes[len(magnitudeBytes)-1] &^= 0x80

	// little-endian -> big-endian for big.Int.SetBytes
	for i, j := 0, len(magnitudeBytes)-1; i < j; i, j = i+1, j-1 {
		magnitudeBytes[i], magnitudeBytes[j] = magnitudeBytes[j], magnitudeBytes[i]
	}

	result.SetBytes(magnitudeBytes)
	if isNegative {
		result.Neg(result)
	}

	return result
}

// HexToBin decodes a case-insensitive hex string (without a leading 0x) to bytes.
func HexToBin(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, errors.Wrapf(ErrOddLengthHex, "length %d", len(s))
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "decode hex")
	}

	return b, nil
}

// BinToHex encodes bytes as lower-case hex, without a 0x prefix.
func BinToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// Utf8ToBin encodes a UTF-8 string literal's contents to bytes.
func Utf8ToBin(s string) []byte {
	return []byte(s)
}

// BinToUtf8 decodes bytes as a UTF-8 string.
func BinToUtf8(b []byte) string {
	return string(b)
}
