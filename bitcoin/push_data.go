package bitcoin

// Minimal push-data opcodes, just enough to walk a locking script looking for public keys and
// public key hashes. RawAddress.Hashes needs this for ScriptTypeNonStandard, where the script
// bytes themselves are the only source of a spendable hash; everything else about script
// construction/disassembly lives in template/vm, which bitcoin cannot import without a cycle
// (vm depends on bitcoin for its signature-checking opcodes).
const (
	opFalse             = byte(0x00)
	opPushData1         = byte(0x4c)
	opPushData2         = byte(0x4d)
	opPushData4         = byte(0x4e)
	opMaxSingleBytePush = byte(0x4b)
	op1Negate           = byte(0x4f)
	op1                 = byte(0x51)
	op16                = byte(0x60)
)

// pushDataValues walks script and returns the data pushed by every push opcode it finds,
// skipping non-push opcodes. It never returns an error: a malformed trailing push is simply
// dropped, since this is a best-effort scan for recognizable public keys/hashes, not a
// consensus-relevant parse.
func pushDataValues(script []byte) [][]byte {
	var result [][]byte
	i := 0
	for i < len(script) {
		opcode := script[i]
		i++

		switch {
		case opcode == opFalse:
			continue
		case opcode <= opMaxSingleBytePush:
			size := int(opcode)
			if i+size > len(script) {
				return result
			}
			result = append(result, script[i:i+size])
			i += size
		case opcode == opPushData1:
			if i+1 > len(script) {
				return result
			}
			size := int(script[i])
			i++
			if i+size > len(script) {
				return result
			}
			result = append(result, script[i:i+size])
			i += size
		case opcode == opPushData2:
			if i+2 > len(script) {
				return result
			}
			size := int(script[i]) | int(script[i+1])<<8
			i += 2
			if i+size > len(script) {
				return result
			}
			result = append(result, script[i:i+size])
			i += size
		case opcode == opPushData4:
			if i+4 > len(script) {
				return result
			}
			size := int(script[i]) | int(script[i+1])<<8 | int(script[i+2])<<16 | int(script[i+3])<<24
			i += 4
			if i+size > len(script) {
				return result
			}
			result = append(result, script[i:i+size])
			i += size
		case opcode == op1Negate:
			result = append(result, []byte{0xff})
		case opcode >= op1 && opcode <= op16:
			result = append(result, []byte{opcode - op1 + 1})
		}
	}
	return result
}

// publicKeyHashesFromLockingScript scans script for pushed values that look like a public key
// hash, or a public key (which is then hashed), returning every match in script order.
func publicKeyHashesFromLockingScript(script []byte) ([]Hash20, error) {
	result := make([]Hash20, 0)

	for _, pushdata := range pushDataValues(script) {
		switch len(pushdata) {
		case Hash20Size:
			hash, err := NewHash20(pushdata)
			if err != nil {
				continue
			}
			result = append(result, *hash)
		case PublicKeyCompressedLength:
			if pushdata[0] == 0x02 || pushdata[0] == 0x03 {
				hash, err := NewHash20(Hash160(pushdata))
				if err != nil {
					continue
				}
				result = append(result, *hash)
			}
		}
	}

	return result, nil
}
