package bitcoin

const (
	opReturn      = byte(0x6a)
	opDup         = byte(0x76)
	opEqual       = byte(0x87)
	opEqualVerify = byte(0x88)
	opHash160     = byte(0xa9)
	opCheckSig    = byte(0xac)
	opPush20      = byte(0x14)
	opPush33      = byte(0x21)
)

// lockingScriptIsUnspendable reports whether script is provably unspendable: OP_RETURN, with
// or without a leading OP_FALSE (the "data carrier" convention).
func lockingScriptIsUnspendable(script []byte) bool {
	if len(script) == 0 {
		return false
	}
	if script[0] == opReturn {
		return true
	}
	if len(script) > 1 && script[0] == opFalse && script[1] == opReturn {
		return true
	}
	return false
}

// AddressFromLockingScript returns the address that a locking script pays to.
func AddressFromLockingScript(lockingScript []byte, net Network) (Address, error) {
	ra, err := RawAddressFromLockingScript(lockingScript)
	if err != nil {
		return Address{}, err
	}
	return NewAddressFromRawAddress(ra, net), nil
}

func checkNonStandard(lockingScript []byte) (RawAddress, error) {
	if lockingScriptIsUnspendable(lockingScript) {
		return RawAddress{}, ErrUnknownScriptTemplate
	}
	return NewRawAddressNonStandard(lockingScript)
}

// RawAddressFromLockingScript recovers the raw address a locking script pays to. It recognizes
// the standard P2PKH, P2PK, and P2SH shapes; anything else falls back to a non-standard raw
// address (or ErrUnknownScriptTemplate if it is provably unspendable).
func RawAddressFromLockingScript(lockingScript []byte) (RawAddress, error) {
	var result RawAddress
	if len(lockingScript) == 0 {
		return result, ErrUnknownScriptTemplate
	}

	switch {
	case lockingScript[0] == opDup: // P2PKH : OP_DUP OP_HASH160 <20> OP_EQUALVERIFY OP_CHECKSIG
		if len(lockingScript) != 25 ||
			lockingScript[1] != opHash160 ||
			lockingScript[2] != opPush20 ||
			lockingScript[23] != opEqualVerify ||
			lockingScript[24] != opCheckSig {
			return checkNonStandard(lockingScript)
		}
		err := result.SetPKH(lockingScript[3:23])
		return result, err

	case lockingScript[0] == opPush33: // P2PK : <33> OP_CHECKSIG
		if len(lockingScript) != 35 || lockingScript[34] != opCheckSig {
			return checkNonStandard(lockingScript)
		}
		err := result.SetCompressedPublicKey(lockingScript[1:34])
		return result, err

	case lockingScript[0] == opHash160: // P2SH : OP_HASH160 <20> OP_EQUAL
		if len(lockingScript) != 23 ||
			lockingScript[1] != opPush20 ||
			lockingScript[22] != opEqual {
			return checkNonStandard(lockingScript)
		}
		err := result.SetSH(lockingScript[2:22])
		return result, err
	}

	return checkNonStandard(lockingScript)
}

// LockingScript builds the standard locking script bytecode for this raw address: P2PKH, P2PK,
// or P2SH depending on the address's script type. A non-standard raw address returns its
// stored script bytes unchanged.
func (ra RawAddress) LockingScript() ([]byte, error) {
	switch ra.scriptType {
	case ScriptTypePKH:
		script := make([]byte, 0, 25)
		script = append(script, opDup, opHash160, opPush20)
		script = append(script, ra.data...)
		script = append(script, opEqualVerify, opCheckSig)
		return script, nil

	case ScriptTypePK:
		script := make([]byte, 0, PublicKeyCompressedLength+2)
		script = append(script, opPush33)
		script = append(script, ra.data...)
		script = append(script, opCheckSig)
		return script, nil

	case ScriptTypeSH:
		script := make([]byte, 0, 23)
		script = append(script, opHash160, opPush20)
		script = append(script, ra.data...)
		script = append(script, opEqual)
		return script, nil

	case ScriptTypeNonStandard:
		return append([]byte{}, ra.data...), nil
	}

	return nil, ErrUnknownScriptTemplate
}
