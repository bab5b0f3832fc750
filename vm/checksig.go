package vm

import (
	"github.com/john-parker1/libauth/bitcoin"
)

// schnorrSignatureLength is the fixed 64-byte length of a BIP-340 style Schnorr signature
// (before the trailing sighash type byte). ECDSA signatures are DER-encoded and variable
// length, so a signature's length alone distinguishes the two schemes, the same convention
// BCH's CHECKSIG/CHECKDATASIG opcodes use.
const schnorrSignatureLength = 64

func verifySignature(sigWithHashType []byte, digest []byte, pubkeyBytes []byte) (bool, ErrorKind) {
	if len(sigWithHashType) == 0 {
		return false, ErrorNone
	}

	sigBytes := sigWithHashType[:len(sigWithHashType)-1]

	pubkey, err := bitcoin.PublicKeyFromBytes(pubkeyBytes)
	if err != nil {
		return false, ErrorInvalidPublicKeyEncoding
	}

	hash, err := bitcoin.NewHash32(digest)
	if err != nil {
		return false, ErrorInvalidPublicKeyEncoding
	}

	if len(sigBytes) == schnorrSignatureLength {
		ok, err := pubkey.VerifySchnorr(*hash, sigBytes)
		if err != nil {
			return false, ErrorInvalidSignatureEncoding
		}
		return ok, ErrorNone
	}

	sig, err := bitcoin.SignatureFromBytes(sigBytes)
	if err != nil {
		return false, ErrorInvalidSignatureEncoding
	}

	return sig.Verify(*hash, pubkey), ErrorNone
}

func opCheckSig(verify bool) operation {
	return func(instr Instruction, s *State) bool {
		pubkeyBytes, ok1 := s.pop()
		sig, ok2 := s.pop()
		if !ok1 || !ok2 {
			return false
		}

		valid, failKind := checkSigAgainstSerialization(s, sig, pubkeyBytes)
		if failKind != ErrorNone {
			return s.fail(failKind)
		}
		if !valid && s.InstructionSet.RequireNullSignatureFailures && len(sig) != 0 {
			return s.fail(ErrorSignatureEncodingBugValue)
		}

		if verify {
			if !valid {
				return s.fail(ErrorCheckSigVerify)
			}
			return true
		}

		s.push(boolToStackItem(valid))
		return true
	}
}

func checkSigAgainstSerialization(s *State, sig, pubkeyBytes []byte) (bool, ErrorKind) {
	if len(sig) == 0 {
		return false, ErrorNone
	}
	sigHashType := sig[len(sig)-1]
	digest, err := s.External.SigningSerialization(sigHashType)
	if err != nil {
		return false, ErrorInvalidSignatureEncoding
	}
	return verifySignature(sig, digest, pubkeyBytes)
}

func opCheckDataSig(verify bool) operation {
	return func(instr Instruction, s *State) bool {
		pubkeyBytes, ok1 := s.pop()
		message, ok2 := s.pop()
		sig, ok3 := s.pop()
		if !ok1 || !ok2 || !ok3 {
			return false
		}

		digest := bitcoin.Sha256(bitcoin.Sha256(message))
		valid, failKind := verifySignature(append(append([]byte{}, sig...), 0x00), digest, pubkeyBytes)
		if failKind != ErrorNone {
			return s.fail(failKind)
		}
		if !valid && s.InstructionSet.RequireNullSignatureFailures && len(sig) != 0 {
			return s.fail(ErrorSignatureEncodingBugValue)
		}

		if verify {
			if !valid {
				return s.fail(ErrorCheckDataSigVerify)
			}
			return true
		}

		s.push(boolToStackItem(valid))
		return true
	}
}

const maxMultisigPublicKeys = 20

func opCheckMultiSig(verify bool) operation {
	return func(instr Instruction, s *State) bool {
		keyCountBytes, ok := s.pop()
		if !ok {
			return false
		}
		keyCount, ok, kind := decodeScriptNumber(keyCountBytes, MaxScriptNumberLength, s.InstructionSet.RequireMinimalEncoding)
		if !ok {
			return s.fail(kind)
		}
		if keyCount < 0 || keyCount > maxMultisigPublicKeys {
			return s.fail(ErrorExceedsMaximumMultisigPublicKeyCount)
		}

		pubkeys := make([][]byte, keyCount)
		for i := int64(keyCount) - 1; i >= 0; i-- {
			key, ok := s.pop()
			if !ok {
				return false
			}
			pubkeys[i] = key
		}

		sigCountBytes, ok := s.pop()
		if !ok {
			return false
		}
		sigCount, ok, kind := decodeScriptNumber(sigCountBytes, MaxScriptNumberLength, s.InstructionSet.RequireMinimalEncoding)
		if !ok {
			return s.fail(kind)
		}
		if sigCount < 0 || sigCount > keyCount {
			return s.fail(ErrorInvalidNaturalNumber)
		}

		sigs := make([][]byte, sigCount)
		for i := int64(sigCount) - 1; i >= 0; i-- {
			sig, ok := s.pop()
			if !ok {
				return false
			}
			sigs[i] = sig
		}

		// The famous off-by-one bug: CHECKMULTISIG consumes one extra stack item.
		bugValue, ok := s.pop()
		if !ok {
			return false
		}
		if s.InstructionSet.RequireBugValueZero && len(bugValue) != 0 {
			return s.fail(ErrorSignatureEncodingBugValue)
		}

		keyIndex := 0
		allValid := true
		for _, sig := range sigs {
			matched := false
			for keyIndex < len(pubkeys) {
				valid, failKind := checkSigAgainstSerialization(s, sig, pubkeys[keyIndex])
				keyIndex++
				if failKind != ErrorNone {
					return s.fail(failKind)
				}
				if valid {
					matched = true
					break
				}
			}
			if !matched {
				allValid = false
				break
			}
		}

		if verify {
			if !allValid {
				return s.fail(ErrorCheckMultiSigVerify)
			}
			return true
		}

		s.push(boolToStackItem(allValid))
		return true
	}
}
