package bitcoin

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/schnorr"
	"github.com/pkg/errors"
)

// SignSchnorr returns a BIP-340 style Schnorr signature of hash for the private key, the
// variant BCH's OP_CHECKDATASIG/OP_CHECKSIG accept alongside classic ECDSA. Signing itself
// is never reimplemented here; this delegates to decred's secp256k1/schnorr, the same way
// Sign delegates to signRFC6979 for ECDSA.
func (k Key) SignSchnorr(hash Hash32) ([]byte, error) {
	priv := secp256k1.PrivKeyFromBytes(k.Number())

	sig, err := schnorr.Sign(priv, hash[:])
	if err != nil {
		return nil, errors.Wrap(err, "schnorr sign")
	}

	return sig.Serialize(), nil
}

// VerifySchnorr verifies a BIP-340 style Schnorr signature against this public key and hash.
func (k PublicKey) VerifySchnorr(hash Hash32, sig []byte) (bool, error) {
	parsedSig, err := schnorr.ParseSignature(sig)
	if err != nil {
		return false, errors.Wrap(err, "parse schnorr signature")
	}

	pub, err := secp256k1.ParsePubKey(k.Bytes())
	if err != nil {
		return false, errors.Wrap(err, "parse public key")
	}

	return parsedSig.Verify(hash[:], pub), nil
}
