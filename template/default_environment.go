package template

import (
	"strings"

	"github.com/john-parker1/libauth/bitcoin"
)

// DefaultOperations returns an OperationSet wired to bitcoin/: Key variables get public_key
// plus real ECDSA, Schnorr and data signing operations, and HdKey variables get public_key and
// ECDSA signing (there are no derivation operations), rather than asking every caller to
// reimplement signing, and AddressData variables can resolve a
// recipient's locking bytecode or public key hash directly from a bitcoin address. WalletData
// is left zero-valued; a caller that declares variables of that type must supply its own
// operations, since there is no single "default" way to interpret arbitrary wallet data.
func DefaultOperations() OperationSet {
	return OperationSet{
		Key:         OperationEntry{Dispatch: keyOperations()},
		HdKey:       OperationEntry{Dispatch: hdKeyOperations()},
		AddressData: OperationEntry{Dispatch: addressDataOperations()},
	}
}

func splitVariableID(identifier string) (variableID, operationID string) {
	i := strings.IndexByte(identifier, '.')
	if i < 0 {
		return identifier, ""
	}
	return identifier[:i], identifier[i+1:]
}

func keyOperations() map[string]CompilerOperation {
	return map[string]CompilerOperation{
		"public_key": func(identifier string, data CompilationData, env *CompilationEnvironment) ([]byte, string) {
			key, errMessage := lookupKey(identifier, data)
			if errMessage != "" {
				return nil, errMessage
			}
			return key.PublicKey().Bytes(), ""
		},
		"ecdsa_signature.all_outputs": func(identifier string, data CompilationData, env *CompilationEnvironment) ([]byte, string) {
			key, errMessage := lookupKey(identifier, data)
			if errMessage != "" {
				return nil, errMessage
			}
			digest, err := bitcoin.NewHash32(bitcoin.Sha256(data.SigningSerialization))
			if err != nil {
				return nil, "Invalid signing serialization digest: " + err.Error()
			}
			sig, err := key.Sign(*digest)
			if err != nil {
				return nil, "ECDSA signing failed: " + err.Error()
			}
			return sig.Bytes(), ""
		},
		"schnorr_signature.all_outputs": func(identifier string, data CompilationData, env *CompilationEnvironment) ([]byte, string) {
			key, errMessage := lookupKey(identifier, data)
			if errMessage != "" {
				return nil, errMessage
			}
			digest, err := bitcoin.NewHash32(bitcoin.Sha256(data.SigningSerialization))
			if err != nil {
				return nil, "Invalid signing serialization digest: " + err.Error()
			}
			sig, err := key.SignSchnorr(*digest)
			if err != nil {
				return nil, "Schnorr signing failed: " + err.Error()
			}
			return sig, ""
		},
		"data_signature.all_outputs": func(identifier string, data CompilationData, env *CompilationEnvironment) ([]byte, string) {
			key, errMessage := lookupKey(identifier, data)
			if errMessage != "" {
				return nil, errMessage
			}
			digest, err := bitcoin.NewHash32(bitcoin.Sha256(data.SigningSerialization))
			if err != nil {
				return nil, "Invalid signing serialization digest: " + err.Error()
			}
			sig, err := key.Sign(*digest)
			if err != nil {
				return nil, "Data signing failed: " + err.Error()
			}
			return sig.Bytes(), ""
		},
	}
}

func hdKeyOperations() map[string]CompilerOperation {
	return map[string]CompilerOperation{
		"public_key": func(identifier string, data CompilationData, env *CompilationEnvironment) ([]byte, string) {
			xkey, errMessage := lookupHdKey(identifier, data)
			if errMessage != "" {
				return nil, errMessage
			}
			return xkey.PublicKey().Bytes(), ""
		},
		"ecdsa_signature.all_outputs": func(identifier string, data CompilationData, env *CompilationEnvironment) ([]byte, string) {
			xkey, errMessage := lookupHdKey(identifier, data)
			if errMessage != "" {
				return nil, errMessage
			}
			digest, err := bitcoin.NewHash32(bitcoin.Sha256(data.SigningSerialization))
			if err != nil {
				return nil, "Invalid signing serialization digest: " + err.Error()
			}
			sig, err := xkey.Key(xkey.Network).Sign(*digest)
			if err != nil {
				return nil, "ECDSA signing failed: " + err.Error()
			}
			return sig.Bytes(), ""
		},
	}
}

func addressDataOperations() map[string]CompilerOperation {
	return map[string]CompilerOperation{
		"locking_bytecode": func(identifier string, data CompilationData, env *CompilationEnvironment) ([]byte, string) {
			ra, errMessage := lookupAddress(identifier, data)
			if errMessage != "" {
				return nil, errMessage
			}
			script, err := ra.LockingScript()
			if err != nil {
				return nil, "Unable to build locking bytecode: " + err.Error()
			}
			return script, ""
		},
		"public_key_hash": func(identifier string, data CompilationData, env *CompilationEnvironment) ([]byte, string) {
			ra, errMessage := lookupAddress(identifier, data)
			if errMessage != "" {
				return nil, errMessage
			}
			hash, err := ra.Hash()
			if err != nil {
				return nil, "Unable to read address hash: " + err.Error()
			}
			return hash.Bytes(), ""
		},
	}
}

// lookupAddress resolves an AddressData variable to a bitcoin.RawAddress, accepting the raw
// type itself, a decoded bitcoin.Address, or an address string, so callers can supply
// whichever is most convenient for their compilation data.
func lookupAddress(identifier string, data CompilationData) (bitcoin.RawAddress, string) {
	variableID, _ := splitVariableID(identifier)
	raw, ok := data.Variables[variableID]
	if !ok {
		return bitcoin.RawAddress{}, "No compilation data was provided for variable '" + variableID + "'."
	}

	switch v := raw.(type) {
	case bitcoin.RawAddress:
		return v, ""
	case bitcoin.Address:
		return bitcoin.NewRawAddressFromAddress(v), ""
	case string:
		address, err := bitcoin.DecodeAddress(v)
		if err != nil {
			return bitcoin.RawAddress{}, "Invalid address for variable '" + variableID + "': " + err.Error()
		}
		return bitcoin.NewRawAddressFromAddress(address), ""
	default:
		return bitcoin.RawAddress{}, "Compilation data for variable '" + variableID + "' is not AddressData."
	}
}

func lookupKey(identifier string, data CompilationData) (bitcoin.Key, string) {
	variableID, _ := splitVariableID(identifier)
	raw, ok := data.Variables[variableID]
	if !ok {
		return bitcoin.Key{}, "No compilation data was provided for variable '" + variableID + "'."
	}
	key, ok := raw.(bitcoin.Key)
	if !ok {
		return bitcoin.Key{}, "Compilation data for variable '" + variableID + "' is not a Key."
	}
	return key, ""
}

func lookupHdKey(identifier string, data CompilationData) (bitcoin.ExtendedKey, string) {
	variableID, _ := splitVariableID(identifier)
	raw, ok := data.Variables[variableID]
	if !ok {
		return bitcoin.ExtendedKey{}, "No compilation data was provided for variable '" + variableID + "'."
	}
	xkey, ok := raw.(bitcoin.ExtendedKey)
	if !ok {
		return bitcoin.ExtendedKey{}, "Compilation data for variable '" + variableID + "' is not an HdKey."
	}
	return xkey, ""
}
