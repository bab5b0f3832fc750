package template

import (
	"bytes"
	"testing"

	"github.com/john-parker1/libauth/bitcoin"
)

func TestAddressDataLockingBytecode(t *testing.T) {
	key, err := bitcoin.GenerateKey(bitcoin.MainNet)
	if err != nil {
		t.Fatalf("generate key : %s", err)
	}

	ra, err := key.PublicKey().RawAddress()
	if err != nil {
		t.Fatalf("raw address : %s", err)
	}

	env := &CompilationEnvironment{
		Opcodes: testOpcodes(),
		Variables: map[string]VariableDefinition{
			"recipient": {Type: VariableTypeAddressData},
		},
		Operations: DefaultOperations(),
	}

	data := CompilationData{
		Variables: map[string]interface{}{"recipient": ra},
	}

	result := Compile("<recipient.locking_bytecode>", data, env, nil)
	if !result.Success {
		t.Fatalf("expected success, got errors : %+v", result.Errors)
	}

	lockingScript, err := ra.LockingScript()
	if err != nil {
		t.Fatalf("locking script : %s", err)
	}
	expected := encodeDataPush(lockingScript)
	if !bytes.Equal(result.Bytecode, expected) {
		t.Fatalf("bytecode mismatch : got %x, want %x", result.Bytecode, expected)
	}
}

func TestAddressDataFromAddressString(t *testing.T) {
	key, err := bitcoin.GenerateKey(bitcoin.MainNet)
	if err != nil {
		t.Fatalf("generate key : %s", err)
	}

	ra, err := key.PublicKey().RawAddress()
	if err != nil {
		t.Fatalf("raw address : %s", err)
	}
	address := bitcoin.NewAddressFromRawAddress(ra, bitcoin.MainNet)

	env := &CompilationEnvironment{
		Opcodes: testOpcodes(),
		Variables: map[string]VariableDefinition{
			"recipient": {Type: VariableTypeAddressData},
		},
		Operations: DefaultOperations(),
	}

	data := CompilationData{
		Variables: map[string]interface{}{"recipient": address.String()},
	}

	result := Compile("<recipient.public_key_hash>", data, env, nil)
	if !result.Success {
		t.Fatalf("expected success, got errors : %+v", result.Errors)
	}

	hash, err := ra.Hash()
	if err != nil {
		t.Fatalf("hash : %s", err)
	}
	if !bytes.Equal(result.Bytecode[len(result.Bytecode)-len(hash.Bytes()):], hash.Bytes()) {
		t.Fatalf("expected pushed bytecode to end with the address hash : got %x, want %x", result.Bytecode, hash.Bytes())
	}
}

func TestAddressDataUnknownVariableFails(t *testing.T) {
	env := &CompilationEnvironment{
		Opcodes: testOpcodes(),
		Variables: map[string]VariableDefinition{
			"recipient": {Type: VariableTypeAddressData},
		},
		Operations: DefaultOperations(),
	}

	result := Compile("<recipient.locking_bytecode>", CompilationData{}, env, nil)
	if result.Success {
		t.Fatalf("expected failure for missing compilation data")
	}
}
