package template

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/john-parker1/libauth/bitcoin"
	"github.com/john-parker1/libauth/vm"
)

type fakeExternalState struct{}

func (fakeExternalState) SigningSerialization(sigHashType byte) ([]byte, error) { return nil, nil }
func (fakeExternalState) LockTime() uint32                                      { return 0 }
func (fakeExternalState) Sequence() uint32                                      { return 0 }

func testOpcodes() map[string]byte {
	return map[string]byte{
		"OP_DUP":         0x76,
		"OP_HASH160":     0xa9,
		"OP_EQUALVERIFY": 0x88,
		"OP_CHECKSIG":    0xac,
		"OP_ADD":         0x93,
	}
}

func TestCompileLiteralsAndOpcodes(t *testing.T) {
	env := &CompilationEnvironment{Opcodes: testOpcodes()}
	result := Compile("OP_DUP 0xdeadbeef", CompilationData{}, env, nil)
	if !result.Success {
		t.Fatalf("expected success, got errors : %+v", result.Errors)
	}

	expected := []byte{0x76, 0xde, 0xad, 0xbe, 0xef}
	if !bytes.Equal(result.Bytecode, expected) {
		t.Fatalf("bytecode mismatch : got %x, want %x", result.Bytecode, expected)
	}
}

func TestCompileUnknownIdentifierFails(t *testing.T) {
	env := &CompilationEnvironment{Opcodes: testOpcodes()}
	result := Compile("not_a_real_thing", CompilationData{}, env, nil)
	if result.Success {
		t.Fatalf("expected failure for an unresolvable identifier")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(result.Errors))
	}
}

func TestCompileKeyVariableSignature(t *testing.T) {
	key, err := bitcoin.GenerateKey(bitcoin.MainNet)
	if err != nil {
		t.Fatalf("generate key : %s", err)
	}

	env := &CompilationEnvironment{
		Opcodes: testOpcodes(),
		Variables: map[string]VariableDefinition{
			"owner": {Type: VariableTypeKey},
		},
		Operations: DefaultOperations(),
	}

	data := CompilationData{
		Variables:            map[string]interface{}{"owner": key},
		SigningSerialization: []byte("fake signing serialization"),
	}

	result := Compile("<owner.ecdsa_signature.all_outputs> <owner.public_key> OP_CHECKSIG", data, env, nil)
	if !result.Success {
		t.Fatalf("expected success, got errors : %+v", result.Errors)
	}
	if len(result.Bytecode) == 0 {
		t.Fatalf("expected non-empty bytecode")
	}
}

func TestCompileNestedScript(t *testing.T) {
	env := &CompilationEnvironment{
		Opcodes: testOpcodes(),
		Scripts: map[string]string{
			"add_one": "1 OP_ADD",
		},
	}

	result := Compile("2 add_one", CompilationData{}, env, nil)
	if !result.Success {
		t.Fatalf("expected success, got errors : %+v", result.Errors)
	}

	expected := append(BigIntToScriptNumber(big.NewInt(2)), append(BigIntToScriptNumber(big.NewInt(1)), 0x93)...)
	if !bytes.Equal(result.Bytecode, expected) {
		t.Fatalf("bytecode mismatch : got %x, want %x", result.Bytecode, expected)
	}
}

func TestCompileEvaluation(t *testing.T) {
	env := &CompilationEnvironment{Opcodes: testOpcodes()}
	result := Compile("$(<1>)", CompilationData{}, env, &stubEvaluator{result: []byte{0x02}})
	if !result.Success {
		t.Fatalf("expected success, got errors : %+v", result.Errors)
	}
	if !bytes.Equal(result.Bytecode, []byte{0x02}) {
		t.Fatalf("expected evaluation result to be embedded verbatim, got %x", result.Bytecode)
	}
}

func TestCompileEvaluationWithRealVMEvaluator(t *testing.T) {
	env := &CompilationEnvironment{Opcodes: testOpcodes()}
	evaluator := vm.NewEvaluator(vm.BCH_2019_05, fakeExternalState{})

	result := Compile("$(<1> <1> OP_ADD)", CompilationData{}, env, evaluator)
	if !result.Success {
		t.Fatalf("expected success, got errors : %+v", result.Errors)
	}

	expected := BigIntToScriptNumber(big.NewInt(2))
	if !bytes.Equal(result.Bytecode, expected) {
		t.Fatalf("evaluation segment should embed the top stack item from a real evaluation : got %x, want %x", result.Bytecode, expected)
	}
}

type stubEvaluator struct {
	result []byte
	errs   []error
}

func (s *stubEvaluator) Evaluate(bytecode []byte) ([]byte, []error) {
	return s.result, s.errs
}
