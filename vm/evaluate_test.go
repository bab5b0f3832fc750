package vm

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/john-parker1/libauth/bitcoin"
)

type testExternalState struct {
	digest   []byte
	lockTime uint32
	sequence uint32
}

func (s testExternalState) SigningSerialization(sigHashType byte) ([]byte, error) {
	return s.digest, nil
}

func (s testExternalState) LockTime() uint32 { return s.lockTime }
func (s testExternalState) Sequence() uint32 { return s.sequence }

func push(data []byte) []byte {
	if len(data) <= 75 {
		return append([]byte{byte(len(data))}, data...)
	}
	panic("test helper does not support large pushes")
}

func TestEvaluateTrivialSuccess(t *testing.T) {
	program := Program{
		UnlockingBytecode: []byte{OP_1},
		LockingBytecode:   nil,
		External:          testExternalState{},
	}
	result := Evaluate(program, BCH_2019_05)
	if !result.Success {
		t.Fatalf("expected success, got error %s", result.Error)
	}
}

func TestEvaluateEmptyStackFails(t *testing.T) {
	program := Program{
		UnlockingBytecode: nil,
		LockingBytecode:   nil,
		External:          testExternalState{},
	}
	result := Evaluate(program, BCH_2019_05)
	if result.Success {
		t.Fatalf("expected failure for an empty final stack")
	}
}

func TestEvaluateUnlockingMustBePushOnly(t *testing.T) {
	program := Program{
		UnlockingBytecode: []byte{OP_1, OP_DUP},
		LockingBytecode:   []byte{OP_DROP},
		External:          testExternalState{},
	}
	result := Evaluate(program, BCH_2019_05)
	if result.Success || result.Error != ErrorRequiresPushOnly {
		t.Fatalf("expected ErrorRequiresPushOnly, got success=%v error=%s", result.Success, result.Error)
	}
}

func TestEvaluateCheckSig(t *testing.T) {
	key, err := bitcoin.GenerateKey(bitcoin.MainNet)
	if err != nil {
		t.Fatalf("generate key : %s", err)
	}

	digest := bitcoin.Sha256(bitcoin.Sha256([]byte("pretend transaction digest")))
	hash, err := bitcoin.NewHash32(digest)
	if err != nil {
		t.Fatalf("hash32 : %s", err)
	}

	sig, err := key.Sign(*hash)
	if err != nil {
		t.Fatalf("sign : %s", err)
	}

	sigWithHashType := append(sig.Bytes(), 0x01)
	pubkeyBytes := key.PublicKey().Bytes()

	unlocking := append(push(sigWithHashType), push(pubkeyBytes)...)
	locking := []byte{OP_CHECKSIG}

	program := Program{
		UnlockingBytecode: unlocking,
		LockingBytecode:   locking,
		External:          testExternalState{digest: digest},
	}

	result := Evaluate(program, BCH_2019_05)
	if !result.Success {
		t.Fatalf("expected successful signature check, got error %s", result.Error)
	}
}

func TestEvaluateCheckSigWrongKeyFails(t *testing.T) {
	key, err := bitcoin.GenerateKey(bitcoin.MainNet)
	if err != nil {
		t.Fatalf("generate key : %s", err)
	}
	otherKey, err := bitcoin.GenerateKey(bitcoin.MainNet)
	if err != nil {
		t.Fatalf("generate key : %s", err)
	}

	digest := bitcoin.Sha256(bitcoin.Sha256([]byte("pretend transaction digest")))
	hash, err := bitcoin.NewHash32(digest)
	if err != nil {
		t.Fatalf("hash32 : %s", err)
	}

	sig, err := key.Sign(*hash)
	if err != nil {
		t.Fatalf("sign : %s", err)
	}

	sigWithHashType := append(sig.Bytes(), 0x01)
	unlocking := append(push(sigWithHashType), push(otherKey.PublicKey().Bytes())...)
	locking := []byte{OP_CHECKSIG}

	program := Program{
		UnlockingBytecode: unlocking,
		LockingBytecode:   locking,
		External:          testExternalState{digest: digest},
	}

	result := Evaluate(program, BCH_2019_05)
	if result.Success {
		t.Fatalf("expected failure when the signature does not match the public key : %s", spew.Sdump(result))
	}
}

func TestEvaluateP2SH(t *testing.T) {
	redeemScript := []byte{OP_1} // trivially-true redeem script
	redeemHash := bitcoin.Hash160(redeemScript)

	locking := append(append([]byte{OP_HASH160, 0x14}, redeemHash...), OP_EQUAL)
	unlocking := push(redeemScript)

	program := Program{
		UnlockingBytecode: unlocking,
		LockingBytecode:   locking,
		External:          testExternalState{},
	}

	result := Evaluate(program, BCH_2019_05)
	if !result.Success {
		t.Fatalf("expected P2SH evaluation to succeed, got error %s", result.Error)
	}
}

func TestEvaluateP2SHWrongRedeemScriptFails(t *testing.T) {
	redeemScript := []byte{OP_1}
	wrongHash := bitcoin.Hash160([]byte{OP_2})

	locking := append(append([]byte{OP_HASH160, 0x14}, wrongHash...), OP_EQUAL)
	unlocking := push(redeemScript)

	program := Program{
		UnlockingBytecode: unlocking,
		LockingBytecode:   locking,
		External:          testExternalState{},
	}

	result := Evaluate(program, BCH_2019_05)
	if result.Success {
		t.Fatalf("expected failure when the redeem script does not match the declared hash")
	}
}

func TestEvaluateSegWitRecoveryException(t *testing.T) {
	// OP_0 <20 byte body>: shaped like a P2WPKH program, should succeed unconditionally.
	locking := append([]byte{OP_0, 20}, make([]byte, 20)...)

	program := Program{
		UnlockingBytecode: nil,
		LockingBytecode:   locking,
		External:          testExternalState{},
	}

	result := Evaluate(program, BCH_2019_05)
	if !result.Success {
		t.Fatalf("expected the SegWit recovery exception to succeed unconditionally, got %s", result.Error)
	}
}

func TestEvaluateMaximumBytecodeLength(t *testing.T) {
	program := Program{
		UnlockingBytecode: make([]byte, MaxBytecodeLength+1),
		LockingBytecode:   nil,
		External:          testExternalState{},
	}

	result := Evaluate(program, BCH_2019_05)
	if result.Success || result.Error != ErrorExceededMaximumBytecodeLengthUnlocking {
		t.Fatalf("expected ErrorExceededMaximumBytecodeLengthUnlocking, got success=%v error=%s", result.Success, result.Error)
	}
}

func TestEvaluateIfElseEndIf(t *testing.T) {
	// OP_1 OP_IF OP_1 OP_ELSE OP_0 OP_ENDIF : condition is true, so the IF branch runs.
	locking := []byte{OP_1, OP_IF, OP_1, OP_ELSE, OP_0, OP_ENDIF}

	program := Program{
		UnlockingBytecode: nil,
		LockingBytecode:   locking,
		External:          testExternalState{},
	}

	result := Evaluate(program, BCH_2019_05)
	if !result.Success {
		t.Fatalf("expected success through the true branch, got error %s", result.Error)
	}
}

func TestEvaluateUnmatchedEndIfFails(t *testing.T) {
	program := Program{
		UnlockingBytecode: nil,
		LockingBytecode:   []byte{OP_ENDIF},
		External:          testExternalState{},
	}

	result := Evaluate(program, BCH_2019_05)
	if result.Success || result.Error != ErrorUnmatchedElseOrEndIf {
		t.Fatalf("expected ErrorUnmatchedElseOrEndIf, got success=%v error=%s", result.Success, result.Error)
	}
}

func TestEvaluatorAdapterReturnsOnlyTopStackItem(t *testing.T) {
	evaluator := NewEvaluator(BCH_2019_05, testExternalState{})

	// Leaves two items on the stack; only the top one (0x02) is the segment's result.
	bytecode := append(push([]byte{0x01}), push([]byte{0x02})...)

	result, errs := evaluator.Evaluate(bytecode)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(result) != 1 || result[0] != 0x02 {
		t.Fatalf("expected top stack item [0x02], got %x", result)
	}
}

func TestEvaluatorAdapterEmptyStack(t *testing.T) {
	evaluator := NewEvaluator(BCH_2019_05, testExternalState{})

	result, errs := evaluator.Evaluate(nil)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(result) != 0 {
		t.Fatalf("expected empty result for an empty stack, got %x", result)
	}
}

func TestEvaluatorAdapterPropagatesError(t *testing.T) {
	evaluator := NewEvaluator(BCH_2019_05, testExternalState{})

	_, errs := evaluator.Evaluate([]byte{OP_DROP})
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
}

func TestEvaluatorAdapterRecordsSamples(t *testing.T) {
	evaluator := NewEvaluator(BCH_2019_05, testExternalState{})

	bytecode := append(push([]byte{0x01}), OP_DUP)
	if _, errs := evaluator.Evaluate(bytecode); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if len(evaluator.LastSamples) != 2 {
		t.Fatalf("expected a sample per instruction, got %d", len(evaluator.LastSamples))
	}
	if evaluator.LastSamples[0].IP != 0 || len(evaluator.LastSamples[0].Stack) != 1 {
		t.Fatalf("unexpected first sample: %+v", evaluator.LastSamples[0])
	}
	if evaluator.LastSamples[1].IP != 1 || len(evaluator.LastSamples[1].Stack) != 2 {
		t.Fatalf("unexpected second sample: %+v", evaluator.LastSamples[1])
	}
}

func TestSampledEvaluateOrdersSamplesByInstruction(t *testing.T) {
	// OP_1 OP_2 OP_ADD : three instructions, so three samples, in source order.
	bytecode := []byte{OP_1, OP_2, OP_ADD}

	top, samples, errs := SampledEvaluate(bytecode, BCH_2019_05, testExternalState{})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(top) != 1 || top[0] != 0x03 {
		t.Fatalf("expected final stack item [0x03], got %x", top)
	}

	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	for i, s := range samples {
		if s.IP != i {
			t.Fatalf("sample %d has ip %d, wanted %d (lastIp - 1 ordering)", i, s.IP, i)
		}
	}
	if len(samples[0].Stack) != 1 || len(samples[1].Stack) != 2 || len(samples[2].Stack) != 1 {
		t.Fatalf("unexpected stack depths across samples: %+v", samples)
	}
}

func TestSampledEvaluateRecordsSamplesUpToFailure(t *testing.T) {
	top, samples, errs := SampledEvaluate([]byte{OP_DROP}, BCH_2019_05, testExternalState{})
	if len(errs) == 0 {
		t.Fatalf("expected an error")
	}
	if top != nil {
		t.Fatalf("expected no result on error, got %x", top)
	}
	if len(samples) != 1 {
		t.Fatalf("expected the failing instruction's sample to still be recorded, got %d", len(samples))
	}
	if samples[0].Error == ErrorNone {
		t.Fatalf("expected the recorded sample to carry the failure")
	}
}
