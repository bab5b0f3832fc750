package vm

import "testing"

func TestEvaluateMaximumStackItemLength(t *testing.T) {
	data := make([]byte, MaxStackItemLength+1)
	unlocking := append([]byte{OP_PUSHDATA2, byte(len(data)), byte(len(data) >> 8)}, data...)

	program := Program{
		UnlockingBytecode: unlocking,
		LockingBytecode:   nil,
		External:          testExternalState{},
	}
	result := Evaluate(program, BCH_2019_05)
	if result.Success {
		t.Fatalf("expected a push over MaxStackItemLength to fail")
	}
}

func TestEvaluateMaximumOperationCount(t *testing.T) {
	locking := make([]byte, 0, MaxOperationCount+2)
	for i := 0; i <= MaxOperationCount; i++ {
		locking = append(locking, OP_1, OP_DROP)
	}
	locking = append(locking, OP_1)

	program := Program{
		UnlockingBytecode: nil,
		LockingBytecode:   locking,
		External:          testExternalState{},
	}
	result := Evaluate(program, BCH_2019_05)
	if result.Success || result.Error != ErrorExceededMaximumOperationCount {
		t.Fatalf("expected ErrorExceededMaximumOperationCount, got success=%v error=%s", result.Success, result.Error)
	}
}

func TestEvaluateMaximumStackDepth(t *testing.T) {
	// Enough OP_1s to exceed MaxStackDepth; pushes do not count toward MaxOperationCount, so
	// it is the stack depth limit that fails: a script can't build an unbounded stack.
	locking := make([]byte, 0, MaxStackDepth+2)
	for i := 0; i <= MaxStackDepth; i++ {
		locking = append(locking, OP_1)
	}

	program := Program{
		UnlockingBytecode: nil,
		LockingBytecode:   locking,
		External:          testExternalState{},
	}
	result := Evaluate(program, BCH_2019_05)
	if result.Success {
		t.Fatalf("expected exceeding a consensus limit to fail")
	}
}

func TestInstructionSetPresetsAreDistinctByStrictness(t *testing.T) {
	if !BCH_2019_05_STRICT.RequireMinimalEncoding || BCH_2019_05.RequireMinimalEncoding {
		t.Fatalf("expected only the STRICT preset to require minimal encoding")
	}
	if !BCH_2019_11_STRICT.RequireNullSignatureFailures || BCH_2019_11.RequireNullSignatureFailures {
		t.Fatalf("expected only the STRICT preset to require null signature failures")
	}
}
