package template

import (
	"bytes"
	"testing"
)

func TestEncodeDataPushMinimal(t *testing.T) {
	tests := []struct {
		in  []byte
		out []byte
	}{
		{nil, []byte{0x00}},
		{[]byte{}, []byte{0x00}},
		{[]byte{1}, []byte{0x51}},
		{[]byte{16}, []byte{0x60}},
		{[]byte{17}, []byte{0x01, 0x11}},
		{make([]byte, 75), append([]byte{75}, make([]byte, 75)...)},
		{make([]byte, 76), append([]byte{0x4c, 76}, make([]byte, 76)...)},
	}

	for i, test := range tests {
		result := encodeDataPush(test.in)
		if !bytes.Equal(result, test.out) {
			t.Fatalf("test %d : got %x, want %x", i, result, test.out)
		}
	}
}

func TestReduceCollectsErrorsButStillReducesBytecode(t *testing.T) {
	script := ResolvedScript{
		{Kind: ResolvedSegmentKindBytecode, BytecodeKind: BytecodeKindOpcode, Bytes: []byte{0x76}},
		{Kind: ResolvedSegmentKindError, ErrorValue: "boom"},
		{Kind: ResolvedSegmentKindBytecode, BytecodeKind: BytecodeKindOpcode, Bytes: []byte{0x88}},
	}

	result := Reduce(script, nil)
	if len(result.Errors) != 1 || result.Errors[0].Message != "boom" {
		t.Fatalf("expected 1 error 'boom', got %+v", result.Errors)
	}
	if !bytes.Equal(result.Bytecode, []byte{0x76, 0x88}) {
		t.Fatalf("expected errors to not block best-effort bytecode, got %x", result.Bytecode)
	}
}

func TestReduceEvaluationWithoutEvaluatorIsError(t *testing.T) {
	script := ResolvedScript{
		{Kind: ResolvedSegmentKindEvaluation, Value: ResolvedScript{
			{Kind: ResolvedSegmentKindBytecode, BytecodeKind: BytecodeKindOpcode, Bytes: []byte{0x51}},
		}},
	}

	result := Reduce(script, nil)
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error for a missing evaluator, got %+v", result.Errors)
	}
}
