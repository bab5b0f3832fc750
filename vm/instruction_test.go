package vm

import (
	"bytes"
	"testing"
)

func TestParseBytecodeSimplePushes(t *testing.T) {
	bytecode := []byte{0x01, 0xaa, OP_DUP, OP_EQUAL}
	instructions := ParseBytecode(bytecode)
	if len(instructions) != 3 {
		t.Fatalf("expected 3 instructions, got %d : %+v", len(instructions), instructions)
	}
	if !bytes.Equal(instructions[0].Data, []byte{0xaa}) {
		t.Fatalf("expected a 1-byte push, got %+v", instructions[0])
	}
	if instructions[1].Opcode != OP_DUP || instructions[2].Opcode != OP_EQUAL {
		t.Fatalf("unexpected opcodes : %+v", instructions)
	}
	if AuthenticationInstructionsAreMalformed(instructions) {
		t.Fatalf("well formed bytecode marked malformed")
	}
}

func TestParseBytecodeMalformedPushOverrun(t *testing.T) {
	bytecode := []byte{0x05, 0x01, 0x02} // claims 5 bytes, only 2 remain
	instructions := ParseBytecode(bytecode)
	if len(instructions) != 1 {
		t.Fatalf("expected 1 instruction, got %d", len(instructions))
	}
	if !AuthenticationInstructionsAreMalformed(instructions) {
		t.Fatalf("expected the overrun push to be marked malformed")
	}
	if !bytes.Equal(instructions[0].Data, []byte{0x01, 0x02}) {
		t.Fatalf("expected the malformed instruction to carry the remaining bytes, got %+v", instructions[0].Data)
	}
}

func TestParseBytecodePushData1(t *testing.T) {
	data := bytes.Repeat([]byte{0x42}, 80)
	bytecode := append([]byte{OP_PUSHDATA1, 80}, data...)
	instructions := ParseBytecode(bytecode)
	if len(instructions) != 1 {
		t.Fatalf("expected 1 instruction, got %d", len(instructions))
	}
	if !bytes.Equal(instructions[0].Data, data) {
		t.Fatalf("data mismatch")
	}
}

func TestParseBytecodeEmpty(t *testing.T) {
	if instructions := ParseBytecode(nil); len(instructions) != 0 {
		t.Fatalf("expected no instructions for empty bytecode, got %+v", instructions)
	}
}

func TestDisassembleBytecode(t *testing.T) {
	bytecode := []byte{OP_DUP, OP_HASH160}
	disassembled := DisassembleBytecode(bytecode)
	if disassembled != "OP_DUP OP_HASH160" {
		t.Fatalf("unexpected disassembly : %q", disassembled)
	}
}
