package vm

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Instruction is a single decoded step of a bytecode stream: an opcode plus, for push
// opcodes, the pushed data. Data is nil for non-push opcodes.
type Instruction struct {
	Opcode byte
	Data   []byte

	// Malformed is set on the final instruction of a stream whose declared push length
	// exceeds the remaining bytes. A malformed instruction is still a well-formed value (not
	// a host exception) so a partial instruction stream stays inspectable, per BCH's
	// malformedUnlockingBytecode/malformedLockingBytecode being consensus-significant values.
	Malformed bool
}

// ParseBytecode walks a byte stream into a list of Instructions. Instead of returning an
// error on push overrun, the final instruction is returned with Malformed set and parsing
// stops, since a malformed tail is a consensus-significant value, not a host exception.
func ParseBytecode(b []byte) []Instruction {
	var result []Instruction
	reader := bytes.NewReader(b)

	for reader.Len() > 0 {
		instruction, ok := parseOne(reader)
		result = append(result, instruction)
		if !ok {
			break
		}
	}

	return result
}

func parseOne(r *bytes.Reader) (Instruction, bool) {
	opcode, err := r.ReadByte()
	if err != nil {
		return Instruction{}, false
	}

	dataSize := -1 // -1 means "not a push"
	switch {
	case opcode <= OP_MAX_SINGLE_BYTE_PUSH:
		dataSize = int(opcode)
	case opcode == OP_PUSHDATA1:
		var size uint8
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return Instruction{Opcode: opcode, Malformed: true}, false
		}
		dataSize = int(size)
	case opcode == OP_PUSHDATA2:
		var size uint16
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return Instruction{Opcode: opcode, Malformed: true}, false
		}
		dataSize = int(size)
	case opcode == OP_PUSHDATA4:
		var size uint32
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return Instruction{Opcode: opcode, Malformed: true}, false
		}
		dataSize = int(size)
	}

	if dataSize < 0 {
		return Instruction{Opcode: opcode}, true
	}

	if dataSize == 0 {
		return Instruction{Opcode: opcode, Data: []byte{}}, true
	}

	if dataSize > r.Len() {
		remainder := make([]byte, r.Len())
		r.Read(remainder)
		return Instruction{Opcode: opcode, Data: remainder, Malformed: true}, false
	}

	data := make([]byte, dataSize)
	r.Read(data)
	return Instruction{Opcode: opcode, Data: data}, true
}

// AuthenticationInstructionsAreMalformed reports whether the last instruction of list carries
// the malformed marker.
func AuthenticationInstructionsAreMalformed(list []Instruction) bool {
	if len(list) == 0 {
		return false
	}
	return list[len(list)-1].Malformed
}

// DisassembleBytecode is the pretty-print inverse of ParseBytecode, used in error messages.
func DisassembleBytecode(b []byte) string {
	instructions := ParseBytecode(b)
	return DisassembleInstructions(instructions)
}

// DisassembleInstructions renders an already-parsed instruction list as space separated
// mnemonics, with push data shown as hex.
func DisassembleInstructions(instructions []Instruction) string {
	var out []byte
	for i, instr := range instructions {
		if i > 0 {
			out = append(out, ' ')
		}
		if instr.Malformed {
			out = append(out, []byte(fmt.Sprintf("[malformed %s %x]", opcodeToString(instr.Opcode), instr.Data))...)
			continue
		}
		if instr.Data != nil {
			out = append(out, []byte(fmt.Sprintf("0x%x", instr.Data))...)
			continue
		}
		out = append(out, []byte(opcodeToString(instr.Opcode))...)
	}
	return string(out)
}
