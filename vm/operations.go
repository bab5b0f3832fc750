package vm

import (
	"bytes"

	"github.com/john-parker1/libauth/bitcoin"
)

// operation is a single opcode's behavior. It receives the instruction being executed (for
// push opcodes, Data holds the bytes to push) and returns false if it set State.Error.
type operation func(instr Instruction, s *State) bool

// operations is the full BCH opcode dispatch table, built once at package init.
var operations = buildOperations()

// incrementOperationCount enforces the 201 max-non-push-operation-count limit before running
// the wrapped operation, mirroring how every real interpreter counts "a single non-push
// opcode" regardless of its data payload.
func incrementOperationCount(op operation) operation {
	return func(instr Instruction, s *State) bool {
		if instr.Opcode > OP_16 {
			s.OperationCount++
			if s.OperationCount > MaxOperationCount {
				return s.fail(ErrorExceededMaximumOperationCount)
			}
		}
		return op(instr, s)
	}
}

// conditionallyEvaluate skips op entirely when execution is disabled by an enclosing
// false IF/NOTIF branch, except for the flow-control opcodes themselves which must always
// run to correctly track branch nesting.
func conditionallyEvaluate(op operation) operation {
	return func(instr Instruction, s *State) bool {
		if !s.Executing() {
			return true
		}
		return op(instr, s)
	}
}

// checkLimitsCommon enforces the stack depth and push length limits that apply after every
// operation, regardless of which opcode ran.
func checkLimitsCommon(op operation) operation {
	return func(instr Instruction, s *State) bool {
		if !op(instr, s) {
			return false
		}
		if len(s.Stack)+len(s.AlternateStack) > MaxStackDepth {
			return s.fail(ErrorExceededMaximumStackDepth)
		}
		for _, item := range s.Stack {
			if len(item) > MaxStackItemLength {
				return s.fail(ErrorExceededMaximumPushLength)
			}
		}
		return true
	}
}

func wrap(op operation) operation {
	return checkLimitsCommon(incrementOperationCount(conditionallyEvaluate(op)))
}

// flowControl opcodes are not wrapped in conditionallyEvaluate since they decide whether
// subsequent opcodes execute.
func flowControl(op operation) operation {
	return checkLimitsCommon(incrementOperationCount(op))
}

func buildOperations() map[byte]operation {
	ops := map[byte]operation{}

	push := func(instr Instruction, s *State) bool {
		if s.InstructionSet.RequireMinimalEncoding && !isMinimalPush(instr) {
			return s.fail(ErrorNonMinimallyEncodedPush)
		}
		s.push(instr.Data)
		return true
	}
	for op := byte(0x01); op <= OP_PUSHDATA4; op++ {
		ops[op] = wrap(push)
	}
	ops[OP_0] = wrap(func(instr Instruction, s *State) bool {
		s.push(nil)
		return true
	})
	ops[OP_1NEGATE] = wrap(func(instr Instruction, s *State) bool {
		s.push(encodeScriptNumber(-1))
		return true
	})
	for n := byte(1); n <= 16; n++ {
		n := n
		ops[OP_1+n-1] = wrap(func(instr Instruction, s *State) bool {
			s.push(encodeScriptNumber(int64(n)))
			return true
		})
	}

	ops[OP_NOP] = wrap(func(instr Instruction, s *State) bool { return true })
	for _, nop := range []byte{OP_NOP1, OP_NOP4, OP_NOP5, OP_NOP6, OP_NOP7, OP_NOP8, OP_NOP9, OP_NOP10} {
		ops[nop] = wrap(func(instr Instruction, s *State) bool {
			if s.InstructionSet.DisallowUpgradableNops {
				return s.fail(ErrorUpgradableNop)
			}
			return true
		})
	}

	ops[OP_IF] = flowControl(opIf(false))
	ops[OP_NOTIF] = flowControl(opIf(true))
	ops[OP_ELSE] = flowControl(func(instr Instruction, s *State) bool {
		if len(s.ExecutionStack) == 0 {
			return s.fail(ErrorUnmatchedElseOrEndIf)
		}
		top := len(s.ExecutionStack) - 1
		s.ExecutionStack[top] = !s.ExecutionStack[top]
		return true
	})
	ops[OP_ENDIF] = flowControl(func(instr Instruction, s *State) bool {
		if len(s.ExecutionStack) == 0 {
			return s.fail(ErrorUnmatchedElseOrEndIf)
		}
		s.ExecutionStack = s.ExecutionStack[:len(s.ExecutionStack)-1]
		return true
	})

	ops[OP_VERIFY] = wrap(func(instr Instruction, s *State) bool {
		top, ok := s.pop()
		if !ok {
			return false
		}
		if !boolFromStackItem(top) {
			return s.fail(ErrorVerify)
		}
		return true
	})
	ops[OP_RETURN] = wrap(func(instr Instruction, s *State) bool {
		return s.fail(ErrorReturn)
	})

	ops[OP_TOALTSTACK] = wrap(func(instr Instruction, s *State) bool {
		item, ok := s.pop()
		if !ok {
			return false
		}
		s.AlternateStack = append(s.AlternateStack, item)
		return true
	})
	ops[OP_FROMALTSTACK] = wrap(func(instr Instruction, s *State) bool {
		n := len(s.AlternateStack)
		if n == 0 {
			return s.fail(ErrorInsufficientStackItems)
		}
		item := s.AlternateStack[n-1]
		s.AlternateStack = s.AlternateStack[:n-1]
		s.push(item)
		return true
	})

	ops[OP_2DROP] = wrap(opNDrop(2))
	ops[OP_DROP] = wrap(opNDrop(1))
	ops[OP_2DUP] = wrap(opNDup(2))
	ops[OP_3DUP] = wrap(opNDup(3))
	ops[OP_DUP] = wrap(opNDup(1))
	ops[OP_IFDUP] = wrap(func(instr Instruction, s *State) bool {
		top, ok := s.peek(0)
		if !ok {
			return false
		}
		if boolFromStackItem(top) {
			s.push(top)
		}
		return true
	})
	ops[OP_DEPTH] = wrap(func(instr Instruction, s *State) bool {
		s.push(encodeScriptNumber(int64(len(s.Stack))))
		return true
	})
	ops[OP_NIP] = wrap(func(instr Instruction, s *State) bool {
		if len(s.Stack) < 2 {
			return s.fail(ErrorInsufficientStackItems)
		}
		s.Stack = append(s.Stack[:len(s.Stack)-2], s.Stack[len(s.Stack)-1])
		return true
	})
	ops[OP_OVER] = wrap(func(instr Instruction, s *State) bool {
		item, ok := s.peek(1)
		if !ok {
			return false
		}
		s.push(item)
		return true
	})
	ops[OP_2OVER] = wrap(func(instr Instruction, s *State) bool {
		if len(s.Stack) < 4 {
			return s.fail(ErrorInsufficientStackItems)
		}
		n := len(s.Stack)
		s.push(s.Stack[n-4])
		s.push(s.Stack[n-3])
		return true
	})
	ops[OP_2ROT] = wrap(func(instr Instruction, s *State) bool {
		if len(s.Stack) < 6 {
			return s.fail(ErrorInsufficientStackItems)
		}
		n := len(s.Stack)
		pair := append([][]byte{}, s.Stack[n-6], s.Stack[n-5])
		s.Stack = append(s.Stack[:n-6], s.Stack[n-4:]...)
		s.Stack = append(s.Stack, pair...)
		return true
	})
	ops[OP_2SWAP] = wrap(func(instr Instruction, s *State) bool {
		if len(s.Stack) < 4 {
			return s.fail(ErrorInsufficientStackItems)
		}
		n := len(s.Stack)
		s.Stack[n-4], s.Stack[n-2] = s.Stack[n-2], s.Stack[n-4]
		s.Stack[n-3], s.Stack[n-1] = s.Stack[n-1], s.Stack[n-3]
		return true
	})
	ops[OP_PICK] = wrap(opPickOrRoll(false))
	ops[OP_ROLL] = wrap(opPickOrRoll(true))
	ops[OP_ROT] = wrap(func(instr Instruction, s *State) bool {
		if len(s.Stack) < 3 {
			return s.fail(ErrorInsufficientStackItems)
		}
		n := len(s.Stack)
		s.Stack[n-3], s.Stack[n-2], s.Stack[n-1] = s.Stack[n-2], s.Stack[n-1], s.Stack[n-3]
		return true
	})
	ops[OP_SWAP] = wrap(func(instr Instruction, s *State) bool {
		if len(s.Stack) < 2 {
			return s.fail(ErrorInsufficientStackItems)
		}
		n := len(s.Stack)
		s.Stack[n-2], s.Stack[n-1] = s.Stack[n-1], s.Stack[n-2]
		return true
	})
	ops[OP_TUCK] = wrap(func(instr Instruction, s *State) bool {
		if len(s.Stack) < 2 {
			return s.fail(ErrorInsufficientStackItems)
		}
		n := len(s.Stack)
		top := s.Stack[n-1]
		inserted := append([][]byte{top}, s.Stack[n-2:]...)
		s.Stack = append(s.Stack[:n-2], inserted...)
		return true
	})

	ops[OP_CAT] = wrap(func(instr Instruction, s *State) bool {
		b, ok1 := s.pop()
		a, ok2 := s.pop()
		if !ok1 || !ok2 {
			return false
		}
		combined := append(append([]byte{}, a...), b...)
		if len(combined) > MaxStackItemLength {
			return s.fail(ErrorExceededMaximumPushLength)
		}
		s.push(combined)
		return true
	})
	ops[OP_SPLIT] = wrap(func(instr Instruction, s *State) bool {
		idxBytes, ok1 := s.pop()
		data, ok2 := s.pop()
		if !ok1 || !ok2 {
			return false
		}
		idx, ok, kind := decodeScriptNumber(idxBytes, MaxScriptNumberLength, s.InstructionSet.RequireMinimalEncoding)
		if !ok {
			return s.fail(kind)
		}
		if idx < 0 || idx > int64(len(data)) {
			return s.fail(ErrorInvalidSplitIndex)
		}
		s.push(append([]byte{}, data[:idx]...))
		s.push(append([]byte{}, data[idx:]...))
		return true
	})
	ops[OP_NUM2BIN] = wrap(func(instr Instruction, s *State) bool {
		lengthBytes, ok1 := s.pop()
		numBytes, ok2 := s.pop()
		if !ok1 || !ok2 {
			return false
		}
		length, ok, kind := decodeScriptNumber(lengthBytes, MaxScriptNumberLength, s.InstructionSet.RequireMinimalEncoding)
		if !ok {
			return s.fail(kind)
		}
		if length < 0 || length > MaxStackItemLength {
			return s.fail(ErrorExceededMaximumBytesToEncode)
		}
		encoded, fits := resizeScriptNumber(numBytes, int(length))
		if !fits {
			return s.fail(ErrorCannotEncodeInsufficientBytes)
		}
		s.push(encoded)
		return true
	})
	ops[OP_BIN2NUM] = wrap(func(instr Instruction, s *State) bool {
		data, ok := s.pop()
		if !ok {
			return false
		}
		minimal := minimallyEncodeScriptNumber(data)
		if len(minimal) > MaxScriptNumberLength {
			return s.fail(ErrorInvalidScriptNumber)
		}
		s.push(minimal)
		return true
	})
	ops[OP_SIZE] = wrap(func(instr Instruction, s *State) bool {
		top, ok := s.peek(0)
		if !ok {
			return false
		}
		s.push(encodeScriptNumber(int64(len(top))))
		return true
	})

	ops[OP_AND] = wrap(opBitwise(func(a, b byte) byte { return a & b }))
	ops[OP_OR] = wrap(opBitwise(func(a, b byte) byte { return a | b }))
	ops[OP_XOR] = wrap(opBitwise(func(a, b byte) byte { return a ^ b }))
	ops[OP_EQUAL] = wrap(func(instr Instruction, s *State) bool {
		b, ok1 := s.pop()
		a, ok2 := s.pop()
		if !ok1 || !ok2 {
			return false
		}
		s.push(boolToStackItem(bytes.Equal(a, b)))
		return true
	})
	ops[OP_EQUALVERIFY] = wrap(func(instr Instruction, s *State) bool {
		b, ok1 := s.pop()
		a, ok2 := s.pop()
		if !ok1 || !ok2 {
			return false
		}
		if !bytes.Equal(a, b) {
			return s.fail(ErrorEqualVerify)
		}
		return true
	})

	ops[OP_1ADD] = wrap(opUnaryNumeric(func(n int64) int64 { return n + 1 }))
	ops[OP_1SUB] = wrap(opUnaryNumeric(func(n int64) int64 { return n - 1 }))
	ops[OP_NEGATE] = wrap(opUnaryNumeric(func(n int64) int64 { return -n }))
	ops[OP_ABS] = wrap(opUnaryNumeric(func(n int64) int64 {
		if n < 0 {
			return -n
		}
		return n
	}))
	ops[OP_NOT] = wrap(opUnaryNumeric(func(n int64) int64 {
		if n == 0 {
			return 1
		}
		return 0
	}))
	ops[OP_0NOTEQUAL] = wrap(opUnaryNumeric(func(n int64) int64 {
		if n != 0 {
			return 1
		}
		return 0
	}))

	ops[OP_ADD] = wrap(opBinaryNumeric(func(a, b int64) (int64, bool) { return a + b, true }))
	ops[OP_SUB] = wrap(opBinaryNumeric(func(a, b int64) (int64, bool) { return a - b, true }))
	ops[OP_DIV] = wrap(opBinaryNumeric(func(a, b int64) (int64, bool) {
		if b == 0 {
			return 0, false
		}
		return a / b, true
	}))
	ops[OP_MOD] = wrap(opBinaryNumeric(func(a, b int64) (int64, bool) {
		if b == 0 {
			return 0, false
		}
		return a % b, true
	}))
	ops[OP_BOOLAND] = wrap(opBinaryBool(func(a, b bool) bool { return a && b }))
	ops[OP_BOOLOR] = wrap(opBinaryBool(func(a, b bool) bool { return a || b }))
	ops[OP_NUMEQUAL] = wrap(opBinaryCompare(func(a, b int64) bool { return a == b }))
	ops[OP_NUMEQUALVERIFY] = wrap(func(instr Instruction, s *State) bool {
		if !opBinaryCompare(func(a, b int64) bool { return a == b })(instr, s) {
			return false
		}
		top, ok := s.pop()
		if !ok {
			return false
		}
		if !boolFromStackItem(top) {
			return s.fail(ErrorNumEqualVerify)
		}
		return true
	})
	ops[OP_NUMNOTEQUAL] = wrap(opBinaryCompare(func(a, b int64) bool { return a != b }))
	ops[OP_LESSTHAN] = wrap(opBinaryCompare(func(a, b int64) bool { return a < b }))
	ops[OP_GREATERTHAN] = wrap(opBinaryCompare(func(a, b int64) bool { return a > b }))
	ops[OP_LESSTHANOREQUAL] = wrap(opBinaryCompare(func(a, b int64) bool { return a <= b }))
	ops[OP_GREATERTHANOREQUAL] = wrap(opBinaryCompare(func(a, b int64) bool { return a >= b }))
	ops[OP_MIN] = wrap(opBinaryNumeric(func(a, b int64) (int64, bool) {
		if a < b {
			return a, true
		}
		return b, true
	}))
	ops[OP_MAX] = wrap(opBinaryNumeric(func(a, b int64) (int64, bool) {
		if a > b {
			return a, true
		}
		return b, true
	}))
	ops[OP_WITHIN] = wrap(func(instr Instruction, s *State) bool {
		maxB, ok1 := s.pop()
		minB, ok2 := s.pop()
		xB, ok3 := s.pop()
		if !ok1 || !ok2 || !ok3 {
			return false
		}
		maxN, ok, kind := decodeScriptNumber(maxB, MaxScriptNumberLength, s.InstructionSet.RequireMinimalEncoding)
		if !ok {
			return s.fail(kind)
		}
		minN, ok, kind := decodeScriptNumber(minB, MaxScriptNumberLength, s.InstructionSet.RequireMinimalEncoding)
		if !ok {
			return s.fail(kind)
		}
		xN, ok, kind := decodeScriptNumber(xB, MaxScriptNumberLength, s.InstructionSet.RequireMinimalEncoding)
		if !ok {
			return s.fail(kind)
		}
		s.push(boolToStackItem(xN >= minN && xN < maxN))
		return true
	})

	ops[OP_RIPEMD160] = wrap(opHash(bitcoin.Ripemd160Algorithm))
	ops[OP_SHA1] = wrap(opHash(bitcoin.Sha1Algorithm))
	ops[OP_SHA256] = wrap(opHash(bitcoin.Sha256Algorithm))
	ops[OP_HASH160] = wrap(func(instr Instruction, s *State) bool {
		top, ok := s.pop()
		if !ok {
			return false
		}
		s.push(bitcoin.Hash160(top))
		return true
	})
	ops[OP_HASH256] = wrap(func(instr Instruction, s *State) bool {
		top, ok := s.pop()
		if !ok {
			return false
		}
		s.push(bitcoin.DoubleSha256(top))
		return true
	})
	ops[OP_CODESEPARATOR] = wrap(func(instr Instruction, s *State) bool {
		s.LastCodeSeparator = s.IP
		return true
	})
	ops[OP_CHECKSIG] = wrap(opCheckSig(false))
	ops[OP_CHECKSIGVERIFY] = wrap(opCheckSig(true))
	ops[OP_CHECKDATASIG] = wrap(opCheckDataSig(false))
	ops[OP_CHECKDATASIGVERIFY] = wrap(opCheckDataSig(true))
	ops[OP_CHECKMULTISIG] = wrap(opCheckMultiSig(false))
	ops[OP_CHECKMULTISIGVERIFY] = wrap(opCheckMultiSig(true))

	ops[OP_CHECKLOCKTIMEVERIFY] = wrap(func(instr Instruction, s *State) bool {
		top, ok := s.peek(0)
		if !ok {
			return false
		}
		n, ok, kind := decodeScriptNumber(top, 5, s.InstructionSet.RequireMinimalEncoding)
		if !ok {
			return s.fail(kind)
		}
		if n < 0 {
			return s.fail(ErrorInvalidNaturalNumber)
		}
		if int64(s.External.LockTime()) < n {
			return s.fail(ErrorCheckLockTimeVerify)
		}
		return true
	})
	ops[OP_CHECKSEQUENCEVERIFY] = wrap(func(instr Instruction, s *State) bool {
		top, ok := s.peek(0)
		if !ok {
			return false
		}
		n, ok, kind := decodeScriptNumber(top, 5, s.InstructionSet.RequireMinimalEncoding)
		if !ok {
			return s.fail(kind)
		}
		if n < 0 {
			return s.fail(ErrorInvalidNaturalNumber)
		}
		if int64(s.External.Sequence()) < n {
			return s.fail(ErrorCheckSequenceVerify)
		}
		return true
	})

	ops[OP_REVERSEBYTES] = wrap(func(instr Instruction, s *State) bool {
		top, ok := s.pop()
		if !ok {
			return false
		}
		reversed := make([]byte, len(top))
		for i, b := range top {
			reversed[len(top)-1-i] = b
		}
		s.push(reversed)
		return true
	})

	return ops
}

func opIf(negate bool) operation {
	return func(instr Instruction, s *State) bool {
		if !s.Executing() {
			s.ExecutionStack = append(s.ExecutionStack, false)
			return true
		}
		top, ok := s.pop()
		if !ok {
			return false
		}
		truthy := boolFromStackItem(top)
		if negate {
			truthy = !truthy
		}
		s.ExecutionStack = append(s.ExecutionStack, truthy)
		return true
	}
}

func opNDrop(n int) operation {
	return func(instr Instruction, s *State) bool {
		if len(s.Stack) < n {
			return s.fail(ErrorInsufficientStackItems)
		}
		s.Stack = s.Stack[:len(s.Stack)-n]
		return true
	}
}

func opNDup(n int) operation {
	return func(instr Instruction, s *State) bool {
		if len(s.Stack) < n {
			return s.fail(ErrorInsufficientStackItems)
		}
		start := len(s.Stack) - n
		s.Stack = append(s.Stack, s.Stack[start:start+n]...)
		return true
	}
}

func opPickOrRoll(remove bool) operation {
	return func(instr Instruction, s *State) bool {
		idxBytes, ok := s.pop()
		if !ok {
			return false
		}
		idx, ok, kind := decodeScriptNumber(idxBytes, MaxScriptNumberLength, s.InstructionSet.RequireMinimalEncoding)
		if !ok {
			return s.fail(kind)
		}
		if idx < 0 || int(idx) >= len(s.Stack) {
			return s.fail(ErrorInvalidStackIndex)
		}
		i := len(s.Stack) - 1 - int(idx)
		item := s.Stack[i]
		if remove {
			s.Stack = append(s.Stack[:i], s.Stack[i+1:]...)
		}
		s.push(item)
		return true
	}
}

func opBitwise(f func(a, b byte) byte) operation {
	return func(instr Instruction, s *State) bool {
		b, ok1 := s.pop()
		a, ok2 := s.pop()
		if !ok1 || !ok2 {
			return false
		}
		if len(a) != len(b) {
			return s.fail(ErrorUnsupportedOperation)
		}
		result := make([]byte, len(a))
		for i := range a {
			result[i] = f(a[i], b[i])
		}
		s.push(result)
		return true
	}
}

func opUnaryNumeric(f func(n int64) int64) operation {
	return func(instr Instruction, s *State) bool {
		top, ok := s.pop()
		if !ok {
			return false
		}
		n, ok, kind := decodeScriptNumber(top, MaxScriptNumberLength, s.InstructionSet.RequireMinimalEncoding)
		if !ok {
			return s.fail(kind)
		}
		s.push(encodeScriptNumber(f(n)))
		return true
	}
}

func opBinaryNumeric(f func(a, b int64) (int64, bool)) operation {
	return func(instr Instruction, s *State) bool {
		bB, ok1 := s.pop()
		aB, ok2 := s.pop()
		if !ok1 || !ok2 {
			return false
		}
		a, ok, kind := decodeScriptNumber(aB, MaxScriptNumberLength, s.InstructionSet.RequireMinimalEncoding)
		if !ok {
			return s.fail(kind)
		}
		b, ok, kind := decodeScriptNumber(bB, MaxScriptNumberLength, s.InstructionSet.RequireMinimalEncoding)
		if !ok {
			return s.fail(kind)
		}
		result, valid := f(a, b)
		if !valid {
			return s.fail(ErrorDivisionByZero)
		}
		s.push(encodeScriptNumber(result))
		return true
	}
}

func opBinaryBool(f func(a, b bool) bool) operation {
	return func(instr Instruction, s *State) bool {
		bB, ok1 := s.pop()
		aB, ok2 := s.pop()
		if !ok1 || !ok2 {
			return false
		}
		a, ok, kind := decodeScriptNumber(aB, MaxScriptNumberLength, s.InstructionSet.RequireMinimalEncoding)
		if !ok {
			return s.fail(kind)
		}
		b, ok, kind := decodeScriptNumber(bB, MaxScriptNumberLength, s.InstructionSet.RequireMinimalEncoding)
		if !ok {
			return s.fail(kind)
		}
		s.push(boolToStackItem(f(a != 0, b != 0)))
		return true
	}
}

func opBinaryCompare(f func(a, b int64) bool) operation {
	return func(instr Instruction, s *State) bool {
		bB, ok1 := s.pop()
		aB, ok2 := s.pop()
		if !ok1 || !ok2 {
			return false
		}
		a, ok, kind := decodeScriptNumber(aB, MaxScriptNumberLength, s.InstructionSet.RequireMinimalEncoding)
		if !ok {
			return s.fail(kind)
		}
		b, ok, kind := decodeScriptNumber(bB, MaxScriptNumberLength, s.InstructionSet.RequireMinimalEncoding)
		if !ok {
			return s.fail(kind)
		}
		s.push(boolToStackItem(f(a, b)))
		return true
	}
}

func opHash(algo bitcoin.HashAlgorithm) operation {
	return func(instr Instruction, s *State) bool {
		top, ok := s.pop()
		if !ok {
			return false
		}
		s.push(algo.Hash(top))
		return true
	}
}

func isMinimalPush(instr Instruction) bool {
	data := instr.Data
	n := len(data)
	switch {
	case n == 0:
		return instr.Opcode == OP_0
	case n == 1 && data[0] >= 1 && data[0] <= 16:
		return instr.Opcode == OP_1+data[0]-1
	case n == 1 && data[0] == 0x81:
		return instr.Opcode == OP_1NEGATE
	case n <= 75:
		return instr.Opcode == byte(n)
	case n <= 255:
		return instr.Opcode == OP_PUSHDATA1
	case n <= 65535:
		return instr.Opcode == OP_PUSHDATA2
	default:
		return instr.Opcode == OP_PUSHDATA4
	}
}

func minimallyEncodeScriptNumber(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	result := append([]byte{}, b...)
	last := len(result) - 1
	for last >= 0 && result[last] == 0 {
		last--
	}
	if last < 0 {
		return nil
	}
	if result[last]&0x80 != 0 {
		last++
	}
	result = result[:last+1]
	if len(b) > len(result) {
		sign := b[len(b)-1] & 0x80
		if sign != 0 {
			result[len(result)-1] |= 0x80
		}
	}
	return result
}

func resizeScriptNumber(b []byte, size int) ([]byte, bool) {
	minimal := minimallyEncodeScriptNumber(b)
	if len(minimal) > size {
		return nil, false
	}
	if len(minimal) == size {
		return minimal, true
	}
	var sign byte
	if len(minimal) > 0 {
		sign = minimal[len(minimal)-1] & 0x80
		minimal[len(minimal)-1] &^= 0x80
	}
	result := make([]byte, size)
	copy(result, minimal)
	result[size-1] |= sign
	return result, true
}
