package vm

import (
	"context"

	"github.com/john-parker1/libauth/logger"
)

// SubSystem gates logging from this package. Callers enable it via
// logger.Config.EnableSubSystem(vm.SubSystem).
const SubSystem = "VM"

// Program is a single unlocking/locking bytecode pair to validate, along with the external
// state (signing serialization material, lock time) the locking script may reference.
type Program struct {
	UnlockingBytecode []byte
	LockingBytecode   []byte
	External          ExternalState
}

// Result is the outcome of evaluating a Program.
type Result struct {
	Success bool
	Error   ErrorKind
	Stack   [][]byte

	// Trace holds the disassembled unlocking and locking bytecode, useful for error messages
	// when debugging failed scripts.
	UnlockingTrace string
	LockingTrace   string
}

// Evaluate runs the BCH verification algorithm for a single input: parse both scripts, reject
// malformed or over-length bytecode, require the unlocking script be push-only, run the
// unlocking script, then run the locking script against the resulting stack, applying the
// P2SH special case and the SegWit-recovery consensus exemption along the way.
func Evaluate(program Program, set InstructionSet) Result {
	return EvaluateContext(context.Background(), program, set)
}

// EvaluateContext is Evaluate with an explicit context, logging each stage at Verbose level
// through SubSystem the way template.CompileContext traces its own stages.
func EvaluateContext(ctx context.Context, program Program, set InstructionSet) Result {
	ctx = logger.ContextWithLogSubSystem(ctx, SubSystem)
	logger.Verbose(ctx, "Evaluating program with instruction set %s", set.Name)

	result := Result{
		UnlockingTrace: DisassembleBytecode(program.UnlockingBytecode),
		LockingTrace:   DisassembleBytecode(program.LockingBytecode),
	}

	if len(program.UnlockingBytecode) > MaxBytecodeLength {
		result.Error = ErrorExceededMaximumBytecodeLengthUnlocking
		return result
	}
	if len(program.LockingBytecode) > MaxBytecodeLength {
		result.Error = ErrorExceededMaximumBytecodeLengthLocking
		return result
	}

	unlockingInstructions := ParseBytecode(program.UnlockingBytecode)
	if AuthenticationInstructionsAreMalformed(unlockingInstructions) {
		result.Error = ErrorMalformedUnlockingBytecode
		return result
	}

	lockingInstructions := ParseBytecode(program.LockingBytecode)
	if AuthenticationInstructionsAreMalformed(lockingInstructions) {
		result.Error = ErrorMalformedLockingBytecode
		return result
	}

	if isSegWitRecoveryException(program.LockingBytecode) {
		logger.Verbose(ctx, "Locking bytecode matches the SegWit recovery exception")
		result.Success = true
		return result
	}

	if !isPushOnly(unlockingInstructions) {
		logger.Verbose(ctx, "Unlocking bytecode is not push-only")
		result.Error = ErrorRequiresPushOnly
		return result
	}

	unlockState := NewState(unlockingInstructions, set, program.External)
	run(unlockState)
	if unlockState.Error != ErrorNone {
		result.Error = unlockState.Error
		return result
	}

	// Captured before running the locking script: P2SH takes the redeem script and the stack
	// beneath it from the state the unlocking script left behind, not from whatever the
	// HASH160/EQUAL check script's own execution leaves on the stack.
	stackBeforeLocking := append([][]byte{}, unlockState.Stack...)

	lockState := NewState(lockingInstructions, set, program.External)
	lockState.Stack = append([][]byte{}, unlockState.Stack...)
	run(lockState)

	if lockState.Error != ErrorNone {
		result.Error = lockState.Error
		result.Stack = lockState.Stack
		return result
	}

	if _, ok := matchP2SH(program.LockingBytecode); ok {
		logger.Verbose(ctx, "Locking bytecode matches the P2SH pattern")
		if !verifyFinalStack(lockState) {
			result.Stack = lockState.Stack
			result.Error = ErrorUnsuccessfulEvaluation
			return result
		}

		redeemBytecode, stackWithoutRedeem, ok := popRedeemScript(stackBeforeLocking)
		if !ok {
			result.Error = ErrorMalformedP2shBytecode
			return result
		}

		redeemInstructions := ParseBytecode(redeemBytecode)
		if AuthenticationInstructionsAreMalformed(redeemInstructions) {
			logger.Verbose(ctx, "Redeem bytecode is malformed")
			result.Error = ErrorMalformedP2shBytecode
			return result
		}

		redeemState := NewState(redeemInstructions, set, program.External)
		redeemState.Stack = stackWithoutRedeem
		run(redeemState)

		if redeemState.Error != ErrorNone {
			result.Error = redeemState.Error
			result.Stack = redeemState.Stack
			return result
		}

		result.Stack = redeemState.Stack
		result.Success = verifyFinalStack(redeemState)
		if !result.Success && result.Error == ErrorNone {
			result.Error = ErrorUnsuccessfulEvaluation
		}
		logger.Verbose(ctx, "Redeem script evaluation finished : success %t", result.Success)
		return result
	}

	result.Stack = lockState.Stack
	result.Success = verifyFinalStack(lockState)
	if !result.Success && result.Error == ErrorNone {
		result.Error = ErrorUnsuccessfulEvaluation
	}
	logger.Verbose(ctx, "Evaluation finished : success %t", result.Success)
	return result
}

func verifyFinalStack(s *State) bool {
	if len(s.ExecutionStack) != 0 {
		return false
	}
	if len(s.Stack) != 1 {
		return false
	}
	return boolFromStackItem(s.Stack[0])
}

func isPushOnly(instructions []Instruction) bool {
	for _, instr := range instructions {
		if instr.Opcode > OP_16 {
			return false
		}
	}
	return true
}

// matchP2SH reports whether bytecode is the canonical P2SH pattern
// OP_HASH160 <20-byte hash> OP_EQUAL.
func matchP2SH(bytecode []byte) ([]byte, bool) {
	if len(bytecode) != 23 {
		return nil, false
	}
	if bytecode[0] != OP_HASH160 || bytecode[1] != 0x14 || bytecode[22] != OP_EQUAL {
		return nil, false
	}
	return bytecode[2:22], true
}

func popRedeemScript(stack [][]byte) ([]byte, [][]byte, bool) {
	if len(stack) == 0 {
		return nil, nil, false
	}
	redeem := stack[len(stack)-1]
	return redeem, stack[:len(stack)-1], true
}

// isSegWitRecoveryException implements the narrow consensus carve-out that lets a locking
// script shaped like a SegWit program (OP_0 or OP_1-OP_16, then a single push of 2-40 bytes,
// and nothing else) succeed unconditionally, preserving funds sent to P2WSH/P2WPKH-shaped
// outputs by mistake.
func isSegWitRecoveryException(lockingBytecode []byte) bool {
	if len(lockingBytecode) < 4 || len(lockingBytecode) > 42 {
		return false
	}
	first := lockingBytecode[0]
	if first != OP_0 && !(first >= OP_1 && first <= OP_16) {
		return false
	}
	bodyLength := int(lockingBytecode[1])
	if bodyLength != len(lockingBytecode)-2 {
		return false
	}
	if bodyLength < 2 || bodyLength > 40 {
		return false
	}
	return true
}

// evaluatorAdapter lets the VM satisfy template.Evaluator for compile-time $(...) evaluation,
// where there is no real transaction: the evaluated script runs alone against an empty
// initial stack via SampledEvaluate, and the resulting top stack item (or an error) is
// returned. The samples from the most recent Evaluate call are retained on LastSamples so a
// caller with access to the concrete adapter (as opposed to the narrow template.Evaluator
// interface) can inspect the evaluation step by step, e.g. for a script debugger.
type evaluatorAdapter struct {
	InstructionSet InstructionSet
	External       ExternalState

	LastSamples []Sample
}

// NewEvaluator returns a template.Evaluator-compatible adapter around this VM for compiling
// BTL scripts containing $(...) evaluations.
func NewEvaluator(set InstructionSet, external ExternalState) *evaluatorAdapter {
	return &evaluatorAdapter{InstructionSet: set, External: external}
}

// Evaluate runs bytecode standalone and returns the top stack item of the final state (empty
// if the stack is empty), the interpretation template.Reduce expects for a $(...) evaluation
// segment's result.
func (e *evaluatorAdapter) Evaluate(bytecode []byte) ([]byte, []error) {
	top, samples, errs := SampledEvaluate(bytecode, e.InstructionSet, e.External)
	e.LastSamples = samples
	return top, errs
}

type errKind ErrorKind

func (e errKind) Error() string { return string(e) }

var errMalformed = errKind(ErrorMalformedLockingBytecode)
