package template

import (
	"github.com/pkg/errors"
)

var (
	ErrNoEvaluator = errors.New("No Evaluator")
)

// CompilationError is a single entry of a failed compilation's error list: a human-readable
// message paired with the source range it originated from.
type CompilationError struct {
	Message string
	Range   Range
}

// ReduceResult is the output of Reduce: the concatenated bytecode of a ResolvedScript, its
// merged range, the resolved children it was built from, and any errors collected along the
// way. Bytecode is still produced best-effort even when Errors is non-empty.
type ReduceResult struct {
	Bytecode []byte
	Range    Range
	Source   ResolvedScript
	Errors   []CompilationError
}

// Reduce folds a ResolvedScript into a single bytecode blob, running the supplied Evaluator
// for Evaluation segments. A nil evaluator is valid as long as the script contains no
// Evaluation segments; encountering one without an evaluator is a reduction error.
func Reduce(script ResolvedScript, evaluator Evaluator) ReduceResult {
	var bytecode []byte
	var ranges []Range
	var errs []CompilationError

	for _, segment := range script {
		switch segment.Kind {
		case ResolvedSegmentKindBytecode:
			bytecode = append(bytecode, segment.Bytes...)

		case ResolvedSegmentKindPush:
			child := Reduce(segment.Value, evaluator)
			errs = append(errs, child.Errors...)
			bytecode = append(bytecode, encodeDataPush(child.Bytecode)...)

		case ResolvedSegmentKindEvaluation:
			child := Reduce(segment.Value, evaluator)
			errs = append(errs, child.Errors...)

			if evaluator == nil {
				errs = append(errs, CompilationError{
					Message: "This template includes an evaluation, but no Evaluator was provided.",
					Range:   segment.Range,
				})
				break
			}

			top, evalErrs := evaluator.Evaluate(child.Bytecode)
			for _, e := range evalErrs {
				errs = append(errs, CompilationError{Message: e.Error(), Range: segment.Range})
			}
			bytecode = append(bytecode, top...)

		case ResolvedSegmentKindComment:
			// contributes no bytecode

		case ResolvedSegmentKindError:
			errs = append(errs, CompilationError{Message: segment.ErrorValue, Range: segment.Range})
		}

		ranges = append(ranges, segment.Range)
	}

	return ReduceResult{
		Bytecode: bytecode,
		Range:    MergeRanges(ranges),
		Source:   script,
		Errors:   errs,
	}
}

// encodeDataPush returns the minimal Bitcoin Script push encoding of b: an empty payload
// becomes OP_0, a single byte 1-16 becomes OP_{x}, and anything else becomes a length-prefixed
// push (OP_PUSHBYTES_n for short payloads, OP_PUSHDATA1/2/4 for longer ones). It returns
// bytes rather than writing to a stream since the reducer builds bottom-up.
func encodeDataPush(b []byte) []byte {
	const (
		opPushData1 = 0x4c
		opPushData2 = 0x4d
		opPushData4 = 0x4e
	)

	if len(b) == 0 {
		return []byte{0x00}
	}

	if len(b) == 1 && b[0] >= 1 && b[0] <= 16 {
		return []byte{0x50 + b[0]}
	}

	switch {
	case len(b) <= 75:
		result := make([]byte, 0, len(b)+1)
		result = append(result, byte(len(b)))
		return append(result, b...)

	case len(b) <= 0xff:
		result := []byte{opPushData1, byte(len(b))}
		return append(result, b...)

	case len(b) <= 0xffff:
		result := []byte{opPushData2, byte(len(b)), byte(len(b) >> 8)}
		return append(result, b...)

	default:
		n := uint32(len(b))
		result := []byte{opPushData4, byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24)}
		return append(result, b...)
	}
}
