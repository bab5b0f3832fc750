package vm

// Sample is one intermediate machine state recorded during a sampled evaluation, captured
// immediately after the instruction at IP finished executing. Samples are produced in
// instruction order and, per an evaluation's ordering guarantee, a sample's position in the
// returned slice equals lastIp - 1 for the instruction that produced it.
type Sample struct {
	IP             int
	Stack          [][]byte
	AlternateStack [][]byte
	Error          ErrorKind
}

func snapshot(s *State, ip int) Sample {
	return Sample{
		IP:             ip,
		Stack:          append([][]byte{}, s.Stack...),
		AlternateStack: append([][]byte{}, s.AlternateStack...),
		Error:          s.Error,
	}
}

// SampledEvaluate runs bytecode standalone against an empty initial stack, the same as a
// $(...) evaluation segment, but additionally records every intermediate state stateDebug
// visits along the way. It returns the top stack item of the final state (empty if the
// stack is empty, nil on error) plus the recorded samples, which are returned regardless of
// whether the run ultimately errored so callers can inspect how far execution got.
func SampledEvaluate(bytecode []byte, set InstructionSet, external ExternalState) ([]byte, []Sample, []error) {
	instructions := ParseBytecode(bytecode)
	if AuthenticationInstructionsAreMalformed(instructions) {
		return nil, nil, []error{errMalformed}
	}

	s := NewState(instructions, set, external)

	var samples []Sample
	runStep(s, func(ip int) {
		samples = append(samples, snapshot(s, ip))
	})

	if s.Error != ErrorNone {
		return nil, samples, []error{errKind(s.Error)}
	}

	if len(s.Stack) == 0 {
		return nil, samples, nil
	}

	return s.Stack[len(s.Stack)-1], samples, nil
}
