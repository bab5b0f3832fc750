package vm

// run executes every instruction in state against the operation table, stopping at the
// first error or once the instruction pointer runs off the end.
func run(s *State) {
	runStep(s, nil)
}

// runStep is run's stateDebug variant: the same execution loop, but after each executed
// instruction it invokes step with the ip that just ran, letting a caller record the
// intermediate state (used by evaluation sampling). step is nil for a plain run.
func runStep(s *State, step func(ip int)) {
	for s.IP = 0; s.IP < len(s.Instructions); s.IP++ {
		instr := s.Instructions[s.IP]
		ip := s.IP

		if instr.Malformed {
			s.fail(ErrorMalformedLockingBytecode)
			if step != nil {
				step(ip)
			}
			return
		}

		op, known := operations[instr.Opcode]
		if !known {
			if s.Executing() {
				s.fail(ErrorUnknownOpcode)
				if step != nil {
					step(ip)
				}
				return
			}
			if step != nil {
				step(ip)
			}
			continue
		}

		cont := op(instr, s)
		if step != nil {
			step(ip)
		}
		if !cont {
			return
		}

		if s.Error != ErrorNone {
			return
		}
	}

	if len(s.ExecutionStack) != 0 {
		s.fail(ErrorUnexpectedEndOfScript)
	}
}
