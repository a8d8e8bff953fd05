package xovm

/*
	The fetch/decode/dispatch loop. One iteration:
			1. read the 16-bit opcode at the PC
			2. look up the handler
			3. invoke it against the thread context
			4. apply the result to the PC, or terminate

	This is considered a tight loop. Handlers either mutate only the
	operand stack (arithmetic), also touch data sections or the heap
	(memory), or touch frames and the PC (control flow).
*/

func (t *ThreadContext) processContinuousInstructions() ProgramCounter {
	for {
		op := t.fetchOpcode()
		if int(op) >= MaxOpcodeNumber {
			panic(errUnknownInstruction)
		}

		handle := handlers[op]
		if handle == nil {
			panic(errUnknownInstruction)
		}

		result := handle(t)
		switch result.kind {
		case resultMove:
			t.pc.InstructionAddress += result.move
		case resultJump:
			t.pc = result.pc
		case resultEnd:
			// an MSB-tagged function return was reached, hand the
			// recovered PC back to the caller
			return result.pc
		}
	}
}
