package xovm

/*
	Structured control flow.

	Both `end` and `break` can exit a function or a block; they are the
	same operation except that `break` can name the target layer and the
	forward jump distance:

		end == break reversed_index=0, next_inst_offset=2

	Exiting a block frame advances the PC by next_inst_offset relative
	to the exiting instruction. Exiting a function frame restores the
	stored return PC, or terminates the current dispatch loop when the
	return module index carries the exit-loop flag in its MSB (a nested
	interpreter invocation started by a host callback).

	`recur` re-enters a target frame by resetting it in place: backward
	branch for a block frame, first-instruction restart for a function
	frame (the tail-call form).
*/

// MSB of the frame's return module index: the frame is the entry of a
// nested interpreter invocation, its return terminates the current
// dispatch loop instead of continuing in the caller.
const exitCurrentLoopBit = uint32(0x8000_0000)

func registerControlFlow() {
	register(End, handleEnd)
	register(Block, handleBlock)
	register(BlockAlt, handleBlockAlt)
	register(BlockNez, handleBlockNez)
	register(Break, handleBreak)
	register(BreakAlt, handleBreakAlt)
	register(Recur, handleRecur)
	register(Call, handleCall)
	register(Dyncall, handleDyncall)
}

func handleEnd(t *ThreadContext) interpretResult {
	const instructionEndLength = 2
	return doBreak(t, 0, instructionEndLength)
}

func handleBlock(t *ThreadContext) interpretResult {
	typeIndex, localVariableListIndex := t.paramI32I32()

	module := t.currentModule()
	typeEntry := module.TypeTable[typeIndex]
	localsBytes := module.LocalVariableLists[localVariableListIndex].AllocateBytes

	t.stack.CreateFrame(
		typeEntry.ParamsCount,
		typeEntry.ResultsCount,
		localVariableListIndex,
		localsBytes,
		nil,
	)
	return moveResult(12)
}

func handleBlockAlt(t *ThreadContext) interpretResult {
	condition := t.stack.PopI32U()
	typeIndex, localVariableListIndex, altInstOffset := t.paramI32I32I32()

	module := t.currentModule()
	typeEntry := module.TypeTable[typeIndex]
	localsBytes := module.LocalVariableLists[localVariableListIndex].AllocateBytes

	t.stack.CreateFrame(
		typeEntry.ParamsCount,
		typeEntry.ResultsCount,
		localVariableListIndex,
		localsBytes,
		nil,
	)

	if condition == 0 {
		// jump to the "else" body
		return moveResult(int(altInstOffset))
	}
	return moveResult(16)
}

func handleBlockNez(t *ThreadContext) interpretResult {
	condition := t.stack.PopI32U()
	localVariableListIndex, nextInstOffset := t.paramI32I32()

	if condition == 0 {
		// no frame, skip the block body
		return moveResult(int(nextInstOffset))
	}

	localsBytes := t.currentModule().LocalVariableLists[localVariableListIndex].AllocateBytes

	// block_nez has no type: no params and no results
	t.stack.CreateFrame(0, 0, localVariableListIndex, localsBytes, nil)
	return moveResult(12)
}

func handleBreak(t *ThreadContext) interpretResult {
	reversedIndex, nextInstOffset := t.paramI16I32()
	return doBreak(t, reversedIndex, nextInstOffset)
}

// break_alt next == break 0, next
func handleBreakAlt(t *ThreadContext) interpretResult {
	nextInstOffset := t.paramI32()
	return doBreak(t, 0, nextInstOffset)
}

func doBreak(t *ThreadContext, reversedIndex uint16, nextInstOffset uint32) interpretResult {
	returnPC := t.stack.RemoveFrames(reversedIndex)

	if returnPC == nil {
		// block end, move on
		return moveResult(int(nextInstOffset))
	}

	// function end; next_inst_offset does not apply
	if uint32(returnPC.ModuleIndex)&exitCurrentLoopBit != 0 {
		// the frame was the entry of a nested interpreter invocation:
		// strip the flag and terminate this dispatch loop
		recovered := ProgramCounter{
			InstructionAddress:    returnPC.InstructionAddress,
			FunctionInternalIndex: returnPC.FunctionInternalIndex,
			ModuleIndex:           int(uint32(returnPC.ModuleIndex) &^ exitCurrentLoopBit),
		}
		return endResult(recovered)
	}
	return jumpResult(*returnPC)
}

func handleRecur(t *ThreadContext) interpretResult {
	reversedIndex, startInstOffset := t.paramI16I32()
	return doRecur(t, reversedIndex, startInstOffset)
}

func doRecur(t *ThreadContext, reversedIndex uint16, startInstOffset uint32) interpretResult {
	frameType := t.stack.ResetFrames(reversedIndex)

	if frameType == FrameTypeFunction {
		// re-enter the current function from its first instruction;
		// start_inst_offset is ignored
		entry := t.currentModule().Functions[t.pc.FunctionInternalIndex]
		return moveResult(int(entry.CodeOffset) - t.pc.InstructionAddress)
	}

	// block frame: branch backward to just after the block's opening
	return moveResult(-int(startInstOffset))
}

func handleCall(t *ThreadContext) interpretResult {
	functionPublicIndex := t.paramI32()
	// the call instruction is 8 bytes long
	return doCall(t, int(functionPublicIndex), 8)
}

// dyncall takes the function public index from the stack; the
// closure-object convention (function index + captured data pointer) is
// the caller's business, the core only dispatches by index.
func handleDyncall(t *ThreadContext) interpretResult {
	functionPublicIndex := t.stack.PopI32U()
	return doCall(t, int(functionPublicIndex), 2)
}

func doCall(t *ThreadContext, functionPublicIndex int, instructionLength int) interpretResult {
	targetModuleIndex, targetFunctionInternalIndex := t.functionTarget(functionPublicIndex)

	targetModule := t.modules[targetModuleIndex]
	entry := targetModule.Functions[targetFunctionInternalIndex]
	typeEntry := targetModule.TypeTable[entry.TypeIndex]
	localsBytes := targetModule.LocalVariableLists[entry.LocalVariableListIndex].AllocateBytes

	// when the callee finishes, execution resumes at the instruction
	// after the call
	returnPC := ProgramCounter{
		InstructionAddress:    t.pc.InstructionAddress + instructionLength,
		FunctionInternalIndex: t.pc.FunctionInternalIndex,
		ModuleIndex:           t.pc.ModuleIndex,
	}

	t.stack.CreateFrame(
		typeEntry.ParamsCount,
		typeEntry.ResultsCount,
		entry.LocalVariableListIndex,
		localsBytes,
		&returnPC,
	)

	return jumpResult(ProgramCounter{
		InstructionAddress:    int(entry.CodeOffset),
		FunctionInternalIndex: targetFunctionInternalIndex,
		ModuleIndex:           targetModuleIndex,
	})
}
