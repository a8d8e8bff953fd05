package xovm

import (
	"errors"
	"testing"
)

// A block with arguments and results.
//
//	fn () -> (i32, i32, i32)
//	    imm_i32 11
//	    imm_i32 13
//	    block (i32) -> (i32)        ;; consumes 13
//	        local_load_i32_u(0,0,0)
//	        imm_i32 17
//	        add_i32                 ;; 13 + 17
//	    end
//	    imm_i32 19
//	end
//
// expected (11, 30, 19)
func TestControlFlowBlockWithArgsAndResults(t *testing.T) {
	builder := NewModuleBuilder()
	functionType := builder.AddType(0, 3)
	blockType := builder.AddType(1, 1)
	functionLocals := builder.AddLocalVariableList()
	blockLocals := builder.AddLocalVariableList(4)

	w := NewBytecodeWriter()
	w.WriteOpcodeI32(ImmI32, 11)
	w.WriteOpcodeI32(ImmI32, 13)
	w.WriteOpcodeI32I32(Block, uint32(blockType), uint32(blockLocals))
	w.WriteOpcodeI16I16I16(LocalLoadI32U, 0, 0, 0)
	w.WriteOpcodeI32(ImmI32, 17)
	w.WriteOpcode(AddI32)
	w.WriteOpcode(End)
	w.WriteOpcodeI32(ImmI32, 19)
	w.WriteOpcode(End)

	builder.AddFunction(functionType, functionLocals, w.Bytes())

	results, err := runFunction(builder.Build())
	assertResults(t, results, err, 11, 30, 19)
}

// Max of two with block_alt.
//
//	fn max (a:i32, b:i32) -> (i32)
//	    local_load_i32_u(0,0,0)
//	    local_load_i32_u(0,0,1)
//	    gt_i32_u                      ;; a > b
//	    block_alt () -> (i32) alt=0x20
//	        local_load_i32_u(1,0,0)   ;; then: a
//	        break_alt 0x12
//	        local_load_i32_u(1,0,1)   ;; else: b
//	    end
//	end
func buildMaxModule() *Module {
	builder := NewModuleBuilder()
	functionType := builder.AddType(2, 1)
	blockType := builder.AddType(0, 1)
	functionLocals := builder.AddLocalVariableList(4, 4)
	blockLocals := builder.AddLocalVariableList()

	w := NewBytecodeWriter()
	w.WriteOpcodeI16I16I16(LocalLoadI32U, 0, 0, 0)
	w.WriteOpcodeI16I16I16(LocalLoadI32U, 0, 0, 1)
	w.WriteOpcode(GtI32U)
	w.WriteOpcodeI32I32I32(BlockAlt, uint32(blockType), uint32(blockLocals), 0x20)
	w.WriteOpcodeI16I16I16(LocalLoadI32U, 1, 0, 0)
	w.WriteOpcodeI32(BreakAlt, 0x12)
	w.WriteOpcodeI16I16I16(LocalLoadI32U, 1, 0, 1)
	w.WriteOpcode(End)
	w.WriteOpcode(End)

	builder.AddFunction(functionType, functionLocals, w.Bytes())
	return builder.Build()
}

func TestControlFlowBlockAlt(t *testing.T) {
	results, err := runFunction(buildMaxModule(), I32Value(11), I32Value(13))
	assertResults(t, results, err, 13)

	results, err = runFunction(buildMaxModule(), I32Value(19), I32Value(17))
	assertResults(t, results, err, 19)
}

// Accumulator loop with recur on a block frame.
//
//	fn accumulate (n:i32) -> (i32)    ;; local 1: sum
//	    block () -> ()
//	        if n == 0 { push sum; break out of the function }
//	        sum += n
//	        n -= 1
//	        recur 0
//	    end
//	end
func buildAccumulateModule() *Module {
	builder := NewModuleBuilder()
	functionType := builder.AddType(1, 1)
	blockType := builder.AddType(0, 0)
	functionLocals := builder.AddLocalVariableList(4, 4)
	emptyLocals := builder.AddLocalVariableList()

	w := NewBytecodeWriter()
	w.WriteOpcodeI32I32(Block, uint32(blockType), uint32(emptyLocals))
	loopStart := w.Offset(false)

	w.WriteOpcodeI16I16I16(LocalLoadI32U, 1, 0, 0)
	w.WriteOpcode(EqzI32)
	w.WriteOpcodeI32I32(BlockNez, uint32(emptyLocals), 30)
	w.WriteOpcodeI16I16I16(LocalLoadI32U, 2, 0, 1)
	w.WriteOpcodeI16I32(Break, 2, 0)
	w.WriteOpcode(End)

	w.WriteOpcodeI16I16I16(LocalLoadI32U, 1, 0, 1)
	w.WriteOpcodeI16I16I16(LocalLoadI32U, 1, 0, 0)
	w.WriteOpcode(AddI32)
	w.WriteOpcodeI16I16I16(LocalStoreI32, 1, 0, 1)
	w.WriteOpcodeI16I16I16(LocalLoadI32U, 1, 0, 0)
	w.WriteOpcodeI16(SubImmI32, 1)
	w.WriteOpcodeI16I16I16(LocalStoreI32, 1, 0, 0)
	w.WriteOpcodeI16I32(Recur, 0, uint32(w.Offset(true)-loopStart))
	w.WriteOpcode(End)
	w.WriteOpcode(End)

	builder.AddFunction(functionType, functionLocals, w.Bytes())
	return builder.Build()
}

func TestControlFlowRecurLoop(t *testing.T) {
	results, err := runFunction(buildAccumulateModule(), I32Value(10))
	assertResults(t, results, err, 55)

	results, err = runFunction(buildAccumulateModule(), I32Value(100))
	assertResults(t, results, err, 5050)
}

// Tail call via a function-level recur.
//
//	fn accumulate (sum:i32, n:i32) -> (i32)
//	    sum += n
//	    n -= 1
//	    if n > 0 { push sum; push n; recur 1 }   ;; the function frame
//	    return sum
//	end
func buildTailCallModule() *Module {
	builder := NewModuleBuilder()
	functionType := builder.AddType(2, 1)
	functionLocals := builder.AddLocalVariableList(4, 4)
	emptyLocals := builder.AddLocalVariableList()

	w := NewBytecodeWriter()
	w.WriteOpcodeI16I16I16(LocalLoadI32U, 0, 0, 0)
	w.WriteOpcodeI16I16I16(LocalLoadI32U, 0, 0, 1)
	w.WriteOpcode(AddI32)
	w.WriteOpcodeI16I16I16(LocalStoreI32, 0, 0, 0)
	w.WriteOpcodeI16I16I16(LocalLoadI32U, 0, 0, 1)
	w.WriteOpcodeI16(SubImmI32, 1)
	w.WriteOpcodeI16I16I16(LocalStoreI32, 0, 0, 1)
	w.WriteOpcodeI16I16I16(LocalLoadI32U, 0, 0, 1)
	w.WriteOpcodeI32(ImmI32, 0)
	w.WriteOpcode(GtI32S)
	w.WriteOpcodeI32I32(BlockNez, uint32(emptyLocals), 38)
	w.WriteOpcodeI16I16I16(LocalLoadI32U, 1, 0, 0)
	w.WriteOpcodeI16I16I16(LocalLoadI32U, 1, 0, 1)
	w.WriteOpcodeI16I32(Recur, 1, 0)
	w.WriteOpcode(End)
	w.WriteOpcodeI16I16I16(LocalLoadI32U, 0, 0, 0)
	w.WriteOpcode(End)

	builder.AddFunction(functionType, functionLocals, w.Bytes())
	return builder.Build()
}

func TestControlFlowRecurFunction(t *testing.T) {
	results, err := runFunction(buildTailCallModule(), I32Value(0), I32Value(10))
	assertResults(t, results, err, 55)
}

// break reversed_index=0, next_inst_offset=2 behaves exactly like end.
func TestControlFlowBreakEqualsEnd(t *testing.T) {
	build := func(exit func(w *BytecodeWriter)) *Module {
		builder := NewModuleBuilder()
		functionType := builder.AddType(0, 1)
		functionLocals := builder.AddLocalVariableList()

		w := NewBytecodeWriter()
		w.WriteOpcodeI32(ImmI32, 7)
		exit(w)
		builder.AddFunction(functionType, functionLocals, w.Bytes())
		return builder.Build()
	}

	viaEnd := build(func(w *BytecodeWriter) { w.WriteOpcode(End) })
	viaBreak := build(func(w *BytecodeWriter) { w.WriteOpcodeI16I32(Break, 0, 2) })

	results, err := runFunction(viaEnd)
	assertResults(t, results, err, 7)

	results, err = runFunction(viaBreak)
	assertResults(t, results, err, 7)
}

// Plain function call and dyncall: callee doubles its argument.
func buildCallModule(dynamic bool) *Module {
	builder := NewModuleBuilder()
	mainType := builder.AddType(1, 1)
	doubleType := builder.AddType(1, 1)
	mainLocals := builder.AddLocalVariableList(4)
	doubleLocals := builder.AddLocalVariableList(4)

	w := NewBytecodeWriter()
	w.WriteOpcodeI16I16I16(LocalLoadI32U, 0, 0, 0)
	if dynamic {
		w.WriteOpcodeI32(ImmI32, 1) // callee public index
		w.WriteOpcode(Dyncall)
	} else {
		w.WriteOpcodeI32(Call, 1)
	}
	w.WriteOpcodeI16(AddImmI32, 1)
	w.WriteOpcode(End)
	builder.AddFunction(mainType, mainLocals, w.Bytes())

	w = NewBytecodeWriter()
	w.WriteOpcodeI16I16I16(LocalLoadI32U, 0, 0, 0)
	w.WriteOpcodeI16I16I16(LocalLoadI32U, 0, 0, 0)
	w.WriteOpcode(AddI32)
	w.WriteOpcode(End)
	builder.AddFunction(doubleType, doubleLocals, w.Bytes())

	return builder.Build()
}

func TestControlFlowCall(t *testing.T) {
	// double(21) + 1
	results, err := runFunction(buildCallModule(false), I32Value(21))
	assertResults(t, results, err, 43)
}

func TestControlFlowDyncall(t *testing.T) {
	results, err := runFunction(buildCallModule(true), I32Value(21))
	assertResults(t, results, err, 43)
}

// Branch table without a default arm: three block_nez cases inside one
// block, each breaking out with a result; falling past the last arm hits
// panic 256.
func buildBranchTableModule() *Module {
	builder := NewModuleBuilder()
	functionType := builder.AddType(1, 1)
	blockType := builder.AddType(0, 1)
	functionLocals := builder.AddLocalVariableList(4)
	emptyLocals := builder.AddLocalVariableList()

	w := NewBytecodeWriter()
	w.WriteOpcodeI32I32(Block, uint32(blockType), uint32(emptyLocals))

	// the arms' break instructions all land just past the block's end
	cases := []struct {
		match  uint32
		result uint32
		skip   uint32 // block_nez forward offset past this arm
		exit   uint32 // break forward offset to the function's end
	}{
		{0, 100, 30, 126},
		{1, 101, 30, 74},
		{2, 102, 30, 22},
	}
	for _, c := range cases {
		w.WriteOpcodeI16I16I16(LocalLoadI32U, 1, 0, 0)
		w.WriteOpcodeI32(ImmI32, c.match)
		w.WriteOpcode(EqI32)
		w.WriteOpcodeI32I32(BlockNez, uint32(emptyLocals), c.skip)
		w.WriteOpcodeI32(ImmI32, c.result)
		w.WriteOpcodeI16I32(Break, 1, c.exit)
		w.WriteOpcode(End)
	}

	w.WriteOpcodeI32(Panic, 256)
	w.WriteOpcode(End)
	w.WriteOpcode(End)

	builder.AddFunction(functionType, functionLocals, w.Bytes())
	return builder.Build()
}

func TestControlFlowBranchTable(t *testing.T) {
	for i, expected := range []int32{100, 101, 102} {
		results, err := runFunction(buildBranchTableModule(), I32Value(int32(i)))
		assertResults(t, results, err, expected)
	}

	_, err := runFunction(buildBranchTableModule(), I32Value(5))
	var terminate *TerminateError
	assert(t, errors.As(err, &terminate), "expected a terminate error, got %v", err)
	assert(t, terminate.Code == 256, "expected code 256, got %d", terminate.Code)
}

// A break naming a layer past the enclosing function frame fails.
func TestControlFlowBreakCrossingFunction(t *testing.T) {
	builder := NewModuleBuilder()
	functionType := builder.AddType(0, 0)
	functionLocals := builder.AddLocalVariableList()

	w := NewBytecodeWriter()
	w.WriteOpcodeI16I32(Break, 1, 0)
	w.WriteOpcode(End)
	builder.AddFunction(functionType, functionLocals, w.Bytes())

	_, err := runFunction(builder.Build())
	assertErrorIs(t, err, errFrameCrossesFunction)
}
