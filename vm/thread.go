package xovm

import (
	"encoding/binary"
)

/*
	Per-thread execution state: the program counter, the loaded program
	image (module list), the operand stack and the heap. One thread
	context executes instructions strictly sequentially; the only
	reentrancy is a host function reentering the interpreter through
	ProcessFunction, which runs a nested dispatch loop on this same
	context.
*/

// ProgramCounter addresses one instruction: the module, the function
// within the module, and the byte offset of the instruction within the
// module's code area.
type ProgramCounter struct {
	InstructionAddress    int
	FunctionInternalIndex int
	ModuleIndex           int
}

// HostFunction is a native function reachable via `extcall`. It may call
// back into the VM with ProcessFunction on the same thread context.
type HostFunction func(t *ThreadContext) error

type ThreadContext struct {
	pc      ProgramCounter
	stack   *Stack
	heap    *Heap
	modules []*Module

	hostFunctions []HostFunction
}

func NewThreadContext(modules ...*Module) *ThreadContext {
	return &ThreadContext{
		stack:   NewStack(),
		heap:    NewHeap(0),
		modules: modules,
	}
}

func (t *ThreadContext) Stack() *Stack { return t.stack }
func (t *ThreadContext) Heap() *Heap   { return t.heap }
func (t *ThreadContext) PC() ProgramCounter {
	return t.pc
}

// RegisterHostFunction appends a host function and returns the external
// function index `extcall` dispatches on.
func (t *ThreadContext) RegisterHostFunction(fn HostFunction) int {
	t.hostFunctions = append(t.hostFunctions, fn)
	return len(t.hostFunctions) - 1
}

func (t *ThreadContext) currentModule() *Module {
	return t.modules[t.pc.ModuleIndex]
}

func (t *ThreadContext) localVariableList(index int) *LocalVariableList {
	return &t.currentModule().LocalVariableLists[index]
}

// Resolves a function public index to the implementing module and
// internal function index.
func (t *ThreadContext) functionTarget(functionPublicIndex int) (int, int) {
	ref := t.currentModule().FunctionIndex[functionPublicIndex]
	return ref.ModuleIndex, ref.FunctionInternalIndex
}

// Resolves a data public index to its section and item.
func (t *ThreadContext) dataTarget(dataPublicIndex int) (*DataSection, DataItem) {
	module := t.currentModule()
	ref := module.DataIndex[dataPublicIndex]
	section := module.dataSection(ref.Kind)
	return section, section.Items[ref.ItemIndex]
}

// dataBytes checks the access range against the data entry and returns
// the aliasing slice.
func (t *ThreadContext) dataBytes(dataPublicIndex, offsetBytes, width int) []byte {
	section, item := t.dataTarget(dataPublicIndex)
	if offsetBytes+width > int(item.Length) {
		panic(errDataOutOfBounds)
	}
	start := int(item.Offset) + offsetBytes
	return section.Data[start : start+width]
}

// instruction decoder
//
// The program counter addresses the opcode; parameters follow at fixed
// offsets per the instruction form. The decoder only extracts parameter
// tuples; advancing the PC is the dispatch loop's job, driven by the
// handler's result.

func (t *ThreadContext) fetchOpcode() Opcode {
	code := t.currentModule().CodeData
	return Opcode(binary.LittleEndian.Uint16(code[t.pc.InstructionAddress:]))
}

func (t *ThreadContext) paramBytes() []byte {
	return t.currentModule().CodeData[t.pc.InstructionAddress:]
}

// [opcode][param:i16]
func (t *ThreadContext) paramI16() uint16 {
	b := t.paramBytes()
	return binary.LittleEndian.Uint16(b[2:])
}

// [opcode][pad:i16][param:i32]
func (t *ThreadContext) paramI32() uint32 {
	b := t.paramBytes()
	return binary.LittleEndian.Uint32(b[4:])
}

// [opcode][p0:i16][p1:i32]
func (t *ThreadContext) paramI16I32() (uint16, uint32) {
	b := t.paramBytes()
	return binary.LittleEndian.Uint16(b[2:]), binary.LittleEndian.Uint32(b[4:])
}

// [opcode][p0:i16][p1:i16][p2:i16]
func (t *ThreadContext) paramI16I16I16() (uint16, uint16, uint16) {
	b := t.paramBytes()
	return binary.LittleEndian.Uint16(b[2:]),
		binary.LittleEndian.Uint16(b[4:]),
		binary.LittleEndian.Uint16(b[6:])
}

// [opcode][pad:i16][p0:i32][p1:i32]
func (t *ThreadContext) paramI32I32() (uint32, uint32) {
	b := t.paramBytes()
	return binary.LittleEndian.Uint32(b[4:]), binary.LittleEndian.Uint32(b[8:])
}

// [opcode][pad:i16][p0:i32][p1:i32][p2:i32]
func (t *ThreadContext) paramI32I32I32() (uint32, uint32, uint32) {
	b := t.paramBytes()
	return binary.LittleEndian.Uint32(b[4:]),
		binary.LittleEndian.Uint32(b[8:]),
		binary.LittleEndian.Uint32(b[12:])
}
