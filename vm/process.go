package xovm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

/*
	The host-facing entry. ProcessFunction seeds the stack with the
	arguments, creates the entry function frame with the exit-loop flag
	in its return module index (so the entry function's `end` terminates
	the dispatch loop rather than jumping), runs the loop, and reads the
	results off the stack top.

	Because the entry frame is always flagged, the same function serves
	host callbacks: a host function invoked via `extcall` may call
	ProcessFunction on the same thread context, which nests a fresh
	dispatch loop whose termination restores the PC of the outer one.
*/

var (
	errStackUnderflow           = errors.New("stack underflow")
	errStackOverflow            = errors.New("stack overflow")
	errInvalidFloat             = errors.New("invalid floating-point value")
	errDivisionByZero           = errors.New("division by zero")
	errIntegerOverflowOnDivide  = errors.New("integer overflow on division")
	errFrameCrossesFunction     = errors.New("frame layer crosses a function boundary")
	errLocalVariableOutOfBounds = errors.New("local variable access out of bounds")
	errDataOutOfBounds          = errors.New("data section access out of bounds")
	errHeapOutOfBounds          = errors.New("heap access out of bounds")
	errUnknownInstruction       = errors.New("instruction not recognized")
	errUnknownHostFunction      = errors.New("host function not registered")
	errArgumentCountMismatch    = errors.New("argument count does not match the function type")
)

// TerminateError is an explicit user abort raised by the `panic`
// instruction.
type TerminateError struct {
	Code uint32
}

func (e *TerminateError) Error() string {
	return fmt.Sprintf("terminated with code %d", e.Code)
}

// Error carries the failure and the program counter at which it
// occurred.
type Error struct {
	PC  ProgramCounter
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (module %d, function %d, address 0x%04x)",
		e.Err, e.PC.ModuleIndex, e.PC.FunctionInternalIndex, e.PC.InstructionAddress)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Value is one raw operand slot crossing the host boundary.
type Value uint64

func I32Value(v int32) Value     { return Value(uint64(int64(v))) }
func I64Value(v int64) Value     { return Value(v) }
func F32Value(v float32) Value   { return Value(uint64(math.Float32bits(v))) }
func F64Value(v float64) Value   { return Value(math.Float64bits(v)) }

func (v Value) AsI32() int32   { return int32(uint32(v)) }
func (v Value) AsI64() int64   { return int64(v) }
func (v Value) AsU64() uint64  { return uint64(v) }
func (v Value) AsF32() float32 { return math.Float32frombits(uint32(v)) }
func (v Value) AsF64() float64 { return math.Float64frombits(uint64(v)) }

// ProcessFunction invokes the function identified by
// (moduleIndex, functionPublicIndex) with the given arguments and
// returns its results. Errors carry the PC at which execution stopped.
func ProcessFunction(t *ThreadContext, moduleIndex, functionPublicIndex int, args []Value) (results []Value, err error) {
	module := t.modules[moduleIndex]
	ref := module.FunctionIndex[functionPublicIndex]

	targetModule := t.modules[ref.ModuleIndex]
	entry := targetModule.Functions[ref.FunctionInternalIndex]
	typeEntry := targetModule.TypeTable[entry.TypeIndex]
	localsBytes := targetModule.LocalVariableLists[entry.LocalVariableListIndex].AllocateBytes

	if len(args) != int(typeEntry.ParamsCount) {
		return nil, errArgumentCountMismatch
	}

	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				panic(r)
			}

			var wrapped *Error
			if errors.As(cause, &wrapped) {
				// already wrapped by a nested invocation
				err = cause
			} else {
				err = &Error{PC: t.pc, Err: cause}
			}
			results = nil
		}
	}()

	// seed the arguments as whole slots
	argBytes := make([]byte, len(args)*OperandSizeInBytes)
	for i, arg := range args {
		binary.LittleEndian.PutUint64(argBytes[i*OperandSizeInBytes:], uint64(arg))
	}
	t.stack.PushArguments(argBytes)

	// The exit-loop flag makes the entry function's return terminate
	// the dispatch loop and surface the pre-entry PC, which is how
	// control returns here for both the top-level call and a nested
	// host callback.
	returnPC := ProgramCounter{
		InstructionAddress:    t.pc.InstructionAddress,
		FunctionInternalIndex: t.pc.FunctionInternalIndex,
		ModuleIndex:           int(uint32(t.pc.ModuleIndex) | exitCurrentLoopBit),
	}

	t.stack.CreateFrame(
		typeEntry.ParamsCount,
		typeEntry.ResultsCount,
		entry.LocalVariableListIndex,
		localsBytes,
		&returnPC,
	)

	t.pc = ProgramCounter{
		InstructionAddress:    int(entry.CodeOffset),
		FunctionInternalIndex: ref.FunctionInternalIndex,
		ModuleIndex:           ref.ModuleIndex,
	}

	t.pc = t.processContinuousInstructions()

	resultBytes := t.stack.PopResults(int(typeEntry.ResultsCount))
	results = make([]Value, typeEntry.ResultsCount)
	for i := range results {
		results[i] = Value(binary.LittleEndian.Uint64(resultBytes[i*OperandSizeInBytes:]))
	}
	return results, nil
}
