package xovm

import (
	"encoding/binary"
	"math"
)

/*
	The operand stack:
			- little endian
			- one contiguous byte buffer holding interleaved frame info
			  records, local variable slots and operands
			- SP is the byte offset one past the last live operand
			- FP is the byte offset of the current frame's info record
			- every operand occupies one 8-byte slot; i32 values are sign
			  or zero extended to i64 when pushed
			- a fixed swap buffer shuttles arguments/results across frame
			  transitions

	Frame layout (ascending addresses from the frame start):

			FP ->  [ frame info (40 bytes)          ]
			       [ argument 0                     ]  <- local index 0
			       [ argument 1                     ]  <- local index 1
			       ...
			       [ local var (first non-argument) ]  <- local index = params count
			       ...
			       [ operand 0                      ]
			       ...
			SP ->  (one past the last operand)

	Frame info record (little endian):

			offset  width  field
			0       u32    previous_frame_address
			4       u32    function_frame_address (== own address iff function frame)
			8       u16    params_count
			10      u16    results_count
			12      u32    local_variable_list_index
			16      u32    local_variables_with_arguments_allocated_bytes
			20      u32    return_module_index (MSB set: exit current loop)
			24      u32    return_function_internal_index
			28      u32    return_instruction_address
			32      --     reserved, pads the record to 40 bytes

	The return_* fields are all zero for a block frame.
*/

const (
	// Every operand slot is 8 bytes.
	OperandSizeInBytes = 8

	FrameInfoSizeInBytes = 40

	initStackSizeInBytes = 64 * 1024
	maxStackSizeInBytes  = 32 * 1024 * 1024
	swapSizeInBytes      = 64 * 1024
)

type FrameType int

const (
	FrameTypeFunction FrameType = iota
	FrameTypeBlock
)

// FrameInfo is a decoded copy of the record at a frame's base address.
// The record bytes themselves stay in the stack buffer; addresses are
// stable offsets into the buffer, so the copy never goes stale within
// a single instruction.
type FrameInfo struct {
	Address uint32

	PreviousFrameAddress                      uint32
	FunctionFrameAddress                      uint32
	ParamsCount                               uint16
	ResultsCount                              uint16
	LocalVariableListIndex                    uint32
	LocalVariablesWithArgumentsAllocatedBytes uint32
	ReturnModuleIndex                         uint32
	ReturnFunctionInternalIndex               uint32
	ReturnInstructionAddress                  uint32
}

func (f *FrameInfo) Type() FrameType {
	if f.FunctionFrameAddress == f.Address {
		return FrameTypeFunction
	}
	return FrameTypeBlock
}

type Stack struct {
	data []byte
	sp   int
	fp   int
	swap []byte
}

func NewStack() *Stack {
	return &Stack{
		data: make([]byte, initStackSizeInBytes),
		swap: make([]byte, swapSizeInBytes),
	}
}

func (s *Stack) SP() int { return s.sp }
func (s *Stack) FP() int { return s.fp }

// Doubles the buffer when a new frame would land in the upper half,
// keeping room for its locals and operands. Frame records are referenced
// by offset, so growth never invalidates the chain.
func (s *Stack) checkAndIncreaseCapacity() {
	if s.sp <= len(s.data)/2 {
		return
	}

	newSize := len(s.data) * 2
	if newSize > maxStackSizeInBytes {
		panic(errStackOverflow)
	}

	grown := make([]byte, newSize)
	copy(grown, s.data)
	s.data = grown
}

func (s *Stack) readFrameInfo(addr int) FrameInfo {
	b := s.data[addr:]
	return FrameInfo{
		Address:                                   uint32(addr),
		PreviousFrameAddress:                      binary.LittleEndian.Uint32(b),
		FunctionFrameAddress:                      binary.LittleEndian.Uint32(b[4:]),
		ParamsCount:                               binary.LittleEndian.Uint16(b[8:]),
		ResultsCount:                              binary.LittleEndian.Uint16(b[10:]),
		LocalVariableListIndex:                    binary.LittleEndian.Uint32(b[12:]),
		LocalVariablesWithArgumentsAllocatedBytes: binary.LittleEndian.Uint32(b[16:]),
		ReturnModuleIndex:                         binary.LittleEndian.Uint32(b[20:]),
		ReturnFunctionInternalIndex:               binary.LittleEndian.Uint32(b[24:]),
		ReturnInstructionAddress:                  binary.LittleEndian.Uint32(b[28:]),
	}
}

func (s *Stack) writeFrameInfo(addr int, info FrameInfo) {
	b := s.data[addr:]
	binary.LittleEndian.PutUint32(b, info.PreviousFrameAddress)
	binary.LittleEndian.PutUint32(b[4:], info.FunctionFrameAddress)
	binary.LittleEndian.PutUint16(b[8:], info.ParamsCount)
	binary.LittleEndian.PutUint16(b[10:], info.ResultsCount)
	binary.LittleEndian.PutUint32(b[12:], info.LocalVariableListIndex)
	binary.LittleEndian.PutUint32(b[16:], info.LocalVariablesWithArgumentsAllocatedBytes)
	binary.LittleEndian.PutUint32(b[20:], info.ReturnModuleIndex)
	binary.LittleEndian.PutUint32(b[24:], info.ReturnFunctionInternalIndex)
	binary.LittleEndian.PutUint32(b[28:], info.ReturnInstructionAddress)
	for i := 32; i < FrameInfoSizeInBytes; i++ {
		b[i] = 0
	}
}

// Walks the frame chain `reversedIndex` links up from the current frame.
// Index 0 is the current frame. The walk may stop AT a function frame but
// must never step past one.
func (s *Stack) frameInfoByReversedIndex(reversedIndex uint16) FrameInfo {
	remains := reversedIndex
	info := s.readFrameInfo(s.fp)

	for remains > 0 {
		if info.Type() == FrameTypeFunction {
			// crossing a function boundary is not allowed
			panic(errFrameCrossesFunction)
		}
		info = s.readFrameInfo(int(info.PreviousFrameAddress))
		remains--
	}
	return info
}

// The operand-region floor of the current frame. Pops below this offset
// are stack underflow.
func (s *Stack) operandRegionFloor() int {
	info := s.readFrameInfo(s.fp)
	return s.fp + FrameInfoSizeInBytes + int(info.LocalVariablesWithArgumentsAllocatedBytes)
}

func (s *Stack) checkOperandsToPop(count int) {
	if s.sp-count*OperandSizeInBytes < s.operandRegionFloor() {
		panic(errStackUnderflow)
	}
}

// operand push/pop/peek

func (s *Stack) PushI64U(v uint64) {
	binary.LittleEndian.PutUint64(s.data[s.sp:], v)
	s.sp += OperandSizeInBytes
}

func (s *Stack) PushI64S(v int64) {
	s.PushI64U(uint64(v))
}

// sign-extends to the full slot
func (s *Stack) PushI32S(v int32) {
	s.PushI64U(uint64(int64(v)))
}

// zero-extends to the full slot
func (s *Stack) PushI32U(v uint32) {
	s.PushI64U(uint64(v))
}

// PushF64 writes the raw bit pattern without a validity check; only loads
// and pops validate, so arithmetic may transiently hold NaN or infinity.
func (s *Stack) PushF64(v float64) {
	s.PushI64U(math.Float64bits(v))
}

func (s *Stack) PushF32(v float32) {
	s.PushI64U(uint64(math.Float32bits(v)))
}

func (s *Stack) PeekI64U() uint64 {
	return binary.LittleEndian.Uint64(s.data[s.sp-OperandSizeInBytes:])
}

func (s *Stack) PeekI64S() int64 { return int64(s.PeekI64U()) }
func (s *Stack) PeekI32U() uint32 {
	return binary.LittleEndian.Uint32(s.data[s.sp-OperandSizeInBytes:])
}
func (s *Stack) PeekI32S() int32 { return int32(s.PeekI32U()) }

func (s *Stack) PopI64U() uint64 {
	s.checkOperandsToPop(1)
	s.sp -= OperandSizeInBytes
	return binary.LittleEndian.Uint64(s.data[s.sp:])
}

func (s *Stack) PopI64S() int64 { return int64(s.PopI64U()) }

func (s *Stack) PopI32U() uint32 {
	s.checkOperandsToPop(1)
	s.sp -= OperandSizeInBytes
	return binary.LittleEndian.Uint32(s.data[s.sp:])
}

func (s *Stack) PopI32S() int32 { return int32(s.PopI32U()) }

// PopF64 validates the bit pattern: NaN, infinities and negative zero
// terminate execution.
func (s *Stack) PopF64() float64 {
	bits := s.PopI64U()
	checkF64Bits(bits)
	return math.Float64frombits(bits)
}

func (s *Stack) PopF32() float32 {
	bits := uint32(s.PopI64U())
	checkF32Bits(bits)
	return math.Float32frombits(bits)
}

// raw slot transfer, for bulk memory copies

// PushOperandFromBytes copies one 8-byte slot from src onto the stack.
func (s *Stack) PushOperandFromBytes(src []byte) {
	copy(s.data[s.sp:s.sp+OperandSizeInBytes], src)
	s.sp += OperandSizeInBytes
}

// PopOperandToBytes pops one slot and returns its bytes. The returned
// slice aliases the stack buffer and is only valid until the next push.
func (s *Stack) PopOperandToBytes() []byte {
	s.checkOperandsToPop(1)
	s.sp -= OperandSizeInBytes
	return s.data[s.sp : s.sp+OperandSizeInBytes]
}

// PushArguments bulk-writes whole slots at the stack top. Used to seed
// the entry function's arguments.
func (s *Stack) PushArguments(data []byte) {
	copy(s.data[s.sp:], data)
	s.sp += len(data)
}

// PopResults pops the top `count` slots and returns their bytes. The
// returned slice aliases the stack buffer.
func (s *Stack) PopResults(count int) []byte {
	length := count * OperandSizeInBytes
	s.sp -= length
	return s.data[s.sp : s.sp+length]
}

// swap area

func (s *Stack) moveOperandsToSwap(operandsCount int) {
	if operandsCount == 0 {
		return
	}

	if s.fp == 0 {
		// there may be no frame at all yet (seeding the entry function's
		// arguments), in which case the floor check cannot be applied
		if s.sp < operandsCount*OperandSizeInBytes {
			panic(errStackUnderflow)
		}
	} else {
		s.checkOperandsToPop(operandsCount)
	}

	sizeInBytes := operandsCount * OperandSizeInBytes
	offset := s.sp - sizeInBytes
	copy(s.swap, s.data[offset:s.sp])
	s.sp = offset
}

func (s *Stack) restoreOperandsFromSwap(operandsCount int) {
	if operandsCount == 0 {
		return
	}
	sizeInBytes := operandsCount * OperandSizeInBytes
	copy(s.data[s.sp:], s.swap[:sizeInBytes])
	s.sp += sizeInBytes
}

// frame transitions

// CreateFrame pushes a new frame whose arguments are the top paramsCount
// operands of the current frame. A non-nil returnPC makes it a function
// frame; nil makes it a block frame inheriting the enclosing function
// frame address.
func (s *Stack) CreateFrame(
	paramsCount uint16,
	resultsCount uint16,
	localVariableListIndex uint32,
	localVariablesWithArgumentsAllocatedBytes uint32,
	returnPC *ProgramCounter,
) {
	s.checkAndIncreaseCapacity()

	s.moveOperandsToSwap(int(paramsCount))

	previousFP := s.fp
	nextFP := s.sp

	info := FrameInfo{
		Address:                uint32(nextFP),
		PreviousFrameAddress:   uint32(previousFP),
		ParamsCount:            paramsCount,
		ResultsCount:           resultsCount,
		LocalVariableListIndex: localVariableListIndex,
		LocalVariablesWithArgumentsAllocatedBytes: localVariablesWithArgumentsAllocatedBytes,
	}

	if returnPC != nil {
		// function frame: points at itself, records the return PC
		info.FunctionFrameAddress = uint32(nextFP)
		info.ReturnModuleIndex = uint32(returnPC.ModuleIndex)
		info.ReturnFunctionInternalIndex = uint32(returnPC.FunctionInternalIndex)
		info.ReturnInstructionAddress = uint32(returnPC.InstructionAddress)
	} else {
		// block frame: inherits the enclosing function frame
		info.FunctionFrameAddress = s.readFrameInfo(previousFP).FunctionFrameAddress
	}

	s.writeFrameInfo(nextFP, info)
	s.sp += FrameInfoSizeInBytes
	s.fp = nextFP

	s.restoreOperandsFromSwap(int(paramsCount))

	// zero the locals that are not arguments
	localsBytesWithoutArgs := int(localVariablesWithArgumentsAllocatedBytes) -
		int(paramsCount)*OperandSizeInBytes
	clear(s.data[s.sp : s.sp+localsBytesWithoutArgs])
	s.sp += localsBytesWithoutArgs
}

// RemoveFrames removes the frame `reversedIndex` links up plus every frame
// above it, carrying the target frame's declared results back to the
// caller's operand region. Returns the return PC when the removed target
// was a function frame, nil for a block frame.
func (s *Stack) RemoveFrames(reversedIndex uint16) *ProgramCounter {
	info := s.frameInfoByReversedIndex(reversedIndex)
	isFunctionFrame := info.Type() == FrameTypeFunction

	s.moveOperandsToSwap(int(info.ResultsCount))

	s.sp = int(info.Address)
	s.fp = int(info.PreviousFrameAddress)

	s.restoreOperandsFromSwap(int(info.ResultsCount))

	if isFunctionFrame {
		return &ProgramCounter{
			ModuleIndex:           int(info.ReturnModuleIndex),
			FunctionInternalIndex: int(info.ReturnFunctionInternalIndex),
			InstructionAddress:    int(info.ReturnInstructionAddress),
		}
	}
	return nil
}

// ResetFrames re-enters the target frame as if it had just been created:
// the top paramsCount operands become the new arguments, the non-argument
// locals are zeroed, and everything above the target frame's local area is
// discarded. The frame info record itself stays in place.
func (s *Stack) ResetFrames(reversedIndex uint16) FrameType {
	info := s.frameInfoByReversedIndex(reversedIndex)
	frameType := info.Type()
	frameAddr := int(info.Address)
	paramsBytes := int(info.ParamsCount) * OperandSizeInBytes
	localsBytes := int(info.LocalVariablesWithArgumentsAllocatedBytes)

	// Fast path: resetting the current frame while its operand region
	// holds exactly the new arguments. The operands can be moved over the
	// argument slots directly instead of a round trip through swap.
	if reversedIndex == 0 &&
		s.sp == s.fp+FrameInfoSizeInBytes+localsBytes+paramsBytes {
		localsStart := s.fp + FrameInfoSizeInBytes
		copy(s.data[localsStart:localsStart+paramsBytes], s.data[s.sp-paramsBytes:s.sp])
		s.sp -= paramsBytes

		clear(s.data[localsStart+paramsBytes : localsStart+localsBytes])
		return frameType
	}

	s.moveOperandsToSwap(int(info.ParamsCount))

	// drop every frame and operand above the target's info record
	s.fp = frameAddr
	s.sp = frameAddr + FrameInfoSizeInBytes

	s.restoreOperandsFromSwap(int(info.ParamsCount))

	localsBytesWithoutArgs := localsBytes - paramsBytes
	clear(s.data[s.sp : s.sp+localsBytesWithoutArgs])
	s.sp += localsBytesWithoutArgs

	return frameType
}

// local variable access

// localVariableAddress resolves (layer, local index, byte offset) to an
// absolute offset into the stack buffer. The width is checked against the
// variable's slot.
func (s *Stack) localVariableAddress(t *ThreadContext, reversedIndex uint16, localVariableIndex int, offsetBytes int, width int) int {
	info := s.frameInfoByReversedIndex(reversedIndex)

	list := t.localVariableList(int(info.LocalVariableListIndex))
	if localVariableIndex >= len(list.Variables) {
		panic(errLocalVariableOutOfBounds)
	}
	if offsetBytes+width > OperandSizeInBytes {
		panic(errLocalVariableOutOfBounds)
	}

	localsStart := int(info.Address) + FrameInfoSizeInBytes
	return localsStart + localVariableIndex*OperandSizeInBytes + offsetBytes
}

// slice accessors used by the memory handlers; the slice aliases the
// stack buffer

func (s *Stack) bytesAt(addr, length int) []byte {
	return s.data[addr : addr+length]
}

// float validity

// The VM restricts floats to normal and subnormal numbers plus positive
// zero. NaN, the infinities and negative zero fail at load and pop
// boundaries.
func checkF32Bits(bits uint32) {
	if bits&0x7f80_0000 == 0x7f80_0000 {
		// NaN or +/-inf
		panic(errInvalidFloat)
	}
	if bits == 0x8000_0000 {
		// negative zero
		panic(errInvalidFloat)
	}
}

func checkF64Bits(bits uint64) {
	if bits&0x7ff0_0000_0000_0000 == 0x7ff0_0000_0000_0000 {
		panic(errInvalidFloat)
	}
	if bits == 0x8000_0000_0000_0000 {
		panic(errInvalidFloat)
	}
}
