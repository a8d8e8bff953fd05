package xovm

import (
	"encoding/binary"
)

/*
	Memory access instructions.

	Integer loads of width < 64 bits push an 8-byte slot holding the
	sign- or zero-extended value per the instruction variant. Integer
	stores of width < 64 bits write only the requested low bytes.
	Float loads validate the bit pattern; float stores write the raw
	pattern unchecked.

	The VM assumes natural alignment of multi-byte accesses at the final
	resolved address; misalignment is a programming error, not a trapped
	condition.
*/

type accessWidth int

const (
	widthI8  accessWidth = 1
	widthI16 accessWidth = 2
	widthI32 accessWidth = 4
	widthI64 accessWidth = 8
)

// loadAndPush reads a value of the given width from src, extends it and
// pushes the resulting slot. Float variants validate the bit pattern.
func loadAndPush(s *Stack, src []byte, op Opcode) {
	switch op {
	case LocalLoadI64, DataLoadI64, HeapLoadI64,
		LocalLoadExtendI64, DataLoadExtendI64:
		s.PushI64U(binary.LittleEndian.Uint64(src))
	case LocalLoadI32S, DataLoadI32S, HeapLoadI32S,
		LocalLoadExtendI32S, DataLoadExtendI32S:
		s.PushI32S(int32(binary.LittleEndian.Uint32(src)))
	case LocalLoadI32U, DataLoadI32U, HeapLoadI32U,
		LocalLoadExtendI32U, DataLoadExtendI32U:
		s.PushI32U(binary.LittleEndian.Uint32(src))
	case LocalLoadI16S, DataLoadI16S, HeapLoadI16S,
		LocalLoadExtendI16S, DataLoadExtendI16S:
		s.PushI64S(int64(int16(binary.LittleEndian.Uint16(src))))
	case LocalLoadI16U, DataLoadI16U, HeapLoadI16U,
		LocalLoadExtendI16U, DataLoadExtendI16U:
		s.PushI64U(uint64(binary.LittleEndian.Uint16(src)))
	case LocalLoadI8S, DataLoadI8S, HeapLoadI8S,
		LocalLoadExtendI8S, DataLoadExtendI8S:
		s.PushI64S(int64(int8(src[0])))
	case LocalLoadI8U, DataLoadI8U, HeapLoadI8U,
		LocalLoadExtendI8U, DataLoadExtendI8U:
		s.PushI64U(uint64(src[0]))
	case LocalLoadF64, DataLoadF64, HeapLoadF64,
		LocalLoadExtendF64, DataLoadExtendF64:
		bits := binary.LittleEndian.Uint64(src)
		checkF64Bits(bits)
		s.PushI64U(bits)
	case LocalLoadF32, DataLoadF32, HeapLoadF32,
		LocalLoadExtendF32, DataLoadExtendF32:
		bits := binary.LittleEndian.Uint32(src)
		checkF32Bits(bits)
		s.PushI64U(uint64(bits))
	}
}

// popAndStore pops one slot and writes its low `width` bytes to dst.
func popAndStore(s *Stack, dst []byte, width accessWidth) {
	slot := s.PopOperandToBytes()
	copy(dst, slot[:width])
}

func loadWidth(op Opcode) accessWidth {
	switch op {
	case LocalLoadI64, LocalLoadF64, LocalLoadExtendI64, LocalLoadExtendF64,
		DataLoadI64, DataLoadF64, DataLoadExtendI64, DataLoadExtendF64,
		HeapLoadI64, HeapLoadF64,
		LocalStoreI64, LocalStoreF64, LocalStoreExtendI64, LocalStoreExtendF64,
		DataStoreI64, DataStoreF64, DataStoreExtendI64, DataStoreExtendF64,
		HeapStoreI64, HeapStoreF64:
		return widthI64
	case LocalLoadI32S, LocalLoadI32U, LocalLoadF32,
		LocalLoadExtendI32S, LocalLoadExtendI32U, LocalLoadExtendF32,
		DataLoadI32S, DataLoadI32U, DataLoadF32,
		DataLoadExtendI32S, DataLoadExtendI32U, DataLoadExtendF32,
		HeapLoadI32S, HeapLoadI32U, HeapLoadF32,
		LocalStoreI32, LocalStoreF32, LocalStoreExtendI32, LocalStoreExtendF32,
		DataStoreI32, DataStoreF32, DataStoreExtendI32, DataStoreExtendF32,
		HeapStoreI32, HeapStoreF32:
		return widthI32
	case LocalLoadI16S, LocalLoadI16U, LocalLoadExtendI16S, LocalLoadExtendI16U,
		DataLoadI16S, DataLoadI16U, DataLoadExtendI16S, DataLoadExtendI16U,
		HeapLoadI16S, HeapLoadI16U,
		LocalStoreI16, LocalStoreExtendI16,
		DataStoreI16, DataStoreExtendI16,
		HeapStoreI16:
		return widthI16
	default:
		return widthI8
	}
}

// local variables

func registerLocalMemory() {
	for op := LocalLoadI64; op <= LocalLoadF32; op++ {
		register(op, handleLocalLoad)
	}
	for op := LocalStoreI64; op <= LocalStoreF32; op++ {
		register(op, handleLocalStore)
	}
	for op := LocalLoadExtendI64; op <= LocalLoadExtendF32; op++ {
		register(op, handleLocalLoadExtend)
	}
	for op := LocalStoreExtendI64; op <= LocalStoreExtendF32; op++ {
		register(op, handleLocalStoreExtend)
	}
}

func handleLocalLoad(t *ThreadContext) interpretResult {
	op := t.fetchOpcode()
	reversedIndex, offsetBytes, localVariableIndex := t.paramI16I16I16()
	width := loadWidth(op)

	addr := t.stack.localVariableAddress(t, reversedIndex, int(localVariableIndex), int(offsetBytes), int(width))
	loadAndPush(t.stack, t.stack.bytesAt(addr, int(width)), op)
	return moveResult(8)
}

func handleLocalStore(t *ThreadContext) interpretResult {
	op := t.fetchOpcode()
	reversedIndex, offsetBytes, localVariableIndex := t.paramI16I16I16()
	width := loadWidth(op)

	addr := t.stack.localVariableAddress(t, reversedIndex, int(localVariableIndex), int(offsetBytes), int(width))
	popAndStore(t.stack, t.stack.bytesAt(addr, int(width)), width)
	return moveResult(8)
}

func handleLocalLoadExtend(t *ThreadContext) interpretResult {
	op := t.fetchOpcode()
	reversedIndex, localVariableIndex := t.paramI16I32()
	width := loadWidth(op)
	offsetBytes := int(t.stack.PopI64U())

	addr := t.stack.localVariableAddress(t, reversedIndex, int(localVariableIndex), offsetBytes, int(width))
	loadAndPush(t.stack, t.stack.bytesAt(addr, int(width)), op)
	return moveResult(8)
}

func handleLocalStoreExtend(t *ThreadContext) interpretResult {
	op := t.fetchOpcode()
	reversedIndex, localVariableIndex := t.paramI16I32()
	width := loadWidth(op)

	value := t.stack.PopOperandToBytes()
	offsetBytes := int(t.stack.PopI64U())

	addr := t.stack.localVariableAddress(t, reversedIndex, int(localVariableIndex), offsetBytes, int(width))
	copy(t.stack.bytesAt(addr, int(width)), value[:width])
	return moveResult(8)
}

// data sections

func registerDataMemory() {
	for op := DataLoadI64; op <= DataLoadF32; op++ {
		register(op, handleDataLoad)
	}
	for op := DataStoreI64; op <= DataStoreF32; op++ {
		register(op, handleDataStore)
	}
	for op := DataLoadExtendI64; op <= DataLoadExtendF32; op++ {
		register(op, handleDataLoadExtend)
	}
	for op := DataStoreExtendI64; op <= DataStoreExtendF32; op++ {
		register(op, handleDataStoreExtend)
	}
}

func handleDataLoad(t *ThreadContext) interpretResult {
	op := t.fetchOpcode()
	offsetBytes, dataPublicIndex := t.paramI16I32()
	width := loadWidth(op)

	loadAndPush(t.stack, t.dataBytes(int(dataPublicIndex), int(offsetBytes), int(width)), op)
	return moveResult(8)
}

func handleDataStore(t *ThreadContext) interpretResult {
	op := t.fetchOpcode()
	offsetBytes, dataPublicIndex := t.paramI16I32()
	width := loadWidth(op)

	popAndStore(t.stack, t.dataBytes(int(dataPublicIndex), int(offsetBytes), int(width)), width)
	return moveResult(8)
}

func handleDataLoadExtend(t *ThreadContext) interpretResult {
	op := t.fetchOpcode()
	dataPublicIndex := t.paramI32()
	width := loadWidth(op)
	offsetBytes := int(t.stack.PopI64U())

	loadAndPush(t.stack, t.dataBytes(int(dataPublicIndex), offsetBytes, int(width)), op)
	return moveResult(8)
}

func handleDataStoreExtend(t *ThreadContext) interpretResult {
	op := t.fetchOpcode()
	dataPublicIndex := t.paramI32()
	width := loadWidth(op)

	value := t.stack.PopOperandToBytes()
	offsetBytes := int(t.stack.PopI64U())

	copy(t.dataBytes(int(dataPublicIndex), offsetBytes, int(width)), value[:width])
	return moveResult(8)
}

// heap

func registerHeapMemory() {
	for op := HeapLoadI64; op <= HeapLoadF32; op++ {
		register(op, handleHeapLoad)
	}
	for op := HeapStoreI64; op <= HeapStoreF32; op++ {
		register(op, handleHeapStore)
	}
	register(HeapFill, handleHeapFill)
	register(HeapCopy, handleHeapCopy)
	register(HeapCapacity, handleHeapCapacity)
	register(HeapResize, handleHeapResize)
}

func handleHeapLoad(t *ThreadContext) interpretResult {
	op := t.fetchOpcode()
	offsetBytes := t.paramI16()
	width := loadWidth(op)

	addr := t.stack.PopI64U() + uint64(offsetBytes)
	loadAndPush(t.stack, t.heap.bytesAt(addr, int(width)), op)
	return moveResult(4)
}

func handleHeapStore(t *ThreadContext) interpretResult {
	op := t.fetchOpcode()
	offsetBytes := t.paramI16()
	width := loadWidth(op)

	value := t.stack.PopOperandToBytes()
	addr := t.stack.PopI64U() + uint64(offsetBytes)
	copy(t.heap.bytesAt(addr, int(width)), value[:width])
	return moveResult(4)
}

func handleHeapFill(t *ThreadContext) interpretResult {
	count := t.stack.PopI64U()
	value := t.stack.PopI64U()
	dst := t.stack.PopI64U()
	t.heap.Fill(dst, byte(value), count)
	return moveResult(2)
}

func handleHeapCopy(t *ThreadContext) interpretResult {
	count := t.stack.PopI64U()
	src := t.stack.PopI64U()
	dst := t.stack.PopI64U()
	t.heap.Copy(dst, src, count)
	return moveResult(2)
}

func handleHeapCapacity(t *ThreadContext) interpretResult {
	t.stack.PushI64U(t.heap.CapacityInPages())
	return moveResult(2)
}

func handleHeapResize(t *ThreadContext) interpretResult {
	pages := t.stack.PopI64U()
	t.stack.PushI64U(t.heap.Resize(pages))
	return moveResult(2)
}
