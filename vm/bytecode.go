package xovm

import (
	"encoding/binary"
	"fmt"
	"strings"
)

/*
	BytecodeWriter emits the variable-length instruction stream consumed by
	the interpreter. Instructions that carry an i32 parameter must start on
	a 4-byte boundary so that the parameter itself is 4-byte aligned; the
	writer inserts a `nop` ahead of such an instruction when needed.

	The 2-byte forms (no parameter) and the 4-byte form (one i16) have no
	alignment requirement.
*/

type BytecodeWriter struct {
	data []byte
}

func NewBytecodeWriter() *BytecodeWriter {
	return &BytecodeWriter{}
}

func (w *BytecodeWriter) writeOpcode(op Opcode) {
	w.data = binary.LittleEndian.AppendUint16(w.data, uint16(op))
}

func (w *BytecodeWriter) writeI16(v uint16) {
	w.data = binary.LittleEndian.AppendUint16(w.data, v)
}

func (w *BytecodeWriter) writeI32(v uint32) {
	w.data = binary.LittleEndian.AppendUint32(w.data, v)
}

// Pads with a nop so the next instruction starts 4-byte aligned. Required
// ahead of every form that carries an i32 parameter.
func (w *BytecodeWriter) align() {
	if len(w.data)%4 != 0 {
		w.writeOpcode(Nop)
	}
}

// WriteOpcode emits a 2-byte no-parameter instruction.
func (w *BytecodeWriter) WriteOpcode(op Opcode) *BytecodeWriter {
	w.writeOpcode(op)
	return w
}

// WriteOpcodeI16 emits a 4-byte instruction: [opcode][param:i16].
func (w *BytecodeWriter) WriteOpcodeI16(op Opcode, p uint16) *BytecodeWriter {
	w.writeOpcode(op)
	w.writeI16(p)
	return w
}

// WriteOpcodeI32 emits an 8-byte instruction: [opcode][pad:i16][param:i32].
func (w *BytecodeWriter) WriteOpcodeI32(op Opcode, p uint32) *BytecodeWriter {
	w.align()
	w.writeOpcode(op)
	w.writeI16(0)
	w.writeI32(p)
	return w
}

// WriteOpcodeI16I32 emits an 8-byte instruction: [opcode][p0:i16][p1:i32].
func (w *BytecodeWriter) WriteOpcodeI16I32(op Opcode, p0 uint16, p1 uint32) *BytecodeWriter {
	w.align()
	w.writeOpcode(op)
	w.writeI16(p0)
	w.writeI32(p1)
	return w
}

// WriteOpcodeI16I16I16 emits an 8-byte instruction: [opcode][p0][p1][p2].
func (w *BytecodeWriter) WriteOpcodeI16I16I16(op Opcode, p0, p1, p2 uint16) *BytecodeWriter {
	w.writeOpcode(op)
	w.writeI16(p0)
	w.writeI16(p1)
	w.writeI16(p2)
	return w
}

// WriteOpcodeI32I32 emits a 12-byte instruction: [opcode][pad][p0:i32][p1:i32].
func (w *BytecodeWriter) WriteOpcodeI32I32(op Opcode, p0, p1 uint32) *BytecodeWriter {
	w.align()
	w.writeOpcode(op)
	w.writeI16(0)
	w.writeI32(p0)
	w.writeI32(p1)
	return w
}

// WriteOpcodeI32I32I32 emits a 16-byte instruction: [opcode][pad][p0][p1][p2].
func (w *BytecodeWriter) WriteOpcodeI32I32I32(op Opcode, p0, p1, p2 uint32) *BytecodeWriter {
	w.align()
	w.writeOpcode(op)
	w.writeI16(0)
	w.writeI32(p0)
	w.writeI32(p1)
	w.writeI32(p2)
	return w
}

// Offset reports the address the next instruction will be written at.
// When alignTo4 is set it accounts for the alignment nop that an
// i32-carrying form would force.
func (w *BytecodeWriter) Offset(alignTo4 bool) int {
	offset := len(w.data)
	if alignTo4 && offset%4 != 0 {
		offset += 2
	}
	return offset
}

// Bytes returns the emitted instruction stream.
func (w *BytecodeWriter) Bytes() []byte {
	return w.data
}

// Format renders the stream as "address: opcode params" lines, resolving
// parameter layouts the same way the decoder does.
func Format(code []byte) string {
	var sb strings.Builder
	addr := 0
	for addr+2 <= len(code) {
		op := Opcode(binary.LittleEndian.Uint16(code[addr:]))
		length := instructionLength(op)
		fmt.Fprintf(&sb, "0x%04x  %s", addr, op)
		switch parameterForm(op) {
		case formI16:
			fmt.Fprintf(&sb, " %d", binary.LittleEndian.Uint16(code[addr+2:]))
		case formI32:
			fmt.Fprintf(&sb, " 0x%x", binary.LittleEndian.Uint32(code[addr+4:]))
		case formI16I32:
			fmt.Fprintf(&sb, " %d 0x%x",
				binary.LittleEndian.Uint16(code[addr+2:]),
				binary.LittleEndian.Uint32(code[addr+4:]))
		case formI16I16I16:
			fmt.Fprintf(&sb, " %d %d %d",
				binary.LittleEndian.Uint16(code[addr+2:]),
				binary.LittleEndian.Uint16(code[addr+4:]),
				binary.LittleEndian.Uint16(code[addr+6:]))
		case formI32I32:
			fmt.Fprintf(&sb, " 0x%x 0x%x",
				binary.LittleEndian.Uint32(code[addr+4:]),
				binary.LittleEndian.Uint32(code[addr+8:]))
		case formI32I32I32:
			fmt.Fprintf(&sb, " 0x%x 0x%x 0x%x",
				binary.LittleEndian.Uint32(code[addr+4:]),
				binary.LittleEndian.Uint32(code[addr+8:]),
				binary.LittleEndian.Uint32(code[addr+12:]))
		}
		sb.WriteByte('\n')
		addr += length
	}
	return sb.String()
}

type paramForm int

const (
	formNone paramForm = iota
	formI16
	formI32
	formI16I32
	formI16I16I16
	formI32I32
	formI32I32I32
)

func parameterForm(op Opcode) paramForm {
	switch op {
	case ImmI32, ImmF32, BreakAlt, Call, Extcall, Panic:
		return formI32
	case ImmI64, ImmF64, Block, BlockNez:
		return formI32I32
	case BlockAlt:
		return formI32I32I32
	case Break, Recur:
		return formI16I32
	case AddImmI32, SubImmI32, AddImmI64, SubImmI64:
		return formI16
	}

	switch {
	case op >= LocalLoadI64 && op <= LocalStoreF32:
		return formI16I16I16
	case op >= LocalLoadExtendI64 && op <= LocalStoreExtendF32:
		return formI16I32
	case op >= DataLoadI64 && op <= DataStoreF32:
		return formI16I32
	case op >= DataLoadExtendI64 && op <= DataStoreExtendF32:
		return formI32
	case op >= HeapLoadI64 && op <= HeapStoreF32:
		return formI16
	}
	return formNone
}

func instructionLength(op Opcode) int {
	switch parameterForm(op) {
	case formI16:
		return 4
	case formI32, formI16I32, formI16I16I16:
		return 8
	case formI32I32:
		return 12
	case formI32I32I32:
		return 16
	default:
		return 2
	}
}
