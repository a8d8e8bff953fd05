package xovm

import (
	"math"
	"testing"
)

// buildExpr assembles a single function () -> (results) from the writer
// body and runs it.
func buildExpr(resultsCount int, body func(w *BytecodeWriter)) ([]Value, error) {
	builder := NewModuleBuilder()
	functionType := builder.AddType(0, resultsCount)
	functionLocals := builder.AddLocalVariableList()

	w := NewBytecodeWriter()
	body(w)
	w.WriteOpcode(End)
	builder.AddFunction(functionType, functionLocals, w.Bytes())
	return runFunction(builder.Build())
}

func TestArithmeticWrapping(t *testing.T) {
	results, err := buildExpr(3, func(w *BytecodeWriter) {
		// 0xffffffff + 2 wraps to 1
		w.WriteOpcodeI32(ImmI32, 0xffff_ffff)
		w.WriteOpcodeI32(ImmI32, 2)
		w.WriteOpcode(AddI32)

		// 1 - 2 wraps to 0xffffffff
		w.WriteOpcodeI32(ImmI32, 1)
		w.WriteOpcodeI32(ImmI32, 2)
		w.WriteOpcode(SubI32)

		// 0xf0e0d0c0 * 2 == 0xf0e0d0c0 << 1 (mod 2^32)
		w.WriteOpcodeI32(ImmI32, 0xf0e0_d0c0)
		w.WriteOpcodeI32(ImmI32, 2)
		w.WriteOpcode(MulI32)
	})
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, uint32(results[0].AsI32()) == 1, "add: got 0x%x", results[0].AsI32())
	assert(t, uint32(results[1].AsI32()) == 0xffff_ffff, "sub: got 0x%x", results[1].AsI32())
	assert(t, uint32(results[2].AsI32()) == 0xe1c1_a180, "mul: got 0x%x", results[2].AsI32())
}

func TestArithmeticDivision(t *testing.T) {
	results, err := buildExpr(2, func(w *BytecodeWriter) {
		w.WriteOpcodeI32(ImmI32, 7)
		w.WriteOpcodeI32(ImmI32, 2)
		w.WriteOpcode(DivI32S)

		// -7 / 2 truncates toward zero
		w.WriteOpcodeI32(ImmI32, 0xffff_fff9)
		w.WriteOpcodeI32(ImmI32, 2)
		w.WriteOpcode(DivI32S)
	})
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, results[0].AsI32() == 3, "got %d", results[0].AsI32())
	assert(t, results[1].AsI32() == -3, "got %d", results[1].AsI32())

	_, err = buildExpr(1, func(w *BytecodeWriter) {
		w.WriteOpcodeI32(ImmI32, 1)
		w.WriteOpcodeI32(ImmI32, 0)
		w.WriteOpcode(DivI32S)
	})
	assertErrorIs(t, err, errDivisionByZero)

	_, err = buildExpr(1, func(w *BytecodeWriter) {
		w.WriteOpcodeI32(ImmI32, 0x8000_0000) // INT_MIN
		w.WriteOpcodeI32(ImmI32, 0xffff_ffff) // -1
		w.WriteOpcode(DivI32S)
	})
	assertErrorIs(t, err, errIntegerOverflowOnDivide)
}

func TestArithmeticRemainder(t *testing.T) {
	results, err := buildExpr(3, func(w *BytecodeWriter) {
		// truncated convention: the sign follows the dividend
		w.WriteOpcodeI32(ImmI32, 7)
		w.WriteOpcodeI32(ImmI32, 3)
		w.WriteOpcode(RemI32S)

		w.WriteOpcodeI32(ImmI32, 0xffff_fff9) // -7
		w.WriteOpcodeI32(ImmI32, 3)
		w.WriteOpcode(RemI32S)

		// rem(INT_MIN, -1) is 0, not an overflow
		w.WriteOpcodeI32(ImmI32, 0x8000_0000)
		w.WriteOpcodeI32(ImmI32, 0xffff_ffff)
		w.WriteOpcode(RemI32S)
	})
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, results[0].AsI32() == 1, "got %d", results[0].AsI32())
	assert(t, results[1].AsI32() == -1, "got %d", results[1].AsI32())
	assert(t, results[2].AsI32() == 0, "got %d", results[2].AsI32())
}

func TestBitwiseShiftMask(t *testing.T) {
	results, err := buildExpr(3, func(w *BytecodeWriter) {
		// a count of 32 behaves like 0
		w.WriteOpcodeI32(ImmI32, 0x1234_5678)
		w.WriteOpcodeI32(ImmI32, 32)
		w.WriteOpcode(ShiftLeftI32)

		w.WriteOpcodeI32(ImmI32, 0x1234_5678)
		w.WriteOpcodeI32(ImmI32, 0)
		w.WriteOpcode(ShiftLeftI32)

		// arithmetic right shift keeps the sign
		w.WriteOpcodeI32(ImmI32, 0x8000_0000)
		w.WriteOpcodeI32(ImmI32, 31)
		w.WriteOpcode(ShiftRightI32S)
	})
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, uint32(results[0].AsI32()) == 0x1234_5678, "got 0x%x", results[0].AsI32())
	assert(t, uint32(results[1].AsI32()) == 0x1234_5678, "got 0x%x", results[1].AsI32())
	assert(t, results[2].AsI32() == -1, "got %d", results[2].AsI32())
}

func TestBitwiseRotateAndCounts(t *testing.T) {
	results, err := buildExpr(5, func(w *BytecodeWriter) {
		w.WriteOpcodeI32(ImmI32, 0xf000_0000)
		w.WriteOpcodeI32(ImmI32, 4)
		w.WriteOpcode(RotateLeftI32) // 0x0000000f

		w.WriteOpcodeI32(ImmI32, 0x0000_000f)
		w.WriteOpcodeI32(ImmI32, 4)
		w.WriteOpcode(RotateRightI32) // 0xf0000000

		w.WriteOpcodeI32(ImmI32, 0x0000_ff00)
		w.WriteOpcode(CountLeadingZerosI32) // 16

		w.WriteOpcodeI32(ImmI32, 0x0000_ff00)
		w.WriteOpcode(CountTrailingZerosI32) // 8

		w.WriteOpcodeI32(ImmI32, 0x0000_ff00)
		w.WriteOpcode(CountOnesI32) // 8
	})
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, uint32(results[0].AsI32()) == 0x0000_000f, "got 0x%x", results[0].AsI32())
	assert(t, uint32(results[1].AsI32()) == 0xf000_0000, "got 0x%x", results[1].AsI32())
	assert(t, results[2].AsI32() == 16, "got %d", results[2].AsI32())
	assert(t, results[3].AsI32() == 8, "got %d", results[3].AsI32())
	assert(t, results[4].AsI32() == 8, "got %d", results[4].AsI32())
}

func TestComparisonPushesZeroOrOne(t *testing.T) {
	results, err := buildExpr(4, func(w *BytecodeWriter) {
		w.WriteOpcodeI32(ImmI32, 11)
		w.WriteOpcodeI32(ImmI32, 13)
		w.WriteOpcode(LtI32S) // 1

		w.WriteOpcodeI32(ImmI32, 11)
		w.WriteOpcodeI32(ImmI32, 13)
		w.WriteOpcode(GtI32S) // 0

		// unsigned: 0xffffffff is large, not -1
		w.WriteOpcodeI32(ImmI32, 0xffff_ffff)
		w.WriteOpcodeI32(ImmI32, 1)
		w.WriteOpcode(GtI32U) // 1

		w.WriteOpcodeI32(ImmI32, 0xffff_ffff)
		w.WriteOpcodeI32(ImmI32, 1)
		w.WriteOpcode(GtI32S) // 0 (-1 > 1 is false)
	})
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, results[0].AsI64() == 1, "lt_s: got %d", results[0].AsI64())
	assert(t, results[1].AsI64() == 0, "gt_s: got %d", results[1].AsI64())
	assert(t, results[2].AsI64() == 1, "gt_u: got %d", results[2].AsI64())
	assert(t, results[3].AsI64() == 0, "gt_s: got %d", results[3].AsI64())
}

func TestConversionRoundTrip(t *testing.T) {
	results, err := buildExpr(2, func(w *BytecodeWriter) {
		// extend then truncate is the identity on i32
		w.WriteOpcodeI32(ImmI32, 0x8765_4321)
		w.WriteOpcode(ExtendI32SToI64)
		w.WriteOpcode(TruncateI64ToI32)

		w.WriteOpcodeI32(ImmI32, 0x8765_4321)
		w.WriteOpcode(ExtendI32UToI64)
		w.WriteOpcode(TruncateI64ToI32)
	})
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, uint32(results[0].AsI32()) == 0x8765_4321, "got 0x%x", results[0].AsI32())
	assert(t, uint32(results[1].AsI32()) == 0x8765_4321, "got 0x%x", results[1].AsI32())
}

func TestConversionFloatToInt(t *testing.T) {
	results, err := buildExpr(3, func(w *BytecodeWriter) {
		// truncation toward zero
		w.WriteOpcodeI32(ImmF32, math.Float32bits(2.9))
		w.WriteOpcode(ConvertF32ToI32S)

		w.WriteOpcodeI32(ImmF32, math.Float32bits(-2.9))
		w.WriteOpcode(ConvertF32ToI32S)

		// negative to unsigned yields zero
		w.WriteOpcodeI32(ImmF32, math.Float32bits(-2.9))
		w.WriteOpcode(ConvertF32ToI32U)
	})
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, results[0].AsI32() == 2, "got %d", results[0].AsI32())
	assert(t, results[1].AsI32() == -2, "got %d", results[1].AsI32())
	assert(t, results[2].AsI32() == 0, "got %d", results[2].AsI32())
}

func TestConversionIntToFloat(t *testing.T) {
	results, err := buildExpr(2, func(w *BytecodeWriter) {
		w.WriteOpcodeI32(ImmI32, 0xffff_ffff) // -1 signed, 4294967295 unsigned
		w.WriteOpcode(ConvertI32SToF64)

		w.WriteOpcodeI32(ImmI32, 0xffff_ffff)
		w.WriteOpcode(ConvertI32UToF64)
	})
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, results[0].AsF64() == -1, "got %v", results[0].AsF64())
	assert(t, results[1].AsF64() == 4294967295, "got %v", results[1].AsF64())
}

// Arithmetic may transiently produce values outside the safe float
// subset; the failure surfaces at the next float pop.
func TestFloatTransientOverflow(t *testing.T) {
	// 1.0 / 0.0 leaves +inf on the stack; popping it as a float fails
	_, err := buildExpr(1, func(w *BytecodeWriter) {
		w.WriteOpcodeI32(ImmF32, math.Float32bits(1.0))
		w.WriteOpcodeI32(ImmF32, 0)
		w.WriteOpcode(DivF32)

		w.WriteOpcodeI32(ImmF32, math.Float32bits(1.0))
		w.WriteOpcode(AddF32)
	})
	assertErrorIs(t, err, errInvalidFloat)

	// the infinity is harmless while it is only carried, not popped as
	// a float: returning it as a raw result slot succeeds
	results, err := buildExpr(1, func(w *BytecodeWriter) {
		w.WriteOpcodeI32(ImmF32, math.Float32bits(1.0))
		w.WriteOpcodeI32(ImmF32, 0)
		w.WriteOpcode(DivF32)
	})
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, uint32(results[0].AsU64()) == 0x7f80_0000, "got 0x%x", results[0].AsU64())
}

// Immediate floats are a load boundary: NaN, infinities and negative
// zero are rejected when pushed.
func TestFloatImmediateValidity(t *testing.T) {
	_, err := buildExpr(1, func(w *BytecodeWriter) {
		w.WriteOpcodeI32(ImmF32, 0xffc0_0000) // NaN
	})
	assertErrorIs(t, err, errInvalidFloat)

	_, err = buildExpr(1, func(w *BytecodeWriter) {
		w.WriteOpcodeI32I32(ImmF64, 0, 0x8000_0000) // negative zero
	})
	assertErrorIs(t, err, errInvalidFloat)
}

func TestMathHandlers(t *testing.T) {
	results, err := buildExpr(4, func(w *BytecodeWriter) {
		w.WriteOpcodeI32(ImmI32, 0xffff_fff9) // -7
		w.WriteOpcode(AbsI32)

		w.WriteOpcodeI32(ImmF32, math.Float32bits(2.0))
		w.WriteOpcode(SqrtF32)

		w.WriteOpcodeI32(ImmF32, math.Float32bits(2.5))
		w.WriteOpcode(FloorF32)

		w.WriteOpcodeI32(ImmF32, math.Float32bits(2.5))
		w.WriteOpcode(RoundHalfToEvenF32)
	})
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, results[0].AsI32() == 7, "abs: got %d", results[0].AsI32())
	assert(t, results[1].AsF32() == float32(math.Sqrt(2)), "sqrt: got %v", results[1].AsF32())
	assert(t, results[2].AsF32() == 2.0, "floor: got %v", results[2].AsF32())
	assert(t, results[3].AsF32() == 2.0, "round to even: got %v", results[3].AsF32())
}

func TestArithmeticImmediateVariants(t *testing.T) {
	results, err := buildExpr(2, func(w *BytecodeWriter) {
		w.WriteOpcodeI32(ImmI32, 40)
		w.WriteOpcodeI16(AddImmI32, 2)

		w.WriteOpcodeI32(ImmI32, 40)
		w.WriteOpcodeI16(SubImmI32, 2)
	})
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, results[0].AsI32() == 42, "got %d", results[0].AsI32())
	assert(t, results[1].AsI32() == 38, "got %d", results[1].AsI32())
}
