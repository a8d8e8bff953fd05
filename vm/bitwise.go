package xovm

import "math/bits"

/*
	Bitwise instructions. and/or/xor/not operate on the full 64-bit
	slot. Shift and rotate counts are masked to [0, width) of the
	operand type. The bit-counting group pushes its result as i32.
*/

func registerBitwise() {
	register(And, handleAnd)
	register(Or, handleOr)
	register(Xor, handleXor)
	register(Not, handleNot)

	register(ShiftLeftI32, handleShiftLeftI32)
	register(ShiftRightI32S, handleShiftRightI32S)
	register(ShiftRightI32U, handleShiftRightI32U)
	register(RotateLeftI32, handleRotateLeftI32)
	register(RotateRightI32, handleRotateRightI32)
	register(CountLeadingZerosI32, handleCountLeadingZerosI32)
	register(CountLeadingOnesI32, handleCountLeadingOnesI32)
	register(CountTrailingZerosI32, handleCountTrailingZerosI32)
	register(CountOnesI32, handleCountOnesI32)

	register(ShiftLeftI64, handleShiftLeftI64)
	register(ShiftRightI64S, handleShiftRightI64S)
	register(ShiftRightI64U, handleShiftRightI64U)
	register(RotateLeftI64, handleRotateLeftI64)
	register(RotateRightI64, handleRotateRightI64)
	register(CountLeadingZerosI64, handleCountLeadingZerosI64)
	register(CountLeadingOnesI64, handleCountLeadingOnesI64)
	register(CountTrailingZerosI64, handleCountTrailingZerosI64)
	register(CountOnesI64, handleCountOnesI64)
}

func handleAnd(t *ThreadContext) interpretResult {
	right := t.stack.PopI64U()
	left := t.stack.PopI64U()
	t.stack.PushI64U(left & right)
	return moveResult(2)
}

func handleOr(t *ThreadContext) interpretResult {
	right := t.stack.PopI64U()
	left := t.stack.PopI64U()
	t.stack.PushI64U(left | right)
	return moveResult(2)
}

func handleXor(t *ThreadContext) interpretResult {
	right := t.stack.PopI64U()
	left := t.stack.PopI64U()
	t.stack.PushI64U(left ^ right)
	return moveResult(2)
}

func handleNot(t *ThreadContext) interpretResult {
	v := t.stack.PopI64U()
	t.stack.PushI64U(^v)
	return moveResult(2)
}

func handleShiftLeftI32(t *ThreadContext) interpretResult {
	moveBits := t.stack.PopI32U() % 32
	number := t.stack.PopI32U()
	t.stack.PushI32U(number << moveBits)
	return moveResult(2)
}

func handleShiftRightI32S(t *ThreadContext) interpretResult {
	moveBits := t.stack.PopI32U() % 32
	number := t.stack.PopI32S()
	t.stack.PushI32S(number >> moveBits)
	return moveResult(2)
}

func handleShiftRightI32U(t *ThreadContext) interpretResult {
	moveBits := t.stack.PopI32U() % 32
	number := t.stack.PopI32U()
	t.stack.PushI32U(number >> moveBits)
	return moveResult(2)
}

func handleRotateLeftI32(t *ThreadContext) interpretResult {
	moveBits := t.stack.PopI32U() % 32
	number := t.stack.PopI32U()
	t.stack.PushI32U(bits.RotateLeft32(number, int(moveBits)))
	return moveResult(2)
}

func handleRotateRightI32(t *ThreadContext) interpretResult {
	moveBits := t.stack.PopI32U() % 32
	number := t.stack.PopI32U()
	t.stack.PushI32U(bits.RotateLeft32(number, -int(moveBits)))
	return moveResult(2)
}

func handleCountLeadingZerosI32(t *ThreadContext) interpretResult {
	v := t.stack.PopI32U()
	t.stack.PushI32U(uint32(bits.LeadingZeros32(v)))
	return moveResult(2)
}

func handleCountLeadingOnesI32(t *ThreadContext) interpretResult {
	v := t.stack.PopI32U()
	t.stack.PushI32U(uint32(bits.LeadingZeros32(^v)))
	return moveResult(2)
}

func handleCountTrailingZerosI32(t *ThreadContext) interpretResult {
	v := t.stack.PopI32U()
	t.stack.PushI32U(uint32(bits.TrailingZeros32(v)))
	return moveResult(2)
}

func handleCountOnesI32(t *ThreadContext) interpretResult {
	v := t.stack.PopI32U()
	t.stack.PushI32U(uint32(bits.OnesCount32(v)))
	return moveResult(2)
}

func handleShiftLeftI64(t *ThreadContext) interpretResult {
	moveBits := t.stack.PopI32U() % 64
	number := t.stack.PopI64U()
	t.stack.PushI64U(number << moveBits)
	return moveResult(2)
}

func handleShiftRightI64S(t *ThreadContext) interpretResult {
	moveBits := t.stack.PopI32U() % 64
	number := t.stack.PopI64S()
	t.stack.PushI64S(number >> moveBits)
	return moveResult(2)
}

func handleShiftRightI64U(t *ThreadContext) interpretResult {
	moveBits := t.stack.PopI32U() % 64
	number := t.stack.PopI64U()
	t.stack.PushI64U(number >> moveBits)
	return moveResult(2)
}

func handleRotateLeftI64(t *ThreadContext) interpretResult {
	moveBits := t.stack.PopI32U() % 64
	number := t.stack.PopI64U()
	t.stack.PushI64U(bits.RotateLeft64(number, int(moveBits)))
	return moveResult(2)
}

func handleRotateRightI64(t *ThreadContext) interpretResult {
	moveBits := t.stack.PopI32U() % 64
	number := t.stack.PopI64U()
	t.stack.PushI64U(bits.RotateLeft64(number, -int(moveBits)))
	return moveResult(2)
}

func handleCountLeadingZerosI64(t *ThreadContext) interpretResult {
	v := t.stack.PopI64U()
	t.stack.PushI32U(uint32(bits.LeadingZeros64(v)))
	return moveResult(2)
}

func handleCountLeadingOnesI64(t *ThreadContext) interpretResult {
	v := t.stack.PopI64U()
	t.stack.PushI32U(uint32(bits.LeadingZeros64(^v)))
	return moveResult(2)
}

func handleCountTrailingZerosI64(t *ThreadContext) interpretResult {
	v := t.stack.PopI64U()
	t.stack.PushI32U(uint32(bits.TrailingZeros64(v)))
	return moveResult(2)
}

func handleCountOnesI64(t *ThreadContext) interpretResult {
	v := t.stack.PopI64U()
	t.stack.PushI32U(uint32(bits.OnesCount64(v)))
	return moveResult(2)
}
