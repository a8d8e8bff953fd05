package xovm

// Fundamental instructions: nop and the immediate-number group. The
// wider immediates are carried in i32 parameter slots because no
// instruction form has an i64 parameter.

func registerFundamental() {
	register(Nop, handleNop)
	register(ImmI32, handleImmI32)
	register(ImmI64, handleImmI64)
	register(ImmF32, handleImmF32)
	register(ImmF64, handleImmF64)
}

func handleNop(t *ThreadContext) interpretResult {
	return moveResult(2)
}

func handleImmI32(t *ThreadContext) interpretResult {
	v := t.paramI32()
	// sign-extend to i64
	t.stack.PushI32S(int32(v))
	return moveResult(8)
}

func handleImmI64(t *ThreadContext) interpretResult {
	low, high := t.paramI32I32()
	t.stack.PushI64U(uint64(low) | uint64(high)<<32)
	return moveResult(12)
}

func handleImmF32(t *ThreadContext) interpretResult {
	bits := t.paramI32()
	// immediates are a load boundary, the safe-float subset applies
	checkF32Bits(bits)
	t.stack.PushI64U(uint64(bits))
	return moveResult(8)
}

func handleImmF64(t *ThreadContext) interpretResult {
	low, high := t.paramI32I32()
	bits := uint64(low) | uint64(high)<<32
	checkF64Bits(bits)
	t.stack.PushI64U(bits)
	return moveResult(12)
}
