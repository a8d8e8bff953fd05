package xovm

import "math"

/*
	Width and float/int conversions. Float-to-int conversions truncate
	toward zero and saturate at the target range; converting a negative
	float to an unsigned integer yields zero. NaN and infinity operands
	cannot occur here because a float pop validates the bit pattern.
*/

func registerConversion() {
	register(TruncateI64ToI32, handleTruncateI64ToI32)
	register(ExtendI32SToI64, handleExtendI32SToI64)
	register(ExtendI32UToI64, handleExtendI32UToI64)
	register(DemoteF64ToF32, handleDemoteF64ToF32)
	register(PromoteF32ToF64, handlePromoteF32ToF64)

	register(ConvertF32ToI32S, handleConvertF32ToI32S)
	register(ConvertF32ToI32U, handleConvertF32ToI32U)
	register(ConvertF64ToI32S, handleConvertF64ToI32S)
	register(ConvertF64ToI32U, handleConvertF64ToI32U)
	register(ConvertF32ToI64S, handleConvertF32ToI64S)
	register(ConvertF32ToI64U, handleConvertF32ToI64U)
	register(ConvertF64ToI64S, handleConvertF64ToI64S)
	register(ConvertF64ToI64U, handleConvertF64ToI64U)

	register(ConvertI32SToF32, handleConvertI32SToF32)
	register(ConvertI32UToF32, handleConvertI32UToF32)
	register(ConvertI64SToF32, handleConvertI64SToF32)
	register(ConvertI64UToF32, handleConvertI64UToF32)
	register(ConvertI32SToF64, handleConvertI32SToF64)
	register(ConvertI32UToF64, handleConvertI32UToF64)
	register(ConvertI64SToF64, handleConvertI64SToF64)
	register(ConvertI64UToF64, handleConvertI64UToF64)
}

// truncToI64 truncates toward zero and saturates to [min, max].
func truncToI64(v float64, min, max int64) int64 {
	v = math.Trunc(v)
	if v <= float64(min) {
		return min
	}
	if v >= float64(max) {
		return max
	}
	return int64(v)
}

// truncToU64 truncates toward zero; negatives yield zero.
func truncToU64(v float64, max uint64) uint64 {
	v = math.Trunc(v)
	if v <= 0 {
		return 0
	}
	if v >= float64(max) {
		return max
	}
	return uint64(v)
}

func handleTruncateI64ToI32(t *ThreadContext) interpretResult {
	v := t.stack.PopI64U()
	t.stack.PushI32S(int32(uint32(v)))
	return moveResult(2)
}

func handleExtendI32SToI64(t *ThreadContext) interpretResult {
	v := t.stack.PopI32S()
	t.stack.PushI64S(int64(v))
	return moveResult(2)
}

func handleExtendI32UToI64(t *ThreadContext) interpretResult {
	v := t.stack.PopI32U()
	t.stack.PushI64U(uint64(v))
	return moveResult(2)
}

func handleDemoteF64ToF32(t *ThreadContext) interpretResult {
	v := t.stack.PopF64()
	t.stack.PushF32(float32(v))
	return moveResult(2)
}

func handlePromoteF32ToF64(t *ThreadContext) interpretResult {
	v := t.stack.PopF32()
	t.stack.PushF64(float64(v))
	return moveResult(2)
}

func handleConvertF32ToI32S(t *ThreadContext) interpretResult {
	v := t.stack.PopF32()
	t.stack.PushI32S(int32(truncToI64(float64(v), math.MinInt32, math.MaxInt32)))
	return moveResult(2)
}

func handleConvertF32ToI32U(t *ThreadContext) interpretResult {
	v := t.stack.PopF32()
	t.stack.PushI32U(uint32(truncToU64(float64(v), math.MaxUint32)))
	return moveResult(2)
}

func handleConvertF64ToI32S(t *ThreadContext) interpretResult {
	v := t.stack.PopF64()
	t.stack.PushI32S(int32(truncToI64(v, math.MinInt32, math.MaxInt32)))
	return moveResult(2)
}

func handleConvertF64ToI32U(t *ThreadContext) interpretResult {
	v := t.stack.PopF64()
	t.stack.PushI32U(uint32(truncToU64(v, math.MaxUint32)))
	return moveResult(2)
}

func handleConvertF32ToI64S(t *ThreadContext) interpretResult {
	v := t.stack.PopF32()
	t.stack.PushI64S(truncToI64(float64(v), math.MinInt64, math.MaxInt64))
	return moveResult(2)
}

func handleConvertF32ToI64U(t *ThreadContext) interpretResult {
	v := t.stack.PopF32()
	t.stack.PushI64U(truncToU64(float64(v), math.MaxUint64))
	return moveResult(2)
}

func handleConvertF64ToI64S(t *ThreadContext) interpretResult {
	v := t.stack.PopF64()
	t.stack.PushI64S(truncToI64(v, math.MinInt64, math.MaxInt64))
	return moveResult(2)
}

func handleConvertF64ToI64U(t *ThreadContext) interpretResult {
	v := t.stack.PopF64()
	t.stack.PushI64U(truncToU64(v, math.MaxUint64))
	return moveResult(2)
}

func handleConvertI32SToF32(t *ThreadContext) interpretResult {
	v := t.stack.PopI32S()
	t.stack.PushF32(float32(v))
	return moveResult(2)
}

func handleConvertI32UToF32(t *ThreadContext) interpretResult {
	v := t.stack.PopI32U()
	t.stack.PushF32(float32(v))
	return moveResult(2)
}

func handleConvertI64SToF32(t *ThreadContext) interpretResult {
	v := t.stack.PopI64S()
	t.stack.PushF32(float32(v))
	return moveResult(2)
}

func handleConvertI64UToF32(t *ThreadContext) interpretResult {
	v := t.stack.PopI64U()
	t.stack.PushF32(float32(v))
	return moveResult(2)
}

func handleConvertI32SToF64(t *ThreadContext) interpretResult {
	v := t.stack.PopI32S()
	t.stack.PushF64(float64(v))
	return moveResult(2)
}

func handleConvertI32UToF64(t *ThreadContext) interpretResult {
	v := t.stack.PopI32U()
	t.stack.PushF64(float64(v))
	return moveResult(2)
}

func handleConvertI64SToF64(t *ThreadContext) interpretResult {
	v := t.stack.PopI64S()
	t.stack.PushF64(float64(v))
	return moveResult(2)
}

func handleConvertI64UToF64(t *ThreadContext) interpretResult {
	v := t.stack.PopI64U()
	t.stack.PushF64(float64(v))
	return moveResult(2)
}
