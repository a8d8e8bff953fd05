package xovm

import "math"

/*
	Math instructions: integer abs/neg plus the floating-point math
	group. Results are pushed as raw bit patterns; a result outside the
	safe float subset (e.g. sqrt of a negative) only fails once it is
	popped as a float again.

	abs/neg on integers wrap: abs(INT_MIN) == INT_MIN.
*/

func unaryF32(f func(float64) float64) handlerFunc {
	return func(t *ThreadContext) interpretResult {
		v := t.stack.PopF32()
		t.stack.PushF32(float32(f(float64(v))))
		return moveResult(2)
	}
}

func binaryF32(f func(left, right float64) float64) handlerFunc {
	return func(t *ThreadContext) interpretResult {
		right := t.stack.PopF32()
		left := t.stack.PopF32()
		t.stack.PushF32(float32(f(float64(left), float64(right))))
		return moveResult(2)
	}
}

func unaryF64(f func(float64) float64) handlerFunc {
	return func(t *ThreadContext) interpretResult {
		v := t.stack.PopF64()
		t.stack.PushF64(f(v))
		return moveResult(2)
	}
}

func binaryF64(f func(left, right float64) float64) handlerFunc {
	return func(t *ThreadContext) interpretResult {
		right := t.stack.PopF64()
		left := t.stack.PopF64()
		t.stack.PushF64(f(left, right))
		return moveResult(2)
	}
}

func fract(v float64) float64 {
	return v - math.Trunc(v)
}

// log of `left` in base `right`
func logBase(left, right float64) float64 {
	return math.Log(left) / math.Log(right)
}

func registerMath() {
	register(AbsI32, func(t *ThreadContext) interpretResult {
		v := t.stack.PopI32S()
		if v < 0 {
			v = -v
		}
		t.stack.PushI32S(v)
		return moveResult(2)
	})
	register(NegI32, func(t *ThreadContext) interpretResult {
		t.stack.PushI32S(-t.stack.PopI32S())
		return moveResult(2)
	})
	register(AbsI64, func(t *ThreadContext) interpretResult {
		v := t.stack.PopI64S()
		if v < 0 {
			v = -v
		}
		t.stack.PushI64S(v)
		return moveResult(2)
	})
	register(NegI64, func(t *ThreadContext) interpretResult {
		t.stack.PushI64S(-t.stack.PopI64S())
		return moveResult(2)
	})

	register(AbsF32, unaryF32(math.Abs))
	register(NegF32, unaryF32(func(v float64) float64 { return -v }))
	register(CopysignF32, binaryF32(math.Copysign))
	register(SqrtF32, unaryF32(math.Sqrt))
	register(MinF32, binaryF32(math.Min))
	register(MaxF32, binaryF32(math.Max))
	register(CeilF32, unaryF32(math.Ceil))
	register(FloorF32, unaryF32(math.Floor))
	register(RoundHalfAwayFromZeroF32, unaryF32(math.Round))
	register(RoundHalfToEvenF32, unaryF32(math.RoundToEven))
	register(TruncF32, unaryF32(math.Trunc))
	register(FractF32, unaryF32(fract))
	register(CbrtF32, unaryF32(math.Cbrt))
	register(ExpF32, unaryF32(math.Exp))
	register(Exp2F32, unaryF32(math.Exp2))
	register(LnF32, unaryF32(math.Log))
	register(Log2F32, unaryF32(math.Log2))
	register(Log10F32, unaryF32(math.Log10))
	register(SinF32, unaryF32(math.Sin))
	register(CosF32, unaryF32(math.Cos))
	register(TanF32, unaryF32(math.Tan))
	register(AsinF32, unaryF32(math.Asin))
	register(AcosF32, unaryF32(math.Acos))
	register(AtanF32, unaryF32(math.Atan))
	register(PowF32, binaryF32(math.Pow))
	register(LogF32, binaryF32(logBase))

	register(AbsF64, unaryF64(math.Abs))
	register(NegF64, unaryF64(func(v float64) float64 { return -v }))
	register(CopysignF64, binaryF64(math.Copysign))
	register(SqrtF64, unaryF64(math.Sqrt))
	register(MinF64, binaryF64(math.Min))
	register(MaxF64, binaryF64(math.Max))
	register(CeilF64, unaryF64(math.Ceil))
	register(FloorF64, unaryF64(math.Floor))
	register(RoundHalfAwayFromZeroF64, unaryF64(math.Round))
	register(RoundHalfToEvenF64, unaryF64(math.RoundToEven))
	register(TruncF64, unaryF64(math.Trunc))
	register(FractF64, unaryF64(fract))
	register(CbrtF64, unaryF64(math.Cbrt))
	register(ExpF64, unaryF64(math.Exp))
	register(Exp2F64, unaryF64(math.Exp2))
	register(LnF64, unaryF64(math.Log))
	register(Log2F64, unaryF64(math.Log2))
	register(Log10F64, unaryF64(math.Log10))
	register(SinF64, unaryF64(math.Sin))
	register(CosF64, unaryF64(math.Cos))
	register(TanF64, unaryF64(math.Tan))
	register(AsinF64, unaryF64(math.Asin))
	register(AcosF64, unaryF64(math.Acos))
	register(AtanF64, unaryF64(math.Atan))
	register(PowF64, binaryF64(math.Pow))
	register(LogF64, binaryF64(logBase))
}
