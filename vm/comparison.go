package xovm

/*
	Comparison instructions pop two operands of the declared type (the
	right operand is on top) and push exactly 0 or 1 as i64.
*/

// Constrains to the operand interpretations comparisons work over
type comparable64 interface {
	int32 | uint32 | int64 | uint64 | float32 | float64
}

func pushBool(s *Stack, cond bool) {
	if cond {
		s.PushI64U(1)
	} else {
		s.PushI64U(0)
	}
}

func compareHandler[T comparable64](pop func(*Stack) T, cmp func(left, right T) bool) handlerFunc {
	return func(t *ThreadContext) interpretResult {
		right := pop(t.stack)
		left := pop(t.stack)
		pushBool(t.stack, cmp(left, right))
		return moveResult(2)
	}
}

func popI32S(s *Stack) int32   { return s.PopI32S() }
func popI32U(s *Stack) uint32  { return s.PopI32U() }
func popI64S(s *Stack) int64   { return s.PopI64S() }
func popI64U(s *Stack) uint64  { return s.PopI64U() }
func popF32(s *Stack) float32  { return s.PopF32() }
func popF64(s *Stack) float64  { return s.PopF64() }

func eq[T comparable64](l, r T) bool { return l == r }
func ne[T comparable64](l, r T) bool { return l != r }
func lt[T comparable64](l, r T) bool { return l < r }
func gt[T comparable64](l, r T) bool { return l > r }
func le[T comparable64](l, r T) bool { return l <= r }
func ge[T comparable64](l, r T) bool { return l >= r }

func registerComparison() {
	register(EqzI32, func(t *ThreadContext) interpretResult {
		pushBool(t.stack, t.stack.PopI32U() == 0)
		return moveResult(2)
	})
	register(NezI32, func(t *ThreadContext) interpretResult {
		pushBool(t.stack, t.stack.PopI32U() != 0)
		return moveResult(2)
	})
	register(EqI32, compareHandler(popI32U, eq[uint32]))
	register(NeI32, compareHandler(popI32U, ne[uint32]))
	register(LtI32S, compareHandler(popI32S, lt[int32]))
	register(LtI32U, compareHandler(popI32U, lt[uint32]))
	register(GtI32S, compareHandler(popI32S, gt[int32]))
	register(GtI32U, compareHandler(popI32U, gt[uint32]))
	register(LeI32S, compareHandler(popI32S, le[int32]))
	register(LeI32U, compareHandler(popI32U, le[uint32]))
	register(GeI32S, compareHandler(popI32S, ge[int32]))
	register(GeI32U, compareHandler(popI32U, ge[uint32]))

	register(EqzI64, func(t *ThreadContext) interpretResult {
		pushBool(t.stack, t.stack.PopI64U() == 0)
		return moveResult(2)
	})
	register(NezI64, func(t *ThreadContext) interpretResult {
		pushBool(t.stack, t.stack.PopI64U() != 0)
		return moveResult(2)
	})
	register(EqI64, compareHandler(popI64U, eq[uint64]))
	register(NeI64, compareHandler(popI64U, ne[uint64]))
	register(LtI64S, compareHandler(popI64S, lt[int64]))
	register(LtI64U, compareHandler(popI64U, lt[uint64]))
	register(GtI64S, compareHandler(popI64S, gt[int64]))
	register(GtI64U, compareHandler(popI64U, gt[uint64]))
	register(LeI64S, compareHandler(popI64S, le[int64]))
	register(LeI64U, compareHandler(popI64U, le[uint64]))
	register(GeI64S, compareHandler(popI64S, ge[int64]))
	register(GeI64U, compareHandler(popI64U, ge[uint64]))

	register(EqF32, compareHandler(popF32, eq[float32]))
	register(NeF32, compareHandler(popF32, ne[float32]))
	register(LtF32, compareHandler(popF32, lt[float32]))
	register(GtF32, compareHandler(popF32, gt[float32]))
	register(LeF32, compareHandler(popF32, le[float32]))
	register(GeF32, compareHandler(popF32, ge[float32]))

	register(EqF64, compareHandler(popF64, eq[float64]))
	register(NeF64, compareHandler(popF64, ne[float64]))
	register(LtF64, compareHandler(popF64, lt[float64]))
	register(GtF64, compareHandler(popF64, gt[float64]))
	register(LeF64, compareHandler(popF64, le[float64]))
	register(GeF64, compareHandler(popF64, ge[float64]))
}
