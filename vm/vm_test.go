package xovm

import (
	"errors"
	"testing"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(format, args...)
	}
}

// runFunction executes function public index 0 of the module on a fresh
// thread context.
func runFunction(m *Module, args ...Value) ([]Value, error) {
	thread := NewThreadContext(m)
	return ProcessFunction(thread, 0, 0, args)
}

func assertResults(t *testing.T, results []Value, err error, expected ...int32) {
	t.Helper()
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, len(results) == len(expected), "got %d results, expected %d", len(results), len(expected))
	for i, want := range expected {
		assert(t, results[i].AsI32() == want,
			"result %d: got %d, expected %d", i, results[i].AsI32(), want)
	}
}

func assertErrorIs(t *testing.T, err, want error) {
	t.Helper()
	assert(t, err != nil, "expected error %v, got nil", want)
	assert(t, errors.Is(err, want), "expected error %v, got %v", want, err)
}

// expectPanic runs fn and checks that it panics with the given sentinel.
func expectPanic(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		assert(t, r != nil, "expected a panic with %v", want)
		err, ok := r.(error)
		assert(t, ok, "panic value %v is not an error", r)
		assert(t, errors.Is(err, want), "expected panic %v, got %v", want, err)
	}()
	fn()
}

// createEmptyFrame pushes a function frame with no arguments, no results
// and no locals, so operand push/pop tests have a frame floor to check
// against.
func createEmptyFrame(s *Stack) {
	s.CreateFrame(0, 0, 0, 0, &ProgramCounter{})
}
