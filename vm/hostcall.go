package xovm

/*
	Host interop, limited to the ABI the interpreter sees.

	`extcall` dispatches to a host function registered on the thread
	context. A host function may reenter the VM with ProcessFunction on
	the same thread context; the reentry runs a nested dispatch loop
	whose entry frame carries the exit-loop flag, so its return
	terminates only the nested loop.

	`panic` aborts the whole invocation with a user code.
*/

func registerHostCall() {
	register(Extcall, handleExtcall)
	register(Panic, handlePanic)
}

func handleExtcall(t *ThreadContext) interpretResult {
	externalFunctionIndex := int(t.paramI32())
	if externalFunctionIndex >= len(t.hostFunctions) {
		panic(errUnknownHostFunction)
	}

	if err := t.hostFunctions[externalFunctionIndex](t); err != nil {
		panic(err)
	}
	return moveResult(8)
}

func handlePanic(t *ThreadContext) interpretResult {
	code := t.paramI32()
	panic(&TerminateError{Code: code})
}
