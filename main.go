package main

import (
	"fmt"
	"os"
	"strconv"

	xovm "xovm/vm"
)

// Assembles a small demo program in memory and runs it: accumulate(n)
// sums 1..n with a block loop driven by `recur`.
//
//	fn accumulate (n:i32) -> (i32)       ;; local 1: sum:i32
//	    block () -> ()                   ;; loop
//	        if n == 0 { push sum; break out of the function }
//	        sum += n
//	        n -= 1
//	        recur 0                      ;; next round
//	    end
//	end
func buildDemoModule() *xovm.Module {
	builder := xovm.NewModuleBuilder()

	functionType := builder.AddType(1, 1) // (i32) -> (i32)
	blockType := builder.AddType(0, 0)    // () -> ()

	functionLocals := builder.AddLocalVariableList(4, 4) // n, sum
	emptyLocals := builder.AddLocalVariableList()

	w := xovm.NewBytecodeWriter()
	w.WriteOpcodeI32I32(xovm.Block, uint32(blockType), uint32(emptyLocals))
	loopStart := w.Offset(false)

	// if n == 0, return sum from the function frame two layers up
	w.WriteOpcodeI16I16I16(xovm.LocalLoadI32U, 1, 0, 0)
	w.WriteOpcode(xovm.EqzI32)
	w.WriteOpcodeI32I32(xovm.BlockNez, uint32(emptyLocals), 30)
	w.WriteOpcodeI16I16I16(xovm.LocalLoadI32U, 2, 0, 1)
	w.WriteOpcodeI16I32(xovm.Break, 2, 0)
	w.WriteOpcode(xovm.End)

	// sum += n; n -= 1; next round
	w.WriteOpcodeI16I16I16(xovm.LocalLoadI32U, 1, 0, 1)
	w.WriteOpcodeI16I16I16(xovm.LocalLoadI32U, 1, 0, 0)
	w.WriteOpcode(xovm.AddI32)
	w.WriteOpcodeI16I16I16(xovm.LocalStoreI32, 1, 0, 1)
	w.WriteOpcodeI16I16I16(xovm.LocalLoadI32U, 1, 0, 0)
	w.WriteOpcodeI16(xovm.SubImmI32, 1)
	w.WriteOpcodeI16I16I16(xovm.LocalStoreI32, 1, 0, 0)
	w.WriteOpcodeI16I32(xovm.Recur, 0, uint32(w.Offset(true)-loopStart))
	w.WriteOpcode(xovm.End)
	w.WriteOpcode(xovm.End)

	builder.AddFunction(functionType, functionLocals, w.Bytes())
	return builder.Build()
}

func main() {
	n := 10
	if len(os.Args) > 1 {
		parsed, err := strconv.Atoi(os.Args[1])
		if err != nil {
			fmt.Println("not a number:", os.Args[1])
			os.Exit(1)
		}
		n = parsed
	}

	thread := xovm.NewThreadContext(buildDemoModule())
	results, err := xovm.ProcessFunction(thread, 0, 0, []xovm.Value{xovm.I32Value(int32(n))})
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	fmt.Printf("accumulate(%d) = %d\n", n, results[0].AsI32())
}
