//go:build js && wasm

package main

import (
	"syscall/js"

	"bottells/replay"
)

func main() {
	js.Global().Set("__tellReplay", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 1 {
			return mustJSON(tapeResponse{
				OK:    false,
				Error: &replay.ReplayError{StepIndex: -1, Reason: "invalid_request", Message: "missing request payload"},
			})
		}
		return mustJSON(handleReplay(args[0].String()))
	}))

	select {}
}
