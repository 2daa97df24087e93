//go:build !(js && wasm)

package main

import (
	"fmt"
	"io"
	"os"
)

// Outside the browser the same request is read from stdin and the
// response written to stdout.
func main() {
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	resp := handleReplay(string(raw))
	fmt.Println(mustJSON(resp))
	if !resp.OK {
		os.Exit(1)
	}
}
