//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/voxelsplace/vlay/api"
)

func genLayout(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing layout kind")
	}
	seed := uint64(0)
	if len(args) > 1 {
		seed = uint64(args[1].Int())
	}
	out, err := api.NewSnapshot(args[0].String(), seed)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	uint8arr := js.Global().Get("Uint8Array").New(len(out))
	js.CopyBytesToJS(uint8arr, out)
	return uint8arr
}

func optimizeLayout(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return js.ValueOf("missing layout bytes or step count")
	}
	buf := make([]byte, args[0].Get("length").Int())
	js.CopyBytesToGo(buf, args[0])
	steps := uint64(args[1].Int())
	seed := uint64(0)
	if len(args) > 2 {
		seed = uint64(args[2].Int())
	}
	out, best, err := api.OptimizeSnapshot(buf, steps, seed)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	uint8arr := js.Global().Get("Uint8Array").New(len(out))
	js.CopyBytesToJS(uint8arr, out)
	// return both the snapshot and the reached cost
	result := js.Global().Get("Object").New()
	result.Set("layout", uint8arr)
	result.Set("best", best)
	return result
}

func layoutInfo(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing layout bytes")
	}
	buf := make([]byte, args[0].Get("length").Int())
	js.CopyBytesToGo(buf, args[0])
	info, err := api.SnapshotInfo(buf)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return js.ValueOf(info)
}

func vlay2glb(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing layout bytes")
	}
	buf := make([]byte, args[0].Get("length").Int())
	js.CopyBytesToGo(buf, args[0])
	out, err := api.SnapshotToGLB(buf)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	uint8arr := js.Global().Get("Uint8Array").New(len(out))
	js.CopyBytesToJS(uint8arr, out)
	return uint8arr
}

func main() {
	js.Global().Set("genLayout", js.FuncOf(genLayout))
	js.Global().Set("optimizeLayout", js.FuncOf(optimizeLayout))
	js.Global().Set("layoutInfo", js.FuncOf(layoutInfo))
	js.Global().Set("vlay2glb", js.FuncOf(vlay2glb))
	select {}
}
