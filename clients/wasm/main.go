//go:build js && wasm

// boothframe WASM - Client-side collage renderer.
// Compiled with: GOOS=js GOARCH=wasm go build -o boothframe.wasm ./clients/wasm/
package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"syscall/js"

	"github.com/sirupsen/logrus"

	"github.com/xob0t/boothframe/pkg/compositor"
	"github.com/xob0t/boothframe/pkg/frame"
	"github.com/xob0t/boothframe/pkg/layout"
	"github.com/xob0t/boothframe/pkg/preview"
	"github.com/xob0t/boothframe/pkg/source"
	"github.com/xob0t/boothframe/pkg/store"
	"github.com/xob0t/boothframe/pkg/store/memory"
)

// Photos live in Go memory; JS refers to them as asset:<id> handles.
var (
	assets = memory.NewStore()
	loader = &source.Loader{Assets: assets}

	engine   *compositor.Engine
	renderer *preview.Renderer
)

func main() {
	var err error
	engine, err = compositor.New(compositor.Options{Loader: loader})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create engine")
	}
	renderer, err = preview.NewRenderer(loader, "", nil)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create preview renderer")
	}
	fmt.Println("boothframe WASM loaded")

	js.Global().Set("goRenderCollage", js.FuncOf(renderCollage))
	js.Global().Set("goPreviewCollage", js.FuncOf(previewCollage))
	js.Global().Set("goRegisterPhoto", js.FuncOf(registerPhoto))
	js.Global().Set("goRemovePhoto", js.FuncOf(removePhoto))
	js.Global().Set("goLayouts", js.FuncOf(catalog(func() any { return layout.All() })))
	js.Global().Set("goFrames", js.FuncOf(catalog(func() any { return frame.All() })))
	js.Global().Set("goReady", js.ValueOf(true))

	// Block forever (WASM must not exit).
	select {}
}

func errorValue(format string, args ...any) js.Value {
	return js.ValueOf("error: " + fmt.Sprintf(format, args...))
}

// goRegisterPhoto(name, base64Data, mime) - store a photo, return its handle.
func registerPhoto(this js.Value, args []js.Value) any {
	if len(args) < 3 {
		return errorValue("need name, base64Data, mime")
	}
	data, err := base64.StdEncoding.DecodeString(args[1].String())
	if err != nil {
		return errorValue("invalid base64: %v", err)
	}
	id, err := assets.Put(context.Background(), &store.Asset{
		Name:      args[0].String(),
		MediaType: args[2].String(),
		Data:      data,
	})
	if err != nil {
		return errorValue("store photo: %v", err)
	}
	return js.ValueOf(source.AssetScheme + id)
}

// goRemovePhoto(handle) - drop a registered photo.
func removePhoto(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errorValue("need handle")
	}
	id := strings.TrimPrefix(args[0].String(), source.AssetScheme)
	if err := assets.Delete(context.Background(), id); err != nil {
		return errorValue("%v", err)
	}
	return js.ValueOf("ok")
}

func parseRequest(args []js.Value) (compositor.Request, error) {
	var req compositor.Request
	if len(args) < 1 {
		return req, fmt.Errorf("need requestJSON")
	}
	if err := json.Unmarshal([]byte(args[0].String()), &req); err != nil {
		return req, fmt.Errorf("parse request: %w", err)
	}
	return req, nil
}

// goRenderCollage(requestJSON) - render and return a JPEG data URL, or ""
// when there is nothing to render.
func renderCollage(this js.Value, args []js.Value) any {
	req, err := parseRequest(args)
	if err != nil {
		return errorValue("%v", err)
	}
	artifact, err := engine.Render(context.Background(), req)
	if err != nil {
		return errorValue("render: %v", err)
	}
	if artifact == nil {
		return js.ValueOf("")
	}
	return js.ValueOf("data:" + artifact.MediaType() + ";base64," + base64.StdEncoding.EncodeToString(artifact.Data))
}

// goPreviewCollage(requestJSON) - return the SVG preview markup.
func previewCollage(this js.Value, args []js.Value) any {
	req, err := parseRequest(args)
	if err != nil {
		return errorValue("%v", err)
	}
	var buf bytes.Buffer
	if err := renderer.Render(context.Background(), &buf, req); err != nil {
		return errorValue("preview: %v", err)
	}
	return js.ValueOf(buf.String())
}

func catalog(list func() any) func(js.Value, []js.Value) any {
	return func(js.Value, []js.Value) any {
		data, err := json.Marshal(list())
		if err != nil {
			return errorValue("%v", err)
		}
		return js.ValueOf(string(data))
	}
}
