//go:build js && wasm
// +build js,wasm

// Package browser forwards events to vendor tags living on the page (gtag.js and
// the Meta pixel). Vendor calls are made through window globals at dispatch time, so
// a blocked or removed tag surfaces as tracking.ErrNotLoaded.
package browser

import (
	"context"
	"fmt"
	"syscall/js"

	"go-attribution/internal/tracking"
)

const (
	GtagName  = "gtag"
	PixelName = "fbq"

	gtagScriptID  = "attribution-gtag"
	pixelScriptID = "attribution-fbq"

	gtagSrc  = "https://www.googletagmanager.com/gtag/js?id="
	pixelSrc = "https://connect.facebook.net/en_US/fbevents.js"
)

// Queueing stubs, equivalent to the vendors' inline snippets. Calls made before the
// real script arrives are buffered and replayed by it.
const (
	gtagStub  = `window.dataLayer = window.dataLayer || []; window.dataLayer.push(arguments);`
	pixelStub = `var n = window.fbq = function() { n.callMethod ? n.callMethod.apply(n, arguments) : n.queue.push(arguments); };
if (!window._fbq) window._fbq = n;
n.push = n; n.loaded = true; n.version = '2.0'; n.queue = [];`
)

// Compile-time interface checks
var (
	_ tracking.Backend = (*Gtag)(nil)
	_ tracking.Backend = (*Pixel)(nil)
)

// Gtag sends events through window.gtag.
type Gtag struct {
	measurementID string
}

// NewGtagLoader installs the gtag stub, configures measurementID and injects
// gtag.js once.
func NewGtagLoader(measurementID string) tracking.Loader {
	return tracking.LoaderFunc{
		LoaderName: GtagName,
		Fn: func(context.Context) (b tracking.Backend, err error) {
			defer recoverJS(&err)

			if measurementID == "" {
				return nil, fmt.Errorf("gtag: measurement id is required")
			}
			window := js.Global()
			if window.Get("dataLayer").IsUndefined() {
				window.Set("dataLayer", js.Global().Get("Array").New())
			}
			if window.Get(GtagName).Type() != js.TypeFunction {
				window.Set(GtagName, js.Global().Get("Function").New(gtagStub))
			}
			gtag := window.Get(GtagName)
			gtag.Invoke("js", js.Global().Get("Date").New())
			gtag.Invoke("config", measurementID, map[string]any{"send_page_view": false})

			injectScript(gtagScriptID, gtagSrc+measurementID)
			return &Gtag{measurementID: measurementID}, nil
		},
	}
}

func (g *Gtag) RecordEvent(_ context.Context, e tracking.Event) (err error) {
	defer recoverJS(&err)

	fn, err := global(GtagName)
	if err != nil {
		return err
	}
	params := map[string]any{"event_category": e.Category()}
	if label, ok := e.Label(); ok {
		params["event_label"] = label
	}
	if value, ok := e.Value(); ok {
		params["value"] = value
	}
	fn.Invoke("event", e.Action(), params)
	return nil
}

func (g *Gtag) RecordPageView(_ context.Context, url string) (err error) {
	defer recoverJS(&err)

	fn, err := global(GtagName)
	if err != nil {
		return err
	}
	fn.Invoke("event", "page_view", map[string]any{
		"page_location": url,
		"send_to":       g.measurementID,
	})
	return nil
}

// Pixel sends events through window.fbq.
type Pixel struct{}

// NewPixelLoader installs the fbq stub, initialises pixelID and injects fbevents.js once.
func NewPixelLoader(pixelID string) tracking.Loader {
	return tracking.LoaderFunc{
		LoaderName: PixelName,
		Fn: func(context.Context) (b tracking.Backend, err error) {
			defer recoverJS(&err)

			if pixelID == "" {
				return nil, fmt.Errorf("fbq: pixel id is required")
			}
			if js.Global().Get(PixelName).Type() != js.TypeFunction {
				js.Global().Get("Function").New(pixelStub).Invoke()
			}
			js.Global().Get(PixelName).Invoke("init", pixelID)

			injectScript(pixelScriptID, pixelSrc)
			return &Pixel{}, nil
		},
	}
}

func (p *Pixel) RecordEvent(_ context.Context, e tracking.Event) (err error) {
	defer recoverJS(&err)

	fn, err := global(PixelName)
	if err != nil {
		return err
	}
	params := map[string]any{"category": e.Category()}
	if label, ok := e.Label(); ok {
		params["label"] = label
	}
	if value, ok := e.Value(); ok {
		params["value"] = value
	}
	fn.Invoke("trackCustom", e.Action(), params)
	return nil
}

func (p *Pixel) RecordPageView(_ context.Context, _ string) (err error) {
	defer recoverJS(&err)

	fn, err := global(PixelName)
	if err != nil {
		return err
	}
	fn.Invoke("track", "PageView")
	return nil
}

func global(name string) (js.Value, error) {
	fn := js.Global().Get(name)
	if fn.Type() != js.TypeFunction {
		return js.Undefined(), fmt.Errorf("%s: %w", name, tracking.ErrNotLoaded)
	}
	return fn, nil
}

// injectScript appends an async script tag unless one with id is already present.
func injectScript(id, src string) {
	doc := js.Global().Get("document")
	if !doc.Call("getElementById", id).IsNull() {
		return
	}
	el := doc.Call("createElement", "script")
	el.Set("id", id)
	el.Set("async", true)
	el.Set("src", src)
	doc.Get("head").Call("appendChild", el)
}

func recoverJS(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("browser backend: %v", r)
	}
}
