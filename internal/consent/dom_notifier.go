//go:build js && wasm
// +build js,wasm

package consent

import "syscall/js"

// ChangeEventName is the DOM event dispatched on window after the decision is written.
const ChangeEventName = "cookie-consent-change"

// Compile-time interface check
var _ Notifier = (*DOMNotifier)(nil)

// DOMNotifier raises the in-tab signal as a window event so page scripts outside
// the module (the consent banner) can raise and observe it too.
type DOMNotifier struct {
	window js.Value
}

// NewDOMNotifier binds to the global window.
func NewDOMNotifier() *DOMNotifier {
	return &DOMNotifier{window: js.Global().Get("window")}
}

// Notify dispatches the event. dispatchEvent runs listeners synchronously.
func (n *DOMNotifier) Notify() {
	evt := js.Global().Get("Event").New(ChangeEventName)
	n.window.Call("dispatchEvent", evt)
}

func (n *DOMNotifier) Subscribe(fn func()) func() {
	cb := js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		return nil
	})
	n.window.Call("addEventListener", ChangeEventName, cb)

	return func() {
		n.window.Call("removeEventListener", ChangeEventName, cb)
		cb.Release()
	}
}
