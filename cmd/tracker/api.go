//go:build js && wasm
// +build js,wasm

package main

import (
	"context"
	"syscall/js"

	"go-attribution/internal/consent"
	"go-attribution/internal/tracking"
)

// api backs window.attribution. Every function returns immediately; network work
// happens on goroutines started by the backends.
type api struct {
	ctx       context.Context
	decisions *consent.Store
	trackers  *tracking.Trackers
	sink      *tracking.Sink
	gate      *consent.Gate

	funcs []js.Func
}

func newAPI(ctx context.Context, decisions *consent.Store, trackers *tracking.Trackers, sink *tracking.Sink, gate *consent.Gate) *api {
	return &api{ctx: ctx, decisions: decisions, trackers: trackers, sink: sink, gate: gate}
}

func (a *api) object() js.Value {
	obj := js.Global().Get("Object").New()
	set := func(name string, fn func(args []js.Value) any) {
		f := js.FuncOf(func(_ js.Value, args []js.Value) any { return fn(args) })
		a.funcs = append(a.funcs, f)
		obj.Set(name, f)
	}

	set("setConsent", func(args []js.Value) any {
		err := a.decisions.Set(a.ctx, consent.ParseDecision(arg(args, 0)))
		return err == nil
	})
	set("clearConsent", func([]js.Value) any {
		a.decisions.Clear(a.ctx)
		return nil
	})
	set("getConsent", func([]js.Value) any {
		return a.decisions.Get(a.ctx).String()
	})
	set("analyticsPermitted", func([]js.Value) any {
		return a.gate.Permitted()
	})
	set("trackServiceView", func(args []js.Value) any {
		a.trackers.ServiceView(a.ctx, arg(args, 0))
		return nil
	})
	set("trackCTAClick", func(args []js.Value) any {
		a.trackers.CTAClick(a.ctx, arg(args, 0), arg(args, 1))
		return nil
	})
	set("trackContactForm", func(args []js.Value) any {
		a.trackers.ContactForm(a.ctx, arg(args, 0))
		return nil
	})
	set("trackProjectView", func(args []js.Value) any {
		a.trackers.ProjectView(a.ctx, arg(args, 0), arg(args, 1))
		return nil
	})
	set("trackCalendlyBooking", func([]js.Value) any {
		a.trackers.CalendlyBooking(a.ctx)
		return nil
	})
	set("trackCustom", func(args []js.Value) any {
		var opts []tracking.EventOption
		if label := arg(args, 2); label != "" {
			opts = append(opts, tracking.WithLabel(label))
		}
		if len(args) > 3 && args[3].Type() == js.TypeNumber {
			opts = append(opts, tracking.WithValue(args[3].Float()))
		}
		a.trackers.Custom(a.ctx, arg(args, 0), arg(args, 1), opts...)
		return nil
	})
	set("pageView", func(args []js.Value) any {
		u := arg(args, 0)
		if u == "" {
			u = js.Global().Get("location").Get("href").String()
		}
		a.sink.PageView(a.ctx, u)
		return nil
	})

	return obj
}

// arg returns args[i] as a string, or "" when it is missing or not a string.
func arg(args []js.Value, i int) string {
	if i >= len(args) || args[i].Type() != js.TypeString {
		return ""
	}
	return args[i].String()
}
