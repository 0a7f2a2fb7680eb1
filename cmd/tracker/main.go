//go:build js && wasm
// +build js,wasm

// Command tracker runs in the page as WebAssembly. It captures landing
// attribution, keeps the analytics backends behind the visitor's consent and
// exposes the tracking calls to page scripts as window.attribution.
package main

import (
	"context"
	"net/url"
	"syscall/js"

	"go-attribution/internal/attribution"
	"go-attribution/internal/consent"
	"go-attribution/internal/landing"
	"go-attribution/internal/storage"
	"go-attribution/internal/storage/browser"
	"go-attribution/internal/tracking"
	"go-attribution/internal/tracking/backends/beacon"
	browserbackends "go-attribution/internal/tracking/backends/browser"

	"go.uber.org/zap"
)

func main() {
	cfg := readConfig()
	logger := newLogger(cfg.Debug)
	ctx := context.Background()

	var (
		store   storage.Storage = storage.Unavailable{}
		watcher storage.Watcher = storage.Unavailable{}
	)
	if local, err := browser.Open(); err != nil {
		logger.Debug("localStorage unavailable", zap.Error(err))
	} else {
		store, watcher = local, local
	}

	sink := tracking.NewSink(logger)
	sink.Register(beacon.NewLoader(beacon.New(cfg.Endpoint, nil, logger)))
	if cfg.GtagID != "" {
		sink.Register(browserbackends.NewGtagLoader(cfg.GtagID))
	}
	if cfg.PixelID != "" {
		sink.Register(browserbackends.NewPixelLoader(cfg.PixelID))
	}

	notifier := consent.NewDOMNotifier()
	decisions := consent.NewStore(store, notifier, logger)
	gate := consent.NewGate(decisions, watcher, notifier, sink, logger)
	gate.Start(ctx)

	mirror := newCookieMirror(decisions)
	mirror.sync(ctx)
	notifier.Subscribe(func() { mirror.sync(ctx) })
	watcher.Watch(func(key string) {
		if key == consent.Key || key == "" {
			mirror.sync(ctx)
		}
	})

	reporter := landing.NewReporter(
		attribution.NewStore(store, logger),
		landing.NewClient(cfg.Endpoint, nil),
		logger,
		landing.WithPolicy(cfg.Policy),
	)
	location := js.Global().Get("location")
	if params, err := url.ParseQuery(trimQuery(location.Get("search").String())); err == nil {
		reporter.Report(ctx, location.Get("href").String(), params)
	}

	api := newAPI(ctx, decisions, tracking.NewTrackers(sink), sink, gate)
	js.Global().Set("attribution", api.object())

	if ready := js.Global().Get("onAttributionReady"); ready.Type() == js.TypeFunction {
		ready.Invoke()
	}

	select {}
}

func trimQuery(search string) string {
	if len(search) > 0 && search[0] == '?' {
		return search[1:]
	}
	return search
}
