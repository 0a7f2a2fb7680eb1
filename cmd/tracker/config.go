//go:build js && wasm
// +build js,wasm

package main

import (
	"os"
	"syscall/js"

	"go-attribution/internal/attribution"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// config is read from window.attributionConfig, set by the page before the module loads.
type config struct {
	Endpoint string
	GtagID   string
	PixelID  string
	Policy   attribution.Policy
	Debug    bool
}

func readConfig() config {
	cfg := config{Endpoint: js.Global().Get("location").Get("origin").String()}

	raw := js.Global().Get("attributionConfig")
	if raw.Type() != js.TypeObject {
		return cfg
	}
	if v := stringField(raw, "endpoint"); v != "" {
		cfg.Endpoint = v
	}
	cfg.GtagID = stringField(raw, "gtagId")
	cfg.PixelID = stringField(raw, "pixelId")
	if stringField(raw, "policy") == attribution.FirstTouch.String() {
		cfg.Policy = attribution.FirstTouch
	}
	cfg.Debug = raw.Get("debug").Truthy()
	return cfg
}

func stringField(obj js.Value, name string) string {
	v := obj.Get(name)
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

// newLogger writes JSON lines to the console. Without debug only errors are kept.
func newLogger(debug bool) *zap.Logger {
	level := zapcore.ErrorLevel
	if debug {
		level = zapcore.DebugLevel
	}
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(os.Stderr), level)
	return zap.New(core)
}
