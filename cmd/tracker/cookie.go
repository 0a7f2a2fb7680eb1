//go:build js && wasm
// +build js,wasm

package main

import (
	"context"
	"fmt"
	"syscall/js"

	"go-attribution/internal/consent"
)

const cookieMaxAge = 180 * 24 * 60 * 60

// cookieMirror copies the stored decision into the consent cookie, which is what
// the first-party relay reads server-side.
type cookieMirror struct {
	decisions *consent.Store
	document  js.Value
}

func newCookieMirror(decisions *consent.Store) *cookieMirror {
	return &cookieMirror{decisions: decisions, document: js.Global().Get("document")}
}

func (m *cookieMirror) sync(ctx context.Context) {
	d := m.decisions.Get(ctx)
	if d == consent.Unset {
		m.document.Set("cookie", fmt.Sprintf("%s=; path=/; max-age=0; SameSite=Lax", consent.Key))
		return
	}
	m.document.Set("cookie", fmt.Sprintf("%s=%s; path=/; max-age=%d; SameSite=Lax", consent.Key, d, cookieMaxAge))
}
