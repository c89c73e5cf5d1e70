// Package handshake implements the OAuth popup flow: the popup-side state
// machine that exchanges the provider callback for a session, and the
// opener-side listener that receives the result. The two sides are
// independent actors synchronized only through a typed message envelope and
// the shared session store.
package handshake

import "errors"

// MessageTypeAuthSuccess is the envelope type posted to the opener after a
// successful exchange.
const MessageTypeAuthSuccess = "GOOGLE_AUTH_SUCCESS"

// Message is the typed envelope relayed from the popup to its opener.
type Message struct {
	Type  string `json:"type"`
	Token string `json:"token,omitempty"`
}

// PostedMessage pairs an envelope with the origin it was posted from.
// Origin is stamped by the transport, never by the sender, so the receiver
// can trust it for the allowlist check.
type PostedMessage struct {
	Message
	Origin string
}

// Port is the popup's handle to its opener, abstracting window.postMessage.
// Post targets a single origin; implementations must not broadcast.
type Port interface {
	Post(msg Message, targetOrigin string) error
}

// Popup is the opener's handle to the secondary browsing context.
type Popup interface {
	// Closed reports whether the popup window has been closed.
	Closed() bool
	// Close closes the popup. Best-effort; browsers may refuse.
	Close()
}

// WindowOpener opens a secondary browsing context at the given URL.
// A blocked popup is reported as ErrPopupBlocked.
type WindowOpener interface {
	Open(url string) (Popup, error)
}

// ErrPopupBlocked indicates the browser refused to open the popup. This is
// recoverable and user-actionable, distinct from an auth failure.
var ErrPopupBlocked = errors.New("popup blocked by browser")
