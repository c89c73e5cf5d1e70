package handshake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domainauth "github.com/brightmath/campus-api/internal/domain/auth"
	"github.com/brightmath/campus-api/internal/ports"
)

// OpenerStatus is the terminal result of the opener's wait.
type OpenerStatus int

const (
	// OpenerSucceeded means a valid success message arrived and the session was refreshed.
	OpenerSucceeded OpenerStatus = iota
	// OpenerCanceled means the popup closed without ever messaging back.
	// This is a silent cancellation, not an error.
	OpenerCanceled
)

// OpenerResult carries the opener's view of the finished flow.
type OpenerResult struct {
	Status  OpenerStatus
	Session *domainauth.Session
}

// OpenerOptions groups dependencies for an Opener.
type OpenerOptions struct {
	Windows  WindowOpener
	Sessions ports.SessionStore
	// Origin is the opener's own origin. Messages posted from any other
	// origin are dropped without touching session state.
	Origin string
	// PollInterval bounds the popup-closed check. Default 500ms.
	PollInterval time.Duration
	Logger       *slog.Logger
}

// Opener is the originating window's side of the handshake. It registers its
// message listener before opening the popup, so the success message cannot
// race the listener setup.
type Opener struct {
	opts  OpenerOptions
	popup Popup
	msgs  chan PostedMessage
}

// NewOpener constructs an Opener with its message listener already in place.
func NewOpener(opts OpenerOptions) (*Opener, error) {
	if opts.Windows == nil {
		return nil, errors.New("window opener is required")
	}
	if opts.Sessions == nil {
		return nil, errors.New("session store is required")
	}
	if opts.Origin == "" {
		return nil, errors.New("origin is required")
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 500 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Opener{
		opts: opts,
		msgs: make(chan PostedMessage, 4),
	}, nil
}

// Start opens the consent popup. A blocked popup returns ErrPopupBlocked and
// leaves the opener reusable for a retry.
func (o *Opener) Start(authURL string) error {
	popup, err := o.opts.Windows.Open(authURL)
	if err != nil {
		if errors.Is(err, ErrPopupBlocked) {
			return err
		}
		return fmt.Errorf("open popup: %w", err)
	}
	if popup == nil {
		return ErrPopupBlocked
	}
	o.popup = popup
	return nil
}

// Deliver hands a posted message to the opener's listener. Non-blocking;
// transports drop on overflow rather than stall the delivering side.
func (o *Opener) Deliver(msg PostedMessage) {
	select {
	case o.msgs <- msg:
	default:
		o.opts.Logger.Warn("handshake message dropped, listener backlog full", "type", msg.Type)
	}
}

// Wait blocks until the popup reports back or disappears. It consumes
// messages from the listener channel, enforcing the origin allowlist, and in
// parallel polls the popup's closed state as the cancellation signal.
func (o *Opener) Wait(ctx context.Context) (OpenerResult, error) {
	if o.popup == nil {
		return OpenerResult{}, errors.New("popup not opened")
	}

	closed := watchClosed(ctx, o.popup, o.opts.PollInterval)

	for {
		select {
		case msg := <-o.msgs:
			res, ok := o.handleMessage(ctx, msg)
			if !ok {
				continue
			}
			return res, nil

		case <-closed:
			return OpenerResult{Status: OpenerCanceled}, nil

		case <-ctx.Done():
			return OpenerResult{}, ctx.Err()
		}
	}
}

// handleMessage validates and applies one posted message. The origin check is
// the security boundary: a cross-origin message must never update session
// state, however well-formed its payload.
func (o *Opener) handleMessage(ctx context.Context, msg PostedMessage) (OpenerResult, bool) {
	if msg.Origin != o.opts.Origin {
		o.opts.Logger.Warn("rejected handshake message from foreign origin", "origin", msg.Origin)
		return OpenerResult{}, false
	}
	if msg.Type != MessageTypeAuthSuccess {
		return OpenerResult{}, false
	}

	// The popup persisted the session before posting, so the shared store is
	// the source of truth; the payload token is only the fallback for
	// contexts that do not share storage.
	sess, err := o.opts.Sessions.Current(ctx)
	if err != nil || sess == nil {
		if msg.Token == "" {
			o.opts.Logger.Warn("success message without readable session", "error", err)
			return OpenerResult{}, false
		}
		sess = &domainauth.Session{Token: msg.Token}
	}
	return OpenerResult{Status: OpenerSucceeded, Session: sess}, true
}
