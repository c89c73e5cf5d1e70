package handshake

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	domainauth "github.com/brightmath/campus-api/internal/domain/auth"
	"github.com/brightmath/campus-api/internal/ports"
)

// State is a phase of the popup handshake.
type State int

const (
	StateIdle State = iota
	StatePopupOpened
	StateAwaitingCallback
	StateExchanging
	StateSucceeded
	StateFailed
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePopupOpened:
		return "popup_opened"
	case StateAwaitingCallback:
		return "awaiting_callback"
	case StateExchanging:
		return "exchanging"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// FailureReason categorizes a terminal handshake failure.
type FailureReason string

const (
	// ReasonProviderDenied means the provider redirected back with an error param.
	ReasonProviderDenied FailureReason = "provider_denied"
	// ReasonMissingCode means the callback carried neither code nor error.
	ReasonMissingCode FailureReason = "missing_code"
	// ReasonExchangeFailed means the backend rejected the code or the request failed.
	ReasonExchangeFailed FailureReason = "exchange_failed"
)

// CallbackParams is the parsed provider redirect query.
type CallbackParams struct {
	Code  string
	Error string
}

// ParseCallback reads the provider redirect query. An error param takes
// precedence over a code; a redirect with neither is a malformed invocation.
func ParseCallback(query url.Values) (CallbackParams, FailureReason, error) {
	p := CallbackParams{
		Code:  query.Get("code"),
		Error: query.Get("error"),
	}
	if p.Error != "" {
		return p, ReasonProviderDenied, fmt.Errorf("provider denied authorization: %s", p.Error)
	}
	if p.Code == "" {
		return p, ReasonMissingCode, errors.New("callback carried no authorization code")
	}
	return p, "", nil
}

// Exchanger trades an authorization code for an authenticated session.
type Exchanger interface {
	ExchangeSocialLogin(ctx context.Context, provider, code string) (domainauth.Session, error)
}

// Outcome is the terminal result of a popup handshake attempt.
type Outcome struct {
	State   State
	Session *domainauth.Session
	// Reason is set when State is StateFailed.
	Reason FailureReason
	Err    error
	// RedirectTo is set instead of a close when no opener is reachable.
	RedirectTo string
}

// CompleterOptions groups dependencies for a Completer.
type CompleterOptions struct {
	Exchanger Exchanger
	Sessions  ports.SessionStore
	// Opener is the channel back to the window that started the flow.
	// Nil when the callback page was reached by direct navigation.
	Opener Port
	// TargetOrigin is the sole origin success messages are posted to.
	TargetOrigin string
	// CloseDelay lets the message drain before teardown. Default 300ms.
	CloseDelay time.Duration
	// CloseFn closes the popup window; invoked after CloseDelay on success.
	CloseFn func()
	// HomePath is the authenticated landing page used when no opener exists.
	HomePath string
	// Provider names the IdP for the exchange call. Default "google".
	Provider string
}

// Completer drives the popup side of the handshake from callback to close.
// One Completer serves one popup instance; a failed attempt is terminal and
// the user must restart the flow from the opener.
type Completer struct {
	opts CompleterOptions

	mu    sync.Mutex
	state State
	timer *time.Timer
}

// NewCompleter constructs a Completer in the AwaitingCallback state.
func NewCompleter(opts CompleterOptions) (*Completer, error) {
	if opts.Exchanger == nil {
		return nil, errors.New("exchanger is required")
	}
	if opts.Sessions == nil {
		return nil, errors.New("session store is required")
	}
	if opts.Opener != nil && opts.TargetOrigin == "" {
		return nil, errors.New("target origin is required when an opener is present")
	}
	if opts.CloseDelay <= 0 {
		opts.CloseDelay = 300 * time.Millisecond
	}
	if opts.HomePath == "" {
		opts.HomePath = "/dashboard"
	}
	if opts.Provider == "" {
		opts.Provider = "google"
	}
	return &Completer{opts: opts, state: StateAwaitingCallback}, nil
}

// State returns the current handshake phase.
func (c *Completer) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Completer) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Complete runs the callback through exchange and relay. Failures are
// converted to a Failed outcome, never propagated as errors; the only
// returned state values are StateSucceeded and StateFailed.
func (c *Completer) Complete(ctx context.Context, query url.Values) Outcome {
	params, reason, err := ParseCallback(query)
	if err != nil {
		return c.fail(reason, err)
	}

	c.setState(StateExchanging)
	sess, err := c.opts.Exchanger.ExchangeSocialLogin(ctx, c.opts.Provider, params.Code)
	if err != nil {
		return c.fail(ReasonExchangeFailed, err)
	}

	// Persist before posting: a listener receiving the success message must
	// be able to read a valid session from the shared store immediately.
	if err := c.opts.Sessions.Set(ctx, sess); err != nil {
		return c.fail(ReasonExchangeFailed, fmt.Errorf("persist session: %w", err))
	}

	c.setState(StateSucceeded)
	out := Outcome{State: StateSucceeded, Session: &sess}

	if c.opts.Opener == nil {
		// Direct navigation: nothing to message, nothing to close.
		out.RedirectTo = c.opts.HomePath
		return out
	}

	msg := Message{Type: MessageTypeAuthSuccess, Token: sess.Token}
	if postErr := c.opts.Opener.Post(msg, c.opts.TargetOrigin); postErr != nil {
		// The session is already persisted; the opener will still pick it up
		// from shared storage, so a lost message downgrades to the redirect path.
		out.RedirectTo = c.opts.HomePath
		return out
	}

	c.scheduleClose()
	return out
}

func (c *Completer) fail(reason FailureReason, err error) Outcome {
	// No auto-close on failure: the user may want to read the message.
	c.setState(StateFailed)
	return Outcome{State: StateFailed, Reason: reason, Err: err}
}

// scheduleClose arranges the popup teardown after the message drain delay.
func (c *Completer) scheduleClose() {
	closeFn := c.opts.CloseFn
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timer = time.AfterFunc(c.opts.CloseDelay, func() {
		c.setState(StateClosed)
		if closeFn != nil {
			closeFn()
		}
	})
}

// Stop cancels a pending close. Used when the hosting context tears down first.
func (c *Completer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
