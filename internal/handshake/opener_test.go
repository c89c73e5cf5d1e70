package handshake

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/brightmath/campus-api/internal/domain/auth"
	mockauth "github.com/brightmath/campus-api/internal/mocks/auth"
)

type fakePopup struct {
	mu     sync.Mutex
	closed bool
}

func (f *fakePopup) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakePopup) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

type fakeWindows struct {
	popup *fakePopup
	err   error
	urls  []string
}

func (f *fakeWindows) Open(url string) (Popup, error) {
	f.urls = append(f.urls, url)
	if f.err != nil {
		return nil, f.err
	}
	if f.popup == nil {
		return nil, nil
	}
	return f.popup, nil
}

const testOrigin = "https://campus.example.com"

func newTestOpener(t *testing.T, windows *fakeWindows, store *mockauth.MemorySessionStore) *Opener {
	t.Helper()
	o, err := NewOpener(OpenerOptions{
		Windows:      windows,
		Sessions:     store,
		Origin:       testOrigin,
		PollInterval: 5 * time.Millisecond,
	})
	require.NoError(t, err)
	return o
}

func TestOpenerSuccessReadsStore(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	windows := &fakeWindows{popup: &fakePopup{}}
	o := newTestOpener(t, windows, store)

	require.NoError(t, o.Start("https://accounts.google.com/o/oauth2/v2/auth?state=s"))
	assert.Equal(t, []string{"https://accounts.google.com/o/oauth2/v2/auth?state=s"}, windows.urls)

	// Popup side: persist, then post.
	sess := domainauth.Session{
		Token: "jwt-1",
		User:  domainauth.UserRecord{ID: "u1", Email: "ada@example.com", Role: domainauth.RoleStudent},
	}
	require.NoError(t, store.Set(t.Context(), sess))
	o.Deliver(PostedMessage{
		Message: Message{Type: MessageTypeAuthSuccess, Token: "jwt-1"},
		Origin:  testOrigin,
	})

	res, err := o.Wait(t.Context())
	require.NoError(t, err)
	assert.Equal(t, OpenerSucceeded, res.Status)
	require.NotNil(t, res.Session)
	assert.Equal(t, "jwt-1", res.Session.Token)
	assert.Equal(t, "u1", res.Session.User.ID, "session comes from the store, not the message")
}

func TestOpenerRejectsForeignOrigin(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	windows := &fakeWindows{popup: &fakePopup{}}
	o := newTestOpener(t, windows, store)
	require.NoError(t, o.Start("https://idp/auth"))

	// A well-formed success message from the wrong origin must be dropped.
	o.Deliver(PostedMessage{
		Message: Message{Type: MessageTypeAuthSuccess, Token: "stolen"},
		Origin:  "https://evil.example.net",
	})
	windows.popup.Close()

	res, err := o.Wait(t.Context())
	require.NoError(t, err)
	assert.Equal(t, OpenerCanceled, res.Status)
	assert.Nil(t, res.Session)

	sess, err := store.Current(t.Context())
	require.NoError(t, err)
	assert.Nil(t, sess, "cross-origin message must not touch session state")
}

func TestOpenerIgnoresUnknownMessageTypes(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	windows := &fakeWindows{popup: &fakePopup{}}
	o := newTestOpener(t, windows, store)
	require.NoError(t, o.Start("https://idp/auth"))

	o.Deliver(PostedMessage{
		Message: Message{Type: "UNRELATED_EVENT"},
		Origin:  testOrigin,
	})
	windows.popup.Close()

	res, err := o.Wait(t.Context())
	require.NoError(t, err)
	assert.Equal(t, OpenerCanceled, res.Status)
}

func TestOpenerTokenFallback(t *testing.T) {
	// Shared storage unreadable: the payload token is the only handle.
	store := mockauth.NewMemorySessionStore()
	store.CurrentErr = errors.New("storage unavailable")
	windows := &fakeWindows{popup: &fakePopup{}}
	o := newTestOpener(t, windows, store)
	require.NoError(t, o.Start("https://idp/auth"))

	o.Deliver(PostedMessage{
		Message: Message{Type: MessageTypeAuthSuccess, Token: "jwt-fallback"},
		Origin:  testOrigin,
	})

	res, err := o.Wait(t.Context())
	require.NoError(t, err)
	assert.Equal(t, OpenerSucceeded, res.Status)
	require.NotNil(t, res.Session)
	assert.Equal(t, "jwt-fallback", res.Session.Token)
	assert.Empty(t, res.Session.User.ID)
}

func TestOpenerSuccessWithoutSessionOrToken(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	windows := &fakeWindows{popup: &fakePopup{}}
	o := newTestOpener(t, windows, store)
	require.NoError(t, o.Start("https://idp/auth"))

	// Success message with no token and nothing in the store is unusable;
	// the wait keeps going until the popup closes.
	o.Deliver(PostedMessage{
		Message: Message{Type: MessageTypeAuthSuccess},
		Origin:  testOrigin,
	})
	windows.popup.Close()

	res, err := o.Wait(t.Context())
	require.NoError(t, err)
	assert.Equal(t, OpenerCanceled, res.Status)
}

func TestOpenerCanceledWhenPopupCloses(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	popup := &fakePopup{}
	windows := &fakeWindows{popup: popup}
	o := newTestOpener(t, windows, store)
	require.NoError(t, o.Start("https://idp/auth"))

	go func() {
		time.Sleep(20 * time.Millisecond)
		popup.Close()
	}()

	res, err := o.Wait(t.Context())
	require.NoError(t, err)
	assert.Equal(t, OpenerCanceled, res.Status)
	assert.Nil(t, res.Session)
}

func TestOpenerStartBlocked(t *testing.T) {
	store := mockauth.NewMemorySessionStore()

	t.Run("explicit error", func(t *testing.T) {
		o := newTestOpener(t, &fakeWindows{err: ErrPopupBlocked}, store)
		err := o.Start("https://idp/auth")
		assert.ErrorIs(t, err, ErrPopupBlocked)
	})

	t.Run("nil popup", func(t *testing.T) {
		o := newTestOpener(t, &fakeWindows{}, store)
		err := o.Start("https://idp/auth")
		assert.ErrorIs(t, err, ErrPopupBlocked)
	})
}

func TestOpenerWaitRequiresStart(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	o := newTestOpener(t, &fakeWindows{popup: &fakePopup{}}, store)

	_, err := o.Wait(t.Context())
	assert.Error(t, err)
}

func TestOpenerDeliverDropsOnOverflow(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	o := newTestOpener(t, &fakeWindows{popup: &fakePopup{}}, store)

	// Nobody is draining the channel; Deliver must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			o.Deliver(PostedMessage{Message: Message{Type: "NOISE"}, Origin: testOrigin})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Deliver blocked on a full listener channel")
	}
}
