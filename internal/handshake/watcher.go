package handshake

import (
	"context"
	"time"
)

// watchClosed polls the popup's closed state at a bounded interval and closes
// the returned channel once the popup is gone. The goroutine exits with the
// context.
func watchClosed(ctx context.Context, popup Popup, interval time.Duration) <-chan struct{} {
	closed := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if popup.Closed() {
					close(closed)
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return closed
}
