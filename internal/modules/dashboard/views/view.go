package views

import (
	"context"

	"stuDealsWs/internal/modules/dashboard/channel"
)

// view is the shared lifecycle of every dashboard adapter: it holds a
// reference on the one vendor channel while mounted and drops both the
// reference and its subscriptions on unmount. An unmounted view is done;
// construct a fresh one to mount again.
type view struct {
	ch      *channel.Channel
	unsubs  []func()
	refresh func() error
}

func (v *view) track(off func()) {
	v.unsubs = append(v.unsubs, off)
}

// Mount takes a channel reference, connecting on first use, and arranges a
// snapshot request on every Connected edge: it covers mounts that raced the
// connection attempt as well as state drift across reconnects.
func (v *view) Mount(ctx context.Context, id channel.Identity) error {
	if err := v.ch.Acquire(ctx, id); err != nil {
		return err
	}
	if v.refresh != nil {
		refresh := v.refresh
		v.track(v.ch.NotifyConnected(func() { _ = refresh() }))
	}
	return nil
}

// Unmount removes the view's subscriptions and releases the channel
// reference; the last view out closes the connection.
func (v *view) Unmount() {
	for _, off := range v.unsubs {
		off()
	}
	v.unsubs = nil
	v.ch.Release()
}
