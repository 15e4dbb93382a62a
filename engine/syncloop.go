package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	domainRemote "github.com/postdeck/domains/remote"
)

const DefaultSyncInterval = 5 * time.Second

// SyncLoop drives periodic reconciliation against the remote backend. It has
// two states, idle and syncing: a tick or trigger arriving while a pull is in
// flight is dropped, so at most one ListPosts call is ever outstanding. A pull
// that completes after the loop context was cancelled is discarded without
// touching the store.
type SyncLoop struct {
	gateway  domainRemote.IRemoteGateway
	store    *Store
	events   Sink
	interval time.Duration

	trigger chan struct{}
	syncing atomic.Bool

	mu      sync.RWMutex
	lastErr string
}

func NewSyncLoop(gateway domainRemote.IRemoteGateway, store *Store, interval time.Duration, events Sink) *SyncLoop {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	if events == nil {
		events = discardSink{}
	}
	return &SyncLoop{
		gateway:  gateway,
		store:    store,
		events:   events,
		interval: interval,
		trigger:  make(chan struct{}, 1),
	}
}

// Start launches the background loop. It stops when ctx is cancelled.
func (l *SyncLoop) Start(ctx context.Context) {
	go l.run(ctx)
}

func (l *SyncLoop) run(ctx context.Context) {
	logrus.Infof("[SYNC] Loop started, interval %s", l.interval)

	// Initial hydration before the first tick.
	l.SyncNow(ctx)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("[SYNC] Loop stopped")
			return
		case <-ticker.C:
			go l.SyncNow(ctx)
		case <-l.trigger:
			go l.SyncNow(ctx)
		}
	}
}

// Trigger requests an on-demand pull (used right after a submission). Multiple
// pending triggers collapse into one.
func (l *SyncLoop) Trigger() {
	select {
	case l.trigger <- struct{}{}:
	default:
	}
}

// SyncNow performs one pull-and-reconcile cycle. Returns true when a snapshot
// was applied. Calls overlapping an in-flight pull return immediately.
func (l *SyncLoop) SyncNow(ctx context.Context) bool {
	if !l.syncing.CompareAndSwap(false, true) {
		logrus.Debug("[SYNC] Pull already in flight, tick coalesced")
		return false
	}
	defer l.syncing.Store(false)

	snapshot, err := l.gateway.ListPosts(ctx)

	// Teardown check: never apply after cancellation, even a successful pull.
	if ctx.Err() != nil {
		logrus.Debug("[SYNC] Context cancelled, discarding pull result")
		return false
	}

	if err != nil {
		l.setLastError(err.Error())
		logrus.WithError(err).Error("[SYNC] Snapshot pull failed, keeping previous state")
		l.events.Publish(Event{Code: EventSyncFailed, Message: err.Error()})
		return false
	}

	skipped := l.store.Reconcile(snapshot)
	l.setLastError("")
	l.events.Publish(Event{
		Code:   EventPostsReconciled,
		Result: map[string]int{"total": l.store.Len(), "skipped": skipped},
	})
	return true
}

func (l *SyncLoop) setLastError(msg string) {
	l.mu.Lock()
	l.lastErr = msg
	l.mu.Unlock()
}

// LastError returns the message of the most recent failed pull, empty once a
// pull succeeds again.
func (l *SyncLoop) LastError() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastErr
}
