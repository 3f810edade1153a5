// Package sync mirrors the whole journal to a remote row, coalescing bursts
// of mutations behind a debounce window.
//
// The conflict model is deliberately blunt: one row per sync identifier,
// whole-state overwrite, last writer wins. Two devices editing concurrently
// will clobber each other; there is no per-record merge, no retry and no
// conflict detection. That limitation is part of the observable contract.
package sync

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"tradejournal/internal/config"
	"tradejournal/internal/models"
)

type Status string

const (
	StatusIdle    Status = "IDLE"
	StatusSyncing Status = "SYNCING"
	StatusSaved   Status = "SAVED"
	StatusError   Status = "ERROR"
)

// LocalStore is the durable store the remote mirror reads from and, on a
// startup pull, overwrites wholesale.
type LocalStore interface {
	LoadSnapshot(ctx context.Context) (models.Snapshot, error)
	ReplaceSnapshot(ctx context.Context, snap models.Snapshot) error
	UpsertSyncCheckpoint(ctx context.Context, item *models.SyncCheckpoint) error
}

// RemoteStore is the remote key-value row. Fetch returns nil (not an error)
// when no row exists for the identifier yet.
type RemoteStore interface {
	Upsert(ctx context.Context, syncID string, snap models.Snapshot) error
	Fetch(ctx context.Context, syncID string) (*models.Snapshot, error)
}

type StatusInfo struct {
	Status     Status     `json:"status"`
	Configured bool       `json:"configured"`
	LastError  string     `json:"last_error,omitempty"`
	LastPushAt *time.Time `json:"last_push_at,omitempty"`
	LastPullAt *time.Time `json:"last_pull_at,omitempty"`
}

type Coordinator struct {
	cfg    config.SyncConfig
	local  LocalStore
	remote RemoteStore
	logger *zap.Logger

	mu         sync.Mutex
	status     Status
	lastError  string
	lastPushAt *time.Time
	lastPullAt *time.Time
	latest     models.Snapshot
	hasLatest  bool
	timer      *time.Timer
	enabled    bool

	subs map[int]chan StatusInfo
	next int
}

func New(cfg config.SyncConfig, local LocalStore, remote RemoteStore, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		cfg:    cfg,
		local:  local,
		remote: remote,
		logger: logger,
		status: StatusIdle,
		subs:   map[int]chan StatusInfo{},
	}
}

// Bootstrap performs the one blocking pull from the remote store before the
// push path is enabled, so stale local state never clobbers a newer remote
// row on startup. A missing remote row leaves local state untouched. A pull
// failure falls back to local-only state and reports ERROR; pushes are still
// armed so the next mutation restarts the cycle.
func (c *Coordinator) Bootstrap(ctx context.Context) {
	if c == nil {
		return
	}
	if !c.cfg.Configured() || c.remote == nil {
		return
	}

	snap, err := c.remote.Fetch(ctx, c.cfg.SyncID)
	if err != nil {
		c.warn("startup pull failed, using local state", err)
		c.mu.Lock()
		c.enabled = true
		c.mu.Unlock()
		c.setError(err)
		return
	}
	if snap == nil {
		c.mu.Lock()
		c.enabled = true
		c.mu.Unlock()
		c.setStatus(StatusIdle)
		return
	}

	if err := c.local.ReplaceSnapshot(ctx, *snap); err != nil {
		c.warn("applying pulled remote state failed", err)
		c.mu.Lock()
		c.enabled = true
		c.mu.Unlock()
		c.setError(err)
		return
	}

	now := time.Now().UTC()
	c.mu.Lock()
	c.enabled = true
	c.lastPullAt = &now
	c.mu.Unlock()
	c.setStatus(StatusIdle)
	c.checkpoint(ctx)
	if c.logger != nil {
		c.logger.Info("remote state pulled",
			zap.Int("trades", len(snap.Trades)),
			zap.Int("accounts", len(snap.Accounts)),
			zap.Int("withdrawals", len(snap.Withdrawals)),
		)
	}
}

// Notify hands the coordinator the latest full state after a local mutation
// has already been durably written. If remote sync is configured the
// debounce timer restarts; only the state present at fire time is pushed,
// so intermediate states are never transmitted. An upsert already in flight
// is never aborted, only the pending timer is.
func (c *Coordinator) Notify(snap models.Snapshot) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.latest = snap
	c.hasLatest = true
	if !c.enabled || c.remote == nil {
		c.mu.Unlock()
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	debounce := c.cfg.Debounce
	if debounce <= 0 {
		debounce = 3 * time.Second
	}
	c.timer = time.AfterFunc(debounce, c.push)
	c.mu.Unlock()

	c.setStatus(StatusSyncing)
}

// Flush pushes the current local state immediately, bypassing the debounce.
// Used by the periodic backup job; a no-op while sync is unconfigured.
func (c *Coordinator) Flush(ctx context.Context) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	enabled := c.enabled
	// A pending debounced push would duplicate the state sent here.
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
	if !enabled || c.remote == nil {
		return nil
	}
	snap, err := c.local.LoadSnapshot(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.latest = snap
	c.hasLatest = true
	c.mu.Unlock()
	c.push()
	return nil
}

func (c *Coordinator) Status() StatusInfo {
	if c == nil {
		return StatusInfo{Status: StatusIdle}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return StatusInfo{
		Status:     c.status,
		Configured: c.cfg.Configured(),
		LastError:  c.lastError,
		LastPushAt: c.lastPushAt,
		LastPullAt: c.lastPullAt,
	}
}

// Subscribe returns a channel that receives status changes, for the
// websocket stream. Slow subscribers drop events instead of blocking the
// coordinator. The returned func cancels the subscription.
func (c *Coordinator) Subscribe() (<-chan StatusInfo, func()) {
	ch := make(chan StatusInfo, 8)
	c.mu.Lock()
	id := c.next
	c.next++
	c.subs[id] = ch
	c.mu.Unlock()
	return ch, func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Coordinator) push() {
	c.mu.Lock()
	if !c.hasLatest {
		c.mu.Unlock()
		return
	}
	snap := c.latest
	c.mu.Unlock()

	timeout := c.cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := c.remote.Upsert(ctx, c.cfg.SyncID, snap); err != nil {
		c.warn("remote push failed", err)
		c.setError(err)
		// The push context may already be expired; the checkpoint write
		// gets its own deadline so the failure is still recorded.
		ckCtx, ckCancel := context.WithTimeout(context.Background(), 2*time.Second)
		c.checkpoint(ckCtx)
		ckCancel()
		return
	}

	now := time.Now().UTC()
	c.mu.Lock()
	c.lastPushAt = &now
	c.mu.Unlock()
	c.setStatus(StatusSaved)
	c.checkpoint(ctx)
}

func (c *Coordinator) setStatus(status Status) {
	c.mu.Lock()
	c.status = status
	if status != StatusError {
		c.lastError = ""
	}
	info := c.statusLocked()
	subs := make([]chan StatusInfo, 0, len(c.subs))
	for _, ch := range c.subs {
		subs = append(subs, ch)
	}
	c.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- info:
		default:
		}
	}
}

func (c *Coordinator) setError(err error) {
	c.mu.Lock()
	c.lastError = err.Error()
	c.mu.Unlock()
	c.setStatus(StatusError)
}

func (c *Coordinator) statusLocked() StatusInfo {
	return StatusInfo{
		Status:     c.status,
		Configured: c.cfg.Configured(),
		LastError:  c.lastError,
		LastPushAt: c.lastPushAt,
		LastPullAt: c.lastPullAt,
	}
}

// checkpoint records the latest push/pull outcome. Checkpoint writes are
// diagnostics: failures are logged and swallowed.
func (c *Coordinator) checkpoint(ctx context.Context) {
	if c.local == nil {
		return
	}
	c.mu.Lock()
	item := &models.SyncCheckpoint{
		SyncID:     c.cfg.SyncID,
		Status:     string(c.status),
		LastError:  c.lastError,
		LastPushAt: c.lastPushAt,
		LastPullAt: c.lastPullAt,
	}
	c.mu.Unlock()
	if err := c.local.UpsertSyncCheckpoint(ctx, item); err != nil {
		c.warn("sync checkpoint write failed", err)
	}
}

func (c *Coordinator) warn(msg string, err error) {
	if c.logger != nil {
		c.logger.Warn(msg, zap.Error(err))
	}
}
