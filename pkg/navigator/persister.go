package navigator

import (
	"context"
	"sync"

	"promptly-be/pkg/apiclient"

	"go.uber.org/zap"
)

type ProfileSaver interface {
	UpdateProfile(ctx context.Context, update apiclient.ProfileUpdate) (*apiclient.Envelope[apiclient.Profile], error)
}

// SaveStatus is the state of the most recent profile save.
type SaveStatus string

const (
	SaveIdle      SaveStatus = "idle"
	SaveSaving    SaveStatus = "saving"
	SaveSucceeded SaveStatus = "succeeded"
	SaveFailed    SaveStatus = "failed"
)

// Persister writes the profile draft through to the backend whenever it
// changes. Saves run in the background and never block navigation. At most
// one save is in flight; drafts observed meanwhile collapse into a single
// pending save that is sent once the current one returns, so the backend
// always ends up with the newest draft.
type Persister struct {
	saver   ProfileSaver
	logger  *zap.Logger
	onError func(error)

	mu            sync.Mutex
	primed        bool
	inFlight      bool
	pending       *ProfileDraft
	lastPersisted ProfileDraft
	lastScheduled ProfileDraft
	seq           uint64
	status        SaveStatus
	lastErr       error

	wg sync.WaitGroup
}

func NewPersister(saver ProfileSaver, logger *zap.Logger) *Persister {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Persister{saver: saver, logger: logger, status: SaveIdle}
}

// OnError registers a callback for failed saves.
func (p *Persister) OnError(fn func(error)) {
	p.mu.Lock()
	p.onError = fn
	p.mu.Unlock()
}

// Prime records the draft loaded from the backend. Nothing is saved before
// the first Prime.
func (p *Persister) Prime(d ProfileDraft) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.primed = true
	p.lastPersisted = d.Clone()
	p.lastScheduled = d.Clone()
}

// Observe schedules a save when d differs from what was last scheduled. It
// reports whether a save was started or queued.
func (p *Persister) Observe(ctx context.Context, d ProfileDraft) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.primed || d.Equal(p.lastScheduled) {
		return false
	}
	snapshot := d.Clone()
	p.lastScheduled = snapshot
	p.status = SaveSaving

	if p.inFlight {
		p.pending = &snapshot
		return true
	}
	p.inFlight = true
	p.wg.Add(1)
	go p.run(context.WithoutCancel(ctx), snapshot)
	return true
}

// run sends d, then keeps sending whatever became pending meanwhile.
func (p *Persister) run(ctx context.Context, d ProfileDraft) {
	defer p.wg.Done()

	for {
		p.mu.Lock()
		p.seq++
		seq := p.seq
		p.mu.Unlock()

		_, err := p.saver.UpdateProfile(ctx, d.ToUpdate())

		p.mu.Lock()
		onError := p.onError
		next := p.pending
		p.pending = nil
		if err != nil {
			p.lastErr = err
		} else {
			p.lastPersisted = d
			p.lastErr = nil
		}
		switch {
		case next != nil:
			p.status = SaveSaving
		case err != nil:
			p.status = SaveFailed
		default:
			p.status = SaveSucceeded
		}
		if next == nil {
			p.inFlight = false
		}
		p.mu.Unlock()

		if err != nil {
			// The failed draft stays scheduled; only a real change sends again.
			p.logger.Error("failed to save profile", zap.Uint64("seq", seq), zap.Error(err))
			if onError != nil {
				onError(err)
			}
		} else {
			p.logger.Debug("profile saved", zap.Uint64("seq", seq))
		}

		if next == nil {
			return
		}
		d = *next
	}
}

func (p *Persister) Status() SaveStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *Persister) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

func (p *Persister) LastPersisted() ProfileDraft {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastPersisted.Clone()
}

// Wait blocks until every scheduled save has finished.
func (p *Persister) Wait() {
	p.wg.Wait()
}
