package library

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rcliao/action-shelf/internal/model"
	"github.com/rcliao/action-shelf/internal/store"
)

// persister writes snapshots on a background goroutine. Snapshots are saved
// in the order they were queued; one that has not been picked up yet is
// replaced by a newer one, so the gateway always ends with the latest state.
type persister struct {
	gw    store.Gateway
	log   *slog.Logger
	onErr func(error)

	mu       sync.Mutex
	next     []model.Action
	queued   uint64 // generation of next
	written  uint64 // generation of the last finished save
	progress chan struct{}
	closed   bool

	kick    chan struct{}
	stop    chan struct{}
	stopped chan struct{}
}

func newPersister(gw store.Gateway, log *slog.Logger, onErr func(error)) *persister {
	p := &persister{
		gw:       gw,
		log:      log,
		onErr:    onErr,
		progress: make(chan struct{}),
		kick:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *persister) enqueue(snapshot []model.Action) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	p.queued++
	p.next = snapshot
	p.mu.Unlock()

	select {
	case p.kick <- struct{}{}:
	default:
	}
	return nil
}

func (p *persister) run() {
	defer close(p.stopped)
	for {
		select {
		case <-p.kick:
			p.drain()
		case <-p.stop:
			p.drain()
			return
		}
	}
}

func (p *persister) drain() {
	for {
		p.mu.Lock()
		if p.written == p.queued {
			p.mu.Unlock()
			return
		}
		gen, snapshot := p.queued, p.next
		p.next = nil
		p.mu.Unlock()

		// Saves are never cancelled once issued.
		if err := p.gw.Save(context.Background(), snapshot); err != nil {
			perr := &PersistenceError{Op: "save", Err: err}
			p.log.Warn("save actions failed", "error", err, "actions", len(snapshot))
			if p.onErr != nil {
				p.onErr(perr)
			}
		} else {
			p.log.Debug("actions saved", "actions", len(snapshot))
		}

		p.mu.Lock()
		p.written = gen
		close(p.progress)
		p.progress = make(chan struct{})
		p.mu.Unlock()
	}
}

// flush waits until everything queued before the call has been written.
func (p *persister) flush(ctx context.Context) error {
	p.mu.Lock()
	target := p.queued
	p.mu.Unlock()

	for {
		p.mu.Lock()
		if p.written >= target {
			p.mu.Unlock()
			return nil
		}
		ch := p.progress
		p.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (p *persister) close(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	close(p.stop)
	select {
	case <-p.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
