package service

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"olgwatch/internal/dal"
	"olgwatch/internal/providers"
)

//go:generate mockgen -package mocks -destination mocks/watcher.go . PageProvider,StateStore,Notifier

type PageProvider interface {
	Snapshot(ctx context.Context) (providers.Snapshot, error)
}

type StateStore interface {
	Load() (dal.CheckState, bool, error)
	Save(state dal.CheckState) error
}

type Notifier interface {
	Notify(ctx context.Context, subject, body string) bool
}

const (
	subjectStructureChanged = "OLG Hamm – Strukturänderung erkannt"
	bodyStructureChanged    = "Die Gesamtstruktur der Seite hat sich verändert (möglicherweise Layout oder Position des Ausbildungsbereichs)."

	subjectSectionUpdated = "OLG Hamm – Ausbildungsplatz-Update!"
	bodySectionUpdated    = "Der Inhalt im Ausbildungsabschnitt hat sich geändert.\n\nAktueller Inhalt:\n\n"

	emptySectionPlaceholder = "[leer]"
)

// Watcher drives the poll-diff-notify cycle. The first observed snapshot
// becomes the baseline and sends nothing; afterwards the full-page and
// section comparisons run independently and may both fire in one cycle,
// each with its own message.
type Watcher struct {
	provider PageProvider
	store    StateStore
	notifier Notifier
	interval time.Duration

	prev     dal.CheckState
	hasPrev  bool
	restored bool

	log *slog.Logger
}

func NewWatcher(provider PageProvider, store StateStore, notifier Notifier, interval time.Duration, log *slog.Logger) *Watcher {
	return &Watcher{
		provider: provider,
		store:    store,
		notifier: notifier,
		interval: interval,
		log:      log.With("component", "service").With("service", "watcher"),
	}
}

// Run polls until ctx is cancelled. The first check happens immediately;
// every later one after the configured interval. Nothing that goes wrong in
// a cycle terminates the loop.
func (w *Watcher) Run(ctx context.Context) {
	w.log.InfoContext(ctx, "starting watcher", "interval", w.interval)
	defer w.log.InfoContext(ctx, "stopped watcher")

	for {
		w.CheckOnce(ctx)

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.interval):
		}
	}
}

// CheckOnce performs a single fetch-compare-persist cycle. It never
// returns an error and never panics out; the process must keep running
// unattended.
func (w *Watcher) CheckOnce(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			w.log.ErrorContext(ctx, "panic during check", "panic", r, "stack", string(debug.Stack()))
		}
	}()

	if !w.restored {
		w.restoreState(ctx)
	}

	w.log.InfoContext(ctx, "checking page")
	snap, err := w.provider.Snapshot(ctx)
	if err != nil {
		w.log.ErrorContext(ctx, "failed to fetch page", "error", err)
		return
	}

	next := dal.CheckState{
		FullHash:    dal.Digest(snap.HTML),
		SectionHash: dal.Digest(snap.Section),
	}

	if !w.hasPrev {
		w.log.InfoContext(ctx, "baseline established, no notification sent")
	} else {
		w.compareAndNotify(ctx, snap, next)
	}

	if err := w.store.Save(next); err != nil {
		// Keep the in-memory state as it was; the next cycle re-compares
		// against the last successfully persisted baseline.
		w.log.ErrorContext(ctx, "failed to persist state", "error", err)
		return
	}

	w.prev = next
	w.hasPrev = true
}

func (w *Watcher) compareAndNotify(ctx context.Context, snap providers.Snapshot, next dal.CheckState) {
	if next.FullHash != w.prev.FullHash {
		w.log.WarnContext(ctx, "page structure changed")
		w.notifier.Notify(ctx, subjectStructureChanged, bodyStructureChanged)
	}

	if next.SectionHash == w.prev.SectionHash {
		w.log.InfoContext(ctx, "no change in training section")
		return
	}

	w.log.InfoContext(ctx, "training section changed")
	content := snap.Section
	if !snap.SectionFound {
		content = emptySectionPlaceholder
	}
	w.notifier.Notify(ctx, subjectSectionUpdated, bodySectionUpdated+content)
}

// restoreState loads the persisted digests once. A missing, unreadable, or
// malformed state file means baseline mode, never a failure.
func (w *Watcher) restoreState(ctx context.Context) {
	w.restored = true

	state, found, err := w.store.Load()
	if err != nil {
		w.log.ErrorContext(ctx, "failed to load state, starting from baseline", "error", err)
		return
	}
	if !found {
		w.log.InfoContext(ctx, "no prior state found, first run")
		return
	}

	w.prev = state
	w.hasPrev = true
}
