package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alem-hub/gradebook/internal/domain/roster"
	"github.com/alem-hub/gradebook/internal/domain/shared"
	"github.com/alem-hub/gradebook/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SAVE / LOAD ROSTER COMMANDS
// Convert the whole roster to and from its structural form through a roster.Store.
// ══════════════════════════════════════════════════════════════════════════════

// SaveRosterResult contains the result of a save.
type SaveRosterResult struct {
	Location string
	Students int
	Took     time.Duration

	// Fingerprint identifies the written content when the store tracks it.
	Fingerprint string

	// ExternallyModified is set when the stored data had been changed by
	// someone else since the last load or save and was overwritten.
	ExternallyModified bool
}

// LoadOutcome tells how a load ended.
type LoadOutcome string

const (
	// LoadReplaced - the roster now holds the stored records.
	LoadReplaced LoadOutcome = "replaced"
	// LoadMissing - nothing was stored; the roster is now empty.
	LoadMissing LoadOutcome = "missing"
	// LoadCorrupt - stored data could not be decoded; the roster is unchanged.
	LoadCorrupt LoadOutcome = "corrupt"
)

// LoadRosterResult contains the result of a load.
type LoadRosterResult struct {
	Location    string
	Outcome     LoadOutcome
	Students    int
	Took        time.Duration
	Fingerprint string
}

// PersistenceHandler saves and loads the roster.
type PersistenceHandler struct {
	roster  *roster.Roster
	store   roster.Store
	timeout time.Duration
}

// NewPersistenceHandler creates a new PersistenceHandler.
// A non-positive timeout means no deadline beyond the caller's context.
func NewPersistenceHandler(r *roster.Roster, store roster.Store, timeout time.Duration) *PersistenceHandler {
	return &PersistenceHandler{
		roster:  r,
		store:   store,
		timeout: timeout,
	}
}

func (h *PersistenceHandler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.timeout)
}

func (h *PersistenceHandler) scopedLog(ctx context.Context) *logger.Logger {
	return logger.FromContext(ctx).With(logger.Path(h.store.Location()))
}

// fingerprint returns the store's content fingerprint, if it tracks one.
func (h *PersistenceHandler) fingerprint() string {
	if tracker, ok := h.store.(roster.ChangeTracker); ok {
		return tracker.Fingerprint()
	}
	return ""
}

// changedOutside reports whether a tracking store was modified since the last sync.
// Failing to check is logged and treated as unchanged; the save itself decides.
func (h *PersistenceHandler) changedOutside(ctx context.Context, log *logger.Logger) bool {
	tracker, ok := h.store.(roster.ChangeTracker)
	if !ok {
		return false
	}
	changed, err := tracker.Changed(ctx)
	if err != nil {
		log.Warn("could not check stored roster for outside changes", logger.Err(err))
		return false
	}
	return changed
}

// Save writes every student, in roster order, to the store.
// Write failures are returned; they are never reported as success.
func (h *PersistenceHandler) Save(ctx context.Context) (*SaveRosterResult, error) {
	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	log := h.scopedLog(ctx)
	start := time.Now()
	records := h.roster.Records()
	before := h.fingerprint()
	modified := h.changedOutside(ctx, log)

	if err := h.store.Save(ctx, records); err != nil {
		log.Error("roster save failed", logger.Err(err))
		return nil, fmt.Errorf("save_roster: %w", err)
	}

	took := time.Since(start)
	result := &SaveRosterResult{
		Location:           h.store.Location(),
		Students:           len(records),
		Took:               took,
		Fingerprint:        h.fingerprint(),
		ExternallyModified: modified,
	}

	if modified {
		log.Warn("stored roster was changed outside this session and has been overwritten",
			logger.String("previous_digest", before))
	}
	log.Info("roster persisted", logger.Count(len(records)), logger.Latency(took), logger.Digest(result.Fingerprint))
	return result, nil
}

// Load replaces the whole roster with the stored records (no merge).
//
// Outcomes:
//   - stored data missing: roster reset to empty, error wraps shared.ErrSnapshotNotFound
//   - stored data undecodable: roster unchanged, error wraps shared.ErrSnapshotCorrupt
//   - any other failure: roster unchanged, error returned
func (h *PersistenceHandler) Load(ctx context.Context) (*LoadRosterResult, error) {
	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	log := h.scopedLog(ctx)
	start := time.Now()
	result := &LoadRosterResult{Location: h.store.Location()}

	records, err := h.store.Load(ctx)
	result.Fingerprint = h.fingerprint()
	switch {
	case errors.Is(err, shared.ErrSnapshotNotFound):
		h.roster.Reset()
		result.Outcome = LoadMissing
		log.Info("no stored roster, starting empty")
		return result, fmt.Errorf("load_roster: %w", err)
	case errors.Is(err, shared.ErrSnapshotCorrupt):
		result.Outcome = LoadCorrupt
		result.Students = h.roster.Len()
		log.Warn("stored roster is corrupt, keeping current roster", logger.Err(err))
		return result, fmt.Errorf("load_roster: %w", err)
	case err != nil:
		log.Error("roster load failed", logger.Err(err))
		return nil, fmt.Errorf("load_roster: %w", err)
	}

	h.roster.Replace(records)
	result.Outcome = LoadReplaced
	result.Students = h.roster.Len()
	result.Took = time.Since(start)

	log.Info("roster restored", logger.Count(result.Students), logger.Latency(result.Took), logger.Digest(result.Fingerprint))
	return result, nil
}
