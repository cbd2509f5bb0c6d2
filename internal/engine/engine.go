// Package engine folds newly discovered generations into durable session
// totals and keeps the cached account balances fresh.
package engine

import (
	"context"
	"time"

	"github.com/theirongolddev/orburn/internal/openrouter"
	"github.com/theirongolddev/orburn/internal/state"
	"github.com/theirongolddev/orburn/internal/store"
)

// freshnessWindow is how long a cached balance or credits figure stays
// authoritative before a run is allowed to re-fetch it.
const freshnessWindow = 60 * time.Second

// Resolver is the upstream API surface the engine consumes.
type Resolver interface {
	ResolveGeneration(ctx context.Context, id string) (*openrouter.Generation, error)
	FetchKeyInfo(ctx context.Context) (*openrouter.KeyInfo, error)
	FetchCredits(ctx context.Context) (*openrouter.Credits, error)
}

// StateStore loads and persists per-session state.
type StateStore interface {
	Load(sessionID string) state.SessionState
	Save(state.SessionState) error
}

// Recorder receives a copy of every successful resolution for reporting.
type Recorder interface {
	RecordResolution(store.Resolution) error
}

// ThrottlePolicy inserts a courtesy delay between lookups for distinct
// generations. It never changes what gets accounted, only when.
type ThrottlePolicy struct {
	Enabled bool
	Delay   time.Duration
}

// Snapshot is the render-ready result of one run.
type Snapshot struct {
	SessionID          string
	TotalCost          float64
	TotalCacheDiscount float64
	LastProvider       string
	LastModel          string
	KeyUsage           *float64
	KeyLimit           *float64
	Credits            *float64

	// Per-run resolution tally; a health signal, never persisted.
	Resolved int
	Failed   int
}

// Engine merges discovered generations into session state.
type Engine struct {
	client         Resolver
	store          StateStore
	recorder       Recorder // may be nil
	throttle       ThrottlePolicy
	creditsEnabled bool

	sleep func(time.Duration)
}

// New creates an engine. recorder may be nil to skip ledger writes;
// creditsEnabled gates the account-credits refresh on the presence of a
// provisioning key.
func New(client Resolver, st StateStore, recorder Recorder, throttle ThrottlePolicy, creditsEnabled bool) *Engine {
	return &Engine{
		client:         client,
		store:          st,
		recorder:       recorder,
		throttle:       throttle,
		creditsEnabled: creditsEnabled,
		sleep:          time.Sleep,
	}
}

// Run executes one accounting pass: load prior state, resolve the not-yet-seen
// ids from discovered in order, refresh stale balances, persist, and return
// the snapshot. Individual lookup failures are never fatal; the id simply
// stays eligible for a future run. State is persisted unconditionally so the
// freshness bookkeeping and any partial progress survive.
func (e *Engine) Run(ctx context.Context, sessionID string, discovered []string, now time.Time) (Snapshot, error) {
	st := e.store.Load(sessionID)
	seen := st.SeenSet()

	var snap Snapshot
	first := true

	for _, id := range discovered {
		if _, ok := seen[id]; ok {
			continue
		}
		if !first && e.throttle.Enabled && e.throttle.Delay > 0 {
			e.sleep(e.throttle.Delay)
		}
		first = false

		gen, err := e.client.ResolveGeneration(ctx, id)
		if err != nil {
			snap.Failed++
			continue
		}
		snap.Resolved++

		st.TotalCost += gen.TotalCost
		st.TotalCacheDiscount += gen.CacheDiscountValue()
		if gen.ProviderName != "" {
			st.LastProvider = gen.ProviderName
		}
		if gen.Model != "" {
			st.LastModel = gen.Model
		}
		st.SeenGenerationIDs = append(st.SeenGenerationIDs, id)
		seen[id] = struct{}{}

		if e.recorder != nil {
			_ = e.recorder.RecordResolution(store.Resolution{
				GenerationID:  id,
				SessionID:     sessionID,
				Model:         gen.Model,
				Provider:      gen.ProviderName,
				Cost:          gen.TotalCost,
				CacheDiscount: gen.CacheDiscountValue(),
				ResolvedAt:    now,
			})
		}
	}

	if now.Sub(st.BalanceFetchedAt) > freshnessWindow {
		if ki, err := e.client.FetchKeyInfo(ctx); err == nil {
			usage := ki.Usage
			st.KeyUsage = &usage
			st.KeyLimit = ki.Limit
			st.BalanceFetchedAt = now
		}
		// On failure the stale snapshot and its timestamp stay untouched:
		// stale-but-present beats null.
	}

	if e.creditsEnabled && now.Sub(st.CreditsFetchedAt) > freshnessWindow {
		if cr, err := e.client.FetchCredits(ctx); err == nil {
			remaining := cr.Remaining()
			st.Credits = &remaining
			st.CreditsFetchedAt = now
		}
	}

	err := e.store.Save(st)

	snap.SessionID = st.SessionID
	snap.TotalCost = st.TotalCost
	snap.TotalCacheDiscount = st.TotalCacheDiscount
	snap.LastProvider = st.LastProvider
	snap.LastModel = st.LastModel
	snap.KeyUsage = st.KeyUsage
	snap.KeyLimit = st.KeyLimit
	snap.Credits = st.Credits

	return snap, err
}
