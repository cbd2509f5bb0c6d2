// Package state holds the durable per-session accounting record.
package state

import "time"

// SessionState is the unit of durability: one record per session id,
// fully rewritten at the end of every run.
type SessionState struct {
	SessionID string `json:"session_id"`

	// SeenGenerationIDs is the dedup ledger: every id ever folded into the
	// totals appears here exactly once, in the order it was accounted.
	SeenGenerationIDs []string `json:"seen_generation_ids"`

	// Running sums over successfully resolved generations. Cost only grows;
	// the discount follows whatever sign upstream reports.
	TotalCost          float64 `json:"total_cost"`
	TotalCacheDiscount float64 `json:"total_cache_discount"`

	// Most recently observed labels, overwritten rather than accumulated.
	LastProvider string `json:"last_provider,omitempty"`
	LastModel    string `json:"last_model,omitempty"`

	// Cached key balance snapshot plus its freshness marker. Limit stays nil
	// for unlimited keys.
	KeyUsage         *float64  `json:"key_usage,omitempty"`
	KeyLimit         *float64  `json:"key_limit,omitempty"`
	BalanceFetchedAt time.Time `json:"balance_fetched_at,omitzero"`

	// Independently cached account credits, present only when a
	// provisioning key has ever been configured.
	Credits          *float64  `json:"credits,omitempty"`
	CreditsFetchedAt time.Time `json:"credits_fetched_at,omitzero"`
}

// SeenSet returns the dedup ledger as a set for O(1) membership checks.
func (s *SessionState) SeenSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.SeenGenerationIDs))
	for _, id := range s.SeenGenerationIDs {
		set[id] = struct{}{}
	}
	return set
}
