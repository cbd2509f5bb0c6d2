package openrouter

// Generation is the authoritative billing record for one routed request.
type Generation struct {
	ID            string   `json:"id"`
	Model         string   `json:"model"`
	ProviderName  string   `json:"provider_name"`
	TotalCost     float64  `json:"total_cost"`
	CacheDiscount *float64 `json:"cache_discount"`
	Cancelled     bool     `json:"cancelled"`
	CreatedAt     string   `json:"created_at"`
}

// CacheDiscountValue returns the cache discount or zero when absent.
// Upstream reports discounts as negative amounts.
func (g *Generation) CacheDiscountValue() float64 {
	if g.CacheDiscount == nil {
		return 0
	}
	return *g.CacheDiscount
}

type generationResponse struct {
	Data Generation `json:"data"`
}

// KeyInfo describes the inference key's spend against its limit.
// Limit is null for unlimited keys; only usage is meaningful then.
type KeyInfo struct {
	Label      string   `json:"label"`
	Usage      float64  `json:"usage"`
	Limit      *float64 `json:"limit"`
	IsFreeTier bool     `json:"is_free_tier"`
}

type keyResponse struct {
	Data KeyInfo `json:"data"`
}

// Credits holds account-level purchased credits and lifetime usage.
type Credits struct {
	TotalCredits float64 `json:"total_credits"`
	TotalUsage   float64 `json:"total_usage"`
}

// Remaining returns purchased credits minus lifetime usage.
func (c *Credits) Remaining() float64 {
	return c.TotalCredits - c.TotalUsage
}

type creditsResponse struct {
	Data Credits `json:"data"`
}
