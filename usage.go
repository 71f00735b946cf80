package agentwire

// UsageTotals accumulates the Usage deltas of one turn into running totals.
// The zero value is ready to use.
//
// Cache counters keep the absent-vs-zero distinction of UsageDelta: a
// counter stays nil until a provider actually reports it, so "never
// reported" and "zero tokens" remain distinguishable in the totals.
type UsageTotals struct {
	InputTokens      int
	OutputTokens     int
	CacheWriteTokens *int
	CacheReadTokens  *int
}

// Add folds one usage delta into the totals.
func (t *UsageTotals) Add(d UsageDelta) {
	t.InputTokens += d.InputTokens
	t.OutputTokens += d.OutputTokens

	if d.CacheWriteTokens != nil {
		t.CacheWriteTokens = addCount(t.CacheWriteTokens, *d.CacheWriteTokens)
	}
	if d.CacheReadTokens != nil {
		t.CacheReadTokens = addCount(t.CacheReadTokens, *d.CacheReadTokens)
	}
}

// AddEvent folds a stream event into the totals. Non-usage events are
// ignored, so the consumer can feed every event through unconditionally.
func (t *UsageTotals) AddEvent(ev StreamEvent) {
	if ev.Usage == nil {
		return
	}
	t.Add(*ev.Usage)
}

// Cost estimates the turn's dollar cost from per-MTok pricing. Cache
// counters are billed at their own rates when reported; unreported counters
// contribute nothing.
func (t UsageTotals) Cost(p PricingInfo) float64 {
	const mtok = 1_000_000.0

	cost := float64(t.InputTokens)/mtok*p.InputPer1M +
		float64(t.OutputTokens)/mtok*p.OutputPer1M

	if t.CacheWriteTokens != nil {
		cost += float64(*t.CacheWriteTokens) / mtok * p.CacheWritePer1M
	}
	if t.CacheReadTokens != nil {
		cost += float64(*t.CacheReadTokens) / mtok * p.CacheReadPer1M
	}
	return cost
}

func addCount(total *int, n int) *int {
	if total == nil {
		v := n
		return &v
	}
	*total += n
	return total
}
