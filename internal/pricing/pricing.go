// Package pricing computes the effective price of a product at a point in
// time. It is deterministic and side-effect free: the same discount set and
// timestamp always yield the same price.
package pricing

import (
	"sort"
	"time"

	"github.com/shopcart/order-service/internal/model"
)

// EffectivePrice returns the product price after applying at most one
// currently-active, in-window discount. Candidates are ordered by CreatedAt
// and then ID so overlapping windows resolve deterministically; the earliest
// created discount wins. With no applicable discount the original price is
// returned unchanged.
func EffectivePrice(p *model.Product, now time.Time) float64 {
	if p == nil {
		return 0
	}

	d, ok := EffectiveDiscount(p, now)
	if !ok {
		return p.Price
	}
	return p.Price - p.Price*d.Percentage/100
}

// EffectiveDiscount returns the single discount that affects the product
// price at now, if any.
func EffectiveDiscount(p *model.Product, now time.Time) (model.Discount, bool) {
	if p == nil || len(p.Discounts) == 0 {
		return model.Discount{}, false
	}

	candidates := make([]model.Discount, 0, len(p.Discounts))
	for _, d := range p.Discounts {
		if d.Active && d.InWindow(now) {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) == 0 {
		return model.Discount{}, false
	}

	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].CreatedAt.Equal(candidates[j].CreatedAt) {
			return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
		}
		return candidates[i].ID < candidates[j].ID
	})
	return candidates[0], true
}
