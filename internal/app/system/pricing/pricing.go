// internal/app/system/pricing/pricing.go

// Package pricing computes a group's total price from its subscription
// records. All subscriptions on one group are assumed to share a
// currency; no conversion is performed.
package pricing

import (
	"github.com/cohortlab/cohorthub/internal/domain/models"
)

// LecturesPerMonth is the billing assumption for monthly subscriptions:
// a month covers four lectures.
const LecturesPerMonth = 4

// Total sums the contribution of every subscription:
//
//   - monthly: cost × ceil(lecturesIncluded / LecturesPerMonth)
//   - level:   cost, flat, independent of lecture count
//
// The result currency comes from the first subscription; an empty input
// yields a zero amount in defaultCurrency.
func Total(subs []models.Subscription, defaultCurrency string) models.Money {
	if len(subs) == 0 {
		return models.Money{Amount: 0, Currency: defaultCurrency}
	}

	total := models.Money{Currency: subs[0].Cost.Currency}
	if total.Currency == "" {
		total.Currency = defaultCurrency
	}
	for _, sub := range subs {
		total.Amount += contribution(sub)
	}
	return total
}

func contribution(sub models.Subscription) float64 {
	switch sub.Type {
	case models.SubscriptionMonthly:
		return sub.Cost.Amount * float64(ceilDiv(sub.LecturesIncluded, LecturesPerMonth))
	case models.SubscriptionLevel:
		return sub.Cost.Amount
	}
	// Unknown types contribute nothing rather than corrupting the total.
	return 0
}

func ceilDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return (n + d - 1) / d
}
