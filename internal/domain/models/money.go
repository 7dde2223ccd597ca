// internal/domain/models/money.go
package models

// Money is an amount in a single currency. No conversion is ever performed;
// all subscriptions on one group are assumed to share a currency.
type Money struct {
	Amount   float64 `bson:"amount" json:"amount"`
	Currency string  `bson:"currency" json:"currency"`
}
