// internal/domain/models/subscription.go
package models

// Subscription billing types. A group holds at most one subscription of
// each type.
const (
	SubscriptionMonthly = "monthly"
	SubscriptionLevel   = "level"
)

// Subscription is a billing arrangement attached to a group, used to
// derive the group's total price.
type Subscription struct {
	ID               string `bson:"id" json:"id"` // assigned on insert
	Type             string `bson:"type" json:"type"`
	Cost             Money  `bson:"cost" json:"cost"`
	LecturesIncluded int    `bson:"lectures_included" json:"lectures_included"`
}
