package entity

import "time"

type MemberStatus string

const (
	StatusActive  MemberStatus = "active"
	StatusExpired MemberStatus = "expired"
	StatusPending MemberStatus = "pending"
)

type MembershipType string

const (
	MembershipBasic   MembershipType = "basic"
	MembershipPremium MembershipType = "premium"
	MembershipVIP     MembershipType = "vip"
)

// Member is the aggregate root of the directory.
//
// Status is caller supplied and is not derived from the subscription dates.
// SubscriptionStart and SubscriptionEnd are calendar dates (YYYY-MM-DD) and
// may be empty.
type Member struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Email             string         `json:"email"`
	PhoneNumber       string         `json:"phoneNumber"`
	SubscriptionStart string         `json:"subscriptionStart,omitempty"`
	SubscriptionEnd   string         `json:"subscriptionEnd,omitempty"`
	Status            MemberStatus   `json:"status"`
	MembershipType    MembershipType `json:"membershipType"`
	PhotoURL          string         `json:"photoUrl,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}
