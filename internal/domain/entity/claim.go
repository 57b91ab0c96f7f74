package entity

import (
	"time"

	"github.com/google/uuid"
)

// ClaimType is the kind of service requested.
type ClaimType string

const (
	ClaimTypeRepair      ClaimType = "repair"
	ClaimTypeReplacement ClaimType = "replacement"
	ClaimTypeRefund      ClaimType = "refund"
)

// IsValid checks if the ClaimType is a valid value.
func (t ClaimType) IsValid() bool {
	switch t {
	case ClaimTypeRepair, ClaimTypeReplacement, ClaimTypeRefund:
		return true
	default:
		return false
	}
}

// ClaimStatus is a state of the claim workflow.
type ClaimStatus string

const (
	ClaimStatusPending   ClaimStatus = "pending"
	ClaimStatusApproved  ClaimStatus = "approved"
	ClaimStatusRejected  ClaimStatus = "rejected"
	ClaimStatusCompleted ClaimStatus = "completed"
)

// MinClaimDescriptionLength is the shortest accepted claim description.
const MinClaimDescriptionLength = 10

var claimTransitions = map[ClaimStatus][]ClaimStatus{
	ClaimStatusPending:  {ClaimStatusApproved, ClaimStatusRejected},
	ClaimStatusApproved: {ClaimStatusCompleted},
}

// String returns the string representation of the ClaimStatus.
func (s ClaimStatus) String() string {
	return string(s)
}

// IsValid checks if the ClaimStatus is a valid value.
func (s ClaimStatus) IsValid() bool {
	switch s {
	case ClaimStatusPending, ClaimStatusApproved, ClaimStatusRejected, ClaimStatusCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no transition leaves the status.
func (s ClaimStatus) IsTerminal() bool {
	return len(claimTransitions[s]) == 0
}

// CanTransitionTo reports whether next is reachable in one step.
func (s ClaimStatus) CanTransitionTo(next ClaimStatus) bool {
	for _, allowed := range claimTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// TimelineEvent is one append-only entry in a claim's history.
type TimelineEvent struct {
	Timestamp time.Time  `json:"timestamp"`
	Action    string     `json:"action"`
	ActorID   *uuid.UUID `json:"actor_id,omitempty"`
	Notes     string     `json:"notes,omitempty"`
}

// Claim is a service request against a warranty.
type Claim struct {
	ID               uuid.UUID       `json:"id"`
	WarrantyID       uuid.UUID       `json:"warranty_id"`
	StoreID          uuid.UUID       `json:"store_id"`
	ClaimType        ClaimType       `json:"claim_type"`
	Description      string          `json:"description"`
	Status           ClaimStatus     `json:"status"`
	AssignedMemberID *uuid.UUID      `json:"assigned_member_id,omitempty"`
	Attachments      []string        `json:"attachments"`
	Timeline         []TimelineEvent `json:"timeline_events"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	Warranty *Warranty `json:"warranty,omitempty"`
}
