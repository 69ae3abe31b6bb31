package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Query workflow states. status is the single source of truth; the
// resolved/escalated booleans are denormalized mirrors kept in sync by the
// lifecycle package.
const (
	StatusNormal            = "normal"
	StatusEscalated         = "escalated"
	StatusInReview          = "in_review"
	StatusResolved          = "resolved"
	StatusResolvedByOfficer = "resolved_by_officer"
)

// Officer-facing escalation progress values.
const (
	EscalationPending           = "pending"
	EscalationInReview          = "in_review"
	EscalationResolvedByOfficer = "resolved_by_officer"
)

// Actors recorded in resolvedBy.
const (
	ResolverFarmer  = "farmer"
	ResolverOfficer = "officer"
	ResolverSystem  = "system"
)

// Escalation is the legacy nested mirror kept for older readers of the
// queries collection. It is always produced from the flat fields via
// SyncEscalationMirror, never written independently.
type Escalation struct {
	IsEscalated  bool           `json:"isEscalated"            bson:"is_escalated"`
	Status       string         `json:"status,omitempty"       bson:"status,omitempty"`
	Reason       string         `json:"reason,omitempty"       bson:"reason,omitempty"`
	RequestedAt  *time.Time     `json:"requestedAt,omitempty"  bson:"requested_at,omitempty"`
	RequestedBy  *bson.ObjectID `json:"requestedBy,omitempty"  bson:"requested_by,omitempty"`
	OfficerID    *bson.ObjectID `json:"officerId,omitempty"    bson:"officer_id,omitempty"`
	OfficerReply string         `json:"officerReply,omitempty" bson:"officer_reply,omitempty"`
	OfficerNotes string         `json:"officerNotes,omitempty" bson:"officer_notes,omitempty"`
	RepliedAt    *time.Time     `json:"repliedAt,omitempty"    bson:"replied_at,omitempty"`
}

type Query struct {
	ID       bson.ObjectID `json:"id"       bson:"_id,omitempty"`
	OwnerID  bson.ObjectID `json:"ownerId"  bson:"owner_id"`
	Question string        `json:"question" bson:"question"`
	Answer   string        `json:"answer"   bson:"answer"`
	Category string        `json:"category" bson:"category"`
	Language string        `json:"language" bson:"language"`

	Status     string     `json:"status"               bson:"status"`
	Resolved   bool       `json:"resolved"             bson:"resolved"`
	ResolvedBy string     `json:"resolvedBy,omitempty" bson:"resolved_by,omitempty"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty" bson:"resolved_at,omitempty"`

	Escalated        bool           `json:"escalated"                  bson:"escalated"`
	EscalationStatus string         `json:"escalationStatus,omitempty" bson:"escalation_status,omitempty"`
	EscalationReason string         `json:"escalationReason,omitempty" bson:"escalation_reason,omitempty"`
	EscalationNotes  string         `json:"escalationNotes,omitempty"  bson:"escalation_notes,omitempty"`
	EscalatedAt      *time.Time     `json:"escalatedAt,omitempty"      bson:"escalated_at,omitempty"`
	OfficerID        *bson.ObjectID `json:"officerId,omitempty"        bson:"officer_id,omitempty"`
	OfficerResponse  string         `json:"officerResponse,omitempty"  bson:"officer_response,omitempty"`
	OfficerUpdatedAt *time.Time     `json:"officerUpdatedAt,omitempty" bson:"officer_updated_at,omitempty"`

	Rating *int `json:"rating,omitempty" bson:"rating,omitempty"`

	Escalation Escalation `json:"escalation" bson:"escalation"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`

	// Revision guards concurrent lifecycle writes: updates are conditional
	// on the revision they were computed from.
	Revision int64 `json:"-" bson:"revision"`
}

// IsTerminal reports whether no further workflow transitions are accepted.
func (q *Query) IsTerminal() bool {
	return q.Status == StatusResolved || q.Status == StatusResolvedByOfficer
}

// SyncEscalationMirror regenerates the nested legacy view from the flat
// fields. Lifecycle operations call this as their last step so the two
// representations can never drift inside one document write.
func (q *Query) SyncEscalationMirror() {
	q.Escalation = Escalation{
		IsEscalated:  q.Escalated,
		Status:       q.EscalationStatus,
		Reason:       q.EscalationReason,
		OfficerNotes: q.EscalationNotes,
		RequestedAt:  q.EscalatedAt,
		OfficerID:    q.OfficerID,
		OfficerReply: q.OfficerResponse,
		RepliedAt:    q.OfficerUpdatedAt,
	}
	if q.Escalated {
		owner := q.OwnerID
		q.Escalation.RequestedBy = &owner
	}
}

// StatusLabel is a client-facing description derived from the stored state.
func (q *Query) StatusLabel() string {
	switch q.Status {
	case StatusNormal:
		return "Answered"
	case StatusEscalated:
		return "Waiting for officer"
	case StatusInReview:
		return "Under officer review"
	case StatusResolved:
		return "Resolved"
	case StatusResolvedByOfficer:
		return "Resolved by officer"
	}
	return q.Status
}
