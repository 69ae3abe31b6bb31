// Package lifecycle is the sole authority for query workflow transitions.
//
// Every function takes the current document by value and returns an updated
// copy, or an error that leaves the caller's copy untouched. The package does
// no I/O; services persist the result through the query store's conditional
// update.
package lifecycle

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"agrisathi/internal/apperr"
	"agrisathi/model"
)

// Escalate requests officer help on a query owned by actorID.
//
// A repeated escalate is idempotent: reason and notes may be refreshed but
// the original escalatedAt and state are kept. Closed queries cannot be
// reopened.
func Escalate(q model.Query, actorID bson.ObjectID, reason, notes string, now time.Time) (model.Query, error) {
	if q.OwnerID != actorID {
		return q, apperr.Forbidden("query %s does not belong to actor", q.ID.Hex())
	}
	if strings.TrimSpace(reason) == "" {
		return q, apperr.Validation("escalation reason is required")
	}
	if q.IsTerminal() {
		return q, apperr.InvalidTransition("query %s is already closed", q.ID.Hex())
	}

	q.EscalationReason = reason
	if notes != "" {
		q.EscalationNotes = notes
	}
	if q.Status == model.StatusNormal {
		q.Status = model.StatusEscalated
		q.Escalated = true
		q.EscalationStatus = model.EscalationPending
		if q.EscalatedAt == nil {
			t := now
			q.EscalatedAt = &t
		}
	}
	return finish(q, now), nil
}

// FarmerResolve closes a query as resolved by its owner. Works from any
// non-terminal state, including while an officer review is underway. On an
// already-closed query it is a no-op apart from re-applying the rating.
func FarmerResolve(q model.Query, actorID bson.ObjectID, rating *int, now time.Time) (model.Query, error) {
	if q.OwnerID != actorID {
		return q, apperr.Forbidden("query %s does not belong to actor", q.ID.Hex())
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return q, apperr.Validation("rating must be between 1 and 5, got %d", *rating)
	}

	if q.IsTerminal() {
		if rating == nil {
			return q, nil
		}
		r := *rating
		q.Rating = &r
		return finish(q, now), nil
	}

	q.Status = model.StatusResolved
	q.Resolved = true
	q.ResolvedBy = model.ResolverFarmer
	if q.ResolvedAt == nil {
		t := now
		q.ResolvedAt = &t
	}
	if rating != nil {
		r := *rating
		q.Rating = &r
	}
	return finish(q, now), nil
}

// OfficerRespond records an officer reply on an escalated query. With
// markResolved the query closes as resolved_by_officer; otherwise it moves
// to in_review. officerId is last-writer-wins: a later officer takes over
// the query without any locking.
func OfficerRespond(q model.Query, officerID bson.ObjectID, reply, notes string, markResolved bool, now time.Time) (model.Query, error) {
	if strings.TrimSpace(reply) == "" {
		return q, apperr.Validation("officer reply text is required")
	}
	if err := requireUnderEscalation(&q); err != nil {
		return q, err
	}

	q.OfficerID = &officerID
	q.OfficerResponse = reply
	t := now
	q.OfficerUpdatedAt = &t
	if notes != "" {
		q.EscalationNotes = notes
	}

	if markResolved {
		closeByOfficer(&q, now)
	} else {
		q.Status = model.StatusInReview
		q.EscalationStatus = model.EscalationInReview
	}
	return finish(q, now), nil
}

// ForceResolve closes an escalated query without a reply text. The last
// officer response, if any, is retained.
func ForceResolve(q model.Query, officerID bson.ObjectID, notes string, now time.Time) (model.Query, error) {
	if err := requireUnderEscalation(&q); err != nil {
		return q, err
	}

	q.OfficerID = &officerID
	t := now
	q.OfficerUpdatedAt = &t
	if notes != "" {
		q.EscalationNotes = notes
	}
	closeByOfficer(&q, now)
	return finish(q, now), nil
}

func requireUnderEscalation(q *model.Query) error {
	switch q.Status {
	case model.StatusEscalated, model.StatusInReview:
		return nil
	case model.StatusResolved, model.StatusResolvedByOfficer:
		return apperr.InvalidTransition("query %s is already closed", q.ID.Hex())
	}
	return apperr.InvalidTransition("query %s has not been escalated", q.ID.Hex())
}

func closeByOfficer(q *model.Query, now time.Time) {
	q.Status = model.StatusResolvedByOfficer
	q.EscalationStatus = model.EscalationResolvedByOfficer
	q.Resolved = true
	q.ResolvedBy = model.ResolverOfficer
	if q.ResolvedAt == nil {
		t := now
		q.ResolvedAt = &t
	}
}

func finish(q model.Query, now time.Time) model.Query {
	q.UpdatedAt = now
	q.SyncEscalationMirror()
	return q
}
