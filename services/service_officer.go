package services

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"agrisathi/internal/apperr"
	"agrisathi/internal/authctx"
	"agrisathi/internal/lifecycle"
	"agrisathi/model"
)

type OfficerService struct {
	store QueryStore
	log   *zap.Logger
	now   func() time.Time
}

func NewOfficerService(store QueryStore, log *zap.Logger) *OfficerService {
	return &OfficerService{
		store: store,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// requireOfficer re-checks the actor's role before any read or mutation,
// even though officer routes already sit behind the role middleware.
func requireOfficer(actor authctx.Actor) error {
	if !actor.IsOfficer() {
		return apperr.Forbidden("officer role required")
	}
	return nil
}

// ListPending returns open escalations, most recently escalated first.
func (s *OfficerService) ListPending(ctx context.Context, actor authctx.Actor) ([]model.Query, error) {
	if err := requireOfficer(actor); err != nil {
		return nil, err
	}
	resolved := false
	return s.store.FindEscalated(ctx, &resolved)
}

// ListHandled returns closed escalations, most recently resolved first.
func (s *OfficerService) ListHandled(ctx context.Context, actor authctx.Actor) ([]model.Query, error) {
	if err := requireOfficer(actor); err != nil {
		return nil, err
	}
	resolved := true
	queries, err := s.store.FindEscalated(ctx, &resolved)
	if err != nil {
		return nil, err
	}
	// The store orders by escalatedAt; the handled dashboard wants most
	// recently closed first.
	sort.SliceStable(queries, func(i, j int) bool {
		a, b := queries[i].ResolvedAt, queries[j].ResolvedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return queries, nil
}

// Respond records an officer reply; with markResolved it closes the query.
func (s *OfficerService) Respond(ctx context.Context, actor authctx.Actor, queryID bson.ObjectID, reply, notes string, markResolved bool) (model.Query, error) {
	if err := requireOfficer(actor); err != nil {
		return model.Query{}, err
	}
	q, err := s.store.GetByID(ctx, queryID)
	if err != nil {
		return model.Query{}, err
	}
	next, err := lifecycle.OfficerRespond(q, actor.ID, reply, notes, markResolved, s.now())
	if err != nil {
		return model.Query{}, err
	}
	saved, err := s.store.ApplyLifecycle(ctx, next, q.Revision)
	if err != nil {
		return model.Query{}, err
	}
	s.log.Info("officer responded",
		zap.String("query_id", queryID.Hex()),
		zap.String("officer_id", actor.ID.Hex()),
		zap.Bool("resolved", markResolved))
	return saved, nil
}

// ForceResolve closes an escalated query without a reply text.
func (s *OfficerService) ForceResolve(ctx context.Context, actor authctx.Actor, queryID bson.ObjectID, notes string) (model.Query, error) {
	if err := requireOfficer(actor); err != nil {
		return model.Query{}, err
	}
	q, err := s.store.GetByID(ctx, queryID)
	if err != nil {
		return model.Query{}, err
	}
	next, err := lifecycle.ForceResolve(q, actor.ID, notes, s.now())
	if err != nil {
		return model.Query{}, err
	}
	saved, err := s.store.ApplyLifecycle(ctx, next, q.Revision)
	if err != nil {
		return model.Query{}, err
	}
	s.log.Info("officer force-resolved",
		zap.String("query_id", queryID.Hex()),
		zap.String("officer_id", actor.ID.Hex()))
	return saved, nil
}
